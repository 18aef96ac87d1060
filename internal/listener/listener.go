package listener

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"curadoria/internal"
	"curadoria/internal/pipeline"
	"curadoria/internal/query"
)

type Loader interface {
	Load(ctx context.Context, src pipeline.Fetcher) (*query.State, error)
}

type Service struct {
	mu         sync.Mutex
	loader     Loader
	source     pipeline.Fetcher
	holder     *query.Holder
	interval   time.Duration
	exportDir  string
	autoExport bool
}

type Options struct {
	Interval time.Duration
	ExportDir string
}

func NewService(loader Loader, source pipeline.Fetcher, holder *query.Holder, opts Options) *Service {
	return &Service{
		loader:     loader,
		source:     source,
		holder:     holder,
		interval:   opts.Interval,
		exportDir:  opts.ExportDir,
		autoExport: strings.TrimSpace(opts.ExportDir) != "",
	}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.RunCycle(ctx); err != nil {
			fmt.Printf("reload cycle error: %v\n", err)
		}

		if s.interval <= 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.interval):
		}
	}
}

// A failed reload keeps the previous records when there are any.
func (s *Service) RunCycle(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.loader.Load(ctx, s.source)
	if err != nil {
		if current := s.holder.Load(); current != nil && current.Len() > 0 {
			return fmt.Errorf("keeping %d records from %s: %w", current.Len(), current.Info().TraceID, err)
		}
		s.holder.Swap(next)
		return err
	}

	s.holder.Swap(next)
	info := next.Info()
	fmt.Printf("reload done source=%s status=%s records=%d traceId=%s\n", info.Source, info.Status, next.Len(), info.TraceID)

	if s.autoExport && info.Status == internal.LoadOK {
		return s.exportSnapshot(next)
	}
	return nil
}

func (s *Service) exportSnapshot(state *query.State) error {
	info := state.Info()
	filename := fmt.Sprintf("%s_%s.xlsx", sanitizeName(filepath.Base(info.Source)), info.LoadedAt.Format("20060102T150405"))
	outputPath := filepath.Join(s.exportDir, "snapshots", filename)
	if err := pipeline.ExportRecordsToXLSX(state.Records(), outputPath); err != nil {
		return err
	}
	fmt.Printf("snapshot exported path=%s\n", outputPath)
	return nil
}

func sanitizeName(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", " ", "_", "&", "_", "=", "_")
	out := repl.Replace(input)
	if len(out) > 120 {
		out = out[:120]
	}
	if out == "" || out == "." {
		out = "source"
	}
	return out
}
