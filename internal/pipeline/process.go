package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"curadoria/internal"
	"curadoria/internal/query"
)

const (
	msgLoaded = "Base carregada ✅"
	msgEmpty  = "CSV carregou, mas não encontrei linhas de dados. Confira o arquivo."
)

type Fetcher interface {
	Fetch(ctx context.Context) (internal.Payload, error)
	Location() string
}

type Journal interface {
	InsertRun(run internal.LoadRun) (int64, error)
	SetMetadata(key, value string) error
}

type LoadService struct {
	journal Journal
	builder *Builder
	now     func() time.Time
}

// NewLoadService accepts a nil journal; loads then go unrecorded.
func NewLoadService(journal Journal, vocab Vocabulary) *LoadService {
	return &LoadService{journal: journal, builder: NewBuilder(vocab), now: time.Now}
}

func (s *LoadService) Load(ctx context.Context, src Fetcher) (*query.State, error) {
	start := time.Now()
	timings := map[string]float64{}
	info := internal.LoadInfo{
		TraceID:  uuid.NewString(),
		Source:   src.Location(),
		LoadedAt: s.now(),
	}

	payload, err := src.Fetch(ctx)
	timings["fetchMs"] = msSince(start)
	if err != nil {
		return s.fail(info, timings, start, err), err
	}

	parseStart := time.Now()
	rows, err := ExtractRows(payload)
	timings["parseMs"] = msSince(parseStart)
	if err != nil {
		return s.fail(info, timings, start, err), err
	}

	buildStart := time.Now()
	records, cols := s.builder.BuildRecords(rows)
	timings["buildMs"] = msSince(buildStart)
	timings["totalMs"] = msSince(start)

	info.Columns = cols
	info.Detected = Describe(cols)
	if len(records) == 0 {
		info.Status = internal.LoadEmpty
		info.Message = msgEmpty
		s.record(info, 0, timings)
		return query.EmptyState(info), nil
	}

	info.Status = internal.LoadOK
	info.Message = msgLoaded
	s.record(info, len(records), timings)
	return query.NewState(records, info), nil
}

func (s *LoadService) fail(info internal.LoadInfo, timings map[string]float64, start time.Time, err error) *query.State {
	timings["totalMs"] = msSince(start)
	info.Status = internal.LoadFailed
	info.Message = fmt.Sprintf("Erro ao carregar %s: %v", info.Source, err)
	s.record(info, 0, timings)
	return query.EmptyState(info)
}

func (s *LoadService) record(info internal.LoadInfo, rowCount int, timings map[string]float64) {
	if s.journal == nil {
		return
	}
	_, err := s.journal.InsertRun(internal.LoadRun{
		TraceID:  info.TraceID,
		Source:   info.Source,
		Status:   info.Status,
		Message:  info.Message,
		RowCount: rowCount,
		Columns:  info.Columns,
		Timings:  timings,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "journal write failed traceId=%s err=%v\n", info.TraceID, err)
		return
	}
	_ = s.journal.SetMetadata("lastTraceId", info.TraceID)
	_ = s.journal.SetMetadata("lastSource", info.Source)
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
