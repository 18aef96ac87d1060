package listener

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"curadoria/internal"
	"curadoria/internal/pipeline"
	"curadoria/internal/query"
)

type seqFetcher struct {
	bodies []string
	errs   []error
	calls  int
}

func (f *seqFetcher) Fetch(context.Context) (internal.Payload, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return internal.Payload{}, f.errs[i]
	}
	body := f.bodies[len(f.bodies)-1]
	if i < len(f.bodies) {
		body = f.bodies[i]
	}
	return internal.Payload{Kind: internal.SourceCSV, Body: []byte(body)}, nil
}

func (f *seqFetcher) Location() string {
	return "https://example.com/lista.csv?output=csv"
}

func newTestService(fetcher *seqFetcher, holder *query.Holder, opts Options) *Service {
	return NewService(pipeline.NewLoadService(nil, pipeline.DefaultVocabulary()), fetcher, holder, opts)
}

func TestRunCyclePublishesState(t *testing.T) {
	holder := query.NewHolder(nil)
	fetcher := &seqFetcher{bodies: []string{"Nome,Bairro\nBar,Asa Sul\nCafé,Lago Sul"}}
	if err := newTestService(fetcher, holder, Options{}).RunCycle(context.Background()); err != nil {
		t.Fatal(err)
	}
	if holder.Load().Len() != 2 || holder.Load().Info().Status != internal.LoadOK {
		t.Fatalf("info=%+v", holder.Load().Info())
	}
}

func TestRunCycleKeepsRecordsOnFailure(t *testing.T) {
	holder := query.NewHolder(nil)
	fetcher := &seqFetcher{
		bodies: []string{"Nome\nBar"},
		errs:   []error{nil, errors.New("unexpected status: 503")},
	}
	svc := newTestService(fetcher, holder, Options{})
	if err := svc.RunCycle(context.Background()); err != nil {
		t.Fatal(err)
	}
	first := holder.Load()

	if err := svc.RunCycle(context.Background()); err == nil {
		t.Fatal("expected reload error")
	}
	if holder.Load() != first {
		t.Fatal("previous state should stay published")
	}
}

func TestRunCyclePublishesFailureWhenNothingLoaded(t *testing.T) {
	holder := query.NewHolder(nil)
	fetcher := &seqFetcher{bodies: []string{""}, errs: []error{errors.New("dial tcp: refused")}}
	if err := newTestService(fetcher, holder, Options{}).RunCycle(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if holder.Load().Info().Status != internal.LoadFailed {
		t.Fatalf("info=%+v", holder.Load().Info())
	}
}

func TestRunCycleExportsSnapshot(t *testing.T) {
	dir := t.TempDir()
	holder := query.NewHolder(nil)
	fetcher := &seqFetcher{bodies: []string{"Nome,Bairro\nBar,Asa Sul"}}
	if err := newTestService(fetcher, holder, Options{ExportDir: dir}).RunCycle(context.Background()); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "snapshots"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || filepath.Ext(entries[0].Name()) != ".xlsx" {
		t.Fatalf("entries=%v", entries)
	}
}

type slowLoader struct {
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	loads    atomic.Int32
}

func (l *slowLoader) Load(ctx context.Context, src pipeline.Fetcher) (*query.State, error) {
	n := l.inFlight.Add(1)
	defer l.inFlight.Add(-1)
	for {
		seen := l.maxSeen.Load()
		if n <= seen || l.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	id := l.loads.Add(1)
	records := []internal.Record{{Name: fmt.Sprintf("Bar %d", id)}}
	return query.NewState(records, internal.LoadInfo{TraceID: fmt.Sprintf("t%d", id), Status: internal.LoadOK}), nil
}

func TestRunCycleSerializesConcurrentReloads(t *testing.T) {
	loader := &slowLoader{}
	holder := query.NewHolder(nil)
	svc := NewService(loader, &seqFetcher{bodies: []string{""}}, holder, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.RunCycle(context.Background()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if got := loader.maxSeen.Load(); got != 1 {
		t.Fatalf("overlapping loads=%d", got)
	}
	if got := holder.Load().Info().TraceID; got != "t6" {
		t.Fatalf("published trace=%s", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	holder := query.NewHolder(nil)
	fetcher := &seqFetcher{bodies: []string{"Nome\nBar"}}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- newTestService(fetcher, holder, Options{Interval: time.Hour}).Run(ctx)
	}()

	deadline := time.After(2 * time.Second)
	for holder.Load().Len() == 0 {
		select {
		case <-deadline:
			t.Fatal("first load never published")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestSanitizeName(t *testing.T) {
	if got := sanitizeName("lista.csv?output=csv"); got != "lista.csv_output_csv" {
		t.Fatalf("got %q", got)
	}
	if got := sanitizeName(""); got != "source" {
		t.Fatalf("got %q", got)
	}
}
