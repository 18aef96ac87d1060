package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"curadoria/internal/api"
	"curadoria/internal/config"
	"curadoria/internal/connectors"
	"curadoria/internal/listener"
	"curadoria/internal/pipeline"
	"curadoria/internal/query"
	"curadoria/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	vocab, err := pipeline.LoadVocabulary(cfg.VocabPath)
	must(err)

	var journal pipeline.Journal
	if cfg.DBPath != "" {
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		journal = db
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	src, err := connectors.Open(ctx, cfg, cfg.Source, cfg.SourceKind)
	must(err)

	holder := query.NewHolder(nil)
	opts := listener.Options{Interval: time.Duration(cfg.ReloadIntervalSec) * time.Second}
	if cfg.ReloadExport {
		opts.ExportDir = cfg.OutputDir
	}
	svc := listener.NewService(pipeline.NewLoadService(journal, vocab), src, holder, opts)
	go func() { _ = svc.Run(ctx) }()

	router := api.NewRouter(api.NewHandlers(holder, svc.RunCycle), cfg.CORSOrigins)
	must(api.Serve(ctx, cfg.HTTPAddr, router))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
