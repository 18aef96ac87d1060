package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"curadoria/internal"
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

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	vocab, err := pipeline.LoadVocabulary(cfg.VocabPath)
	must(err)

	db, journal := openJournal(cfg)
	if db != nil {
		defer db.Close()
	}
	loader := pipeline.NewLoadService(journal, vocab)

	cmd := os.Args[1]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	source := fs.String("source", cfg.Source, "csv/xlsx/html path, http(s) URL or sheets:<id>")
	kind := fs.String("kind", cfg.SourceKind, "csv|xlsx|html|sheets (empty = infer)")

	switch cmd {
	case "load":
		_ = fs.Parse(os.Args[2:])
		state := mustLoad(cfg, loader, *source, *kind)
		info := state.Info()
		fmt.Println(info.Detected)
		fmt.Printf("load done source=%s status=%s records=%d traceId=%s\n", info.Source, info.Status, state.Len(), info.TraceID)
	case "query":
		qf := bindQueryFlags(fs)
		asJSON := fs.Bool("json", false, "print JSON instead of a table")
		_ = fs.Parse(os.Args[2:])
		q, err := qf.query()
		must(err)
		state := mustLoad(cfg, loader, *source, *kind)
		result := state.Query(q)
		if *asJSON {
			printJSON(result)
			return
		}
		printRecords(result.Records)
		fmt.Printf("%d lugares exibidos\n", result.Count)
	case "facets":
		asJSON := fs.Bool("json", false, "print JSON")
		_ = fs.Parse(os.Args[2:])
		state := mustLoad(cfg, loader, *source, *kind)
		facets := state.Facets()
		if *asJSON {
			printJSON(facets)
			return
		}
		printFacets(facets)
	case "export:xlsx":
		qf := bindQueryFlags(fs)
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			*out = filepath.Join(cfg.OutputDir, fmt.Sprintf("curadoria_%s.xlsx", time.Now().Format("20060102_150405")))
		}
		q, err := qf.query()
		must(err)
		state := mustLoad(cfg, loader, *source, *kind)
		result := state.Query(q)
		if result.Count == 0 {
			must(fmt.Errorf("no records to export"))
		}
		must(pipeline.ExportRecordsToXLSX(result.Records, *out))
		fmt.Printf("exported %d records to %s\n", result.Count, *out)
	case "serve":
		addr := fs.String("addr", cfg.HTTPAddr, "listen address")
		interval := fs.Int("interval", cfg.ReloadIntervalSec, "reload interval in seconds (0 = load once)")
		_ = fs.Parse(os.Args[2:])
		src, err := connectors.Open(context.Background(), cfg, *source, *kind)
		must(err)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		holder := query.NewHolder(nil)
		opts := listener.Options{Interval: time.Duration(*interval) * time.Second}
		if cfg.ReloadExport {
			opts.ExportDir = cfg.OutputDir
		}
		reloader := listener.NewService(loader, src, holder, opts)
		go func() { _ = reloader.Run(ctx) }()

		router := api.NewRouter(api.NewHandlers(holder, reloader.RunCycle), cfg.CORSOrigins)
		must(api.Serve(ctx, *addr, router))
	case "runs":
		limit := fs.Int("limit", 20, "max runs")
		_ = fs.Parse(os.Args[2:])
		if db == nil {
			must(fmt.Errorf("load journal disabled: DB_PATH is empty"))
		}
		trace, source, err := db.LastLoad()
		must(err)
		if trace != "" {
			fmt.Printf("last load traceId=%s source=%s\n", trace, source)
		}
		runs, err := db.ListRuns(*limit)
		must(err)
		printRuns(runs)
	default:
		usage()
		os.Exit(1)
	}
}

func openJournal(cfg config.Config) (*storage.DB, pipeline.Journal) {
	if strings.TrimSpace(cfg.DBPath) == "" {
		return nil, nil
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "journal disabled path=%s err=%v\n", cfg.DBPath, err)
		return nil, nil
	}
	return db, db
}

func mustLoad(cfg config.Config, loader *pipeline.LoadService, location, kind string) *query.State {
	ctx := context.Background()
	src, err := connectors.Open(ctx, cfg, location, kind)
	must(err)
	state, err := loader.Load(ctx, src)
	if err != nil {
		must(errors.New(state.Info().Message))
	}
	if state.Info().Status == internal.LoadEmpty {
		fmt.Fprintln(os.Stderr, state.Info().Message)
	}
	return state
}

type queryFlags struct {
	text, category, region, price, rating, sort *string
}

func bindQueryFlags(fs *flag.FlagSet) queryFlags {
	return queryFlags{
		text:     fs.String("q", "", "search text"),
		category: fs.String("category", "", "exact category"),
		region:   fs.String("region", "", "region tag"),
		price:    fs.String("price", "", "cheap|ok|expensive|very_expensive|undefined"),
		rating:   fs.String("rating", "", "perfect|great|good|pending|undefined"),
		sort:     fs.String("sort", "name-asc", "name-asc|name-desc"),
	}
}

func (f queryFlags) query() (query.Query, error) {
	q := query.Query{
		Text:     *f.text,
		Category: strings.TrimSpace(*f.category),
		Region:   strings.TrimSpace(*f.region),
		Price:    internal.PriceTier(strings.TrimSpace(*f.price)),
		Rating:   internal.RatingTier(strings.TrimSpace(*f.rating)),
		Sort:     query.ParseSort(*f.sort),
	}
	if q.Price != "" && !q.Price.Valid() {
		return query.Query{}, fmt.Errorf("unknown --price: %s", q.Price)
	}
	if q.Rating != "" && !q.Rating.Valid() {
		return query.Query{}, fmt.Errorf("unknown --rating: %s", q.Rating)
	}
	return q, nil
}

func printRecords(records []internal.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NOME\tCATEGORIA\tREGIÕES\tPREÇO\tAVALIAÇÃO\tMAPA")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Name, r.Category, strings.Join(r.Regions, ", "), r.Price.Label, r.Rating.Label, r.MapURL)
	}
	_ = w.Flush()
}

func printFacets(f query.Facets) {
	fmt.Printf("categorias: %s\n", strings.Join(f.Categories, " | "))
	fmt.Printf("regiões: %s\n", strings.Join(f.Regions, " | "))
	prices := make([]string, 0, len(f.Prices))
	for _, p := range f.Prices {
		prices = append(prices, fmt.Sprintf("%s=%s", p.Tier, p.Label))
	}
	fmt.Printf("preços: %s\n", strings.Join(prices, " | "))
	ratings := make([]string, 0, len(f.Ratings))
	for _, r := range f.Ratings {
		ratings = append(ratings, fmt.Sprintf("%s=%s", r.Tier, r.Label))
	}
	fmt.Printf("avaliações: %s\n", strings.Join(ratings, " | "))
}

func printRuns(runs []internal.LoadRun) {
	for _, run := range runs {
		fmt.Printf("run id=%d at=%s status=%s records=%d source=%s traceId=%s totalMs=%.1f msg=%q\n",
			run.ID, run.CreatedAt, run.Status, run.RowCount, run.Source, run.TraceID, run.Timings["totalMs"], run.Message)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	must(enc.Encode(v))
}

func usage() {
	fmt.Println("usage: curadoria <command>")
	fmt.Println("commands:")
	fmt.Println("  load [--source=curadoria_bsb.csv] [--kind=csv|xlsx|html|sheets]")
	fmt.Println("  query [--source=...] [--q=...] [--category=...] [--region=...] [--price=cheap] [--rating=great] [--sort=name-desc] [--json]")
	fmt.Println("  facets [--source=...] [--json]")
	fmt.Println("  export:xlsx [--source=...] [filters] --out=./out/curadoria.xlsx")
	fmt.Println("  serve [--source=...] [--addr=:8080] [--interval=300]")
	fmt.Println("  runs [--limit=20]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
