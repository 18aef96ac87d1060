package connectors

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"curadoria/internal"
	"curadoria/internal/config"
	"curadoria/internal/connectors/sheets"
	"curadoria/internal/connectors/web"
)

type Source interface {
	Fetch(ctx context.Context) (internal.Payload, error)
	Location() string
}

type FileSource struct {
	Path string
	Kind internal.SourceKind
}

func (f FileSource) Location() string {
	return f.Path
}

func (f FileSource) Fetch(ctx context.Context) (internal.Payload, error) {
	if err := ctx.Err(); err != nil {
		return internal.Payload{}, err
	}
	body, err := os.ReadFile(f.Path)
	if err != nil {
		return internal.Payload{}, fmt.Errorf("read %s: %w", f.Path, err)
	}
	kind := f.Kind
	if kind == "" {
		kind = KindFromPath(f.Path)
	}
	return internal.Payload{Kind: kind, Location: f.Path, Body: body}, nil
}

func KindFromPath(path string) internal.SourceKind {
	if kind := internal.KindFromExt(path); kind != "" {
		return kind
	}
	return internal.SourceCSV
}

func ParseKind(raw string) (internal.SourceKind, error) {
	switch kind := internal.SourceKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case "", internal.SourceCSV, internal.SourceXLSX, internal.SourceHTML, internal.SourceSheets:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown source kind: %s", raw)
	}
}

func Open(ctx context.Context, cfg config.Config, location, kind string) (Source, error) {
	location = strings.TrimSpace(location)
	if err := cfg.Require("SOURCE", location); err != nil {
		return nil, err
	}
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(location)
	switch {
	case k == internal.SourceSheets || strings.HasPrefix(lower, "sheets:"):
		id := location
		if strings.HasPrefix(lower, "sheets:") {
			id = location[len("sheets:"):]
		}
		conn, err := sheets.NewConnector(ctx, cfg, id)
		if err != nil {
			return nil, err
		}
		return conn, nil
	case strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://"):
		client := web.NewClient(web.Options{
			Timeout:      time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond,
			RateLimitRPS: cfg.HTTPRateLimitRPS,
			CacheTTL:     time.Duration(cfg.SourceCacheTTLSec) * time.Second,
		})
		return web.NewSource(client, location, k), nil
	default:
		return FileSource{Path: location, Kind: k}, nil
	}
}
