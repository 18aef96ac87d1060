package sheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"curadoria/internal"
	"curadoria/internal/config"
)

// Connector reads one range of a Google spreadsheet. Public sheets work with an
// API key; private ones need the OAuth refresh token settings.
type Connector struct {
	service       *sheetsapi.Service
	spreadsheetID string
	readRange     string
}

func NewConnector(ctx context.Context, cfg config.Config, spreadsheetID string) (*Connector, error) {
	if err := cfg.Require("spreadsheet id", spreadsheetID); err != nil {
		return nil, err
	}

	opts, err := clientOptions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	readRange := strings.TrimSpace(cfg.SheetsRange)
	if readRange == "" {
		readRange = "A1:Z"
	}
	return &Connector{service: svc, spreadsheetID: spreadsheetID, readRange: readRange}, nil
}

func clientOptions(ctx context.Context, cfg config.Config) ([]option.ClientOption, error) {
	if strings.TrimSpace(cfg.SheetsRefreshToken) == "" {
		if err := cfg.Require("SHEETS_API_KEY", cfg.SheetsAPIKey); err != nil {
			return nil, fmt.Errorf("sheets source needs SHEETS_API_KEY or SHEETS_REFRESH_TOKEN: %w", err)
		}
		return []option.ClientOption{option.WithAPIKey(cfg.SheetsAPIKey)}, nil
	}

	if err := cfg.Require("SHEETS_CLIENT_ID", cfg.SheetsClientID); err != nil {
		return nil, err
	}
	if err := cfg.Require("SHEETS_CLIENT_SECRET", cfg.SheetsClientSecret); err != nil {
		return nil, err
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.SheetsClientID,
		ClientSecret: cfg.SheetsClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.SheetsRedirectURI,
		Scopes:       []string{sheetsapi.SpreadsheetsReadonlyScope},
	}
	tokenSource := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.SheetsRefreshToken})
	return []option.ClientOption{option.WithTokenSource(tokenSource)}, nil
}

func (c *Connector) Location() string {
	return "sheets:" + c.spreadsheetID + "!" + c.readRange
}

func (c *Connector) Fetch(ctx context.Context) (internal.Payload, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, c.readRange).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return internal.Payload{}, fmt.Errorf("read sheet %s: %w", c.spreadsheetID, err)
	}
	return internal.Payload{Kind: internal.SourceSheets, Location: c.Location(), Grid: ToGrid(resp.Values)}, nil
}

func ToGrid(values [][]interface{}) [][]string {
	grid := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			switch t := v.(type) {
			case nil:
				cells = append(cells, "")
			case string:
				cells = append(cells, t)
			default:
				cells = append(cells, fmt.Sprint(t))
			}
		}
		grid = append(grid, cells)
	}
	return grid
}
