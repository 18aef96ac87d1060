package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"curadoria/internal"
)

const maxAttempts = 4

var (
	maxBodyBytes int64 = 20 << 20
	backoffSleep       = sleepCtx
)

type Options struct {
	Timeout      time.Duration
	RateLimitRPS int
	// CacheTTL keeps fetched bodies in memory; zero always goes to the network.
	CacheTTL  time.Duration
	UserAgent string
}

type Client struct {
	httpClient *http.Client
	limiter    *RateLimiter
	cache      *gocache.Cache
	cacheTTL   time.Duration
	userAgent  string
}

type cachedBody struct {
	body        []byte
	contentType string
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "curadoria/1.0"
	}
	c := &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    NewRateLimiter(opts.RateLimitRPS),
		cacheTTL:   opts.CacheTTL,
		userAgent:  opts.UserAgent,
	}
	if opts.CacheTTL > 0 {
		c.cache = gocache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return c
}

// Only network errors and 429/5xx are retried.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, string, error) {
	if c.cache != nil {
		if v, ok := c.cache.Get(rawURL); ok {
			hit := v.(cachedBody)
			return hit.body, hit.contentType, nil
		}
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.WaitTurn(ctx); err != nil {
			return nil, "", err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, "", fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Cache-Control", "no-store")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
			lastErr = err
			if err := backoffSleep(ctx, backoff(attempt)); err != nil {
				return nil, "", err
			}
			continue
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}
		if int64(len(body)) > maxBodyBytes {
			return nil, "", fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("unexpected status: %d", resp.StatusCode)
			if isRetryableStatus(resp.StatusCode) && attempt < maxAttempts {
				if err := backoffSleep(ctx, backoff(attempt)); err != nil {
					return nil, "", err
				}
				continue
			}
			return nil, "", lastErr
		}

		contentType := resp.Header.Get("Content-Type")
		if c.cache != nil {
			c.cache.Set(rawURL, cachedBody{body: body, contentType: contentType}, c.cacheTTL)
		}
		return body, contentType, nil
	}

	if lastErr == nil {
		lastErr = errors.New("request failed")
	}
	return nil, "", lastErr
}

func backoff(attempt int) time.Duration {
	return time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

type Source struct {
	client *Client
	url    string
	kind   internal.SourceKind
}

// Empty kind: URL extension, then Content-Type, then body sniffing.
func NewSource(client *Client, url string, kind internal.SourceKind) *Source {
	return &Source{client: client, url: url, kind: kind}
}

func (s *Source) Location() string {
	return s.url
}

func (s *Source) Fetch(ctx context.Context) (internal.Payload, error) {
	body, contentType, err := s.client.Get(ctx, s.url)
	if err != nil {
		return internal.Payload{}, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	kind := s.kind
	if kind == "" {
		kind = inferKind(s.url, contentType, body)
	}
	return internal.Payload{Kind: kind, Location: s.url, Body: body}, nil
}

func inferKind(rawURL, contentType string, body []byte) internal.SourceKind {
	if u, err := url.Parse(rawURL); err == nil {
		if kind := internal.KindFromExt(u.Path); kind != "" {
			return kind
		}
	}
	if kind := kindFromContentType(contentType); kind != "" {
		return kind
	}
	return sniffKind(body)
}

func kindFromContentType(contentType string) internal.SourceKind {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch {
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return internal.SourceHTML
	case strings.Contains(mediaType, "spreadsheetml"):
		return internal.SourceXLSX
	case mediaType == "text/csv" || mediaType == "application/csv" || mediaType == "text/plain":
		return internal.SourceCSV
	default:
		return ""
	}
}

func sniffKind(body []byte) internal.SourceKind {
	if bytes.HasPrefix(body, []byte("PK\x03\x04")) {
		return internal.SourceXLSX
	}
	head := body
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.ToLower(bytes.TrimSpace(head))
	if bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html")) || bytes.Contains(head, []byte("<table")) {
		return internal.SourceHTML
	}
	return internal.SourceCSV
}
