package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Source     string
	SourceKind string
	DBPath     string
	OutputDir  string
	VocabPath  string

	HTTPAddr          string
	HTTPTimeoutMs     int
	HTTPRateLimitRPS  int
	SourceCacheTTLSec int
	ReloadIntervalSec int
	ReloadExport      bool
	CORSOrigins       []string

	SheetsAPIKey       string
	SheetsClientID     string
	SheetsClientSecret string
	SheetsRedirectURI  string
	SheetsRefreshToken string
	SheetsRange        string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Source:     getEnv("SOURCE", "curadoria_bsb.csv"),
		SourceKind: getEnv("SOURCE_KIND", ""),
		DBPath:     getEnv("DB_PATH", filepath.Join(cwd, "data", "curadoria.db")),
		OutputDir:  getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		VocabPath:  getEnv("VOCAB_PATH", ""),

		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		HTTPTimeoutMs:     getEnvInt("HTTP_TIMEOUT_MS", 30000),
		HTTPRateLimitRPS:  getEnvInt("HTTP_RATE_LIMIT_RPS", 2),
		SourceCacheTTLSec: getEnvInt("SOURCE_CACHE_TTL_SEC", 0),
		ReloadIntervalSec: getEnvInt("RELOAD_INTERVAL_SEC", 300),
		ReloadExport:      getEnvBool("RELOAD_EXPORT_SNAPSHOTS", false),
		CORSOrigins:       getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		SheetsAPIKey:       getEnv("SHEETS_API_KEY", ""),
		SheetsClientID:     getEnv("SHEETS_CLIENT_ID", ""),
		SheetsClientSecret: getEnv("SHEETS_CLIENT_SECRET", ""),
		SheetsRedirectURI:  getEnv("SHEETS_REDIRECT_URI", "https://developers.google.com/oauthplayground"),
		SheetsRefreshToken: getEnv("SHEETS_REFRESH_TOKEN", ""),
		SheetsRange:        getEnv("SHEETS_RANGE", "A1:Z"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	return value == "1" || value == "true" || value == "yes"
}

func getEnvList(key string, fallback []string) []string {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
