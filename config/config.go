// Package config reads the client settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultTimeout  = 30 * time.Second
	DefaultPageSize = 50
)

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	PageSize  int
	LogLevel  slog.Level
	LogFormat string // text or json
	OutputDir string
	// CompanyName heads quotations whose template leaves it blank.
	CompanyName string
}

// Load reads .env from the working directory when present, then the
// HOCH_* environment variables. Real environment variables win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		BaseURL:     strings.TrimRight(get("HOCH_API_BASE_URL", DefaultBaseURL), "/"),
		Timeout:     DefaultTimeout,
		PageSize:    DefaultPageSize,
		LogFormat:   strings.ToLower(get("HOCH_LOG_FORMAT", "text")),
		OutputDir:   get("HOCH_OUTPUT_DIR", "."),
		CompanyName: get("HOCH_COMPANY_NAME", ""),
	}

	if v := get("HOCH_API_TIMEOUT", ""); v != "" {
		d, err := parseTimeout(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("HOCH_API_TIMEOUT: invalid duration %q", v)
		}
		cfg.Timeout = d
	}

	if v := get("HOCH_PAGE_SIZE", ""); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("HOCH_PAGE_SIZE: must be a positive number, got %q", v)
		}
		cfg.PageSize = n
	}

	level, err := ParseLevel(get("HOCH_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("HOCH_LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("HOCH_LOG_FORMAT: must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// parseTimeout reads a Go duration; a bare number is seconds.
func parseTimeout(v string) (time.Duration, error) {
	if n, err := cast.ToIntE(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return cast.ToDurationE(v)
}

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// NewLogger builds the process logger for the configured level and format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
