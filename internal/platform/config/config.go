package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultHost            = "127.0.0.1"
	DefaultPort            = "8080"
	DefaultBackendURL      = "http://127.0.0.1:8000/"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10 * time.Second
)

// DefaultAllowedOrigins covers the UI dev servers and webview schemes a desktop shell serves from.
var DefaultAllowedOrigins = []string{
	"http://localhost:*",
	"http://127.0.0.1:*",
	"tauri://localhost",
	"http://tauri.localhost",
}

// Config holds process settings read from the environment.
type Config struct {
	Host            string
	Port            string
	BackendURL      string
	AllowedOrigins  []string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Addr is the listen address of the bridge.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Load reads an optional .env file from the working directory and then the environment.
// Variables already set in the environment win over .env entries.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, applying defaults and validation.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		Host:           get("BRIDGE_HOST", DefaultHost),
		Port:           get("PORT", DefaultPort),
		BackendURL:     get("BACKEND_URL", DefaultBackendURL),
		AllowedOrigins: DefaultAllowedOrigins,
		LogLevel:       strings.ToLower(get("LOG_LEVEL", DefaultLogLevel)),
	}

	if raw := get("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		cfg.AllowedOrigins = splitList(raw)
	}

	timeout := get("SHUTDOWN_TIMEOUT", "")
	cfg.ShutdownTimeout = DefaultShutdownTimeout
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parsing SHUTDOWN_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", d)
		}
		cfg.ShutdownTimeout = d
	}

	if err := validateBackendURL(cfg.BackendURL); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateBackendURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing BACKEND_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("BACKEND_URL must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("BACKEND_URL must include a host, got %q", raw)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
