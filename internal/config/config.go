// Package config holds runtime configuration shared by the CLI commands.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration.
type Config struct {
	// WebhookURL receives result submissions. Empty disables delivery.
	WebhookURL string `yaml:"webhook_url"`

	// SubmitTimeout bounds a single delivery attempt. Default: 10s.
	SubmitTimeout time.Duration `yaml:"submit_timeout"`

	// SubmitAttempts is the maximum number of delivery attempts. Default: 1.
	// The receiver does not deduplicate, so a resend after a 5xx or a timeout
	// can append the same lead twice.
	SubmitAttempts int `yaml:"submit_attempts"`

	// CatalogPath points to a catalog file. Empty uses the built-in catalog.
	CatalogPath string `yaml:"catalog"`

	// EventsDB is the delivery log database. Empty disables the log.
	EventsDB string `yaml:"events_db"`

	// Listen is the HTTP API address for serve. Default: ":8080".
	Listen string `yaml:"listen"`

	// AllowedOrigins lists CORS origins for the HTTP API. "*" allows any.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// LogLevel is a zap level name. Default: "info".
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SubmitTimeout:  10 * time.Second,
		SubmitAttempts: 1,
		Listen:         ":8080",
		AllowedOrigins: []string{"*"},
		LogLevel:       "info",
	}
}

// legacyWebhookEnv is read when RISKSCORE_WEBHOOK_URL is unset.
const legacyWebhookEnv = "REACT_APP_GOOGLE_SCRIPT_URL"

// FromEnv overlays environment variables on cfg.
func FromEnv(cfg Config) (Config, error) {
	if u := os.Getenv("RISKSCORE_WEBHOOK_URL"); u != "" {
		cfg.WebhookURL = u
	} else if u := os.Getenv(legacyWebhookEnv); u != "" {
		cfg.WebhookURL = u
	}

	if t := os.Getenv("RISKSCORE_SUBMIT_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return cfg, fmt.Errorf("RISKSCORE_SUBMIT_TIMEOUT: %w", err)
		}
		cfg.SubmitTimeout = d
	}
	if p := os.Getenv("RISKSCORE_CATALOG"); p != "" {
		cfg.CatalogPath = p
	}
	if p := os.Getenv("RISKSCORE_EVENTS_DB"); p != "" {
		cfg.EventsDB = p
	}
	if l := os.Getenv("RISKSCORE_LISTEN"); l != "" {
		cfg.Listen = l
	}
	if o := os.Getenv("RISKSCORE_ALLOWED_ORIGINS"); o != "" {
		cfg.AllowedOrigins = splitList(o)
	}
	if l := os.Getenv("RISKSCORE_LOG_LEVEL"); l != "" {
		cfg.LogLevel = l
	}

	return cfg, nil
}

// LoadFile overlays the YAML file at path on cfg. Keys missing from the file
// keep their current values.
func LoadFile(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Load builds the effective configuration: defaults, then the optional
// file, then the environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadFile(cfg, path); err != nil {
			return cfg, err
		}
	}
	cfg, err := FromEnv(cfg)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks that the values are usable.
// Returns a combined error describing all problems found, or nil if valid.
func (c Config) Validate() error {
	var errs []string

	if c.WebhookURL != "" {
		u, err := url.Parse(c.WebhookURL)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("webhook URL %q must be an absolute http(s) URL", c.WebhookURL))
		}
	}
	if c.SubmitTimeout <= 0 {
		errs = append(errs, "submit timeout must be positive")
	}
	if c.SubmitAttempts < 1 {
		errs = append(errs, "submit attempts must be at least 1")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("unknown log level %q", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
