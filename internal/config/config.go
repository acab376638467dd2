package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mandalnilabja/bioalign/internal/landing"
)

// Config holds application configuration loaded from environment and file.
// Priority: CLI flags → Env vars → config.toml → defaults
type Config struct {
	// ServerPort is the address to bind the server to (e.g., ":8080")
	ServerPort string

	// BaseURL is the root of the companion alignment app the links point at
	BaseURL string

	Title       string
	Description string

	// Links are the navigation targets, in display order
	Links []NavLink

	// EnableAdmin enables the admin API at /api/admin
	EnableAdmin bool

	// RateLimit is requests per second allowed per client IP (0 = unlimited)
	RateLimit float64
	RateBurst int

	LogLevel  string
	LogFormat string

	// SentryDSN enables error reporting when set
	SentryDSN   string
	Environment string

	// DBPath is the SQLite database holding access logs
	DBPath string
}

// Overrides carries values set by CLI flags. Empty fields are ignored.
type Overrides struct {
	ConfigPath   string
	ServerPort   string
	BaseURL      string
	DisableAdmin bool
}

// Load reads configuration from file and environment variables.
// Environment variables override file config values, flags override both.
func Load(o Overrides) (*Config, error) {
	path := o.ConfigPath
	if path == "" {
		path = ConfigPath()
	}

	fileConfig, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	cfg := &Config{
		ServerPort:  getEnvOrFile("SERVER_PORT", fileConfig.ServerPort, ":8080"),
		BaseURL:     getEnvOrFile("BASE_URL", fileConfig.BaseURL, landing.DefaultBaseURL),
		Title:       getEnvOrFile("PAGE_TITLE", fileConfig.Title, landing.DefaultTitle),
		Description: getEnvOrFile("PAGE_DESCRIPTION", fileConfig.Description, landing.DefaultDescription),
		Links:       fileConfig.Links,
		EnableAdmin: getEnvBoolOrFile("ENABLE_ADMIN", fileConfig.EnableAdmin, true),
		RateLimit:   getEnvFloatOrFile("RATE_LIMIT", fileConfig.RateLimit, 20),
		RateBurst:   getEnvIntOrFile("RATE_BURST", fileConfig.RateBurst, 40),
		LogLevel:    getEnvOrFile("LOG_LEVEL", fileConfig.LogLevel, "info"),
		LogFormat:   getEnvOrFile("LOG_FORMAT", fileConfig.LogFormat, "text"),
		SentryDSN:   getEnvOrFile("SENTRY_DSN", fileConfig.SentryDSN, ""),
		Environment: getEnvOrFile("APP_ENV", fileConfig.Environment, "development"),
		DBPath:      getEnvOrFile("DB_PATH", fileConfig.DBPath, DBPath()),
	}

	if len(cfg.Links) == 0 {
		cfg.Links = DefaultLinks()
	}

	if o.ServerPort != "" {
		cfg.ServerPort = o.ServerPort
	}
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	if o.DisableAdmin {
		cfg.EnableAdmin = false
	}

	return cfg, nil
}

// DefaultLinks returns the built-in navigation routes.
func DefaultLinks() []NavLink {
	links := make([]NavLink, 0, len(landing.DefaultRoutes))
	for _, r := range landing.DefaultRoutes {
		links = append(links, NavLink{Label: r.Label, Route: r.Path})
	}
	return links
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return errors.New("server_port is required")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be >= 0, got %v", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be >= 1 when rate limiting, got %d", c.RateBurst)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	for i, l := range c.Links {
		if l.Route == "" && l.URL == "" {
			return fmt.Errorf("link %d (%q) needs a route or url", i, l.Label)
		}
	}
	if _, err := c.Page(); err != nil {
		return err
	}
	return nil
}

// Page builds the landing page described by this configuration.
func (c *Config) Page() (landing.Page, error) {
	links := make([]landing.Link, 0, len(c.Links))
	for _, l := range c.Links {
		target := l.URL
		if target == "" {
			target = landing.JoinURL(c.BaseURL, l.Route)
		}
		links = append(links, landing.Link{Label: l.Label, URL: target})
	}
	return landing.NewPage(c.Title, c.Description, links)
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// getEnvBoolOrFile returns env bool, file bool, or default (in priority order)
func getEnvBoolOrFile(key string, fileValue *bool, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		value = strings.ToLower(value)
		return value == "true" || value == "1" || value == "yes"
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}

// getEnvFloatOrFile ignores env values that do not parse.
func getEnvFloatOrFile(key string, fileValue *float64, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}

func getEnvIntOrFile(key string, fileValue *int, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}
