// Package config loads the application configuration with precedence:
// built-in defaults, then an optional YAML file, then environment
// variables. The returned Config is read-only after Load.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Lookup   LookupConfig   `yaml:"lookup"`
	Auth     AuthConfig     `yaml:"auth"`
	SSO      SSOConfig      `yaml:"sso"`
	Log      LogConfig      `yaml:"log"`
	// TimeZone is the IANA zone used for day bucketing; empty means the
	// process zone.
	TimeZone string `yaml:"time_zone"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig selects and parameterizes the durable store.
type DatabaseConfig struct {
	// Driver is one of "sqlite", "postgres" or "memory".
	Driver string `yaml:"driver"`
	// Path is the SQLite database file (sqlite driver).
	Path string `yaml:"path"`
	// URL is the PostgreSQL connection string (postgres driver); env-only.
	URL string `yaml:"-"`
}

// LookupConfig contains nutrition lookup settings. The feature is disabled
// while the API key is empty.
type LookupConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"-"` // env-only, never in YAML
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	Disabled bool `yaml:"disabled"`
}

// SSOConfig contains optional OIDC single-sign-on settings. SSO is enabled
// when Issuer and ClientID are both set.
type SSOConfig struct {
	Issuer       string `yaml:"issuer"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"-"` // env-only, never in YAML
	RedirectURL  string `yaml:"redirect_url"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SlogLevel maps the configured level onto slog's scale.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Duration is a wrapper around time.Duration that supports YAML string
// parsing ("30s", "5m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func newDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(15 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "caltrack.db",
		},
		Lookup: LookupConfig{
			BaseURL: "https://api.nal.usda.gov/fdc",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration. A missing YAML file is not an error.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("CALTRACK_CONFIG_PATH", "config/caltrack.yaml")
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}
	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = getEnv("CALTRACK_ADDR", cfg.Server.Addr)
	cfg.Database.Driver = getEnv("CALTRACK_DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Path = getEnv("CALTRACK_DB_PATH", cfg.Database.Path)
	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)
	cfg.Lookup.BaseURL = getEnv("CALTRACK_LOOKUP_BASE_URL", cfg.Lookup.BaseURL)
	cfg.Lookup.APIKey = getEnv("CALTRACK_LOOKUP_API_KEY", cfg.Lookup.APIKey)
	cfg.SSO.ClientSecret = getEnv("CALTRACK_SSO_CLIENT_SECRET", cfg.SSO.ClientSecret)
	cfg.Log.Level = getEnv("CALTRACK_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("CALTRACK_LOG_FORMAT", cfg.Log.Format)
	cfg.TimeZone = getEnv("CALTRACK_TZ", cfg.TimeZone)

	if v := os.Getenv("CALTRACK_AUTH_DISABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Auth.Disabled = b
		}
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("config: sqlite driver requires database.path")
		}
	case "postgres":
		if c.Database.URL == "" {
			return errors.New("config: postgres driver requires DATABASE_URL")
		}
	case "memory":
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}
	if c.TimeZone != "" {
		if _, err := time.LoadLocation(c.TimeZone); err != nil {
			return fmt.Errorf("config: invalid time zone %q: %w", c.TimeZone, err)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
