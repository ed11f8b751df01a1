// Package config loads LinkSpark settings from LINKSPARK_* environment
// variables. Command-line flags registered by RegisterFlags override them.
package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the runtime configuration of the CLI
type Config struct {
	DBPath       string        `env:"LINKSPARK_DB"            envDefault:"linkspark.db"`
	EventsDBPath string        `env:"LINKSPARK_EVENTS_DB"     envDefault:"linkspark-events.db"`
	Timezone     string        `env:"LINKSPARK_TIMEZONE"      envDefault:"Local"`
	Debounce     time.Duration `env:"LINKSPARK_DEBOUNCE"      envDefault:"300ms"`
	ContactDelay time.Duration `env:"LINKSPARK_CONTACT_DELAY" envDefault:"1s"`
	Analytics    bool          `env:"LINKSPARK_ANALYTICS"     envDefault:"true"`
	Verbose      bool          `env:"LINKSPARK_VERBOSE"`
}

// Load reads the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env parsing cannot
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	// База событий хранит и сообщения обратной связи, поэтому нужна всегда
	if c.EventsDBPath == "" {
		return fmt.Errorf("events database path cannot be empty")
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce delay cannot be negative")
	}
	if c.ContactDelay < 0 {
		return fmt.Errorf("contact delay cannot be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// RegisterFlags binds global flags to c; the current values become defaults
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.DBPath, "db", c.DBPath, "Path to local history database")
	fs.StringVar(&c.EventsDBPath, "events-db", c.EventsDBPath, "Path to local events database")
	fs.StringVar(&c.Timezone, "tz", c.Timezone, "Time zone for event dates without offset")
	fs.DurationVar(&c.Debounce, "debounce", c.Debounce, "Delay before the live preview is regenerated")
	fs.BoolVar(&c.Analytics, "analytics", c.Analytics, "Record usage events locally")
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "Enable debug logging")
}

// Location resolves Timezone
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Logger creates the text logger used by the CLI
func (c Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
