package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	drivers    = []string{DriverFile, DriverPostgres, DriverBadger}
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if c.Store.Driver == DriverPostgres && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for the %s store driver", DriverPostgres)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Translit.validate(); err != nil {
		return fmt.Errorf("translit: %w", err)
	}

	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}

func (s *StoreConfig) validate() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	if !slices.Contains(drivers, s.Driver) {
		return fmt.Errorf("driver must be one of %v (got %q)", drivers, s.Driver)
	}
	if s.Driver == DriverFile && s.Path == "" {
		return fmt.Errorf("path is required for the %s driver", DriverFile)
	}
	if s.Driver == DriverBadger && s.BadgerDir == "" {
		return fmt.Errorf("badger_dir is required for the %s driver", DriverBadger)
	}
	return nil
}

func (t *TranslitConfig) validate() error {
	if t.MaxCandidates < 0 {
		return fmt.Errorf("max_candidates must be >= 0 (got %d)", t.MaxCandidates)
	}
	if t.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", t.Workers)
	}
	return nil
}

func (l *LogConfig) validate() error {
	if !slices.Contains(logLevels, strings.ToLower(l.Level)) {
		return fmt.Errorf("level must be one of %v (got %q)", logLevels, l.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(l.Format)) {
		return fmt.Errorf("format must be one of %v (got %q)", logFormats, l.Format)
	}
	return nil
}
