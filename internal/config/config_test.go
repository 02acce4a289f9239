package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

// chdirTemp runs the test from an empty directory so that no stray
// ./config.yaml is picked up.
func chdirTemp(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
}

const validYAML = `
log:
  level: "debug"
  format: "text"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2
  max_conn_lifetime: "2h"

store:
  driver: "postgres"

translit:
  cmudict_path: "/srv/cmudict.dict"
  corpus_path: "/srv/corpus.txt"
  max_candidates: 500
  workers: 3
`

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Database.MaxConnLifetime != 2*time.Hour {
		t.Errorf("database.max_conn_lifetime = %v, want 2h", cfg.Database.MaxConnLifetime)
	}
	if cfg.Database.MaxConnIdleTime != 30*time.Minute {
		t.Errorf("database.max_conn_idle_time = %v, want default 30m", cfg.Database.MaxConnIdleTime)
	}
	if cfg.Store.Driver != DriverPostgres {
		t.Errorf("store.driver = %q, want %q", cfg.Store.Driver, DriverPostgres)
	}
	if cfg.Translit.CMUDictPath != "/srv/cmudict.dict" {
		t.Errorf("translit.cmudict_path = %q", cfg.Translit.CMUDictPath)
	}
	if cfg.Translit.MaxCandidates != 500 {
		t.Errorf("translit.max_candidates = %d, want 500", cfg.Translit.MaxCandidates)
	}
	if cfg.Translit.Workers != 3 {
		t.Errorf("translit.workers = %d, want 3", cfg.Translit.Workers)
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Store.Driver != DriverFile {
		t.Errorf("store.driver = %q, want %q", cfg.Store.Driver, DriverFile)
	}
	if cfg.Store.Path != "./data/probabilities.json" {
		t.Errorf("store.path = %q", cfg.Store.Path)
	}
	if cfg.Translit.MaxCandidates != 10000 {
		t.Errorf("translit.max_candidates = %d, want 10000", cfg.Translit.MaxCandidates)
	}
	if cfg.Translit.Workers != 0 {
		t.Errorf("translit.workers = %d, want 0", cfg.Translit.Workers)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("database.auto_migrate should default to true")
	}
}

func TestLoadPath_Explicit(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "store:\n  driver: badger\n  badger_dir: /tmp/tables\n")

	cfg, err := LoadPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.Driver != DriverBadger || cfg.Store.BadgerDir != "/tmp/tables" {
		t.Errorf("store = %+v", cfg.Store)
	}
}

func TestLoadPath_InvalidConfig(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "store:\n  driver: s3\n")

	_, err := LoadPath(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "config: validate") {
		t.Errorf("error = %q, want validation error", err.Error())
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("TRANSLIT_WORKERS", "7")
	t.Setenv("STORE_DRIVER", "badger")
	t.Setenv("STORE_BADGER_DIR", "/var/lib/translit")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Translit.Workers != 7 {
		t.Errorf("translit.workers = %d, want 7 (from env)", cfg.Translit.Workers)
	}
	if cfg.Store.Driver != DriverBadger {
		t.Errorf("store.driver = %q, want %q", cfg.Store.Driver, DriverBadger)
	}
	if cfg.Store.BadgerDir != "/var/lib/translit" {
		t.Errorf("store.badger_dir = %q", cfg.Store.BadgerDir)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Log:      LogConfig{Level: "info", Format: "json"},
			Database: DatabaseConfig{MaxConns: 4, MinConns: 1},
			Store:    StoreConfig{Driver: DriverFile, Path: "p.json", BadgerDir: "db"},
			Translit: TranslitConfig{MaxCandidates: 100},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "driver case", mutate: func(c *Config) { c.Store.Driver = " File " }},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "s3" }, wantErr: "store: driver must be one of"},
		{name: "file without path", mutate: func(c *Config) { c.Store.Path = "" }, wantErr: "path is required"},
		{
			name:    "badger without dir",
			mutate:  func(c *Config) { c.Store.Driver, c.Store.BadgerDir = DriverBadger, "" },
			wantErr: "badger_dir is required",
		},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Store.Driver = DriverPostgres }, wantErr: "database.dsn is required"},
		{name: "min over max conns", mutate: func(c *Config) { c.Database.MinConns = 9 }, wantErr: "min_conns"},
		{name: "negative candidates", mutate: func(c *Config) { c.Translit.MaxCandidates = -1 }, wantErr: "translit: max_candidates"},
		{name: "negative workers", mutate: func(c *Config) { c.Translit.Workers = -2 }, wantErr: "translit: workers"},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "verbose" }, wantErr: "log: level"},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log: format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
