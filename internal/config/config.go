package config

import "time"

// Store drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
)

// Config is the root application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Store    StoreConfig    `yaml:"store"`
	Translit TranslitConfig `yaml:"translit"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only used by the
// postgres store driver.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// StoreConfig selects where trained probability tables are kept.
type StoreConfig struct {
	Driver    string `yaml:"driver"     env:"STORE_DRIVER"     env-default:"file"`
	Path      string `yaml:"path"       env:"STORE_PATH"       env-default:"./data/probabilities.json"`
	BadgerDir string `yaml:"badger_dir" env:"STORE_BADGER_DIR" env-default:"./data/badger"`
}

// TranslitConfig holds pipeline and input settings.
type TranslitConfig struct {
	CMUDictPath   string `yaml:"cmudict_path"   env:"TRANSLIT_CMUDICT_PATH"   env-default:"./data/cmudict.dict"`
	CorpusPath    string `yaml:"corpus_path"    env:"TRANSLIT_CORPUS_PATH"    env-default:"./data/corpus.txt"`
	MaxCandidates int    `yaml:"max_candidates" env:"TRANSLIT_MAX_CANDIDATES" env-default:"10000"`
	// Workers is the number of training shards and concurrent batch
	// predictions. 0 means GOMAXPROCS.
	Workers int `yaml:"workers" env:"TRANSLIT_WORKERS" env-default:"0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
