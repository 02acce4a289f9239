package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/myenglish-translit/internal/adapter/badgerstore"
	"github.com/heartmarshall/myenglish-translit/internal/adapter/filestore"
	"github.com/heartmarshall/myenglish-translit/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-translit/internal/adapter/postgres/probability"
	"github.com/heartmarshall/myenglish-translit/internal/config"
	"github.com/heartmarshall/myenglish-translit/internal/model"
	"github.com/heartmarshall/myenglish-translit/migrations"
)

// TableStore persists trained probability tables. Load returns the most
// recent table or an error wrapping domain.ErrNotFound.
type TableStore interface {
	Save(ctx context.Context, t *model.Table) error
	Load(ctx context.Context) (*model.Table, error)
}

// Compile-time interface assertions.
var (
	_ TableStore = (*filestore.Store)(nil)
	_ TableStore = (*badgerstore.Store)(nil)
	_ TableStore = (*probability.Repo)(nil)
)

// OpenStore opens the store selected by cfg.Store.Driver. The returned
// function releases its resources and must be called once.
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (TableStore, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverFile:
		log.Debug("using file store", slog.String("path", cfg.Store.Path))
		return filestore.New(cfg.Store.Path), func() {}, nil

	case config.DriverBadger:
		s, err := badgerstore.Open(cfg.Store.BadgerDir)
		if err != nil {
			return nil, nil, err
		}
		log.Debug("using badger store", slog.String("dir", cfg.Store.BadgerDir))
		return s, func() {
			if err := s.Close(); err != nil {
				log.Error("close badger store", slog.String("error", err.Error()))
			}
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Database.AutoMigrate {
			applied, err := postgres.Migrate(ctx, pool, migrations.FS)
			if err != nil {
				pool.Close()
				return nil, nil, err
			}
			log.Info("migrations applied", slog.Int("count", applied))
		}
		log.Debug("using postgres store")
		return probability.New(pool, postgres.NewTxManager(pool)), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
