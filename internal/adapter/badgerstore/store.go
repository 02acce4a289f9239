// Package badgerstore keeps a probability table in an embedded Badger
// database: one meta record plus one record per tag.
package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
	"github.com/heartmarshall/myenglish-translit/internal/model"
)

const (
	metaKey    = "meta"
	probPrefix = "prob:"

	// batchSize bounds the number of tags written per transaction.
	batchSize = 500
)

type meta struct {
	Format    string    `json:"format"`
	ID        uuid.UUID `json:"id"`
	TrainedAt time.Time `json:"trained_at"`
	Tags      int       `json:"tags"`
}

// Store wraps a Badger database holding at most one table.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("open badger %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a database that lives only in memory.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save replaces the stored table with t. The meta record is removed first
// and written last, so an interrupted save leaves no loadable table.
func (s *Store) Save(ctx context.Context, t *model.Table) error {
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(metaKey))
	}); err != nil {
		return fmt.Errorf("clear meta: %w", err)
	}
	if err := s.dropEntries(ctx); err != nil {
		return fmt.Errorf("drop old entries: %w", err)
	}

	tags := t.Tags()
	for i := 0; i < len(tags); i += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		chunk := tags[i:min(len(tags), i+batchSize)]
		if err := s.db.Update(func(txn *badger.Txn) error {
			for _, tag := range chunk {
				val, err := json.Marshal(t.Entries[tag])
				if err != nil {
					return err
				}
				if err := txn.Set([]byte(probPrefix+tag), val); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return fmt.Errorf("write entries chunk %d: %w", i, err)
		}
	}

	val, err := json.Marshal(meta{
		Format:    model.Format,
		ID:        t.ID,
		TrainedAt: t.TrainedAt.UTC(),
		Tags:      len(tags),
	})
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(metaKey), val)
	}); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return nil
}

func (s *Store) dropEntries(ctx context.Context) error {
	var keys [][]byte
	if err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(probPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	}); err != nil {
		return err
	}

	for i := 0; i < len(keys); i += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		chunk := keys[i:min(len(keys), i+batchSize)]
		if err := s.db.Update(func(txn *badger.Txn) error {
			for _, k := range chunk {
				if err := txn.Delete(k); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// Load returns the stored table or domain.ErrNotFound.
func (s *Store) Load(ctx context.Context) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		m       meta
		entries = make(map[string]map[string]float64)
	)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(metaKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("badger table: %w", domain.ErrNotFound)
		}
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &m)
		}); err != nil {
			return fmt.Errorf("decode meta: %w", err)
		}
		if m.Format != model.Format {
			return fmt.Errorf("format %q: %w", m.Format, domain.ErrUnsupportedFormat)
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(probPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			tag := strings.TrimPrefix(string(item.Key()), probPrefix)
			var dist map[string]float64
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &dist)
			}); err != nil {
				return fmt.Errorf("decode tag %q: %w", tag, err)
			}
			entries[tag] = dist
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(entries) != m.Tags {
		return nil, fmt.Errorf("badger table: %d of %d tags present: %w", len(entries), m.Tags, domain.ErrValidation)
	}

	t := &model.Table{ID: m.ID, TrainedAt: m.TrainedAt.UTC(), Entries: entries}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
