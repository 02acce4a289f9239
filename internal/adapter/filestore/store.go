// Package filestore keeps a probability table in a single JSON file.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
	"github.com/heartmarshall/myenglish-translit/internal/model"
)

// envelope is the on-disk layout. Probabilities maps tag -> jamo -> p.
type envelope struct {
	Format        string                        `json:"format"`
	ID            uuid.UUID                     `json:"id"`
	TrainedAt     time.Time                     `json:"trained_at"`
	Probabilities map[string]map[string]float64 `json:"probabilities"`
}

// Store reads and writes one table file.
type Store struct {
	path string
}

// New creates a store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the file path of the store.
func (s *Store) Path() string { return s.path }

// Save writes t to a temporary file next to the target and renames it into
// place, so readers never observe a partial file.
func (s *Store) Save(ctx context.Context, t *model.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, t); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename to %s: %w", s.path, err)
	}
	return nil
}

// Load reads the table file. A missing file fails with domain.ErrNotFound.
func (s *Store) Load(ctx context.Context) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("probability file %s: %w", s.path, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	return t, nil
}

// Encode writes t to w in the current format.
func Encode(w io.Writer, t *model.Table) error {
	env := envelope{
		Format:        model.Format,
		ID:            t.ID,
		TrainedAt:     t.TrainedAt.UTC(),
		Probabilities: t.Entries,
	}
	if env.Probabilities == nil {
		env.Probabilities = map[string]map[string]float64{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encode probability table: %w", err)
	}
	return nil
}

// Decode reads a table written by Encode. Unknown format tags fail with
// domain.ErrUnsupportedFormat and inconsistent distributions with
// domain.ErrValidation.
func Decode(r io.Reader) (*model.Table, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode probability table: %w", err)
	}
	if env.Format != model.Format {
		return nil, fmt.Errorf("format %q: %w", env.Format, domain.ErrUnsupportedFormat)
	}
	if env.Probabilities == nil {
		env.Probabilities = make(map[string]map[string]float64)
	}

	t := &model.Table{
		ID:        env.ID,
		TrainedAt: env.TrainedAt.UTC(),
		Entries:   env.Probabilities,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
