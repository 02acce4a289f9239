// Package probability persists trained probability tables in PostgreSQL.
package probability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/myenglish-translit/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-translit/internal/domain"
	"github.com/heartmarshall/myenglish-translit/internal/model"
)

const (
	tablesTable  = "probability_tables"
	entriesTable = "probability_entries"

	// insertChunk bounds the number of rows per INSERT statement.
	insertChunk = 500
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Summary describes a stored table without its entries.
type Summary struct {
	ID        uuid.UUID
	TrainedAt time.Time
	Entries   int
}

// Repo provides access to probability_tables and probability_entries.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a new probability repository.
func New(pool *pgxpool.Pool, tx *postgres.TxManager) *Repo {
	return &Repo{pool: pool, tx: tx}
}

// Save stores t and all of its entries in one transaction.
func (r *Repo) Save(ctx context.Context, t *model.Table) error {
	if t.ID == uuid.Nil {
		return fmt.Errorf("save probability table: missing id: %w", domain.ErrValidation)
	}
	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		query, args, err := psql.Insert(tablesTable).
			Columns("id", "trained_at").
			Values(t.ID, t.TrainedAt.UTC()).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert table: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, "probability table", t.ID)
		}

		insert := r.entriesInsert()
		rows := 0
		for _, tag := range t.Tags() {
			for jamo, p := range t.Entries[tag] {
				insert = insert.Values(t.ID, tag, jamo, p)
				rows++
				if rows == insertChunk {
					if err := r.exec(ctx, q, insert, t.ID); err != nil {
						return err
					}
					insert, rows = r.entriesInsert(), 0
				}
			}
		}
		if rows > 0 {
			return r.exec(ctx, q, insert, t.ID)
		}
		return nil
	})
}

func (r *Repo) entriesInsert() squirrel.InsertBuilder {
	return psql.Insert(entriesTable).Columns("table_id", "tag", "jamo", "probability")
}

func (r *Repo) exec(ctx context.Context, q postgres.Querier, b squirrel.InsertBuilder, id uuid.UUID) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build insert entries: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "probability entries", id)
	}
	return nil
}

// Load returns the most recently trained table. It fails with
// domain.ErrNotFound when nothing has been stored and with
// domain.ErrValidation when a stored distribution does not sum to one.
func (r *Repo) Load(ctx context.Context) (*model.Table, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select("id", "trained_at").
		From(tablesTable).
		OrderBy("trained_at DESC", "created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select latest: %w", err)
	}

	var (
		id        uuid.UUID
		trainedAt time.Time
	)
	if err := q.QueryRow(ctx, query, args...).Scan(&id, &trainedAt); err != nil {
		return nil, postgres.MapError(err, "latest probability table", uuid.Nil)
	}
	return r.withEntries(ctx, q, id, trainedAt)
}

// Get returns the table with the given ID, validated like Load.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*model.Table, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select("trained_at").
		From(tablesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select table: %w", err)
	}

	var trainedAt time.Time
	if err := q.QueryRow(ctx, query, args...).Scan(&trainedAt); err != nil {
		return nil, postgres.MapError(err, "probability table", id)
	}
	return r.withEntries(ctx, q, id, trainedAt)
}

func (r *Repo) withEntries(ctx context.Context, q postgres.Querier, id uuid.UUID, trainedAt time.Time) (*model.Table, error) {
	query, args, err := psql.Select("tag", "jamo", "probability").
		From(entriesTable).
		Where(squirrel.Eq{"table_id": id}).
		OrderBy("tag", "jamo").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select entries: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "probability entries", id)
	}
	defer rows.Close()

	entries := make(map[string]map[string]float64)
	for rows.Next() {
		var (
			tag, jamo string
			p         float64
		)
		if err := rows.Scan(&tag, &jamo, &p); err != nil {
			return nil, postgres.MapError(err, "probability entries", id)
		}
		dist, ok := entries[tag]
		if !ok {
			dist = make(map[string]float64)
			entries[tag] = dist
		}
		dist[jamo] = p
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "probability entries", id)
	}

	t := &model.Table{ID: id, TrainedAt: trainedAt.UTC(), Entries: entries}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("probability table %s: %w", id, err)
	}
	return t, nil
}

// List returns stored tables, newest first.
func (r *Repo) List(ctx context.Context) ([]Summary, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select("t.id", "t.trained_at", "COUNT(e.tag)").
		From(tablesTable + " t").
		LeftJoin(entriesTable + " e ON e.table_id = t.id").
		GroupBy("t.id", "t.trained_at", "t.created_at").
		OrderBy("t.trained_at DESC", "t.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tables: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "probability tables", uuid.Nil)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.TrainedAt, &s.Entries); err != nil {
			return nil, postgres.MapError(err, "probability tables", uuid.Nil)
		}
		s.TrainedAt = s.TrainedAt.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "probability tables", uuid.Nil)
	}
	return out, nil
}

// Delete removes the table with the given ID together with its entries.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Delete(tablesTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete table: %w", err)
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "probability table", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "probability table", id)
	}
	return nil
}
