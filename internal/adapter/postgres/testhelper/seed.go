package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/myenglish-translit/internal/model"
)

// SeedTable inserts a probability table with the given entries directly,
// bypassing the repository. Returns the stored table.
func SeedTable(t *testing.T, pool *pgxpool.Pool, trainedAt time.Time, entries map[string]map[string]float64) *model.Table {
	t.Helper()
	ctx := context.Background()

	table := &model.Table{
		ID:        uuid.New(),
		TrainedAt: trainedAt.UTC().Truncate(time.Microsecond),
		Entries:   entries,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO probability_tables (id, trained_at) VALUES ($1, $2)`,
		table.ID, table.TrainedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTable insert table: %v", err)
	}

	for tag, dist := range entries {
		for jamo, p := range dist {
			_, err := pool.Exec(ctx,
				`INSERT INTO probability_entries (table_id, tag, jamo, probability) VALUES ($1, $2, $3, $4)`,
				table.ID, tag, jamo, p,
			)
			if err != nil {
				t.Fatalf("testhelper: SeedTable insert entry %s/%s: %v", tag, jamo, err)
			}
		}
	}

	return table
}
