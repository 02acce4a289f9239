//go:build integration

package testhelper

import (
	"context"
	"testing"
	"time"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	table := SeedTable(t, pool, time.Now(), map[string]map[string]float64{
		"AE": {"ㅐ": 0.5, "ㅏ": 0.5},
	})

	var count int
	err := pool.QueryRow(
		context.Background(),
		`SELECT COUNT(*) FROM probability_entries WHERE table_id = $1`,
		table.ID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("expected entries in DB, got error: %v", err)
	}

	if count != 2 {
		t.Fatalf("expected 2 entries, got %d", count)
	}
}
