//go:build integration

package probability_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myenglish-translit/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-translit/internal/adapter/postgres/probability"
	"github.com/heartmarshall/myenglish-translit/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/myenglish-translit/internal/domain"
	"github.com/heartmarshall/myenglish-translit/internal/model"
)

func newRepo(t *testing.T) *probability.Repo {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return probability.New(pool, postgres.NewTxManager(pool))
}

func TestRepo_SaveLoad(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	// Far in the future so that it is the latest table in the shared DB.
	trainedAt := time.Date(2999, 1, 2, 3, 4, 5, 0, time.UTC)
	table := model.NewTable(map[string]map[string]float64{
		"AE": {"ㅐ": 0.5, "ㅏ": 0.5},
		"K":  {"ㅋ": 1},
		"":   {"ㅇ": 1},
	}, trainedAt)

	require.NoError(t, repo.Save(ctx, table))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, table.ID, got.ID)
	assert.True(t, trainedAt.Equal(got.TrainedAt))
	assert.Equal(t, table.Entries, got.Entries)
	require.NoError(t, got.Validate())

	byID, err := repo.Get(ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, table.Entries, byID.Entries)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, table.ID, list[0].ID)
	assert.Equal(t, 4, list[0].Entries)

	require.NoError(t, repo.Delete(ctx, table.ID))
	_, err = repo.Get(ctx, table.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_SaveLargeTable(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	entries := make(map[string]map[string]float64)
	for range 1200 {
		entries[uuid.NewString()] = map[string]float64{"ㅇ": 1}
	}
	table := model.NewTable(entries, time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, repo.Save(ctx, table))

	got, err := repo.Get(ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, 1200, got.Len())
}

func TestRepo_SaveDuplicate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	table := model.NewTable(map[string]map[string]float64{"K": {"ㅋ": 1}}, time.Now())
	require.NoError(t, repo.Save(ctx, table))

	err := repo.Save(ctx, table)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRepo_SaveRejectsOutOfRange(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	table := model.NewTable(map[string]map[string]float64{"K": {"ㅋ": 1.5}}, time.Now())
	err := repo.Save(ctx, table)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = repo.Get(ctx, table.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "transaction is rolled back")
}

func TestRepo_GetRejectsBrokenDistribution(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := probability.New(pool, postgres.NewTxManager(pool))
	ctx := context.Background()

	broken := testhelper.SeedTable(t, pool, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
		map[string]map[string]float64{"AE": {"ㅐ": 0.5, "ㅏ": 0.2}})
	t.Cleanup(func() { _ = repo.Delete(ctx, broken.ID) })

	_, err := repo.Get(ctx, broken.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRepo_GetUnknown(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
