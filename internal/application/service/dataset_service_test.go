package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/config"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/dataset"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/infrastructure/storage"
)

func datasetConfig() config.DatasetConfig {
	return config.DatasetConfig{RetentionYears: 1, CacheTTLMinutes: 60}
}

func seededRepo(now time.Time) *storage.MockRepository {
	repo := storage.NewMockRepository()
	repo.AddTransaction(dataset.Transaction{
		Date: now.AddDate(0, -1, 0), ItemName: "Flour", Department: "Bakery", Quantity: 40,
	})
	repo.AddTransaction(dataset.Transaction{
		Date: now.AddDate(-1, 0, 0), ItemName: "Flour", Department: "Pastry", Quantity: 10,
	})
	// Older than the retention window: never part of a snapshot.
	repo.AddTransaction(dataset.Transaction{
		Date: now.AddDate(-3, 0, 0), ItemName: "Flour", Department: "Grill", Quantity: 99,
	})
	return repo
}

func TestDatasetService_SnapshotAppliesRetentionWindow(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	svc := NewDatasetService(seededRepo(now), datasetConfig(), nil)
	svc.now = func() time.Time { return now }

	snap, err := svc.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, 2, snap.Len())
	assert.ElementsMatch(t, []string{"Bakery", "Pastry"}, snap.Departments())
}

func TestDatasetService_SnapshotIsCached(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := seededRepo(now)
	svc := NewDatasetService(repo, datasetConfig(), nil)
	svc.now = func() time.Time { return now }

	first, err := svc.Snapshot()
	require.NoError(t, err)

	// A row added behind the cache is not visible until expiry.
	repo.AddTransaction(dataset.Transaction{
		Date: now, ItemName: "Sugar", Department: "Pastry", Quantity: 5,
	})

	second, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Same(t, first, second)

	// Advance past the TTL: the next call rebuilds.
	now = now.Add(61 * time.Minute)
	third, err := svc.Snapshot()
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 3, third.Len())
}

func TestDatasetService_RefreshForcesRebuild(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := seededRepo(now)
	svc := NewDatasetService(repo, datasetConfig(), nil)
	svc.now = func() time.Time { return now }

	first, err := svc.Snapshot()
	require.NoError(t, err)

	repo.AddTransaction(dataset.Transaction{
		Date: now, ItemName: "Sugar", Department: "Pastry", Quantity: 5,
	})

	refreshed, err := svc.Refresh()
	require.NoError(t, err)
	assert.NotSame(t, first, refreshed)
	assert.Equal(t, 3, refreshed.Len())
}

func TestDatasetService_RecordIssuanceInvalidates(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := seededRepo(now)
	svc := NewDatasetService(repo, datasetConfig(), nil)
	svc.now = func() time.Time { return now }

	_, err := svc.Snapshot()
	require.NoError(t, err)

	tx := dataset.Transaction{Date: now, ItemName: "Butter", Department: "Pastry", Quantity: 2}
	require.NoError(t, svc.RecordIssuance(&tx))
	assert.NotZero(t, tx.ID)
	assert.NotEmpty(t, tx.Reference)

	snap, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Len())
	assert.Contains(t, snap.Items(), "Butter")
}

func TestDatasetService_RecordIssuancePropagatesError(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := seededRepo(now)
	repo.SaveErr = assert.AnError
	svc := NewDatasetService(repo, datasetConfig(), nil)
	svc.now = func() time.Time { return now }

	tx := dataset.Transaction{Date: now, ItemName: "Butter", Department: "Pastry", Quantity: 2}
	err := svc.RecordIssuance(&tx)
	assert.ErrorIs(t, err, assert.AnError)
}
