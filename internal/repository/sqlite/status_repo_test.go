package sqlite_test

import (
	"context"
	"testing"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/dom/fantasy-draft-assistant/internal/repository/sqlite"
	"github.com/dom/fantasy-draft-assistant/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestStatusRepository_Get_MissingRowDefaults(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewStatusRepository(testDB.DB)
	ctx := context.Background()

	status, err := repo.Get(ctx, "Josh Allen", 2025)
	require.NoError(t, err)
	assert.Equal(t, "Josh Allen", status.PlayerName)
	assert.Equal(t, 2025, status.Season)
	assert.False(t, status.Target)
	assert.False(t, status.Drafted)
	assert.Zero(t, status.ID, "missing row is not persisted by a read")
}

func TestStatusRepository_Apply_CreatesOnFirstWrite(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewStatusRepository(testDB.DB)
	ctx := context.Background()

	status, err := repo.Apply(ctx, "Josh Allen", 2025, domain.StatusUpdate{Target: boolPtr(true)})
	require.NoError(t, err)
	assert.NotZero(t, status.ID)
	assert.True(t, status.Target)

	// Re-read sees the persisted row.
	got, err := repo.Get(ctx, "Josh Allen", 2025)
	require.NoError(t, err)
	assert.Equal(t, status.ID, got.ID)
	assert.True(t, got.Target)
}

func TestStatusRepository_Apply_MergesIntoExistingRow(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewStatusRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Apply(ctx, "Josh Allen", 2025, domain.StatusUpdate{Notes: strPtr("Keeper league hold.")})
	require.NoError(t, err)

	status, err := repo.Apply(ctx, "Josh Allen", 2025, domain.StatusUpdate{Drafted: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, status.Drafted)
	assert.Equal(t, "Keeper league hold.", status.Notes)

	// Only one row per (player, season).
	var count int64
	require.NoError(t, testDB.DB.Model(&domain.DraftStatus{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStatusRepository_Apply_ExclusionRulePersists(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewStatusRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Apply(ctx, "Josh Allen", 2025, domain.StatusUpdate{Target: boolPtr(true)})
	require.NoError(t, err)
	_, err = repo.Apply(ctx, "Josh Allen", 2025, domain.StatusUpdate{Drafted: boolPtr(true), DraftedBy: strPtr("Bob")})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "Josh Allen", 2025)
	require.NoError(t, err)
	assert.True(t, got.Drafted)
	assert.False(t, got.Target)
	assert.Equal(t, "Bob", got.DraftedBy)
}

func TestStatusRepository_ListForSeason(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewStatusRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Apply(ctx, "Josh Allen", 2025, domain.StatusUpdate{Target: boolPtr(true)})
	require.NoError(t, err)
	_, err = repo.Apply(ctx, "Tyreek Hill", 2025, domain.StatusUpdate{Avoid: boolPtr(true)})
	require.NoError(t, err)
	_, err = repo.Apply(ctx, "Josh Allen", 2024, domain.StatusUpdate{Drafted: boolPtr(true)})
	require.NoError(t, err)

	statuses, err := repo.ListForSeason(ctx, 2025)
	require.NoError(t, err)
	assert.Len(t, statuses, 2)
}
