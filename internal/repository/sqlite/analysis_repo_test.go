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

func TestAnalysisRepository_Upsert(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewAnalysisRepository(testDB.DB)
	ctx := context.Background()

	analysis := testutil.NewAnalysisBuilder("Josh Allen").Build(t, testDB.DB)

	// Regenerating replaces the cached row.
	analysis.BreakoutScore = 5
	analysis.Outlook = "League winner."
	require.NoError(t, repo.Upsert(ctx, analysis))

	got, err := repo.Get(ctx, "Josh Allen", 2025)
	require.NoError(t, err)
	assert.Equal(t, 5, got.BreakoutScore)
	assert.Equal(t, "League winner.", got.Outlook)

	var count int64
	require.NoError(t, testDB.DB.Model(&domain.PlayerAnalysis{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAnalysisRepository_Get_Missing(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewAnalysisRepository(testDB.DB)

	_, err := repo.Get(context.Background(), "Josh Allen", 2025)
	assert.ErrorIs(t, err, domain.ErrAnalysisNotFound)
}

func TestAnalysisRepository_NamesWithAnalysis(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewAnalysisRepository(testDB.DB)
	ctx := context.Background()

	testutil.NewAnalysisBuilder("Josh Allen").Build(t, testDB.DB)
	testutil.NewAnalysisBuilder("Tyreek Hill").Build(t, testDB.DB)
	testutil.NewAnalysisBuilder("Travis Kelce").WithSeason(2024).Build(t, testDB.DB)

	names, err := repo.NamesWithAnalysis(ctx, 2025)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Josh Allen", "Tyreek Hill"}, names)
}

func TestTeammateRepository_GetForPlayer_PositionOrdering(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewTeammateRepository(testDB.DB)
	ctx := context.Background()

	rows := []*domain.PlayerTeammate{
		{PlayerName: "Saquon Barkley", TeammateName: "DeVonta Smith", Season: 2025, TeammatePosition: domain.PositionWR},
		{PlayerName: "Saquon Barkley", TeammateName: "Jalen Hurts", Season: 2025, TeammatePosition: domain.PositionQB},
		{PlayerName: "Saquon Barkley", TeammateName: "Dallas Goedert", Season: 2025, TeammatePosition: domain.PositionTE},
		{PlayerName: "Saquon Barkley", TeammateName: "A.J. Brown", Season: 2025, TeammatePosition: domain.PositionWR},
	}
	require.NoError(t, repo.UpsertMany(ctx, rows))

	teammates, err := repo.GetForPlayer(ctx, "Saquon Barkley", 2025)
	require.NoError(t, err)
	require.Len(t, teammates, 4)

	// QB first, then WRs alphabetically, then TE.
	assert.Equal(t, "Jalen Hurts", teammates[0].TeammateName)
	assert.Equal(t, "A.J. Brown", teammates[1].TeammateName)
	assert.Equal(t, "DeVonta Smith", teammates[2].TeammateName)
	assert.Equal(t, "Dallas Goedert", teammates[3].TeammateName)
}

func TestTeammateRepository_UpsertMany_Idempotent(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := sqlite.NewTeammateRepository(testDB.DB)
	ctx := context.Background()

	rows := []*domain.PlayerTeammate{
		{PlayerName: "Saquon Barkley", TeammateName: "Jalen Hurts", Season: 2025, TeammatePosition: domain.PositionQB},
	}
	require.NoError(t, repo.UpsertMany(ctx, rows))
	require.NoError(t, repo.UpsertMany(ctx, rows))

	teammates, err := repo.GetForPlayer(ctx, "Saquon Barkley", 2025)
	require.NoError(t, err)
	assert.Len(t, teammates, 1)
}
