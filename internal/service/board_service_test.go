package service_test

import (
	"context"
	"testing"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
	reposqlite "github.com/dom/fantasy-draft-assistant/internal/repository/sqlite"
	"github.com/dom/fantasy-draft-assistant/internal/service"
	"github.com/dom/fantasy-draft-assistant/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoardService(t *testing.T) (*service.BoardService, *service.StatusService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := reposqlite.NewRepositories(testDB.DB)
	log := testutil.TestLogger()
	board := service.NewBoardService(repos, testutil.TestConfig(), log)
	status := service.NewStatusService(repos.Status, log)
	return board, status, testDB
}

func TestBoardService_AdjustValue(t *testing.T) {
	board, _, _ := newBoardService(t)

	tests := []struct {
		name string
		base int
		want int
	}{
		{"round trip at 100", 100, 111},
		{"half rounds up", 45, 50},
		{"zero stays zero", 0, 0},
		{"one dollar player", 1, 1},
		{"ten", 10, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, board.AdjustValue(tt.base))
		})
	}
}

func TestBoardService_ListPlayers(t *testing.T) {
	board, status, testDB := newBoardService(t)
	ctx := context.Background()
	testutil.SeedBoard(t, testDB.DB, 2025)

	t.Run("default excludes kickers and defenses", func(t *testing.T) {
		views, err := board.ListPlayers(ctx, service.BoardQuery{Season: 2025})
		require.NoError(t, err)
		assert.Len(t, views, 9)
		for _, v := range views {
			assert.NotEqual(t, domain.PositionK, v.Position)
			assert.NotEqual(t, domain.PositionDST, v.Position)
		}
	})

	t.Run("include all shows the full board", func(t *testing.T) {
		views, err := board.ListPlayers(ctx, service.BoardQuery{Season: 2025, IncludeAll: true})
		require.NoError(t, err)
		assert.Len(t, views, 11)
	})

	t.Run("explicit position filter overrides the default exclusion", func(t *testing.T) {
		views, err := board.ListPlayers(ctx, service.BoardQuery{
			Season:    2025,
			Positions: []domain.Position{domain.PositionK},
		})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Justin Tucker", views[0].PlayerName)
	})

	t.Run("ordered by overall rank with adjusted values", func(t *testing.T) {
		views, err := board.ListPlayers(ctx, service.BoardQuery{Season: 2025})
		require.NoError(t, err)
		require.NotEmpty(t, views)
		assert.Equal(t, "Christian McCaffrey", views[0].PlayerName)
		assert.Equal(t, 58, views[0].BaseValue)
		assert.Equal(t, 64, views[0].AdjustedValue)
		for i := 1; i < len(views); i++ {
			assert.GreaterOrEqual(t, views[i].RankOverall, views[i-1].RankOverall)
		}
	})

	t.Run("position order sorts within the group", func(t *testing.T) {
		views, err := board.ListPlayers(ctx, service.BoardQuery{
			Season:    2025,
			Positions: []domain.Position{domain.PositionRB},
			Order:     domain.OrderByPosition,
		})
		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.Equal(t, "Christian McCaffrey", views[0].PlayerName)
		assert.Equal(t, "Saquon Barkley", views[1].PlayerName)
		assert.Equal(t, "Bijan Robinson", views[2].PlayerName)
	})

	t.Run("search is a case-insensitive substring", func(t *testing.T) {
		views, err := board.ListPlayers(ctx, service.BoardQuery{Season: 2025, Search: "mccaf"})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Christian McCaffrey", views[0].PlayerName)
	})

	t.Run("search with no hits returns an empty slice", func(t *testing.T) {
		views, err := board.ListPlayers(ctx, service.BoardQuery{Season: 2025, Search: "nobody"})
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		_, err := status.SetStatus(ctx, "Saquon Barkley", 2025, domain.StatusUpdate{Target: boolPtr(true)})
		require.NoError(t, err)

		views, err := board.ListPlayers(ctx, service.BoardQuery{
			Season:    2025,
			Status:    domain.StatusFilterTarget,
			Positions: []domain.Position{domain.PositionRB},
		})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Saquon Barkley", views[0].PlayerName)
	})

	t.Run("available hides drafted players", func(t *testing.T) {
		_, err := status.SetStatus(ctx, "Tyreek Hill", 2025, domain.StatusUpdate{
			Drafted:   boolPtr(true),
			DraftedBy: strPtr("Bob"),
		})
		require.NoError(t, err)

		views, err := board.ListPlayers(ctx, service.BoardQuery{Season: 2025, Status: domain.StatusFilterAvailable})
		require.NoError(t, err)
		for _, v := range views {
			assert.NotEqual(t, "Tyreek Hill", v.PlayerName)
		}
	})

	t.Run("rejects a non-positive season", func(t *testing.T) {
		_, err := board.ListPlayers(ctx, service.BoardQuery{Season: 0})
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestBoardService_GetBoard(t *testing.T) {
	board, _, testDB := newBoardService(t)
	ctx := context.Background()
	testutil.SeedBoard(t, testDB.DB, 2025)

	grouped, err := board.GetBoard(ctx, service.BoardQuery{Season: 2025})
	require.NoError(t, err)

	assert.Len(t, grouped.QB, 2)
	assert.Len(t, grouped.RB, 3)
	assert.Len(t, grouped.WR, 2)
	assert.Len(t, grouped.TE, 2)

	// Columns are ordered by position rank.
	assert.Equal(t, "Josh Allen", grouped.QB[0].PlayerName)
	assert.Equal(t, "Travis Kelce", grouped.TE[0].PlayerName)

	// The default layout carries no K/DST columns.
	assert.Empty(t, grouped.K)
	assert.Empty(t, grouped.DST)
}

func TestBoardService_GetBoard_IncludeAll(t *testing.T) {
	board, _, testDB := newBoardService(t)
	ctx := context.Background()
	testutil.SeedBoard(t, testDB.DB, 2025)

	grouped, err := board.GetBoard(ctx, service.BoardQuery{Season: 2025, IncludeAll: true})
	require.NoError(t, err)

	require.Len(t, grouped.K, 1)
	assert.Equal(t, "Justin Tucker", grouped.K[0].PlayerName)
	require.Len(t, grouped.DST, 1)
	assert.Equal(t, "49ers D/ST", grouped.DST[0].PlayerName)
	assert.Len(t, grouped.QB, 2)
}

func TestBoardService_GetBoard_ExplicitPositionFilter(t *testing.T) {
	board, _, testDB := newBoardService(t)
	ctx := context.Background()
	testutil.SeedBoard(t, testDB.DB, 2025)

	grouped, err := board.GetBoard(ctx, service.BoardQuery{
		Season:    2025,
		Positions: []domain.Position{domain.PositionK},
	})
	require.NoError(t, err)

	require.Len(t, grouped.K, 1)
	assert.Equal(t, "Justin Tucker", grouped.K[0].PlayerName)
	assert.Empty(t, grouped.QB)
	assert.Empty(t, grouped.DST)
}

func TestBoardService_PresenceFlags(t *testing.T) {
	board, _, testDB := newBoardService(t)
	ctx := context.Background()
	testutil.SeedBoard(t, testDB.DB, 2025)
	testutil.NewAnalysisBuilder("Josh Allen").Build(t, testDB.DB)

	views, err := board.ListPlayers(ctx, service.BoardQuery{Season: 2025, Search: "allen"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].HasAnalysis)
	assert.False(t, views[0].HasTeammates)
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
