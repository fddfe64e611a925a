package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
	reposqlite "github.com/dom/fantasy-draft-assistant/internal/repository/sqlite"
	"github.com/dom/fantasy-draft-assistant/internal/service"
	"github.com/dom/fantasy-draft-assistant/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct {
	result  *service.AnalysisResult
	err     error
	calls   int
	lastReq service.AnalysisRequest
}

func (s *stubAnalyzer) Analyze(_ context.Context, req service.AnalysisRequest) (*service.AnalysisResult, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func goodResult() *service.AnalysisResult {
	return &service.AnalysisResult{
		PlayingTimeScore: 2,
		InjuryRiskScore:  1,
		BreakoutScore:    4,
		BustScore:        1,
		KeyChanges:       "New play caller, expanded route tree.",
		Outlook:          "Weekly starter with upside.",
		Summary:          "Playing Time: 2/5 | Injury Risk: 1/5 | Breakout: 4/5 | Bust Risk: 1/5",
		Citations:        []string{"https://example.com/camp-report"},
	}
}

func newAnalysisService(t *testing.T, analyzer service.Analyzer) (*service.AnalysisService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := reposqlite.NewRepositories(testDB.DB)
	return service.NewAnalysisService(repos, analyzer, testutil.TestLogger()), testDB
}

func TestAnalysisService_EnsureAnalysis(t *testing.T) {
	analyzer := &stubAnalyzer{result: goodResult()}
	svc, testDB := newAnalysisService(t, analyzer)
	ctx := context.Background()
	testutil.SeedBoard(t, testDB.DB, 2025)

	analysis, err := svc.EnsureAnalysis(ctx, "Josh Allen", 2025, false)
	require.NoError(t, err)
	assert.Equal(t, "Josh Allen", analysis.PlayerName)
	assert.Equal(t, 4, analysis.BreakoutScore)
	assert.Equal(t, 1, analyzer.calls)
	assert.False(t, analysis.GeneratedAt.IsZero())
	assert.JSONEq(t, `["https://example.com/camp-report"]`, string(analysis.Citations))

	// The request carries board context.
	assert.Equal(t, domain.PositionQB, analyzer.lastReq.Position)
	assert.Equal(t, 35, analyzer.lastReq.Value)

	// Second call hits the cache.
	_, err = svc.EnsureAnalysis(ctx, "Josh Allen", 2025, false)
	require.NoError(t, err)
	assert.Equal(t, 1, analyzer.calls)

	// Force regenerates.
	_, err = svc.EnsureAnalysis(ctx, "Josh Allen", 2025, true)
	require.NoError(t, err)
	assert.Equal(t, 2, analyzer.calls)
}

func TestAnalysisService_EnsureAnalysis_UnknownPlayer(t *testing.T) {
	svc, testDB := newAnalysisService(t, &stubAnalyzer{result: goodResult()})
	ctx := context.Background()
	testutil.SeedBoard(t, testDB.DB, 2025)

	_, err := svc.EnsureAnalysis(ctx, "Nobody Special", 2025, false)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestAnalysisService_EnsureAnalysis_UpstreamFailure(t *testing.T) {
	svc, testDB := newAnalysisService(t, &stubAnalyzer{err: errors.New("rate limited")})
	ctx := context.Background()
	testutil.SeedBoard(t, testDB.DB, 2025)

	_, err := svc.EnsureAnalysis(ctx, "Josh Allen", 2025, false)
	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "llm", upstream.Source)
}

func TestAnalysisService_EnsureAnalysis_RejectsOutOfRangeScores(t *testing.T) {
	bad := goodResult()
	bad.InjuryRiskScore = 9
	svc, testDB := newAnalysisService(t, &stubAnalyzer{result: bad})
	ctx := context.Background()
	testutil.SeedBoard(t, testDB.DB, 2025)

	_, err := svc.EnsureAnalysis(ctx, "Josh Allen", 2025, false)
	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)

	// Nothing was cached.
	_, err = svc.GetAnalysis(ctx, "Josh Allen", 2025)
	assert.ErrorIs(t, err, domain.ErrAnalysisNotFound)
}

func TestAnalysisService_EnsureAnalysis_NoAnalyzer(t *testing.T) {
	svc, testDB := newAnalysisService(t, nil)
	ctx := context.Background()
	testutil.SeedBoard(t, testDB.DB, 2025)

	_, err := svc.EnsureAnalysis(ctx, "Josh Allen", 2025, false)
	var upstream *domain.UpstreamError
	assert.ErrorAs(t, err, &upstream)
}

func TestAnalysisService_RebuildTeammates(t *testing.T) {
	svc, testDB := newAnalysisService(t, nil)
	ctx := context.Background()
	testutil.SeedBoard(t, testDB.DB, 2025)

	n, err := svc.RebuildTeammates(ctx, 2025)
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	// PHI has Jalen Hurts and Saquon Barkley; each lists the other. SF pairs
	// Christian McCaffrey with the defense.
	teammates, err := svc.GetTeammates(ctx, "Jalen Hurts", 2025)
	require.NoError(t, err)
	require.Len(t, teammates, 1)
	assert.Equal(t, "Saquon Barkley", teammates[0].TeammateName)
	assert.Equal(t, domain.PositionRB, teammates[0].TeammatePosition)

	// Rebuilding again is idempotent.
	_, err = svc.RebuildTeammates(ctx, 2025)
	require.NoError(t, err)
	teammates, err = svc.GetTeammates(ctx, "Jalen Hurts", 2025)
	require.NoError(t, err)
	assert.Len(t, teammates, 1)
}
