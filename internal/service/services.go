package service

import (
	"context"

	"github.com/dom/fantasy-draft-assistant/internal/config"
	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/dom/fantasy-draft-assistant/internal/repository"
	"github.com/sirupsen/logrus"
)

// Analyzer produces a risk assessment for one player. The LLM client
// implements it; tests substitute a stub.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error)
}

// StatsSource fetches a player's biographical data and season statistics from
// the upstream site. The scraper implements it. Stat rows come back with the
// Team relation holding only an abbreviation; the stats service resolves IDs.
type StatsSource interface {
	Search(ctx context.Context, name string) ([]string, error)
	PlayerInfo(ctx context.Context, sourceID string) (*domain.Player, error)
	PlayerStats(ctx context.Context, sourceID string) ([]domain.PassingStats, []domain.RushingStats, []domain.ReceivingStats, error)
}

// Deps carries everything the service graph needs. Analyzer and Source may be
// nil; the corresponding operations then fail with an upstream error.
type Deps struct {
	Repos    *repository.Repositories
	Config   *config.Config
	Logger   *logrus.Logger
	Analyzer Analyzer
	Source   StatsSource
}

type Services struct {
	Status   *StatusService
	Board    *BoardService
	Analysis *AnalysisService
	Stats    *StatsService
}

func NewServices(deps Deps) *Services {
	board := NewBoardService(deps.Repos, deps.Config, deps.Logger)
	return &Services{
		Status:   NewStatusService(deps.Repos.Status, deps.Logger),
		Board:    board,
		Analysis: NewAnalysisService(deps.Repos, deps.Analyzer, deps.Logger),
		Stats:    NewStatsService(deps.Repos, board, deps.Source, deps.Logger),
	}
}
