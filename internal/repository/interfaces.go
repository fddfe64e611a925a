package repository

import (
	"context"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
)

type PlayerRepository interface {
	Upsert(ctx context.Context, player *domain.Player) error
	GetByPFRID(ctx context.Context, pfrID string) (*domain.Player, error)
	// SearchByName matches a case-insensitive substring of the name.
	SearchByName(ctx context.Context, name string) ([]*domain.Player, error)
}

type TeamRepository interface {
	GetOrCreate(ctx context.Context, abbreviation string) (*domain.Team, error)
	GetByAbbreviation(ctx context.Context, abbreviation string) (*domain.Team, error)
}

type StatsRepository interface {
	// ReplaceForPlayer drops a player's stat rows and writes the fresh scrape
	// in one transaction.
	ReplaceForPlayer(ctx context.Context, playerID uint, passing []domain.PassingStats, rushing []domain.RushingStats, receiving []domain.ReceivingStats) error
	GetForPlayer(ctx context.Context, playerID uint, seasons []int) (*domain.PlayerSeasonStats, error)
}

type DraftValueRepository interface {
	Upsert(ctx context.Context, value *domain.DraftValue) error
	UpsertMany(ctx context.Context, values []*domain.DraftValue) error
	GetByName(ctx context.Context, playerName string, season int) (*domain.DraftValue, error)
	// List returns rows for a season, optionally restricted to positions,
	// ordered by overall rank.
	List(ctx context.Context, season int, positions []domain.Position) ([]*domain.DraftValue, error)
	TopNames(ctx context.Context, season, limit int) ([]string, error)
}

type StatusRepository interface {
	Get(ctx context.Context, playerName string, season int) (*domain.DraftStatus, error)
	// Apply runs the read-modify-write for one ledger key inside a single
	// transaction, creating the row if it does not exist.
	Apply(ctx context.Context, playerName string, season int, update domain.StatusUpdate) (*domain.DraftStatus, error)
	ListForSeason(ctx context.Context, season int) ([]*domain.DraftStatus, error)
}

type AnalysisRepository interface {
	Upsert(ctx context.Context, analysis *domain.PlayerAnalysis) error
	Get(ctx context.Context, playerName string, season int) (*domain.PlayerAnalysis, error)
	NamesWithAnalysis(ctx context.Context, season int) ([]string, error)
}

type TeammateRepository interface {
	UpsertMany(ctx context.Context, teammates []*domain.PlayerTeammate) error
	// GetForPlayer orders by position group (QB, RB, WR, TE, then the rest)
	// and name.
	GetForPlayer(ctx context.Context, playerName string, season int) ([]*domain.PlayerTeammate, error)
	NamesWithTeammates(ctx context.Context, season int) ([]string, error)
}

type Repositories struct {
	Player     PlayerRepository
	Team       TeamRepository
	Stats      StatsRepository
	DraftValue DraftValueRepository
	Status     StatusRepository
	Analysis   AnalysisRepository
	Teammate   TeammateRepository
}
