package testutil

import (
	"testing"
	"time"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"gorm.io/gorm"
)

// DraftValueBuilder creates board rows with a builder pattern.
type DraftValueBuilder struct {
	value domain.DraftValue
}

func NewDraftValueBuilder(name string) *DraftValueBuilder {
	return &DraftValueBuilder{value: domain.DraftValue{
		PlayerName:   name,
		Season:       2025,
		Position:     domain.PositionRB,
		Team:         "SF",
		RankOverall:  1,
		RankPosition: 1,
		Value:        50,
	}}
}

func (b *DraftValueBuilder) WithSeason(season int) *DraftValueBuilder {
	b.value.Season = season
	return b
}

func (b *DraftValueBuilder) WithPosition(pos domain.Position) *DraftValueBuilder {
	b.value.Position = pos
	return b
}

func (b *DraftValueBuilder) WithTeam(team string) *DraftValueBuilder {
	b.value.Team = team
	return b
}

func (b *DraftValueBuilder) WithRanks(overall, position int) *DraftValueBuilder {
	b.value.RankOverall = overall
	b.value.RankPosition = position
	return b
}

func (b *DraftValueBuilder) WithValue(value int) *DraftValueBuilder {
	b.value.Value = value
	return b
}

func (b *DraftValueBuilder) Build(t *testing.T, db *gorm.DB) *domain.DraftValue {
	t.Helper()
	value := b.value
	if err := db.Create(&value).Error; err != nil {
		t.Fatalf("failed to create draft value: %v", err)
	}
	return &value
}

// SeedBoard inserts a small board of players covering every position group.
func SeedBoard(t *testing.T, db *gorm.DB, season int) {
	t.Helper()

	rows := []struct {
		name    string
		pos     domain.Position
		team    string
		overall int
		posRank int
		value   int
	}{
		{"Josh Allen", domain.PositionQB, "BUF", 12, 1, 35},
		{"Jalen Hurts", domain.PositionQB, "PHI", 20, 2, 28},
		{"Christian McCaffrey", domain.PositionRB, "SF", 1, 1, 58},
		{"Saquon Barkley", domain.PositionRB, "PHI", 4, 2, 48},
		{"Bijan Robinson", domain.PositionRB, "ATL", 5, 3, 45},
		{"Tyreek Hill", domain.PositionWR, "MIA", 2, 1, 55},
		{"CeeDee Lamb", domain.PositionWR, "DAL", 3, 2, 52},
		{"Travis Kelce", domain.PositionTE, "KC", 8, 1, 30},
		{"Sam LaPorta", domain.PositionTE, "DET", 15, 2, 22},
		{"Justin Tucker", domain.PositionK, "BAL", 140, 1, 1},
		{"49ers D/ST", domain.PositionDST, "SF", 130, 1, 2},
	}

	for _, row := range rows {
		NewDraftValueBuilder(row.name).
			WithSeason(season).
			WithPosition(row.pos).
			WithTeam(row.team).
			WithRanks(row.overall, row.posRank).
			WithValue(row.value).
			Build(t, db)
	}
}

// AnalysisBuilder creates cached analysis records.
type AnalysisBuilder struct {
	analysis domain.PlayerAnalysis
}

func NewAnalysisBuilder(name string) *AnalysisBuilder {
	return &AnalysisBuilder{analysis: domain.PlayerAnalysis{
		PlayerName:       name,
		Season:           2025,
		PlayingTimeScore: 1,
		InjuryRiskScore:  2,
		BreakoutScore:    3,
		BustScore:        1,
		KeyChanges:       "New offensive coordinator.",
		Outlook:          "Solid weekly starter.",
		Summary:          "Playing Time: 1/5 | Injury Risk: 2/5 | Breakout: 3/5 | Bust Risk: 1/5",
		GeneratedAt:      time.Now(),
	}}
}

func (b *AnalysisBuilder) WithSeason(season int) *AnalysisBuilder {
	b.analysis.Season = season
	return b
}

func (b *AnalysisBuilder) WithScores(playingTime, injury, breakout, bust int) *AnalysisBuilder {
	b.analysis.PlayingTimeScore = playingTime
	b.analysis.InjuryRiskScore = injury
	b.analysis.BreakoutScore = breakout
	b.analysis.BustScore = bust
	return b
}

func (b *AnalysisBuilder) Build(t *testing.T, db *gorm.DB) *domain.PlayerAnalysis {
	t.Helper()
	analysis := b.analysis
	if err := db.Create(&analysis).Error; err != nil {
		t.Fatalf("failed to create analysis: %v", err)
	}
	return &analysis
}
