package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Score ranges for PlayerAnalysis. PlayingTime is a delta vs last season;
// the risk scores are 0 (none) to 5 (severe).
const (
	PlayingTimeScoreMin = -5
	PlayingTimeScoreMax = 5
	RiskScoreMin        = 0
	RiskScoreMax        = 5
)

// PlayerAnalysis is a cached LLM risk assessment, unique per (player, season).
// The query layer treats it as read-only; regenerating overwrites the row.
type PlayerAnalysis struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	PlayerName       string         `json:"playerName" gorm:"uniqueIndex:idx_player_analyses_name_season;not null"`
	Season           int            `json:"season" gorm:"uniqueIndex:idx_player_analyses_name_season;not null"`
	PlayingTimeScore int            `json:"playingTimeScore"`
	InjuryRiskScore  int            `json:"injuryRiskScore"`
	BreakoutScore    int            `json:"breakoutScore" gorm:"column:breakout_risk_score"`
	BustScore        int            `json:"bustScore" gorm:"column:bust_risk_score"`
	KeyChanges       string         `json:"keyChanges"`
	Outlook          string         `json:"outlook"`
	Summary          string         `json:"summary"`
	Citations        datatypes.JSON `json:"citations"`
	GeneratedAt      time.Time      `json:"generatedAt"`
}

// Validate checks the score ranges before the record is persisted.
func (a *PlayerAnalysis) Validate() error {
	if a.PlayingTimeScore < PlayingTimeScoreMin || a.PlayingTimeScore > PlayingTimeScoreMax {
		return &ValidationError{Field: "playingTimeScore", Value: a.PlayingTimeScore, Reason: "must be between -5 and 5"}
	}
	for _, s := range []struct {
		field string
		value int
	}{
		{"injuryRiskScore", a.InjuryRiskScore},
		{"breakoutScore", a.BreakoutScore},
		{"bustScore", a.BustScore},
	} {
		if s.value < RiskScoreMin || s.value > RiskScoreMax {
			return &ValidationError{Field: s.field, Value: s.value, Reason: "must be between 0 and 5"}
		}
	}
	return nil
}
