package domain

import "time"

type Team struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Abbreviation string `json:"abbreviation" gorm:"uniqueIndex;not null"`
	Name         string `json:"name"`
	City         string `json:"city"`
}

// Player holds scraped biographical data keyed by the source site's ID.
// The draft board itself keys on (name, season); see DraftValue.
type Player struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	PFRID        string   `json:"pfrId" gorm:"column:pfr_id;uniqueIndex;not null"`
	Name         string   `json:"name" gorm:"index;not null"`
	Position     Position `json:"position"`
	Height       string   `json:"height"`
	Weight       *int     `json:"weight"`
	BirthDate    string   `json:"birthDate"`
	College      string   `json:"college"`
	DraftedYear  *int     `json:"draftedYear"`
	DraftedRound *int     `json:"draftedRound"`
	DraftedPick  *int     `json:"draftedPick"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DraftValue is one row of the auction board: market value and ranks for a
// player in a season. Unique per (player_name, season).
type DraftValue struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	PlayerName   string   `json:"playerName" gorm:"uniqueIndex:idx_draft_values_name_season;not null"`
	Season       int      `json:"season" gorm:"uniqueIndex:idx_draft_values_name_season;not null"`
	Position     Position `json:"position" gorm:"index;not null"`
	Team         string   `json:"team"`
	RankOverall  int      `json:"rankOverall"`
	RankPosition int      `json:"rankPosition"`
	Value        int      `json:"value"` // base auction value, never mutated by inflation
}

type PassingStats struct {
	ID                 uint     `json:"id" gorm:"primaryKey"`
	PlayerID           uint     `json:"playerId" gorm:"uniqueIndex:idx_passing_player_season_team;not null"`
	TeamID             uint     `json:"teamId" gorm:"uniqueIndex:idx_passing_player_season_team;not null"`
	Season             int      `json:"season" gorm:"uniqueIndex:idx_passing_player_season_team;not null"`
	Games              *int     `json:"games"`
	GamesStarted       *int     `json:"gamesStarted"`
	Completions        *int     `json:"completions"`
	Attempts           *int     `json:"attempts"`
	CompletionPct      *float64 `json:"completionPct"`
	PassingYards       *int     `json:"passingYards"`
	PassingTDs         *int     `json:"passingTds" gorm:"column:passing_tds"`
	Interceptions      *int     `json:"interceptions"`
	YardsPerAttempt    *float64 `json:"yardsPerAttempt"`
	YardsPerCompletion *float64 `json:"yardsPerCompletion"`
	QuarterbackRating  *float64 `json:"quarterbackRating"`
	Sacks              *int     `json:"sacks"`
	SackYards          *int     `json:"sackYards"`

	Team *Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
}

type RushingStats struct {
	ID              uint     `json:"id" gorm:"primaryKey"`
	PlayerID        uint     `json:"playerId" gorm:"uniqueIndex:idx_rushing_player_season_team;not null"`
	TeamID          uint     `json:"teamId" gorm:"uniqueIndex:idx_rushing_player_season_team;not null"`
	Season          int      `json:"season" gorm:"uniqueIndex:idx_rushing_player_season_team;not null"`
	Games           *int     `json:"games"`
	GamesStarted    *int     `json:"gamesStarted"`
	RushingAttempts *int     `json:"rushingAttempts"`
	RushingYards    *int     `json:"rushingYards"`
	YardsPerAttempt *float64 `json:"yardsPerAttempt"`
	RushingTDs      *int     `json:"rushingTds" gorm:"column:rushing_tds"`
	LongestRush     *int     `json:"longestRush"`
	Fumbles         *int     `json:"fumbles"`
	FumblesLost     *int     `json:"fumblesLost"`

	Team *Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
}

type ReceivingStats struct {
	ID                uint     `json:"id" gorm:"primaryKey"`
	PlayerID          uint     `json:"playerId" gorm:"uniqueIndex:idx_receiving_player_season_team;not null"`
	TeamID            uint     `json:"teamId" gorm:"uniqueIndex:idx_receiving_player_season_team;not null"`
	Season            int      `json:"season" gorm:"uniqueIndex:idx_receiving_player_season_team;not null"`
	Games             *int     `json:"games"`
	GamesStarted      *int     `json:"gamesStarted"`
	Targets           *int     `json:"targets"`
	Receptions        *int     `json:"receptions"`
	ReceivingYards    *int     `json:"receivingYards"`
	YardsPerReception *float64 `json:"yardsPerReception"`
	ReceivingTDs      *int     `json:"receivingTds" gorm:"column:receiving_tds"`
	LongestReception  *int     `json:"longestReception"`
	CatchPct          *float64 `json:"catchPct"`
	YardsPerTarget    *float64 `json:"yardsPerTarget"`
	Fumbles           *int     `json:"fumbles"`
	FumblesLost       *int     `json:"fumblesLost"`

	Team *Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
}

// PlayerSeasonStats bundles one player's stat history for the detail view.
type PlayerSeasonStats struct {
	Player    *Player          `json:"player,omitempty"`
	Passing   []PassingStats   `json:"passing"`
	Rushing   []RushingStats   `json:"rushing"`
	Receiving []ReceivingStats `json:"receiving"`
}

// PlayerDetail is the full single-player payload: the board row joined with
// the scraped bio, stat history, teammates, and the cached assessment when
// one exists.
type PlayerDetail struct {
	PlayerView
	Player    *Player           `json:"player,omitempty"`
	Passing   []PassingStats    `json:"passing"`
	Rushing   []RushingStats    `json:"rushing"`
	Receiving []ReceivingStats  `json:"receiving"`
	Teammates []*PlayerTeammate `json:"teammates"`
	Analysis  *PlayerAnalysis   `json:"analysis,omitempty"`
}
