package domain

// PlayerTeammate links a player to one offensive teammate for a season.
// Informational only; unique per (player, teammate, season).
type PlayerTeammate struct {
	ID               uint     `json:"id" gorm:"primaryKey"`
	PlayerName       string   `json:"playerName" gorm:"uniqueIndex:idx_player_teammates_key;not null"`
	TeammateName     string   `json:"teammateName" gorm:"uniqueIndex:idx_player_teammates_key;not null"`
	Season           int      `json:"season" gorm:"uniqueIndex:idx_player_teammates_key;not null"`
	TeammatePosition Position `json:"teammatePosition"`
}
