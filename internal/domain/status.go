package domain

import "time"

// DraftStatus is the per-(player, season) ledger entry. Created lazily on the
// first write, never deleted. Target and Drafted are mutually exclusive;
// Avoid is independent.
type DraftStatus struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	PlayerName        string    `json:"playerName" gorm:"uniqueIndex:idx_draft_statuses_name_season;not null"`
	Season            int       `json:"season" gorm:"uniqueIndex:idx_draft_statuses_name_season;not null"`
	Target            bool      `json:"target"`
	Avoid             bool      `json:"avoid"`
	Drafted           bool      `json:"drafted"`
	DraftedBy         string    `json:"draftedBy"`
	DraftedPrice      int       `json:"draftedPrice"`
	InjuryRisk        bool      `json:"injuryRisk"`
	BreakoutPotential bool      `json:"breakoutPotential"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// NewDraftStatus is the all-false record reads fall back to when no row exists.
func NewDraftStatus(playerName string, season int) *DraftStatus {
	return &DraftStatus{PlayerName: playerName, Season: season}
}

// StatusUpdate is a partial update: nil fields are left untouched.
type StatusUpdate struct {
	Target            *bool   `json:"target"`
	Avoid             *bool   `json:"avoid"`
	Drafted           *bool   `json:"drafted"`
	DraftedBy         *string `json:"draftedBy"`
	DraftedPrice      *int    `json:"draftedPrice"`
	InjuryRisk        *bool   `json:"injuryRisk"`
	BreakoutPotential *bool   `json:"breakoutPotential"`
	Notes             *string `json:"notes"`
}

// Apply merges the update into the status and enforces the exclusion rule.
// Ordering matters:
//  1. An update drafting the player clears Target, regardless of what the
//     caller sent for it; drafting wins when both arrive together.
//  2. An update targeting a currently drafted player un-drafts them (the
//     "I was wrong, still available" correction) and clears the draft details.
func (s *DraftStatus) Apply(u StatusUpdate) {
	wasDrafted := s.Drafted

	if u.Avoid != nil {
		s.Avoid = *u.Avoid
	}
	if u.Target != nil {
		s.Target = *u.Target
	}
	if u.Drafted != nil {
		s.Drafted = *u.Drafted
	}
	if u.DraftedBy != nil {
		s.DraftedBy = *u.DraftedBy
	}
	if u.DraftedPrice != nil {
		s.DraftedPrice = *u.DraftedPrice
	}
	if u.InjuryRisk != nil {
		s.InjuryRisk = *u.InjuryRisk
	}
	if u.BreakoutPotential != nil {
		s.BreakoutPotential = *u.BreakoutPotential
	}
	if u.Notes != nil {
		s.Notes = *u.Notes
	}

	if u.Drafted != nil && *u.Drafted {
		s.Target = false
		return
	}
	if u.Target != nil && *u.Target && wasDrafted {
		s.Drafted = false
		s.DraftedBy = ""
		s.DraftedPrice = 0
	}
}
