package service

import (
	"context"
	"strings"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/dom/fantasy-draft-assistant/internal/repository"
	"github.com/sirupsen/logrus"
)

// StatusService owns the draft-status ledger. Reads never fail on a missing
// row; an untouched player is reported with every flag false.
type StatusService struct {
	statusRepo repository.StatusRepository
	log        *logrus.Logger
}

func NewStatusService(statusRepo repository.StatusRepository, log *logrus.Logger) *StatusService {
	return &StatusService{statusRepo: statusRepo, log: log}
}

func (s *StatusService) GetStatus(ctx context.Context, playerName string, season int) (*domain.DraftStatus, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, &domain.ValidationError{Field: "player_name", Value: playerName, Reason: "must not be empty"}
	}
	if season <= 0 {
		return nil, &domain.ValidationError{Field: "season", Value: season, Reason: "must be positive"}
	}
	return s.statusRepo.Get(ctx, playerName, season)
}

// SetStatus merges the update into the ledger and returns the resulting
// status. Drafting a player clears the target flag; targeting a drafted
// player un-drafts them first.
func (s *StatusService) SetStatus(ctx context.Context, playerName string, season int, update domain.StatusUpdate) (*domain.DraftStatus, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, &domain.ValidationError{Field: "player_name", Value: playerName, Reason: "must not be empty"}
	}
	if season <= 0 {
		return nil, &domain.ValidationError{Field: "season", Value: season, Reason: "must be positive"}
	}
	if update.DraftedPrice != nil && *update.DraftedPrice < 0 {
		return nil, &domain.ValidationError{Field: "drafted_price", Value: *update.DraftedPrice, Reason: "must not be negative"}
	}

	status, err := s.statusRepo.Apply(ctx, playerName, season, update)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"player":  playerName,
		"season":  season,
		"target":  status.Target,
		"avoid":   status.Avoid,
		"drafted": status.Drafted,
	}).Debug("draft status updated")

	return status, nil
}

func (s *StatusService) ListForSeason(ctx context.Context, season int) ([]*domain.DraftStatus, error) {
	if season <= 0 {
		return nil, &domain.ValidationError{Field: "season", Value: season, Reason: "must be positive"}
	}
	return s.statusRepo.ListForSeason(ctx, season)
}
