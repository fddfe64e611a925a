package sqlite

import (
	"context"
	"errors"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"gorm.io/gorm"
)

type statusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *statusRepository {
	return &statusRepository{db: db}
}

// Get never reports missing rows: a player with no ledger entry is simply
// all-false.
func (r *statusRepository) Get(ctx context.Context, playerName string, season int) (*domain.DraftStatus, error) {
	var status domain.DraftStatus
	err := r.db.WithContext(ctx).
		First(&status, "player_name = ? AND season = ?", playerName, season).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewDraftStatus(playerName, season), nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Apply is the atomic read-modify-write for one ledger key. The exclusion
// rule must see the committed state, so the read and the save share a
// transaction.
func (r *statusRepository) Apply(ctx context.Context, playerName string, season int, update domain.StatusUpdate) (*domain.DraftStatus, error) {
	var status domain.DraftStatus
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&status, "player_name = ? AND season = ?", playerName, season).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = *domain.NewDraftStatus(playerName, season)
		} else if err != nil {
			return err
		}

		status.Apply(update)
		return tx.Save(&status).Error
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) ListForSeason(ctx context.Context, season int) ([]*domain.DraftStatus, error) {
	var statuses []*domain.DraftStatus
	err := r.db.WithContext(ctx).Where("season = ?", season).Find(&statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}
