package sqlite

import (
	"context"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *statsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) ReplaceForPlayer(ctx context.Context, playerID uint, passing []domain.PassingStats, rushing []domain.RushingStats, receiving []domain.ReceivingStats) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&domain.PassingStats{}, &domain.RushingStats{}, &domain.ReceivingStats{}} {
			if err := tx.Where("player_id = ?", playerID).Delete(model).Error; err != nil {
				return err
			}
		}
		if len(passing) > 0 {
			if err := tx.Create(&passing).Error; err != nil {
				return err
			}
		}
		if len(rushing) > 0 {
			if err := tx.Create(&rushing).Error; err != nil {
				return err
			}
		}
		if len(receiving) > 0 {
			if err := tx.Create(&receiving).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *statsRepository) GetForPlayer(ctx context.Context, playerID uint, seasons []int) (*domain.PlayerSeasonStats, error) {
	stats := &domain.PlayerSeasonStats{}

	q := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("player_id = ?", playerID)
		if len(seasons) > 0 {
			tx = tx.Where("season IN ?", seasons)
		}
		return tx.Preload("Team").Order("season ASC")
	}

	if err := q(r.db.WithContext(ctx)).Find(&stats.Passing).Error; err != nil {
		return nil, err
	}
	if err := q(r.db.WithContext(ctx)).Find(&stats.Rushing).Error; err != nil {
		return nil, err
	}
	if err := q(r.db.WithContext(ctx)).Find(&stats.Receiving).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
