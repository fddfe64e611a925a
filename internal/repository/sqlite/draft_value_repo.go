package sqlite

import (
	"context"
	"errors"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type draftValueRepository struct {
	db *gorm.DB
}

func NewDraftValueRepository(db *gorm.DB) *draftValueRepository {
	return &draftValueRepository{db: db}
}

var draftValueKey = []clause.Column{{Name: "player_name"}, {Name: "season"}}

func (r *draftValueRepository) Upsert(ctx context.Context, value *domain.DraftValue) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   draftValueKey,
		UpdateAll: true,
	}).Create(value).Error
}

func (r *draftValueRepository) UpsertMany(ctx context.Context, values []*domain.DraftValue) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   draftValueKey,
		UpdateAll: true,
	}).Create(values).Error
}

func (r *draftValueRepository) GetByName(ctx context.Context, playerName string, season int) (*domain.DraftValue, error) {
	var value domain.DraftValue
	err := r.db.WithContext(ctx).
		First(&value, "player_name = ? COLLATE NOCASE AND season = ?", playerName, season).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func (r *draftValueRepository) List(ctx context.Context, season int, positions []domain.Position) ([]*domain.DraftValue, error) {
	var values []*domain.DraftValue
	tx := r.db.WithContext(ctx).Where("season = ?", season)
	if len(positions) > 0 {
		tx = tx.Where("position IN ?", positions)
	}
	err := tx.Order("rank_overall ASC").Find(&values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *draftValueRepository) TopNames(ctx context.Context, season, limit int) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&domain.DraftValue{}).
		Where("season = ?", season).
		Order("rank_overall ASC").
		Limit(limit).
		Pluck("player_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
