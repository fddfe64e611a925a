package sqlite

import (
	"context"
	"errors"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *analysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Upsert(ctx context.Context, analysis *domain.PlayerAnalysis) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_name"}, {Name: "season"}},
		UpdateAll: true,
	}).Create(analysis).Error
}

func (r *analysisRepository) Get(ctx context.Context, playerName string, season int) (*domain.PlayerAnalysis, error) {
	var analysis domain.PlayerAnalysis
	err := r.db.WithContext(ctx).
		First(&analysis, "player_name = ? AND season = ?", playerName, season).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *analysisRepository) NamesWithAnalysis(ctx context.Context, season int) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&domain.PlayerAnalysis{}).
		Where("season = ?", season).
		Pluck("player_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

type teammateRepository struct {
	db *gorm.DB
}

func NewTeammateRepository(db *gorm.DB) *teammateRepository {
	return &teammateRepository{db: db}
}

func (r *teammateRepository) UpsertMany(ctx context.Context, teammates []*domain.PlayerTeammate) error {
	if len(teammates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_name"}, {Name: "teammate_name"}, {Name: "season"}},
		DoNothing: true,
	}).Create(teammates).Error
}

func (r *teammateRepository) GetForPlayer(ctx context.Context, playerName string, season int) ([]*domain.PlayerTeammate, error) {
	var teammates []*domain.PlayerTeammate
	err := r.db.WithContext(ctx).
		Where("player_name = ? AND season = ?", playerName, season).
		Order(`CASE teammate_position
			WHEN 'QB' THEN 1
			WHEN 'RB' THEN 2
			WHEN 'WR' THEN 3
			WHEN 'TE' THEN 4
			ELSE 5
		END, teammate_name`).
		Find(&teammates).Error
	if err != nil {
		return nil, err
	}
	return teammates, nil
}

func (r *teammateRepository) NamesWithTeammates(ctx context.Context, season int) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&domain.PlayerTeammate{}).
		Where("season = ?", season).
		Distinct().
		Pluck("player_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
