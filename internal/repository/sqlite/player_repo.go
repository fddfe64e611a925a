package sqlite

import (
	"context"
	"errors"

	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type playerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) *playerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) Upsert(ctx context.Context, player *domain.Player) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pfr_id"}},
		UpdateAll: true,
	}).Create(player).Error
}

func (r *playerRepository) GetByPFRID(ctx context.Context, pfrID string) (*domain.Player, error) {
	var player domain.Player
	err := r.db.WithContext(ctx).First(&player, "pfr_id = ?", pfrID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) SearchByName(ctx context.Context, name string) ([]*domain.Player, error) {
	var players []*domain.Player
	err := r.db.WithContext(ctx).
		Where("name LIKE ? COLLATE NOCASE", "%"+name+"%").
		Order("name ASC").
		Limit(20).
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *teamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) GetOrCreate(ctx context.Context, abbreviation string) (*domain.Team, error) {
	var team domain.Team
	err := r.db.WithContext(ctx).
		Where(domain.Team{Abbreviation: abbreviation}).
		Attrs(domain.Team{Name: abbreviation}).
		FirstOrCreate(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetByAbbreviation(ctx context.Context, abbreviation string) (*domain.Team, error) {
	var team domain.Team
	err := r.db.WithContext(ctx).First(&team, "abbreviation = ?", abbreviation).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}
