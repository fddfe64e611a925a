package sqlite

import (
	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/dom/fantasy-draft-assistant/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the SQLite database and migrates the schema.
// Foreign keys are off by default in SQLite; the DSN turns them on.
func NewConnection(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Team{},
		&domain.Player{},
		&domain.PassingStats{},
		&domain.RushingStats{},
		&domain.ReceivingStats{},
		&domain.DraftValue{},
		&domain.DraftStatus{},
		&domain.PlayerAnalysis{},
		&domain.PlayerTeammate{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Player:     NewPlayerRepository(db),
		Team:       NewTeamRepository(db),
		Stats:      NewStatsRepository(db),
		DraftValue: NewDraftValueRepository(db),
		Status:     NewStatusRepository(db),
		Analysis:   NewAnalysisRepository(db),
		Teammate:   NewTeammateRepository(db),
	}
}
