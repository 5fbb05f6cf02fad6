// Package history persists relocation runs to a local sqlite database so
// past imports can be reviewed with the history command.
package history

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gallego-posada/re-kindle/internal/entities"
)

type Store struct {
	DB *gorm.DB
}

// New opens (creating if needed) the history database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&entities.Run{}, &entities.RunResult{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record persists one run with its per-clipping results.
func (s *Store) Record(run *entities.Run) error {
	if err := s.DB.Create(run).Error; err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns the latest n runs, newest first, with results preloaded.
func (s *Store) Recent(n int) ([]entities.Run, error) {
	var runs []entities.Run
	err := s.DB.Preload("Results").Order("started_at DESC").Limit(n).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("loading runs: %w", err)
	}
	return runs, nil
}
