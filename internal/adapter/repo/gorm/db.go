package gormrepo

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"homestead/internal/adapter/repo/gorm/model"
)

func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the engine's tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.SimEvent{}, &model.StateDelta{}, &model.WorldSnapshot{})
}
