package gormstore

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// AutoMigrate creates the pets table. Kept separate from Open so server
// deployments that manage schema manually can skip it.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&petRow{})
}
