package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"synapshare/internal/models"
)

// Open connects to Postgres and runs migrations. The pool connects lazily,
// so a down database surfaces through the migration error, together with a
// still-usable handle: the caller decides what that means (fatal in
// production, where a supervised restart is the recovery path; development
// keeps serving and retries on the next query).
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=synapshare port=5432 sslmode=disable"
	}

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError:       true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := Migrate(database); err != nil {
		return database, fmt.Errorf("migrate: %w", err)
	}
	return database, nil
}

// Migrate brings the schema up to date. Shared with tests, which run it
// against sqlite instead.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.Discussion{},
		&models.Node{},
		&models.Vote{},
		&models.Comment{},
		&models.SavedPost{},
	)
}
