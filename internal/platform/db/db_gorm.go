// Package db opens the PostgreSQL connection and runs schema migrations.
package db

import (
	"fmt"
	"log/slog"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	draftadapters "draft_backend/internal/feature/draft/adapters"
	userentity "draft_backend/internal/feature/users/domain/entity"
	"draft_backend/internal/platform/config"
)

const (
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// Opener opens a gorm connection for the given DSN. Split out so the retry
// loop can be tested without a live database.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN assembles a PostgreSQL DSN from the connection settings.
func BuildDSN(cfg config.DBConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
}

// ConnectWithRetry keeps trying the opener until it succeeds or the timeout
// elapses. Database containers often come up a few seconds after the app.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database connect failed after %v: %w", timeout, err)
		}
		slog.Warn("database connect failed, retrying", "error", err)
		time.Sleep(retryInterval)
	}
}

// Open connects to PostgreSQL using the given configuration and, when
// enabled, migrates the schema.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	opener := func(dsn string) (*gorm.DB, error) {
		return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), connectTimeout, opener)
	if err != nil {
		return nil, err
	}
	slog.Info("database connection successful", "host", cfg.Host, "name", cfg.Name)

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		slog.Info("database migrations applied")
	}

	return db, nil
}

// Migrate creates or updates the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userentity.User{},
		&draftadapters.DraftModel{},
		&draftadapters.DraftParticipant{},
		&draftadapters.DraftWinner{},
	)
}
