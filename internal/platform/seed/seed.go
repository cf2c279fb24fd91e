// Package seed populates an empty database with sample users and drafts
// for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	draftadapters "draft_backend/internal/feature/draft/adapters"
	draftentity "draft_backend/internal/feature/draft/domain/entity"
	userentity "draft_backend/internal/feature/users/domain/entity"
)

// samplePassword is the login password for every seeded user.
const samplePassword = "password123"

var sampleUsers = []struct {
	name  string
	email string
	age   int
}{
	{"John Doe", "john.doe@example.com", 28},
	{"Jane Smith", "jane.smith@example.com", 34},
	{"Bob Johnson", "bob.johnson@example.com", 45},
	{"Alice Brown", "alice.brown@example.com", 23},
	{"Charlie Wilson", "charlie.wilson@example.com", 31},
}

// Run seeds sample data when the database is empty. Re-running against a
// populated database is a no-op.
func Run(ctx context.Context, db *gorm.DB) error {
	var userCount int64
	if err := db.WithContext(ctx).Model(&userentity.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount > 0 {
		slog.Info("seed skipped, database already populated", "users", userCount)
		return nil
	}

	users, err := seedUsers(ctx, db)
	if err != nil {
		return err
	}
	if err := seedDrafts(ctx, db, users); err != nil {
		return err
	}

	slog.Info("seed data loaded", "users", len(users))
	return nil
}

func seedUsers(ctx context.Context, db *gorm.DB) ([]userentity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(samplePassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := make([]userentity.User, 0, len(sampleUsers))
	for _, s := range sampleUsers {
		users = append(users, userentity.User{
			Name:     s.name,
			Email:    s.email,
			Password: string(hashed),
			Age:      s.age,
		})
	}
	if err := db.WithContext(ctx).Create(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}
	return users, nil
}

func seedDrafts(ctx context.Context, db *gorm.DB, users []userentity.User) error {
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	repo := draftadapters.NewDraftPostgres(db)
	now := time.Now()

	monthly := &draftentity.Draft{
		Title:           "Monthly Prize Draw",
		Description:     "Two winners take home a gift card.",
		NumberOfWinners: 2,
		Status:          draftentity.StatusPending,
		CreatedAt:       now,
		ParticipantIDs:  ids,
	}
	if err := repo.Create(ctx, monthly); err != nil {
		return fmt.Errorf("failed to seed draft: %w", err)
	}

	lunch := &draftentity.Draft{
		Title:           "Free Team Lunch",
		Description:     "One lucky teammate eats on the house.",
		NumberOfWinners: 1,
		Status:          draftentity.StatusPending,
		CreatedAt:       now.Add(-time.Hour),
		ParticipantIDs:  ids[:3],
	}
	if err := repo.Create(ctx, lunch); err != nil {
		return fmt.Errorf("failed to seed draft: %w", err)
	}

	previous := &draftentity.Draft{
		Title:           "Previous Week Raffle",
		Description:     "Already drawn, kept for history.",
		NumberOfWinners: 1,
		Status:          draftentity.StatusPending,
		CreatedAt:       now.Add(-7 * 24 * time.Hour),
		ParticipantIDs:  ids,
	}
	if err := repo.Create(ctx, previous); err != nil {
		return fmt.Errorf("failed to seed draft: %w", err)
	}
	if err := repo.MarkExecuted(ctx, previous.ID, ids[:1], now.Add(-6*24*time.Hour)); err != nil {
		return fmt.Errorf("failed to seed executed draft: %w", err)
	}

	return nil
}
