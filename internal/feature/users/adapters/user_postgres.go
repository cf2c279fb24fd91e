// Package adapters provides the repository implementations for the users feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"draft_backend/internal/feature/users/domain/entity"
	"draft_backend/internal/feature/users/usecase"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// userPostgres is the PostgreSQL implementation of the user repositories.
// It uses GORM for database operations.
type userPostgres struct {
	db *gorm.DB
}

// Compile-time check that userPostgres satisfies the consumer interface.
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres creates a new instance of userPostgres with the given
// gorm.DB connection. Constructor for dependency injection.
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create inserts a user into the database.
// It returns usecase.ErrEmailAlreadyExists when the email is already taken.
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return usecase.ErrEmailAlreadyExists
		}
		// SQLite (tests) reports duplicates through gorm's translated error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID retrieves a user by ID.
// It returns usecase.ErrUserNotFound when no user exists.
func (r *userPostgres) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByIDs retrieves every user whose ID appears in ids.
func (r *userPostgres) FindByIDs(ctx context.Context, ids []uint) ([]entity.User, error) {
	if len(ids) == 0 {
		return []entity.User{}, nil
	}
	var users []entity.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindAll retrieves every user ordered by ID.
func (r *userPostgres) FindAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail retrieves a user by email address.
// It returns usecase.ErrUserNotFound when no user exists.
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Update persists changes to an existing user.
func (r *userPostgres) Update(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return usecase.ErrEmailAlreadyExists
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a user by ID.
// It returns usecase.ErrUserNotFound when no row was deleted.
func (r *userPostgres) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// SearchByName retrieves users whose name contains the given substring,
// case-insensitively.
func (r *userPostgres) SearchByName(ctx context.Context, name string) ([]entity.User, error) {
	var users []entity.User
	pattern := "%" + name + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", pattern).
		Order("id").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByAgeBetween retrieves users whose age falls within [min, max].
func (r *userPostgres) FindByAgeBetween(ctx context.Context, min, max int) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).
		Where("age BETWEEN ? AND ?", min, max).
		Order("id").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
