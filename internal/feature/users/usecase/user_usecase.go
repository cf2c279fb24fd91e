package usecase

import (
	"context"
	"fmt"
	"strings"

	"draft_backend/internal/feature/users/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go conventions, interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrEmailAlreadyExists if the email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user matching the specified ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByIDs retrieves every user whose ID appears in ids.
	// Unknown IDs are silently absent from the result.
	FindByIDs(ctx context.Context, ids []uint) ([]entity.User, error)

	// FindAll retrieves every user in the directory.
	FindAll(ctx context.Context) ([]entity.User, error)

	// FindByEmail retrieves a user matching the specified email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user by ID.
	Delete(ctx context.Context, id uint) error

	// SearchByName retrieves users whose name contains the given substring,
	// case-insensitively.
	SearchByName(ctx context.Context, name string) ([]entity.User, error)

	// FindByAgeBetween retrieves users whose age falls within [min, max].
	FindByAgeBetween(ctx context.Context, min, max int) ([]entity.User, error)
}

// userUsecase implements the user directory operations.
type userUsecase struct {
	users UserRepository
}

// NewUserUsecase creates a new instance of userUsecase.
func NewUserUsecase(users UserRepository) *userUsecase {
	return &userUsecase{users: users}
}

// List returns every user in the directory.
func (u *userUsecase) List(ctx context.Context) ([]entity.User, error) {
	return u.users.FindAll(ctx)
}

// GetByID returns the user with the given ID.
func (u *userUsecase) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// Update replaces the mutable fields of an existing user. The password hash
// is never touched here; credential changes go through the auth feature.
func (u *userUsecase) Update(ctx context.Context, id uint, name, email string, age int) (*entity.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if age < 0 {
		return nil, fmt.Errorf("%w: age cannot be negative", ErrInvalidInput)
	}

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = email
	user.Age = age
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user from the directory.
func (u *userUsecase) Delete(ctx context.Context, id uint) error {
	return u.users.Delete(ctx, id)
}

// SearchByName returns users whose name contains the given substring.
func (u *userUsecase) SearchByName(ctx context.Context, name string) ([]entity.User, error) {
	return u.users.SearchByName(ctx, name)
}

// ListByAgeRange returns users whose age falls within [min, max].
func (u *userUsecase) ListByAgeRange(ctx context.Context, min, max int) ([]entity.User, error) {
	if min < 0 || max < min {
		return nil, fmt.Errorf("%w: invalid age range [%d, %d]", ErrInvalidInput, min, max)
	}
	return u.users.FindByAgeBetween(ctx, min, max)
}
