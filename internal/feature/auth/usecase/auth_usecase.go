package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"draft_backend/internal/feature/auth/domain/entity"
	userentity "draft_backend/internal/feature/users/domain/entity"
	userusecase "draft_backend/internal/feature/users/usecase"
)

const (
	// minPasswordLength defines the minimum password length.
	minPasswordLength = 8

	// maxSessionsPerUser caps concurrent refresh-token sessions per user.
	// When the cap is reached the oldest session is evicted.
	maxSessionsPerUser = 5

	// sessionIDBytes is the entropy of a refresh token before hex encoding.
	sessionIDBytes = 32
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go conventions, interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns an error if a user with the same email already exists.
	Create(ctx context.Context, user *userentity.User) error

	// FindByEmail retrieves a user matching the given email address.
	FindByEmail(ctx context.Context, email string) (*userentity.User, error)

	// FindByID retrieves a user matching the given ID.
	FindByID(ctx context.Context, id uint) (*userentity.User, error)
}

// JWTGenerator defines the interface for JWT token generation.
// Following Go conventions, interfaces are defined by the consumer (usecase),
// not the provider (platform/jwt).
type JWTGenerator interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(userID uint, email string) (string, error)
}

// TokenPair bundles a short-lived access token with its refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ClientInfo carries request metadata stored with the session for auditing.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users      UserRepository
	sessions   SessionRepository
	jwt        JWTGenerator
	refreshTTL time.Duration
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwt JWTGenerator, refreshTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:      users,
		sessions:   sessions,
		jwt:        jwt,
		refreshTTL: refreshTTL,
	}
}

// validatePassword checks that the password meets the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

// Register creates a new user with a hashed password.
func (u *authUsecase) Register(ctx context.Context, name, email, password string, age int) (*userentity.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email must not be empty", ErrInvalidInput)
	}
	if age < 0 {
		return nil, fmt.Errorf("%w: age must not be negative", ErrInvalidInput)
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &userentity.User{Name: name, Email: email, Password: string(hashed), Age: age}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, userusecase.ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns an access/refresh token pair.
// To mitigate timing attacks, a bcrypt comparison runs even when the user
// does not exist.
func (u *authUsecase) Login(ctx context.Context, email, password string, client ClientInfo) (*TokenPair, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// Dummy hash so bcrypt.CompareHashAndPassword always runs.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user, client)
}

// Refresh rotates a refresh token: the presented session is revoked and a
// fresh token pair is issued. Expired and revoked sessions are rejected.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, userusecase.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}
	return u.issueTokens(ctx, user, client)
}

// Logout revokes the session identified by the given refresh token.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if err := u.sessions.Revoke(ctx, refreshToken); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return ErrInvalidRefreshToken
		}
		return err
	}
	return nil
}

// issueTokens generates a signed JWT and opens a new refresh-token session,
// evicting the user's oldest session when the per-user cap is reached.
func (u *authUsecase) issueTokens(ctx context.Context, user *userentity.User, client ClientInfo) (*TokenPair, error) {
	accessToken, err := u.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	refreshToken, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}
	if count >= maxSessionsPerUser {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to evict oldest session: %w", err)
		}
	}

	now := time.Now()
	session := &entity.Session{
		ID:        refreshToken,
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.refreshTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// newSessionID returns a cryptographically random 64-character hex string.
func newSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
