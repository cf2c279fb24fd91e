package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draft_backend/internal/feature/auth/usecase"
	userentity "draft_backend/internal/feature/users/domain/entity"
)

// mockAuthUsecase is a func-field mock for the AuthUsecase interface.
type mockAuthUsecase struct {
	registerFn func(ctx context.Context, name, email, password string, age int) (*userentity.User, error)
	loginFn    func(ctx context.Context, email, password string, client usecase.ClientInfo) (*usecase.TokenPair, error)
	refreshFn  func(ctx context.Context, refreshToken string, client usecase.ClientInfo) (*usecase.TokenPair, error)
	logoutFn   func(ctx context.Context, refreshToken string) error
}

func (m *mockAuthUsecase) Register(ctx context.Context, name, email, password string, age int) (*userentity.User, error) {
	return m.registerFn(ctx, name, email, password, age)
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
	return m.loginFn(ctx, email, password, client)
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, refreshToken string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
	return m.refreshFn(ctx, refreshToken, client)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	return m.logoutFn(ctx, refreshToken)
}

// newRouter wires a mock usecase behind the auth routes.
func newRouter(mock *mockAuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(mock)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
	r.POST("/auth/logout", h.Logout)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success: returns the created user without password", func(t *testing.T) {
		mock := &mockAuthUsecase{
			registerFn: func(ctx context.Context, name, email, password string, age int) (*userentity.User, error) {
				assert.Equal(t, "John Doe", name)
				assert.Equal(t, "john@example.com", email)
				assert.Equal(t, "password123", password)
				assert.Equal(t, 30, age)
				return &userentity.User{ID: 1, Name: name, Email: email, Password: "hashed-secret", Age: age}, nil
			},
		}

		w := doRequest(t, newRouter(mock), "/auth/register",
			gin.H{"name": "John Doe", "email": "john@example.com", "password": "password123", "age": 30})

		assert.Equal(t, http.StatusCreated, w.Code)
		var got map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, float64(1), got["id"])
		assert.Equal(t, "John Doe", got["name"])
		assert.NotContains(t, w.Body.String(), "hashed-secret", "password hash must never leak")
	})

	t.Run("failure: binding validation returns 400", func(t *testing.T) {
		tests := []struct {
			name string
			body gin.H
		}{
			{"missing name", gin.H{"email": "a@example.com", "password": "password123"}},
			{"invalid email", gin.H{"name": "A", "email": "not-an-email", "password": "password123"}},
			{"short password", gin.H{"name": "A", "email": "a@example.com", "password": "short"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mock := &mockAuthUsecase{
					registerFn: func(ctx context.Context, name, email, password string, age int) (*userentity.User, error) {
						t.Error("usecase must not be called")
						return nil, nil
					},
				}

				w := doRequest(t, newRouter(mock), "/auth/register", tt.body)

				assert.Equal(t, http.StatusBadRequest, w.Code)
			})
		}
	})

	t.Run("failure: duplicate email returns 409 without detail", func(t *testing.T) {
		mock := &mockAuthUsecase{
			registerFn: func(ctx context.Context, name, email, password string, age int) (*userentity.User, error) {
				return nil, usecase.ErrEmailAlreadyExists
			},
		}

		w := doRequest(t, newRouter(mock), "/auth/register",
			gin.H{"name": "John", "email": "taken@example.com", "password": "password123"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error":"registration failed"}`, w.Body.String())
	})

	t.Run("failure: usecase error returns 500", func(t *testing.T) {
		mock := &mockAuthUsecase{
			registerFn: func(ctx context.Context, name, email, password string, age int) (*userentity.User, error) {
				return nil, errors.New("db down")
			},
		}

		w := doRequest(t, newRouter(mock), "/auth/register",
			gin.H{"name": "John", "email": "john@example.com", "password": "password123"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success: returns token pair", func(t *testing.T) {
		mock := &mockAuthUsecase{
			loginFn: func(ctx context.Context, email, password string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
				assert.Equal(t, "john@example.com", email)
				assert.NotEmpty(t, client.IPAddress)
				return &usecase.TokenPair{AccessToken: "signed-jwt", RefreshToken: "refresh-abc"}, nil
			},
		}

		w := doRequest(t, newRouter(mock), "/auth/login",
			gin.H{"email": "john@example.com", "password": "password123"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token":"signed-jwt","refreshToken":"refresh-abc"}`, w.Body.String())
	})

	t.Run("failure: bad credentials return generic 401", func(t *testing.T) {
		mock := &mockAuthUsecase{
			loginFn: func(ctx context.Context, email, password string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
				return nil, usecase.ErrInvalidCredentials
			},
		}

		w := doRequest(t, newRouter(mock), "/auth/login",
			gin.H{"email": "john@example.com", "password": "wrong"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"invalid email or password"}`, w.Body.String())
	})

	t.Run("failure: missing fields return 400", func(t *testing.T) {
		mock := &mockAuthUsecase{
			loginFn: func(ctx context.Context, email, password string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
				t.Error("usecase must not be called")
				return nil, nil
			},
		}

		w := doRequest(t, newRouter(mock), "/auth/login", gin.H{"email": "john@example.com"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("success: returns rotated pair", func(t *testing.T) {
		mock := &mockAuthUsecase{
			refreshFn: func(ctx context.Context, refreshToken string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
				assert.Equal(t, "old-refresh", refreshToken)
				return &usecase.TokenPair{AccessToken: "fresh-jwt", RefreshToken: "new-refresh"}, nil
			},
		}

		w := doRequest(t, newRouter(mock), "/auth/refresh", gin.H{"refreshToken": "old-refresh"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token":"fresh-jwt","refreshToken":"new-refresh"}`, w.Body.String())
	})

	t.Run("failure: rejected tokens return 401", func(t *testing.T) {
		for _, rejection := range []error{
			usecase.ErrInvalidRefreshToken,
			usecase.ErrSessionRevoked,
			usecase.ErrSessionExpired,
		} {
			mock := &mockAuthUsecase{
				refreshFn: func(ctx context.Context, refreshToken string, client usecase.ClientInfo) (*usecase.TokenPair, error) {
					return nil, rejection
				},
			}

			w := doRequest(t, newRouter(mock), "/auth/refresh", gin.H{"refreshToken": "bad"})

			assert.Equal(t, http.StatusUnauthorized, w.Code, rejection.Error())
		}
	})

	t.Run("failure: missing token returns 400", func(t *testing.T) {
		mock := &mockAuthUsecase{}

		w := doRequest(t, newRouter(mock), "/auth/refresh", gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mock := &mockAuthUsecase{
			logoutFn: func(ctx context.Context, refreshToken string) error {
				assert.Equal(t, "some-refresh", refreshToken)
				return nil
			},
		}

		w := doRequest(t, newRouter(mock), "/auth/logout", gin.H{"refreshToken": "some-refresh"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"logged out"}`, w.Body.String())
	})

	t.Run("failure: unknown token returns 401", func(t *testing.T) {
		mock := &mockAuthUsecase{
			logoutFn: func(ctx context.Context, refreshToken string) error {
				return usecase.ErrInvalidRefreshToken
			},
		}

		w := doRequest(t, newRouter(mock), "/auth/logout", gin.H{"refreshToken": "ghost"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
