// Package handler provides the HTTP handlers for the users feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"draft_backend/internal/api"
	"draft_backend/internal/feature/users/domain/entity"
	"draft_backend/internal/feature/users/transport/http/dto"
	"draft_backend/internal/feature/users/usecase"
)

// UserUsecase defines the user directory operations consumed by this handler.
// Following Go conventions, interfaces are defined by the consumer (handler),
// not the provider (usecase).
type UserUsecase interface {
	List(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id uint) (*entity.User, error)
	Update(ctx context.Context, id uint, name, email string, age int) (*entity.User, error)
	Delete(ctx context.Context, id uint) error
	SearchByName(ctx context.Context, name string) ([]entity.User, error)
	ListByAgeRange(ctx context.Context, min, max int) ([]entity.User, error)
}

// UserHandler handles HTTP requests for the user directory.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(users))
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("failed to get user", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get user"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*user))
}

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	user, err := h.users.Update(c.Request.Context(), id, req.Name, req.Email, req.Age)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		case errors.Is(err, usecase.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "email already exists"})
		default:
			slog.Error("failed to update user", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update user"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*user))
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("failed to delete user", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "user deleted"})
}

// Search handles GET /users/search?name=.
func (h *UserHandler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "name query parameter is required"})
		return
	}
	users, err := h.users.SearchByName(c.Request.Context(), name)
	if err != nil {
		slog.Error("failed to search users", "name", name, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to search users"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(users))
}

// ListByAge handles GET /users/age?min=&max=.
func (h *UserHandler) ListByAge(c *gin.Context) {
	min, err1 := strconv.Atoi(c.DefaultQuery("min", "0"))
	max, err2 := strconv.Atoi(c.DefaultQuery("max", "200"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "min and max must be integers"})
		return
	}
	users, err := h.users.ListByAgeRange(c.Request.Context(), min, max)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("failed to list users by age", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(users))
}

// parseID reads the :id path parameter. On failure it writes a 400 response
// and returns ok=false.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return uint(id), true
}
