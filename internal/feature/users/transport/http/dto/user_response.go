// Package dto defines data transfer objects for the users feature's HTTP transport layer.
package dto

import (
	"time"

	"draft_backend/internal/feature/users/domain/entity"
)

// UserResponse is the external view of a user. The password hash is never included.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromEntity maps a user entity to its external view.
func FromEntity(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// FromEntities maps a slice of user entities to external views.
func FromEntities(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromEntity(u))
	}
	return out
}

// UpdateUserRequest is the request body for PUT /users/:id.
type UpdateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Age   int    `json:"age" binding:"min=0"`
}
