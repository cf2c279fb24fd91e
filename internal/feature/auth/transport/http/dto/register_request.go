// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import userentity "draft_backend/internal/feature/users/domain/entity"

// RegisterRequest is the request body for POST /auth/register.
// It uses Gin's binding tags for validation (required, email format, password length).
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Age      int    `json:"age" binding:"omitempty,min=0"`
}

// RegisterResponse is the view of a freshly registered user.
// It deliberately carries no password hash.
type RegisterResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

// FromUser maps a user entity to the registration view.
func FromUser(u *userentity.User) RegisterResponse {
	return RegisterResponse{ID: u.ID, Name: u.Name, Email: u.Email, Age: u.Age}
}
