package dto

// LoginRequest is the request body for POST /auth/login.
// It validates the required fields and the email format.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
