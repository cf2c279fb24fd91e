// Package api defines response types shared across HTTP handlers.
package api

// ErrorResponse is the body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body returned for successful requests that carry no data.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the body returned on successful login or token refresh.
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
