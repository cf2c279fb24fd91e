// Package usecase implements the business logic for the draft feature.
package usecase

import "errors"

var (
	// ErrDraftNotFound is returned when a draft cannot be found by ID.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrInvalidInput is returned when a create request fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDraftState is returned when a transition is attempted on a
	// draft that is not in the PENDING state. It is also returned when a
	// concurrent request wins the transition first.
	ErrInvalidDraftState = errors.New("invalid draft state")
)
