// Package entity defines the domain entities for the draft feature.
package entity

import (
	"fmt"
	"strings"
	"time"
)

// Status represents the lifecycle state of a draft.
// Transitions are one-way: PENDING may move to EXECUTED or CANCELLED,
// both of which are terminal.
type Status string

const (
	// StatusPending means the draft has been created but not executed.
	StatusPending Status = "PENDING"
	// StatusExecuted means the draft has been run and winners selected.
	StatusExecuted Status = "EXECUTED"
	// StatusCancelled means the draft was cancelled before execution.
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus converts a string into a Status, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(s)) {
	case StatusPending:
		return StatusPending, nil
	case StatusExecuted:
		return StatusExecuted, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("invalid status %q: valid values are PENDING, EXECUTED, CANCELLED", s)
	}
}

// Draft is a named event with a fixed participant pool from which a fixed
// number of winners are randomly chosen exactly once.
//
// A draft references users by ID only; user records are resolved through the
// user directory when a response view is built. It never owns user lifecycle.
type Draft struct {
	// ID is the unique identifier, assigned on creation.
	ID uint

	// Title is a non-empty, trimmed display name.
	Title string

	// Description is optional free text, empty by default.
	Description string

	// NumberOfWinners is the number of winners to select on execution.
	// Creation guarantees it never exceeds the participant count.
	NumberOfWinners int

	// Status is the current lifecycle state.
	Status Status

	// CreatedAt is set at creation and immutable thereafter.
	CreatedAt time.Time

	// ExecutedAt is set exactly once, when the draft transitions to EXECUTED.
	ExecutedAt *time.Time

	// ParticipantIDs is the participant pool, fixed at creation.
	ParticipantIDs []uint

	// WinnerIDs is empty until execution, then a subset of ParticipantIDs
	// with exactly NumberOfWinners elements.
	WinnerIDs []uint
}

// IsPending reports whether the draft can still be executed or cancelled.
func (d *Draft) IsPending() bool {
	return d.Status == StatusPending
}

// IsExecuted reports whether winners have been selected.
func (d *Draft) IsExecuted() bool {
	return d.Status == StatusExecuted
}
