// Package dto defines data transfer objects for the draft feature's HTTP transport layer.
package dto

import (
	"time"

	"draft_backend/internal/feature/draft/usecase"
	userentity "draft_backend/internal/feature/users/domain/entity"
)

// CreateDraftRequest is the request body for POST /drafts.
type CreateDraftRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	NumberOfWinners int    `json:"numberOfWinners"`
	// ParticipantIDs selects specific participants; when omitted every user
	// in the directory participates.
	ParticipantIDs []uint `json:"participantIds"`
}

// UserSummary is the minimal projection of a user embedded in draft views.
// It deliberately carries no password hash and no age.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DraftResponse is the external view of a draft.
type DraftResponse struct {
	ID              uint          `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	NumberOfWinners int           `json:"numberOfWinners"`
	Status          string        `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	ExecutedAt      *time.Time    `json:"executedAt"`
	Participants    []UserSummary `json:"participants"`
	Winners         []UserSummary `json:"winners"`
}

// FromDetail maps a resolved draft to its external view.
func FromDetail(d usecase.Detail) DraftResponse {
	return DraftResponse{
		ID:              d.Draft.ID,
		Title:           d.Draft.Title,
		Description:     d.Draft.Description,
		NumberOfWinners: d.Draft.NumberOfWinners,
		Status:          string(d.Draft.Status),
		CreatedAt:       d.Draft.CreatedAt,
		ExecutedAt:      d.Draft.ExecutedAt,
		Participants:    summaries(d.Participants),
		Winners:         summaries(d.Winners),
	}
}

// FromDetails maps a slice of resolved drafts to external views.
func FromDetails(details []usecase.Detail) []DraftResponse {
	out := make([]DraftResponse, 0, len(details))
	for _, d := range details {
		out = append(out, FromDetail(d))
	}
	return out
}

func summaries(users []userentity.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummary{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out
}
