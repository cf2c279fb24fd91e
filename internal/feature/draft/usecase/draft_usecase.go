package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	draftentity "draft_backend/internal/feature/draft/domain/entity"
	userentity "draft_backend/internal/feature/users/domain/entity"
	"draft_backend/internal/shared/random"
)

// DraftRepository abstracts the persistence layer for draft entities.
// Following Go conventions, interfaces are defined by the consumer (usecase),
// not the provider (adapters).
//
// MarkExecuted and MarkCancelled must apply their transition conditionally on
// the draft still being PENDING, inside a single transaction, so that two
// concurrent requests against the same draft cannot both succeed.
type DraftRepository interface {
	// Create persists a new draft together with its participant set.
	Create(ctx context.Context, draft *draftentity.Draft) error

	// FindByID retrieves a draft with its participant and winner ID sets.
	// It returns ErrDraftNotFound if the draft does not exist.
	FindByID(ctx context.Context, id uint) (*draftentity.Draft, error)

	// FindAllOrdered retrieves all drafts ordered by creation time, newest first.
	FindAllOrdered(ctx context.Context) ([]draftentity.Draft, error)

	// FindByStatus retrieves drafts with the given status, newest first.
	FindByStatus(ctx context.Context, status draftentity.Status) ([]draftentity.Draft, error)

	// FindByParticipant retrieves drafts where the given user is a participant.
	FindByParticipant(ctx context.Context, userID uint) ([]draftentity.Draft, error)

	// FindByWinner retrieves drafts where the given user is a winner.
	FindByWinner(ctx context.Context, userID uint) ([]draftentity.Draft, error)

	// MarkExecuted transitions a PENDING draft to EXECUTED, recording winners
	// and the execution time atomically. It returns ErrInvalidDraftState if
	// the draft is no longer PENDING, or ErrDraftNotFound if it does not exist.
	MarkExecuted(ctx context.Context, id uint, winnerIDs []uint, executedAt time.Time) error

	// MarkCancelled transitions a PENDING draft to CANCELLED. Error semantics
	// match MarkExecuted.
	MarkCancelled(ctx context.Context, id uint) error
}

// UserDirectory is the read-only view of the user directory the draft engine
// needs: resolving participant IDs to user records and enumerating all users.
type UserDirectory interface {
	// FindByIDs retrieves every user whose ID appears in ids.
	// Unknown IDs are silently absent from the result.
	FindByIDs(ctx context.Context, ids []uint) ([]userentity.User, error)

	// FindAll retrieves every user in the directory.
	FindAll(ctx context.Context) ([]userentity.User, error)
}

// CreateInput carries the fields of a draft creation request.
type CreateInput struct {
	Title           string
	Description     string
	NumberOfWinners int
	// ParticipantIDs selects specific participants. When empty, every user
	// currently in the directory participates.
	ParticipantIDs []uint
}

// Detail is a draft together with its resolved participant and winner records.
// It is the input to response shaping; user password hashes never leave the
// transport layer because views project only id, name and email.
type Detail struct {
	Draft        draftentity.Draft
	Participants []userentity.User
	Winners      []userentity.User
}

// draftUsecase implements the draft lifecycle and winner selection logic.
type draftUsecase struct {
	drafts DraftRepository
	users  UserDirectory
}

// NewDraftUsecase creates a new instance of draftUsecase.
func NewDraftUsecase(drafts DraftRepository, users UserDirectory) *draftUsecase {
	return &draftUsecase{drafts: drafts, users: users}
}

// Create validates the request, resolves the participant set and persists a
// new PENDING draft.
func (u *draftUsecase) Create(ctx context.Context, in CreateInput) (*Detail, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: draft title cannot be empty", ErrInvalidInput)
	}
	if in.NumberOfWinners <= 0 {
		return nil, fmt.Errorf("%w: number of winners must be greater than 0", ErrInvalidInput)
	}

	var (
		participants []userentity.User
		err          error
	)
	if len(in.ParticipantIDs) > 0 {
		participants, err = u.users.FindByIDs(ctx, in.ParticipantIDs)
		if err != nil {
			return nil, err
		}
		// A count mismatch means an unknown or duplicate ID was requested.
		if len(participants) != len(in.ParticipantIDs) {
			return nil, fmt.Errorf("%w: some participant IDs are invalid", ErrInvalidInput)
		}
	} else {
		participants, err = u.users.FindAll(ctx)
		if err != nil {
			return nil, err
		}
	}

	if len(participants) < in.NumberOfWinners {
		return nil, fmt.Errorf("%w: number of winners (%d) cannot exceed number of participants (%d)",
			ErrInvalidInput, in.NumberOfWinners, len(participants))
	}

	participantIDs := make([]uint, 0, len(participants))
	for _, p := range participants {
		participantIDs = append(participantIDs, p.ID)
	}

	draft := &draftentity.Draft{
		Title:           title,
		Description:     strings.TrimSpace(in.Description),
		NumberOfWinners: in.NumberOfWinners,
		Status:          draftentity.StatusPending,
		CreatedAt:       time.Now(),
		ParticipantIDs:  participantIDs,
	}
	if err := u.drafts.Create(ctx, draft); err != nil {
		return nil, err
	}

	return &Detail{Draft: *draft, Participants: participants, Winners: []userentity.User{}}, nil
}

// Execute selects winners for a PENDING draft and transitions it to EXECUTED.
// The participant rechecks below are defensive: creation already guarantees
// a non-empty pool large enough for the winner count, and the pool is
// immutable afterwards.
func (u *draftUsecase) Execute(ctx context.Context, id uint) (*Detail, error) {
	draft, err := u.drafts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !draft.IsPending() {
		return nil, fmt.Errorf("%w: draft can only be executed when status is PENDING", ErrInvalidDraftState)
	}
	if len(draft.ParticipantIDs) == 0 {
		return nil, fmt.Errorf("%w: no participants found for this draft", ErrInvalidDraftState)
	}
	if len(draft.ParticipantIDs) < draft.NumberOfWinners {
		return nil, fmt.Errorf("%w: not enough participants (%d) for the required number of winners (%d)",
			ErrInvalidDraftState, len(draft.ParticipantIDs), draft.NumberOfWinners)
	}

	winnerIDs, err := selectWinners(draft.ParticipantIDs, draft.NumberOfWinners)
	if err != nil {
		return nil, err
	}

	executedAt := time.Now()
	if err := u.drafts.MarkExecuted(ctx, id, winnerIDs, executedAt); err != nil {
		return nil, err
	}

	draft.WinnerIDs = winnerIDs
	draft.Status = draftentity.StatusExecuted
	draft.ExecutedAt = &executedAt
	return u.resolve(ctx, *draft)
}

// Cancel transitions a PENDING draft to CANCELLED. No other field changes.
func (u *draftUsecase) Cancel(ctx context.Context, id uint) (*Detail, error) {
	draft, err := u.drafts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !draft.IsPending() {
		return nil, fmt.Errorf("%w: only pending drafts can be cancelled", ErrInvalidDraftState)
	}
	if err := u.drafts.MarkCancelled(ctx, id); err != nil {
		return nil, err
	}

	draft.Status = draftentity.StatusCancelled
	return u.resolve(ctx, *draft)
}

// GetByID returns a single draft with resolved users.
func (u *draftUsecase) GetByID(ctx context.Context, id uint) (*Detail, error) {
	draft, err := u.drafts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.resolve(ctx, *draft)
}

// List returns all drafts, newest first, with resolved users.
func (u *draftUsecase) List(ctx context.Context) ([]Detail, error) {
	drafts, err := u.drafts.FindAllOrdered(ctx)
	if err != nil {
		return nil, err
	}
	return u.resolveAll(ctx, drafts)
}

// ListByStatus returns drafts with the given status, newest first.
func (u *draftUsecase) ListByStatus(ctx context.Context, status draftentity.Status) ([]Detail, error) {
	drafts, err := u.drafts.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return u.resolveAll(ctx, drafts)
}

// ListByParticipant returns drafts where the given user is a participant.
func (u *draftUsecase) ListByParticipant(ctx context.Context, userID uint) ([]Detail, error) {
	drafts, err := u.drafts.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.resolveAll(ctx, drafts)
}

// ListByWinner returns drafts where the given user is a winner.
func (u *draftUsecase) ListByWinner(ctx context.Context, userID uint) ([]Detail, error) {
	drafts, err := u.drafts.FindByWinner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.resolveAll(ctx, drafts)
}

// selectWinners picks numberOfWinners distinct IDs from the participant pool.
// When the pool is not larger than the winner count, everyone wins. Otherwise
// the pool is permuted with a cryptographically secure Fisher-Yates shuffle
// and the first numberOfWinners elements are taken, so every subset is
// equally likely.
func selectWinners(participantIDs []uint, numberOfWinners int) ([]uint, error) {
	if numberOfWinners >= len(participantIDs) {
		winners := make([]uint, len(participantIDs))
		copy(winners, participantIDs)
		return winners, nil
	}

	perm, err := random.Perm(len(participantIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to shuffle participants: %w", err)
	}
	winners := make([]uint, 0, numberOfWinners)
	for _, idx := range perm[:numberOfWinners] {
		winners = append(winners, participantIDs[idx])
	}
	return winners, nil
}

// resolve builds a Detail for a single draft by looking the participant and
// winner records up through the user directory.
func (u *draftUsecase) resolve(ctx context.Context, draft draftentity.Draft) (*Detail, error) {
	users, err := u.users.FindByIDs(ctx, draft.ParticipantIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]userentity.User, len(users))
	for _, usr := range users {
		byID[usr.ID] = usr
	}
	return &Detail{
		Draft:        draft,
		Participants: pick(byID, draft.ParticipantIDs),
		Winners:      pick(byID, draft.WinnerIDs),
	}, nil
}

// resolveAll builds Details for a draft list with a single directory lookup.
func (u *draftUsecase) resolveAll(ctx context.Context, drafts []draftentity.Draft) ([]Detail, error) {
	idSet := make(map[uint]struct{})
	for _, d := range drafts {
		for _, id := range d.ParticipantIDs {
			idSet[id] = struct{}{}
		}
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := u.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]userentity.User, len(users))
	for _, usr := range users {
		byID[usr.ID] = usr
	}

	details := make([]Detail, 0, len(drafts))
	for _, d := range drafts {
		details = append(details, Detail{
			Draft:        d,
			Participants: pick(byID, d.ParticipantIDs),
			Winners:      pick(byID, d.WinnerIDs),
		})
	}
	return details, nil
}

// pick maps an ID list to user records, skipping IDs the directory no longer
// knows (for example a user deleted after the draft was created).
func pick(byID map[uint]userentity.User, ids []uint) []userentity.User {
	out := make([]userentity.User, 0, len(ids))
	for _, id := range ids {
		if usr, ok := byID[id]; ok {
			out = append(out, usr)
		}
	}
	return out
}
