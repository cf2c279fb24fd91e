package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"draft_backend/internal/feature/draft/domain/entity"
	"draft_backend/internal/feature/draft/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&DraftModel{}, &DraftParticipant{}, &DraftWinner{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// newPendingDraft builds an unsaved PENDING draft entity.
func newPendingDraft(title string, numberOfWinners int, participantIDs []uint, createdAt time.Time) *entity.Draft {
	return &entity.Draft{
		Title:           title,
		Description:     "test draft",
		NumberOfWinners: numberOfWinners,
		Status:          entity.StatusPending,
		CreatedAt:       createdAt,
		ParticipantIDs:  participantIDs,
	}
}

func TestDraftPostgres_Create(t *testing.T) {
	t.Run("persists draft and participant rows", func(t *testing.T) {
		repo := NewDraftPostgres(setupTestDB(t))

		draft := newPendingDraft("Monthly Prize Draw", 2, []uint{1, 2, 3}, time.Now())
		err := repo.Create(context.Background(), draft)

		require.NoError(t, err)
		assert.NotZero(t, draft.ID, "ID is not set")

		found, err := repo.FindByID(context.Background(), draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "Monthly Prize Draw", found.Title)
		assert.Equal(t, entity.StatusPending, found.Status)
		assert.ElementsMatch(t, []uint{1, 2, 3}, found.ParticipantIDs)
		assert.Empty(t, found.WinnerIDs)
		assert.Nil(t, found.ExecutedAt)
	})

	t.Run("round-trip preserves scalar fields", func(t *testing.T) {
		repo := NewDraftPostgres(setupTestDB(t))
		createdAt := time.Now().Truncate(time.Second)

		draft := newPendingDraft("Team Lunch", 1, []uint{4, 5}, createdAt)
		require.NoError(t, repo.Create(context.Background(), draft))

		found, err := repo.FindByID(context.Background(), draft.ID)
		require.NoError(t, err)
		assert.Equal(t, draft.Title, found.Title)
		assert.Equal(t, draft.Description, found.Description)
		assert.Equal(t, draft.NumberOfWinners, found.NumberOfWinners)
		assert.Equal(t, createdAt.Unix(), found.CreatedAt.Unix())
		assert.ElementsMatch(t, draft.ParticipantIDs, found.ParticipantIDs)
	})
}

func TestDraftPostgres_FindByID(t *testing.T) {
	repo := NewDraftPostgres(setupTestDB(t))

	found, err := repo.FindByID(context.Background(), 999)

	assert.Nil(t, found)
	assert.ErrorIs(t, err, usecase.ErrDraftNotFound)
}

func TestDraftPostgres_FindAllOrdered(t *testing.T) {
	repo := NewDraftPostgres(setupTestDB(t))
	now := time.Now()

	oldest := newPendingDraft("Oldest", 1, []uint{1}, now.Add(-2*time.Hour))
	middle := newPendingDraft("Middle", 1, []uint{1}, now.Add(-time.Hour))
	newest := newPendingDraft("Newest", 1, []uint{1}, now)
	for _, d := range []*entity.Draft{oldest, middle, newest} {
		require.NoError(t, repo.Create(context.Background(), d))
	}

	drafts, err := repo.FindAllOrdered(context.Background())

	require.NoError(t, err)
	require.Len(t, drafts, 3)
	assert.Equal(t, "Newest", drafts[0].Title)
	assert.Equal(t, "Middle", drafts[1].Title)
	assert.Equal(t, "Oldest", drafts[2].Title)
}

func TestDraftPostgres_FindByStatus(t *testing.T) {
	repo := NewDraftPostgres(setupTestDB(t))
	now := time.Now()

	pending := newPendingDraft("Pending", 1, []uint{1, 2}, now)
	executed := newPendingDraft("Executed", 1, []uint{1, 2}, now.Add(-time.Hour))
	cancelled := newPendingDraft("Cancelled", 1, []uint{1, 2}, now.Add(-2*time.Hour))
	for _, d := range []*entity.Draft{pending, executed, cancelled} {
		require.NoError(t, repo.Create(context.Background(), d))
	}
	require.NoError(t, repo.MarkExecuted(context.Background(), executed.ID, []uint{1}, now))
	require.NoError(t, repo.MarkCancelled(context.Background(), cancelled.ID))

	t.Run("pending only", func(t *testing.T) {
		drafts, err := repo.FindByStatus(context.Background(), entity.StatusPending)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "Pending", drafts[0].Title)
	})

	t.Run("executed carries winners and timestamp", func(t *testing.T) {
		drafts, err := repo.FindByStatus(context.Background(), entity.StatusExecuted)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, []uint{1}, drafts[0].WinnerIDs)
		assert.NotNil(t, drafts[0].ExecutedAt)
	})

	t.Run("cancelled has no winners", func(t *testing.T) {
		drafts, err := repo.FindByStatus(context.Background(), entity.StatusCancelled)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Empty(t, drafts[0].WinnerIDs)
		assert.Nil(t, drafts[0].ExecutedAt)
	})
}

func TestDraftPostgres_MarkExecuted(t *testing.T) {
	t.Run("success: records winners, status and timestamp", func(t *testing.T) {
		repo := NewDraftPostgres(setupTestDB(t))
		draft := newPendingDraft("Draw", 2, []uint{1, 2, 3}, time.Now())
		require.NoError(t, repo.Create(context.Background(), draft))

		executedAt := time.Now()
		err := repo.MarkExecuted(context.Background(), draft.ID, []uint{1, 3}, executedAt)
		require.NoError(t, err)

		found, err := repo.FindByID(context.Background(), draft.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusExecuted, found.Status)
		assert.ElementsMatch(t, []uint{1, 3}, found.WinnerIDs)
		require.NotNil(t, found.ExecutedAt)
		assert.Equal(t, executedAt.Unix(), found.ExecutedAt.Unix())
	})

	t.Run("second transition fails and changes nothing", func(t *testing.T) {
		repo := NewDraftPostgres(setupTestDB(t))
		draft := newPendingDraft("Draw", 1, []uint{1, 2}, time.Now())
		require.NoError(t, repo.Create(context.Background(), draft))
		require.NoError(t, repo.MarkExecuted(context.Background(), draft.ID, []uint{2}, time.Now()))

		err := repo.MarkExecuted(context.Background(), draft.ID, []uint{1}, time.Now())
		assert.ErrorIs(t, err, usecase.ErrInvalidDraftState)

		found, findErr := repo.FindByID(context.Background(), draft.ID)
		require.NoError(t, findErr)
		assert.Equal(t, []uint{2}, found.WinnerIDs, "winners must be unchanged after the failed transition")
	})

	t.Run("cancelled draft cannot be executed", func(t *testing.T) {
		repo := NewDraftPostgres(setupTestDB(t))
		draft := newPendingDraft("Draw", 1, []uint{1, 2}, time.Now())
		require.NoError(t, repo.Create(context.Background(), draft))
		require.NoError(t, repo.MarkCancelled(context.Background(), draft.ID))

		err := repo.MarkExecuted(context.Background(), draft.ID, []uint{1}, time.Now())

		assert.ErrorIs(t, err, usecase.ErrInvalidDraftState)
	})

	t.Run("unknown draft returns ErrDraftNotFound", func(t *testing.T) {
		repo := NewDraftPostgres(setupTestDB(t))

		err := repo.MarkExecuted(context.Background(), 999, []uint{1}, time.Now())

		assert.ErrorIs(t, err, usecase.ErrDraftNotFound)
	})
}

func TestDraftPostgres_MarkCancelled(t *testing.T) {
	t.Run("success: only the status changes", func(t *testing.T) {
		repo := NewDraftPostgres(setupTestDB(t))
		draft := newPendingDraft("Draw", 1, []uint{1, 2}, time.Now())
		require.NoError(t, repo.Create(context.Background(), draft))

		err := repo.MarkCancelled(context.Background(), draft.ID)
		require.NoError(t, err)

		found, findErr := repo.FindByID(context.Background(), draft.ID)
		require.NoError(t, findErr)
		assert.Equal(t, entity.StatusCancelled, found.Status)
		assert.Nil(t, found.ExecutedAt)
		assert.Empty(t, found.WinnerIDs)
		assert.ElementsMatch(t, []uint{1, 2}, found.ParticipantIDs)
	})

	t.Run("executed draft cannot be cancelled", func(t *testing.T) {
		repo := NewDraftPostgres(setupTestDB(t))
		draft := newPendingDraft("Draw", 1, []uint{1, 2}, time.Now())
		require.NoError(t, repo.Create(context.Background(), draft))
		require.NoError(t, repo.MarkExecuted(context.Background(), draft.ID, []uint{1}, time.Now()))

		err := repo.MarkCancelled(context.Background(), draft.ID)

		assert.ErrorIs(t, err, usecase.ErrInvalidDraftState)
	})

	t.Run("unknown draft returns ErrDraftNotFound", func(t *testing.T) {
		repo := NewDraftPostgres(setupTestDB(t))

		err := repo.MarkCancelled(context.Background(), 999)

		assert.ErrorIs(t, err, usecase.ErrDraftNotFound)
	})
}

func TestDraftPostgres_FindByParticipantAndWinner(t *testing.T) {
	repo := NewDraftPostgres(setupTestDB(t))
	now := time.Now()

	first := newPendingDraft("First", 1, []uint{1, 2}, now.Add(-time.Hour))
	second := newPendingDraft("Second", 1, []uint{2, 3}, now)
	require.NoError(t, repo.Create(context.Background(), first))
	require.NoError(t, repo.Create(context.Background(), second))
	require.NoError(t, repo.MarkExecuted(context.Background(), first.ID, []uint{2}, now))

	t.Run("by participant", func(t *testing.T) {
		drafts, err := repo.FindByParticipant(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, drafts, 2)
		assert.Equal(t, "Second", drafts[0].Title, "newest first")

		drafts, err = repo.FindByParticipant(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "First", drafts[0].Title)
	})

	t.Run("by winner", func(t *testing.T) {
		drafts, err := repo.FindByWinner(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "First", drafts[0].Title)
	})

	t.Run("user with no drafts yields empty list", func(t *testing.T) {
		drafts, err := repo.FindByParticipant(context.Background(), 42)
		require.NoError(t, err)
		assert.Empty(t, drafts)

		drafts, err = repo.FindByWinner(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, drafts)
	})
}
