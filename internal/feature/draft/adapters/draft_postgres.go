// Package adapters provides the repository implementations for the draft feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"draft_backend/internal/feature/draft/domain/entity"
	"draft_backend/internal/feature/draft/usecase"
)

// draftPostgres is the PostgreSQL implementation of the DraftRepository
// interface. It uses GORM for database operations.
//
// Participants and winners are stored as explicit join rows owned by the
// draft, not as ORM-managed associations. The draft only ever references
// users by ID.
type draftPostgres struct {
	db *gorm.DB
}

// Compile-time check that draftPostgres satisfies the consumer interface.
var _ usecase.DraftRepository = (*draftPostgres)(nil)

// NewDraftPostgres creates a new instance of draftPostgres with the given
// gorm.DB connection. Constructor for dependency injection.
func NewDraftPostgres(db *gorm.DB) *draftPostgres {
	return &draftPostgres{db: db}
}

// DraftModel is the persistence model for drafts.
type DraftModel struct {
	ID              uint       `gorm:"primaryKey"`
	Title           string     `gorm:"size:255;not null"`
	Description     string     `gorm:"size:1024"`
	NumberOfWinners int        `gorm:"not null"`
	Status          string     `gorm:"size:16;not null;index"`
	CreatedAt       time.Time  `gorm:"not null;index"`
	ExecutedAt      *time.Time
}

// TableName overrides the default table name.
func (DraftModel) TableName() string {
	return "drafts"
}

// DraftParticipant is a join row linking a draft to one of its participants.
type DraftParticipant struct {
	DraftID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID  uint `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName overrides the default table name.
func (DraftParticipant) TableName() string {
	return "draft_participants"
}

// DraftWinner is a join row linking a draft to one of its winners.
type DraftWinner struct {
	DraftID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID  uint `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName overrides the default table name.
func (DraftWinner) TableName() string {
	return "draft_winners"
}

func toModel(d *entity.Draft) DraftModel {
	return DraftModel{
		ID:              d.ID,
		Title:           d.Title,
		Description:     d.Description,
		NumberOfWinners: d.NumberOfWinners,
		Status:          string(d.Status),
		CreatedAt:       d.CreatedAt,
		ExecutedAt:      d.ExecutedAt,
	}
}

func toEntity(m DraftModel, participantIDs, winnerIDs []uint) entity.Draft {
	return entity.Draft{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		NumberOfWinners: m.NumberOfWinners,
		Status:          entity.Status(m.Status),
		CreatedAt:       m.CreatedAt,
		ExecutedAt:      m.ExecutedAt,
		ParticipantIDs:  participantIDs,
		WinnerIDs:       winnerIDs,
	}
}

// Create persists a draft and its participant rows in one transaction.
func (r *draftPostgres) Create(ctx context.Context, d *entity.Draft) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toModel(d)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		d.ID = m.ID

		if len(d.ParticipantIDs) == 0 {
			return nil
		}
		rows := make([]DraftParticipant, 0, len(d.ParticipantIDs))
		for _, userID := range d.ParticipantIDs {
			rows = append(rows, DraftParticipant{DraftID: m.ID, UserID: userID})
		}
		return tx.Create(&rows).Error
	})
}

// FindByID retrieves a draft with its participant and winner ID sets.
// It returns usecase.ErrDraftNotFound if the draft does not exist.
func (r *draftPostgres) FindByID(ctx context.Context, id uint) (*entity.Draft, error) {
	var m DraftModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrDraftNotFound
		}
		return nil, err
	}

	drafts, err := r.attachUserIDs(ctx, []DraftModel{m})
	if err != nil {
		return nil, err
	}
	return &drafts[0], nil
}

// FindAllOrdered retrieves all drafts ordered by creation time, newest first.
func (r *draftPostgres) FindAllOrdered(ctx context.Context) ([]entity.Draft, error) {
	var models []DraftModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.attachUserIDs(ctx, models)
}

// FindByStatus retrieves drafts with the given status, newest first.
func (r *draftPostgres) FindByStatus(ctx context.Context, status entity.Status) ([]entity.Draft, error) {
	var models []DraftModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return r.attachUserIDs(ctx, models)
}

// FindByParticipant retrieves drafts where the given user is a participant,
// newest first.
func (r *draftPostgres) FindByParticipant(ctx context.Context, userID uint) ([]entity.Draft, error) {
	return r.findByJoin(ctx, "draft_participants", userID)
}

// FindByWinner retrieves drafts where the given user is a winner, newest first.
func (r *draftPostgres) FindByWinner(ctx context.Context, userID uint) ([]entity.Draft, error) {
	return r.findByJoin(ctx, "draft_winners", userID)
}

func (r *draftPostgres) findByJoin(ctx context.Context, joinTable string, userID uint) ([]entity.Draft, error) {
	var models []DraftModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN "+joinTable+" j ON j.draft_id = drafts.id").
		Where("j.user_id = ?", userID).
		Order("drafts.created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return r.attachUserIDs(ctx, models)
}

// MarkExecuted transitions a PENDING draft to EXECUTED and records its
// winners, all in one transaction. The status change is a conditional update
// keyed on the PENDING state, so of two concurrent transitions exactly one
// succeeds; the other observes zero affected rows and fails.
func (r *draftPostgres) MarkExecuted(ctx context.Context, id uint, winnerIDs []uint, executedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.transition(tx, id, map[string]interface{}{
			"status":      string(entity.StatusExecuted),
			"executed_at": executedAt,
		}); err != nil {
			return err
		}

		if len(winnerIDs) == 0 {
			return nil
		}
		rows := make([]DraftWinner, 0, len(winnerIDs))
		for _, userID := range winnerIDs {
			rows = append(rows, DraftWinner{DraftID: id, UserID: userID})
		}
		return tx.Create(&rows).Error
	})
}

// MarkCancelled transitions a PENDING draft to CANCELLED. No other field changes.
func (r *draftPostgres) MarkCancelled(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.transition(tx, id, map[string]interface{}{
			"status": string(entity.StatusCancelled),
		})
	})
}

// transition applies updates to a draft only while it is still PENDING.
// Zero affected rows is disambiguated into not-found versus wrong-state.
func (r *draftPostgres) transition(tx *gorm.DB, id uint, updates map[string]interface{}) error {
	res := tx.Model(&DraftModel{}).
		Where("id = ? AND status = ?", id, string(entity.StatusPending)).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&DraftModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return usecase.ErrDraftNotFound
		}
		return usecase.ErrInvalidDraftState
	}
	return nil
}

// attachUserIDs loads the participant and winner ID sets for the given draft
// models with one query per join table.
func (r *draftPostgres) attachUserIDs(ctx context.Context, models []DraftModel) ([]entity.Draft, error) {
	if len(models) == 0 {
		return []entity.Draft{}, nil
	}

	ids := make([]uint, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.ID)
	}

	var participantRows []DraftParticipant
	if err := r.db.WithContext(ctx).Where("draft_id IN ?", ids).Find(&participantRows).Error; err != nil {
		return nil, err
	}
	var winnerRows []DraftWinner
	if err := r.db.WithContext(ctx).Where("draft_id IN ?", ids).Find(&winnerRows).Error; err != nil {
		return nil, err
	}

	participants := make(map[uint][]uint, len(models))
	for _, row := range participantRows {
		participants[row.DraftID] = append(participants[row.DraftID], row.UserID)
	}
	winners := make(map[uint][]uint, len(models))
	for _, row := range winnerRows {
		winners[row.DraftID] = append(winners[row.DraftID], row.UserID)
	}

	drafts := make([]entity.Draft, 0, len(models))
	for _, m := range models {
		drafts = append(drafts, toEntity(m, participants[m.ID], winners[m.ID]))
	}
	return drafts, nil
}
