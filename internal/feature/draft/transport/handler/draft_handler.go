// Package handler provides the HTTP handlers for the draft feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"draft_backend/internal/api"
	"draft_backend/internal/feature/draft/domain/entity"
	"draft_backend/internal/feature/draft/transport/http/dto"
	"draft_backend/internal/feature/draft/usecase"
)

// DraftUsecase defines the draft lifecycle operations consumed by this handler.
// Following Go conventions, interfaces are defined by the consumer (handler),
// not the provider (usecase).
type DraftUsecase interface {
	Create(ctx context.Context, in usecase.CreateInput) (*usecase.Detail, error)
	Execute(ctx context.Context, id uint) (*usecase.Detail, error)
	Cancel(ctx context.Context, id uint) (*usecase.Detail, error)
	GetByID(ctx context.Context, id uint) (*usecase.Detail, error)
	List(ctx context.Context) ([]usecase.Detail, error)
	ListByStatus(ctx context.Context, status entity.Status) ([]usecase.Detail, error)
	ListByParticipant(ctx context.Context, userID uint) ([]usecase.Detail, error)
	ListByWinner(ctx context.Context, userID uint) ([]usecase.Detail, error)
}

// DraftHandler handles HTTP requests for the draft lifecycle.
type DraftHandler struct {
	drafts DraftUsecase
}

// NewDraftHandler creates a new instance of DraftHandler.
func NewDraftHandler(drafts DraftUsecase) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// Create handles POST /drafts.
// Validation failures return 400; success returns 201 with the draft view.
func (h *DraftHandler) Create(c *gin.Context) {
	var req dto.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	detail, err := h.drafts.Create(c.Request.Context(), usecase.CreateInput{
		Title:           req.Title,
		Description:     req.Description,
		NumberOfWinners: req.NumberOfWinners,
		ParticipantIDs:  req.ParticipantIDs,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("failed to create draft", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create draft"})
		return
	}

	slog.Info("draft created", "id", detail.Draft.ID, "title", detail.Draft.Title,
		"participants", len(detail.Participants))
	c.JSON(http.StatusCreated, dto.FromDetail(*detail))
}

// Execute handles POST /drafts/:id/execute.
// 404 for unknown drafts, 400 for non-PENDING drafts, 200 with the updated view.
func (h *DraftHandler) Execute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.drafts.Execute(c.Request.Context(), id)
	if err != nil {
		h.writeLifecycleError(c, "execute", id, err)
		return
	}

	slog.Info("draft executed", "id", id, "winners", len(detail.Winners))
	c.JSON(http.StatusOK, dto.FromDetail(*detail))
}

// Cancel handles POST /drafts/:id/cancel.
func (h *DraftHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.drafts.Cancel(c.Request.Context(), id)
	if err != nil {
		h.writeLifecycleError(c, "cancel", id, err)
		return
	}

	slog.Info("draft cancelled", "id", id)
	c.JSON(http.StatusOK, dto.FromDetail(*detail))
}

// Get handles GET /drafts/:id.
func (h *DraftHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.drafts.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeLifecycleError(c, "get", id, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDetail(*detail))
}

// List handles GET /drafts.
func (h *DraftHandler) List(c *gin.Context) {
	details, err := h.drafts.List(c.Request.Context())
	if err != nil {
		slog.Error("failed to list drafts", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list drafts"})
		return
	}
	c.JSON(http.StatusOK, dto.FromDetails(details))
}

// ListByStatus handles GET /drafts/status/:status.
// Unknown status values return 400.
func (h *DraftHandler) ListByStatus(c *gin.Context) {
	status, err := entity.ParseStatus(c.Param("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	details, err := h.drafts.ListByStatus(c.Request.Context(), status)
	if err != nil {
		slog.Error("failed to list drafts by status", "status", status, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list drafts"})
		return
	}
	c.JSON(http.StatusOK, dto.FromDetails(details))
}

// ListByParticipant handles GET /drafts/participant/:userId.
func (h *DraftHandler) ListByParticipant(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	details, err := h.drafts.ListByParticipant(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list drafts by participant", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list drafts"})
		return
	}
	c.JSON(http.StatusOK, dto.FromDetails(details))
}

// ListByWinner handles GET /drafts/winner/:userId.
func (h *DraftHandler) ListByWinner(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	details, err := h.drafts.ListByWinner(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list drafts by winner", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list drafts"})
		return
	}
	c.JSON(http.StatusOK, dto.FromDetails(details))
}

// writeLifecycleError maps usecase errors for single-draft operations onto
// HTTP responses: 404 for unknown drafts, 400 for state violations, 500
// otherwise.
func (h *DraftHandler) writeLifecycleError(c *gin.Context, op string, id uint, err error) {
	switch {
	case errors.Is(err, usecase.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "draft not found"})
	case errors.Is(err, usecase.ErrInvalidDraftState):
		slog.Warn("draft state violation", "op", op, "id", id, "error", err)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("draft operation failed", "op", op, "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// parseID reads a numeric path parameter. On failure it writes a 404 response
// and returns ok=false; a non-numeric ID can never name an existing draft.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "not found"})
		return 0, false
	}
	return uint(id), true
}
