package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ltalk/backend/internal/models"
	"go.uber.org/zap"
)

// ProgressService is the interface that wraps methods for mastery progress business logic.
type ProgressService interface {
	// ListProgress retrieves the mastery records of every word the user has practiced.
	ListProgress(ctx context.Context, userID int) ([]models.MasteryResponse, error)
}

// ProgressHandler handles HTTP requests for learning progress
type ProgressHandler struct {
	BaseHandler
	service ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Get("/progress", h.GetProgress)
}

// GetProgress handles GET /api/v1/progress
// @Summary Get learning progress
// @Description Get attempt counters, accuracy and learned flag for every practiced word. Requires authentication.
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.MasteryResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /progress [get]
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	items, err := h.service.ListProgress(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err, "failed to get progress")
		return
	}
	if items == nil {
		items = []models.MasteryResponse{}
	}

	h.RespondJSON(w, http.StatusOK, items)
}
