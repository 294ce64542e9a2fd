package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ltalk/backend/internal/models"
	"go.uber.org/zap"
)

// ExerciseService is the interface that wraps methods for Exercise business logic.
type ExerciseService interface {
	// CreateExercise builds and stores an exercise for a word set.
	//
	// "userID" parameter is used to identify the user; the word set must belong to them or be public.
	// "exerciseType" must be one of flashcard, multiple_choice or fill_in_gap.
	// Unknown types return ErrUnsupportedExerciseType, invisible word sets ErrWordSetNotFound
	// and failed multiple choice generation ErrGenerationFailed.
	CreateExercise(ctx context.Context, userID, wordSetID int, exerciseType models.ExerciseType) (*models.Exercise, error)
	// GetExercise retrieves an exercise of the user.
	//
	// Exercises of other users return ErrExerciseNotFound.
	GetExercise(ctx context.Context, userID, exerciseID int) (*models.Exercise, error)
}

// SubmissionService is the interface that wraps methods for answer submission business logic.
type SubmissionService interface {
	// Submit grades answers keyed by question key.
	//
	// Mastery records and the submission record are only stored when every question is answered.
	// Empty or unmatched answers return ErrValidation.
	Submit(ctx context.Context, userID, exerciseID int, answers map[string]string) (*models.SubmissionResult, error)
	// History retrieves the latest stored submissions of the user, newest first.
	History(ctx context.Context, userID, limit int) ([]models.SubmissionRecord, error)
}

// ExerciseHandler handles HTTP requests for exercises and their submissions
type ExerciseHandler struct {
	BaseHandler
	exercises   ExerciseService
	submissions SubmissionService
}

// NewExerciseHandler creates a new exercise handler
func NewExerciseHandler(exercises ExerciseService, submissions SubmissionService, logger *zap.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		BaseHandler: BaseHandler{Logger: logger},
		exercises:   exercises,
		submissions: submissions,
	}
}

// RegisterRoutes registers all exercise handler routes
func (h *ExerciseHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/exercises", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.CreateExercise)
		r.Get("/history", h.GetHistory)
		r.Get("/{id}", h.GetExercise)
		r.Post("/{id}/submit", h.SubmitAnswers)
	})
}

// CreateExercise handles POST /api/v1/exercises
// @Summary Create an exercise
// @Description Build a flashcard, multiple_choice or fill_in_gap exercise from a word set. Correct answers are not returned. Requires authentication.
// @Tags exercises
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateExerciseRequest true "Word set and exercise type"
// @Success 201 {object} models.Exercise
// @Failure 400 {object} map[string]string "Invalid body or unsupported exercise type"
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string "Word set not found"
// @Failure 502 {object} map[string]string "Question generation failed"
// @Failure 500 {object} map[string]string
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.CreateExerciseRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.WordSetID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "wordSetId is required")
		return
	}
	exerciseType, err := models.ParseExerciseType(req.Type)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := h.exercises.CreateExercise(r.Context(), userID, req.WordSetID, exerciseType)
	if err != nil {
		h.respondServiceError(w, err, "failed to create exercise")
		return
	}

	h.RespondJSON(w, http.StatusCreated, exercise)
}

// GetExercise handles GET /api/v1/exercises/{id}
// @Summary Get an exercise
// @Description Get one of the user's exercises without its correct answers. Requires authentication.
// @Tags exercises
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Exercise ID"
// @Success 200 {object} models.Exercise
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	exercise, err := h.exercises.GetExercise(r.Context(), userID, id)
	if err != nil {
		h.respondServiceError(w, err, "failed to get exercise")
		return
	}

	h.RespondJSON(w, http.StatusOK, exercise)
}

// SubmitAnswers handles POST /api/v1/exercises/{id}/submit
// @Summary Submit answers
// @Description Grade answers keyed by question key. Progress and the submission are saved only when every question is answered. Requires authentication.
// @Tags exercises
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Exercise ID"
// @Param request body models.SubmitAnswersRequest true "Answers by question key"
// @Success 200 {object} models.SubmissionResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /exercises/{id}/submit [post]
func (h *ExerciseHandler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.SubmitAnswersRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.submissions.Submit(r.Context(), userID, id, req.Answers)
	if err != nil {
		h.respondServiceError(w, err, "failed to submit answers")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// GetHistory handles GET /api/v1/exercises/history
// @Summary Get submission history
// @Description Get the user's latest saved submissions, newest first. Requires authentication.
// @Tags exercises
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Number of records, 1-100, default: 20"
// @Success 200 {array} models.SubmissionRecord
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /exercises/history [get]
func (h *ExerciseHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			h.RespondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	records, err := h.submissions.History(r.Context(), userID, limit)
	if err != nil {
		h.respondServiceError(w, err, "failed to get submission history")
		return
	}
	if records == nil {
		records = []models.SubmissionRecord{}
	}

	h.RespondJSON(w, http.StatusOK, records)
}
