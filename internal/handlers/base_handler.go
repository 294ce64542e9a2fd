package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ltalk/backend/internal/auth"
	"github.com/ltalk/backend/internal/services"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service errors to HTTP status codes
//
// Client errors carry the service message; anything unexpected is reported as "fallback".
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrUnsupportedExerciseType):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrWordSetNotFound), errors.Is(err, services.ErrExerciseNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrGenerationFailed):
		h.Logger.Error(fallback, zap.Error(err))
		h.RespondError(w, http.StatusBadGateway, services.ErrGenerationFailed.Error())
	default:
		h.Logger.Error(fallback, zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, fallback)
	}
}

// userID returns the authenticated user, answering 401 when there is none
func (h *BaseHandler) userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return 0, false
	}
	return userID, true
}

// pathID parses a positive integer URL parameter, answering 400 when it is invalid
func (h *BaseHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body, answering 400 when it is malformed
func (h *BaseHandler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
