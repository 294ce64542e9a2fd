package handlers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ltalk/backend/internal/importer"
	"github.com/ltalk/backend/internal/models"
	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20 // 10MB

// WordSetService is the interface that wraps methods for WordSet business logic.
type WordSetService interface {
	// Create validates and stores a word set with its words.
	//
	// Validation failures return ErrValidation.
	Create(ctx context.Context, userID int, req models.CreateWordSetRequest) (*models.WordSet, error)
	// Get retrieves a word set with its words; other users' sets must be public.
	Get(ctx context.Context, userID, id int) (*models.WordSet, error)
	// List retrieves the user's own sets ("own") or other users' public sets ("others").
	List(ctx context.Context, userID int, scope models.WordSetScope) ([]models.WordSetListItem, error)
	// SetVisibility makes one of the user's sets public or private.
	SetVisibility(ctx context.Context, userID, id int, isPublic bool) error
	// Duplicate copies another user's public set into a private set of the user.
	Duplicate(ctx context.Context, userID, id int) (*models.WordSet, error)
	// Delete removes one of the user's sets.
	Delete(ctx context.Context, userID, id int) error
	// Import creates a word set from an .xlsx or .csv file.
	//
	// The parse result is returned even when the set could not be created.
	Import(ctx context.Context, userID int, title, filename string, r io.Reader) (*models.WordSet, *importer.Result, error)
	// ExtractFromPhoto lists the words found in an image; the words are not stored.
	ExtractFromPhoto(ctx context.Context, image []byte, mimeType string) ([]models.Word, error)
}

// WordSetHandler handles HTTP requests for word sets
type WordSetHandler struct {
	BaseHandler
	service WordSetService
}

// NewWordSetHandler creates a new word set handler
func NewWordSetHandler(svc WordSetService, logger *zap.Logger) *WordSetHandler {
	return &WordSetHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// VisibilityRequest represents a visibility change request
type VisibilityRequest struct {
	IsPublic *bool `json:"isPublic"`
}

// ImportResponse represents the result of a word set import
type ImportResponse struct {
	WordSet   *models.WordSet `json:"wordSet"`
	TotalRows int             `json:"totalRows"`
	Errors    []string        `json:"errors"`
}

// PhotoWordsResponse represents the words found in a photo
type PhotoWordsResponse struct {
	Words []models.Word `json:"words"`
}

// RegisterRoutes registers all word set handler routes
func (h *WordSetHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/wordsets", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.CreateWordSet)
		r.Get("/", h.ListWordSets)
		r.Post("/import", h.ImportWordSet)
		r.Post("/photo", h.ExtractFromPhoto)
		r.Get("/{id}", h.GetWordSet)
		r.Patch("/{id}/visibility", h.SetVisibility)
		r.Post("/{id}/duplicate", h.DuplicateWordSet)
		r.Delete("/{id}", h.DeleteWordSet)
	})
}

// CreateWordSet handles POST /api/v1/wordsets
// @Summary Create a word set
// @Description Create a word set from a list of words. Requires authentication.
// @Tags wordsets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateWordSetRequest true "Word set"
// @Success 201 {object} models.WordSet
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wordsets [post]
func (h *WordSetHandler) CreateWordSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.CreateWordSetRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	wordSet, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		h.respondServiceError(w, err, "failed to create word set")
		return
	}

	h.RespondJSON(w, http.StatusCreated, wordSet)
}

// ListWordSets handles GET /api/v1/wordsets
// @Summary List word sets
// @Description List the user's own word sets or other users' public word sets. Requires authentication.
// @Tags wordsets
// @Produce json
// @Security ApiKeyAuth
// @Param scope query string false "own (default) or others"
// @Success 200 {array} models.WordSetListItem
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wordsets [get]
func (h *WordSetHandler) ListWordSets(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	scope := models.WordSetScope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = models.WordSetScopeOwn
	}

	items, err := h.service.List(r.Context(), userID, scope)
	if err != nil {
		h.respondServiceError(w, err, "failed to list word sets")
		return
	}
	if items == nil {
		items = []models.WordSetListItem{}
	}

	h.RespondJSON(w, http.StatusOK, items)
}

// GetWordSet handles GET /api/v1/wordsets/{id}
// @Summary Get a word set
// @Description Get a word set with its words. Other users' word sets must be public. Requires authentication.
// @Tags wordsets
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Word set ID"
// @Success 200 {object} models.WordSet
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wordsets/{id} [get]
func (h *WordSetHandler) GetWordSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	wordSet, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		h.respondServiceError(w, err, "failed to get word set")
		return
	}

	h.RespondJSON(w, http.StatusOK, wordSet)
}

// SetVisibility handles PATCH /api/v1/wordsets/{id}/visibility
// @Summary Change word set visibility
// @Description Make one of the user's word sets public or private. Requires authentication.
// @Tags wordsets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Word set ID"
// @Param request body VisibilityRequest true "Visibility"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wordsets/{id}/visibility [patch]
func (h *WordSetHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req VisibilityRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.IsPublic == nil {
		h.RespondError(w, http.StatusBadRequest, "isPublic is required")
		return
	}

	if err := h.service.SetVisibility(r.Context(), userID, id, *req.IsPublic); err != nil {
		h.respondServiceError(w, err, "failed to update word set visibility")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DuplicateWordSet handles POST /api/v1/wordsets/{id}/duplicate
// @Summary Duplicate a public word set
// @Description Copy another user's public word set into a new private word set. Requires authentication.
// @Tags wordsets
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Word set ID"
// @Success 201 {object} models.WordSet
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wordsets/{id}/duplicate [post]
func (h *WordSetHandler) DuplicateWordSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	wordSet, err := h.service.Duplicate(r.Context(), userID, id)
	if err != nil {
		h.respondServiceError(w, err, "failed to duplicate word set")
		return
	}

	h.RespondJSON(w, http.StatusCreated, wordSet)
}

// DeleteWordSet handles DELETE /api/v1/wordsets/{id}
// @Summary Delete a word set
// @Description Delete one of the user's word sets. Requires authentication.
// @Tags wordsets
// @Security ApiKeyAuth
// @Param id path int true "Word set ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wordsets/{id} [delete]
func (h *WordSetHandler) DeleteWordSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		h.respondServiceError(w, err, "failed to delete word set")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ImportWordSet handles POST /api/v1/wordsets/import
// @Summary Import a word set
// @Description Create a word set from an .xlsx or .csv file with rows "word, infinitive, translation" or "word, translation". Requires authentication.
// @Tags wordsets
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Spreadsheet"
// @Param title formData string false "Word set title, defaults to the file name"
// @Success 201 {object} ImportResponse
// @Failure 400 {object} ImportResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wordsets/import [post]
func (h *WordSetHandler) ImportWordSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	file, header, ok := h.formFile(w, r, "file")
	if !ok {
		return
	}
	defer file.Close()

	wordSet, result, err := h.service.Import(r.Context(), userID, r.FormValue("title"), header.Filename, file)
	if err != nil {
		if result != nil && len(result.Errors) > 0 {
			h.RespondJSON(w, http.StatusBadRequest, map[string]any{
				"error":     err.Error(),
				"totalRows": result.TotalRows,
				"errors":    result.Errors,
			})
			return
		}
		h.respondServiceError(w, err, "failed to import word set")
		return
	}

	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	h.RespondJSON(w, http.StatusCreated, ImportResponse{
		WordSet:   wordSet,
		TotalRows: result.TotalRows,
		Errors:    errs,
	})
}

// ExtractFromPhoto handles POST /api/v1/wordsets/photo
// @Summary Extract words from a photo
// @Description Recognize words in an image so they can be reviewed and saved as a word set. Requires authentication.
// @Tags wordsets
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param image formData file true "Image"
// @Success 200 {object} PhotoWordsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /wordsets/photo [post]
func (h *WordSetHandler) ExtractFromPhoto(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.userID(w, r); !ok {
		return
	}

	file, header, ok := h.formFile(w, r, "image")
	if !ok {
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.Logger.Error("failed to read image", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to read image")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(image)
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	words, err := h.service.ExtractFromPhoto(r.Context(), image, mimeType)
	if err != nil {
		h.respondServiceError(w, err, "failed to extract words from photo")
		return
	}

	h.RespondJSON(w, http.StatusOK, PhotoWordsResponse{Words: words})
}

func (h *WordSetHandler) formFile(w http.ResponseWriter, r *http.Request, field string) (multipart.File, *multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.Logger.Warn("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return nil, nil, false
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, field+" is required")
		return nil, nil, false
	}
	return file, header, true
}
