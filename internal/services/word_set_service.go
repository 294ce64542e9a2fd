package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ltalk/backend/internal/genai"
	"github.com/ltalk/backend/internal/importer"
	"github.com/ltalk/backend/internal/models"
	"go.uber.org/zap"
)

const (
	maxTitleLength       = 35
	maxDescriptionLength = 200
	maxWordLength        = 100
)

// WordSetRepository is the interface that wraps methods for WordSet table data access
type WordSetRepository interface {
	WordSetReader
	// Create inserts a word set and returns its ID
	//
	// If some error will occur during data storing, the error will be returned together with zero value.
	Create(ctx context.Context, wordSet *models.WordSet) (int, error)
	// AddWords links words to a word set, ignoring links that already exist
	AddWords(ctx context.Context, wordSetID int, wordIDs []int) error
	// ListByUser retrieves word sets owned by the user
	ListByUser(ctx context.Context, userID int) ([]models.WordSetListItem, error)
	// ListPublic retrieves public word sets of all users except "excludeUserID"
	ListPublic(ctx context.Context, excludeUserID int) ([]models.WordSetListItem, error)
	// UpdateVisibility sets the public flag of a word set owned by the user
	//
	// Returns false if no word set with the given ID belongs to the user.
	UpdateVisibility(ctx context.Context, id, userID int, isPublic bool) (bool, error)
	// Delete removes a word set owned by the user
	//
	// Returns false if no word set with the given ID belongs to the user.
	Delete(ctx context.Context, id, userID int) (bool, error)
}

// ImageTextGenerator is the interface that wraps multimodal generation
type ImageTextGenerator interface {
	GenerateTextWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// wordSetService implements WordSetService
type wordSetService struct {
	wordSetRepo WordSetRepository
	wordRepo    WordRepository
	txRunner    TxRunner
	vision      ImageTextGenerator
	limiter     *GenerationLimiter
	language    string
	logger      *zap.Logger
}

// NewWordSetService creates a new word set service
func NewWordSetService(
	wordSetRepo WordSetRepository,
	wordRepo WordRepository,
	txRunner TxRunner,
	vision ImageTextGenerator,
	limiter *GenerationLimiter,
	language string,
	logger *zap.Logger,
) *wordSetService {
	if language == "" {
		language = DefaultTargetLanguage
	}
	return &wordSetService{
		wordSetRepo: wordSetRepo,
		wordRepo:    wordRepo,
		txRunner:    txRunner,
		vision:      vision,
		limiter:     limiter,
		language:    language,
		logger:      logger,
	}
}

// Create validates and stores a new word set
//
// For successful results:
//
// - title must be 1-35 characters long, description at most 200
//
// - at least one word with a non-empty surface form and translation is required
//
// Words are shared between sets by surface form; duplicates inside the request are merged.
func (s *wordSetService) Create(ctx context.Context, userID int, req models.CreateWordSetRequest) (*models.WordSet, error) {
	words, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	wordSet := &models.WordSet{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		IsPublic:    req.IsPublic,
	}

	err = s.txRunner.WithinTx(ctx, func(ctx context.Context) error {
		stored, err := s.wordRepo.UpsertByWord(ctx, words)
		if err != nil {
			return err
		}
		id, err := s.wordSetRepo.Create(ctx, wordSet)
		if err != nil {
			return err
		}
		if err := s.wordSetRepo.AddWords(ctx, id, wordIDs(stored)); err != nil {
			return err
		}
		wordSet.ID = id
		wordSet.Words = stored
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create word set", zap.Error(err))
		return nil, fmt.Errorf("failed to create word set: %w", err)
	}

	return wordSet, nil
}

func (s *wordSetService) validate(req models.CreateWordSetRequest) ([]models.Word, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, fmt.Errorf("%w: title must be at most %d characters", ErrValidation, maxTitleLength)
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Description)) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description must be at most %d characters", ErrValidation, maxDescriptionLength)
	}
	if len(req.Words) == 0 {
		return nil, fmt.Errorf("%w: at least one word is required", ErrValidation)
	}

	seen := make(map[string]struct{}, len(req.Words))
	words := make([]models.Word, 0, len(req.Words))
	for i, word := range req.Words {
		word.ID = 0
		word.Word = strings.TrimSpace(word.Word)
		word.Infinitive = strings.TrimSpace(word.Infinitive)
		word.Translation = strings.TrimSpace(word.Translation)
		if word.Word == "" || word.Translation == "" {
			return nil, fmt.Errorf("%w: word %d must have a word and a translation", ErrValidation, i+1)
		}
		if utf8.RuneCountInString(word.Word) > maxWordLength ||
			utf8.RuneCountInString(word.Infinitive) > maxWordLength ||
			utf8.RuneCountInString(word.Translation) > maxWordLength {
			return nil, fmt.Errorf("%w: word %d is longer than %d characters", ErrValidation, i+1, maxWordLength)
		}
		if word.Infinitive == "" {
			word.Infinitive = word.Word
		}
		if _, ok := seen[word.Word]; ok {
			continue
		}
		seen[word.Word] = struct{}{}
		words = append(words, word)
	}
	return words, nil
}

// Get retrieves a word set with its words
//
// Word sets of other users are only visible when public.
func (s *wordSetService) Get(ctx context.Context, userID, id int) (*models.WordSet, error) {
	wordSet, err := s.getVisible(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	words, err := s.wordRepo.GetByWordSetID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get word set words", zap.Error(err))
		return nil, fmt.Errorf("failed to get word set words: %w", err)
	}
	if words == nil {
		words = []models.Word{}
	}
	wordSet.Words = words

	return wordSet, nil
}

func (s *wordSetService) getVisible(ctx context.Context, userID, id int) (*models.WordSet, error) {
	wordSet, err := s.wordSetRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get word set", zap.Error(err))
		return nil, fmt.Errorf("failed to get word set: %w", err)
	}
	if wordSet == nil || (wordSet.UserID != userID && !wordSet.IsPublic) {
		return nil, ErrWordSetNotFound
	}
	return wordSet, nil
}

// List retrieves the user's own word sets or other users' public word sets
func (s *wordSetService) List(ctx context.Context, userID int, scope models.WordSetScope) ([]models.WordSetListItem, error) {
	var (
		items []models.WordSetListItem
		err   error
	)
	switch scope {
	case models.WordSetScopeOwn, "":
		items, err = s.wordSetRepo.ListByUser(ctx, userID)
	case models.WordSetScopeOthers:
		items, err = s.wordSetRepo.ListPublic(ctx, userID)
	default:
		return nil, fmt.Errorf("%w: invalid scope %q, must be 'own' or 'others'", ErrValidation, scope)
	}
	if err != nil {
		s.logger.Error("failed to list word sets", zap.Error(err))
		return nil, fmt.Errorf("failed to list word sets: %w", err)
	}
	return items, nil
}

// SetVisibility makes a word set owned by the user public or private
func (s *wordSetService) SetVisibility(ctx context.Context, userID, id int, isPublic bool) error {
	ok, err := s.wordSetRepo.UpdateVisibility(ctx, id, userID, isPublic)
	if err != nil {
		s.logger.Error("failed to update word set visibility", zap.Error(err))
		return fmt.Errorf("failed to update word set visibility: %w", err)
	}
	if !ok {
		return ErrWordSetNotFound
	}
	return nil
}

// Delete removes a word set owned by the user
func (s *wordSetService) Delete(ctx context.Context, userID, id int) error {
	ok, err := s.wordSetRepo.Delete(ctx, id, userID)
	if err != nil {
		s.logger.Error("failed to delete word set", zap.Error(err))
		return fmt.Errorf("failed to delete word set: %w", err)
	}
	if !ok {
		return ErrWordSetNotFound
	}
	return nil
}

// Duplicate copies another user's public word set into a private set of the user
//
// The copy shares the original's words.
func (s *wordSetService) Duplicate(ctx context.Context, userID, id int) (*models.WordSet, error) {
	original, err := s.wordSetRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get word set", zap.Error(err))
		return nil, fmt.Errorf("failed to get word set: %w", err)
	}
	if original == nil || !original.IsPublic {
		return nil, ErrWordSetNotFound
	}
	if original.UserID == userID {
		return nil, fmt.Errorf("%w: cannot duplicate your own word set", ErrValidation)
	}

	words, err := s.wordRepo.GetByWordSetID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get word set words", zap.Error(err))
		return nil, fmt.Errorf("failed to get word set words: %w", err)
	}

	duplicate := &models.WordSet{
		UserID:      userID,
		Title:       original.Title,
		Description: original.Description,
		IsPublic:    false,
		Words:       words,
	}
	err = s.txRunner.WithinTx(ctx, func(ctx context.Context) error {
		newID, err := s.wordSetRepo.Create(ctx, duplicate)
		if err != nil {
			return err
		}
		duplicate.ID = newID
		return s.wordSetRepo.AddWords(ctx, newID, wordIDs(words))
	})
	if err != nil {
		s.logger.Error("failed to duplicate word set", zap.Int("word_set_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to duplicate word set: %w", err)
	}

	return duplicate, nil
}

// Import creates a word set from an .xlsx or .csv upload
//
// Rows that cannot be parsed are skipped; the set is created when at least one row is valid.
func (s *wordSetService) Import(ctx context.Context, userID int, title, filename string, r io.Reader) (*models.WordSet, *importer.Result, error) {
	format, err := importer.FormatFromFilename(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	parsed, err := importer.Parse(r, format)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if len(parsed.Words) == 0 {
		return nil, parsed, fmt.Errorf("%w: file contains no valid words", ErrValidation)
	}

	if strings.TrimSpace(title) == "" {
		title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	if runes := []rune(strings.TrimSpace(title)); len(runes) > maxTitleLength {
		title = string(runes[:maxTitleLength])
	}

	wordSet, err := s.Create(ctx, userID, models.CreateWordSetRequest{Title: title, Words: parsed.Words})
	if err != nil {
		return nil, parsed, err
	}
	return wordSet, parsed, nil
}

type photoWord struct {
	Word        string `json:"word"`
	Infinitive  string `json:"infinitive"`
	Translation string `json:"translation"`
}

// ExtractFromPhoto asks the model to list the words visible in an image
//
// Model or parse failures return ErrGenerationFailed.
func (s *wordSetService) ExtractFromPhoto(ctx context.Context, image []byte, mimeType string) ([]models.Word, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image is empty", ErrValidation)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: unsupported content type %q", ErrValidation, mimeType)
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	text, err := s.vision.GenerateTextWithImage(ctx, photoWordsPrompt(s.language), image, mimeType)
	if err != nil {
		s.logger.Error("failed to extract words from photo", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	var items []photoWord
	if err := genai.ExtractArray(text).Decode(&items); err != nil {
		s.logger.Error("failed to parse extracted words", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	words := make([]models.Word, 0, len(items))
	for _, item := range items {
		word := models.Word{
			Word:        strings.TrimSpace(item.Word),
			Infinitive:  strings.TrimSpace(item.Infinitive),
			Translation: strings.TrimSpace(item.Translation),
		}
		if word.Word == "" {
			continue
		}
		if word.Infinitive == "" {
			word.Infinitive = word.Word
		}
		words = append(words, word)
	}
	return words, nil
}

func wordIDs(words []models.Word) []int {
	ids := make([]int, len(words))
	for i, word := range words {
		ids[i] = word.ID
	}
	return ids
}
