package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ltalk/backend/internal/genai"
	"github.com/ltalk/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxWords is the number of words an exercise is built from when not configured
	DefaultMaxWords = 12
	// fillInGapConcurrency bounds parallel gap sentence generation per exercise
	fillInGapConcurrency = 3
	// noWordsQuestion is the single question of an exercise built from no words
	noWordsQuestion = "No words available"
)

// WordRepository is the interface that wraps methods for Word table data access
type WordRepository interface {
	// UpsertByWord gets or creates words by their surface form
	//
	// "words" parameter holds the words to store; the result carries their IDs in the same order.
	// If some error will occur during data storing, the error will be returned together with "nil" value.
	UpsertByWord(ctx context.Context, words []models.Word) ([]models.Word, error)
	// GetByWordSetID retrieves all words of a word set
	//
	// "wordSetID" parameter is used to identify the word set.
	// Please reference UpsertByWord method for more information about error values.
	GetByWordSetID(ctx context.Context, wordSetID int) ([]models.Word, error)
}

// ExerciseRepository is the interface that wraps methods for Exercise table data access
type ExerciseRepository interface {
	// Create inserts an exercise and returns its ID
	Create(ctx context.Context, exercise *models.Exercise) (int, error)
	// GetByID retrieves an exercise with its correct answers
	//
	// If the exercise does not exist, "nil" is returned without error.
	GetByID(ctx context.Context, id int) (*models.Exercise, error)
}

// WordSetReader is the interface that wraps word set lookup
type WordSetReader interface {
	// GetByID retrieves a word set without its words
	//
	// If the word set does not exist, "nil" is returned without error.
	GetByID(ctx context.Context, id int) (*models.WordSet, error)
}

// DueWordsProvider selects the words a user still has to practice
type DueWordsProvider interface {
	DueWords(ctx context.Context, userID int, words []models.Word) ([]models.Word, error)
}

// GapSentenceGenerator produces fill-in-the-gap sentences
type GapSentenceGenerator interface {
	GenerateFillInGap(ctx context.Context, word models.Word) GapSentence
}

// exerciseService implements ExerciseService
type exerciseService struct {
	wordSetRepo  WordSetReader
	wordRepo     WordRepository
	exerciseRepo ExerciseRepository
	mastery      DueWordsProvider
	sentences    GapSentenceGenerator
	model        TextGenerator
	limiter      *GenerationLimiter
	maxWords     int
	language     string
	logger       *zap.Logger
}

// ExerciseServiceConfig holds exercise generation settings
type ExerciseServiceConfig struct {
	MaxWords int
	Language string
}

// NewExerciseService creates a new exercise service
func NewExerciseService(
	wordSetRepo WordSetReader,
	wordRepo WordRepository,
	exerciseRepo ExerciseRepository,
	mastery DueWordsProvider,
	sentences GapSentenceGenerator,
	model TextGenerator,
	limiter *GenerationLimiter,
	cfg ExerciseServiceConfig,
	logger *zap.Logger,
) *exerciseService {
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = DefaultMaxWords
	}
	if cfg.Language == "" {
		cfg.Language = DefaultTargetLanguage
	}
	return &exerciseService{
		wordSetRepo:  wordSetRepo,
		wordRepo:     wordRepo,
		exerciseRepo: exerciseRepo,
		mastery:      mastery,
		sentences:    sentences,
		model:        model,
		limiter:      limiter,
		maxWords:     cfg.MaxWords,
		language:     cfg.Language,
		logger:       logger,
	}
}

// CreateExercise builds and stores a new exercise for a word set
//
// The word set must belong to the user or be public.
// Unknown exercise types return ErrUnsupportedExerciseType, invisible word sets return ErrWordSetNotFound.
func (s *exerciseService) CreateExercise(ctx context.Context, userID, wordSetID int, exerciseType models.ExerciseType) (*models.Exercise, error) {
	if !exerciseType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExerciseType, exerciseType)
	}

	wordSet, err := s.wordSetRepo.GetByID(ctx, wordSetID)
	if err != nil {
		s.logger.Error("failed to get word set", zap.Error(err))
		return nil, fmt.Errorf("failed to get word set: %w", err)
	}
	if wordSet == nil || (wordSet.UserID != userID && !wordSet.IsPublic) {
		return nil, ErrWordSetNotFound
	}

	words, err := s.wordRepo.GetByWordSetID(ctx, wordSetID)
	if err != nil {
		s.logger.Error("failed to get word set words", zap.Error(err))
		return nil, fmt.Errorf("failed to get word set words: %w", err)
	}
	wordSet.Words = words

	questions, answers, err := s.Build(ctx, userID, wordSet, exerciseType, s.maxWords)
	if err != nil {
		return nil, err
	}

	exercise := &models.Exercise{
		UserID:         userID,
		WordSetID:      wordSetID,
		Type:           exerciseType,
		Questions:      questions,
		CorrectAnswers: answers,
	}
	id, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		s.logger.Error("failed to store exercise", zap.Error(err))
		return nil, fmt.Errorf("failed to store exercise: %w", err)
	}
	exercise.ID = id

	s.logger.Info("exercise created",
		zap.Int("exercise_id", id),
		zap.Int("user_id", userID),
		zap.String("type", string(exerciseType)),
		zap.Int("questions", len(questions)),
	)
	return exercise, nil
}

// GetExercise retrieves an exercise of the user
func (s *exerciseService) GetExercise(ctx context.Context, userID, exerciseID int) (*models.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		s.logger.Error("failed to get exercise", zap.Error(err))
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	if exercise == nil || exercise.UserID != userID {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

// Build generates questions and correct answers for the word set
//
// Words the user has not learned yet are preferred; when every word is learned the whole
// set is used. At most "maxWords" words are taken. An empty word list yields a single
// placeholder question. Both returned maps always share the same key set.
func (s *exerciseService) Build(
	ctx context.Context,
	userID int,
	wordSet *models.WordSet,
	exerciseType models.ExerciseType,
	maxWords int,
) (map[string]models.Question, map[string]models.Answer, error) {
	if !exerciseType.IsValid() {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedExerciseType, exerciseType)
	}
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	candidates, err := s.mastery.DueWords(ctx, userID, wordSet.Words)
	if err != nil {
		return nil, nil, err
	}
	if len(candidates) == 0 {
		candidates = wordSet.Words
	}
	if len(candidates) > maxWords {
		candidates = candidates[:maxWords]
	}

	if len(candidates) == 0 {
		key := models.PositionKey(0)
		return map[string]models.Question{key: {Question: noWordsQuestion}},
			map[string]models.Answer{key: models.NewAnswer("")},
			nil
	}

	switch exerciseType {
	case models.ExerciseTypeFlashcard:
		questions, answers := s.buildFlashcards(candidates)
		return questions, answers, nil
	case models.ExerciseTypeMultipleChoice:
		return s.buildMultipleChoice(ctx, candidates)
	default:
		questions, answers := s.buildFillInGap(ctx, candidates)
		return questions, answers, nil
	}
}

func (s *exerciseService) buildFlashcards(words []models.Word) (map[string]models.Question, map[string]models.Answer) {
	questions := make(map[string]models.Question, len(words))
	answers := make(map[string]models.Answer, len(words))
	for i, word := range words {
		key := models.PositionKey(i)
		questions[key] = models.Question{Front: word.Word, Back: word.Translation}
		answers[key] = models.NewAnswer(word.Translation)
	}
	return questions, answers
}

const multipleChoiceOptions = 4

type multipleChoiceItem struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Correct  string   `json:"correct"`
}

// buildMultipleChoice asks the model for all questions in one call
//
// There is no fallback: output without a single usable question is ErrGenerationFailed.
func (s *exerciseService) buildMultipleChoice(ctx context.Context, words []models.Word) (map[string]models.Question, map[string]models.Answer, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	text, err := s.model.GenerateText(ctx, multipleChoicePrompt(s.language, words))
	if err != nil {
		s.logger.Error("failed to generate multiple choice questions", zap.Error(err))
		return nil, nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	var items []multipleChoiceItem
	if err := genai.ExtractArray(text).Decode(&items); err != nil {
		s.logger.Error("failed to parse multiple choice questions", zap.Error(err), zap.String("output", text))
		return nil, nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	questions := make(map[string]models.Question, len(items))
	answers := make(map[string]models.Answer, len(items))
	for _, item := range items {
		if len(questions) == len(words) {
			break
		}
		if !isUsableChoice(item) {
			s.logger.Warn("skipping malformed multiple choice question", zap.String("question", item.Question))
			continue
		}
		key := models.PositionKey(len(questions))
		questions[key] = models.Question{Question: strings.TrimSpace(item.Question), Choices: item.Choices}
		answers[key] = models.NewAnswer(strings.TrimSpace(item.Correct))
	}
	if len(questions) == 0 {
		return nil, nil, fmt.Errorf("%w: no usable multiple choice questions", ErrGenerationFailed)
	}

	return questions, answers, nil
}

// isUsableChoice requires a question, exactly four choices and a correct answer among them
func isUsableChoice(item multipleChoiceItem) bool {
	if strings.TrimSpace(item.Question) == "" || len(item.Choices) != multipleChoiceOptions {
		return false
	}
	for _, choice := range item.Choices {
		if equalNormalized(choice, item.Correct) && strings.TrimSpace(choice) != "" {
			return true
		}
	}
	return false
}

// buildFillInGap generates one gap sentence per word with bounded concurrency
func (s *exerciseService) buildFillInGap(ctx context.Context, words []models.Word) (map[string]models.Question, map[string]models.Answer) {
	sentences := make([]GapSentence, len(words))

	var g errgroup.Group
	g.SetLimit(fillInGapConcurrency)
	for i, word := range words {
		g.Go(func() error {
			sentences[i] = s.sentences.GenerateFillInGap(ctx, word)
			return nil
		})
	}
	// GenerateFillInGap never fails
	_ = g.Wait()

	questions := make(map[string]models.Question, len(words))
	answers := make(map[string]models.Answer, len(words))
	for i, word := range words {
		key := models.PositionKey(i)
		questions[key] = models.Question{Sentence: sentences[i].Sentence, Hint: word.Word}
		answers[key] = models.NewAnswer(sentences[i].CorrectForm)
	}
	return questions, answers
}
