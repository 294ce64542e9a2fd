package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ltalk/backend/internal/models"
	"go.uber.org/zap"
)

const (
	defaultExplanationTimeout = 15 * time.Second
	defaultHistoryLimit       = 20
	maxHistoryLimit           = 100
)

// SubmissionRepository is the interface that wraps methods for ExerciseSubmission table data access
type SubmissionRepository interface {
	// Create inserts a submission record and returns its ID
	//
	// If some error will occur during data storing, the error will be returned together with zero value.
	Create(ctx context.Context, record *models.SubmissionRecord) (int, error)
	// ListByUser retrieves the user's latest submissions
	//
	// "userID" parameter is used to identify the user.
	// "limit" parameter is used to specify the number of records to return.
	ListByUser(ctx context.Context, userID, limit int) ([]models.SubmissionRecord, error)
}

// AttemptRecorder updates mastery records
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, userID, wordID int, wasCorrect bool) (*models.MasteryRecord, error)
}

// AnswerChecker decides whether a user answer is correct
type AnswerChecker interface {
	Check(userAnswer string, correct models.Answer, exerciseType models.ExerciseType) (bool, error)
}

// submissionService implements SubmissionService
type submissionService struct {
	exerciseRepo       ExerciseRepository
	wordRepo           WordRepository
	submissionRepo     SubmissionRepository
	mastery            AttemptRecorder
	checker            AnswerChecker
	txRunner           TxRunner
	model              TextGenerator
	limiter            *GenerationLimiter
	language           string
	explanationTimeout time.Duration
	logger             *zap.Logger
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	exerciseRepo ExerciseRepository,
	wordRepo WordRepository,
	submissionRepo SubmissionRepository,
	mastery AttemptRecorder,
	checker AnswerChecker,
	txRunner TxRunner,
	model TextGenerator,
	limiter *GenerationLimiter,
	language string,
	logger *zap.Logger,
) *submissionService {
	if language == "" {
		language = DefaultTargetLanguage
	}
	return &submissionService{
		exerciseRepo:       exerciseRepo,
		wordRepo:           wordRepo,
		submissionRepo:     submissionRepo,
		mastery:            mastery,
		checker:            checker,
		txRunner:           txRunner,
		model:              model,
		limiter:            limiter,
		language:           language,
		explanationTimeout: defaultExplanationTimeout,
		logger:             logger,
	}
}

// Submit grades the user's answers to an exercise
//
// Questions without an answer are counted as incorrect and skipped. Only when every
// question is answered are mastery records updated and a submission record stored,
// both inside one transaction; partial submissions only return feedback.
//
// Empty answers return an error wrapping ErrValidation.
func (s *submissionService) Submit(ctx context.Context, userID, exerciseID int, answers map[string]string) (*models.SubmissionResult, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("%w: answers cannot be empty", ErrValidation)
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		s.logger.Error("failed to get exercise", zap.Error(err))
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	if exercise == nil || exercise.UserID != userID {
		return nil, ErrExerciseNotFound
	}

	keys := exercise.QuestionKeys()
	result := &models.SubmissionResult{
		ExerciseID: exerciseID,
		Results:    make(map[string]models.QuestionResult),
		Feedback:   make(map[string]string),
		Total:      len(keys),
	}
	outcomes := make(map[string]bool, len(keys))

	for _, key := range keys {
		userAnswer, ok := answers[key]
		if !ok {
			continue
		}
		correct := exercise.CorrectAnswers[key]

		isCorrect, err := s.checker.Check(userAnswer, correct, exercise.Type)
		if err != nil {
			s.logger.Error("failed to grade stored exercise",
				zap.Int("exercise_id", exercise.ID),
				zap.String("type", string(exercise.Type)),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: exercise %d: %v", ErrInvalidExercise, exercise.ID, err)
		}

		qr := models.QuestionResult{
			UserAnswer:    userAnswer,
			CorrectAnswer: correct,
			IsCorrect:     isCorrect,
		}
		if isCorrect {
			result.CorrectCount++
		} else {
			qr.Feedback = s.feedback(ctx, exercise, key, userAnswer, correct)
			result.Feedback[key] = qr.Feedback
		}
		result.Results[key] = qr
		outcomes[key] = isCorrect
		result.Processed++
	}

	if result.Processed == 0 {
		return nil, fmt.Errorf("%w: no answers match the exercise questions", ErrValidation)
	}

	result.Grade = fmt.Sprintf("%d/%d", result.CorrectCount, result.Processed)
	result.IsCorrect = result.CorrectCount == result.Processed

	if result.Processed < result.Total {
		return result, nil
	}

	if err := s.save(ctx, userID, exercise, answers, outcomes, result); err != nil {
		return nil, err
	}
	return result, nil
}

// save updates mastery for every resolvable word and stores one submission record
func (s *submissionService) save(
	ctx context.Context,
	userID int,
	exercise *models.Exercise,
	answers map[string]string,
	outcomes map[string]bool,
	result *models.SubmissionResult,
) error {
	words, err := s.wordRepo.GetByWordSetID(ctx, exercise.WordSetID)
	if err != nil {
		s.logger.Error("failed to get word set words", zap.Error(err))
		return fmt.Errorf("failed to get word set words: %w", err)
	}

	stored := make(map[string]string, len(outcomes))
	for key := range outcomes {
		stored[key] = answers[key]
	}

	err = s.txRunner.WithinTx(ctx, func(ctx context.Context) error {
		for _, key := range models.SortedKeys(outcomes) {
			word, ok := resolveWord(words, exercise.Type, exercise.Questions[key], exercise.CorrectAnswers[key])
			if !ok {
				s.logger.Warn("could not resolve word for question",
					zap.Int("exercise_id", exercise.ID),
					zap.String("key", key),
				)
				continue
			}
			if _, err := s.mastery.RecordAttempt(ctx, userID, word.ID, outcomes[key]); err != nil {
				return err
			}
		}

		id, err := s.submissionRepo.Create(ctx, &models.SubmissionRecord{
			UserID:     userID,
			ExerciseID: exercise.ID,
			Answers:    stored,
			IsCorrect:  result.IsCorrect,
			Grade:      result.Grade,
			Feedback:   joinFeedback(result.Feedback),
		})
		if err != nil {
			return err
		}
		result.SubmissionID = id
		return nil
	})
	if err != nil {
		s.logger.Error("failed to save submission", zap.Int("exercise_id", exercise.ID), zap.Error(err))
		return fmt.Errorf("failed to save submission: %w", err)
	}

	result.Saved = true
	return nil
}

// feedback explains an incorrect answer
//
// fill_in_gap answers get a model explanation when the generation budget allows it;
// everything else, and every model failure, gets the templated correct answer message.
func (s *submissionService) feedback(ctx context.Context, exercise *models.Exercise, key, userAnswer string, correct models.Answer) string {
	fallback := correctAnswerFeedback(correct.First())
	if exercise.Type != models.ExerciseTypeFillInGap {
		return fallback
	}
	useFallback, err := s.limiter.Reserve(ctx, true)
	if err != nil || useFallback {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, s.explanationTimeout)
	defer cancel()

	prompt := explanationPrompt(s.language, exercise.Questions[key].Sentence, correct.First(), userAnswer)
	explanation, err := s.model.GenerateText(ctx, prompt)
	if err != nil || strings.TrimSpace(explanation) == "" {
		s.logger.Warn("failed to get explanation", zap.String("key", key), zap.Error(err))
		return fallback
	}
	return strings.TrimSpace(explanation)
}

// resolveWord finds the word a question was generated from
//
// flashcard matches the front by surface form, multiple_choice matches the correct answer
// by translation or the surface form inside the question, fill_in_gap matches the hint
// or the correct form by surface form or lemma.
func resolveWord(words []models.Word, exerciseType models.ExerciseType, question models.Question, correct models.Answer) (models.Word, bool) {
	switch exerciseType {
	case models.ExerciseTypeFlashcard:
		return findWord(words, func(w models.Word) bool { return equalNormalized(w.Word, question.Front) })
	case models.ExerciseTypeMultipleChoice:
		if word, ok := findWord(words, func(w models.Word) bool { return equalNormalized(w.Translation, correct.First()) }); ok {
			return word, true
		}
		text := strings.ToLower(question.Question)
		return findWord(words, func(w models.Word) bool {
			surface := strings.ToLower(strings.TrimSpace(w.Word))
			return surface != "" && strings.Contains(text, surface)
		})
	case models.ExerciseTypeFillInGap:
		for _, candidate := range []string{question.Hint, correct.First()} {
			if strings.TrimSpace(candidate) == "" {
				continue
			}
			if word, ok := findWord(words, func(w models.Word) bool {
				return equalNormalized(w.Word, candidate) || equalNormalized(w.Infinitive, candidate)
			}); ok {
				return word, true
			}
		}
	}
	return models.Word{}, false
}

func findWord(words []models.Word, match func(models.Word) bool) (models.Word, bool) {
	for _, word := range words {
		if match(word) {
			return word, true
		}
	}
	return models.Word{}, false
}

func joinFeedback(feedback map[string]string) string {
	if len(feedback) == 0 {
		return ""
	}
	lines := make([]string, 0, len(feedback))
	for _, key := range models.SortedKeys(feedback) {
		lines = append(lines, fmt.Sprintf("%s: %s", key, feedback[key]))
	}
	return strings.Join(lines, "\n")
}

// History retrieves the user's latest submissions
//
// "limit" outside 1..100 falls back to 20.
func (s *submissionService) History(ctx context.Context, userID, limit int) ([]models.SubmissionRecord, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	records, err := s.submissionRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Error("failed to list submissions", zap.Error(err))
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return records, nil
}
