package services

import (
	"context"
	"fmt"

	"github.com/ltalk/backend/internal/models"
	"go.uber.org/zap"
)

// MasteryRepository is the interface that wraps methods for WordProgress table data access
type MasteryRepository interface {
	// GetOrCreateForUpdate returns the user's record for a word, creating an empty one if needed
	//
	// "userID" parameter is used to identify the user.
	// "wordID" parameter is used to identify the word.
	// The row stays locked until the transaction carried by "ctx" ends.
	// If some error will occur during data retrieve, the error will be returned together with "nil" value.
	GetOrCreateForUpdate(ctx context.Context, userID, wordID int) (*models.MasteryRecord, error)
	// Update stores the counters and learned flag of a record
	//
	// "record" parameter must carry the ID returned by GetOrCreateForUpdate.
	Update(ctx context.Context, record *models.MasteryRecord) error
	// GetByUserAndWord retrieves the user's record for a word
	//
	// If no record exists, "nil" is returned without error.
	// Please reference GetOrCreateForUpdate method for more information about parameters and error values.
	GetByUserAndWord(ctx context.Context, userID, wordID int) (*models.MasteryRecord, error)
	// GetByUserAndWordIDs retrieves the user's records for the given words keyed by word ID
	//
	// "wordIDs" parameter is used to filter records. Words without a record are absent from the map.
	GetByUserAndWordIDs(ctx context.Context, userID int, wordIDs []int) (map[int]*models.MasteryRecord, error)
	// ListByUser retrieves all of the user's records joined with their words
	ListByUser(ctx context.Context, userID int) ([]models.MasteryResponse, error)
}

// TxRunner runs a function inside a database transaction carried by the context
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// masteryService implements MasteryService
type masteryService struct {
	repo     MasteryRepository
	txRunner TxRunner
	logger   *zap.Logger
}

// NewMasteryService creates a new mastery service
func NewMasteryService(repo MasteryRepository, txRunner TxRunner, logger *zap.Logger) *masteryService {
	return &masteryService{
		repo:     repo,
		txRunner: txRunner,
		logger:   logger,
	}
}

// RecordAttempt increments one counter of the user's record for a word and recomputes its learned flag
//
// The record is created on the first attempt. When "ctx" already carries a transaction,
// the update joins it; otherwise a new transaction is used.
func (s *masteryService) RecordAttempt(ctx context.Context, userID, wordID int, wasCorrect bool) (*models.MasteryRecord, error) {
	var record *models.MasteryRecord
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		record, err = s.repo.GetOrCreateForUpdate(ctx, userID, wordID)
		if err != nil {
			return err
		}

		record.Apply(wasCorrect)

		return s.repo.Update(ctx, record)
	})
	if err != nil {
		s.logger.Error("failed to record attempt",
			zap.Int("user_id", userID),
			zap.Int("word_id", wordID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	return record, nil
}

// IsDue reports whether the word should still be practiced by the user
func (s *masteryService) IsDue(ctx context.Context, userID, wordID int) (bool, error) {
	record, err := s.repo.GetByUserAndWord(ctx, userID, wordID)
	if err != nil {
		s.logger.Error("failed to get word progress", zap.Error(err))
		return false, fmt.Errorf("failed to get word progress: %w", err)
	}
	return models.IsDue(record), nil
}

// DueWords filters words down to those the user has not learned yet, keeping their order
func (s *masteryService) DueWords(ctx context.Context, userID int, words []models.Word) ([]models.Word, error) {
	if len(words) == 0 {
		return []models.Word{}, nil
	}

	wordIDs := make([]int, len(words))
	for i, word := range words {
		wordIDs[i] = word.ID
	}

	records, err := s.repo.GetByUserAndWordIDs(ctx, userID, wordIDs)
	if err != nil {
		s.logger.Error("failed to get word progress", zap.Error(err))
		return nil, fmt.Errorf("failed to get word progress: %w", err)
	}

	due := make([]models.Word, 0, len(words))
	for _, word := range words {
		if models.IsDue(records[word.ID]) {
			due = append(due, word)
		}
	}
	return due, nil
}

// ListProgress retrieves all of the user's mastery records
func (s *masteryService) ListProgress(ctx context.Context, userID int) ([]models.MasteryResponse, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list word progress", zap.Error(err))
		return nil, fmt.Errorf("failed to list word progress: %w", err)
	}
	return items, nil
}
