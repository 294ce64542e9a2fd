package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ltalk/backend/internal/models"
)

// masteryRepository implements MasteryRepository
type masteryRepository struct {
	db *sql.DB
}

// NewMasteryRepository creates a new mastery repository
func NewMasteryRepository(db *sql.DB) *masteryRepository {
	return &masteryRepository{
		db: db,
	}
}

// GetOrCreateForUpdate returns the user's record for a word, creating an empty one if needed
//
// The row is locked until the surrounding transaction ends.
func (r *masteryRepository) GetOrCreateForUpdate(ctx context.Context, userID, wordID int) (*models.MasteryRecord, error) {
	exec := executor(ctx, r.db)

	insertQuery := `
		INSERT IGNORE INTO word_progress (user_id, word_id, correct_attempts, incorrect_attempts, learned)
		VALUES (?, ?, 0, 0, FALSE)
	`
	if _, err := exec.ExecContext(ctx, insertQuery, userID, wordID); err != nil {
		return nil, fmt.Errorf("failed to create word progress: %w", err)
	}

	selectQuery := `
		SELECT id, user_id, word_id, correct_attempts, incorrect_attempts, learned
		FROM word_progress
		WHERE user_id = ? AND word_id = ?
		FOR UPDATE
	`
	var record models.MasteryRecord
	err := exec.QueryRowContext(ctx, selectQuery, userID, wordID).Scan(
		&record.ID,
		&record.UserID,
		&record.WordID,
		&record.CorrectAttempts,
		&record.IncorrectAttempts,
		&record.Learned,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get word progress: %w", err)
	}

	return &record, nil
}

// Update stores the counters and learned flag of a record
func (r *masteryRepository) Update(ctx context.Context, record *models.MasteryRecord) error {
	query := `
		UPDATE word_progress
		SET correct_attempts = ?, incorrect_attempts = ?, learned = ?
		WHERE id = ?
	`

	if _, err := executor(ctx, r.db).ExecContext(ctx, query,
		record.CorrectAttempts,
		record.IncorrectAttempts,
		record.Learned,
		record.ID,
	); err != nil {
		return fmt.Errorf("failed to update word progress: %w", err)
	}

	return nil
}

// GetByUserAndWord retrieves the user's record for a word
//
// If no record exists, nil is returned without error.
func (r *masteryRepository) GetByUserAndWord(ctx context.Context, userID, wordID int) (*models.MasteryRecord, error) {
	query := `
		SELECT id, user_id, word_id, correct_attempts, incorrect_attempts, learned
		FROM word_progress
		WHERE user_id = ? AND word_id = ?
	`

	var record models.MasteryRecord
	err := executor(ctx, r.db).QueryRowContext(ctx, query, userID, wordID).Scan(
		&record.ID,
		&record.UserID,
		&record.WordID,
		&record.CorrectAttempts,
		&record.IncorrectAttempts,
		&record.Learned,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word progress: %w", err)
	}

	return &record, nil
}

// GetByUserAndWordIDs retrieves the user's records for the given words keyed by word ID
//
// Words without a record are absent from the map.
func (r *masteryRepository) GetByUserAndWordIDs(ctx context.Context, userID int, wordIDs []int) (map[int]*models.MasteryRecord, error) {
	records := make(map[int]*models.MasteryRecord, len(wordIDs))
	if len(wordIDs) == 0 {
		return records, nil
	}

	placeholders := make([]string, len(wordIDs))
	args := make([]any, 0, len(wordIDs)+1)
	args = append(args, userID)
	for i, id := range wordIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, word_id, correct_attempts, incorrect_attempts, learned
		FROM word_progress
		WHERE user_id = ? AND word_id IN (%s)
	`, strings.Join(placeholders, ","))

	rows, err := executor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query word progress: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record models.MasteryRecord
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.WordID,
			&record.CorrectAttempts,
			&record.IncorrectAttempts,
			&record.Learned,
		); err != nil {
			return nil, fmt.Errorf("failed to scan word progress: %w", err)
		}
		records[record.WordID] = &record
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// ListByUser retrieves all of the user's records joined with their words
func (r *masteryRepository) ListByUser(ctx context.Context, userID int) ([]models.MasteryResponse, error) {
	query := `
		SELECT wp.word_id, w.word, w.translation, wp.correct_attempts, wp.incorrect_attempts, wp.learned
		FROM word_progress wp
		INNER JOIN words w ON w.id = wp.word_id
		WHERE wp.user_id = ?
		ORDER BY w.word ASC
	`

	rows, err := executor(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query word progress: %w", err)
	}
	defer rows.Close()

	result := []models.MasteryResponse{}
	for rows.Next() {
		var item models.MasteryResponse
		if err := rows.Scan(
			&item.WordID,
			&item.Word,
			&item.Translation,
			&item.CorrectAttempts,
			&item.IncorrectAttempts,
			&item.Learned,
		); err != nil {
			return nil, fmt.Errorf("failed to scan word progress: %w", err)
		}
		record := models.MasteryRecord{CorrectAttempts: item.CorrectAttempts, IncorrectAttempts: item.IncorrectAttempts}
		item.Accuracy = record.Accuracy()
		result = append(result, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}
