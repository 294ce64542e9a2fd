package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ltalk/backend/internal/models"
)

// submissionRepository implements SubmissionRepository
type submissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *sql.DB) *submissionRepository {
	return &submissionRepository{
		db: db,
	}
}

// Create inserts a submission record and returns its ID
func (r *submissionRepository) Create(ctx context.Context, record *models.SubmissionRecord) (int, error) {
	answers, err := json.Marshal(record.Answers)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal answers: %w", err)
	}

	query := `
		INSERT INTO exercise_submissions (user_id, exercise_id, answers, is_correct, grade, feedback)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	res, err := executor(ctx, r.db).ExecContext(ctx, query,
		record.UserID,
		record.ExerciseID,
		answers,
		record.IsCorrect,
		record.Grade,
		record.Feedback,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert submission: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get submission id: %w", err)
	}

	return int(id), nil
}

// ListByUser retrieves the user's latest submissions, newest first
func (r *submissionRepository) ListByUser(ctx context.Context, userID, limit int) ([]models.SubmissionRecord, error) {
	query := `
		SELECT id, user_id, exercise_id, answers, is_correct, grade, feedback, created_at
		FROM exercise_submissions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := executor(ctx, r.db).QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	records := []models.SubmissionRecord{}
	for rows.Next() {
		var (
			record  models.SubmissionRecord
			answers []byte
		)
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.ExerciseID,
			&answers,
			&record.IsCorrect,
			&record.Grade,
			&record.Feedback,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		if err := json.Unmarshal(answers, &record.Answers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}
