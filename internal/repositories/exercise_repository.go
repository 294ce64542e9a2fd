package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ltalk/backend/internal/models"
)

// exerciseRepository implements ExerciseRepository
type exerciseRepository struct {
	db *sql.DB
}

// NewExerciseRepository creates a new exercise repository
func NewExerciseRepository(db *sql.DB) *exerciseRepository {
	return &exerciseRepository{
		db: db,
	}
}

// Create inserts an exercise with its questions and correct answers and returns its ID
func (r *exerciseRepository) Create(ctx context.Context, exercise *models.Exercise) (int, error) {
	questions, err := json.Marshal(exercise.Questions)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal questions: %w", err)
	}
	answers, err := json.Marshal(exercise.CorrectAnswers)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal correct answers: %w", err)
	}

	query := `
		INSERT INTO exercises (user_id, word_set_id, type, questions, correct_answers)
		VALUES (?, ?, ?, ?, ?)
	`

	res, err := executor(ctx, r.db).ExecContext(ctx, query,
		exercise.UserID,
		exercise.WordSetID,
		string(exercise.Type),
		questions,
		answers,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert exercise: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get exercise id: %w", err)
	}

	return int(id), nil
}

// GetByID retrieves an exercise with its questions and correct answers
//
// If the exercise does not exist, nil is returned without error.
func (r *exerciseRepository) GetByID(ctx context.Context, id int) (*models.Exercise, error) {
	query := `
		SELECT id, user_id, word_set_id, type, questions, correct_answers, created_at
		FROM exercises
		WHERE id = ?
	`

	var (
		exercise     models.Exercise
		exerciseType string
		questions    []byte
		answers      []byte
	)
	err := executor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&exercise.ID,
		&exercise.UserID,
		&exercise.WordSetID,
		&exerciseType,
		&questions,
		&answers,
		&exercise.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exercise by id: %w", err)
	}

	exercise.Type = models.ExerciseType(exerciseType)
	if err := json.Unmarshal(questions, &exercise.Questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
	}
	if err := json.Unmarshal(answers, &exercise.CorrectAnswers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal correct answers: %w", err)
	}

	return &exercise, nil
}
