package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ltalk/backend/internal/models"
)

// sentenceTemplateRepository implements SentenceTemplateRepository
type sentenceTemplateRepository struct {
	db *sql.DB
}

// NewSentenceTemplateRepository creates a new sentence template repository
func NewSentenceTemplateRepository(db *sql.DB) *sentenceTemplateRepository {
	return &sentenceTemplateRepository{
		db: db,
	}
}

// GetByWordID retrieves the cached gap sentence of a word
//
// If no template exists, nil is returned without error.
func (r *sentenceTemplateRepository) GetByWordID(ctx context.Context, wordID int) (*models.SentenceTemplate, error) {
	query := `
		SELECT word_id, sentence, correct_form, updated_at
		FROM sentence_templates
		WHERE word_id = ?
	`

	var tpl models.SentenceTemplate
	err := executor(ctx, r.db).QueryRowContext(ctx, query, wordID).Scan(
		&tpl.WordID,
		&tpl.Sentence,
		&tpl.CorrectForm,
		&tpl.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sentence template: %w", err)
	}

	return &tpl, nil
}

// Upsert stores the template of a word, replacing the previous one
func (r *sentenceTemplateRepository) Upsert(ctx context.Context, tpl *models.SentenceTemplate) error {
	query := `
		INSERT INTO sentence_templates (word_id, sentence, correct_form)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			sentence = VALUES(sentence),
			correct_form = VALUES(correct_form),
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := executor(ctx, r.db).ExecContext(ctx, query, tpl.WordID, tpl.Sentence, tpl.CorrectForm); err != nil {
		return fmt.Errorf("failed to upsert sentence template: %w", err)
	}

	return nil
}
