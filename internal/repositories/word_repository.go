package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ltalk/backend/internal/models"
)

// wordRepository implements WordRepository
type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *sql.DB) *wordRepository {
	return &wordRepository{
		db: db,
	}
}

// UpsertByWord gets or creates words by their surface form
//
// Existing words keep their stored lemma and translation; the returned slice carries their IDs
// in the same order as the input.
func (r *wordRepository) UpsertByWord(ctx context.Context, words []models.Word) ([]models.Word, error) {
	query := `
		INSERT INTO words (word, infinitive, translation)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)
	`

	exec := executor(ctx, r.db)
	result := make([]models.Word, 0, len(words))
	for _, word := range words {
		res, err := exec.ExecContext(ctx, query, word.Word, word.Infinitive, word.Translation)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert word %q: %w", word.Word, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get word id: %w", err)
		}
		word.ID = int(id)
		result = append(result, word)
	}

	return result, nil
}

// GetByWordSetID retrieves all words of a word set ordered by ID
func (r *wordRepository) GetByWordSetID(ctx context.Context, wordSetID int) ([]models.Word, error) {
	query := `
		SELECT w.id, w.word, w.infinitive, w.translation
		FROM words w
		INNER JOIN word_set_words wsw ON wsw.word_id = w.id
		WHERE wsw.word_set_id = ?
		ORDER BY w.id ASC
	`

	rows, err := executor(ctx, r.db).QueryContext(ctx, query, wordSetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var word models.Word
		if err := rows.Scan(&word.ID, &word.Word, &word.Infinitive, &word.Translation); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return words, nil
}
