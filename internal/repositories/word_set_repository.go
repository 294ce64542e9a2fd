package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ltalk/backend/internal/models"
)

// wordSetRepository implements WordSetRepository
type wordSetRepository struct {
	db *sql.DB
}

// NewWordSetRepository creates a new word set repository
func NewWordSetRepository(db *sql.DB) *wordSetRepository {
	return &wordSetRepository{
		db: db,
	}
}

// Create inserts a word set and returns its ID
func (r *wordSetRepository) Create(ctx context.Context, wordSet *models.WordSet) (int, error) {
	query := `
		INSERT INTO word_sets (user_id, title, description, is_public)
		VALUES (?, ?, ?, ?)
	`

	res, err := executor(ctx, r.db).ExecContext(ctx, query, wordSet.UserID, wordSet.Title, wordSet.Description, wordSet.IsPublic)
	if err != nil {
		return 0, fmt.Errorf("failed to insert word set: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get word set id: %w", err)
	}

	return int(id), nil
}

// AddWords links words to a word set, ignoring links that already exist
func (r *wordSetRepository) AddWords(ctx context.Context, wordSetID int, wordIDs []int) error {
	if len(wordIDs) == 0 {
		return nil
	}

	placeholders := make([]string, len(wordIDs))
	args := make([]any, 0, len(wordIDs)*2)
	for i, wordID := range wordIDs {
		placeholders[i] = "(?, ?)"
		args = append(args, wordSetID, wordID)
	}

	query := fmt.Sprintf(`
		INSERT IGNORE INTO word_set_words (word_set_id, word_id)
		VALUES %s
	`, strings.Join(placeholders, ","))

	if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to add words to word set: %w", err)
	}

	return nil
}

// GetByID retrieves a word set without its words
//
// If the word set does not exist, nil is returned without error.
func (r *wordSetRepository) GetByID(ctx context.Context, id int) (*models.WordSet, error) {
	query := `
		SELECT id, user_id, title, description, is_public, created_at
		FROM word_sets
		WHERE id = ?
	`

	var wordSet models.WordSet
	err := executor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&wordSet.ID,
		&wordSet.UserID,
		&wordSet.Title,
		&wordSet.Description,
		&wordSet.IsPublic,
		&wordSet.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word set by id: %w", err)
	}

	return &wordSet, nil
}

// ListByUser retrieves word sets owned by the user, newest first
func (r *wordSetRepository) ListByUser(ctx context.Context, userID int) ([]models.WordSetListItem, error) {
	query := `
		SELECT ws.id, ws.user_id, ws.title, ws.description, ws.is_public, ws.created_at, COUNT(wsw.word_id)
		FROM word_sets ws
		LEFT JOIN word_set_words wsw ON wsw.word_set_id = ws.id
		WHERE ws.user_id = ?
		GROUP BY ws.id
		ORDER BY ws.created_at DESC, ws.id DESC
	`
	return r.list(ctx, query, userID)
}

// ListPublic retrieves public word sets of other users, newest first
func (r *wordSetRepository) ListPublic(ctx context.Context, excludeUserID int) ([]models.WordSetListItem, error) {
	query := `
		SELECT ws.id, ws.user_id, ws.title, ws.description, ws.is_public, ws.created_at, COUNT(wsw.word_id)
		FROM word_sets ws
		LEFT JOIN word_set_words wsw ON wsw.word_set_id = ws.id
		WHERE ws.is_public = TRUE AND ws.user_id <> ?
		GROUP BY ws.id
		ORDER BY ws.created_at DESC, ws.id DESC
	`
	return r.list(ctx, query, excludeUserID)
}

func (r *wordSetRepository) list(ctx context.Context, query string, args ...any) ([]models.WordSetListItem, error) {
	rows, err := executor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query word sets: %w", err)
	}
	defer rows.Close()

	items := []models.WordSetListItem{}
	for rows.Next() {
		var item models.WordSetListItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Title,
			&item.Description,
			&item.IsPublic,
			&item.CreatedAt,
			&item.WordCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan word set: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// UpdateVisibility sets the public flag of a word set owned by the user
//
// Returns false if no word set with the given ID belongs to the user.
func (r *wordSetRepository) UpdateVisibility(ctx context.Context, id, userID int, isPublic bool) (bool, error) {
	query := `UPDATE word_sets SET is_public = ? WHERE id = ? AND user_id = ?`

	res, err := executor(ctx, r.db).ExecContext(ctx, query, isPublic, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to update word set visibility: %w", err)
	}
	return rowsAffected(res)
}

// Delete removes a word set owned by the user together with its word links
//
// Returns false if no word set with the given ID belongs to the user.
func (r *wordSetRepository) Delete(ctx context.Context, id, userID int) (bool, error) {
	query := `DELETE FROM word_sets WHERE id = ? AND user_id = ?`

	res, err := executor(ctx, r.db).ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete word set: %w", err)
	}
	return rowsAffected(res)
}

func rowsAffected(res sql.Result) (bool, error) {
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}
