package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type txKey struct{}

// dbExecutor is satisfied by both *sql.DB and *sql.Tx
type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// executor returns the transaction carried by ctx, or db when there is none
func executor(ctx context.Context, db *sql.DB) dbExecutor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// txRunner implements TxRunner
type txRunner struct {
	db *sql.DB
}

// NewTxRunner creates a new transaction runner
func NewTxRunner(db *sql.DB) *txRunner {
	return &txRunner{
		db: db,
	}
}

// WithinTx runs fn inside a database transaction
//
// Repositories called with the context passed to fn use the transaction.
// The transaction is committed when fn returns nil and rolled back otherwise.
// Nested calls reuse the outer transaction.
func (r *txRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
