package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tkoehler/timekeep/internal/repository"
)

// CommitRepository implements repository.CommitRepository for SQLite.
// The ledger is append-only; rows record existence, nothing else.
type CommitRepository struct {
	db *DB
}

// NewCommitRepository creates a new CommitRepository
func NewCommitRepository(db *DB) *CommitRepository {
	return &CommitRepository{db: db}
}

// Insert records an issued commit id.
func (r *CommitRepository) Insert(ctx context.Context, userID, commitID string) error {
	query := `INSERT INTO commits (commit_id, user_id) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, commitID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to insert commit: %w", err)
	}
	return nil
}

// Exists reports whether a commit id has been issued for the user.
func (r *CommitRepository) Exists(ctx context.Context, userID, commitID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM commits WHERE commit_id = ? AND user_id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, commitID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check commit: %w", err)
	}
	return exists, nil
}

// Latest returns the most recently issued commit id for the user.
func (r *CommitRepository) Latest(ctx context.Context, userID string) (string, error) {
	query := `SELECT commit_id FROM commits WHERE user_id = ? ORDER BY rowid DESC LIMIT 1`

	var commitID string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&commitID)
	if err == sql.ErrNoRows {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get latest commit: %w", err)
	}
	return commitID, nil
}
