package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"linkup/internal/model"
)

type searchHistoryRepository struct {
	db *sqlx.DB
}

func NewSearchHistoryRepository(db *sqlx.DB) SearchHistoryRepository {
	return &searchHistoryRepository{db: db}
}

// Record inserts the (username, query) pair if absent. The unique index
// on (username, search_query) plus ON CONFLICT DO NOTHING makes this a
// single atomic statement, so two identical concurrent searches cannot
// produce duplicate history rows.
func (r *searchHistoryRepository) Record(ctx context.Context, username, query string) error {
	stmt := `
		INSERT INTO search_history (username, search_query)
		VALUES ($1, $2)
		ON CONFLICT (username, search_query) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, stmt, username, query); err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

// Recent returns the user's most recent queries, newest first.
func (r *searchHistoryRepository) Recent(ctx context.Context, username string, limit int) ([]model.SearchHistoryEntry, error) {
	query := `
		SELECT id, username, search_query, created_at
		FROM search_history
		WHERE username = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	var entries []model.SearchHistoryEntry
	if err := r.db.SelectContext(ctx, &entries, query, username, limit); err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	return entries, nil
}

// Delete removes the matching row; deleting an absent pair is a no-op.
func (r *searchHistoryRepository) Delete(ctx context.Context, username, query string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM search_history WHERE username = $1 AND search_query = $2`, username, query)
	if err != nil {
		return fmt.Errorf("delete search entry: %w", err)
	}
	return nil
}
