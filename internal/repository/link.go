package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"linkup/internal/model"
)

type linkRepository struct {
	db *sqlx.DB
}

func NewLinkRepository(db *sqlx.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) Create(ctx context.Context, link *model.UserLink) error {
	query := `
		INSERT INTO user_links (username, label, url)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	row := r.db.QueryRowxContext(ctx, query, link.Username, link.Label, link.URL)
	if err := row.Scan(&link.ID); err != nil {
		return fmt.Errorf("insert link: %w", err)
	}
	return nil
}

// Delete removes a link, scoped to its owner so one user cannot remove
// another's links by guessing ids.
func (r *linkRepository) Delete(ctx context.Context, linkID int64, username string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM user_links WHERE id = $1 AND username = $2`, linkID, username)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	return nil
}

func (r *linkRepository) ListByUsername(ctx context.Context, username string) ([]model.UserLink, error) {
	query := `
		SELECT id, username, label, url
		FROM user_links
		WHERE username = $1
		ORDER BY id
	`
	var links []model.UserLink
	if err := r.db.SelectContext(ctx, &links, query, username); err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}
