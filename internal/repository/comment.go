package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"linkup/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a new comment and fills in the generated id and timestamp.
func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (post_id, username, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	row := r.db.QueryRowxContext(ctx, query, comment.PostID, comment.Username, comment.Content)
	if err := row.Scan(&comment.ID, &comment.CreatedAt); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// GetByID retrieves a single comment, for the edit form.
func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	query := `
		SELECT id, post_id, username, content, created_at
		FROM comments
		WHERE id = $1
	`
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err == sql.ErrNoRows {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &comment, nil
}

// Update rewrites a comment's content.
func (r *commentRepository) Update(ctx context.Context, commentID int64, content string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE comments SET content = $1 WHERE id = $2`, content, commentID)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

// Delete removes a comment. A missing id is a no-op.
func (r *commentRepository) Delete(ctx context.Context, commentID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// ListForPost returns a post's comments oldest-first, the ordering the
// single-post view uses.
func (r *commentRepository) ListForPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.username, c.content, c.created_at, u.profile_image
		FROM comments c
		JOIN users u ON u.username = c.username
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`
	var comments []model.Comment
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("list comments for post: %w", err)
	}
	return comments, nil
}

// ListRecent returns all comments system-wide newest-first. The home
// feed uses this scope and ordering; it is a different query shape from
// ListForPost on purpose.
func (r *commentRepository) ListRecent(ctx context.Context) ([]model.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.username, c.content, c.created_at, u.profile_image
		FROM comments c
		JOIN users u ON u.username = c.username
		ORDER BY c.created_at DESC
	`
	var comments []model.Comment
	if err := r.db.SelectContext(ctx, &comments, query); err != nil {
		return nil, fmt.Errorf("list recent comments: %w", err)
	}
	return comments, nil
}
