package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"linkup/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post and fills in the generated id and timestamp.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (username, content, media, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	row := r.db.QueryRowxContext(ctx, query, post.Username, post.Content, post.Media, post.Type)
	if err := row.Scan(&post.ID, &post.CreatedAt); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a single post without the author join.
func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	query := `
		SELECT id, username, content, media, type, created_at
		FROM posts
		WHERE id = $1
	`
	var post model.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// GetFeedPost retrieves one post joined with its author's profile fields.
func (r *postRepository) GetFeedPost(ctx context.Context, postID int64) (*model.FeedPost, error) {
	query := `
		SELECT p.id, p.username, p.content, p.media, p.type, p.created_at,
		       u.profile_image, u.about, u.phone, u.country, u.birthdate
		FROM posts p
		JOIN users u ON u.username = p.username
		WHERE p.id = $1
	`
	var post model.FeedPost
	err := r.db.GetContext(ctx, &post, query, postID)
	if err == sql.ErrNoRows {
		// A post whose author was renamed drops out of the join as well;
		// either way there is nothing to show.
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get feed post: %w", err)
	}
	return &post, nil
}

// ListFeed returns every post with author profile fields, newest first.
func (r *postRepository) ListFeed(ctx context.Context) ([]model.FeedPost, error) {
	query := `
		SELECT p.id, p.username, p.content, p.media, p.type, p.created_at,
		       u.profile_image, u.about, u.phone, u.country, u.birthdate
		FROM posts p
		JOIN users u ON u.username = p.username
		ORDER BY p.created_at DESC
	`
	var posts []model.FeedPost
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	return posts, nil
}

// ListByUsername returns a user's own posts for their profile page.
func (r *postRepository) ListByUsername(ctx context.Context, username string) ([]model.Post, error) {
	query := `
		SELECT id, username, content, media, type, created_at
		FROM posts
		WHERE username = $1
		ORDER BY created_at DESC
	`
	var posts []model.Post
	if err := r.db.SelectContext(ctx, &posts, query, username); err != nil {
		return nil, fmt.Errorf("list posts by username: %w", err)
	}
	return posts, nil
}

// Update rewrites content, media and type.
func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	query := `
		UPDATE posts SET content = $1, media = $2, type = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, post.Content, post.Media, post.Type, post.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// Delete removes a post. Comments follow via ON DELETE CASCADE.
// Deleting a missing id is a no-op, matching the original contract.
func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
