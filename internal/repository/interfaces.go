package repository

import (
	"context"

	"linkup/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// List returns every user, for the empty-query search page.
	List(ctx context.Context) ([]model.UserSummary, error)
	// Search returns users whose username contains the query as a substring.
	Search(ctx context.Context, query string) ([]model.UserSummary, error)
	// Update writes the profile fields, keyed by the current username.
	// ProfileImage is only written when non-nil.
	Update(ctx context.Context, username string, upd *model.ProfileUpdate) error
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	// GetFeedPost returns one post joined with its author's profile fields.
	GetFeedPost(ctx context.Context, postID int64) (*model.FeedPost, error)
	// ListFeed returns all posts joined with author profiles, newest first.
	ListFeed(ctx context.Context) ([]model.FeedPost, error)
	// ListByUsername returns a user's own posts, newest first.
	ListByUsername(ctx context.Context, username string) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, postID int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, commentID int64) (*model.Comment, error)
	Update(ctx context.Context, commentID int64, content string) error
	Delete(ctx context.Context, commentID int64) error
	// ListForPost returns a post's comments oldest-first with the
	// commenter's profile image joined (single-post view ordering).
	ListForPost(ctx context.Context, postID int64) ([]model.Comment, error)
	// ListRecent returns all comments system-wide newest-first (home
	// feed preview ordering). Deliberately distinct from ListForPost.
	ListRecent(ctx context.Context) ([]model.Comment, error)
}

type LinkRepository interface {
	Create(ctx context.Context, link *model.UserLink) error
	Delete(ctx context.Context, linkID int64, username string) error
	ListByUsername(ctx context.Context, username string) ([]model.UserLink, error)
}

type SearchHistoryRepository interface {
	// Record inserts (username, query) unless the pair already exists.
	// Implemented as a single atomic statement so concurrent identical
	// searches cannot produce duplicate rows.
	Record(ctx context.Context, username, query string) error
	Recent(ctx context.Context, username string, limit int) ([]model.SearchHistoryEntry, error)
	Delete(ctx context.Context, username, query string) error
}
