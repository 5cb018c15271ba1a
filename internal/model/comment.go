package model

import (
	"errors"
	"time"
)

// Comment represents a comment on a post. Rows are removed by the
// database cascade when the owning post is deleted.
type Comment struct {
	ID        int64     `db:"id"`
	PostID    int64     `db:"post_id"`
	Username  string    `db:"username"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`

	// Joined field: commenter's profile image.
	ProfileImage *string `db:"profile_image"`
}

var (
	// ErrCommentNotFound is returned when a comment cannot be found.
	ErrCommentNotFound = errors.New("comment not found")
)
