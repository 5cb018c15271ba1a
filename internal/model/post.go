package model

import (
	"errors"
	"time"
)

// Post type tags, derived from the uploaded media's file extension at
// write time. A post with no media, or media with an unrecognized
// extension, is a text post.
const (
	PostTypeText  = "text"
	PostTypeImage = "image"
	PostTypeVideo = "video"
)

// Post represents a user's post.
type Post struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Content   *string   `db:"content"`
	Media     *string   `db:"media"` // stored filename under the uploads dir
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

// FeedPost is a post joined with its author's profile fields for the
// home feed and single-post views.
type FeedPost struct {
	Post
	ProfileImage *string `db:"profile_image"`
	About        *string `db:"about"`
	Phone        *string `db:"phone"`
	Country      *string `db:"country"`
	Birthdate    *string `db:"birthdate"`
}

// CreatePostRequest carries the create/edit post form fields.
// ContentSet distinguishes "field absent" from "field empty": an edit
// whose form carries no content field is a no-op, not a clearing update.
type CreatePostRequest struct {
	Content    string
	ContentSet bool
	MediaName  string // original filename of the saved upload, "" when none
}

var (
	// ErrPostNotFound is returned when a post cannot be found.
	ErrPostNotFound = errors.New("post not found")
)
