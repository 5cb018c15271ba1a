package model

import (
	"errors"
	"time"
)

// User represents a registered account. Username is the key every other
// table references by value; renaming does not cascade (see DESIGN.md).
type User struct {
	ID             int64     `db:"id"`
	Username       string    `db:"username"`
	PasswordHashed string    `db:"password_hashed"`
	ProfileImage   *string   `db:"profile_image"`
	Phone          *string   `db:"phone"`
	Country        *string   `db:"country"`
	Birthdate      *string   `db:"birthdate"`
	About          *string   `db:"about"`
	CreatedAt      time.Time `db:"created_at"`
}

// UserSummary is the slim shape used by search results and user listings.
type UserSummary struct {
	Username     string  `db:"username"`
	ProfileImage *string `db:"profile_image"`
}

// SignupRequest carries the signup form fields.
type SignupRequest struct {
	Username string
	Password string
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Username string
	Password string
}

// ProfileUpdate carries the editable profile fields. NewUsername may differ
// from the current username; the caller's session is re-bound on rename.
type ProfileUpdate struct {
	NewUsername  string
	Phone        string
	Country      string
	Birthdate    string
	About        string
	ProfileImage *string // sanitized stored filename, nil when no upload
}

var (
	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a taken username.
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when the password does not verify.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
