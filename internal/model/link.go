package model

// UserLink is an external link shown on a profile (label + URL).
type UserLink struct {
	ID       int64   `db:"id"`
	Username string  `db:"username"`
	Label    *string `db:"label"`
	URL      *string `db:"url"`
}
