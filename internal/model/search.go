package model

import "time"

// RecentHistoryLimit caps how many recent queries are shown on the
// search page.
const RecentHistoryLimit = 10

// SearchHistoryEntry is one remembered search query. At most one row
// exists per (username, search_query) pair; the database enforces it
// with a unique index.
type SearchHistoryEntry struct {
	ID          int64     `db:"id"`
	Username    string    `db:"username"`
	SearchQuery string    `db:"search_query"`
	CreatedAt   time.Time `db:"created_at"`
}
