package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"linkup/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. A unique-violation on username maps to
// ErrUsernameExists so concurrent signups of the same name lose cleanly.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (username, password_hashed)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	row := r.db.QueryRowxContext(ctx, query, u.Username, u.PasswordHashed)

	err := row.Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return model.ErrUsernameExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByUsername retrieves a user by their username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, password_hashed, profile_image, phone, country, birthdate, about, created_at
		FROM users
		WHERE username = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &u, nil
}

// ExistsByUsername checks if a username is already taken
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}

// List returns every user with their profile image.
func (r *userRepository) List(ctx context.Context) ([]model.UserSummary, error) {
	query := `SELECT username, profile_image FROM users ORDER BY username`

	var users []model.UserSummary
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Search matches the query as a substring anywhere in the username.
func (r *userRepository) Search(ctx context.Context, query string) ([]model.UserSummary, error) {
	searchQuery := `
		SELECT username, profile_image
		FROM users
		WHERE username LIKE $1
		ORDER BY username
	`

	var users []model.UserSummary
	err := r.db.SelectContext(ctx, &users, searchQuery, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return users, nil
}

// Update writes the editable profile fields, keyed by the current
// username. The profile image column is left untouched when no new
// image was uploaded.
func (r *userRepository) Update(ctx context.Context, username string, upd *model.ProfileUpdate) error {
	var result sql.Result
	var err error

	if upd.ProfileImage != nil {
		query := `
			UPDATE users
			SET username = $1, phone = $2, country = $3, birthdate = $4, about = $5, profile_image = $6
			WHERE username = $7
		`
		result, err = r.db.ExecContext(ctx, query,
			upd.NewUsername, upd.Phone, upd.Country, upd.Birthdate, upd.About, *upd.ProfileImage, username)
	} else {
		query := `
			UPDATE users
			SET username = $1, phone = $2, country = $3, birthdate = $4, about = $5
			WHERE username = $6
		`
		result, err = r.db.ExecContext(ctx, query,
			upd.NewUsername, upd.Phone, upd.Country, upd.Birthdate, upd.About, username)
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return model.ErrUsernameExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}

	return nil
}
