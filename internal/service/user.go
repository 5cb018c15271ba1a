package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"linkup/internal/model"
	"linkup/internal/repository"
)

// UserService handles signup, login, profiles and profile links.
type UserService struct {
	repo     repository.UserRepository
	linkRepo repository.LinkRepository
}

func NewUserService(repo repository.UserRepository, linkRepo repository.LinkRepository) *UserService {
	return &UserService{
		repo:     repo,
		linkRepo: linkRepo,
	}
}

// Signup creates a new account, storing only the bcrypt hash of the
// password. A taken username yields ErrUsernameExists — both from the
// pre-check and, for concurrent signups, from the unique index.
func (s *UserService) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("username is required")
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       req.Username,
		PasswordHashed: string(hashedPassword),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[UserService] User %s registered", user.Username)
	return user, nil
}

// Login authenticates a user. An unknown username and a wrong password
// are distinct failures so the login form can show distinct advisory
// messages.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err // ErrUserNotFound or wrapped storage error
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetProfile returns the full user row plus their profile links.
func (s *UserService) GetProfile(ctx context.Context, username string) (*model.User, []model.UserLink, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	links, err := s.linkRepo.ListByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	return user, links, nil
}

// UpdateProfile writes the editable fields and returns the username the
// session should be bound to afterwards. A rename does not cascade to
// the user's posts, comments, links or history.
func (s *UserService) UpdateProfile(ctx context.Context, username string, upd *model.ProfileUpdate) (string, error) {
	if strings.TrimSpace(upd.NewUsername) == "" {
		upd.NewUsername = username
	}

	if err := s.repo.Update(ctx, username, upd); err != nil {
		return "", err
	}

	if upd.NewUsername != username {
		log.Printf("[UserService] User %s renamed to %s", username, upd.NewUsername)
	}
	return upd.NewUsername, nil
}

// AddLink appends an external link to the user's profile.
func (s *UserService) AddLink(ctx context.Context, username, label, url string) error {
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("url is required")
	}

	link := &model.UserLink{Username: username}
	if label != "" {
		link.Label = &label
	}
	link.URL = &url

	return s.linkRepo.Create(ctx, link)
}

// DeleteLink removes one of the user's own links.
func (s *UserService) DeleteLink(ctx context.Context, linkID int64, username string) error {
	return s.linkRepo.Delete(ctx, linkID, username)
}
