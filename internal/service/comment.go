package service

import (
	"context"
	"log"
	"strings"

	"linkup/internal/model"
	"linkup/internal/repository"
)

// CommentService handles business logic for comments.
type CommentService struct {
	repo repository.CommentRepository
}

func NewCommentService(repo repository.CommentRepository) *CommentService {
	return &CommentService{repo: repo}
}

// Add inserts a comment on a post. Empty or whitespace-only content is
// silently dropped (added is false, no error) — the caller just
// redirects back.
func (s *CommentService) Add(ctx context.Context, postID int64, author, content string) (added bool, err error) {
	if strings.TrimSpace(content) == "" {
		return false, nil
	}

	comment := &model.Comment{
		PostID:   postID,
		Username: author,
		Content:  content,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return false, err
	}

	log.Printf("[CommentService] User %s commented on post %d", author, postID)
	return true, nil
}

// Get returns a single comment, for the edit form.
func (s *CommentService) Get(ctx context.Context, commentID int64) (*model.Comment, error) {
	return s.repo.GetByID(ctx, commentID)
}

// Update rewrites a comment's content unconditionally (no ownership
// check, matching the existing behavior).
func (s *CommentService) Update(ctx context.Context, commentID int64, content string) error {
	if err := s.repo.Update(ctx, commentID, content); err != nil {
		return err
	}
	log.Printf("[CommentService] Comment %d updated", commentID)
	return nil
}

// Delete removes a comment unconditionally; a missing id is a no-op.
func (s *CommentService) Delete(ctx context.Context, commentID int64) error {
	if err := s.repo.Delete(ctx, commentID); err != nil {
		return err
	}
	log.Printf("[CommentService] Comment %d deleted", commentID)
	return nil
}

// ListForPost returns a post's comments oldest-first, the single-post
// view ordering.
func (s *CommentService) ListForPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	return s.repo.ListForPost(ctx, postID)
}

// ListRecent returns all comments system-wide newest-first, the home
// feed preview. A different scope and ordering from ListForPost, kept
// as two named operations so the difference stays visible.
func (s *CommentService) ListRecent(ctx context.Context) ([]model.Comment, error) {
	return s.repo.ListRecent(ctx)
}
