package service

import (
	"context"
	"log"
	"strings"

	"linkup/internal/model"
	"linkup/internal/repository"
)

// PostService handles business logic for posts.
type PostService struct {
	repo repository.PostRepository
}

func NewPostService(repo repository.PostRepository) *PostService {
	return &PostService{repo: repo}
}

// ClassifyMedia derives the post type tag from a media filename.
// png/jpg/jpeg/svg are images, mp4/mov are videos, anything else —
// including no media at all — leaves the post a text post.
func ClassifyMedia(filename string) string {
	if filename == "" {
		return model.PostTypeText
	}
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".png"),
		strings.HasSuffix(lower, ".jpg"),
		strings.HasSuffix(lower, ".jpeg"),
		strings.HasSuffix(lower, ".svg"):
		return model.PostTypeImage
	case strings.HasSuffix(lower, ".mp4"),
		strings.HasSuffix(lower, ".mov"):
		return model.PostTypeVideo
	default:
		return model.PostTypeText
	}
}

// Create inserts a new post for the author. Content and media are both
// optional; an empty post is permitted and stored as type text.
func (s *PostService) Create(ctx context.Context, author string, req model.CreatePostRequest) (*model.Post, error) {
	post := &model.Post{
		Username: author,
		Type:     ClassifyMedia(req.MediaName),
	}
	if req.Content != "" || req.ContentSet {
		content := req.Content
		post.Content = &content
	}
	if req.MediaName != "" {
		media := req.MediaName
		post.Media = &media
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	log.Printf("[PostService] User %s created post %d (%s)", author, post.ID, post.Type)
	return post, nil
}

// Edit updates a post's content and optionally its media. When the form
// carried no content field at all the edit is a no-op and changed is
// false. New media replaces the old filename and re-derives the type;
// otherwise the prior media and type are retained.
func (s *PostService) Edit(ctx context.Context, postID int64, req model.CreatePostRequest) (changed bool, err error) {
	if !req.ContentSet {
		return false, nil
	}

	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return false, err
	}

	content := req.Content
	post.Content = &content

	if req.MediaName != "" {
		media := req.MediaName
		post.Media = &media
	}

	mediaName := ""
	if post.Media != nil {
		mediaName = *post.Media
	}
	post.Type = ClassifyMedia(mediaName)

	if err := s.repo.Update(ctx, post); err != nil {
		return false, err
	}

	log.Printf("[PostService] Post %d edited (%s)", postID, post.Type)
	return true, nil
}

// Get returns a single post joined with its author's profile fields.
func (s *PostService) Get(ctx context.Context, postID int64) (*model.FeedPost, error) {
	return s.repo.GetFeedPost(ctx, postID)
}

// GetRaw returns a post without the author join, for the edit form.
func (s *PostService) GetRaw(ctx context.Context, postID int64) (*model.Post, error) {
	return s.repo.GetByID(ctx, postID)
}

// Feed returns every post with author profile fields, newest first.
func (s *PostService) Feed(ctx context.Context) ([]model.FeedPost, error) {
	return s.repo.ListFeed(ctx)
}

// ListByUser returns one user's posts for their public profile page.
func (s *PostService) ListByUser(ctx context.Context, username string) ([]model.Post, error) {
	return s.repo.ListByUsername(ctx, username)
}

// Delete removes a post unconditionally; comments cascade in the
// database. No ownership or existence check, matching the existing
// moderation-free behavior.
func (s *PostService) Delete(ctx context.Context, postID int64) error {
	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}
	log.Printf("[PostService] Post %d deleted", postID)
	return nil
}
