package service

import (
	"context"
	"testing"
	"time"

	"linkup/internal/model"
)

// mockCommentRepository implements repository.CommentRepository.
type mockCommentRepository struct {
	createFn      func(ctx context.Context, comment *model.Comment) error
	getByIDFn     func(ctx context.Context, commentID int64) (*model.Comment, error)
	updateFn      func(ctx context.Context, commentID int64, content string) error
	deleteFn      func(ctx context.Context, commentID int64) error
	listForPostFn func(ctx context.Context, postID int64) ([]model.Comment, error)
	listRecentFn  func(ctx context.Context) ([]model.Comment, error)

	createCalls []*model.Comment
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	m.createCalls = append(m.createCalls, comment)
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	comment.ID = int64(len(m.createCalls))
	comment.CreatedAt = time.Now()
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, commentID)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) Update(ctx context.Context, commentID int64, content string) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, commentID, content)
	}
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, commentID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID)
	}
	return nil
}

func (m *mockCommentRepository) ListForPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if m.listForPostFn != nil {
		return m.listForPostFn(ctx, postID)
	}
	return nil, nil
}

func (m *mockCommentRepository) ListRecent(ctx context.Context) ([]model.Comment, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx)
	}
	return nil, nil
}

func TestCommentService_Add_DropsWhitespaceOnlyContent(t *testing.T) {
	mockRepo := &mockCommentRepository{}
	svc := NewCommentService(mockRepo)

	for _, content := range []string{"", "   ", "\t\n "} {
		added, err := svc.Add(context.Background(), 1, "bob", content)
		if err != nil {
			t.Fatalf("expected no error for content %q, got: %v", content, err)
		}
		if added {
			t.Errorf("content %q should be silently dropped", content)
		}
	}
	if len(mockRepo.createCalls) != 0 {
		t.Errorf("Create called %d times, want 0", len(mockRepo.createCalls))
	}
}

func TestCommentService_Add_Success(t *testing.T) {
	mockRepo := &mockCommentRepository{}
	svc := NewCommentService(mockRepo)

	added, err := svc.Add(context.Background(), 1, "bob", "hi")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !added {
		t.Fatal("expected the comment to be added")
	}

	if len(mockRepo.createCalls) != 1 {
		t.Fatalf("Create called %d times, want 1", len(mockRepo.createCalls))
	}
	comment := mockRepo.createCalls[0]
	if comment.PostID != 1 || comment.Username != "bob" || comment.Content != "hi" {
		t.Errorf("comment = %+v, want post 1 / bob / hi", comment)
	}
}

func TestCommentService_ListForPost_OldestFirstOrderPreserved(t *testing.T) {
	t1 := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	t3 := t2.Add(time.Minute)

	mockRepo := &mockCommentRepository{
		listForPostFn: func(ctx context.Context, postID int64) ([]model.Comment, error) {
			// Repository returns ascending order; the service must not reorder.
			return []model.Comment{
				{ID: 1, PostID: postID, CreatedAt: t1},
				{ID: 2, PostID: postID, CreatedAt: t2},
				{ID: 3, PostID: postID, CreatedAt: t3},
			}, nil
		},
	}
	svc := NewCommentService(mockRepo)

	comments, err := svc.ListForPost(context.Background(), 9)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(comments))
	}
	for i := 1; i < len(comments); i++ {
		if comments[i].CreatedAt.Before(comments[i-1].CreatedAt) {
			t.Errorf("comments out of ascending order at index %d", i)
		}
	}
}
