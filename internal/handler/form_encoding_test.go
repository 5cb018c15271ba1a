package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"linkup/internal/config"
	"linkup/internal/model"
	"linkup/internal/service"
	"linkup/internal/session"
	"linkup/internal/transport/http/middleware"
	"linkup/internal/view"
)

// The browser sends these forms as multipart when a file input is used
// and url-encoded otherwise (http.Client.PostForm does the same), so
// the handlers must accept both encodings.

// stubPostRepository implements repository.PostRepository with
// per-test function fields.
type stubPostRepository struct {
	getByIDFn func(ctx context.Context, postID int64) (*model.Post, error)

	createCalls []*model.Post
	updateCalls []*model.Post
}

func (m *stubPostRepository) Create(ctx context.Context, post *model.Post) error {
	post.ID = int64(len(m.createCalls) + 1)
	post.CreatedAt = time.Now()
	m.createCalls = append(m.createCalls, post)
	return nil
}

func (m *stubPostRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *stubPostRepository) GetFeedPost(ctx context.Context, postID int64) (*model.FeedPost, error) {
	return nil, model.ErrPostNotFound
}

func (m *stubPostRepository) ListFeed(ctx context.Context) ([]model.FeedPost, error) {
	return nil, nil
}

func (m *stubPostRepository) ListByUsername(ctx context.Context, username string) ([]model.Post, error) {
	return nil, nil
}

func (m *stubPostRepository) Update(ctx context.Context, post *model.Post) error {
	m.updateCalls = append(m.updateCalls, post)
	return nil
}

func (m *stubPostRepository) Delete(ctx context.Context, postID int64) error { return nil }

// stubUserRepository implements repository.UserRepository.
type stubUserRepository struct {
	updateCalls []*model.ProfileUpdate
}

func (m *stubUserRepository) Create(ctx context.Context, user *model.User) error { return nil }

func (m *stubUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return &model.User{ID: 1, Username: username}, nil
}

func (m *stubUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return false, nil
}

func (m *stubUserRepository) List(ctx context.Context) ([]model.UserSummary, error) {
	return nil, nil
}

func (m *stubUserRepository) Search(ctx context.Context, query string) ([]model.UserSummary, error) {
	return nil, nil
}

func (m *stubUserRepository) Update(ctx context.Context, username string, upd *model.ProfileUpdate) error {
	m.updateCalls = append(m.updateCalls, upd)
	return nil
}

// stubLinkRepository implements repository.LinkRepository.
type stubLinkRepository struct{}

func (m *stubLinkRepository) Create(ctx context.Context, link *model.UserLink) error { return nil }
func (m *stubLinkRepository) Delete(ctx context.Context, linkID int64, username string) error {
	return nil
}
func (m *stubLinkRepository) ListByUsername(ctx context.Context, username string) ([]model.UserLink, error) {
	return nil, nil
}

func newTestSessions(t *testing.T) (*session.Manager, *fakeSessionStore) {
	t.Helper()
	store := newFakeSessionStore()
	return session.NewManager(store, session.NewCodec("test-secret", time.Hour)), store
}

func newTestMedia(t *testing.T) *service.MediaService {
	t.Helper()
	media, err := service.NewMediaService(&config.Config{
		UploadDir:       t.TempDir(),
		ProfileImageDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("media service: %v", err)
	}
	return media
}

func newTestRenderer(t *testing.T) *view.Renderer {
	t.Helper()
	renderer, err := view.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	return renderer
}

func attachSession(r *http.Request, sess *session.Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, sess))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func urlEncodedRequest(target string, form url.Values, sess *session.Session) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return attachSession(req, sess)
}

func TestCreatePost_AcceptsURLEncodedForm(t *testing.T) {
	repo := &stubPostRepository{}
	sessions, _ := newTestSessions(t)
	h := NewPostHandler(service.NewPostService(repo), nil, nil, newTestMedia(t), sessions, newTestRenderer(t))

	sess := &session.Session{ID: "sess-1", Username: "alice"}
	rec := httptest.NewRecorder()
	h.CreatePost(rec, urlEncodedRequest("/create_post", url.Values{"post_content": {"hello"}}, sess))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusFound, rec.Body.String())
	}
	if len(repo.createCalls) != 1 {
		t.Fatalf("Create called %d times, want 1", len(repo.createCalls))
	}
	post := repo.createCalls[0]
	if post.Username != "alice" || post.Content == nil || *post.Content != "hello" {
		t.Errorf("stored post = %+v, want alice's post with content hello", post)
	}
	if post.Type != model.PostTypeText {
		t.Errorf("post type = %q, want %q", post.Type, model.PostTypeText)
	}
}

func TestCreatePost_AcceptsMultipartFormWithFile(t *testing.T) {
	repo := &stubPostRepository{}
	sessions, _ := newTestSessions(t)
	h := NewPostHandler(service.NewPostService(repo), nil, nil, newTestMedia(t), sessions, newTestRenderer(t))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("post_content", "look at this"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fw, err := mw.CreateFormFile("media", "photo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("png bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/create_post", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = attachSession(req, &session.Session{ID: "sess-1", Username: "alice"})

	rec := httptest.NewRecorder()
	h.CreatePost(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusFound, rec.Body.String())
	}
	if len(repo.createCalls) != 1 {
		t.Fatalf("Create called %d times, want 1", len(repo.createCalls))
	}
	post := repo.createCalls[0]
	if post.Media == nil || *post.Media != "photo.png" {
		t.Errorf("stored media = %v, want photo.png", post.Media)
	}
	if post.Type != model.PostTypeImage {
		t.Errorf("post type = %q, want %q", post.Type, model.PostTypeImage)
	}
}

func TestEditPost_AcceptsURLEncodedForm(t *testing.T) {
	content := "old"
	repo := &stubPostRepository{
		getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
			return &model.Post{ID: postID, Username: "alice", Content: &content, Type: model.PostTypeText}, nil
		},
	}
	sessions, _ := newTestSessions(t)
	h := NewPostHandler(service.NewPostService(repo), nil, nil, newTestMedia(t), sessions, newTestRenderer(t))

	sess := &session.Session{ID: "sess-1", Username: "alice"}
	req := urlEncodedRequest("/edit_post/7", url.Values{"post_content": {"new"}}, sess)
	req = withURLParam(req, "id", "7")

	rec := httptest.NewRecorder()
	h.EditPost(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusFound, rec.Body.String())
	}
	if len(repo.updateCalls) != 1 {
		t.Fatalf("Update called %d times, want 1", len(repo.updateCalls))
	}
	if got := repo.updateCalls[0].Content; got == nil || *got != "new" {
		t.Errorf("updated content = %v, want new", got)
	}
}

func TestUpdateProfile_AcceptsURLEncodedForm(t *testing.T) {
	repo := &stubUserRepository{}
	sessions, _ := newTestSessions(t)
	users := service.NewUserService(repo, &stubLinkRepository{})
	h := NewProfileHandler(users, service.NewPostService(&stubPostRepository{}), newTestMedia(t), sessions, newTestRenderer(t))

	sess := &session.Session{ID: "sess-1", Username: "alice"}
	form := url.Values{"username": {"alice"}, "about": {"hi there"}}

	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, urlEncodedRequest("/update_profile", form, sess))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusFound, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/profile" {
		t.Errorf("redirect target = %q, want /profile", loc)
	}
	if len(repo.updateCalls) != 1 {
		t.Fatalf("Update called %d times, want 1", len(repo.updateCalls))
	}
	if got := repo.updateCalls[0].About; got != "hi there" {
		t.Errorf("about = %q, want %q", got, "hi there")
	}
}
