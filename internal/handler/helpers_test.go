package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"linkup/internal/session"
)

// fakeSessionStore is an in-memory session.Store for handler tests.
type fakeSessionStore struct {
	prevURLs map[string]string
	flashes  map[string][]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		prevURLs: make(map[string]string),
		flashes:  make(map[string][]string),
	}
}

func (s *fakeSessionStore) Create(ctx context.Context) (*session.Session, error) {
	return &session.Session{ID: "sess-1"}, nil
}

func (s *fakeSessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	return nil, session.ErrNotFound
}

func (s *fakeSessionStore) BindUser(ctx context.Context, id, username string) error { return nil }
func (s *fakeSessionStore) UnbindUser(ctx context.Context, id string) error         { return nil }

func (s *fakeSessionStore) SetPreviousURL(ctx context.Context, id, url string) error {
	s.prevURLs[id] = url
	return nil
}

func (s *fakeSessionStore) PopPreviousURL(ctx context.Context, id string) (string, error) {
	url := s.prevURLs[id]
	delete(s.prevURLs, id)
	return url, nil
}

func (s *fakeSessionStore) AddFlash(ctx context.Context, id, message string) error {
	s.flashes[id] = append(s.flashes[id], message)
	return nil
}

func (s *fakeSessionStore) PopFlashes(ctx context.Context, id string) ([]string, error) {
	messages := s.flashes[id]
	delete(s.flashes, id)
	return messages, nil
}

func TestRedirectBack_ConsumesPreviousURL(t *testing.T) {
	store := newFakeSessionStore()
	sess := &session.Session{ID: "sess-1", Username: "alice"}
	store.SetPreviousURL(context.Background(), sess.ID, "/post/7")

	rec := httptest.NewRecorder()
	redirectBack(rec, httptest.NewRequest(http.MethodPost, "/add_comment/7", nil), store, sess)

	if loc := rec.Header().Get("Location"); loc != "/post/7" {
		t.Errorf("redirect target = %q, want /post/7", loc)
	}

	// The value is single-use: the next redirect falls back home.
	rec = httptest.NewRecorder()
	redirectBack(rec, httptest.NewRequest(http.MethodPost, "/add_comment/7", nil), store, sess)

	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("second redirect target = %q, want /", loc)
	}
}

func TestRedirectBack_FallsBackWithoutPreviousURL(t *testing.T) {
	store := newFakeSessionStore()
	sess := &session.Session{ID: "sess-1", Username: "alice"}

	rec := httptest.NewRecorder()
	redirectBack(rec, httptest.NewRequest(http.MethodPost, "/delete_search", nil), store, sess)

	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect target = %q, want /", loc)
	}
}

func TestRedirectBack_RejectsOffSiteTargets(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"absolute url", "https://evil.example/"},
		{"protocol-relative", "//evil.example/"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeSessionStore()
			sess := &session.Session{ID: "sess-1", Username: "alice"}
			store.SetPreviousURL(context.Background(), sess.ID, tt.url)

			rec := httptest.NewRecorder()
			redirectBack(rec, httptest.NewRequest(http.MethodPost, "/add_comment/7", nil), store, sess)

			if loc := rec.Header().Get("Location"); loc != "/" {
				t.Errorf("redirect target = %q, want /", loc)
			}
		})
	}
}

func TestPageData_DrainsFlashes(t *testing.T) {
	store := newFakeSessionStore()
	sess := &session.Session{ID: "sess-1", Username: "alice"}
	flash(context.Background(), store, sess, "Post created.")
	flash(context.Background(), store, sess, "Second message.")

	data := pageData(context.Background(), store, sess)

	if data.Username != "alice" {
		t.Errorf("username = %q, want alice", data.Username)
	}
	if len(data.Flashes) != 2 || data.Flashes[0] != "Post created." {
		t.Errorf("flashes = %v, want both queued messages in order", data.Flashes)
	}

	data = pageData(context.Background(), store, sess)
	if len(data.Flashes) != 0 {
		t.Errorf("flashes = %v, want drained queue on second read", data.Flashes)
	}
}
