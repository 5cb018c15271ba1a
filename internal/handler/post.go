package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"linkup/internal/httputil"
	"linkup/internal/model"
	"linkup/internal/service"
	"linkup/internal/session"
	"linkup/internal/transport/http/middleware"
	"linkup/internal/view"
)

// maxUploadMemory is the in-memory buffer threshold for multipart forms.
const maxUploadMemory = 32 << 20

// PostHandler serves the home feed and the post lifecycle pages.
type PostHandler struct {
	posts    *service.PostService
	comments *service.CommentService
	users    *service.UserService
	media    *service.MediaService
	sessions *session.Manager
	renderer *view.Renderer
}

func NewPostHandler(
	posts *service.PostService,
	comments *service.CommentService,
	users *service.UserService,
	media *service.MediaService,
	sessions *session.Manager,
	renderer *view.Renderer,
) *PostHandler {
	return &PostHandler{
		posts:    posts,
		comments: comments,
		users:    users,
		media:    media,
		sessions: sessions,
		renderer: renderer,
	}
}

// Home renders the feed: every post with its author's profile joined,
// newest first, plus the system-wide recent comment list.
// GET /
func (h *PostHandler) Home(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	posts, err := h.posts.Feed(r.Context())
	if err != nil {
		log.Printf("[PostHandler] Failed to load feed: %v", err)
		httputil.WriteInternalError(w)
		return
	}

	comments, err := h.comments.ListRecent(r.Context())
	if err != nil {
		log.Printf("[PostHandler] Failed to load recent comments: %v", err)
		httputil.WriteInternalError(w)
		return
	}

	data := pageData(r.Context(), h.sessions.Store(), sess)
	data.ProfileImage = h.viewerImage(r, sess)
	data.Data = struct {
		Posts    []model.FeedPost
		Comments []model.Comment
	}{posts, comments}

	h.renderer.Render(w, http.StatusOK, "home", data)
}

// CreatePostPage renders the new-post form.
// GET /create_post
func (h *PostHandler) CreatePostPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())
	h.renderer.Render(w, http.StatusOK, "create_post", pageData(r.Context(), h.sessions.Store(), sess))
}

// CreatePost stores an optional media upload and inserts the post.
// POST /create_post (multipart)
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	if err := parseUploadForm(r); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	req := model.CreatePostRequest{
		Content:    r.FormValue("post_content"),
		ContentSet: true,
	}

	mediaName, err := h.saveUpload(r)
	if err != nil {
		log.Printf("[PostHandler] Failed to store upload: %v", err)
		httputil.WriteInternalError(w)
		return
	}
	req.MediaName = mediaName

	if _, err := h.posts.Create(r.Context(), sess.Username, req); err != nil {
		log.Printf("[PostHandler] Failed to create post: %v", err)
		httputil.WriteInternalError(w)
		return
	}

	redirectBack(w, r, h.sessions.Store(), sess)
}

// EditPostPage renders the edit form for an existing post.
// GET /edit_post/{id}
func (h *PostHandler) EditPostPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	postID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	post, err := h.posts.GetRaw(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "That post does not exist.")
			return
		}
		httputil.WriteInternalError(w)
		return
	}

	data := pageData(r.Context(), h.sessions.Store(), sess)
	data.Data = struct{ Post *model.Post }{post}
	h.renderer.Render(w, http.StatusOK, "edit_post", data)
}

// EditPost updates a post. A form without any content field is a no-op
// and just redirects back; new media replaces the old and re-derives
// the post type.
// POST /edit_post/{id} (multipart)
func (h *PostHandler) EditPost(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())
	store := h.sessions.Store()

	postID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	if err := parseUploadForm(r); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	// PostForm carries the text values for both encodings; a form with
	// no content field at all means the edit is a no-op.
	req := model.CreatePostRequest{}
	if values, ok := r.PostForm["post_content"]; ok && len(values) > 0 {
		req.Content = values[0]
		req.ContentSet = true
	}

	mediaName, err := h.saveUpload(r)
	if err != nil {
		log.Printf("[PostHandler] Failed to store upload: %v", err)
		httputil.WriteInternalError(w)
		return
	}
	req.MediaName = mediaName

	if _, err := h.posts.Edit(r.Context(), postID, req); err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "That post does not exist.")
			return
		}
		log.Printf("[PostHandler] Failed to edit post %d: %v", postID, err)
		httputil.WriteInternalError(w)
		return
	}

	redirectBack(w, r, store, sess)
}

// DeletePost removes a post; a missing id is a silent no-op.
// POST /delete_post/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	postID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	if err := h.posts.Delete(r.Context(), postID); err != nil {
		log.Printf("[PostHandler] Failed to delete post %d: %v", postID, err)
		httputil.WriteInternalError(w)
		return
	}

	redirectBack(w, r, h.sessions.Store(), sess)
}

// ViewPost renders a single post with its comments oldest-first.
// GET /post/{id}
func (h *PostHandler) ViewPost(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	postID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	post, err := h.posts.Get(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "That post does not exist.")
			return
		}
		httputil.WriteInternalError(w)
		return
	}

	comments, err := h.comments.ListForPost(r.Context(), postID)
	if err != nil {
		log.Printf("[PostHandler] Failed to load comments for post %d: %v", postID, err)
		httputil.WriteInternalError(w)
		return
	}

	data := pageData(r.Context(), h.sessions.Store(), sess)
	data.ProfileImage = h.viewerImage(r, sess)
	data.Data = struct {
		Post     *model.FeedPost
		Comments []model.Comment
	}{post, comments}

	h.renderer.Render(w, http.StatusOK, "view_post", data)
}

// saveUpload stores the media part, if the form carried one, and
// returns its stored filename. An absent or empty file field is not an
// error, and neither is a url-encoded form that cannot carry files.
func (h *PostHandler) saveUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("media")
	if err == http.ErrMissingFile || err == http.ErrNotMultipart {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	// Browsers submit an empty part when no file was chosen.
	if header.Filename == "" {
		return "", nil
	}

	return h.media.SavePostUpload(file, header)
}

// viewerImage fetches the logged-in viewer's profile image for the
// navbar. Best-effort only.
func (h *PostHandler) viewerImage(r *http.Request, sess *session.Session) *string {
	if !sess.Authenticated() {
		return nil
	}
	user, _, err := h.users.GetProfile(r.Context(), sess.Username)
	if err != nil {
		return nil
	}
	return user.ProfileImage
}

// parseID extracts a numeric chi URL parameter.
func parseID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
