package handler

import (
	"errors"
	"log"
	"net/http"

	"linkup/internal/httputil"
	"linkup/internal/model"
	"linkup/internal/service"
	"linkup/internal/session"
	"linkup/internal/transport/http/middleware"
	"linkup/internal/view"
)

// CommentHandler serves the comment lifecycle routes.
type CommentHandler struct {
	comments *service.CommentService
	sessions *session.Manager
	renderer *view.Renderer
}

func NewCommentHandler(comments *service.CommentService, sessions *session.Manager, renderer *view.Renderer) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		sessions: sessions,
		renderer: renderer,
	}
}

// AddComment inserts a comment on a post. Whitespace-only content is
// silently dropped; either way the browser goes back where it came from.
// POST /add_comment/{id}
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	postID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	if _, err := h.comments.Add(r.Context(), postID, sess.Username, r.FormValue("comment_content")); err != nil {
		log.Printf("[CommentHandler] Failed to add comment to post %d: %v", postID, err)
		httputil.WriteInternalError(w)
		return
	}

	redirectBack(w, r, h.sessions.Store(), sess)
}

// EditCommentPage renders the edit form for a comment.
// GET /edit_comment/{id}
func (h *CommentHandler) EditCommentPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	commentID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid comment id")
		return
	}

	comment, err := h.comments.Get(r.Context(), commentID)
	if err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			httputil.WriteNotFound(w, "That comment does not exist.")
			return
		}
		httputil.WriteInternalError(w)
		return
	}

	data := pageData(r.Context(), h.sessions.Store(), sess)
	data.Data = struct{ Comment *model.Comment }{comment}
	h.renderer.Render(w, http.StatusOK, "edit_comment", data)
}

// EditComment rewrites a comment's content.
// POST /edit_comment/{id}
func (h *CommentHandler) EditComment(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	commentID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid comment id")
		return
	}

	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	if err := h.comments.Update(r.Context(), commentID, r.FormValue("comment_content")); err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			httputil.WriteNotFound(w, "That comment does not exist.")
			return
		}
		log.Printf("[CommentHandler] Failed to edit comment %d: %v", commentID, err)
		httputil.WriteInternalError(w)
		return
	}

	redirectBack(w, r, h.sessions.Store(), sess)
}

// DeleteComment removes a comment; a missing id is a silent no-op.
// POST /delete_comment/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	commentID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid comment id")
		return
	}

	if err := h.comments.Delete(r.Context(), commentID); err != nil {
		log.Printf("[CommentHandler] Failed to delete comment %d: %v", commentID, err)
		httputil.WriteInternalError(w)
		return
	}

	redirectBack(w, r, h.sessions.Store(), sess)
}
