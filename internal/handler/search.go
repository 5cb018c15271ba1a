package handler

import (
	"log"
	"net/http"

	"linkup/internal/httputil"
	"linkup/internal/model"
	"linkup/internal/service"
	"linkup/internal/session"
	"linkup/internal/transport/http/middleware"
	"linkup/internal/view"
)

// SearchHandler serves the friend search page and history mutations.
type SearchHandler struct {
	search   *service.SearchService
	users    *service.UserService
	sessions *session.Manager
	renderer *view.Renderer
}

func NewSearchHandler(search *service.SearchService, users *service.UserService, sessions *session.Manager, renderer *view.Renderer) *SearchHandler {
	return &SearchHandler{
		search:   search,
		users:    users,
		sessions: sessions,
		renderer: renderer,
	}
}

// SearchFriends lists users (all of them for an empty query, substring
// matches otherwise), records non-empty queries in the caller's history,
// and shows the ten most recent remembered queries.
// GET /search_friends?query=...
func (h *SearchHandler) SearchFriends(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())
	query := r.URL.Query().Get("query")

	users, err := h.search.Search(r.Context(), sess.Username, query)
	if err != nil {
		log.Printf("[SearchHandler] Search failed for %s: %v", sess.Username, err)
		httputil.WriteInternalError(w)
		return
	}

	history, err := h.search.Recent(r.Context(), sess.Username, model.RecentHistoryLimit)
	if err != nil {
		log.Printf("[SearchHandler] Failed to load history for %s: %v", sess.Username, err)
		httputil.WriteInternalError(w)
		return
	}

	data := pageData(r.Context(), h.sessions.Store(), sess)
	data.ProfileImage = h.viewerImage(r, sess)
	data.Data = struct {
		Query   string
		Users   []model.UserSummary
		History []model.SearchHistoryEntry
	}{query, users, history}

	h.renderer.Render(w, http.StatusOK, "search_friends", data)
}

// DeleteSearch removes one remembered query from the caller's history.
// POST /delete_search?search_query=...
func (h *SearchHandler) DeleteSearch(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())
	query := r.URL.Query().Get("search_query")

	if err := h.search.DeleteEntry(r.Context(), sess.Username, query); err != nil {
		log.Printf("[SearchHandler] Failed to delete history entry for %s: %v", sess.Username, err)
		httputil.WriteInternalError(w)
		return
	}

	http.Redirect(w, r, "/search_friends", http.StatusFound)
}

func (h *SearchHandler) viewerImage(r *http.Request, sess *session.Session) *string {
	if !sess.Authenticated() {
		return nil
	}
	user, _, err := h.users.GetProfile(r.Context(), sess.Username)
	if err != nil {
		return nil
	}
	return user.ProfileImage
}
