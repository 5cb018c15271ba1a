package handler

import (
	"errors"
	"net/http"

	"linkup/internal/httputil"
	"linkup/internal/model"
	"linkup/internal/service"
	"linkup/internal/session"
	"linkup/internal/transport/http/middleware"
	"linkup/internal/view"
)

// AuthHandler serves the login, signup and logout pages.
type AuthHandler struct {
	users    *service.UserService
	sessions *session.Manager
	renderer *view.Renderer
}

func NewAuthHandler(users *service.UserService, sessions *session.Manager, renderer *view.Renderer) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		renderer: renderer,
	}
}

// LoginPage renders the login form.
// GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())
	h.renderer.Render(w, http.StatusOK, "login", pageData(r.Context(), h.sessions.Store(), sess))
}

// Login authenticates and binds the session. Unknown username and wrong
// password render distinct advisory messages on the same form; success
// redirects to the pending previous URL or the home feed.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())
	store := h.sessions.Store()

	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	req := model.LoginRequest{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	user, err := h.users.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			flash(r.Context(), store, sess, "That username does not exist.")
		case errors.Is(err, model.ErrInvalidCredentials):
			flash(r.Context(), store, sess, "Wrong password.")
		default:
			httputil.WriteInternalError(w)
			return
		}
		h.renderer.Render(w, http.StatusOK, "login", pageData(r.Context(), store, sess))
		return
	}

	if err := store.BindUser(r.Context(), sess.ID, user.Username); err != nil {
		httputil.WriteInternalError(w)
		return
	}

	redirectBack(w, r, store, sess)
}

// SignupPage renders the signup form.
// GET /signup
func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())
	h.renderer.Render(w, http.StatusOK, "signup", pageData(r.Context(), h.sessions.Store(), sess))
}

// Signup registers a new account. A duplicate username re-renders the
// form with an advisory message; success flashes and goes to login.
// POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())
	store := h.sessions.Store()

	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	req := model.SignupRequest{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	if _, err := h.users.Signup(r.Context(), &req); err != nil {
		if errors.Is(err, model.ErrUsernameExists) {
			flash(r.Context(), store, sess, "That username is already taken.")
			h.renderer.Render(w, http.StatusOK, "signup", pageData(r.Context(), store, sess))
			return
		}
		httputil.WriteInternalError(w)
		return
	}

	flash(r.Context(), store, sess, "Account created. You can log in now.")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Logout unbinds the username from the session. Idempotent: logging out
// twice is fine.
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.GetSession(r.Context()); ok {
		if err := h.sessions.Store().UnbindUser(r.Context(), sess.ID); err != nil {
			httputil.WriteInternalError(w)
			return
		}
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}
