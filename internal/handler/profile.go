package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"linkup/internal/httputil"
	"linkup/internal/model"
	"linkup/internal/service"
	"linkup/internal/session"
	"linkup/internal/transport/http/middleware"
	"linkup/internal/view"
)

// ProfileHandler serves profile pages and profile mutations.
type ProfileHandler struct {
	users    *service.UserService
	posts    *service.PostService
	media    *service.MediaService
	sessions *session.Manager
	renderer *view.Renderer
}

func NewProfileHandler(
	users *service.UserService,
	posts *service.PostService,
	media *service.MediaService,
	sessions *session.Manager,
	renderer *view.Renderer,
) *ProfileHandler {
	return &ProfileHandler{
		users:    users,
		posts:    posts,
		media:    media,
		sessions: sessions,
		renderer: renderer,
	}
}

// ViewUser renders a public profile: user fields, links and posts.
// GET /user/{username}
func (h *ProfileHandler) ViewUser(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())
	username := chi.URLParam(r, "username")

	user, links, err := h.users.GetProfile(r.Context(), username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "That user does not exist.")
			return
		}
		httputil.WriteInternalError(w)
		return
	}

	posts, err := h.posts.ListByUser(r.Context(), username)
	if err != nil {
		log.Printf("[ProfileHandler] Failed to load posts for %s: %v", username, err)
		httputil.WriteInternalError(w)
		return
	}

	data := pageData(r.Context(), h.sessions.Store(), sess)
	data.Data = struct {
		User  *model.User
		Links []model.UserLink
		Posts []model.Post
	}{user, links, posts}

	h.renderer.Render(w, http.StatusOK, "user", data)
}

// Profile renders the logged-in user's own editable profile.
// GET /profile
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	user, links, err := h.users.GetProfile(r.Context(), sess.Username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "That user does not exist.")
			return
		}
		httputil.WriteInternalError(w)
		return
	}

	data := pageData(r.Context(), h.sessions.Store(), sess)
	data.ProfileImage = user.ProfileImage
	data.Data = struct {
		User  *model.User
		Links []model.UserLink
	}{user, links}

	h.renderer.Render(w, http.StatusOK, "profile", data)
}

// UpdateProfile writes the editable fields, storing a new profile image
// when one was uploaded. A username rename re-binds the session; owned
// content keeps the old name.
// POST /update_profile (multipart)
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())
	store := h.sessions.Store()

	if err := parseUploadForm(r); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	upd := &model.ProfileUpdate{
		NewUsername: r.FormValue("username"),
		Phone:       r.FormValue("phone"),
		Country:     r.FormValue("country"),
		Birthdate:   r.FormValue("birthdate"),
		About:       r.FormValue("about"),
	}

	file, header, err := r.FormFile("profile_image")
	if err == nil && header.Filename != "" {
		defer file.Close()
		filename, saveErr := h.media.SaveProfileImage(file, header)
		if saveErr != nil {
			log.Printf("[ProfileHandler] Failed to store profile image: %v", saveErr)
			httputil.WriteInternalError(w)
			return
		}
		upd.ProfileImage = &filename
	} else if err != nil && err != http.ErrMissingFile && err != http.ErrNotMultipart {
		httputil.WriteBadRequest(w, "Invalid profile image upload")
		return
	}

	newUsername, err := h.users.UpdateProfile(r.Context(), sess.Username, upd)
	if err != nil {
		if errors.Is(err, model.ErrUsernameExists) {
			flash(r.Context(), store, sess, "That username is already taken.")
			http.Redirect(w, r, "/profile", http.StatusFound)
			return
		}
		log.Printf("[ProfileHandler] Failed to update profile for %s: %v", sess.Username, err)
		httputil.WriteInternalError(w)
		return
	}

	if newUsername != sess.Username {
		if err := store.BindUser(r.Context(), sess.ID, newUsername); err != nil {
			httputil.WriteInternalError(w)
			return
		}
	}

	http.Redirect(w, r, "/profile", http.StatusFound)
}

// AddLink appends an external link to the caller's profile.
// POST /add_link
func (h *ProfileHandler) AddLink(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	if err := h.users.AddLink(r.Context(), sess.Username, r.FormValue("label"), r.FormValue("url")); err != nil {
		log.Printf("[ProfileHandler] Failed to add link for %s: %v", sess.Username, err)
		flash(r.Context(), h.sessions.Store(), sess, "Could not add that link.")
	}

	http.Redirect(w, r, "/profile", http.StatusFound)
}

// DeleteLink removes one of the caller's own links.
// POST /delete_link/{id}
func (h *ProfileHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	linkID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid link id")
		return
	}

	if err := h.users.DeleteLink(r.Context(), linkID, sess.Username); err != nil {
		log.Printf("[ProfileHandler] Failed to delete link %d: %v", linkID, err)
		httputil.WriteInternalError(w)
		return
	}

	http.Redirect(w, r, "/profile", http.StatusFound)
}
