package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"linkup/internal/handler"
	"linkup/internal/session"
	sessmw "linkup/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	PostHandler    *handler.PostHandler
	CommentHandler *handler.CommentHandler
	ProfileHandler *handler.ProfileHandler
	SearchHandler  *handler.SearchHandler
	MediaHandler   *handler.MediaHandler
	Sessions       *session.Manager
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Uploaded media is served without a session.
	r.Get("/uploads/{filename}", cfg.MediaHandler.ServeUpload)

	remember := sessmw.RememberURL(cfg.Sessions.Store())

	// Everything else runs with a session attached (anonymous until login).
	r.Group(func(r chi.Router) {
		r.Use(sessmw.WithSession(cfg.Sessions))

		// Auth pages - no login required
		r.Get("/login", cfg.AuthHandler.LoginPage)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Get("/signup", cfg.AuthHandler.SignupPage)
		r.Post("/signup", cfg.AuthHandler.Signup)
		r.Get("/logout", cfg.AuthHandler.Logout)

		// Public profile view
		r.With(remember).Get("/user/{username}", cfg.ProfileHandler.ViewUser)

		// Post/comment deletion carries no auth gate beyond the session
		// cookie itself; fidelity to the existing surface.
		r.Post("/delete_post/{id}", cfg.PostHandler.DeletePost)
		r.Post("/delete_comment/{id}", cfg.CommentHandler.DeleteComment)

		// Routes requiring a logged-in session
		r.Group(func(r chi.Router) {
			r.Use(sessmw.RequireAuth)

			r.With(remember).Get("/", cfg.PostHandler.Home)

			r.Get("/create_post", cfg.PostHandler.CreatePostPage)
			r.Post("/create_post", cfg.PostHandler.CreatePost)
			r.Get("/edit_post/{id}", cfg.PostHandler.EditPostPage)
			r.Post("/edit_post/{id}", cfg.PostHandler.EditPost)
			r.With(remember).Get("/post/{id}", cfg.PostHandler.ViewPost)

			r.Post("/add_comment/{id}", cfg.CommentHandler.AddComment)
			r.Get("/edit_comment/{id}", cfg.CommentHandler.EditCommentPage)
			r.Post("/edit_comment/{id}", cfg.CommentHandler.EditComment)

			r.With(remember).Get("/profile", cfg.ProfileHandler.Profile)
			r.Post("/update_profile", cfg.ProfileHandler.UpdateProfile)
			r.Post("/add_link", cfg.ProfileHandler.AddLink)
			r.Post("/delete_link/{id}", cfg.ProfileHandler.DeleteLink)

			r.With(remember).Get("/search_friends", cfg.SearchHandler.SearchFriends)
			r.Post("/delete_search", cfg.SearchHandler.DeleteSearch)
		})
	})

	return r
}
