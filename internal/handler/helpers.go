package handler

import (
	"context"
	"log"
	"net/http"
	"strings"

	"linkup/internal/session"
	"linkup/internal/view"
)

// pageData builds the common template envelope: viewer username and the
// drained flash queue. Flash failures are logged, never fatal — a lost
// advisory message is not worth a broken page.
func pageData(ctx context.Context, store session.Store, sess *session.Session) view.PageData {
	data := view.PageData{}
	if sess == nil {
		return data
	}

	data.Username = sess.Username

	flashes, err := store.PopFlashes(ctx, sess.ID)
	if err != nil {
		log.Printf("[handler] Failed to pop flashes: %v", err)
	}
	data.Flashes = flashes

	return data
}

// parseUploadForm parses a form that may arrive either as multipart
// (the page's file input was used) or url-encoded (it was not, or the
// client never offered a file field). Text values land in r.PostForm
// either way.
func parseUploadForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && err != http.ErrNotMultipart {
		return err
	}
	return nil
}

// flash queues a one-shot message for the next rendered page.
func flash(ctx context.Context, store session.Store, sess *session.Session, message string) {
	if sess == nil {
		return
	}
	if err := store.AddFlash(ctx, sess.ID, message); err != nil {
		log.Printf("[handler] Failed to add flash: %v", err)
	}
}

// redirectBack consumes the session's single-use previous URL and
// redirects there, falling back to the home feed. Only same-site paths
// are honored so the session value can never send the browser off-site.
func redirectBack(w http.ResponseWriter, r *http.Request, store session.Store, sess *session.Session) {
	target := "/"
	if sess != nil {
		url, err := store.PopPreviousURL(r.Context(), sess.ID)
		if err != nil {
			log.Printf("[handler] Failed to pop previous url: %v", err)
		} else if strings.HasPrefix(url, "/") && !strings.HasPrefix(url, "//") {
			target = url
		}
	}
	http.Redirect(w, r, target, http.StatusFound)
}
