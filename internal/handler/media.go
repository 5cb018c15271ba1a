package handler

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"linkup/internal/httputil"
	"linkup/internal/service"
)

// MediaHandler serves stored uploads.
type MediaHandler struct {
	media *service.MediaService
}

func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// ServeUpload streams a stored media file. Filenames with path
// components are rejected by Resolve, so the handler can only ever
// reach inside the media directories.
// GET /uploads/{filename}
func (h *MediaHandler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	path, err := h.media.Resolve(filename)
	if err != nil {
		if os.IsNotExist(err) {
			httputil.WriteNotFound(w, "No such file.")
			return
		}
		httputil.WriteBadRequest(w, "Invalid filename")
		return
	}

	http.ServeFile(w, r, path)
}
