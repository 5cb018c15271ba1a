package httputil

import (
	"fmt"
	"html"
	"net/http"
)

// The app is form-and-redirect driven, so error responses are small
// standalone HTML pages rather than a JSON envelope.

func writePage(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w,
		"<!DOCTYPE html><html><head><title>%s</title></head><body><h1>%s</h1><p>%s</p><p><a href=\"/\">Back to the feed</a></p></body></html>",
		html.EscapeString(title), html.EscapeString(title), html.EscapeString(message))
}

// WriteNotFound writes a 404 page.
func WriteNotFound(w http.ResponseWriter, message string) {
	writePage(w, http.StatusNotFound, "Not found", message)
}

// WriteInternalError writes a 500 page. The message shown to the user
// stays generic; details belong in the log.
func WriteInternalError(w http.ResponseWriter) {
	writePage(w, http.StatusInternalServerError, "Something went wrong", "Please try again.")
}

// WriteBadRequest writes a 400 page.
func WriteBadRequest(w http.ResponseWriter, message string) {
	writePage(w, http.StatusBadRequest, "Bad request", message)
}
