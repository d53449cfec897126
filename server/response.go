package server

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
)

// writeBody sends body with an exact Content-Length.
func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) error {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)

	_, err := w.Write(body)
	return err
}

// writeHTMLError sends description, trimmed, as an HTML fragment.
func writeHTMLError(w http.ResponseWriter, status int, description string) error {
	return writeBody(w, status, contentTypeHTML, []byte(strings.TrimSpace(description)))
}
