package server

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/habiliai/toolserver/internal/mylog"
)

// staticHandler serves files under a directory for GET and HEAD and answers
// 501 for any other method. Responses are buffered so Content-Length is
// always exact, directory listings and error pages included.
type staticHandler struct {
	files  http.Handler
	logger *slog.Logger
}

func newStaticHandler(dir string, logger *slog.Logger) http.Handler {
	return &staticHandler{
		files:  http.FileServer(http.Dir(dir)),
		logger: logger,
	}
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		if err := writeHTMLError(w, http.StatusNotImplemented, fmt.Sprintf("Unsupported method ('%s')", r.Method)); err != nil {
			h.logWriteError(r, err)
		}
		return
	}

	buf := newBufferedResponse()
	h.files.ServeHTTP(buf, r)
	if err := buf.flush(w, r.Method == http.MethodHead); err != nil {
		h.logWriteError(r, err)
	}
}

func (h *staticHandler) logWriteError(r *http.Request, err error) {
	h.logger.Warn("failed to write static response",
		slog.String("requestId", RequestID(r.Context())),
		slog.String("path", r.URL.Path),
		mylog.Err(err),
	)
}

type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

var _ http.ResponseWriter = (*bufferedResponse)(nil)

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{
		header: make(http.Header),
	}
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// flush copies the buffered response to w. A HEAD response keeps the length
// the file server computed, since no body was produced for it.
func (b *bufferedResponse) flush(w http.ResponseWriter, head bool) error {
	status := b.status
	if status == 0 {
		status = http.StatusOK
	}

	header := w.Header()
	for k, v := range b.header {
		header[k] = v
	}

	switch {
	case status == http.StatusNotModified || status == http.StatusNoContent:
		header.Del("Content-Length")
	case head && header.Get("Content-Length") != "":
	default:
		header.Set("Content-Length", strconv.Itoa(b.body.Len()))
	}

	w.WriteHeader(status)
	if head {
		return nil
	}
	_, err := w.Write(b.body.Bytes())
	return err
}
