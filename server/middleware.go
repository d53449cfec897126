package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
)

const RequestIDHeader = "X-Request-Id"

type requestIDCtxKey struct{}

// RequestID returns the id withRequestID attached to ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDCtxKey{}).(string)
	return id
}

// withRequestID reuses the caller's X-Request-Id or generates one, and echoes
// it on the response.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDCtxKey{}, id)))
	})
}

// noCache marks every response as uncacheable. The headers are set before
// next runs so they survive whatever next writes.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		header.Set("Pragma", "no-cache")
		header.Set("Expires", "0")

		next.ServeHTTP(w, r)
	})
}

func newLoggingHandler(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.WithGroup("http")
	return func(next http.Handler) http.Handler {
		return handlers.CustomLoggingHandler(io.Discard, next, func(_ io.Writer, p handlers.LogFormatterParams) {
			logger.Info("[HTTP] request",
				slog.String("requestId", RequestID(p.Request.Context())),
				slog.String("method", p.Request.Method),
				slog.String("path", p.URL.Path),
				slog.Int("statusCode", p.StatusCode),
				slog.Int("size", p.Size),
				slog.Duration("duration", time.Since(p.TimeStamp)),
			)
		})
	}
}

// newRecoveryHandler answers a panicking request with a bare 500 and logs the
// panic with its stack.
func newRecoveryHandler(logger *slog.Logger) func(http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(logger.WithGroup("http").Handler(), slog.LevelError)),
		handlers.PrintRecoveryStack(true),
	)
}
