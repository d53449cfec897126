package server_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/habiliai/toolserver/errors"
	"github.com/habiliai/toolserver/internal/mylog"
	"github.com/habiliai/toolserver/server"
	"github.com/habiliai/toolserver/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (w brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestStaticWriteFailureIsLogged(t *testing.T) {
	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "hello.txt"), []byte("hello"), 0o644))

	testCases := []struct {
		name   string
		method string
		status int
	}{
		{name: "file body", method: http.MethodGet, status: http.StatusOK},
		{name: "unsupported method page", method: http.MethodPut, status: http.StatusNotImplemented},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			h := server.NewHandler(tool.NewRegistry(),
				server.WithStaticDir(staticDir),
				server.WithLogger(mylog.NewLoggerWithWriter(&logs, "debug", "json")),
			)

			w := brokenWriter{httptest.NewRecorder()}
			h.ServeHTTP(w, httptest.NewRequest(tc.method, "/hello.txt", nil))

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, logs.String(), "failed to write static response")
			assert.Contains(t, logs.String(), "broken pipe")
		})
	}
}
