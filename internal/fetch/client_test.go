package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/habiliai/toolserver/errors"
	"github.com/habiliai/toolserver/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSendsUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("hello"))
	}))
	defer server.Close()

	client := fetch.NewClient(server.Client(), "Mozilla/5.0", time.Second)
	body, err := client.Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestGetNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := fetch.NewClient(server.Client(), "", time.Second)
	_, err := client.Get(context.Background(), server.URL)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUpstream))
	assert.Contains(t, err.Error(), "403")
}

func TestGetTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := fetch.NewClient(server.Client(), "", 50*time.Millisecond)
	start := time.Now()
	_, err := client.Get(context.Background(), server.URL)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUpstream))
	assert.Less(t, time.Since(start), 5*time.Second)
}
