package rss_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/habiliai/toolserver/errors"
	"github.com/habiliai/toolserver/internal/fetch"
	"github.com/habiliai/toolserver/tool/rss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockRSSFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test RSS feed</description>
    <item>
      <title>Test Item 1</title>
      <link>https://example.com/item1</link>
      <description>This is test item 1</description>
      <pubDate>Mon, 01 Jan 2024 12:00:00 GMT</pubDate>
      <category>Technology</category>
      <category>AI</category>
    </item>
    <item>
      <title>Test Item 2</title>
      <link>https://example.com/item2</link>
      <description>This is test item 2</description>
      <pubDate>Tue, 02 Jan 2024 12:00:00 GMT</pubDate>
      <category>Programming</category>
    </item>
  </channel>
</rss>`

const invalidRSSFeed = `<?xml version="1.0" encoding="UTF-8"?>
<invalid>
  <not-rss>This is not a valid RSS feed</not-rss>
</invalid>`

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		if _, err := w.Write([]byte(body)); err != nil {
			t.Logf("failed to write response: %v", err)
		}
	}))
}

func TestRSSReader_ReadFeed_Success(t *testing.T) {
	server := feedServer(t, http.StatusOK, mockRSSFeed)
	defer server.Close()

	reader := rss.NewRSSReader(fetch.NewClient(server.Client(), "Mozilla/5.0", time.Second))
	feed, err := reader.ReadFeed(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "Test Feed", feed.Title)
	require.Len(t, feed.Items, 2)

	assert.Equal(t, "Test Item 1", feed.Items[0].Title)
	assert.Equal(t, "https://example.com/item1", feed.Items[0].Link)
	assert.Equal(t, "This is test item 1", feed.Items[0].Description)
	assert.Equal(t, []string{"Technology", "AI"}, feed.Items[0].Categories)
	assert.False(t, feed.Items[0].Published.IsZero())

	assert.Equal(t, "Test Item 2", feed.Items[1].Title)
	assert.Equal(t, []string{"Programming"}, feed.Items[1].Categories)
}

func TestRSSReader_ReadFeed_InvalidURL(t *testing.T) {
	reader := rss.NewRSSReader(nil)

	_, err := reader.ReadFeed(context.Background(), "invalid-url")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse feed")
}

func TestRSSReader_ReadFeed_InvalidRSSContent(t *testing.T) {
	server := feedServer(t, http.StatusOK, invalidRSSFeed)
	defer server.Close()

	_, err := rss.NewRSSReader(nil).ReadFeed(context.Background(), server.URL)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUpstream))
}

func TestRSSReader_ReadFeed_ServerError(t *testing.T) {
	server := feedServer(t, http.StatusInternalServerError, "Internal Server Error")
	defer server.Close()

	_, err := rss.NewRSSReader(nil).ReadFeed(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse feed")
}

func TestRSSReader_ReadFeed_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
			return
		}
		_, _ = w.Write([]byte(mockRSSFeed))
	}))
	defer server.Close()

	reader := rss.NewRSSReader(fetch.NewClient(server.Client(), "", 50*time.Millisecond))
	_, err := reader.ReadFeed(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "context deadline exceeded")
}

func TestRSSReader_ReadMultipleFeeds_KeepsOrder(t *testing.T) {
	validServer := feedServer(t, http.StatusOK, mockRSSFeed)
	defer validServer.Close()
	errorServer := feedServer(t, http.StatusInternalServerError, "")
	defer errorServer.Close()

	results := rss.NewRSSReader(nil).ReadMultipleFeeds(context.Background(), []string{errorServer.URL, validServer.URL})

	require.Len(t, results, 2)
	assert.Equal(t, errorServer.URL, results[0].URL)
	assert.Error(t, results[0].Err)
	assert.Nil(t, results[0].Feed)

	assert.Equal(t, validServer.URL, results[1].URL)
	require.NoError(t, results[1].Err)
	assert.Len(t, results[1].Feed.Items, 2)
}
