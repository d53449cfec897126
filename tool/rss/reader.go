package rss

import (
	"context"
	"sync"
	"time"

	"github.com/habiliai/toolserver/errors"
	"github.com/habiliai/toolserver/internal/fetch"
	"github.com/mmcdole/gofeed"
)

const defaultTimeout = 30 * time.Second

type (
	RSSReader struct {
		parser  *gofeed.Parser
		timeout time.Duration
	}

	Feed struct {
		Title string
		Link  string
		Items []FeedItem
	}

	// FeedItem is the part of an RSS/Atom entry the rss tool renders.
	FeedItem struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Link        string    `json:"link"`
		Published   time.Time `json:"published"`
		Author      string    `json:"author,omitempty"`
		Categories  []string  `json:"categories,omitempty"`
	}

	FeedResult struct {
		URL  string
		Feed *Feed
		Err  error
	}
)

// NewRSSReader builds a reader that fetches through client. A nil client
// uses the default HTTP client and a 30s timeout.
func NewRSSReader(client *fetch.Client) *RSSReader {
	parser := gofeed.NewParser()
	timeout := defaultTimeout
	if client != nil {
		parser.Client = client.HTTPClient()
		if ua := client.UserAgent(); ua != "" {
			parser.UserAgent = ua
		}
		if client.Timeout() > 0 {
			timeout = client.Timeout()
		}
	}

	return &RSSReader{
		parser:  parser,
		timeout: timeout,
	}
}

func (r *RSSReader) ReadFeed(ctx context.Context, feedURL string) (*Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	parsed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to parse feed %s", feedURL), errors.ErrUpstream)
	}

	feed := &Feed{
		Title: parsed.Title,
		Link:  parsed.Link,
		Items: make([]FeedItem, 0, len(parsed.Items)),
	}
	for _, item := range parsed.Items {
		feedItem := FeedItem{
			Title:       item.Title,
			Description: item.Description,
			Link:        item.Link,
			Categories:  item.Categories,
		}
		if item.PublishedParsed != nil {
			feedItem.Published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			feedItem.Published = *item.UpdatedParsed
		}
		if item.Author != nil {
			feedItem.Author = item.Author.Name
		}
		feed.Items = append(feed.Items, feedItem)
	}

	return feed, nil
}

// ReadMultipleFeeds reads the feeds in parallel. Results keep the order of
// feedURLs; a feed that fails carries its error instead of items.
func (r *RSSReader) ReadMultipleFeeds(ctx context.Context, feedURLs []string) []FeedResult {
	results := make([]FeedResult, len(feedURLs))

	var wg sync.WaitGroup
	for i, feedURL := range feedURLs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			feed, err := r.ReadFeed(ctx, feedURL)
			results[i] = FeedResult{URL: feedURL, Feed: feed, Err: err}
		}()
	}
	wg.Wait()

	return results
}
