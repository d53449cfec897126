package tool

import (
	"context"
	"net/url"

	"github.com/habiliai/toolserver/entity"
	"github.com/habiliai/toolserver/errors"
	"github.com/habiliai/toolserver/internal/fetch"
)

const WebUsage = "@web(query) – DuckDuckGo HTML scraper without bs4, returns clean final URLs."

type (
	SearchPageFetcher interface {
		FetchSearchPage(ctx context.Context, query string) (string, error)
	}

	// HTTPSearchPageFetcher downloads the HTML results page for a query.
	HTTPSearchPageFetcher struct {
		client    *fetch.Client
		searchURL string
	}
)

var _ SearchPageFetcher = (*HTTPSearchPageFetcher)(nil)

func NewHTTPSearchPageFetcher(client *fetch.Client, searchURL string) *HTTPSearchPageFetcher {
	return &HTTPSearchPageFetcher{
		client:    client,
		searchURL: searchURL,
	}
}

func (f *HTTPSearchPageFetcher) FetchSearchPage(ctx context.Context, query string) (string, error) {
	u, err := url.Parse(f.searchURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid search url %s", f.searchURL)
	}
	params := u.Query()
	params.Set("q", query)
	u.RawQuery = params.Encode()

	body, err := f.client.Get(ctx, u.String())
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch search results for %q", query)
	}

	return string(body), nil
}

// Web searches the web for arg and renders the extracted results.
func Web(fetcher SearchPageFetcher) Func {
	return func(ctx context.Context, _ []entity.Message, arg string) (string, error) {
		page, err := fetcher.FetchSearchPage(ctx, arg)
		if err != nil {
			return "", err
		}

		return RenderResults(arg, ExtractResults(page))
	}
}
