package knowledge

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/habiliai/toolserver/errors"
	"github.com/habiliai/toolserver/internal/fetch"
	"github.com/habiliai/toolserver/internal/mylog"
	"github.com/habiliai/toolserver/internal/stringutils"
	"github.com/tidwall/gjson"
)

type wikipedia struct {
	client *fetch.Client
	apiURL string
	logger *slog.Logger
}

var _ Service = (*wikipedia)(nil)

// NewWikipediaService talks to a MediaWiki action API such as
// https://en.wikipedia.org/w/api.php.
func NewWikipediaService(client *fetch.Client, apiURL string, logger *slog.Logger) Service {
	if logger == nil {
		logger = mylog.NewDiscardLogger()
	}
	return &wikipedia{
		client: client,
		apiURL: apiURL,
		logger: logger,
	}
}

func (w *wikipedia) Search(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {strconv.Itoa(limit)},
		"srprop":   {""},
	}

	res, err := w.query(ctx, params)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to search %q", query)
	}

	var titles []string
	res.Get("query.search.#.title").ForEach(func(_, title gjson.Result) bool {
		titles = append(titles, title.String())
		return len(titles) < limit
	})

	w.logger.Debug("knowledge search", "query", query, "hits", len(titles))
	return titles, nil
}

func (w *wikipedia) GetPage(ctx context.Context, title string, opts PageOptions) (*Page, error) {
	params := url.Values{
		"action":      {"query"},
		"prop":        {"extracts|info|pageprops"},
		"inprop":      {"url"},
		"ppprop":      {"disambiguation"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"redirects":   {"1"},
		"titles":      {title},
	}
	if opts.SummarySentences > 0 {
		params.Set("exsentences", strconv.Itoa(opts.SummarySentences))
	}

	res, err := w.query(ctx, params)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get page %q", title)
	}

	pageRes := res.Get("query.pages.0")
	if !pageRes.Exists() || pageRes.Get("missing").Bool() || pageRes.Get("invalid").Bool() {
		return nil, errors.NotFoundf("page %q does not match any pages", title)
	}
	if pageRes.Get("pageprops.disambiguation").Exists() {
		return nil, errors.NotFoundf("%q may refer to several pages", title)
	}

	page := &Page{
		Title:   pageRes.Get("title").String(),
		URL:     pageRes.Get("fullurl").String(),
		Summary: stringutils.SanitizeUnicodeString(pageRes.Get("extract").String()),
	}

	if opts.WithContent {
		content, err := w.content(ctx, page.Title)
		if err != nil {
			return nil, err
		}
		page.Content = content
	}

	return page, nil
}

func (w *wikipedia) content(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action":      {"query"},
		"prop":        {"extracts"},
		"explaintext": {"1"},
		"redirects":   {"1"},
		"titles":      {title},
	}

	res, err := w.query(ctx, params)
	if err != nil {
		return "", errors.Wrapf(err, "failed to get content of %q", title)
	}

	text := stringutils.SanitizeUnicodeString(res.Get("query.pages.0.extract").String())
	return stringutils.CollapseBlankLines(text), nil
}

func (w *wikipedia) query(ctx context.Context, params url.Values) (gjson.Result, error) {
	u, err := url.Parse(w.apiURL)
	if err != nil {
		return gjson.Result{}, errors.Wrapf(err, "invalid api url %s", w.apiURL)
	}
	params.Set("format", "json")
	params.Set("formatversion", "2")
	u.RawQuery = params.Encode()

	body, err := w.client.Get(ctx, u.String())
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, errors.Mark(errors.New("invalid JSON from knowledge base"), errors.ErrUpstream)
	}

	res := gjson.ParseBytes(body)
	if apiErr := res.Get("error"); apiErr.Exists() {
		return gjson.Result{}, errors.Mark(
			errors.Errorf("%s: %s", apiErr.Get("code").String(), apiErr.Get("info").String()),
			errors.ErrUpstream,
		)
	}

	return res, nil
}
