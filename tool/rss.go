package tool

import (
	"context"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/habiliai/toolserver/entity"
	"github.com/habiliai/toolserver/errors"
	"github.com/habiliai/toolserver/tool/rss"
)

const RSSUsage = "@rss(feed-url) to list the latest items of an RSS or Atom feed"

type rssFeedView struct {
	URL   string
	Title string
	Items []rss.FeedItem
	Err   string
}

var rssTmpl = template.Must(template.New("rss").Funcs(sprig.TxtFuncMap()).Parse(
	`{{ range . }}` +
		`<h3>{{ default .URL .Title }}</h3>` +
		`{{ if .Err }}<i>{{ .Err }}</i>{{ end }}` +
		`{{ range .Items }}` +
		`<details style='margin-bottom:10px;'>` +
		`<summary><a href='{{ .Link }}' target='_blank'>{{ default .Link .Title }}</a>` +
		`{{ if not .Published.IsZero }} <small>{{ .Published | date "2006-01-02" }}</small>{{ end }}` +
		`</summary>` +
		`<div style='padding:10px; border:1px solid #ccc; margin-top:5px; ` +
		`white-space:pre-wrap; font-size:90%; max-height:400px; overflow:auto;'>` +
		`{{ .Description }}` +
		`</div>` +
		`</details>` +
		`{{ end }}` +
		`{{ end }}`,
))

// RSS lists the newest items of one or more feeds. The argument holds feed
// URLs and optionally a trailing item limit, e.g. "https://a/feed, 5".
func RSS(reader *rss.RSSReader, defaultLimit int) Func {
	return func(ctx context.Context, _ []entity.Message, arg string) (string, error) {
		urls, limit, err := parseRSSArg(arg, defaultLimit)
		if err != nil {
			return "", err
		}

		results := reader.ReadMultipleFeeds(ctx, urls)

		views := make([]rssFeedView, 0, len(results))
		failed := 0
		for _, res := range results {
			view := rssFeedView{URL: res.URL}
			if res.Err != nil {
				failed++
				view.Err = res.Err.Error()
			} else {
				view.Title = res.Feed.Title
				view.Items = res.Feed.Items
				if len(view.Items) > limit {
					view.Items = view.Items[:limit]
				}
			}
			views = append(views, view)
		}
		if failed == len(results) {
			return "", results[0].Err
		}

		var sb strings.Builder
		if err := rssTmpl.Execute(&sb, views); err != nil {
			return "", errors.Wrapf(err, "failed to render feeds")
		}
		return sb.String(), nil
	}
}

func parseRSSArg(arg string, defaultLimit int) ([]string, int, error) {
	tokens := Tokenize(arg)
	limit := defaultLimit

	if n := len(tokens); n > 1 {
		if v, err := strconv.Atoi(tokens[n-1]); err == nil {
			if v <= 0 {
				return nil, 0, errors.Invalidf("Item limit must be positive: %d", v)
			}
			limit = v
			tokens = tokens[:n-1]
		}
	}

	if len(tokens) == 0 {
		return nil, 0, errors.Invalidf("Expected at least one feed URL")
	}
	for _, t := range tokens {
		if !strings.HasPrefix(t, "http://") && !strings.HasPrefix(t, "https://") {
			return nil, 0, errors.Invalidf("Not a feed URL: %s", t)
		}
	}

	return tokens, limit, nil
}
