package tool

import (
	"context"
	"log/slog"
	"strings"
	"text/template"

	"github.com/habiliai/toolserver/entity"
	"github.com/habiliai/toolserver/errors"
	"github.com/habiliai/toolserver/internal/mylog"
	"github.com/habiliai/toolserver/knowledge"
	"golang.org/x/sync/errgroup"
)

const (
	WikiUsage      = "@wiki(query) – Wikipedia search"
	WikiShortUsage = "wikishort(query) – Wikipedia search that only presents result summaries"
)

type (
	WikiOptions struct {
		SearchLimit      int
		SummarySentences int
		// FullContentPages is how many of the top hits include the page text.
		FullContentPages int
		Concurrency      int
		Logger           *slog.Logger
	}

	wikiEntry struct {
		Title   string
		URL     string
		Summary string
		Content string
		Full    bool
	}
)

var (
	wikiTmpl = template.Must(template.New("wiki").Parse(
		"\n\n{{ range . }}" +
			"# [{{ .Title }}]({{ .URL }})\n" +
			"## Summary\n{{ .Summary }}\n\n" +
			"{{ if .Full }}## Full Content\n{{ .Content }}\n\n{{ end }}" +
			"{{ end }}",
	))
	wikiShortTmpl = template.Must(template.New("wikishort").Parse(
		"\n\n{{ range . }}" +
			"# [{{ .Title }}]({{ .URL }})\n" +
			"{{ .Summary }}\n\n" +
			"{{ end }}",
	))
)

// Wiki searches the knowledge base and renders a summary for every hit and
// the full text for the first FullContentPages hits.
func Wiki(svc knowledge.Service, opts WikiOptions) Func {
	return wikiFunc(svc, opts, wikiTmpl, opts.FullContentPages)
}

// WikiShort is Wiki without page text.
func WikiShort(svc knowledge.Service, opts WikiOptions) Func {
	return wikiFunc(svc, opts, wikiShortTmpl, 0)
}

func wikiFunc(svc knowledge.Service, opts WikiOptions, tmpl *template.Template, fullPages int) Func {
	logger := opts.Logger
	if logger == nil {
		logger = mylog.NewDiscardLogger()
	}

	return func(ctx context.Context, _ []entity.Message, query string) (string, error) {
		titles, err := svc.Search(ctx, query, opts.SearchLimit)
		if err != nil {
			return "", err
		}
		if len(titles) > opts.SearchLimit {
			titles = titles[:opts.SearchLimit]
		}

		entries := fetchWikiEntries(ctx, svc, titles, opts, fullPages, logger)

		var sb strings.Builder
		if err := tmpl.Execute(&sb, entries); err != nil {
			return "", errors.Wrapf(err, "failed to render %s", tmpl.Name())
		}

		return sb.String(), nil
	}
}

// fetchWikiEntries loads the pages concurrently and returns them in search
// order. Pages that fail to load are left out, and a cancelled ctx returns
// whatever was loaded before it.
func fetchWikiEntries(ctx context.Context, svc knowledge.Service, titles []string, opts WikiOptions, fullPages int, logger *slog.Logger) []wikiEntry {
	pages := make([]*wikiEntry, len(titles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))
	for i, title := range titles {
		g.Go(func() error {
			full := i < fullPages
			page, err := svc.GetPage(gctx, title, knowledge.PageOptions{
				SummarySentences: opts.SummarySentences,
				WithContent:      full,
			})
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Debug("skip knowledge page", "title", title, mylog.Err(err))
				return nil
			}

			pages[i] = &wikiEntry{
				Title:   title,
				URL:     page.URL,
				Summary: page.Summary,
				Content: page.Content,
				Full:    full,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn("knowledge page fetch aborted", "titles", len(titles), mylog.Err(err))
	}

	entries := make([]wikiEntry, 0, len(pages))
	for _, p := range pages {
		if p != nil {
			entries = append(entries, *p)
		}
	}
	return entries
}
