package tool

import (
	"log/slog"

	"github.com/habiliai/toolserver/config"
	"github.com/habiliai/toolserver/internal/fetch"
	"github.com/habiliai/toolserver/internal/mylog"
	"github.com/habiliai/toolserver/knowledge"
	"github.com/habiliai/toolserver/tool/rss"
)

type (
	// Defaults holds what the built-in tools need to reach the outside world.
	Defaults struct {
		Config    *config.Config
		Client    *fetch.Client
		Knowledge knowledge.Service
		Logger    *slog.Logger
	}
)

// NewDefaultRegistry returns a registry holding the built-in tools in the
// order the tools banner lists them.
func NewDefaultRegistry(d Defaults) *Registry {
	cfg := d.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := d.Logger
	if logger == nil {
		logger = mylog.NewDiscardLogger()
	}
	client := d.Client
	if client == nil {
		client = fetch.NewClient(nil, cfg.Web.UserAgent, cfg.Web.FetchTimeout)
	}
	svc := d.Knowledge
	if svc == nil {
		svc = knowledge.NewWikipediaService(client, cfg.Knowledge.WikiAPIURL, logger)
	}

	wikiOpts := WikiOptions{
		SearchLimit:      cfg.Knowledge.SearchLimit,
		SummarySentences: cfg.Knowledge.SummarySentences,
		FullContentPages: cfg.Knowledge.FullContentPages,
		Concurrency:      cfg.Knowledge.Concurrency,
		Logger:           logger,
	}

	r := NewRegistry()
	r.Register("tools", Tools(r), "")
	r.Register("echo", Echo, EchoUsage)
	r.Register("add", Add, AddUsage)
	r.Register("web", Web(NewHTTPSearchPageFetcher(client, cfg.Web.SearchURL)), WebUsage)
	r.Register("wiki", Wiki(svc, wikiOpts), WikiUsage)
	r.Register("wikishort", WikiShort(svc, wikiOpts), WikiShortUsage)
	r.Register("rss", RSS(rss.NewRSSReader(client), cfg.Feed.DefaultLimit), RSSUsage)

	return r
}
