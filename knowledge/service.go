package knowledge

import (
	"context"
)

type (
	// Service is the knowledge base the wiki tools read from: a title search
	// plus retrieval of a page's summary and text.
	Service interface {
		Search(ctx context.Context, query string, limit int) ([]string, error)
		GetPage(ctx context.Context, title string, opts PageOptions) (*Page, error)
	}

	PageOptions struct {
		// SummarySentences limits the summary to the first n sentences of the
		// introduction. Zero returns the whole introduction.
		SummarySentences int
		// WithContent also fetches the full plain text of the page.
		WithContent bool
	}

	Page struct {
		Title   string
		URL     string
		Summary string
		Content string
	}
)
