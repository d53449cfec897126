package tool

import (
	"strings"
	"text/template"

	"github.com/habiliai/toolserver/errors"
)

// Query and snippet are inserted unescaped. The fragment carries markup taken
// from the search page and must be treated as such by whoever displays it.
var searchResultsTmpl = template.Must(template.New("search_results").Parse(
	`<h3>Search results for: {{ .Query }}</h3>` +
		`{{ range .Results }}` +
		`<details style='margin-bottom:10px;'>` +
		`<summary><a href='{{ .URL }}' target='_blank'>{{ .URL }}</a></summary>` +
		`<div style='padding:10px; border:1px solid #ccc; margin-top:5px; ` +
		`white-space:pre-wrap; font-size:90%; max-height:400px; overflow:auto;'>` +
		`{{ .Snippet }}` +
		`</div>` +
		`</details>` +
		`{{ end }}`,
))

// RenderResults renders a heading with the query and one collapsible block
// per result.
func RenderResults(query string, results []SearchResult) (string, error) {
	var sb strings.Builder
	if err := searchResultsTmpl.Execute(&sb, map[string]any{
		"Query":   query,
		"Results": results,
	}); err != nil {
		return "", errors.Wrapf(err, "failed to render search results")
	}

	return sb.String(), nil
}
