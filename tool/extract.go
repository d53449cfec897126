package tool

import (
	"strings"
)

const (
	MaxSearchResults = 10

	titleMarker    = `class="result__a"`
	snippetMarker  = `class="result__snippet"`
	anchorOpen     = "<a"
	anchorClose    = "</a>"
	hrefAttr       = `href="`
	redirectPrefix = "//duckduckgo.com/l/?"
	redirectParam  = "uddg="
	// hrefWindow bounds how far past the title marker the href may start.
	hrefWindow = 200

	NoPreview = "No preview"
)

type SearchResult struct {
	URL     string
	Snippet string
}

// ExtractResults scans a DuckDuckGo HTML results page for result anchors.
// It is a single forward pass over the text, not an HTML parser: markers
// whose href cannot be resolved, or whose target is not http(s), are skipped
// without ending the scan. Results are unique by exact URL, kept in the order
// they were first accepted, and capped at MaxSearchResults.
func ExtractResults(page string) []SearchResult {
	var (
		results []SearchResult
		seen    = make(map[string]struct{})
	)

	for cursor := 0; len(results) < MaxSearchResults; {
		rel := strings.Index(page[cursor:], titleMarker)
		if rel < 0 {
			break
		}
		pos := cursor + rel
		cursor = pos + len(titleMarker)

		href, hrefEnd, ok := findHref(page, pos)
		if !ok {
			continue
		}

		link := resolveRedirect(href)
		if !strings.HasPrefix(link, "http") {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}

		seen[link] = struct{}{}
		results = append(results, SearchResult{
			URL:     link,
			Snippet: findSnippet(page, hrefEnd),
		})
	}

	return results
}

// findHref locates the href value of the anchor enclosing the marker at pos.
// It returns the value and the index of its closing quote.
func findHref(page string, pos int) (string, int, bool) {
	start := strings.LastIndex(page[:pos], anchorOpen)
	if start < 0 {
		return "", 0, false
	}

	limit := min(pos+hrefWindow, len(page))
	rel := strings.Index(page[start:limit], hrefAttr)
	if rel < 0 {
		return "", 0, false
	}

	valueStart := start + rel + len(hrefAttr)
	valueLen := strings.IndexByte(page[valueStart:], '"')
	if valueLen < 0 {
		return "", 0, false
	}

	valueEnd := valueStart + valueLen
	return page[valueStart:valueEnd], valueEnd, true
}

// resolveRedirect unwraps a DuckDuckGo /l/?uddg= redirect to its target.
// Any other href is returned unchanged.
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, redirectPrefix) {
		href = "https:" + href
	}

	_, after, ok := strings.Cut(href, redirectParam)
	if !ok {
		return href
	}

	target, _, _ := strings.Cut(after, "&")
	return unquote(target)
}

// unquote decodes every valid %XX escape and copies malformed ones through
// as-is. "+" stays literal.
func unquote(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}

	return strings.ToValidUTF8(b.String(), "\uFFFD")
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// findSnippet returns the text of the first snippet anchor after from.
func findSnippet(page string, from int) string {
	rel := strings.Index(page[from:], snippetMarker)
	if rel < 0 {
		return NoPreview
	}
	markerEnd := from + rel + len(snippetMarker)

	gt := strings.IndexByte(page[markerEnd:], '>')
	if gt < 0 {
		return NoPreview
	}
	textStart := markerEnd + gt + 1

	textLen := strings.Index(page[textStart:], anchorClose)
	if textLen < 0 {
		return NoPreview
	}

	return page[textStart : textStart+textLen]
}
