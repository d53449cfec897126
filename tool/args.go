package tool

import (
	"strings"

	"github.com/samber/lo"
)

// Tokenize splits a tool argument on commas when it contains one and on
// whitespace otherwise. Tokens are trimmed and empty ones dropped. It is not
// a CSV or shell tokenizer: quotes and escapes have no meaning.
func Tokenize(raw string) []string {
	var parts []string
	if strings.Contains(raw, ",") {
		parts = strings.Split(raw, ",")
	} else {
		parts = strings.Fields(raw)
	}

	return lo.FilterMap(parts, func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		return p, p != ""
	})
}
