package msgutils

import (
	"strings"
)

type Invocation struct {
	Name string
	Arg  string
}

// ParseInvocation reads the "@name(arg)" form the tools banner advertises.
// A bare "@name" is an invocation with an empty argument. The argument runs
// to the last closing parenthesis so it may itself contain parentheses.
func ParseInvocation(s string) (Invocation, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "@") {
		return Invocation{}, false
	}
	s = s[1:]

	open := strings.IndexByte(s, '(')
	if open < 0 {
		if s == "" || strings.ContainsAny(s, " \t\n)") {
			return Invocation{}, false
		}
		return Invocation{Name: s}, true
	}

	if !strings.HasSuffix(s, ")") || open == 0 {
		return Invocation{}, false
	}

	name := s[:open]
	if strings.ContainsAny(name, " \t\n") {
		return Invocation{}, false
	}

	return Invocation{Name: name, Arg: s[open+1 : len(s)-1]}, true
}

// ExtractMentions returns the tool names mentioned with a leading '@' in msg.
func ExtractMentions(msg string) []string {
	var mentions []string
	for _, word := range strings.Fields(msg) {
		if !strings.HasPrefix(word, "@") {
			continue
		}
		name := word[1:]
		if i := strings.IndexByte(name, '('); i >= 0 {
			name = name[:i]
		}
		if name != "" {
			mentions = append(mentions, name)
		}
	}
	return mentions
}
