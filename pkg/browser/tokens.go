package browser

import (
	"sort"
	"strings"
	"sync"

	"digital.vasic.browserrunner/pkg/env"
)

// PropertyBrowsers is the property holding the enabled tokens.
const PropertyBrowsers = "browsers"

// allSimulated enables every simulated target.
const allSimulated = "hu"

// TokenSet is a set of enabled target tokens.
type TokenSet map[string]struct{}

// NewTokenSet builds a set from literal tokens without expansion.
func NewTokenSet(tokens ...string) TokenSet {
	s := make(TokenSet, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// ParseTokens parses a comma-separated token list. Spaces are
// removed and tokens lower-cased. An empty value means "hu", and
// "hu" adds the simulated token of every version.
func ParseTokens(value string) TokenSet {
	value = strings.ToLower(strings.ReplaceAll(value, " ", ""))
	if value == "" {
		value = allSimulated
	}
	s := make(TokenSet)
	for _, tok := range strings.Split(value, ",") {
		if tok != "" {
			s[tok] = struct{}{}
		}
	}
	if s.Contains(allSimulated) {
		for _, v := range AllVersions {
			s[SimulatedTarget(v).Token()] = struct{}{}
		}
	}
	return s
}

// Contains reports whether tok is enabled.
func (s TokenSet) Contains(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Sorted returns the tokens in lexical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// TokensFrom reads the browsers property from props.
func TokensFrom(props env.Properties) TokenSet {
	var value string
	if props != nil {
		value, _ = props.Lookup(PropertyBrowsers)
	}
	return ParseTokens(value)
}

var (
	enabledOnce sync.Once
	enabled     TokenSet
)

// Enabled returns the tokens configured for this process. The
// browsers property is read from env.Default on first call only.
func Enabled() TokenSet {
	enabledOnce.Do(func() {
		enabled = TokensFrom(env.Default)
	})
	return enabled
}
