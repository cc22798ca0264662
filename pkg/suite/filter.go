package suite

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter selects the units that should run.
type Filter interface {
	ShouldRun(d Description) bool
	Describe() string
}

// FilterFunc adapts a function to Filter.
type FilterFunc func(d Description) bool

func (f FilterFunc) ShouldRun(d Description) bool { return f(d) }
func (f FilterFunc) Describe() string            { return "func" }

type describedFilter struct {
	desc string
	fn   func(Description) bool
}

func (f describedFilter) ShouldRun(d Description) bool { return f.fn(d) }
func (f describedFilter) Describe() string            { return f.desc }

// All keeps every unit.
var All Filter = describedFilter{desc: "all", fn: func(Description) bool { return true }}

// MatchMethods keeps units whose method is one of names.
func MatchMethods(names ...string) Filter {
	return describedFilter{
		desc: "methods " + strings.Join(names, ","),
		fn: func(d Description) bool {
			return slices.Contains(names, d.Method)
		},
	}
}

// MatchTokens keeps units whose target token is one of tokens.
func MatchTokens(tokens ...string) Filter {
	return describedFilter{
		desc: "targets " + strings.Join(tokens, ","),
		fn: func(d Description) bool {
			return slices.Contains(tokens, d.Target.Token())
		},
	}
}

// Glob keeps units whose Path matches pattern, e.g.
// "*/testTitle*/hu-*" or "HTMLDocumentTest/**".
func Glob(pattern string) (Filter, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, doublestar.ErrBadPattern)
	}
	return describedFilter{
		desc: "glob " + pattern,
		fn: func(d Description) bool {
			// The pattern is valid, so Match cannot fail.
			ok, _ := doublestar.Match(pattern, d.Path())
			return ok
		},
	}, nil
}

// FilterResult is what a filterable child reports after applying a
// filter: how many of its units remain. A child with nothing left is
// not an error on its own.
type FilterResult struct {
	Remaining int
}

// Empty reports whether no units remain.
func (r FilterResult) Empty() bool { return r.Remaining == 0 }
