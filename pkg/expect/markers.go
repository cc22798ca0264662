package expect

import (
	"slices"

	"digital.vasic.browserrunner/pkg/browser"
)

// defaultMarked is used when a marker names no browsers.
var defaultMarked = []browser.Family{
	browser.FamilyIE, browser.FamilyFF, browser.FamilyChrome,
}

// NotYetImplemented marks a method as known-broken. When the active
// family is covered, a failure is the expected outcome and a pass
// is reported as a failure.
type NotYetImplemented struct {
	// Browsers lists the covered families; nil means IE, FF and
	// CHROME.
	Browsers []browser.Family `json:"browsers,omitempty" yaml:"browsers,omitempty"`
	// Reason is optional free text.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Covers reports whether v is marked. FF covers every Firefox
// version; FF78 covers only Firefox 78.
func (n *NotYetImplemented) Covers(v browser.Version) bool {
	if n == nil {
		return false
	}
	return covers(n.Browsers, v)
}

// BuggyWebDriver marks a method that passes in a real browser but
// not when the browser is driven natively. It only applies to
// native targets.
type BuggyWebDriver struct {
	// Browsers lists the covered families; nil means IE, FF and
	// CHROME.
	Browsers []browser.Family `json:"browsers,omitempty" yaml:"browsers,omitempty"`
}

// Covers reports whether v is marked, with the same matching as
// NotYetImplemented.
func (b *BuggyWebDriver) Covers(v browser.Version) bool {
	if b == nil {
		return false
	}
	return covers(b.Browsers, v)
}

func covers(marked []browser.Family, v browser.Version) bool {
	if marked == nil {
		marked = defaultMarked
	}
	return slices.Contains(marked, v.Family()) || slices.Contains(marked, v.Parent())
}

// Tries is the number of attempts a unit gets. The unit fails only
// if every attempt fails.
type Tries int

// Count returns the attempt count, at least 1.
func (t Tries) Count() int {
	if t < 1 {
		return 1
	}
	return int(t)
}
