// Package expect holds the per-method expectation records of a
// browser suite and resolves them for a browser version.
package expect

import (
	"encoding/json"

	"digital.vasic.browserrunner/pkg/browser"
)

// EmptyDefault marks an unset value in banks that spell it out.
// A field holding exactly this single element counts as undefined.
const EmptyDefault = "~InTerNal_To_BrowSeRRunNer#@$"

// Alerts holds the expected alert messages of a test method. A nil
// field is undefined; a non-nil empty field expects no alerts.
type Alerts struct {
	// Value applies to every browser when nothing more specific is
	// defined.
	Value []string `json:"value" yaml:"value"`
	// IE applies to Internet Explorer.
	IE []string `json:"ie" yaml:"ie"`
	// FF applies to any Firefox; FF78 overrides it.
	FF []string `json:"ff" yaml:"ff"`
	// FF78 applies to Firefox 78.
	FF78 []string `json:"ff78" yaml:"ff78"`
	// Chrome applies to the latest Chrome.
	Chrome []string `json:"chrome" yaml:"chrome"`
	// Default applies when no family field is defined.
	Default []string `json:"default" yaml:"default"`
}

// AlertsStandards has the same shape as Alerts but is only
// consulted in standards mode.
type AlertsStandards Alerts

// defined returns the defined fields keyed by their encoded name.
// Undefined fields are left out; defined empty ones are kept.
func (a Alerts) defined() map[string][]string {
	out := make(map[string][]string)
	for key, v := range map[string][]string{
		"value": a.Value, "ie": a.IE, "ff": a.FF, "ff78": a.FF78,
		"chrome": a.Chrome, "default": a.Default,
	} {
		if v != nil {
			out[key] = v
		}
	}
	return out
}

// MarshalJSON writes only the defined fields.
func (a Alerts) MarshalJSON() ([]byte, error) { return json.Marshal(a.defined()) }

// MarshalYAML writes only the defined fields.
func (a Alerts) MarshalYAML() (any, error) { return a.defined(), nil }

// MarshalJSON writes only the defined fields.
func (a AlertsStandards) MarshalJSON() ([]byte, error) { return Alerts(a).MarshalJSON() }

// MarshalYAML writes only the defined fields.
func (a AlertsStandards) MarshalYAML() (any, error) { return Alerts(a).MarshalYAML() }

// Resolve returns the expected alerts for v.
func (a *Alerts) Resolve(v browser.Version) []string {
	if a == nil {
		return []string{}
	}
	return resolve(a, v)
}

// Resolve returns the expected standards-mode alerts for v.
func (a *AlertsStandards) Resolve(v browser.Version) []string {
	if a == nil {
		return []string{}
	}
	return resolve((*Alerts)(a), v)
}

// resolve applies the precedence exact family, family without
// version, Default, Value. It always returns a non-nil slice.
func resolve(a *Alerts, v browser.Version) []string {
	candidates := [][]string{a.forFamily(v.Family())}
	if v.Parent() != v.Family() {
		candidates = append(candidates, a.forFamily(v.Parent()))
	}
	candidates = append(candidates, a.Default, a.Value)

	for _, c := range candidates {
		if defined(c) {
			out := make([]string, len(c))
			copy(out, c)
			return out
		}
	}
	return []string{}
}

func (a *Alerts) forFamily(f browser.Family) []string {
	switch f {
	case browser.FamilyChrome:
		return a.Chrome
	case browser.FamilyIE:
		return a.IE
	case browser.FamilyFF:
		return a.FF
	case browser.FamilyFF78:
		return a.FF78
	}
	return nil
}

func defined(values []string) bool {
	if values == nil {
		return false
	}
	return !(len(values) == 1 && values[0] == EmptyDefault)
}
