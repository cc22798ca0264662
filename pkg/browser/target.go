package browser

import (
	"fmt"
	"strings"
)

const simulatedPrefix = "hu-"

// Target is one environment a test unit runs against: a browser
// version driven either natively (a real browser through a driver)
// or by the simulated engine.
type Target struct {
	Version Version
	Native  bool
}

// NativeTarget returns the native-driven target for v.
func NativeTarget(v Version) Target { return Target{Version: v, Native: true} }

// SimulatedTarget returns the simulated-engine target for v.
func SimulatedTarget(v Version) Target { return Target{Version: v} }

// Token returns the enabling token, e.g. "ff78" or "hu-ie".
func (t Target) Token() string {
	tok := strings.ToLower(t.Version.Nickname())
	if t.Native {
		return tok
	}
	return simulatedPrefix + tok
}

func (t Target) String() string {
	if t.Native {
		return t.Version.Nickname()
	}
	return simulatedPrefix + t.Version.Nickname()
}

// Targets maps the enabled tokens to targets using the fixed token
// table. Native targets are considered only when driverCapable is
// set. On the native path ff78 suppresses ff; on the simulated path
// the two Firefox tokens are independent. Unknown tokens are ignored.
func Targets(tokens TokenSet, driverCapable bool) []Target {
	var out []Target
	if driverCapable {
		if tokens.Contains("chrome") {
			out = append(out, NativeTarget(Chrome))
		}
		if tokens.Contains("ff78") {
			out = append(out, NativeTarget(Firefox78))
		} else if tokens.Contains("ff") {
			out = append(out, NativeTarget(Firefox))
		}
		if tokens.Contains("ie") {
			out = append(out, NativeTarget(InternetExplorer))
		}
	}

	if tokens.Contains("hu-chrome") {
		out = append(out, SimulatedTarget(Chrome))
	}
	if tokens.Contains("hu-ff78") {
		out = append(out, SimulatedTarget(Firefox78))
	}
	if tokens.Contains("hu-ff") {
		out = append(out, SimulatedTarget(Firefox))
	}
	if tokens.Contains("hu-ie") {
		out = append(out, SimulatedTarget(InternetExplorer))
	}
	return out
}

// ParseTarget parses a token such as "ff78" or "hu-ie" back into
// its target.
func ParseTarget(token string) (Target, error) {
	tok := strings.ToLower(strings.TrimSpace(token))
	native := !strings.HasPrefix(tok, simulatedPrefix)
	tok = strings.TrimPrefix(tok, simulatedPrefix)
	for _, v := range AllVersions {
		if strings.ToLower(v.Nickname()) == tok {
			return Target{Version: v, Native: native}, nil
		}
	}
	return Target{}, fmt.Errorf("unknown target %q", token)
}

// MarshalText encodes the target as its token.
func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.Token()), nil
}

// UnmarshalText decodes a token produced by MarshalText.
func (t *Target) UnmarshalText(b []byte) error {
	parsed, err := ParseTarget(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
