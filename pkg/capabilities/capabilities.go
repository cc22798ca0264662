// Package capabilities resolves a browser name and ambient
// properties into the capability descriptor a WebDriver session is
// requested with.
package capabilities

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"digital.vasic.browserrunner/pkg/env"
)

// Capability keys.
const (
	KeyBrowserName  = "browserName"
	KeyVersion      = "version"
	KeyPlatform     = "platform"
	KeyMarionette   = "marionette"
	KeyNativeEvents = "nativeEvents"
)

// Platform values.
const (
	PlatformAny     = "ANY"
	PlatformWindows = "WINDOWS"
	PlatformMac     = "MAC"
)

// Ambient properties read by Of.
const (
	PropertyVersion      = "selenium.browser.version"
	PropertyNativeEvents = "selenium.browser.native_events"
	PropertyMarionette   = "webdriver.firefox.marionette"
)

// ErrUnknownBrowser is returned for a browser outside the supported
// set.
var ErrUnknownBrowser = errors.New("cannot determine browser config to use")

// Capabilities is a WebDriver capability descriptor.
type Capabilities map[string]any

func (c Capabilities) str(k string) string {
	if v, ok := c[k].(string); ok {
		return v
	}
	return ""
}

func (c Capabilities) BrowserName() string { return c.str(KeyBrowserName) }
func (c Capabilities) Version() string     { return c.str(KeyVersion) }
func (c Capabilities) Platform() string    { return c.str(KeyPlatform) }

// Is reports whether the boolean capability k is set to true.
func (c Capabilities) Is(k string) bool {
	v, ok := c[k].(bool)
	return ok && v
}

// SetCapability sets k to v.
func (c Capabilities) SetCapability(k string, v any) {
	c[k] = v
}

// SetVersion sets the browser version.
func (c Capabilities) SetVersion(v string) {
	c[KeyVersion] = v
}

// Desired wraps the descriptor in the legacy new-session request
// body.
func (c Capabilities) Desired() map[string]any {
	return map[string]any{"desiredCapabilities": map[string]any(c)}
}

// MarshalIndent renders the descriptor as indented JSON.
func (c Capabilities) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(map[string]any(c), "", "  ")
}

// Browser names a supported browser.
type Browser string

const (
	None       Browser = "none"
	Chrome     Browser = "chrome"
	Firefox    Browser = "ff"
	HTMLUnit   Browser = "htmlunit"
	IE         Browser = "ie"
	OperaBlink Browser = "operablink"
	Safari     Browser = "safari"
)

// Browsers lists the supported browsers, None excluded.
var Browsers = []Browser{Chrome, Firefox, HTMLUnit, IE, OperaBlink, Safari}

// ParseBrowser maps a name to a Browser. Matching ignores case; an
// empty name is None.
func ParseBrowser(name string) (Browser, error) {
	n := Browser(strings.ToLower(strings.TrimSpace(name)))
	if n == "" || n == None {
		return None, nil
	}
	if _, ok := base[n]; ok {
		return n, nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownBrowser)
}

type descriptor struct {
	browserName string
	platform    string
}

var base = map[Browser]descriptor{
	Chrome:     {"chrome", PlatformAny},
	Firefox:    {"firefox", PlatformAny},
	HTMLUnit:   {"htmlunit", PlatformAny},
	IE:         {"internet explorer", PlatformWindows},
	OperaBlink: {"opera", PlatformAny},
	Safari:     {"safari", PlatformMac},
}

// Of resolves the descriptor for b. None yields (nil, nil); the
// caller must handle the absence. Each call returns a fresh map.
func Of(b Browser, props env.Properties) (Capabilities, error) {
	if b == None {
		return nil, nil
	}
	d, ok := base[b]
	if !ok {
		return nil, fmt.Errorf("%q: %w", string(b), ErrUnknownBrowser)
	}
	if props == nil {
		props = env.MapProperties{}
	}

	caps := Capabilities{
		KeyBrowserName: d.browserName,
		KeyVersion:     "",
		KeyPlatform:    d.platform,
	}
	if b == Firefox {
		caps.SetCapability(KeyMarionette, env.Bool(props, PropertyMarionette, true))
	}

	if v, ok := props.Lookup(PropertyVersion); ok {
		caps.SetVersion(v)
	}
	caps.SetCapability(KeyNativeEvents, env.Bool(props, PropertyNativeEvents, false))
	return caps, nil
}
