// Package suite defines the records a browser suite is built from
// (classes, methods and their expectation records) and the units,
// filters, results and notifications exchanged while running it.
package suite

import (
	"context"
	"time"

	"digital.vasic.browserrunner/pkg/expect"
)

// TestFunc is the code of a test method. It receives the unit it
// runs as, which carries the target and the resolved expectations.
type TestFunc func(ctx context.Context, u *Unit) error

// Class groups test methods that are expanded together.
type Class struct {
	// Name identifies the class in descriptions and reports.
	Name string `json:"name"`
	// Driver marks a class that can run against natively driven
	// browsers in addition to the simulated engine.
	Driver bool `json:"driver"`
	// Methods in declaration order.
	Methods []*Method `json:"methods"`
}

// Method is a test method together with the records that
// configure how it is expected to behave per target.
type Method struct {
	Name string   `json:"name"`
	Func TestFunc `json:"-"`

	Alerts            *expect.Alerts            `json:"alerts,omitempty"`
	AlertsStandards   *expect.AlertsStandards   `json:"alerts_standards,omitempty"`
	StandardsMode     bool                      `json:"standards_mode,omitempty"`
	NotYetImplemented *expect.NotYetImplemented `json:"not_yet_implemented,omitempty"`
	BuggyWebDriver    *expect.BuggyWebDriver    `json:"buggy_web_driver,omitempty"`
	Tries             expect.Tries              `json:"tries,omitempty"`

	// Timeout bounds a single attempt. Zero uses the runner
	// default.
	Timeout time.Duration `json:"timeout,omitempty"`
}

// IsTest reports whether m carries test code.
func (m *Method) IsTest() bool { return m != nil && m.Func != nil }

// HasTestMethods reports whether at least one method is a test.
func (c *Class) HasTestMethods() bool {
	if c == nil {
		return false
	}
	for _, m := range c.Methods {
		if m.IsTest() {
			return true
		}
	}
	return false
}

// Method returns the method called name, or nil.
func (c *Class) Method(name string) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}
