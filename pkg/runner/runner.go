// Package runner expands a test class into one child suite per
// enabled browser target and executes the resulting units.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"digital.vasic.browserrunner/pkg/browser"
	"digital.vasic.browserrunner/pkg/logging"
	"digital.vasic.browserrunner/pkg/registry"
	"digital.vasic.browserrunner/pkg/suite"
)

var (
	// ErrNoTestMethods is returned when a class has nothing to run.
	ErrNoTestMethods = errors.New("class has no test methods")

	// ErrNoTestsRemain is returned when a filter leaves no unit in
	// any child suite.
	ErrNoTestsRemain = errors.New("no tests remain after filtering")
)

// BrowserRunner is the parent suite of a class: one child per
// enabled target, run in construction order.
type BrowserRunner struct {
	class    *suite.Class
	children []suite.Runner
	opts     options
}

var _ suite.Runner = (*BrowserRunner)(nil)

// New builds the per-target children of class for the enabled
// tokens. Native targets are built only for driver-capable classes.
func New(class *suite.Class, tokens browser.TokenSet, opts ...RunnerOption) (*BrowserRunner, error) {
	if !class.HasTestMethods() {
		name := "<nil>"
		if class != nil {
			name = class.Name
		}
		return nil, fmt.Errorf("%s: %w", name, ErrNoTestMethods)
	}

	o := newOptions(opts)
	r := &BrowserRunner{class: class, opts: o}

	targets := browser.Targets(tokens, class.Driver)
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		r.children = append(r.children, newClassRunner(class, t, o))
		names = append(names, t.String())
	}

	o.logger.Info("suite_constructed",
		logging.StringField("class", class.Name),
		logging.BoolField("driver", class.Driver),
		logging.StringField("targets", strings.Join(names, ",")),
	)
	return r, nil
}

// NewFromRegistry builds one BrowserRunner per registered class,
// ordered by class name.
func NewFromRegistry(reg registry.Registry, tokens browser.TokenSet, opts ...RunnerOption) ([]*BrowserRunner, error) {
	var out []*BrowserRunner
	for _, class := range reg.List() {
		r, err := New(class, tokens, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to build suite %s: %w", class.Name, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Description returns the class name.
func (r *BrowserRunner) Description() string { return r.class.Name }

// Class returns the class the runner was built from.
func (r *BrowserRunner) Class() *suite.Class { return r.class }

// Children returns the per-target child suites.
func (r *BrowserRunner) Children() []suite.Runner {
	out := make([]suite.Runner, len(r.children))
	copy(out, r.children)
	return out
}

// Units returns every unit of every child, in run order.
func (r *BrowserRunner) Units() []*suite.Unit {
	var out []*suite.Unit
	for _, child := range r.children {
		if l, ok := child.(interface{ Units() []*suite.Unit }); ok {
			out = append(out, l.Units()...)
		}
	}
	return out
}

// Count returns the number of units left to run.
func (r *BrowserRunner) Count() int { return len(r.Units()) }

// Filter narrows every filterable child. A child left with nothing
// is kept empty; only when no unit remains anywhere is
// ErrNoTestsRemain returned.
func (r *BrowserRunner) Filter(f suite.Filter) error {
	total := 0
	for _, child := range r.children {
		fc, ok := child.(suite.Filterable)
		if !ok {
			continue
		}
		res := fc.Filter(f)
		total += res.Remaining
		r.opts.logger.Debug("filter_applied",
			logging.StringField("suite", child.Description()),
			logging.StringField("filter", f.Describe()),
			logging.IntField("remaining", res.Remaining),
		)
	}
	if total == 0 {
		return fmt.Errorf("%s: %s: %w", r.class.Name, f.Describe(), ErrNoTestsRemain)
	}
	r.opts.logger.Info("filter_applied",
		logging.StringField("class", r.class.Name),
		logging.StringField("filter", f.Describe()),
		logging.IntField("remaining", total),
	)
	return nil
}

// Run runs the children in order and merges their reports.
func (r *BrowserRunner) Run(ctx context.Context, n suite.Notifier) *suite.Report {
	r.opts.metrics.IncrementSuiteTotal()
	report := &suite.Report{Description: r.class.Name}
	for _, child := range r.children {
		report.Merge(child.Run(ctx, n))
	}
	return report
}
