package runner

import (
	"time"

	"digital.vasic.browserrunner/pkg/logging"
	"digital.vasic.browserrunner/pkg/metrics"
	"digital.vasic.browserrunner/pkg/suite"
)

// DefaultTimeout bounds a single attempt of a unit whose method
// does not set its own timeout.
const DefaultTimeout = 10 * time.Minute

type options struct {
	logger   logging.Logger
	metrics  metrics.Recorder
	timeout  time.Duration
	notifier suite.Notifier
}

func newOptions(opts []RunnerOption) options {
	o := options{
		logger:  logging.NullLogger{},
		metrics: metrics.NoopMetrics{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// RunnerOption configures a BrowserRunner and its ClassRunners.
type RunnerOption func(*options)

// WithLogger sets the logger used by the runner.
func WithLogger(logger logging.Logger) RunnerOption {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder used by the runner.
func WithMetrics(m metrics.Recorder) RunnerOption {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithTimeout sets the per-attempt timeout for methods that do not
// specify their own. Zero disables the default bound.
func WithTimeout(timeout time.Duration) RunnerOption {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithNotifier adds a notifier that sees every unit, in addition to
// the one passed to Run.
func WithNotifier(n suite.Notifier) RunnerOption {
	return func(o *options) {
		o.notifier = n
	}
}
