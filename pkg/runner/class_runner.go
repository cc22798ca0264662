package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"digital.vasic.browserrunner/pkg/browser"
	"digital.vasic.browserrunner/pkg/logging"
	"digital.vasic.browserrunner/pkg/suite"
)

// ClassRunner runs the test methods of a class against one target.
type ClassRunner struct {
	class  *suite.Class
	target browser.Target
	units  []*suite.Unit
	opts   options
}

var (
	_ suite.Runner     = (*ClassRunner)(nil)
	_ suite.Filterable = (*ClassRunner)(nil)
)

// NewClassRunner builds the child suite of class for target.
func NewClassRunner(class *suite.Class, target browser.Target, opts ...RunnerOption) *ClassRunner {
	return newClassRunner(class, target, newOptions(opts))
}

func newClassRunner(class *suite.Class, target browser.Target, o options) *ClassRunner {
	r := &ClassRunner{class: class, target: target, opts: o}
	for _, m := range class.Methods {
		if m.IsTest() {
			r.units = append(r.units, suite.NewUnit(class.Name, m, target))
		}
	}
	return r
}

// Description renders "Class [target]".
func (r *ClassRunner) Description() string {
	return fmt.Sprintf("%s [%s]", r.class.Name, r.target)
}

func (r *ClassRunner) Target() browser.Target { return r.target }

// Units returns the remaining units in declaration order.
func (r *ClassRunner) Units() []*suite.Unit {
	out := make([]*suite.Unit, len(r.units))
	copy(out, r.units)
	return out
}

// Filter drops the units f rejects and reports what is left. An
// empty result is not an error here.
func (r *ClassRunner) Filter(f suite.Filter) suite.FilterResult {
	kept := r.units[:0:0]
	for _, u := range r.units {
		if f.ShouldRun(u.Description()) {
			kept = append(kept, u)
		}
	}
	r.units = kept
	return suite.FilterResult{Remaining: len(kept)}
}

// Run executes the remaining units sequentially.
func (r *ClassRunner) Run(ctx context.Context, n suite.Notifier) *suite.Report {
	report := &suite.Report{Description: r.Description()}
	notify := suite.Notifiers{r.opts.notifier, n}
	for _, u := range r.units {
		report.Add(r.runUnit(ctx, u, notify))
	}
	return report
}

// RunUnit executes a single unit, notifying only the runner's own
// notifier.
func (r *ClassRunner) RunUnit(ctx context.Context, u *suite.Unit) *suite.Result {
	return r.runUnit(ctx, u, suite.Notifiers{r.opts.notifier})
}

type outcome int

const (
	outcomePassed outcome = iota
	outcomeFailed
	outcomeErrored
)

type attempt struct {
	outcome         outcome
	err             error
	expectedFailure bool
}

func (a attempt) succeeded() bool { return a.outcome == outcomePassed }

func (r *ClassRunner) runUnit(ctx context.Context, u *suite.Unit, notify suite.Notifier) *suite.Result {
	d := u.Description()
	result := &suite.Result{
		Description: d,
		Target:      d.Target.Token(),
		StartTime:   time.Now(),
	}
	if nyi := u.Method().NotYetImplemented; nyi != nil && u.NotYetImplemented() {
		result.Reason = nyi.Reason
	}

	notify.UnitStarted(d)
	r.opts.logger.Debug("unit_started", logging.StringField("unit", d.String()))

	if err := ctx.Err(); err != nil {
		result.Status = suite.StatusSkipped
		result.Error = fmt.Sprintf("not started: %v", err)
		r.finish(result, notify)
		return result
	}

	r.opts.metrics.SetActiveUnits(1)
	defer r.opts.metrics.SetActiveUnits(0)

	tries := u.Tries()
	var last attempt
	for i := 1; i <= tries; i++ {
		result.Attempts = i
		last = r.attempt(ctx, u)
		if last.succeeded() || ctx.Err() != nil {
			break
		}
		if i < tries {
			r.opts.logger.Warn("unit_retry",
				logging.StringField("unit", d.String()),
				logging.IntField("attempt", i),
				logging.IntField("tries", tries),
				logging.ErrorField(last.err),
			)
		}
	}

	switch last.outcome {
	case outcomePassed:
		result.Status = suite.StatusPassed
		result.ExpectedFailure = last.expectedFailure
	case outcomeFailed:
		result.Status = suite.StatusFailed
	default:
		result.Status = suite.StatusError
	}
	if last.err != nil {
		result.Error = last.err.Error()
	}
	r.finish(result, notify)
	return result
}

func (r *ClassRunner) finish(result *suite.Result, notify suite.Notifier) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	r.opts.metrics.RecordUnit(result.Target, string(result.Status), result.Duration)
	fields := []logging.Field{
		logging.StringField("unit", result.Description.String()),
		logging.StringField("status", string(result.Status)),
		logging.IntField("attempts", result.Attempts),
		logging.DurationField("duration_seconds", result.Duration),
	}
	if result.ExpectedFailure {
		fields = append(fields, logging.BoolField("expected_failure", true))
	}
	if result.Failed() {
		r.opts.logger.Warn("unit_finished", append(fields, logging.StringField("error", result.Error))...)
	} else {
		r.opts.logger.Info("unit_finished", fields...)
	}
	notify.UnitFinished(result)
}

// attempt runs the test function once and applies the
// not-yet-implemented inversion to its outcome.
func (r *ClassRunner) attempt(ctx context.Context, u *suite.Unit) attempt {
	a := r.invoke(ctx, u)
	if !u.NotYetImplemented() {
		return a
	}
	if a.succeeded() {
		return attempt{
			outcome: outcomeFailed,
			err: fmt.Errorf("not yet implemented for %s but test passed",
				u.Target().Version.Family()),
		}
	}
	return attempt{outcome: outcomePassed, err: a.err, expectedFailure: true}
}

var errTimedOut = errors.New("timed out")

// invoke calls the test function under the attempt deadline. A
// function that ignores its context past the deadline is abandoned.
func (r *ClassRunner) invoke(ctx context.Context, u *suite.Unit) attempt {
	timeout := u.Method().Timeout
	if timeout == 0 {
		timeout = r.opts.timeout
	}
	execCtx, cancel := ctx, context.CancelFunc(func() {})
	if timeout > 0 {
		execCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	done := make(chan attempt, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- attempt{outcome: outcomeErrored, err: fmt.Errorf("panic: %v", p)}
			}
		}()
		if err := u.Method().Func(execCtx, u); err != nil {
			done <- attempt{outcome: outcomeFailed, err: err}
			return
		}
		done <- attempt{outcome: outcomePassed}
	}()

	select {
	case a := <-done:
		if a.err != nil && errors.Is(execCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return timedOut(timeout)
		}
		return a
	case <-execCtx.Done():
		if ctx.Err() == nil {
			return timedOut(timeout)
		}
		return attempt{outcome: outcomeErrored, err: ctx.Err()}
	}
}

func timedOut(d time.Duration) attempt {
	return attempt{outcome: outcomeErrored, err: fmt.Errorf("%w after %v", errTimedOut, d)}
}
