package suite

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Status is the outcome of a unit.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// Result captures the outcome of one unit.
type Result struct {
	Description Description `json:"description"`

	// Target repeats Description.Target as its token for reports.
	Target string `json:"target"`

	// Status is the final outcome after retries and inversion.
	Status Status `json:"status"`

	// Attempts is the number of times the test code ran.
	Attempts int `json:"attempts"`

	// ExpectedFailure is set when a not-yet-implemented unit
	// failed as expected and was therefore reported as passed.
	ExpectedFailure bool `json:"expected_failure,omitempty"`

	// Reason is the not-yet-implemented reason, if any.
	Reason string `json:"reason,omitempty"`

	// Error is the message of the last failed attempt.
	Error string `json:"error,omitempty"`

	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// Failed reports whether the result counts against the run.
func (r *Result) Failed() bool {
	return r.Status == StatusFailed || r.Status == StatusError
}

// Report aggregates unit results under one description, a class or
// a single target of a class.
type Report struct {
	Description string    `json:"description"`
	Results     []*Result `json:"results"`
}

// Add appends results to the report.
func (r *Report) Add(results ...*Result) {
	r.Results = append(r.Results, results...)
}

// Merge appends every result of other.
func (r *Report) Merge(other *Report) {
	if other != nil {
		r.Add(other.Results...)
	}
}

// Counts returns the number of results per status.
func (r *Report) Counts() map[Status]int {
	out := make(map[Status]int, 4)
	for _, res := range r.Results {
		out[res.Status]++
	}
	return out
}

// Passed reports whether no unit failed or errored.
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if res.Failed() {
			return false
		}
	}
	return true
}

// Err returns every failed or errored unit as one error, or nil.
func (r *Report) Err() error {
	var errs *multierror.Error
	for _, res := range r.Results {
		if res.Failed() {
			errs = multierror.Append(errs, fmt.Errorf(
				"%s: %s: %s", res.Description, res.Status, res.Error,
			))
		}
	}
	return errs.ErrorOrNil()
}
