package runner

import (
	"testing"

	"digital.vasic.browserrunner/pkg/suite"
)

// RunT runs r under go test: one subtest per target token and,
// inside it, one subtest per method.
func RunT(t *testing.T, r *BrowserRunner) {
	t.Helper()
	for _, child := range r.Children() {
		cr, ok := child.(*ClassRunner)
		if !ok {
			continue
		}
		t.Run(cr.Target().Token(), func(t *testing.T) {
			for _, u := range cr.Units() {
				t.Run(u.Method().Name, func(t *testing.T) {
					reportT(t, cr.RunUnit(t.Context(), u))
				})
			}
		})
	}
}

func reportT(t *testing.T, res *suite.Result) {
	t.Helper()
	switch res.Status {
	case suite.StatusFailed, suite.StatusError:
		t.Errorf("%s: %s after %d attempt(s): %s", res.Description, res.Status, res.Attempts, res.Error)
	case suite.StatusSkipped:
		t.Skip(res.Error)
	default:
		if res.ExpectedFailure {
			t.Logf("%s: expected failure: %s", res.Description, res.Error)
		}
	}
}
