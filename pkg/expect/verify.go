package expect

import (
	"errors"
	"fmt"
)

// ErrAlertsMismatch is wrapped by VerifyAlerts failures.
var ErrAlertsMismatch = errors.New("alerts mismatch")

// VerifyAlerts checks that actual holds exactly the expected
// alerts, in order.
func VerifyAlerts(expected, actual []string) error {
	if len(expected) != len(actual) {
		return fmt.Errorf("%w: expected %d alerts %q, got %d %q",
			ErrAlertsMismatch, len(expected), expected, len(actual), actual)
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return fmt.Errorf("%w: alert %d: expected %q, got %q",
				ErrAlertsMismatch, i, expected[i], actual[i])
		}
	}
	return nil
}
