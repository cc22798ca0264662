package metrics

import "time"

// Recorder defines the interface for recording unit metrics.
type Recorder interface {
	// RecordUnit records a finished unit.
	RecordUnit(target, status string, duration time.Duration)
	// IncrementSuiteTotal increments the total suite counter.
	IncrementSuiteTotal()
	// SetActiveUnits sets the gauge of running units.
	SetActiveUnits(count int)
}

// NoopMetrics is a no-op implementation of Recorder useful for
// testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordUnit(_, _ string, _ time.Duration) {}
func (NoopMetrics) IncrementSuiteTotal()                    {}
func (NoopMetrics) SetActiveUnits(_ int)                    {}
