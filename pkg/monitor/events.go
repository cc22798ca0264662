package monitor

import (
	"time"

	"digital.vasic.browserrunner/pkg/suite"
)

// EventType represents the type of unit event.
type EventType string

const (
	EventStarted EventType = "started"
	EventPassed  EventType = "passed"
	EventFailed  EventType = "failed"
	EventSkipped EventType = "skipped"
	EventErrored EventType = "error"
)

// UnitEvent represents a lifecycle event of one unit.
type UnitEvent struct {
	Type            EventType     `json:"type"`
	Unit            string        `json:"unit"`
	Class           string        `json:"class"`
	Method          string        `json:"method"`
	Target          string        `json:"target"`
	Attempts        int           `json:"attempts,omitempty"`
	ExpectedFailure bool          `json:"expected_failure,omitempty"`
	Message         string        `json:"message,omitempty"`
	Duration        time.Duration `json:"duration,omitempty"`
	Timestamp       time.Time     `json:"timestamp"`
}

func startedEvent(d suite.Description) UnitEvent {
	return UnitEvent{
		Type:      EventStarted,
		Unit:      d.String(),
		Class:     d.Class,
		Method:    d.Method,
		Target:    d.Target.Token(),
		Timestamp: time.Now(),
	}
}

func finishedEvent(r *suite.Result) UnitEvent {
	e := startedEvent(r.Description)
	switch r.Status {
	case suite.StatusPassed:
		e.Type = EventPassed
	case suite.StatusFailed:
		e.Type = EventFailed
	case suite.StatusSkipped:
		e.Type = EventSkipped
	default:
		e.Type = EventErrored
	}
	e.Attempts = r.Attempts
	e.ExpectedFailure = r.ExpectedFailure
	e.Message = r.Error
	e.Duration = r.Duration
	return e
}
