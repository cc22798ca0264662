package monitor

import (
	"sync"
	"time"

	"digital.vasic.browserrunner/pkg/suite"
)

// EventCollector captures unit events and timing data. It is a
// suite.Notifier.
type EventCollector struct {
	mu       sync.RWMutex
	events   []UnitEvent
	handlers []func(UnitEvent)
	stats    CollectorStats
}

var _ suite.Notifier = (*EventCollector)(nil)

// CollectorStats holds aggregate statistics. Total counts finished
// units only.
type CollectorStats struct {
	Total            int           `json:"total"`
	Passed           int           `json:"passed"`
	Failed           int           `json:"failed"`
	Skipped          int           `json:"skipped"`
	Errored          int           `json:"errored"`
	ExpectedFailures int           `json:"expected_failures"`
	Running          int           `json:"running"`
	StartTime        time.Time     `json:"start_time"`
	Duration         time.Duration `json:"duration"`
}

// NewEventCollector creates a new event collector.
func NewEventCollector() *EventCollector {
	return &EventCollector{
		events: make([]UnitEvent, 0, 64),
		stats:  CollectorStats{StartTime: time.Now()},
	}
}

// OnEvent registers a handler to be called for each event.
func (c *EventCollector) OnEvent(handler func(UnitEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// UnitStarted emits a started event.
func (c *EventCollector) UnitStarted(d suite.Description) {
	c.Emit(startedEvent(d))
}

// UnitFinished emits the event matching the result status.
func (c *EventCollector) UnitFinished(r *suite.Result) {
	c.Emit(finishedEvent(r))
}

// Emit records an event and notifies all handlers outside the lock.
func (c *EventCollector) Emit(event UnitEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	if event.Type == EventStarted {
		c.stats.Running++
	} else {
		c.stats.Total++
		if c.stats.Running > 0 {
			c.stats.Running--
		}
	}
	switch event.Type {
	case EventPassed:
		c.stats.Passed++
	case EventFailed:
		c.stats.Failed++
	case EventSkipped:
		c.stats.Skipped++
	case EventErrored:
		c.stats.Errored++
	}
	if event.ExpectedFailure {
		c.stats.ExpectedFailures++
	}
	c.stats.Duration = time.Since(c.stats.StartTime)
	handlers := make([]func(UnitEvent), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// Events returns a copy of all collected events.
func (c *EventCollector) Events() []UnitEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]UnitEvent, len(c.events))
	copy(result, c.events)
	return result
}

// Stats returns the current aggregate statistics.
func (c *EventCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Duration = time.Since(s.StartTime)
	return s
}

// Reset clears all collected events and statistics.
func (c *EventCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.stats = CollectorStats{StartTime: time.Now()}
}
