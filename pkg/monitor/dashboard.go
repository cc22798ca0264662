package monitor

import (
	"sync"
	"time"
)

// DashboardData provides a real-time snapshot of a run.
type DashboardData struct {
	mu        sync.RWMutex
	RunID     string               `json:"run_id"`
	StartTime time.Time            `json:"start_time"`
	Status    string               `json:"status"` // running, completed, failed
	Units     map[string]UnitState `json:"units"`
	Summary   DashboardSummary     `json:"summary"`
}

// UnitState is the current state of one unit.
type UnitState struct {
	Unit      string        `json:"unit"`
	Target    string        `json:"target"`
	Status    string        `json:"status"`
	StartTime *time.Time    `json:"start_time,omitempty"`
	EndTime   *time.Time    `json:"end_time,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Attempts  int           `json:"attempts,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// DashboardSummary holds aggregate stats for the dashboard.
type DashboardSummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Skipped  int     `json:"skipped"`
	Errored  int     `json:"errored"`
	Running  int     `json:"running"`
	PassRate float64 `json:"pass_rate"`
	Elapsed  string  `json:"elapsed"`
}

// NewDashboardData creates a new dashboard data instance.
func NewDashboardData(runID string) *DashboardData {
	return &DashboardData{
		RunID:     runID,
		StartTime: time.Now(),
		Status:    "running",
		Units:     make(map[string]UnitState),
	}
}

// UpdateFromEvent updates dashboard state from a unit event.
func (d *DashboardData) UpdateFromEvent(event UnitEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	state, exists := d.Units[event.Unit]
	if !exists {
		state = UnitState{Unit: event.Unit, Target: event.Target}
	}

	if event.Type == EventStarted {
		state.Status = "running"
		state.StartTime = &now
	} else {
		state.Status = string(event.Type)
		state.EndTime = &now
		state.Duration = event.Duration
		state.Attempts = event.Attempts
		state.Message = event.Message
	}

	d.Units[event.Unit] = state
	d.recalcSummary()
}

func (d *DashboardData) recalcSummary() {
	s := DashboardSummary{}
	for _, u := range d.Units {
		s.Total++
		switch EventType(u.Status) {
		case EventPassed:
			s.Passed++
		case EventFailed:
			s.Failed++
		case EventSkipped:
			s.Skipped++
		case EventErrored:
			s.Errored++
		default:
			s.Running++
		}
	}
	if completed := s.Passed + s.Failed + s.Errored; completed > 0 {
		s.PassRate = float64(s.Passed) / float64(completed) * 100
	}
	s.Elapsed = time.Since(d.StartTime).Round(time.Millisecond).String()
	d.Summary = s
}

// Snapshot returns a copy of the current dashboard state.
func (d *DashboardData) Snapshot() *DashboardData {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap := &DashboardData{
		RunID:     d.RunID,
		StartTime: d.StartTime,
		Status:    d.Status,
		Summary:   d.Summary,
		Units:     make(map[string]UnitState, len(d.Units)),
	}
	for k, v := range d.Units {
		snap.Units[k] = v
	}
	return snap
}

// SetStatus sets the overall run status.
func (d *DashboardData) SetStatus(status string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Status = status
}

// BuildDashboardData replays the events of collector into a new
// dashboard.
func BuildDashboardData(runID string, collector *EventCollector) *DashboardData {
	data := NewDashboardData(runID)
	for _, event := range collector.Events() {
		data.UpdateFromEvent(event)
	}
	return data
}
