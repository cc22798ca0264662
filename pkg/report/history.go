package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"digital.vasic.browserrunner/pkg/suite"
)

// HistoricalEntry represents one unit result in the historical
// log.
type HistoricalEntry struct {
	RunID           string    `json:"run_id"`
	Timestamp       time.Time `json:"timestamp"`
	Unit            string    `json:"unit"`
	Target          string    `json:"target"`
	Status          string    `json:"status"`
	Attempts        int       `json:"attempts"`
	ExpectedFailure bool      `json:"expected_failure,omitempty"`
	Duration        string    `json:"duration"`
}

// AppendToHistory appends one JSON line per unit of summary to the
// log at historyPath.
func AppendToHistory(historyPath string, summary *Summary) error {
	f, err := os.OpenFile(historyPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, u := range summary.Units {
		if err := enc.Encode(entryFor(summary.RunID, u)); err != nil {
			return fmt.Errorf("failed to write history entry: %w", err)
		}
	}
	return nil
}

func entryFor(runID string, u *suite.Result) HistoricalEntry {
	return HistoricalEntry{
		RunID:           runID,
		Timestamp:       u.EndTime,
		Unit:            u.Description.String(),
		Target:          u.Target,
		Status:          string(u.Status),
		Attempts:        u.Attempts,
		ExpectedFailure: u.ExpectedFailure,
		Duration:        u.Duration.String(),
	}
}
