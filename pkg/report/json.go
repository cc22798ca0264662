package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// JSONReporter renders summaries as JSON.
type JSONReporter struct {
	pretty bool
}

var _ Reporter = (*JSONReporter)(nil)

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

// Generate renders the summary.
func (r *JSONReporter) Generate(summary *Summary) ([]byte, error) {
	if r.pretty {
		return json.MarshalIndent(summary, "", "  ")
	}
	return json.Marshal(summary)
}

// Write renders the summary to w.
func (r *JSONReporter) Write(w io.Writer, summary *Summary) error {
	data, err := r.Generate(summary)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes the summary to dir as summary_<timestamp>.json
// and returns the path.
func (r *JSONReporter) WriteFile(dir string, summary *Summary) (string, error) {
	data, err := r.Generate(summary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}
	p := filepath.Join(dir, fmt.Sprintf("summary_%s.json",
		summary.GeneratedAt.Format("20060102_150405")))
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON summary: %w", err)
	}
	return p, nil
}
