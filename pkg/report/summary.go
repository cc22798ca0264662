package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"digital.vasic.browserrunner/pkg/suite"
)

// Summary aggregates the results of one run.
type Summary struct {
	RunID            string          `json:"run_id"`
	GeneratedAt      time.Time       `json:"generated_at"`
	Suites           []string        `json:"suites"`
	Targets          []TargetSummary `json:"targets"`
	Total            int             `json:"total"`
	Passed           int             `json:"passed"`
	Failed           int             `json:"failed"`
	Skipped          int             `json:"skipped"`
	Errored          int             `json:"errored"`
	ExpectedFailures int             `json:"expected_failures"`
	TotalDuration    time.Duration   `json:"total_duration"`
	PassRate         float64         `json:"pass_rate"`
	Units            []*suite.Result `json:"units"`
}

// TargetSummary counts the results of one target token.
type TargetSummary struct {
	Target           string        `json:"target"`
	Passed           int           `json:"passed"`
	Failed           int           `json:"failed"`
	Skipped          int           `json:"skipped"`
	Errored          int           `json:"errored"`
	ExpectedFailures int           `json:"expected_failures"`
	Duration         time.Duration `json:"duration"`
}

// Total returns the number of results for the target.
func (t TargetSummary) Total() int {
	return t.Passed + t.Failed + t.Skipped + t.Errored
}

// BuildSummary aggregates reports. Targets are listed in order of
// first appearance.
func BuildSummary(reports ...*suite.Report) *Summary {
	s := &Summary{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
	}

	index := make(map[string]int)
	for _, rep := range reports {
		if rep == nil {
			continue
		}
		s.Suites = append(s.Suites, rep.Description)

		for _, res := range rep.Results {
			i, ok := index[res.Target]
			if !ok {
				i = len(s.Targets)
				index[res.Target] = i
				s.Targets = append(s.Targets, TargetSummary{Target: res.Target})
			}
			ts := &s.Targets[i]

			switch res.Status {
			case suite.StatusPassed:
				ts.Passed++
				s.Passed++
			case suite.StatusFailed:
				ts.Failed++
				s.Failed++
			case suite.StatusSkipped:
				ts.Skipped++
				s.Skipped++
			default:
				ts.Errored++
				s.Errored++
			}
			if res.ExpectedFailure {
				ts.ExpectedFailures++
				s.ExpectedFailures++
			}
			ts.Duration += res.Duration
			s.TotalDuration += res.Duration
			s.Total++
			s.Units = append(s.Units, res)
		}
	}

	if ran := s.Total - s.Skipped; ran > 0 {
		s.PassRate = float64(s.Passed) / float64(ran)
	}
	return s
}

// OK reports whether no unit failed or errored.
func (s *Summary) OK() bool {
	return s.Failed == 0 && s.Errored == 0
}

// SaveSummary writes the summary as JSON and Markdown into
// outputDir and points latest_summary.* at them.
func SaveSummary(summary *Summary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	jsonPath, err := NewJSONReporter(true).WriteFile(outputDir, summary)
	if err != nil {
		return err
	}

	ts := summary.GeneratedAt.Format("20060102_150405")
	mdPath := filepath.Join(outputDir, fmt.Sprintf("summary_%s.md", ts))
	if err := os.WriteFile(mdPath, []byte(Markdown(summary)), 0644); err != nil {
		return fmt.Errorf("failed to write Markdown summary: %w", err)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}

// Markdown renders the summary as a Markdown document.
func Markdown(summary *Summary) string {
	var sb strings.Builder

	sb.WriteString("# Browser Run Summary\n\n")
	fmt.Fprintf(&sb, "**Run ID:** %s\n\n", summary.RunID)
	fmt.Fprintf(&sb, "**Generated:** %s\n\n", summary.GeneratedAt.Format(time.RFC3339))
	if len(summary.Suites) > 0 {
		fmt.Fprintf(&sb, "**Suites:** %s\n\n", strings.Join(summary.Suites, ", "))
	}

	sb.WriteString("## Targets\n\n")
	sb.WriteString("| Target | Passed | Failed | Skipped | Errored | Expected Failures | Duration |\n")
	sb.WriteString("|--------|--------|--------|---------|---------|-------------------|----------|\n")
	for _, t := range summary.Targets {
		fmt.Fprintf(&sb, "| %s | %d | %d | %d | %d | %d | %v |\n",
			t.Target, t.Passed, t.Failed, t.Skipped, t.Errored, t.ExpectedFailures, t.Duration)
	}

	var failures []*suite.Result
	for _, u := range summary.Units {
		if u.Failed() {
			failures = append(failures, u)
		}
	}
	if len(failures) > 0 {
		sb.WriteString("\n## Failures\n\n")
		for _, u := range failures {
			fmt.Fprintf(&sb, "- **%s** %s: %s\n",
				u.Description, strings.ToUpper(string(u.Status)), u.Error)
		}
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	fmt.Fprintf(&sb, "| Total Units | %d |\n", summary.Total)
	fmt.Fprintf(&sb, "| Passed | %d |\n", summary.Passed)
	fmt.Fprintf(&sb, "| Failed | %d |\n", summary.Failed)
	fmt.Fprintf(&sb, "| Skipped | %d |\n", summary.Skipped)
	fmt.Fprintf(&sb, "| Errored | %d |\n", summary.Errored)
	fmt.Fprintf(&sb, "| Pass Rate | %.0f%% |\n", summary.PassRate*100)
	fmt.Fprintf(&sb, "| Total Duration | %v |\n", summary.TotalDuration)

	return sb.String()
}
