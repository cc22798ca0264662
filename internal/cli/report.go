package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"digital.vasic.browserrunner/pkg/logging"
	"digital.vasic.browserrunner/pkg/report"
)

func newReportCommand(a *app) *cobra.Command {
	var history string
	cmd := &cobra.Command{
		Use:   "report SUMMARY.json",
		Short: "Render a saved run summary as Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSummary(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("summary_loaded",
				logging.StringField("run_id", s.RunID),
				logging.IntField("units", s.Total),
			)
			if history != "" {
				if err := report.AppendToHistory(history, s); err != nil {
					return err
				}
				a.logger.Debug("history_appended", logging.StringField("path", history))
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Markdown(s))
			if !s.OK() {
				return fmt.Errorf("run %s had %d failed and %d errored units", s.RunID, s.Failed, s.Errored)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&history, "history", "", "append the units to this JSONL history file")
	return cmd
}

func readSummary(path string) (*report.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}
	var s report.Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse summary %s: %w", path, err)
	}
	return &s, nil
}
