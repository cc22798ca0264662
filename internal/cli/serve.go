package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"digital.vasic.browserrunner/pkg/logging"
	"digital.vasic.browserrunner/pkg/metrics"
	"digital.vasic.browserrunner/pkg/monitor"
	"digital.vasic.browserrunner/pkg/report"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve SUMMARY.json...",
		Short: "Serve saved run summaries on the monitor dashboard",
		Long: `serve replays the units of saved summaries through the monitor and
exposes them on /dashboard, /stats, /ws and /metrics until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries := make([]*report.Summary, 0, len(args))
			for _, p := range args {
				s, err := readSummary(p)
				if err != nil {
					return err
				}
				summaries = append(summaries, s)
			}

			srv := newReplayServer(addr, summaries, a.logger)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.logger.Info("monitor_listening", logging.StringField("addr", addr))
			return srv.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8090", "listen address")
	return cmd
}

// newReplayServer builds a monitor whose collector and metrics hold
// the units of summaries.
func newReplayServer(addr string, summaries []*report.Summary, logger logging.Logger) *monitor.Server {
	runID := ""
	if len(summaries) > 0 {
		runID = summaries[0].RunID
	}

	collector := monitor.NewEventCollector()
	dashboard := monitor.NewDashboardData(runID)
	srv := monitor.NewServer(addr, collector, dashboard, logger)

	pm := metrics.NewPrometheusMetrics(nil)
	srv.Handle("/metrics", pm.Handler())

	ok := true
	for _, s := range summaries {
		for range s.Suites {
			pm.IncrementSuiteTotal()
		}
		for _, r := range s.Units {
			collector.UnitFinished(r)
			pm.RecordUnit(r.Target, string(r.Status), r.Duration)
		}
		ok = ok && s.OK()
	}
	if ok {
		dashboard.SetStatus("completed")
	} else {
		dashboard.SetStatus("failed")
	}
	return srv
}
