package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"digital.vasic.browserrunner/pkg/browser"
	"digital.vasic.browserrunner/pkg/capabilities"
	"digital.vasic.browserrunner/pkg/env"
)

var knownProperties = []struct {
	key, help string
}{
	{browser.PropertyBrowsers, "enabled browser tokens"},
	{capabilities.PropertyVersion, "browser version stamped into capabilities"},
	{capabilities.PropertyNativeEvents, "enable native events"},
	{capabilities.PropertyMarionette, "drive Firefox through marionette"},
	{propLogLevel, "log level"},
	{propLogFormat, "log format"},
}

func newConfigCommand(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PROPERTY\tVALUE\tDESCRIPTION")

			known := make(map[string]bool, len(knownProperties))
			for _, p := range knownProperties {
				known[p.key] = true
				value := "<unset>"
				if v, ok := a.props.Lookup(p.key); ok {
					value = env.Redact(p.key, v)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.key, value, p.help)
			}

			if all {
				loaded := a.props.All()
				keys := make([]string, 0, len(loaded))
				for k := range loaded {
					if !known[k] {
						keys = append(keys, k)
					}
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(w, "%s\t%s\t\n", k, env.Redact(k, a.props.Get(k)))
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "also list other loaded properties")
	return cmd
}
