package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"digital.vasic.browserrunner/pkg/browser"
	"digital.vasic.browserrunner/pkg/logging"
)

// tokensFlag resolves the enabled tokens: the --browsers flag when
// given, the browsers property otherwise.
type tokensFlag struct {
	value string
}

func (f *tokensFlag) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.value, "browsers", "",
		"comma-separated browser tokens (default: browsers property)")
}

func (f *tokensFlag) resolve(cmd *cobra.Command, a *app) browser.TokenSet {
	if cmd.Flags().Changed("browsers") {
		return browser.ParseTokens(f.value)
	}
	return browser.TokensFrom(a.props)
}

func newTargetsCommand(a *app) *cobra.Command {
	var (
		tokens tokensFlag
		driver bool
	)
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the targets a class expands to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set := tokens.resolve(cmd, a)
			targets := browser.Targets(set, driver)
			a.logger.Debug("targets_resolved",
				logging.StringField("tokens", strings.Join(set.Sorted(), ",")),
				logging.IntField("targets", len(targets)),
			)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TOKEN\tTARGET\tMODE")
			for _, t := range targets {
				mode := "simulated"
				if t.Native {
					mode = "native"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", t.Token(), t, mode)
			}
			return w.Flush()
		},
	}
	tokens.register(cmd)
	cmd.Flags().BoolVar(&driver, "driver", false, "expand for a class that drives real browsers")
	return cmd
}
