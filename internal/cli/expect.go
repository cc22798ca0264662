package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"digital.vasic.browserrunner/pkg/browser"
	"digital.vasic.browserrunner/pkg/logging"
	"digital.vasic.browserrunner/pkg/registry"
	"digital.vasic.browserrunner/pkg/suite"
)

func newExpectCommand(a *app) *cobra.Command {
	var (
		tokens    tokensFlag
		driver    bool
		className string
		method    string
	)
	cmd := &cobra.Command{
		Use:   "expect BANK",
		Short: "Resolve a method's expectations for every enabled target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := registry.ReadBank(args[0])
			if err != nil {
				return err
			}
			classes, err := bank.Classes()
			if err != nil {
				a.logger.Warn("bank_records_skipped", logging.ErrorField(err))
			}

			reg := registry.NewRegistry()
			for _, c := range classes {
				if err := reg.Register(c); err != nil {
					return err
				}
			}
			m, err := reg.Method(className, method)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TARGET\tALERTS\tNOT YET IMPLEMENTED\tTRIES")
			for _, t := range browser.Targets(tokens.resolve(cmd, a), driver) {
				u := suite.NewUnit(className, m, t)
				fmt.Fprintf(w, "%s\t[%s]\t%t\t%d\n",
					t, strings.Join(u.ExpectedAlerts(), ", "), u.NotYetImplemented(), u.Tries())
			}
			return w.Flush()
		},
	}
	tokens.register(cmd)
	cmd.Flags().BoolVar(&driver, "driver", false, "include native targets")
	cmd.Flags().StringVar(&className, "class", "", "class name")
	cmd.Flags().StringVar(&method, "method", "", "method name")
	_ = cmd.MarkFlagRequired("class")
	_ = cmd.MarkFlagRequired("method")
	return cmd
}
