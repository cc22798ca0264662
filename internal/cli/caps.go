package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"digital.vasic.browserrunner/pkg/capabilities"
	"digital.vasic.browserrunner/pkg/logging"
)

func newCapsCommand(a *app) *cobra.Command {
	var desired bool
	cmd := &cobra.Command{
		Use:   "caps BROWSER",
		Short: "Print the capabilities a browser session is requested with",
		Long: `Print the capability descriptor for BROWSER as JSON.

BROWSER is one of chrome, ff, htmlunit, ie, operablink, safari or none.
The selenium.browser.version, selenium.browser.native_events and
webdriver.firefox.marionette properties are applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := capabilities.ParseBrowser(args[0])
			if err != nil {
				return err
			}
			caps, err := capabilities.Of(b, a.props)
			if err != nil {
				return err
			}
			if caps == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "null")
				return nil
			}
			a.logger.Debug("capabilities_resolved",
				logging.StringField("browser", string(b)),
				logging.StringField("browser_name", caps.BrowserName()),
			)

			var out []byte
			if desired {
				out, err = capabilities.Capabilities(caps.Desired()).MarshalIndent()
			} else {
				out, err = caps.MarshalIndent()
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&desired, "desired", false, "wrap in a desiredCapabilities session body")
	return cmd
}
