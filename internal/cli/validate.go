package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"digital.vasic.browserrunner/pkg/logging"
	"digital.vasic.browserrunner/pkg/registry"
)

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate BANK...",
		Short: "Check the structure of expectation bank files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invalid := 0
			for _, path := range args {
				errs := registry.ValidateFile(path)
				if len(errs) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
					continue
				}
				invalid++
				for _, e := range errs {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, e)
				}
				a.logger.Warn("bank_invalid",
					logging.StringField("path", path),
					logging.IntField("issues", len(errs)))
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d bank files are invalid", invalid, len(args))
			}
			return nil
		},
	}
}
