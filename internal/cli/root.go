// Package cli implements the browserrunner command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"digital.vasic.browserrunner/pkg/env"
	"digital.vasic.browserrunner/pkg/logging"
)

const (
	propLogLevel  = "log.level"
	propLogFormat = "log.format"
)

// app is the state shared by all commands of one invocation.
type app struct {
	props     *env.DefaultLoader
	logger    logging.Logger
	envFiles  []string
	verbose   bool
	logFormat string
	logFile   string
}

// Execute runs the root command against the process-wide
// properties.
func Execute() {
	if err := NewRootCommand(env.Default).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree. Properties are loaded into
// props before any subcommand runs.
func NewRootCommand(props *env.DefaultLoader) *cobra.Command {
	a := &app{props: props, logger: logging.NullLogger{}}

	root := &cobra.Command{
		Use:   "browserrunner",
		Short: "Browser multi-target test runner tooling",
		Long: `browserrunner inspects how test classes expand over browser targets.

Targets are enabled with the "browsers" property (a comma-separated
token list such as "chrome,ff78,hu"), read from the environment or a
.env file.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.logger.Close()
		},
	}

	root.PersistentFlags().StringSliceVar(&a.envFiles, "env", nil,
		"env files to load (default: .env if present)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"enable debug logging")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "",
		"log format: text or json (default: log.format property, then text)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "",
		"also append JSON logs to this file")

	root.AddCommand(
		newTargetsCommand(a),
		newCapsCommand(a),
		newExpectCommand(a),
		newReportCommand(a),
		newValidateCommand(a),
		newConfigCommand(a),
		newServeCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if len(a.envFiles) > 0 {
		if err := a.props.Load(a.envFiles...); err != nil {
			return err
		}
	} else if err := a.props.LoadIfExists(".env"); err != nil {
		return err
	}

	levelName := a.props.GetWithDefault(propLogLevel, "info")
	if a.verbose {
		levelName = "debug"
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}

	format := a.logFormat
	if format == "" {
		format = a.props.GetWithDefault(propLogFormat, logging.FormatText)
	}

	console, err := logging.New(logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	a.logger = console

	if a.logFile != "" {
		file, err := logging.New(logging.Config{
			Level:      level,
			Format:     logging.FormatJSON,
			OutputPath: a.logFile,
		})
		if err != nil {
			return fmt.Errorf("failed to configure logging: %w", err)
		}
		a.logger = logging.NewMultiLogger(console, file)
	}
	a.logger.Debug("properties_loaded", logging.IntField("count", len(a.props.All())))
	return nil
}
