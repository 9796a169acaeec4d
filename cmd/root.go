package cmd

import (
	"context"
	"errors"

	"github.com/bitrise-io/codeguardian/common"
	"github.com/bitrise-io/codeguardian/dispatcher"
	"github.com/bitrise-io/codeguardian/extension"
	"github.com/bitrise-io/codeguardian/llm"
	"github.com/bitrise-io/codeguardian/logger"
	"github.com/bitrise-io/codeguardian/terminal"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	logLevel   string
	configPath string

	// Resolved in PersistentPreRunE, before any subcommand runs
	settings common.Settings
	active   = &deferredDispatcher{}
)

var rootCmd = &cobra.Command{
	Use:   "codeguardian",
	Short: "CodeGuardian - explain, debug and audit code with a local model",
	Long: `CodeGuardian sends a piece of code to a locally running inference service and prints
the answer as Markdown. It can explain code, find and fix bugs, look for security
vulnerabilities, or run any instruction you give it.

The selection is read from a file (optionally narrowed with --lines) or from stdin.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(logLevel)
		logger.Debugf("Log level set to: %s", logLevel)

		var err error
		settings, err = resolveSettings(cmd)
		if err != nil {
			return reportSetupError(cmd, err)
		}
		logger.Debugf("Using settings: %+v", settings)

		client, err := llm.NewLLM(settings)
		if err != nil {
			return reportSetupError(cmd, err)
		}
		active.target = dispatcher.New(client, settings)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command and handles errors
func Execute() error {
	defer logger.Sync()
	return rootCmd.ExecuteContext(context.Background())
}

// Action commands silence cobra's error output because they report failures
// themselves, so setup errors have to be printed here.
func reportSetupError(cmd *cobra.Command, err error) error {
	if cmd.SilenceErrors {
		pterm.Error.WithWriter(cmd.ErrOrStderr()).Println(err.Error())
	}
	return err
}

// deferredDispatcher lets actions be registered before the settings they
// depend on have been parsed.
type deferredDispatcher struct {
	target *dispatcher.Dispatcher
}

func (d *deferredDispatcher) Dispatch(ctx context.Context, op dispatcher.Operation, selection string) (string, error) {
	if d.target == nil {
		return "", errors.New("dispatcher used before settings were loaded")
	}
	return d.target.Dispatch(ctx, op, selection)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"Set the logging level (debug, info, warn, error, dpanic, panic, fatal)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Settings file (default: codeguardian.yml in the working directory or below)")
	addSettingsFlags(rootCmd)

	extension.Activate(terminal.New(rootCmd, terminal.OSStreams()), active)
}
