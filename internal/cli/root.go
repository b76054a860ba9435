package cli

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cpusched/internal/config"
	"cpusched/internal/logging"
)

var (
	flagConfig    string
	flagQuiet     bool
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	settings config.File
	logger   *slog.Logger
)

// NewRootCmd creates the root cobra command for the cpusched CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cpusched",
		Short: "Single-processor CPU scheduling simulator",
		Long: "cpusched replays a batch of processes through SJF, priority or round-robin\n" +
			"scheduling one tick at a time and reports the timeline, average wait and\n" +
			"average response time.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			settings, err = config.Load(flagConfig)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("quiet") {
				settings.Quiet = flagQuiet
			}
			if flags.Changed("debug") {
				settings.Debug = flagDebug
			}
			if flags.Changed("log-level") {
				settings.LogLevel = flagLogLevel
			}
			if flags.Changed("log-format") {
				settings.LogFormat = flagLogFormat
			}
			logger = logging.New(cmd.ErrOrStderr(), logging.Options{
				Level:  settings.LogLevel,
				Format: settings.LogFormat,
				Quiet:  settings.Quiet,
				Debug:  settings.Debug,
			}).With("run_id", uuid.NewString())
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Settings file (YAML)")
	root.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "s", false, "Suppress all diagnostics except errors")
	root.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "Enable debug logging (ready queue dumps)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newPoliciesCmd(),
		newConvertCmd(),
	)

	return root
}
