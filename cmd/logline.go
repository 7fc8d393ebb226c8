package cmd

import (
	"github.com/nightowlcasino/logline/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LogLine is the root command of every logline tool.
func LogLine() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.Application,
		Short: config.ApplicationFull,
		Long: `
logline turns structured log events into the JSON log lines published to a
message broker. Events are read as JSON records, one per line, and every
configured field is rendered with an ${renderer} layout.

Settings are taken from flags or LOGLINE_ prefixed environment variables.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("log-level", "info", "level of logline's own diagnostics (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-path", "", "directory for a rotating diagnostics file, disabled when empty")
	cmd.PersistentFlags().Bool("include-level", true, "include the event level in every log line")
	cmd.PersistentFlags().String("layout", "${message}", "layout rendering the message of every log line")
	cmd.PersistentFlags().StringArray("field", nil, "configured field as name=template, repeatable, later names win")

	viper.BindPFlag("logging.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.path", cmd.PersistentFlags().Lookup("log-path"))
	viper.BindPFlag("format.include_level", cmd.PersistentFlags().Lookup("include-level"))
	viper.BindPFlag("format.layout", cmd.PersistentFlags().Lookup("layout"))
	viper.BindPFlag("format.fields", cmd.PersistentFlags().Lookup("field"))

	cmd.AddCommand(formatCommand())
	cmd.AddCommand(serveCommand())

	return cmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	config.SetEnv()
	return LogLine().Execute()
}
