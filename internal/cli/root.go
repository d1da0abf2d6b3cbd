package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roach88/thisdate/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	// Config is resolved in PersistentPreRunE from the config file, the
	// environment and the flags bound to viper.
	Config *config.Config

	viper *viper.Viper
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the thisdate CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{viper: viper.New()}

	cmd := &cobra.Command{
		Use:   "thisdate",
		Short: "thisdate - business calendar rules and date arithmetic",
		Long: `Build calendars from recurrence rules (holidays, paydays, weekly days off)
and answer questions about them: which events fall on a date, whether a day
is a workday, what date is n workdays away. Calendars come from presets or
definition files and can be exported to iCalendar or a SQLite date dimension.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return opts.resolveConfig()
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.ConfigFile, "config", "", "config file (default: $HOME/.config/thisdate/config.yaml)")
	flags.String("calendar", "", "preset calendar name (default: nyse)")
	flags.String("definition", "", "calendar definition file (.yaml, .yml or .cue)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")

	_ = opts.viper.BindPFlag(config.KeyCalendarPreset, flags.Lookup("calendar"))
	_ = opts.viper.BindPFlag(config.KeyCalendarDefinition, flags.Lookup("definition"))
	_ = opts.viper.BindPFlag(config.KeyLoggingLevel, flags.Lookup("log-level"))
	_ = opts.viper.BindPFlag(config.KeyLoggingFormat, flags.Lookup("log-format"))

	cmd.AddCommand(NewEventsCommand(opts))
	cmd.AddCommand(NewDayOffCommand(opts))
	cmd.AddCommand(NewWorkdaysCommand(opts))
	cmd.AddCommand(NewBetweenCommand(opts))
	cmd.AddCommand(NewRulesCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewPopulateCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewEasterCommand(opts))

	return cmd
}

// resolveConfig reads the config file and environment, applies bound flags
// and installs the configured logger.
func (o *RootOptions) resolveConfig() error {
	if err := config.Read(o.viper, o.ConfigFile); err != nil {
		return WrapExitError(ExitCommandError, "config", err)
	}
	cfg, err := config.Decode(o.viper)
	if err != nil {
		return WrapExitError(ExitCommandError, "config", err)
	}
	if err := config.SetupLogging(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return WrapExitError(ExitCommandError, "logging", err)
	}
	o.Config = cfg
	return nil
}

// BindFlag binds a command-local flag to a config key on the root's viper
// instance.
func (o *RootOptions) BindFlag(key string, cmd *cobra.Command, flag string) {
	_ = o.viper.BindPFlag(key, cmd.Flags().Lookup(flag))
}

// formatter returns an OutputFormatter writing to cmd's streams.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// settings returns the resolved configuration, falling back to Defaults for
// commands executed without the root's PersistentPreRunE (as in tests).
func (o *RootOptions) settings() *config.Config {
	if o.Config == nil {
		d := config.Defaults()
		o.Config = &d
	}
	return o.Config
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
