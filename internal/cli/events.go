package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// EventsOptions holds flags for the events command.
type EventsOptions struct {
	*RootOptions
	Workdays bool
	DaysOff  bool
}

// EventsResult is the JSON payload of the events command.
type EventsResult struct {
	Date   string   `json:"date"`
	Events []string `json:"events"`
}

// NewEventsCommand creates the events command.
func NewEventsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EventsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "events <date>",
		Short: "List the events falling on a date",
		Long: `List the names of every rule that produces the given date, yearly rules
first, then monthly, weekly and dated ones, each in registration order.

Examples:
  thisdate events 2016-01-01
  thisdate events 2018-11-22 --workdays=false
  thisdate events 2024-03-15 --definition desk.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Workdays, "workdays", true, "include events that are workdays")
	cmd.Flags().BoolVar(&opts.DaysOff, "days-off", true, "include events that are days off")

	return cmd
}

func runEvents(opts *EventsOptions, arg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	date, err := parseDateArg("date", arg)
	if err != nil {
		return badArgument(f, err)
	}
	cal, err := opts.loadCalendar()
	if err != nil {
		return failCalendar(f, err)
	}

	names := cal.EventsOnDate(date, opts.Workdays, opts.DaysOff)
	if names == nil {
		names = []string{}
	}

	return f.Emit(EventsResult{Date: formatDate(date), Events: names}, func(w io.Writer) {
		if len(names) == 0 {
			fmt.Fprintf(w, "%s: no events\n", formatDate(date))
			return
		}
		for _, name := range names {
			fmt.Fprintln(w, name)
		}
	})
}
