package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

// BetweenOptions holds flags for the between command.
type BetweenOptions struct {
	*RootOptions
	Years bool
}

// BetweenResult is the JSON payload of the between command.
type BetweenResult struct {
	Name  string   `json:"name"`
	From  string   `json:"from"`
	To    string   `json:"to"`
	Dates []string `json:"dates"`
}

// NewBetweenCommand creates the between command.
func NewBetweenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BetweenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "between <name> <from> <to>",
		Short: "List the dates of an event in a range",
		Long: `List every date the named event produces between from and to, inclusive.
Names are matched case-insensitively. With --years, from and to are years and
the range covers January 1 of from through December 31 of to.

Examples:
  thisdate between "Christmas Day" 2016-01-01 2022-12-31
  thisdate between "Good Friday" 2016 2026 --years`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBetween(opts, args[0], args[1], args[2], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Years, "years", false, "interpret from and to as years")

	return cmd
}

func runBetween(opts *BetweenOptions, name, fromArg, toArg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	var dates []time.Time
	if opts.Years {
		fromYear, err := parseIntArg("from", fromArg)
		if err != nil {
			return badArgument(f, err)
		}
		toYear, err := parseIntArg("to", toArg)
		if err != nil {
			return badArgument(f, err)
		}
		cal, err := opts.loadCalendar()
		if err != nil {
			return failCalendar(f, err)
		}
		dates, err = cal.EventDatesBetweenYears(name, fromYear, toYear)
		if err != nil {
			return f.Fail(ExitFailure, errorCode(err), err.Error(), nil)
		}
	} else {
		from, err := parseDateArg("from", fromArg)
		if err != nil {
			return badArgument(f, err)
		}
		to, err := parseDateArg("to", toArg)
		if err != nil {
			return badArgument(f, err)
		}
		cal, err := opts.loadCalendar()
		if err != nil {
			return failCalendar(f, err)
		}
		dates = cal.EventDatesBetween(name, from, to)
	}

	result := BetweenResult{Name: name, From: fromArg, To: toArg, Dates: formatDates(dates)}
	return f.Emit(result, func(w io.Writer) {
		if len(result.Dates) == 0 {
			fmt.Fprintf(w, "%s: no dates between %s and %s\n", name, fromArg, toArg)
			return
		}
		for _, d := range result.Dates {
			fmt.Fprintln(w, d)
		}
	})
}
