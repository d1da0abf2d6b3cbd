package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// DayOffResult is the JSON payload of the dayoff command.
type DayOffResult struct {
	Date    string   `json:"date"`
	DayOff  bool     `json:"day_off"`
	WorkDay bool     `json:"work_day"`
	Reasons []string `json:"reasons,omitempty"`
}

// NewDayOffCommand creates the dayoff command.
func NewDayOffCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dayoff <date>",
		Short: "Report whether a date is a day off",
		Long: `Report whether any day-off rule produces the given date. Days that are not
days off are workdays. The day-off events responsible are listed.

Examples:
  thisdate dayoff 2016-12-26
  thisdate dayoff 2024-07-04 --calendar usa-federal`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDayOff(rootOpts, args[0], cmd)
		},
	}
}

func runDayOff(opts *RootOptions, arg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	date, err := parseDateArg("date", arg)
	if err != nil {
		return badArgument(f, err)
	}
	cal, err := opts.loadCalendar()
	if err != nil {
		return failCalendar(f, err)
	}

	result := DayOffResult{
		Date:    formatDate(date),
		DayOff:  cal.IsDayOff(date),
		WorkDay: cal.IsWorkDay(date),
		Reasons: cal.EventsOnDate(date, false, true),
	}

	return f.Emit(result, func(w io.Writer) {
		if !result.DayOff {
			fmt.Fprintf(w, "%s: workday\n", result.Date)
			return
		}
		fmt.Fprintf(w, "%s: day off (%s)\n", result.Date, strings.Join(result.Reasons, ", "))
	})
}
