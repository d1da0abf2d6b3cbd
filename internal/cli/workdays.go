package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// WorkdaysResult is the JSON payload of the workdays command.
type WorkdaysResult struct {
	From   string `json:"from"`
	N      int    `json:"n"`
	Result string `json:"result"`
}

// NewWorkdaysCommand creates the workdays command.
func NewWorkdaysCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "workdays <date> <n>",
		Short: "Move a date by n workdays",
		Long: `Step from date one day at a time, skipping days off, until n workdays have
been counted. Negative n steps backwards; separate it with -- so it is not
read as a flag.

Examples:
  thisdate workdays 2016-01-01 16
  thisdate workdays 2016-01-26 -- -16`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkdays(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runWorkdays(opts *RootOptions, dateArg, nArg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	date, err := parseDateArg("date", dateArg)
	if err != nil {
		return badArgument(f, err)
	}
	n, err := parseIntArg("n", nArg)
	if err != nil {
		return badArgument(f, err)
	}
	cal, err := opts.loadCalendar()
	if err != nil {
		return failCalendar(f, err)
	}

	moved, err := cal.AddWorkdays(date, n)
	if err != nil {
		return f.Fail(ExitFailure, errorCode(err), err.Error(), nil)
	}

	result := WorkdaysResult{From: formatDate(date), N: n, Result: formatDate(moved)}
	return f.Emit(result, func(w io.Writer) {
		fmt.Fprintln(w, result.Result)
	})
}
