package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/thisdate/internal/calendar"
)

// EasterDates holds the calculated dates of one year.
type EasterDates struct {
	Year         int    `json:"year"`
	GoodFriday   string `json:"good_friday"`
	EasterSunday string `json:"easter_sunday"`
}

// NewEasterCommand creates the easter command.
func NewEasterCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "easter <from-year> <to-year>",
		Short: "List Good Friday and Easter Sunday for a range of years",
		Long: `List the Gregorian Easter Sunday and the Good Friday before it for every
year from from-year through to-year. Reversed years are swapped.

Example:
  thisdate easter 2016 2026`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEaster(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runEaster(opts *RootOptions, fromArg, toArg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	from, err := parseIntArg("from-year", fromArg)
	if err != nil {
		return badArgument(f, err)
	}
	to, err := parseIntArg("to-year", toArg)
	if err != nil {
		return badArgument(f, err)
	}
	if from > to {
		from, to = to, from
	}
	for _, check := range []error{calendar.CheckYear("from-year", from), calendar.CheckYear("to-year", to)} {
		if check != nil {
			return f.Fail(ExitFailure, errorCode(check), check.Error(), nil)
		}
	}

	years := make([]EasterDates, 0, to-from+1)
	for year := from; year <= to; year++ {
		sunday, _ := calendar.EasterSunday(year)
		friday, _ := calendar.GoodFriday(year)
		years = append(years, EasterDates{
			Year:         year,
			GoodFriday:   formatDate(friday),
			EasterSunday: formatDate(sunday),
		})
	}

	return f.Emit(years, func(w io.Writer) {
		for _, y := range years {
			fmt.Fprintf(w, "%d  Good Friday %s  Easter Sunday %s\n", y.Year, y.GoodFriday, y.EasterSunday)
		}
	})
}
