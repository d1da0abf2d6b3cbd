package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/roach88/thisdate/internal/calendar"
	"github.com/roach88/thisdate/internal/config"
	"github.com/roach88/thisdate/internal/dimension"
	"github.com/roach88/thisdate/internal/store"
)

// PopulateOptions holds flags for the populate command.
type PopulateOptions struct {
	*RootOptions
	From          int
	To            int
	TimeIncrement time.Duration
	Progress      bool
}

// PopulateOutput is the JSON payload of the populate command.
type PopulateOutput struct {
	Database     string `json:"database"`
	Calendar     string `json:"calendar"`
	LoadID       string `json:"load_id,omitempty"`
	Rows         int    `json:"rows"`
	Years        []int  `json:"years"`
	SkippedYears []int  `json:"skipped_years"`
	TimeLoadID   string `json:"time_load_id,omitempty"`
	TimeRows     int    `json:"time_rows"`
}

// NewPopulateCommand creates the populate command.
func NewPopulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PopulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "populate --from <year> --to <year>",
		Short: "Populate the SQLite date and time dimensions",
		Long: `Write one date dimension row per day of the selected years into the SQLite
warehouse, with the calendar's events and day-off flags. Years already present
are skipped. With --time-increment the time dimension is filled as well, once.

Examples:
  thisdate populate --from 2016 --to 2026
  thisdate populate --db warehouse.db --from 2024 --to 2024 --time-increment 15m --progress`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPopulate(opts, cmd)
		},
	}

	cmd.Flags().String("db", "", "SQLite database path (default: thisdate.db)")
	cmd.Flags().IntVar(&opts.From, "from", 0, "first year to populate")
	cmd.Flags().IntVar(&opts.To, "to", 0, "last year to populate")
	cmd.Flags().DurationVar(&opts.TimeIncrement, "time-increment", 0, "also populate the time dimension at this increment (e.g. 15m)")
	cmd.Flags().BoolVar(&opts.Progress, "progress", false, "show a progress bar on stderr")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	rootOpts.BindFlag(config.KeyDatabasePath, cmd, "db")

	return cmd
}

func runPopulate(opts *PopulateOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if err := dimension.CheckYears(opts.From, opts.To); err != nil {
		return f.Fail(ExitCommandError, errorCode(err), err.Error(), nil)
	}
	cal, err := opts.loadCalendar()
	if err != nil {
		return failCalendar(f, err)
	}

	dbPath := opts.settings().Database.Path
	st, err := store.Open(dbPath)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}
	defer st.Close()
	f.VerboseLog("Opened %s", dbPath)

	var dateOpts []store.PopulateOption
	var bar *progressbar.ProgressBar
	if opts.Progress {
		days := calendar.DaysBetween(calendar.Date(opts.From, time.January, 1), calendar.Date(opts.To, time.December, 31)) + 1
		bar = newProgressBar(f.GetErrWriter(), days, "Populating date dimension")
		dateOpts = append(dateOpts, store.WithProgress(bar))
	}

	ctx := cmd.Context()
	res, err := st.PopulateDateDimension(ctx, cal, opts.From, opts.To, dateOpts...)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeStore, err.Error(), nil)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	out := PopulateOutput{
		Database:     dbPath,
		Calendar:     cal.Name(),
		LoadID:       res.LoadID,
		Rows:         res.Rows,
		Years:        nonNilInts(res.Years),
		SkippedYears: nonNilInts(res.SkippedYears),
	}

	if opts.TimeIncrement > 0 {
		var timeOpts []store.PopulateOption
		var timeBar *progressbar.ProgressBar
		if opts.Progress {
			steps := int((24*time.Hour + opts.TimeIncrement - 1) / opts.TimeIncrement)
			timeBar = newProgressBar(f.GetErrWriter(), steps, "Populating time dimension")
			timeOpts = append(timeOpts, store.WithProgress(timeBar))
		}
		tres, err := st.PopulateTimeDimension(ctx, opts.TimeIncrement, timeOpts...)
		if err != nil {
			return f.Fail(ExitFailure, ErrCodeStore, err.Error(), nil)
		}
		if timeBar != nil {
			_ = timeBar.Finish()
		}
		out.TimeLoadID = tres.LoadID
		out.TimeRows = tres.Rows
	}

	return f.Emit(out, func(w io.Writer) {
		fmt.Fprintf(w, "%s: %d date row(s) for %v", out.Database, out.Rows, out.Years)
		if len(out.SkippedYears) > 0 {
			fmt.Fprintf(w, ", skipped %v", out.SkippedYears)
		}
		fmt.Fprintln(w)
		if opts.TimeIncrement > 0 {
			fmt.Fprintf(w, "%s: %d time row(s) at %s\n", out.Database, out.TimeRows, opts.TimeIncrement)
		}
	})
}

func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}

func nonNilInts(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
