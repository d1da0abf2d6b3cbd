package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/thisdate/internal/calendar"
	"github.com/roach88/thisdate/internal/dimension"
)

// Load kinds recorded in the loads table.
const (
	LoadKindDate = "date"
	LoadKindTime = "time"
)

const (
	dateLayout    = "2006-01-02"
	instantLayout = time.RFC3339Nano
)

// PopulateResult summarizes one populate run.
type PopulateResult struct {
	// LoadID is empty when nothing was inserted.
	LoadID string
	Kind   string
	Rows   int

	// Years lists inserted years; SkippedYears those already present.
	// Both are empty for time loads.
	Years        []int
	SkippedYears []int
}

var dateColumns = []string{
	"date_id", "date", "date_euro", "date_usa",
	"day_of_month", "day_of_month_leading_zero",
	"day_of_week_full_name", "day_of_week_2_letter_name", "day_of_week_3_letter_name",
	"day_of_week_count_in_month", "day_of_week_number",
	"day_of_year", "day_of_year_leading_zeros",
	"events_day_off", "events_today", "events_workday",
	"is_day_off", "is_first_day_of_month", "is_first_week_of_month",
	"is_last_day_of_month", "is_last_week_of_month", "is_leap_year",
	"is_week_day", "is_weekend", "is_work_day",
	"month_full", "month_short", "month_number", "month_number_lead_zero",
	"quarter", "quarter_long", "quarter_short",
	"week_number", "week_number_leading_zero",
	"year", "year_short",
}

var timeColumns = []string{
	"time_id", "time", "am_pm",
	"hour_12", "hour_12_leading_zero", "hour_24", "hour_24_leading_zero",
	"minute", "minute_leading_zero", "second", "second_leading_zero",
	"round_to_hour", "round_to_minute", "round_to_second",
	"time_12_hour_min", "time_12_hour_min_am_pm", "time_12_hour_min_sec_am_pm", "time_12_hour_min_sec_milli_am_pm",
	"time_24_hour_min_civilian", "time_24_hour_min_sec_civilian", "time_24_hour_min_sec_milli_civilian",
	"time_24_hour_min_military", "time_24_hour_min_sec_military", "time_24_hour_min_sec_milli_military",
}

func insertSQL(table, conflict string, columns []string) string {
	cols := append(append([]string{}, columns...), "load_id")
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(%s) DO NOTHING",
		table, strings.Join(cols, ", "), placeholders, conflict)
}

var (
	insertDateSQL = insertSQL("date_dimension", "date_id", dateColumns)
	insertTimeSQL = insertSQL("time_dimension", "time_id", timeColumns)
)

func dateValues(r dimension.DateRow) []any {
	return []any{
		r.DateID, r.Date.Format(dateLayout), r.DateEuro, r.DateUSA,
		r.DayOfMonth, r.DayOfMonthLeadingZero,
		r.DayOfWeekFullName, r.DayOfWeek2LetterName, r.DayOfWeek3LetterName,
		r.DayOfWeekCountInMonth, r.DayOfWeekNumber,
		r.DayOfYear, r.DayOfYearLeadingZeros,
		r.EventsDayOff, r.EventsToday, r.EventsWorkday,
		r.IsDayOff, r.IsFirstDayOfMonth, r.IsFirstWeekOfMonth,
		r.IsLastDayOfMonth, r.IsLastWeekOfMonth, r.IsLeapYear,
		r.IsWeekDay, r.IsWeekend, r.IsWorkDay,
		r.MonthFull, r.MonthShort, r.MonthNumber, r.MonthNumberLeadZero,
		r.Quarter, r.QuarterLong, r.QuarterShort,
		r.WeekNumber, r.WeekNumberLeadingZero,
		r.Year, r.YearShort,
	}
}

func timeValues(r dimension.TimeRow) []any {
	return []any{
		r.TimeID, formatInstant(r.Time), r.AmPm,
		r.Hour12, r.Hour12LeadingZero, r.Hour24, r.Hour24LeadingZero,
		r.Minute, r.MinuteLeadingZero, r.Second, r.SecondLeadingZero,
		formatInstant(r.RoundToHour), formatInstant(r.RoundToMinute), formatInstant(r.RoundToSecond),
		r.Time12HourMin, r.Time12HourMinAmPm, r.Time12HourMinSecAmPm, r.Time12HourMinSecMilliAmPm,
		r.Time24HourMinCivilian, r.Time24HourMinSecCivilian, r.Time24HourMinSecMilliCivilian,
		r.Time24HourMinMilitary, r.Time24HourMinSecMilitary, r.Time24HourMinSecMilliMilitary,
	}
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(instantLayout)
}

// PopulateDateDimension inserts one row per day for every year in
// [startYear, endYear] that is not already stored. Rows reflect cal at the
// time of the call. The whole run is one transaction.
//
// Returns an OUT_OF_RANGE calendar error for years outside 1..9999 and an
// INVALID_ARGUMENT error when startYear > endYear.
func (s *Store) PopulateDateDimension(ctx context.Context, cal *calendar.Calendar, startYear, endYear int, opts ...PopulateOption) (PopulateResult, error) {
	result := PopulateResult{Kind: LoadKindDate}
	if err := dimension.CheckYears(startYear, endYear); err != nil {
		return result, err
	}
	o := collectPopulateOptions(opts)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("populate dates: begin tx: %w", err)
	}
	defer tx.Rollback()

	stored, err := queryYears(ctx, tx)
	if err != nil {
		return result, fmt.Errorf("populate dates: %w", err)
	}
	present := make(map[int]bool, len(stored))
	for _, y := range stored {
		present[y] = true
	}

	for year := startYear; year <= endYear; year++ {
		if present[year] {
			result.SkippedYears = append(result.SkippedYears, year)
			continue
		}
		result.Years = append(result.Years, year)
	}
	if len(result.Years) == 0 {
		for _, year := range result.SkippedYears {
			if err := o.progress.Add(daysInYear(year)); err != nil {
				return result, fmt.Errorf("populate dates: progress: %w", err)
			}
		}
		slog.Info("date dimension already populated",
			"start_year", startYear,
			"end_year", endYear)
		return result, nil
	}

	loadID := o.ids.Generate()
	if err := insertLoad(ctx, tx, loadID, LoadKindDate, cal.Name(), o.clock.Now()); err != nil {
		return result, fmt.Errorf("populate dates: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertDateSQL)
	if err != nil {
		return result, fmt.Errorf("populate dates: prepare: %w", err)
	}
	defer stmt.Close()

	for year := startYear; year <= endYear; year++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if present[year] {
			if err := o.progress.Add(daysInYear(year)); err != nil {
				return result, fmt.Errorf("populate dates: progress: %w", err)
			}
			continue
		}

		rows, err := dimension.YearRows(cal, year)
		if err != nil {
			return result, err
		}
		for _, row := range rows {
			n, err := execInsert(ctx, stmt, append(dateValues(row), loadID))
			if err != nil {
				return result, fmt.Errorf("populate dates: insert %s: %w", row.Date.Format(dateLayout), err)
			}
			result.Rows += n
		}
		if err := o.progress.Add(len(rows)); err != nil {
			return result, fmt.Errorf("populate dates: progress: %w", err)
		}
	}

	if err := finishLoad(ctx, tx, loadID, result.Rows); err != nil {
		return result, fmt.Errorf("populate dates: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("populate dates: commit: %w", err)
	}
	result.LoadID = loadID

	slog.Info("date dimension populated",
		"load_id", loadID,
		"calendar", cal.Name(),
		"years", len(result.Years),
		"skipped", len(result.SkippedYears),
		"rows", result.Rows)
	return result, nil
}

// PopulateTimeDimension fills the time table with one row every increment
// of the zero day, starting at midnight. It does nothing when the table
// already holds rows. Returns an INVALID_ARGUMENT calendar error when
// increment <= 0.
func (s *Store) PopulateTimeDimension(ctx context.Context, increment time.Duration, opts ...PopulateOption) (PopulateResult, error) {
	result := PopulateResult{Kind: LoadKindTime}
	rows, err := dimension.TimeRows(increment)
	if err != nil {
		return result, err
	}
	o := collectPopulateOptions(opts)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("populate times: begin tx: %w", err)
	}
	defer tx.Rollback()

	existing, err := countRows(ctx, tx, "time_dimension")
	if err != nil {
		return result, fmt.Errorf("populate times: %w", err)
	}
	if existing > 0 {
		if err := o.progress.Add(len(rows)); err != nil {
			return result, fmt.Errorf("populate times: progress: %w", err)
		}
		slog.Info("time dimension already populated", "rows", existing)
		return result, nil
	}

	loadID := o.ids.Generate()
	if err := insertLoad(ctx, tx, loadID, LoadKindTime, "", o.clock.Now()); err != nil {
		return result, fmt.Errorf("populate times: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertTimeSQL)
	if err != nil {
		return result, fmt.Errorf("populate times: prepare: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		n, err := execInsert(ctx, stmt, append(timeValues(row), loadID))
		if err != nil {
			return result, fmt.Errorf("populate times: insert %s: %w", row.TimeID, err)
		}
		result.Rows += n
	}
	if err := o.progress.Add(len(rows)); err != nil {
		return result, fmt.Errorf("populate times: progress: %w", err)
	}

	if err := finishLoad(ctx, tx, loadID, result.Rows); err != nil {
		return result, fmt.Errorf("populate times: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("populate times: commit: %w", err)
	}
	result.LoadID = loadID

	slog.Info("time dimension populated",
		"load_id", loadID,
		"increment", increment.String(),
		"rows", result.Rows)
	return result, nil
}

func daysInYear(year int) int {
	if calendar.IsLeapYear(year) {
		return 366
	}
	return 365
}

func execInsert(ctx context.Context, stmt *sql.Stmt, args []any) (int, error) {
	res, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

func insertLoad(ctx context.Context, tx *sql.Tx, id, kind, calendarName string, startedAt time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO loads (id, kind, calendar, row_count, started_at)
		VALUES (?, ?, ?, 0, ?)
	`, id, kind, calendarName, formatInstant(startedAt))
	if err != nil {
		return fmt.Errorf("insert load: %w", err)
	}
	return nil
}

func finishLoad(ctx context.Context, tx *sql.Tx, id string, rows int) error {
	if _, err := tx.ExecContext(ctx, `UPDATE loads SET row_count = ? WHERE id = ?`, rows, id); err != nil {
		return fmt.Errorf("update load: %w", err)
	}
	return nil
}
