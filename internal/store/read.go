package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/thisdate/internal/dimension"
)

// Load is one recorded populate run.
type Load struct {
	ID        string
	Kind      string
	Calendar  string
	Rows      int
	StartedAt time.Time
}

// Years returns the distinct years stored in the date dimension, ascending.
func (s *Store) Years(ctx context.Context) ([]int, error) {
	return queryYears(ctx, s.db)
}

func queryYears(ctx context.Context, q querier) ([]int, error) {
	rows, err := q.QueryContext(ctx, `SELECT DISTINCT year FROM date_dimension ORDER BY year ASC`)
	if err != nil {
		return nil, fmt.Errorf("query years: %w", err)
	}
	defer rows.Close()

	years := []int{}
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate years: %w", err)
	}
	return years, nil
}

// CountDates returns the number of rows in the date dimension.
func (s *Store) CountDates(ctx context.Context) (int, error) {
	return countRows(ctx, s.db, "date_dimension")
}

// CountTimes returns the number of rows in the time dimension.
func (s *Store) CountTimes(ctx context.Context) (int, error) {
	return countRows(ctx, s.db, "time_dimension")
}

// countRows is only called with the table names above.
func countRows(ctx context.Context, q querier, table string) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// DateByID retrieves a single date row by its yyyymmdd DateID.
// Returns sql.ErrNoRows if not found.
func (s *Store) DateByID(ctx context.Context, id int) (dimension.DateRow, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM date_dimension
		WHERE date_id = ?
	`, strings.Join(dateColumns, ", ")), id)

	return scanDateRow(row)
}

// TimeByID retrieves a single time row by its HHmmssfff TimeID.
// Returns sql.ErrNoRows if not found.
func (s *Store) TimeByID(ctx context.Context, id string) (dimension.TimeRow, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM time_dimension
		WHERE time_id = ?
	`, strings.Join(timeColumns, ", ")), id)

	return scanTimeRow(row)
}

// LoadID returns the load that inserted the given date row.
// Returns sql.ErrNoRows if not found.
func (s *Store) LoadID(ctx context.Context, dateID int) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT load_id FROM date_dimension WHERE date_id = ?`, dateID).Scan(&id)
	return id, err
}

// Loads returns every recorded load ordered by start time, then ID.
func (s *Store) Loads(ctx context.Context) ([]Load, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, calendar, row_count, started_at
		FROM loads
		ORDER BY started_at ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query loads: %w", err)
	}
	defer rows.Close()

	loads := []Load{}
	for rows.Next() {
		var l Load
		var startedAt string
		if err := rows.Scan(&l.ID, &l.Kind, &l.Calendar, &l.Rows, &startedAt); err != nil {
			return nil, fmt.Errorf("scan load: %w", err)
		}
		if l.StartedAt, err = time.Parse(instantLayout, startedAt); err != nil {
			return nil, fmt.Errorf("parse load %s started_at: %w", l.ID, err)
		}
		loads = append(loads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loads: %w", err)
	}
	return loads, nil
}

func scanDateRow(row *sql.Row) (dimension.DateRow, error) {
	var r dimension.DateRow
	var date string
	err := row.Scan(
		&r.DateID, &date, &r.DateEuro, &r.DateUSA,
		&r.DayOfMonth, &r.DayOfMonthLeadingZero,
		&r.DayOfWeekFullName, &r.DayOfWeek2LetterName, &r.DayOfWeek3LetterName,
		&r.DayOfWeekCountInMonth, &r.DayOfWeekNumber,
		&r.DayOfYear, &r.DayOfYearLeadingZeros,
		&r.EventsDayOff, &r.EventsToday, &r.EventsWorkday,
		&r.IsDayOff, &r.IsFirstDayOfMonth, &r.IsFirstWeekOfMonth,
		&r.IsLastDayOfMonth, &r.IsLastWeekOfMonth, &r.IsLeapYear,
		&r.IsWeekDay, &r.IsWeekend, &r.IsWorkDay,
		&r.MonthFull, &r.MonthShort, &r.MonthNumber, &r.MonthNumberLeadZero,
		&r.Quarter, &r.QuarterLong, &r.QuarterShort,
		&r.WeekNumber, &r.WeekNumberLeadingZero,
		&r.Year, &r.YearShort,
	)
	if err != nil {
		return dimension.DateRow{}, err
	}
	if r.Date, err = time.Parse(dateLayout, date); err != nil {
		return dimension.DateRow{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	return r, nil
}

func scanTimeRow(row *sql.Row) (dimension.TimeRow, error) {
	var r dimension.TimeRow
	var at, hour, minute, second string
	err := row.Scan(
		&r.TimeID, &at, &r.AmPm,
		&r.Hour12, &r.Hour12LeadingZero, &r.Hour24, &r.Hour24LeadingZero,
		&r.Minute, &r.MinuteLeadingZero, &r.Second, &r.SecondLeadingZero,
		&hour, &minute, &second,
		&r.Time12HourMin, &r.Time12HourMinAmPm, &r.Time12HourMinSecAmPm, &r.Time12HourMinSecMilliAmPm,
		&r.Time24HourMinCivilian, &r.Time24HourMinSecCivilian, &r.Time24HourMinSecMilliCivilian,
		&r.Time24HourMinMilitary, &r.Time24HourMinSecMilitary, &r.Time24HourMinSecMilliMilitary,
	)
	if err != nil {
		return dimension.TimeRow{}, err
	}

	targets := []struct {
		dst *time.Time
		src string
	}{
		{&r.Time, at},
		{&r.RoundToHour, hour},
		{&r.RoundToMinute, minute},
		{&r.RoundToSecond, second},
	}
	for _, t := range targets {
		if *t.dst, err = time.Parse(instantLayout, t.src); err != nil {
			return dimension.TimeRow{}, fmt.Errorf("parse instant %q: %w", t.src, err)
		}
	}
	return r, nil
}
