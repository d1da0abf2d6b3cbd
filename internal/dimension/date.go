package dimension

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/thisdate/internal/calendar"
)

// EventSeparator joins event names in the Events* columns.
const EventSeparator = "|"

// DateRow is one day of the date dimension.
type DateRow struct {
	Date                  time.Time
	DateEuro              string
	DateID                int
	DateUSA               string
	DayOfMonth            int
	DayOfMonthLeadingZero string
	DayOfWeekFullName     string
	DayOfWeek2LetterName  string
	DayOfWeek3LetterName  string
	DayOfWeekCountInMonth int
	DayOfWeekNumber       int
	DayOfYear             int
	DayOfYearLeadingZeros string
	EventsDayOff          string
	EventsToday           string
	EventsWorkday         string
	IsDayOff              bool
	IsFirstDayOfMonth     bool
	IsFirstWeekOfMonth    bool
	IsLastDayOfMonth      bool
	IsLastWeekOfMonth     bool
	IsLeapYear            bool
	IsWeekDay             bool
	IsWeekend             bool
	IsWorkDay             bool
	MonthFull             string
	MonthShort            string
	MonthNumber           int
	MonthNumberLeadZero   string
	Quarter               int
	QuarterLong           string
	QuarterShort          string
	WeekNumber            int
	WeekNumberLeadingZero string
	Year                  int
	YearShort             string
}

// BuildDate returns the dimension row for date as seen by cal.
func BuildDate(cal *calendar.Calendar, date time.Time) DateRow {
	date = calendar.Truncate(date)
	weekday := date.Weekday().String()
	week := calendar.WeekOfYear(date)
	dayOff := cal.IsDayOff(date)

	return DateRow{
		Date:                  date,
		DateEuro:              date.Format("2006/1/2"),
		DateID:                calendar.DateID(date),
		DateUSA:               date.Format("1/2/2006"),
		DayOfMonth:            date.Day(),
		DayOfMonthLeadingZero: date.Format("02"),
		DayOfWeekFullName:     weekday,
		DayOfWeek2LetterName:  weekday[:2],
		DayOfWeek3LetterName:  weekday[:3],
		DayOfWeekCountInMonth: calendar.DayOfWeekCountInMonth(date),
		DayOfWeekNumber:       int(date.Weekday()),
		DayOfYear:             date.YearDay(),
		DayOfYearLeadingZeros: fmt.Sprintf("%03d", date.YearDay()),
		EventsDayOff:          strings.Join(cal.EventsOnDate(date, false, true), EventSeparator),
		EventsToday:           strings.Join(cal.EventsOnDate(date, true, true), EventSeparator),
		EventsWorkday:         strings.Join(cal.EventsOnDate(date, true, false), EventSeparator),
		IsDayOff:              dayOff,
		IsFirstDayOfMonth:     calendar.IsFirstDayOfMonth(date),
		IsFirstWeekOfMonth:    calendar.IsFirstWeekOfMonth(date),
		IsLastDayOfMonth:      calendar.IsLastDayOfMonth(date),
		IsLastWeekOfMonth:     calendar.IsLastWeekOfMonth(date),
		IsLeapYear:            calendar.IsLeapYear(date.Year()),
		IsWeekDay:             calendar.IsWeekday(date),
		IsWeekend:             calendar.IsWeekend(date),
		IsWorkDay:             !dayOff,
		MonthFull:             date.Month().String(),
		MonthShort:            date.Format("Jan"),
		MonthNumber:           int(date.Month()),
		MonthNumberLeadZero:   date.Format("01"),
		Quarter:               calendar.Quarter(date),
		QuarterLong:           calendar.QuarterLong(date),
		QuarterShort:          calendar.QuarterShort(date),
		WeekNumber:            week,
		WeekNumberLeadingZero: fmt.Sprintf("%02d", week),
		Year:                  date.Year(),
		YearShort:             fmt.Sprintf("%02d", date.Year()%100),
	}
}

// YearRows returns one row per day of year.
func YearRows(cal *calendar.Calendar, year int) ([]DateRow, error) {
	if err := calendar.CheckYear("year", year); err != nil {
		return nil, err
	}
	return yearRows(cal, year), nil
}

func yearRows(cal *calendar.Calendar, year int) []DateRow {
	start := calendar.Date(year, time.January, 1)
	end := calendar.Date(year, time.December, 31)

	rows := make([]DateRow, 0, calendar.DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = calendar.AddDays(d, 1) {
		rows = append(rows, BuildDate(cal, d))
	}
	return rows
}

// DateRows returns every day from January 1 of startYear through December 31
// of endYear.
func DateRows(cal *calendar.Calendar, startYear, endYear int) ([]DateRow, error) {
	if err := CheckYears(startYear, endYear); err != nil {
		return nil, err
	}

	var rows []DateRow
	for year := startYear; year <= endYear; year++ {
		rows = append(rows, yearRows(cal, year)...)
	}
	return rows, nil
}

// CheckYears validates a populate range. Each year must be in
// [calendar.MinYear, calendar.MaxYear] and startYear must not exceed endYear.
func CheckYears(startYear, endYear int) error {
	if err := calendar.CheckYear("startYear", startYear); err != nil {
		return err
	}
	if err := calendar.CheckYear("endYear", endYear); err != nil {
		return err
	}
	if startYear > endYear {
		return calendar.InvalidArgument("startYear", fmt.Sprintf("startYear %d is greater than endYear %d", startYear, endYear))
	}
	return nil
}
