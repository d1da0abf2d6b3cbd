package calendar

import (
	"strconv"
	"time"
)

const (
	// MinYear and MaxYear bound every year argument.
	MinYear = 1
	MaxYear = 9999
)

var (
	// MinDate is the earliest representable calendar day, 0001-01-01.
	MinDate = Date(MinYear, time.January, 1)

	// MaxDate is the latest representable calendar day, 9999-12-31.
	MaxDate = Date(MaxYear, time.December, 31)
)

// Date returns midnight UTC of the given calendar day.
// Out-of-range days normalize the way time.Date does.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the time of day and location from t, keeping its wall-clock
// calendar day.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// AddDays returns date shifted by n calendar days.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// DaysBetween returns the number of whole days from a to b (negative if b < a).
func DaysBetween(a, b time.Time) int {
	return int(dayNumber(Truncate(b)) - dayNumber(Truncate(a)))
}

// dayNumber counts days since the Unix epoch. time.Duration cannot span the
// full 1..9999 year range, so day arithmetic goes through Unix seconds.
func dayNumber(date time.Time) int64 {
	const secondsPerDay = 24 * 60 * 60
	u := date.Unix()
	if u < 0 && u%secondsPerDay != 0 {
		return u/secondsPerDay - 1
	}
	return u / secondsPerDay
}

// IsBetweenInclusive reports whether x lies in [a, b]. The bounds are swapped
// when a is after b.
func IsBetweenInclusive(x, a, b time.Time) bool {
	if a.After(b) {
		a, b = b, a
	}
	return !x.Before(a) && !x.After(b)
}

// orderRange returns (from, to) truncated and swapped so that from <= to.
func orderRange(from, to time.Time) (time.Time, time.Time) {
	from, to = Truncate(from), Truncate(to)
	if from.After(to) {
		return to, from
	}
	return from, to
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// IsWeekend reports whether date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWeekday reports whether date falls on Monday through Friday.
func IsWeekday(date time.Time) bool {
	return !IsWeekend(date)
}

// WeekendAdjust moves a Saturday back to Friday when saturdayBack is set,
// otherwise a Sunday forward to Monday when sundayForward is set.
func WeekendAdjust(date time.Time, saturdayBack, sundayForward bool) time.Time {
	switch {
	case saturdayBack && date.Weekday() == time.Saturday:
		return AddDays(date, -1)
	case sundayForward && date.Weekday() == time.Sunday:
		return AddDays(date, 1)
	}
	return date
}

// DayOfWeekShift returns the day of date's Sunday-Saturday week that falls on
// weekday.
func DayOfWeekShift(date time.Time, weekday time.Weekday) time.Time {
	return AddDays(date, int(weekday)-int(date.Weekday()))
}

// FirstDayOfMonth returns the first day of date's month.
func FirstDayOfMonth(date time.Time) time.Time {
	return Date(date.Year(), date.Month(), 1)
}

// IsFirstDayOfMonth reports whether date is the first of its month.
func IsFirstDayOfMonth(date time.Time) bool {
	return date.Day() == 1
}

// IsLastDayOfMonth reports whether date is the last day of its month.
func IsLastDayOfMonth(date time.Time) bool {
	return AddDays(date, 1).Day() == 1
}

// LastDayOfMonth returns the last day of the given month.
func LastDayOfMonth(year int, month time.Month) (time.Time, error) {
	if err := checkYearMonth(year, month); err != nil {
		return time.Time{}, err
	}
	return lastDayOfMonth(year, month), nil
}

func lastDayOfMonth(year int, month time.Month) time.Time {
	return Date(year, month+1, 0)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return lastDayOfMonth(year, month).Day()
}

// MaxDaysInMonthEstimated returns the largest day a month can ever have:
// 29 for February, 30 for April, June, September and November, else 31.
func MaxDaysInMonthEstimated(month time.Month) int {
	switch month {
	case time.February:
		return 29
	case time.April, time.June, time.September, time.November:
		return 30
	}
	return 31
}

// Quarter returns the 1-based quarter of date's month.
func Quarter(date time.Time) int {
	return (int(date.Month()) + 2) / 3
}

// QuarterShort returns the quarter as "Q1".."Q4".
func QuarterShort(date time.Time) string {
	return "Q" + strconv.Itoa(Quarter(date))
}

// QuarterLong returns the quarter as "Quarter 1".."Quarter 4".
func QuarterLong(date time.Time) string {
	return "Quarter " + strconv.Itoa(Quarter(date))
}

// DateID returns the date as a yyyymmdd integer, e.g. 20180521.
func DateID(date time.Time) int {
	return date.Year()*10000 + int(date.Month())*100 + date.Day()
}

func checkYear(field string, year int) error {
	if year < MinYear || year > MaxYear {
		return newOutOfRange(field, year, MinYear, MaxYear)
	}
	return nil
}

func checkMonth(month time.Month) error {
	if month < time.January || month > time.December {
		return newOutOfRange("month", int(month), 1, 12)
	}
	return nil
}

func checkYearMonth(year int, month time.Month) error {
	if err := checkYear("year", year); err != nil {
		return err
	}
	return checkMonth(month)
}
