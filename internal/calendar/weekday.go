package calendar

import (
	"fmt"
	"time"
)

// NthWeekdayForward returns the nth occurrence of weekday counted from the
// first day of the month. The result may fall in the following month when n
// exceeds the occurrences the month holds.
func NthWeekdayForward(year int, month time.Month, weekday time.Weekday, n int) (time.Time, error) {
	if err := checkNth(year, month, n); err != nil {
		return time.Time{}, err
	}
	return nthWeekdayForward(year, month, weekday, n), nil
}

// NthWeekdayReverse returns the nth occurrence of weekday counted back from
// the last day of the month.
func NthWeekdayReverse(year int, month time.Month, weekday time.Weekday, n int) (time.Time, error) {
	if err := checkNth(year, month, n); err != nil {
		return time.Time{}, err
	}
	return nthWeekdayReverse(year, month, weekday, n), nil
}

func nthWeekdayForward(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := Date(year, month, 1)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return AddDays(first, offset+7*(n-1))
}

func nthWeekdayReverse(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	last := lastDayOfMonth(year, month)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return AddDays(last, -offset-7*(n-1))
}

func checkNth(year int, month time.Month, n int) error {
	if err := checkYearMonth(year, month); err != nil {
		return err
	}
	if n < 1 {
		return newInvalidArgument("n", fmt.Sprintf("n = %d, cannot be zero or negative", n))
	}
	return nil
}

// IsNthDayOfWeek reports whether date is the nth weekday of its month.
func IsNthDayOfWeek(date time.Time, n int, weekday time.Weekday) (bool, error) {
	if date.Weekday() != weekday {
		return false, nil
	}
	nth, err := NthWeekdayForward(date.Year(), date.Month(), weekday, n)
	if err != nil {
		return false, err
	}
	return nth.Equal(Truncate(date)), nil
}

// DayOfWeekCountInMonth returns how many times date's weekday has occurred in
// its month up to and including date.
func DayOfWeekCountInMonth(date time.Time) int {
	return (date.Day()-1)/7 + 1
}

// DayOfWeekCountInYear returns how many times date's weekday has occurred in
// its year up to and including date.
func DayOfWeekCountInYear(date time.Time) int {
	return (date.YearDay()-1)/7 + 1
}

// WeekOfYear returns the 1-based week number of date. Week 1 contains
// January 1 and every Sunday after it starts a new week.
func WeekOfYear(date time.Time) int {
	jan1 := Date(date.Year(), time.January, 1)
	return (date.YearDay()-1+int(jan1.Weekday()))/7 + 1
}

// WeekOfMonth returns the 1-based week of date within its month, counted the
// same way as WeekOfYear.
func WeekOfMonth(date time.Time) int {
	return WeekOfYear(date) - WeekOfYear(FirstDayOfMonth(date)) + 1
}

// IsFirstWeekOfMonth reports whether date lies in the first week of its month.
func IsFirstWeekOfMonth(date time.Time) bool {
	return WeekOfMonth(date) == 1
}

// IsLastWeekOfMonth reports whether date lies in the same week as the last
// day of its month.
func IsLastWeekOfMonth(date time.Time) bool {
	last := lastDayOfMonth(date.Year(), date.Month())
	return WeekOfYear(date) == WeekOfYear(last)
}

// WeeksInMonth returns the number of whole weeks in the month.
func WeeksInMonth(year int, month time.Month) (int, error) {
	if err := checkYearMonth(year, month); err != nil {
		return 0, err
	}
	return DaysInMonth(year, month) / 7, nil
}
