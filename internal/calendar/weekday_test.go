package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNthWeekdayForward(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		weekday time.Weekday
		n       int
		want    time.Time
	}{
		{"second monday may 2018", 2018, time.May, time.Monday, 2, Date(2018, time.May, 14)},
		{"first tuesday is day one", 2018, time.May, time.Tuesday, 1, Date(2018, time.May, 1)},
		{"thanksgiving 2018", 2018, time.November, time.Thursday, 4, Date(2018, time.November, 22)},
		{"labor day 2018", 2018, time.September, time.Monday, 1, Date(2018, time.September, 3)},
		{"fifth friday spills into june", 2018, time.May, time.Friday, 5, Date(2018, time.June, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NthWeekdayForward(tt.year, tt.month, tt.weekday, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNthWeekdayReverse(t *testing.T) {
	got, err := NthWeekdayReverse(2018, time.May, time.Monday, 1)
	require.NoError(t, err)
	assert.Equal(t, Date(2018, time.May, 28), got, "memorial day")

	got, err = NthWeekdayReverse(2018, time.May, time.Monday, 2)
	require.NoError(t, err)
	assert.Equal(t, Date(2018, time.May, 21), got)

	got, err = NthWeekdayReverse(2018, time.May, time.Thursday, 1)
	require.NoError(t, err)
	assert.Equal(t, Date(2018, time.May, 31), got, "last day is itself the weekday")
}

func TestNthWeekday_Validation(t *testing.T) {
	_, err := NthWeekdayForward(0, time.May, time.Monday, 1)
	assert.True(t, IsOutOfRange(err))

	_, err = NthWeekdayForward(10000, time.May, time.Monday, 1)
	assert.True(t, IsOutOfRange(err))

	_, err = NthWeekdayReverse(2018, 0, time.Monday, 1)
	assert.True(t, IsOutOfRange(err))

	_, err = NthWeekdayForward(2018, time.May, time.Monday, 0)
	assert.True(t, IsInvalidArgument(err))

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "n", ce.Field)
}

func TestIsNthDayOfWeek(t *testing.T) {
	ok, err := IsNthDayOfWeek(Date(2018, time.May, 14), 2, time.Monday)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsNthDayOfWeek(Date(2018, time.May, 21), 2, time.Monday)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsNthDayOfWeek(Date(2018, time.May, 15), 2, time.Monday)
	require.NoError(t, err)
	assert.False(t, ok, "weekday mismatch short-circuits")

	_, err = IsNthDayOfWeek(Date(2018, time.May, 14), 0, time.Monday)
	assert.True(t, IsInvalidArgument(err))
}

func TestDayOfWeekCounts(t *testing.T) {
	assert.Equal(t, 1, DayOfWeekCountInMonth(Date(2018, time.May, 7)))
	assert.Equal(t, 4, DayOfWeekCountInMonth(Date(2018, time.May, 28)))
	assert.Equal(t, 5, DayOfWeekCountInMonth(Date(2018, time.May, 29)))

	assert.Equal(t, 1, DayOfWeekCountInYear(Date(2018, time.January, 7)))
	assert.Equal(t, 2, DayOfWeekCountInYear(Date(2018, time.January, 8)))
	assert.Equal(t, 53, DayOfWeekCountInYear(Date(2018, time.December, 31)))
}

func TestWeekOfYear(t *testing.T) {
	// 2018-01-01 is a Monday: week 2 starts on Sunday January 7.
	assert.Equal(t, 1, WeekOfYear(Date(2018, time.January, 1)))
	assert.Equal(t, 1, WeekOfYear(Date(2018, time.January, 6)))
	assert.Equal(t, 2, WeekOfYear(Date(2018, time.January, 7)))

	// 2022-01-01 is a Saturday: week 1 is a single day.
	assert.Equal(t, 1, WeekOfYear(Date(2022, time.January, 1)))
	assert.Equal(t, 2, WeekOfYear(Date(2022, time.January, 2)))

	// 2017-01-01 is a Sunday.
	assert.Equal(t, 2, WeekOfYear(Date(2017, time.January, 8)))
}

func TestWeekOfMonth(t *testing.T) {
	// May 2018 starts on a Tuesday.
	assert.Equal(t, 1, WeekOfMonth(Date(2018, time.May, 1)))
	assert.Equal(t, 1, WeekOfMonth(Date(2018, time.May, 5)))
	assert.Equal(t, 2, WeekOfMonth(Date(2018, time.May, 6)))
	assert.Equal(t, 5, WeekOfMonth(Date(2018, time.May, 31)))

	assert.True(t, IsFirstWeekOfMonth(Date(2018, time.May, 5)))
	assert.False(t, IsFirstWeekOfMonth(Date(2018, time.May, 6)))
	assert.True(t, IsLastWeekOfMonth(Date(2018, time.May, 27)))
	assert.False(t, IsLastWeekOfMonth(Date(2018, time.May, 26)))
}

func TestWeeksInMonth(t *testing.T) {
	got, err := WeeksInMonth(2018, time.May)
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	got, err = WeeksInMonth(2018, time.February)
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	_, err = WeeksInMonth(2018, 13)
	assert.True(t, IsOutOfRange(err))
}
