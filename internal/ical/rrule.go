package ical

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/roach88/thisdate/internal/calendar"
)

var rruleWeekdays = [...]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// maxNth is the largest weekday count that can occur in a month.
const maxNth = 5

// RRule returns the recurrence options equivalent to r's pattern, or false
// when the pattern cannot be expressed as an RRULE. Dtstart and Until are
// left for the caller to set.
func RRule(r calendar.Rule) (*rrule.ROption, bool) {
	switch p := r.Pattern.(type) {
	case calendar.MonthlyWeekdayForward, calendar.MonthlyWeekdayReverse,
		calendar.YearlyWeekdayForward, calendar.YearlyWeekdayReverse:
		if nthOf(p) > maxNth {
			return nil, false
		}
	}

	switch p := r.Pattern.(type) {
	case calendar.Weekly:
		days := make([]rrule.Weekday, len(p.Weekdays))
		for i, wd := range p.Weekdays {
			days[i] = rruleWeekdays[wd]
		}
		return &rrule.ROption{
			Freq:      rrule.WEEKLY,
			Interval:  p.Interval,
			Wkst:      rrule.SU,
			Byweekday: days,
		}, true
	case calendar.WeeklyInMonth:
		days := make([]rrule.Weekday, len(p.Occurrences))
		for i, n := range p.Occurrences {
			days[i] = rruleWeekdays[p.Weekday].Nth(n)
		}
		return &rrule.ROption{Freq: rrule.MONTHLY, Byweekday: days}, true
	case calendar.MonthlyDay:
		return &rrule.ROption{Freq: rrule.MONTHLY, Bymonthday: []int{p.Day}}, true
	case calendar.MonthlyWeekdayForward:
		return &rrule.ROption{
			Freq:      rrule.MONTHLY,
			Byweekday: []rrule.Weekday{rruleWeekdays[p.Weekday].Nth(p.N)},
		}, true
	case calendar.MonthlyWeekdayReverse:
		return &rrule.ROption{
			Freq:      rrule.MONTHLY,
			Byweekday: []rrule.Weekday{rruleWeekdays[p.Weekday].Nth(-p.N)},
		}, true
	case calendar.MonthlyLastDay:
		return &rrule.ROption{Freq: rrule.MONTHLY, Bymonthday: []int{-1}}, true
	case calendar.YearlyDate:
		if p.SaturdayBack || p.SundayForward {
			return nil, false
		}
		return &rrule.ROption{
			Freq:       rrule.YEARLY,
			Bymonth:    []int{int(p.Month)},
			Bymonthday: []int{p.Day},
		}, true
	case calendar.YearlyWeekdayForward:
		return &rrule.ROption{
			Freq:      rrule.YEARLY,
			Bymonth:   []int{int(p.Month)},
			Byweekday: []rrule.Weekday{rruleWeekdays[p.Weekday].Nth(p.N)},
		}, true
	case calendar.YearlyWeekdayReverse:
		return &rrule.ROption{
			Freq:      rrule.YEARLY,
			Bymonth:   []int{int(p.Month)},
			Byweekday: []rrule.Weekday{rruleWeekdays[p.Weekday].Nth(-p.N)},
		}, true
	}
	return nil, false
}

func nthOf(p calendar.Pattern) int {
	switch p := p.(type) {
	case calendar.MonthlyWeekdayForward:
		return p.N
	case calendar.MonthlyWeekdayReverse:
		return p.N
	case calendar.YearlyWeekdayForward:
		return p.N
	case calendar.YearlyWeekdayReverse:
		return p.N
	}
	return 0
}
