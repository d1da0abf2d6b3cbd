package calendar

import (
	"slices"
	"time"

	"github.com/samber/mo"
)

// OccurrenceIn returns the single date the rule produces for year and month.
// Yearly patterns ignore month. Weekly patterns can produce several dates per
// month and always return None; use Matches or OccurrencesBetween for them.
// The result is None when the candidate does not exist in that month or lies
// outside the validity window.
func (r Rule) OccurrenceIn(year int, month time.Month) mo.Option[time.Time] {
	var candidate mo.Option[time.Time]

	switch p := r.Pattern.(type) {
	case ExplicitDate:
		if p.Date.Year() == year && p.Date.Month() == month {
			candidate = mo.Some(p.Date)
		}
	case MonthlyDay:
		if p.Day <= DaysInMonth(year, month) {
			candidate = mo.Some(Date(year, month, p.Day))
		}
	case MonthlyWeekdayForward:
		candidate = withinMonth(nthWeekdayForward(year, month, p.Weekday, p.N), month)
	case MonthlyWeekdayReverse:
		candidate = withinMonth(nthWeekdayReverse(year, month, p.Weekday, p.N), month)
	case MonthlyLastDay:
		candidate = mo.Some(lastDayOfMonth(year, month))
	case YearlyDate:
		if p.Day <= DaysInMonth(year, p.Month) {
			candidate = mo.Some(WeekendAdjust(Date(year, p.Month, p.Day), p.SaturdayBack, p.SundayForward))
		}
	case YearlyWeekdayForward:
		candidate = withinMonth(nthWeekdayForward(year, p.Month, p.Weekday, p.N), p.Month)
	case YearlyWeekdayReverse:
		candidate = withinMonth(nthWeekdayReverse(year, p.Month, p.Weekday, p.N), p.Month)
	case YearlyCalculated:
		if d, err := Calculate(p.Formula, year); err == nil {
			candidate = mo.Some(d)
		}
	}

	if d, ok := candidate.Get(); ok && r.InRange(d) {
		return candidate
	}
	return mo.None[time.Time]()
}

func withinMonth(d time.Time, month time.Month) mo.Option[time.Time] {
	if d.Month() != month {
		return mo.None[time.Time]()
	}
	return mo.Some(d)
}

// Matches reports whether the rule produces date. The date is truncated
// first.
func (r Rule) Matches(date time.Time) bool {
	date = Truncate(date)
	if !r.InRange(date) {
		return false
	}

	switch p := r.Pattern.(type) {
	case Weekly:
		if !slices.Contains(p.Weekdays, date.Weekday()) {
			return false
		}
		weeks := DaysBetween(mondayOf(p.Seed), mondayOf(date)) / 7
		return weeks%p.Interval == 0
	case WeeklyInMonth:
		return date.Weekday() == p.Weekday &&
			slices.Contains(p.Occurrences, DayOfWeekCountInMonth(date))
	}

	d, ok := r.OccurrenceIn(date.Year(), date.Month()).Get()
	return ok && d.Equal(date)
}

// mondayOf anchors a date to the Monday of its Sunday-Saturday week so that
// week offsets are whole multiples of seven days.
func mondayOf(date time.Time) time.Time {
	return DayOfWeekShift(Truncate(date), time.Monday)
}

// OccurrencesBetween returns every date in [from, to] the rule produces, in
// ascending order. Reversed bounds are swapped.
func (r Rule) OccurrencesBetween(from, to time.Time) []time.Time {
	from, to = orderRange(from, to)

	// Nothing outside the validity window can match.
	if from.Before(r.ValidFrom) {
		from = r.ValidFrom
	}
	if to.After(r.ValidTo) {
		to = r.ValidTo
	}
	if from.After(to) {
		return nil
	}

	switch r.Category() {
	case CategoryYearly:
		return r.yearlyBetween(from, to)
	case CategoryMonthly:
		return r.monthlyBetween(from, to)
	case CategoryWeekly:
		return r.weeklyBetween(from, to)
	default:
		return r.datedBetween(from, to)
	}
}

func (r Rule) yearlyBetween(from, to time.Time) []time.Time {
	var dates []time.Time
	for year := from.Year(); year <= to.Year(); year++ {
		if d, ok := r.OccurrenceIn(year, time.January).Get(); ok && IsBetweenInclusive(d, from, to) {
			dates = append(dates, d)
		}
	}
	return dates
}

func (r Rule) monthlyBetween(from, to time.Time) []time.Time {
	var dates []time.Time
	end := FirstDayOfMonth(to)
	for m := FirstDayOfMonth(from); !m.After(end); m = m.AddDate(0, 1, 0) {
		if d, ok := r.OccurrenceIn(m.Year(), m.Month()).Get(); ok && IsBetweenInclusive(d, from, to) {
			dates = append(dates, d)
		}
	}
	return dates
}

func (r Rule) weeklyBetween(from, to time.Time) []time.Time {
	var weekdays []time.Weekday
	switch p := r.Pattern.(type) {
	case Weekly:
		weekdays = p.Weekdays
	case WeeklyInMonth:
		weekdays = []time.Weekday{p.Weekday}
	}

	var dates []time.Time
	for _, wd := range weekdays {
		first := AddDays(from, (int(wd)-int(from.Weekday())+7)%7)
		for d := first; !d.After(to); d = AddDays(d, 7) {
			if r.Matches(d) {
				dates = append(dates, d)
			}
		}
	}

	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })
	return dates
}

func (r Rule) datedBetween(from, to time.Time) []time.Time {
	p, ok := r.Pattern.(ExplicitDate)
	if !ok || !IsBetweenInclusive(p.Date, from, to) {
		return nil
	}
	return []time.Time{p.Date}
}
