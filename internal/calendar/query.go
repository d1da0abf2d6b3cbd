package calendar

import (
	"slices"
	"time"
)

// EventsOnDate returns the names of rules matching date. Day-off rules are
// included when includeDaysOff is set and workday rules when includeWorkdays
// is set. Names are ordered by category (yearly, monthly, weekly, dated) and
// then by registration order.
func (c *Calendar) EventsOnDate(date time.Time, includeWorkdays, includeDaysOff bool) []string {
	date = Truncate(date)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var names []string
	c.each(func(r Rule) bool {
		if !(r.DayOff && includeDaysOff || r.WorkDay() && includeWorkdays) {
			return true
		}
		if r.Matches(date) {
			names = append(names, r.Name)
		}
		return true
	})
	return names
}

// IsDayOff reports whether any day-off rule matches date. Workday rules never
// cancel a day off.
func (c *Calendar) IsDayOff(date time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isDayOff(Truncate(date))
}

// IsWorkDay reports whether date is not a day off.
func (c *Calendar) IsWorkDay(date time.Time) bool {
	return !c.IsDayOff(date)
}

func (c *Calendar) isDayOff(date time.Time) bool {
	off := false
	c.each(func(r Rule) bool {
		if r.DayOff && r.Matches(date) {
			off = true
		}
		return !off
	})
	return off
}

// each visits rules in query order until fn returns false. The read lock
// must be held.
func (c *Calendar) each(fn func(Rule) bool) {
	for _, cat := range categories {
		b := &c.buckets[cat]
		for _, key := range b.order {
			if !fn(b.rules[key]) {
				return
			}
		}
	}
}

// maxWorkdays is the largest step count that can stay inside
// [MinDate, MaxDate].
var maxWorkdays = DaysBetween(MinDate, MaxDate)

// AddWorkdays steps from date one day at a time in the direction of n and
// returns the day on which the |n|th workday is reached. Days off are skipped
// but still stepped over. n == 0 returns date unchanged. Stepping past
// MinDate or MaxDate returns an ErrCodeOutOfRange error, as does an n whose
// magnitude exceeds the number of days between them.
func (c *Calendar) AddWorkdays(date time.Time, n int) (time.Time, error) {
	date = Truncate(date)
	if n == 0 {
		return date, nil
	}
	if n < -maxWorkdays || n > maxWorkdays {
		return time.Time{}, newOutOfRange("n", n, -maxWorkdays, maxWorkdays)
	}

	step, remaining := 1, n
	if n < 0 {
		step, remaining = -1, -n
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for remaining > 0 {
		date = AddDays(date, step)
		if date.Before(MinDate) || date.After(MaxDate) {
			return time.Time{}, &Error{
				Code:    ErrCodeOutOfRange,
				Field:   "n",
				Message: "workday arithmetic stepped outside the representable date range",
			}
		}
		if !c.isDayOff(date) {
			remaining--
		}
	}
	return date, nil
}

// EventDatesBetween returns the dates in [from, to] produced by the named
// rule, ascending. A zero from or to leaves that side unbounded and reversed
// bounds are swapped. Unknown or empty names yield an empty result.
func (c *Calendar) EventDatesBetween(name string, from, to time.Time) []time.Time {
	if name == "" {
		return nil
	}
	rule, ok := c.Rule(name)
	if !ok {
		return nil
	}

	if from.IsZero() {
		from = MinDate
	}
	if to.IsZero() {
		to = MaxDate
	}
	return rule.OccurrencesBetween(from, to)
}

// EventDatesBetweenYears is EventDatesBetween over whole years, from January 1
// of fromYear through December 31 of toYear. A zero year leaves that side
// unbounded; any other year outside [MinYear, MaxYear] is rejected.
func (c *Calendar) EventDatesBetweenYears(name string, fromYear, toYear int) ([]time.Time, error) {
	if fromYear == 0 {
		fromYear = MinYear
	}
	if toYear == 0 {
		toYear = MaxYear
	}
	if err := checkYear("from year", fromYear); err != nil {
		return nil, err
	}
	if err := checkYear("to year", toYear); err != nil {
		return nil, err
	}
	if fromYear > toYear {
		fromYear, toYear = toYear, fromYear
	}
	return c.EventDatesBetween(name, Date(fromYear, time.January, 1), Date(toYear, time.December, 31)), nil
}

// Occurrence is one dated match of a rule.
type Occurrence struct {
	Date   time.Time
	Name   string
	DayOff bool
}

// EventsBetween returns every rule occurrence in [from, to], ordered by date
// and, on the same date, in EventsOnDate order. Zero bounds are unbounded.
func (c *Calendar) EventsBetween(from, to time.Time) []Occurrence {
	if from.IsZero() {
		from = MinDate
	}
	if to.IsZero() {
		to = MaxDate
	}

	var out []Occurrence
	for _, r := range c.Snapshot() {
		for _, d := range r.OccurrencesBetween(from, to) {
			out = append(out, Occurrence{Date: d, Name: r.Name, DayOff: r.DayOff})
		}
	}
	slices.SortStableFunc(out, func(a, b Occurrence) int { return a.Date.Compare(b.Date) })
	return out
}
