package calendar

import (
	"fmt"
	"time"
)

// Category partitions rules into the four registry buckets. The declaration
// order is the order queries visit them.
type Category int

const (
	CategoryYearly Category = iota
	CategoryMonthly
	CategoryWeekly
	CategoryDated
)

// categories lists every category in query order.
var categories = [...]Category{CategoryYearly, CategoryMonthly, CategoryWeekly, CategoryDated}

// String returns the lower-case category name.
func (c Category) String() string {
	switch c {
	case CategoryYearly:
		return "yearly"
	case CategoryMonthly:
		return "monthly"
	case CategoryWeekly:
		return "weekly"
	case CategoryDated:
		return "dated"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Rule is a named, validity-bounded recurrence. Rules are immutable once
// registered; the registry hands out copies.
type Rule struct {
	// Name is the rule name as registered.
	Name string

	// DayOff marks matching dates as non-working.
	DayOff bool

	// ValidFrom and ValidTo bound the inclusive validity window.
	ValidFrom time.Time
	ValidTo   time.Time

	// Pattern decides which dates the rule produces.
	Pattern Pattern
}

// WorkDay reports whether the rule annotates working days.
func (r Rule) WorkDay() bool {
	return !r.DayOff
}

// Category returns the bucket the rule belongs to.
func (r Rule) Category() Category {
	return r.Pattern.Category()
}

// InRange reports whether date lies in the validity window.
func (r Rule) InRange(date time.Time) bool {
	return !date.Before(r.ValidFrom) && !date.After(r.ValidTo)
}

// Pattern is the closed set of recurrence shapes. The set is sealed; every
// implementation lives in this package.
type Pattern interface {
	Category() Category
	Kind() string
	pattern()
}

// ExplicitDate matches exactly one date.
type ExplicitDate struct {
	Date time.Time
}

// Weekly matches the listed weekdays in every Interval-th week counted from
// the week containing Seed. Weeks run Sunday through Saturday.
type Weekly struct {
	Weekdays []time.Weekday
	Interval int
	Seed     time.Time
}

// WeeklyInMonth matches Weekday when its occurrence count within the month is
// one of Occurrences.
type WeeklyInMonth struct {
	Weekday     time.Weekday
	Occurrences []int
}

// MonthlyDay matches Day of every month that has it.
type MonthlyDay struct {
	Day int
}

// MonthlyWeekdayForward matches the Nth Weekday counted from the start of
// every month.
type MonthlyWeekdayForward struct {
	Weekday time.Weekday
	N       int
}

// MonthlyWeekdayReverse matches the Nth Weekday counted from the end of
// every month.
type MonthlyWeekdayReverse struct {
	Weekday time.Weekday
	N       int
}

// MonthlyLastDay matches the last day of every month.
type MonthlyLastDay struct{}

// YearlyDate matches Month/Day every year, optionally observed on Friday when
// it falls on Saturday or on Monday when it falls on Sunday.
type YearlyDate struct {
	Month         time.Month
	Day           int
	SaturdayBack  bool
	SundayForward bool
}

// YearlyWeekdayForward matches the Nth Weekday from the start of Month.
type YearlyWeekdayForward struct {
	Month   time.Month
	Weekday time.Weekday
	N       int
}

// YearlyWeekdayReverse matches the Nth Weekday from the end of Month.
type YearlyWeekdayReverse struct {
	Month   time.Month
	Weekday time.Weekday
	N       int
}

// YearlyCalculated matches a formula-derived date every year.
type YearlyCalculated struct {
	Formula CalculatedKind
}

func (ExplicitDate) Category() Category          { return CategoryDated }
func (Weekly) Category() Category                { return CategoryWeekly }
func (WeeklyInMonth) Category() Category         { return CategoryWeekly }
func (MonthlyDay) Category() Category            { return CategoryMonthly }
func (MonthlyWeekdayForward) Category() Category { return CategoryMonthly }
func (MonthlyWeekdayReverse) Category() Category { return CategoryMonthly }
func (MonthlyLastDay) Category() Category        { return CategoryMonthly }
func (YearlyDate) Category() Category            { return CategoryYearly }
func (YearlyWeekdayForward) Category() Category  { return CategoryYearly }
func (YearlyWeekdayReverse) Category() Category  { return CategoryYearly }
func (YearlyCalculated) Category() Category      { return CategoryYearly }

// Kind names, shared with the definition file format.
const (
	KindDated                 = "dated"
	KindWeekly                = "weekly"
	KindWeeklyInMonth         = "weekly_in_month"
	KindMonthlyDay            = "monthly_day"
	KindMonthlyWeekdayForward = "monthly_weekday_forward"
	KindMonthlyWeekdayReverse = "monthly_weekday_reverse"
	KindMonthlyLastDay        = "monthly_last_day"
	KindYearlyDate            = "yearly_date"
	KindYearlyWeekdayForward  = "yearly_weekday_forward"
	KindYearlyWeekdayReverse  = "yearly_weekday_reverse"
	KindYearlyCalculated      = "yearly_calculated"
)

func (ExplicitDate) Kind() string          { return KindDated }
func (Weekly) Kind() string                { return KindWeekly }
func (WeeklyInMonth) Kind() string         { return KindWeeklyInMonth }
func (MonthlyDay) Kind() string            { return KindMonthlyDay }
func (MonthlyWeekdayForward) Kind() string { return KindMonthlyWeekdayForward }
func (MonthlyWeekdayReverse) Kind() string { return KindMonthlyWeekdayReverse }
func (MonthlyLastDay) Kind() string        { return KindMonthlyLastDay }
func (YearlyDate) Kind() string            { return KindYearlyDate }
func (YearlyWeekdayForward) Kind() string  { return KindYearlyWeekdayForward }
func (YearlyWeekdayReverse) Kind() string  { return KindYearlyWeekdayReverse }
func (YearlyCalculated) Kind() string      { return KindYearlyCalculated }

func (ExplicitDate) pattern()          {}
func (Weekly) pattern()                {}
func (WeeklyInMonth) pattern()         {}
func (MonthlyDay) pattern()            {}
func (MonthlyWeekdayForward) pattern() {}
func (MonthlyWeekdayReverse) pattern() {}
func (MonthlyLastDay) pattern()        {}
func (YearlyDate) pattern()            {}
func (YearlyWeekdayForward) pattern()  {}
func (YearlyWeekdayReverse) pattern()  {}
func (YearlyCalculated) pattern()      {}

// clone returns a copy of r whose slices are not shared with the registry.
func (r Rule) clone() Rule {
	switch p := r.Pattern.(type) {
	case Weekly:
		p.Weekdays = append([]time.Weekday(nil), p.Weekdays...)
		r.Pattern = p
	case WeeklyInMonth:
		p.Occurrences = append([]int(nil), p.Occurrences...)
		r.Pattern = p
	}
	return r
}
