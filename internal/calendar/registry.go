package calendar

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/samber/mo"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Calendar is a registry of named recurrence rules partitioned into the four
// categories. The zero value is not usable; create calendars with New.
type Calendar struct {
	name string

	mu      sync.RWMutex
	buckets [len(categories)]bucket
	index   map[string]Category // folded name -> owning bucket
}

// bucket keeps the rules of one category in registration order.
type bucket struct {
	order []string // folded names
	rules map[string]Rule
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithName sets a display name used by exporters and reports.
func WithName(name string) Option {
	return func(c *Calendar) {
		c.name = name
	}
}

// New creates an empty calendar.
func New(opts ...Option) *Calendar {
	c := &Calendar{index: make(map[string]Category)}
	for i := range c.buckets {
		c.buckets[i].rules = make(map[string]Rule)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the display name set by WithName.
func (c *Calendar) Name() string {
	return c.name
}

// foldName returns the key names are compared by.
func foldName(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}

// RuleOption configures the validity window or seed of a registration.
type RuleOption func(*ruleOptions)

type ruleOptions struct {
	validFrom mo.Option[time.Time]
	validTo   mo.Option[time.Time]
	seed      mo.Option[time.Time]
}

// WithValidity bounds the rule to [from, to]. Reversed bounds are swapped.
// A zero time leaves that side unbounded.
func WithValidity(from, to time.Time) RuleOption {
	return func(o *ruleOptions) {
		WithValidFrom(from)(o)
		WithValidTo(to)(o)
	}
}

// WithValidFrom sets the first day the rule can match.
func WithValidFrom(from time.Time) RuleOption {
	return func(o *ruleOptions) {
		if !from.IsZero() {
			o.validFrom = mo.Some(Truncate(from))
		}
	}
}

// WithValidTo sets the last day the rule can match.
func WithValidTo(to time.Time) RuleOption {
	return func(o *ruleOptions) {
		if !to.IsZero() {
			o.validTo = mo.Some(Truncate(to))
		}
	}
}

// WithSeed anchors the interval of a weekly rule to the week containing seed.
// It is required when the interval is greater than one. A zero seed counts as
// no seed.
func WithSeed(seed time.Time) RuleOption {
	return func(o *ruleOptions) {
		if !seed.IsZero() {
			o.seed = mo.Some(Truncate(seed))
		}
	}
}

func collectOptions(opts []RuleOption) ruleOptions {
	var o ruleOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// window returns the validity bounds with defaults applied and ordered.
func (o ruleOptions) window() (time.Time, time.Time) {
	return orderRange(o.validFrom.OrElse(MinDate), o.validTo.OrElse(MaxDate))
}

// register validates and inserts a rule. Name checks run first, then build
// validates the pattern parameters. Nothing is mutated unless all pass.
func (c *Calendar) register(name string, dayOff bool, opts []RuleOption, build func(ruleOptions) (Pattern, error)) error {
	if name == "" {
		return newEmptyName()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := foldName(name)
	if _, exists := c.index[key]; exists {
		return newDuplicateKey(name)
	}

	o := collectOptions(opts)
	pattern, err := build(o)
	if err != nil {
		return err
	}

	from, to := o.window()
	rule := Rule{
		Name:      name,
		DayOff:    dayOff,
		ValidFrom: from,
		ValidTo:   to,
		Pattern:   pattern,
	}

	cat := pattern.Category()
	b := &c.buckets[cat]
	b.order = append(b.order, key)
	b.rules[key] = rule
	c.index[key] = cat

	slog.Debug("rule registered",
		"name", name,
		"category", cat.String(),
		"kind", pattern.Kind(),
		"day_off", dayOff)
	return nil
}

// AddDatedEvent registers a rule matching exactly date. Its validity window
// is the date itself.
func (c *Calendar) AddDatedEvent(name string, date time.Time, dayOff bool) error {
	date = Truncate(date)
	return c.register(name, dayOff, []RuleOption{WithValidity(date, date)}, func(ruleOptions) (Pattern, error) {
		return ExplicitDate{Date: date}, nil
	})
}

// AddWeeklyEvent registers a rule matching weekdays in every interval-th week.
// An interval above one requires WithSeed.
func (c *Calendar) AddWeeklyEvent(name string, weekdays []time.Weekday, dayOff bool, interval int, opts ...RuleOption) error {
	return c.register(name, dayOff, opts, func(o ruleOptions) (Pattern, error) {
		days, err := weekdaySet(weekdays)
		if err != nil {
			return nil, err
		}
		if interval < 1 {
			return nil, newNotPositive("interval", interval)
		}
		if interval > 1 && o.seed.IsAbsent() {
			return nil, newInvalidArgument("seed",
				fmt.Sprintf("a seed date is required when interval = %d", interval))
		}
		return Weekly{
			Weekdays: days,
			Interval: interval,
			Seed:     o.seed.OrElse(MinDate),
		}, nil
	})
}

// AddWeeklyInMonthEvent registers a rule matching weekday when its occurrence
// count in the month is one of occurrences. An empty set means every
// occurrence, 1 through 5.
func (c *Calendar) AddWeeklyInMonthEvent(name string, weekday time.Weekday, dayOff bool, occurrences []int, opts ...RuleOption) error {
	return c.register(name, dayOff, opts, func(ruleOptions) (Pattern, error) {
		if err := checkWeekday(weekday); err != nil {
			return nil, err
		}
		occ, err := occurrenceSet(occurrences)
		if err != nil {
			return nil, err
		}
		return WeeklyInMonth{Weekday: weekday, Occurrences: occ}, nil
	})
}

// AddWeeklyDayOff registers weekday as a day off in every week, named after
// the weekday (e.g. "Saturday").
func (c *Calendar) AddWeeklyDayOff(weekday time.Weekday) error {
	return c.AddWeeklyInMonthEvent(weekday.String(), weekday, true, nil)
}

// AddMonthlyDayEvent registers a rule matching day of every month. Months
// without that day produce nothing.
func (c *Calendar) AddMonthlyDayEvent(name string, day int, dayOff bool, opts ...RuleOption) error {
	return c.register(name, dayOff, opts, func(ruleOptions) (Pattern, error) {
		if day < 1 || day > 31 {
			return nil, newOutOfRange("day", day, 1, 31)
		}
		return MonthlyDay{Day: day}, nil
	})
}

// AddMonthlyWeekdayForwardEvent registers the nth weekday of every month.
func (c *Calendar) AddMonthlyWeekdayForwardEvent(name string, weekday time.Weekday, n int, dayOff bool, opts ...RuleOption) error {
	return c.register(name, dayOff, opts, func(ruleOptions) (Pattern, error) {
		if err := checkWeekdayN(weekday, "weeks forward", n); err != nil {
			return nil, err
		}
		return MonthlyWeekdayForward{Weekday: weekday, N: n}, nil
	})
}

// AddMonthlyWeekdayReverseEvent registers the nth-last weekday of every month.
func (c *Calendar) AddMonthlyWeekdayReverseEvent(name string, weekday time.Weekday, n int, dayOff bool, opts ...RuleOption) error {
	return c.register(name, dayOff, opts, func(ruleOptions) (Pattern, error) {
		if err := checkWeekdayN(weekday, "weeks reverse", n); err != nil {
			return nil, err
		}
		return MonthlyWeekdayReverse{Weekday: weekday, N: n}, nil
	})
}

// AddMonthlyLastDayEvent registers the last day of every month.
func (c *Calendar) AddMonthlyLastDayEvent(name string, dayOff bool, opts ...RuleOption) error {
	return c.register(name, dayOff, opts, func(ruleOptions) (Pattern, error) {
		return MonthlyLastDay{}, nil
	})
}

// AddYearlyDateEvent registers month/day of every year. With saturdayBack a
// Saturday date is observed on the Friday before; with sundayForward a Sunday
// date is observed on the Monday after.
func (c *Calendar) AddYearlyDateEvent(name string, month time.Month, day int, dayOff, saturdayBack, sundayForward bool, opts ...RuleOption) error {
	return c.register(name, dayOff, opts, func(ruleOptions) (Pattern, error) {
		if err := checkMonth(month); err != nil {
			return nil, err
		}
		if limit := MaxDaysInMonthEstimated(month); day < 1 || day > limit {
			return nil, newOutOfRange("day", day, 1, limit)
		}
		return YearlyDate{
			Month:         month,
			Day:           day,
			SaturdayBack:  saturdayBack,
			SundayForward: sundayForward,
		}, nil
	})
}

// AddYearlyWeekdayForwardEvent registers the nth weekday of month every year.
func (c *Calendar) AddYearlyWeekdayForwardEvent(name string, month time.Month, weekday time.Weekday, n int, dayOff bool, opts ...RuleOption) error {
	return c.register(name, dayOff, opts, func(ruleOptions) (Pattern, error) {
		if err := checkMonth(month); err != nil {
			return nil, err
		}
		if err := checkWeekdayN(weekday, "weeks forward", n); err != nil {
			return nil, err
		}
		return YearlyWeekdayForward{Month: month, Weekday: weekday, N: n}, nil
	})
}

// AddYearlyWeekdayReverseEvent registers the nth-last weekday of month every
// year.
func (c *Calendar) AddYearlyWeekdayReverseEvent(name string, month time.Month, weekday time.Weekday, n int, dayOff bool, opts ...RuleOption) error {
	return c.register(name, dayOff, opts, func(ruleOptions) (Pattern, error) {
		if err := checkMonth(month); err != nil {
			return nil, err
		}
		if err := checkWeekdayN(weekday, "weeks reverse", n); err != nil {
			return nil, err
		}
		return YearlyWeekdayReverse{Month: month, Weekday: weekday, N: n}, nil
	})
}

// AddYearlyCalculatedEvent registers a formula-derived yearly event. The name
// selects the formula and must be exactly EasterSundayName or GoodFridayName.
func (c *Calendar) AddYearlyCalculatedEvent(name string, dayOff bool, opts ...RuleOption) error {
	return c.register(name, dayOff, opts, func(ruleOptions) (Pattern, error) {
		kind, ok := calculatedKindFor(name)
		if !ok {
			return nil, newInvalidArgument("name",
				fmt.Sprintf("name must be %q or %q, got %q", EasterSundayName, GoodFridayName, name))
		}
		return YearlyCalculated{Formula: kind}, nil
	})
}

// AddRule registers a copy of r through the matching Add method, so the same
// validation applies. Zero validity bounds are treated as unbounded.
func (c *Calendar) AddRule(r Rule) error {
	window := WithValidity(r.ValidFrom, r.ValidTo)

	switch p := r.Pattern.(type) {
	case ExplicitDate:
		return c.AddDatedEvent(r.Name, p.Date, r.DayOff)
	case Weekly:
		return c.AddWeeklyEvent(r.Name, p.Weekdays, r.DayOff, p.Interval, window, WithSeed(p.Seed))
	case WeeklyInMonth:
		return c.AddWeeklyInMonthEvent(r.Name, p.Weekday, r.DayOff, p.Occurrences, window)
	case MonthlyDay:
		return c.AddMonthlyDayEvent(r.Name, p.Day, r.DayOff, window)
	case MonthlyWeekdayForward:
		return c.AddMonthlyWeekdayForwardEvent(r.Name, p.Weekday, p.N, r.DayOff, window)
	case MonthlyWeekdayReverse:
		return c.AddMonthlyWeekdayReverseEvent(r.Name, p.Weekday, p.N, r.DayOff, window)
	case MonthlyLastDay:
		return c.AddMonthlyLastDayEvent(r.Name, r.DayOff, window)
	case YearlyDate:
		return c.AddYearlyDateEvent(r.Name, p.Month, p.Day, r.DayOff, p.SaturdayBack, p.SundayForward, window)
	case YearlyWeekdayForward:
		return c.AddYearlyWeekdayForwardEvent(r.Name, p.Month, p.Weekday, p.N, r.DayOff, window)
	case YearlyWeekdayReverse:
		return c.AddYearlyWeekdayReverseEvent(r.Name, p.Month, p.Weekday, p.N, r.DayOff, window)
	case YearlyCalculated:
		return c.AddYearlyCalculatedEvent(r.Name, r.DayOff, window)
	case nil:
		return newInvalidArgument("pattern", "pattern cannot be nil")
	}
	return newInvalidArgument("pattern", fmt.Sprintf("unsupported pattern %T", r.Pattern))
}

// RemoveEvent deletes the named rule. It reports whether a rule was removed.
func (c *Calendar) RemoveEvent(name string) bool {
	if name == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := foldName(name)
	for _, cat := range categories {
		b := &c.buckets[cat]
		if _, ok := b.rules[key]; !ok {
			continue
		}
		delete(b.rules, key)
		b.order = slices.DeleteFunc(b.order, func(k string) bool { return k == key })
		delete(c.index, key)
		slog.Debug("rule removed", "name", name, "category", cat.String())
		return true
	}
	return false
}

// ClearCalendar removes every rule.
func (c *Calendar) ClearCalendar() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.buckets {
		c.buckets[i] = bucket{rules: make(map[string]Rule)}
	}
	clear(c.index)
	slog.Debug("calendar cleared", "calendar", c.name)
}

// ContainsEventKey reports whether a rule with the name exists in any category.
func (c *Calendar) ContainsEventKey(name string) bool {
	if name == "" {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.index[foldName(name)]
	return ok
}

// Rule returns a copy of the named rule.
func (c *Calendar) Rule(name string) (Rule, bool) {
	if name == "" {
		return Rule{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lookup(foldName(name))
}

func (c *Calendar) lookup(key string) (Rule, bool) {
	cat, ok := c.index[key]
	if !ok {
		return Rule{}, false
	}
	return c.buckets[cat].rules[key].clone(), true
}

// CountEvents returns the number of rules across all categories.
func (c *Calendar) CountEvents() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.index)
}

// CountYearlyEvents returns the number of yearly rules.
func (c *Calendar) CountYearlyEvents() int { return c.count(CategoryYearly) }

// CountMonthlyEvents returns the number of monthly rules.
func (c *Calendar) CountMonthlyEvents() int { return c.count(CategoryMonthly) }

// CountWeeklyEvents returns the number of weekly rules.
func (c *Calendar) CountWeeklyEvents() int { return c.count(CategoryWeekly) }

// CountDatedEvents returns the number of dated rules.
func (c *Calendar) CountDatedEvents() int { return c.count(CategoryDated) }

func (c *Calendar) count(cat Category) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.buckets[cat].order)
}

// KeysEvents returns every rule name, yearly first, then monthly, weekly and
// dated, each in registration order.
func (c *Calendar) KeysEvents() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.index))
	for _, cat := range categories {
		keys = append(keys, c.names(cat)...)
	}
	return keys
}

// KeysYearlyEvents returns yearly rule names in registration order.
func (c *Calendar) KeysYearlyEvents() []string { return c.keys(CategoryYearly) }

// KeysMonthlyEvents returns monthly rule names in registration order.
func (c *Calendar) KeysMonthlyEvents() []string { return c.keys(CategoryMonthly) }

// KeysWeeklyEvents returns weekly rule names in registration order.
func (c *Calendar) KeysWeeklyEvents() []string { return c.keys(CategoryWeekly) }

// KeysDatedEvents returns dated rule names in registration order.
func (c *Calendar) KeysDatedEvents() []string { return c.keys(CategoryDated) }

func (c *Calendar) keys(cat Category) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.names(cat)
}

// names must be called with the lock held.
func (c *Calendar) names(cat Category) []string {
	b := &c.buckets[cat]
	names := make([]string, len(b.order))
	for i, key := range b.order {
		names[i] = b.rules[key].Name
	}
	return names
}

// Snapshot returns copies of every rule in KeysEvents order.
func (c *Calendar) Snapshot() []Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rules := make([]Rule, 0, len(c.index))
	for _, cat := range categories {
		b := &c.buckets[cat]
		for _, key := range b.order {
			rules = append(rules, b.rules[key].clone())
		}
	}
	return rules
}

func checkWeekday(weekday time.Weekday) error {
	if weekday < time.Sunday || weekday > time.Saturday {
		return newOutOfRange("weekday", int(weekday), int(time.Sunday), int(time.Saturday))
	}
	return nil
}

func checkWeekdayN(weekday time.Weekday, field string, n int) error {
	if err := checkWeekday(weekday); err != nil {
		return err
	}
	if n < 1 {
		return newNotPositive(field, n)
	}
	return nil
}

// weekdaySet validates, deduplicates and sorts weekdays.
func weekdaySet(weekdays []time.Weekday) ([]time.Weekday, error) {
	if len(weekdays) == 0 {
		return nil, newInvalidArgument("weekdays", "weekdays cannot be null or empty")
	}
	days := slices.Clone(weekdays)
	for _, wd := range days {
		if err := checkWeekday(wd); err != nil {
			return nil, err
		}
	}
	slices.Sort(days)
	return slices.Compact(days), nil
}

// occurrenceSet validates, deduplicates and sorts occurrence counts.
func occurrenceSet(occurrences []int) ([]int, error) {
	if len(occurrences) == 0 {
		return []int{1, 2, 3, 4, 5}, nil
	}
	occ := slices.Clone(occurrences)
	for _, n := range occ {
		if n < 1 || n > 5 {
			return nil, newOutOfRange("occurrence", n, 1, 5)
		}
	}
	slices.Sort(occ)
	return slices.Compact(occ), nil
}
