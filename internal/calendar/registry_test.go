package calendar

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Run()
}

func TestNew_Empty(t *testing.T) {
	c := New(WithName("test"))
	assert.Equal(t, "test", c.Name())
	assert.Equal(t, 0, c.CountEvents())
	assert.Empty(t, c.KeysEvents())
}

func TestRegister_EmptyName(t *testing.T) {
	c := New()
	err := c.AddMonthlyLastDayEvent("", true)
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
	assert.Equal(t, "INVALID_ARGUMENT: name cannot be null or empty", err.Error())
	assert.Equal(t, 0, c.CountEvents())
}

func TestRegister_DuplicateAcrossCategories(t *testing.T) {
	c := New()
	require.NoError(t, c.AddYearlyDateEvent("Christmas Day", time.December, 25, true, false, false))

	adds := map[string]func() error{
		"dated":   func() error { return c.AddDatedEvent("christmas day", Date(2018, time.May, 1), true) },
		"weekly":  func() error { return c.AddWeeklyEvent("CHRISTMAS DAY", []time.Weekday{time.Monday}, true, 1) },
		"monthly": func() error { return c.AddMonthlyDayEvent("Christmas day", 25, true) },
		"yearly":  func() error { return c.AddYearlyDateEvent("Christmas Day", time.December, 26, true, false, false) },
	}
	for name, add := range adds {
		t.Run(name, func(t *testing.T) {
			err := add()
			require.Error(t, err)
			assert.True(t, IsDuplicateKey(err))
			assert.Equal(t, 1, c.CountEvents(), "registry must be unchanged")
			assert.Equal(t, []string{"Christmas Day"}, c.KeysEvents())
		})
	}
}

func TestRegister_NamesFoldUnicode(t *testing.T) {
	c := New()
	require.NoError(t, c.AddMonthlyDayEvent("ÉTÉ", 1, false))

	err := c.AddMonthlyDayEvent("été", 2, false)
	assert.True(t, IsDuplicateKey(err))

	// Decomposed e + combining acute normalizes to the same key.
	err = c.AddMonthlyDayEvent("e\u0301t\u00e9", 3, false)
	assert.True(t, IsDuplicateKey(err))

	assert.True(t, c.ContainsEventKey("été"))
	r, ok := c.Rule("été")
	require.True(t, ok)
	assert.Equal(t, "ÉTÉ", r.Name, "original spelling is kept")
}

func TestRegister_DuplicateCheckedBeforeParameters(t *testing.T) {
	c := New()
	require.NoError(t, c.AddMonthlyDayEvent("Payday", 15, false))

	err := c.AddMonthlyDayEvent("Payday", 99, false)
	assert.True(t, IsDuplicateKey(err))
}

func TestAddYearlyDateEvent_Validation(t *testing.T) {
	c := New()

	err := c.AddYearlyDateEvent("bad month", 13, 1, true, false, false)
	assert.True(t, IsOutOfRange(err))

	err = c.AddYearlyDateEvent("bad day", time.February, 30, true, false, false)
	assert.True(t, IsOutOfRange(err))
	assert.Contains(t, err.Error(), "valid range is [1...29]")

	err = c.AddYearlyDateEvent("zero day", time.April, 0, true, false, false)
	assert.True(t, IsOutOfRange(err))

	require.NoError(t, c.AddYearlyDateEvent("Leap Day", time.February, 29, false, false, false))
	assert.Equal(t, 1, c.CountYearlyEvents())
}

func TestAddMonthlyEvents_Validation(t *testing.T) {
	c := New()

	assert.True(t, IsOutOfRange(c.AddMonthlyDayEvent("day 0", 0, false)))
	assert.True(t, IsOutOfRange(c.AddMonthlyDayEvent("day 32", 32, false)))
	assert.True(t, IsOutOfRange(c.AddMonthlyWeekdayForwardEvent("n 0", time.Monday, 0, false)))
	assert.True(t, IsOutOfRange(c.AddMonthlyWeekdayReverseEvent("n -1", time.Monday, -1, false)))
	assert.True(t, IsOutOfRange(c.AddYearlyWeekdayForwardEvent("yearly n 0", time.May, time.Monday, 0, false)))
	assert.True(t, IsOutOfRange(c.AddYearlyWeekdayReverseEvent("yearly month 0", 0, time.Monday, 1, false)))
	assert.True(t, IsOutOfRange(c.AddMonthlyWeekdayForwardEvent("weekday 7", time.Weekday(7), 1, false)))
	assert.Equal(t, 0, c.CountEvents())
}

func TestAddWeeklyEvent_Validation(t *testing.T) {
	c := New()

	err := c.AddWeeklyEvent("none", nil, true, 1)
	assert.True(t, IsInvalidArgument(err))

	err = c.AddWeeklyEvent("zero interval", []time.Weekday{time.Monday}, true, 0)
	assert.True(t, IsOutOfRange(err))

	err = c.AddWeeklyEvent("no seed", []time.Weekday{time.Monday}, true, 2)
	assert.True(t, IsInvalidArgument(err))

	require.NoError(t, c.AddWeeklyEvent("seeded", []time.Weekday{time.Monday}, true, 2,
		WithSeed(Date(2018, time.January, 1))))
	assert.Equal(t, 1, c.CountWeeklyEvents())
}

func TestAddWeeklyEvent_NormalizesWeekdays(t *testing.T) {
	c := New()
	require.NoError(t, c.AddWeeklyEvent("Golf", []time.Weekday{time.Friday, time.Wednesday, time.Friday}, true, 1))

	r, ok := c.Rule("Golf")
	require.True(t, ok)
	w, ok := r.Pattern.(Weekly)
	require.True(t, ok)
	assert.Equal(t, []time.Weekday{time.Wednesday, time.Friday}, w.Weekdays)
	assert.Equal(t, MinDate, w.Seed)
	assert.Equal(t, 1, w.Interval)
}

func TestAddWeeklyInMonthEvent(t *testing.T) {
	c := New()

	err := c.AddWeeklyInMonthEvent("sixth", time.Monday, false, []int{1, 6})
	assert.True(t, IsOutOfRange(err))

	require.NoError(t, c.AddWeeklyInMonthEvent("odd mondays", time.Monday, false, []int{5, 3, 1, 3}))
	r, _ := c.Rule("odd mondays")
	assert.Equal(t, []int{1, 3, 5}, r.Pattern.(WeeklyInMonth).Occurrences)

	require.NoError(t, c.AddWeeklyDayOff(time.Saturday))
	r, ok := c.Rule("Saturday")
	require.True(t, ok)
	assert.True(t, r.DayOff)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, r.Pattern.(WeeklyInMonth).Occurrences)
}

func TestAddYearlyCalculatedEvent(t *testing.T) {
	c := New()

	err := c.AddYearlyCalculatedEvent("Easter", true)
	assert.True(t, IsInvalidArgument(err))

	err = c.AddYearlyCalculatedEvent("easter sunday", true)
	assert.True(t, IsInvalidArgument(err), "the formula name is matched exactly")

	require.NoError(t, c.AddYearlyCalculatedEvent(EasterSundayName, false))
	require.NoError(t, c.AddYearlyCalculatedEvent(GoodFridayName, true))

	r, ok := c.Rule(GoodFridayName)
	require.True(t, ok)
	assert.Equal(t, YearlyCalculated{Formula: GoodFridayKind}, r.Pattern)

	err = c.AddYearlyCalculatedEvent(EasterSundayName, false)
	assert.True(t, IsDuplicateKey(err))
	assert.Equal(t, 2, c.CountYearlyEvents())
}

func TestValidityWindow_DefaultsAndSwap(t *testing.T) {
	c := New()
	require.NoError(t, c.AddMonthlyLastDayEvent("open", false))
	require.NoError(t, c.AddMonthlyLastDayEvent("swapped", false,
		WithValidity(Date(2040, time.June, 1), time.Date(1990, time.May, 1, 13, 45, 0, 0, time.UTC))))

	open, _ := c.Rule("open")
	assert.Equal(t, MinDate, open.ValidFrom)
	assert.Equal(t, MaxDate, open.ValidTo)

	swapped, _ := c.Rule("swapped")
	assert.Equal(t, Date(1990, time.May, 1), swapped.ValidFrom)
	assert.Equal(t, Date(2040, time.June, 1), swapped.ValidTo)
}

func TestAddDatedEvent_WindowIsTheDate(t *testing.T) {
	c := New()
	require.NoError(t, c.AddDatedEvent("Launch", time.Date(2018, time.May, 21, 9, 0, 0, 0, time.UTC), false))

	r, ok := c.Rule("launch")
	require.True(t, ok)
	assert.Equal(t, Date(2018, time.May, 21), r.ValidFrom)
	assert.Equal(t, Date(2018, time.May, 21), r.ValidTo)
	assert.Equal(t, CategoryDated, r.Category())
	assert.True(t, r.WorkDay())
}

func TestKeysEvents_CategoryThenInsertionOrder(t *testing.T) {
	c := New()
	require.NoError(t, c.AddDatedEvent("d1", Date(2018, time.May, 1), false))
	require.NoError(t, c.AddWeeklyEvent("w1", []time.Weekday{time.Monday}, false, 1))
	require.NoError(t, c.AddMonthlyDayEvent("m2", 2, false))
	require.NoError(t, c.AddMonthlyDayEvent("m1", 1, false))
	require.NoError(t, c.AddYearlyDateEvent("y1", time.May, 1, false, false, false))
	require.NoError(t, c.AddWeeklyInMonthEvent("w2", time.Tuesday, false, nil))

	assert.Equal(t, []string{"y1", "m2", "m1", "w1", "w2", "d1"}, c.KeysEvents())
	assert.Equal(t, []string{"y1"}, c.KeysYearlyEvents())
	assert.Equal(t, []string{"m2", "m1"}, c.KeysMonthlyEvents())
	assert.Equal(t, []string{"w1", "w2"}, c.KeysWeeklyEvents())
	assert.Equal(t, []string{"d1"}, c.KeysDatedEvents())

	assert.Equal(t, 6, c.CountEvents())
	assert.Equal(t, 1, c.CountYearlyEvents())
	assert.Equal(t, 2, c.CountMonthlyEvents())
	assert.Equal(t, 2, c.CountWeeklyEvents())
	assert.Equal(t, 1, c.CountDatedEvents())
}

func TestRemoveEvent(t *testing.T) {
	c := New()
	require.NoError(t, c.AddMonthlyDayEvent("m1", 1, false))
	require.NoError(t, c.AddMonthlyDayEvent("m2", 2, false))
	require.NoError(t, c.AddMonthlyDayEvent("m3", 3, false))

	assert.False(t, c.RemoveEvent(""))
	assert.False(t, c.RemoveEvent("missing"))
	assert.True(t, c.RemoveEvent("M2"))
	assert.False(t, c.RemoveEvent("m2"))

	assert.Equal(t, []string{"m1", "m3"}, c.KeysMonthlyEvents())
	assert.False(t, c.ContainsEventKey("m2"))

	// The name is free again.
	require.NoError(t, c.AddDatedEvent("m2", Date(2018, time.May, 1), false))
	assert.Equal(t, []string{"m1", "m3", "m2"}, c.KeysEvents())
}

func TestClearCalendar(t *testing.T) {
	c := New()
	require.NoError(t, c.AddMonthlyDayEvent("m1", 1, false))
	require.NoError(t, c.AddYearlyCalculatedEvent(GoodFridayName, true))

	c.ClearCalendar()
	assert.Equal(t, 0, c.CountEvents())
	assert.False(t, c.ContainsEventKey(GoodFridayName))
	assert.False(t, c.ContainsEventKey(""))

	require.NoError(t, c.AddYearlyCalculatedEvent(GoodFridayName, true))
	assert.Equal(t, 1, c.CountEvents())
}

func TestRule_ReturnsCopy(t *testing.T) {
	c := New()
	require.NoError(t, c.AddWeeklyEvent("w", []time.Weekday{time.Monday, time.Friday}, false, 1))

	r, _ := c.Rule("w")
	r.Pattern.(Weekly).Weekdays[0] = time.Sunday

	again, _ := c.Rule("w")
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, again.Pattern.(Weekly).Weekdays)
}

func TestAddRule_RoundTripsEveryPattern(t *testing.T) {
	src := New()
	seed := Date(2018, time.January, 1)
	window := WithValidity(Date(2000, time.January, 1), Date(2030, time.December, 31))

	require.NoError(t, src.AddDatedEvent("dated", Date(2018, time.May, 21), true))
	require.NoError(t, src.AddWeeklyEvent("weekly", []time.Weekday{time.Monday, time.Friday}, false, 2, WithSeed(seed), window))
	require.NoError(t, src.AddWeeklyInMonthEvent("weekly in month", time.Tuesday, false, []int{2, 4}, window))
	require.NoError(t, src.AddMonthlyDayEvent("monthly day", 31, false, window))
	require.NoError(t, src.AddMonthlyWeekdayForwardEvent("monthly forward", time.Monday, 1, false, window))
	require.NoError(t, src.AddMonthlyWeekdayReverseEvent("monthly reverse", time.Friday, 1, false, window))
	require.NoError(t, src.AddMonthlyLastDayEvent("monthly last", false, window))
	require.NoError(t, src.AddYearlyDateEvent("yearly date", time.July, 4, true, true, true, window))
	require.NoError(t, src.AddYearlyWeekdayForwardEvent("yearly forward", time.November, time.Thursday, 4, true, window))
	require.NoError(t, src.AddYearlyWeekdayReverseEvent("yearly reverse", time.May, time.Monday, 1, true, window))
	require.NoError(t, src.AddYearlyCalculatedEvent(GoodFridayName, true, window))

	dst := New()
	for _, r := range src.Snapshot() {
		require.NoError(t, dst.AddRule(r), r.Name)
	}
	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}

func TestAddRule_NilPattern(t *testing.T) {
	err := New().AddRule(Rule{Name: "nothing"})
	assert.True(t, IsInvalidArgument(err))
}

func TestRemoveAndReAdd_ReproducesQueries(t *testing.T) {
	c := New()
	require.NoError(t, c.AddYearlyWeekdayForwardEvent("Thanksgiving Day", time.November, time.Thursday, 4, true))
	require.NoError(t, c.AddWeeklyEvent("Weekend", []time.Weekday{time.Saturday, time.Sunday}, true, 1))
	require.NoError(t, c.AddMonthlyDayEvent("Rent", 1, false))

	from, to := Date(2018, time.January, 1), Date(2018, time.December, 31)
	before := c.EventsBetween(from, to)

	for _, name := range c.KeysEvents() {
		r, ok := c.Rule(name)
		require.True(t, ok)
		require.True(t, c.RemoveEvent(name))
		require.NoError(t, c.AddRule(r))
	}
	assert.Equal(t, before, c.EventsBetween(from, to))
}

func TestCalendar_ConcurrentUse(t *testing.T) {
	c := New()
	require.NoError(t, c.AddWeeklyEvent("Weekend", []time.Weekday{time.Saturday, time.Sunday}, true, 1))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("rule-%d", i)
			assert.NoError(t, c.AddMonthlyDayEvent(name, i+1, false))
			assert.True(t, c.RemoveEvent(name))
		}(i)
		go func() {
			defer wg.Done()
			for d := 0; d < 30; d++ {
				day := AddDays(Date(2018, time.May, 1), d)
				assert.Equal(t, !c.IsDayOff(day), c.IsWorkDay(day))
				c.EventsOnDate(day, true, true)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.CountEvents())
}
