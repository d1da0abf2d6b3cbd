package presets

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/thisdate/internal/calendar"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func d(year int, month time.Month, day int) time.Time {
	return calendar.Date(year, month, day)
}

func build(t *testing.T, name string) *calendar.Calendar {
	t.Helper()
	cal, err := Build(name)
	require.NoError(t, err)
	return cal
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{NYSEName, USAFederalName, USAObservanceName}, Names())
}

func TestBuild_Unknown(t *testing.T) {
	_, err := Build("tse")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPreset))
	assert.Contains(t, err.Error(), `"tse"`)
}

func TestLookup(t *testing.T) {
	fn, ok := Lookup(NYSEName)
	require.True(t, ok)
	require.NotNil(t, fn)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestNYSE_Counts(t *testing.T) {
	cal := build(t, NYSEName)
	assert.Equal(t, "NYSE", cal.Name())
	assert.Equal(t, 9, cal.CountYearlyEvents())
	assert.Equal(t, 2, cal.CountWeeklyEvents())
	assert.Equal(t, 11, cal.CountEvents())
	assert.True(t, cal.ContainsEventKey("saturday"))
	assert.False(t, cal.ContainsEventKey(NameColumbusDay))
}

func TestNYSE_AddWorkdays(t *testing.T) {
	cal := build(t, NYSEName)

	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"next business day after new year", d(2016, time.January, 1), 1, d(2016, time.January, 4)},
		{"skips MLK day", d(2016, time.January, 1), 16, d(2016, time.January, 26)},
		{"backwards across new year", d(2016, time.January, 26), -16, d(2015, time.December, 31)},
		{"zero", d(2016, time.January, 2), 0, d(2016, time.January, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cal.AddWorkdays(tt.start, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNYSE_DaysOff(t *testing.T) {
	cal := build(t, NYSEName)

	tests := []struct {
		name string
		date time.Time
		off  bool
	}{
		{"good friday 2018", d(2018, time.March, 30), true},
		{"christmas on sunday observed monday", d(2016, time.December, 26), true},
		{"christmas on saturday observed friday", d(2021, time.December, 24), true},
		{"new year on saturday not observed friday", d(2021, time.December, 31), false},
		{"independence day on saturday observed friday", d(2020, time.July, 3), true},
		{"memorial day 2019", d(2019, time.May, 27), true},
		{"thanksgiving 2019", d(2019, time.November, 28), true},
		{"columbus day is a trading day", d(2018, time.October, 8), false},
		{"saturday", d(2018, time.October, 6), true},
		{"plain tuesday", d(2018, time.October, 9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.off, cal.IsDayOff(tt.date))
		})
	}
}

func TestUSAFederal(t *testing.T) {
	cal := build(t, USAFederalName)

	assert.Equal(t, 10, cal.CountYearlyEvents())
	assert.False(t, cal.ContainsEventKey(NameGoodFriday))

	assert.Equal(t, []time.Time{d(2018, time.October, 8), d(2019, time.October, 14)},
		cal.EventDatesBetween(NameColumbusDay, d(2018, time.January, 1), d(2019, time.December, 31)))

	assert.True(t, cal.IsDayOff(d(2018, time.November, 12)), "veteran's day on sunday observed monday")
	assert.Equal(t, []string{NameVeteransDay}, cal.EventsOnDate(d(2018, time.November, 12), false, true))
}

func TestUSAFederal_ValidFrom(t *testing.T) {
	cal := build(t, USAFederalName)

	assert.Empty(t, cal.EventDatesBetween(NameMartinLutherKingDay, d(1980, time.January, 1), d(1985, time.December, 31)))
	got, err := cal.EventDatesBetweenYears(NameMartinLutherKingDay, 1986, 1986)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{d(1986, time.January, 20)}, got)
}

func TestUSAObservance(t *testing.T) {
	cal := build(t, USAObservanceName)

	assert.False(t, cal.IsDayOff(d(2019, time.February, 14)))
	assert.Equal(t, []string{NameValentinesDay}, cal.EventsOnDate(d(2019, time.February, 14), true, false))
	assert.Empty(t, cal.EventsOnDate(d(2019, time.February, 14), false, true))

	assert.False(t, cal.IsDayOff(d(2018, time.October, 8)), "columbus day is a workday here")
	assert.Equal(t, []string{NameGoodFriday}, cal.EventsOnDate(d(2018, time.March, 30), true, true))
	assert.Equal(t, []string{NameEasterSunday, "Sunday"}, cal.EventsOnDate(d(2018, time.April, 1), true, true))
}

func TestApply_Duplicate(t *testing.T) {
	cal := calendar.New()
	require.NoError(t, Apply(cal, NYSEName))

	err := Apply(cal, USAFederalName)
	require.Error(t, err)
	assert.True(t, calendar.IsDuplicateKey(err))
	assert.Contains(t, err.Error(), "preset usa-federal")
}

func TestWeekends(t *testing.T) {
	cal := calendar.New()
	require.NoError(t, Weekends(cal))

	assert.True(t, cal.IsDayOff(d(2024, time.June, 1)))
	assert.True(t, cal.IsDayOff(d(2024, time.June, 2)))
	assert.False(t, cal.IsDayOff(d(2024, time.June, 3)))
	assert.Equal(t, []string{NameWeekend}, cal.KeysWeeklyEvents())
}
