package presets

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/roach88/thisdate/internal/calendar"
)

// Preset names accepted by Lookup, Apply and Build.
const (
	NYSEName          = "nyse"
	USAFederalName    = "usa-federal"
	USAObservanceName = "usa-observance"
)

// ErrUnknownPreset is returned for a preset name that is not registered.
var ErrUnknownPreset = errors.New("unknown preset")

// ApplyFunc registers a preset's rules on cal.
type ApplyFunc func(cal *calendar.Calendar) error

type preset struct {
	title string
	apply ApplyFunc
}

var registry = map[string]preset{
	NYSEName:          {title: "NYSE", apply: NYSE},
	USAFederalName:    {title: "USA Federal", apply: USAFederal},
	USAObservanceName: {title: "USA Observance", apply: USAObservance},
}

// Names returns the registered preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the registration function for a preset name.
func Lookup(name string) (ApplyFunc, bool) {
	p, ok := registry[name]
	return p.apply, ok
}

// Apply registers the named preset on cal.
func Apply(cal *calendar.Calendar, name string) error {
	p, ok := registry[name]
	if !ok {
		return fmt.Errorf("%w %q (valid: %v)", ErrUnknownPreset, name, Names())
	}
	if err := p.apply(cal); err != nil {
		return fmt.Errorf("preset %s: %w", name, err)
	}
	return nil
}

// Build returns a fresh calendar holding only the named preset.
func Build(name string) (*calendar.Calendar, error) {
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (valid: %v)", ErrUnknownPreset, name, Names())
	}
	cal := calendar.New(calendar.WithName(p.title))
	if err := Apply(cal, name); err != nil {
		return nil, err
	}
	return cal, nil
}

func all(cal *calendar.Calendar, steps ...ApplyFunc) error {
	for _, step := range steps {
		if err := step(cal); err != nil {
			return err
		}
	}
	return nil
}

func weeklyDaysOff(cal *calendar.Calendar) error {
	if err := WeeklyDayOff(cal, time.Saturday); err != nil {
		return err
	}
	return WeeklyDayOff(cal, time.Sunday)
}

// NYSE registers the New York Stock Exchange holidays. Saturday holidays are
// not observed on Friday except for Independence Day and Christmas.
func NYSE(cal *calendar.Calendar) error {
	return all(cal,
		func(c *calendar.Calendar) error { return NewYearsDay(c, true, false, true) },
		func(c *calendar.Calendar) error { return MartinLutherKingDay(c, true) },
		func(c *calendar.Calendar) error { return PresidentsDay(c, true) },
		func(c *calendar.Calendar) error { return GoodFriday(c, true) },
		func(c *calendar.Calendar) error { return MemorialDay(c, true) },
		func(c *calendar.Calendar) error { return IndependenceDay(c, true, true, true) },
		func(c *calendar.Calendar) error { return LaborDay(c, true) },
		func(c *calendar.Calendar) error { return ThanksgivingDay(c, true) },
		func(c *calendar.Calendar) error { return ChristmasDay(c, true, true, true) },
		weeklyDaysOff,
	)
}

// USAFederal registers the United States federal holidays.
func USAFederal(cal *calendar.Calendar) error {
	return all(cal,
		func(c *calendar.Calendar) error { return NewYearsDay(c, true, false, true) },
		func(c *calendar.Calendar) error { return MartinLutherKingDay(c, true) },
		func(c *calendar.Calendar) error { return PresidentsDay(c, true) },
		func(c *calendar.Calendar) error { return MemorialDay(c, true) },
		func(c *calendar.Calendar) error { return IndependenceDay(c, true, true, true) },
		func(c *calendar.Calendar) error { return LaborDay(c, true) },
		func(c *calendar.Calendar) error { return ColumbusDay(c, true) },
		func(c *calendar.Calendar) error { return VeteransDay(c, true, true, true) },
		func(c *calendar.Calendar) error { return ThanksgivingDay(c, true) },
		func(c *calendar.Calendar) error { return ChristmasDay(c, true, true, true) },
		weeklyDaysOff,
	)
}

// USAObservance registers the federal holidays plus common observances that
// are workdays. Columbus Day and Veteran's Day are observed as workdays.
func USAObservance(cal *calendar.Calendar) error {
	return all(cal,
		func(c *calendar.Calendar) error { return NewYearsDay(c, true, false, true) },
		func(c *calendar.Calendar) error { return MartinLutherKingDay(c, true) },
		func(c *calendar.Calendar) error { return PresidentsDay(c, true) },
		func(c *calendar.Calendar) error { return MemorialDay(c, true) },
		func(c *calendar.Calendar) error { return IndependenceDay(c, true, true, true) },
		func(c *calendar.Calendar) error { return LaborDay(c, true) },
		func(c *calendar.Calendar) error { return ColumbusDay(c, false) },
		func(c *calendar.Calendar) error { return VeteransDay(c, false, true, true) },
		func(c *calendar.Calendar) error { return ThanksgivingDay(c, true) },
		func(c *calendar.Calendar) error { return ChristmasDay(c, true, true, true) },
		func(c *calendar.Calendar) error { return ValentinesDay(c, false) },
		func(c *calendar.Calendar) error { return MothersDay(c, false) },
		func(c *calendar.Calendar) error { return FathersDay(c, false) },
		func(c *calendar.Calendar) error { return GoodFriday(c, false) },
		func(c *calendar.Calendar) error { return EasterSunday(c, false) },
		func(c *calendar.Calendar) error { return GroundhogDay(c, false) },
		func(c *calendar.Calendar) error { return Halloween(c, false) },
		func(c *calendar.Calendar) error { return SaintPatricksDay(c, false) },
		weeklyDaysOff,
	)
}
