package calendar

import (
	"fmt"
	"time"
)

// CalculatedKind selects a formula-derived yearly event.
type CalculatedKind int

const (
	// EasterSundayKind is Western Easter Sunday.
	EasterSundayKind CalculatedKind = iota + 1

	// GoodFridayKind is the Friday two days before Easter Sunday.
	GoodFridayKind
)

// Names accepted by AddYearlyCalculatedEvent.
const (
	EasterSundayName = "Easter Sunday"
	GoodFridayName   = "Good Friday"
)

// String returns the event name associated with the kind.
func (k CalculatedKind) String() string {
	switch k {
	case EasterSundayKind:
		return EasterSundayName
	case GoodFridayKind:
		return GoodFridayName
	}
	return fmt.Sprintf("CalculatedKind(%d)", int(k))
}

// calculatedKindFor maps a registration name to its kind. The match is exact.
func calculatedKindFor(name string) (CalculatedKind, bool) {
	switch name {
	case EasterSundayName:
		return EasterSundayKind, true
	case GoodFridayName:
		return GoodFridayKind, true
	}
	return 0, false
}

// Calculate returns the date of the calculated event in year.
func Calculate(kind CalculatedKind, year int) (time.Time, error) {
	switch kind {
	case EasterSundayKind:
		return EasterSunday(year)
	case GoodFridayKind:
		return GoodFriday(year)
	}
	return time.Time{}, newInvalidArgument("kind", fmt.Sprintf("unsupported calculated event %s", kind))
}

// EasterSunday returns the Gregorian Easter Sunday of year.
func EasterSunday(year int) (time.Time, error) {
	if err := checkYear("year", year); err != nil {
		return time.Time{}, err
	}
	return easterSunday(year), nil
}

// GoodFriday returns the Friday before Easter Sunday of year.
func GoodFriday(year int) (time.Time, error) {
	if err := checkYear("year", year); err != nil {
		return time.Time{}, err
	}
	return AddDays(easterSunday(year), -2), nil
}

func easterSunday(y int) time.Time {
	g := y % 19
	c := y / 100
	h := (c - c/4 - (8*c+13)/25 + 19*g + 15) % 30
	i := h - h/28*(1-h/28*(29/(h+1))*((21-g)/11))

	day := i - (y+y/4+i+2-c+c/4)%7 + 28
	month := time.March
	if day > 31 {
		month = time.April
		day -= 31
	}
	return Date(y, month, day)
}
