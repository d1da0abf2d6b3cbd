package presets

import (
	"time"

	"github.com/roach88/thisdate/internal/calendar"
)

// Holiday names as registered by this package.
const (
	NameChristmasDay        = "Christmas Day"
	NameColumbusDay         = "Columbus Day"
	NameEasterSunday        = calendar.EasterSundayName
	NameFathersDay          = "Father's Day"
	NameGoodFriday          = calendar.GoodFridayName
	NameGroundhogDay        = "Groundhog Day"
	NameHalloween           = "Halloween"
	NameIndependenceDay     = "Independence Day"
	NameLaborDay            = "Labor Day"
	NameMartinLutherKingDay = "Martin Luther King Jr. Day"
	NameMemorialDay         = "Memorial Day"
	NameMothersDay          = "Mother's Day"
	NameNewYearsDay         = "New Year's Day"
	NamePresidentsDay       = "Presidents Day"
	NameSaintPatricksDay    = "Saint Patrick's Day"
	NameThanksgivingDay     = "Thanksgiving Day"
	NameValentinesDay       = "Valentine's Day"
	NameVeteransDay         = "Veteran's Day"
	NameWeekend             = "Weekend"
)

func since(year int) calendar.RuleOption {
	return calendar.WithValidFrom(calendar.Date(year, time.January, 1))
}

// ChristmasDay registers December 25.
func ChristmasDay(cal *calendar.Calendar, dayOff, saturdayBack, sundayForward bool) error {
	return cal.AddYearlyDateEvent(NameChristmasDay, time.December, 25, dayOff, saturdayBack, sundayForward)
}

// ColumbusDay registers the second Monday of October.
func ColumbusDay(cal *calendar.Calendar, dayOff bool) error {
	return cal.AddYearlyWeekdayForwardEvent(NameColumbusDay, time.October, time.Monday, 2, dayOff, since(1492))
}

// EasterSunday registers Western Easter.
func EasterSunday(cal *calendar.Calendar, dayOff bool) error {
	return cal.AddYearlyCalculatedEvent(NameEasterSunday, dayOff, since(30))
}

// GoodFriday registers the Friday before Easter Sunday.
func GoodFriday(cal *calendar.Calendar, dayOff bool) error {
	return cal.AddYearlyCalculatedEvent(NameGoodFriday, dayOff, since(30))
}

// FathersDay registers the third Sunday of June.
func FathersDay(cal *calendar.Calendar, dayOff bool) error {
	return cal.AddYearlyWeekdayForwardEvent(NameFathersDay, time.June, time.Sunday, 3, dayOff, since(1910))
}

// GroundhogDay registers February 2.
func GroundhogDay(cal *calendar.Calendar, dayOff bool) error {
	return cal.AddYearlyDateEvent(NameGroundhogDay, time.February, 2, dayOff, false, false, since(1887))
}

// Halloween registers October 31.
func Halloween(cal *calendar.Calendar, dayOff bool) error {
	return cal.AddYearlyDateEvent(NameHalloween, time.October, 31, dayOff, false, false, since(1850))
}

// IndependenceDay registers July 4.
func IndependenceDay(cal *calendar.Calendar, dayOff, saturdayBack, sundayForward bool) error {
	return cal.AddYearlyDateEvent(NameIndependenceDay, time.July, 4, dayOff, saturdayBack, sundayForward, since(1776))
}

// LaborDay registers the first Monday of September.
func LaborDay(cal *calendar.Calendar, dayOff bool) error {
	return cal.AddYearlyWeekdayForwardEvent(NameLaborDay, time.September, time.Monday, 1, dayOff, since(1894))
}

// MartinLutherKingDay registers the third Monday of January.
func MartinLutherKingDay(cal *calendar.Calendar, dayOff bool) error {
	return cal.AddYearlyWeekdayForwardEvent(NameMartinLutherKingDay, time.January, time.Monday, 3, dayOff, since(1986))
}

// MemorialDay registers the last Monday of May.
func MemorialDay(cal *calendar.Calendar, dayOff bool) error {
	return cal.AddYearlyWeekdayReverseEvent(NameMemorialDay, time.May, time.Monday, 1, dayOff, since(1868))
}

// MothersDay registers the second Sunday of May.
func MothersDay(cal *calendar.Calendar, dayOff bool) error {
	return cal.AddYearlyWeekdayForwardEvent(NameMothersDay, time.May, time.Sunday, 2, dayOff, since(1914))
}

// NewYearsDay registers January 1.
func NewYearsDay(cal *calendar.Calendar, dayOff, saturdayBack, sundayForward bool) error {
	return cal.AddYearlyDateEvent(NameNewYearsDay, time.January, 1, dayOff, saturdayBack, sundayForward)
}

// PresidentsDay registers the third Monday of February.
func PresidentsDay(cal *calendar.Calendar, dayOff bool) error {
	return cal.AddYearlyWeekdayForwardEvent(NamePresidentsDay, time.February, time.Monday, 3, dayOff, since(1971))
}

// SaintPatricksDay registers March 17.
func SaintPatricksDay(cal *calendar.Calendar, dayOff bool) error {
	return cal.AddYearlyDateEvent(NameSaintPatricksDay, time.March, 17, dayOff, false, false, since(1762))
}

// ThanksgivingDay registers the fourth Thursday of November.
func ThanksgivingDay(cal *calendar.Calendar, dayOff bool) error {
	return cal.AddYearlyWeekdayForwardEvent(NameThanksgivingDay, time.November, time.Thursday, 4, dayOff, since(1619))
}

// ValentinesDay registers February 14.
func ValentinesDay(cal *calendar.Calendar, dayOff bool) error {
	return cal.AddYearlyDateEvent(NameValentinesDay, time.February, 14, dayOff, false, false, since(300))
}

// VeteransDay registers November 11.
func VeteransDay(cal *calendar.Calendar, dayOff, saturdayBack, sundayForward bool) error {
	return cal.AddYearlyDateEvent(NameVeteransDay, time.November, 11, dayOff, saturdayBack, sundayForward, since(1954))
}

// Weekends registers Saturday and Sunday as a single weekly day off.
func Weekends(cal *calendar.Calendar) error {
	return cal.AddWeeklyEvent(NameWeekend, []time.Weekday{time.Sunday, time.Saturday}, true, 1)
}

// WeeklyDayOff registers every occurrence of weekday as a day off, named
// after the weekday.
func WeeklyDayOff(cal *calendar.Calendar, weekday time.Weekday) error {
	return cal.AddWeeklyDayOff(weekday)
}
