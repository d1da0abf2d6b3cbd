package dimension

import (
	"fmt"
	"time"

	"github.com/roach88/thisdate/internal/calendar"
)

// TimeRow is one instant of the time dimension.
type TimeRow struct {
	Time                          time.Time
	AmPm                          string
	Hour12                        int
	Hour12LeadingZero             string
	Hour24                        int
	Hour24LeadingZero             string
	Minute                        int
	MinuteLeadingZero             string
	Second                        int
	SecondLeadingZero             string
	RoundToHour                   time.Time
	RoundToMinute                 time.Time
	RoundToSecond                 time.Time
	Time12HourMin                 string
	Time12HourMinAmPm             string
	Time12HourMinSecAmPm          string
	Time12HourMinSecMilliAmPm     string
	Time24HourMinCivilian         string
	Time24HourMinSecCivilian      string
	Time24HourMinSecMilliCivilian string
	Time24HourMinMilitary         string
	Time24HourMinSecMilitary      string
	Time24HourMinSecMilliMilitary string
	TimeID                        string
}

// BuildTime returns the dimension row for t.
func BuildTime(t time.Time) TimeRow {
	return TimeRow{
		Time:                          t,
		AmPm:                          t.Format("PM"),
		Hour12:                        hour12(t),
		Hour12LeadingZero:             t.Format("03"),
		Hour24:                        t.Hour(),
		Hour24LeadingZero:             t.Format("15"),
		Minute:                        t.Minute(),
		MinuteLeadingZero:             t.Format("04"),
		Second:                        t.Second(),
		SecondLeadingZero:             t.Format("05"),
		RoundToHour:                   calendar.RoundToHour(t),
		RoundToMinute:                 calendar.RoundToMinute(t),
		RoundToSecond:                 calendar.RoundToSecond(t),
		Time12HourMin:                 t.Format("3:04"),
		Time12HourMinAmPm:             t.Format("3:04 PM"),
		Time12HourMinSecAmPm:          t.Format("3:04:05 PM"),
		Time12HourMinSecMilliAmPm:     t.Format("3:04:05.000 PM"),
		Time24HourMinCivilian:         t.Format("15:04"),
		Time24HourMinSecCivilian:      t.Format("15:04:05"),
		Time24HourMinSecMilliCivilian: t.Format("15:04:05.000"),
		Time24HourMinMilitary:         t.Format("1504"),
		Time24HourMinSecMilitary:      t.Format("150405"),
		Time24HourMinSecMilliMilitary: t.Format("150405.000"),
		TimeID:                        calendar.TimeID(t),
	}
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

// TimeRows returns one row every increment across the zero day, starting at
// midnight. TimeIDs have millisecond resolution, so increment must be a
// positive whole number of milliseconds.
func TimeRows(increment time.Duration) ([]TimeRow, error) {
	if increment <= 0 {
		return nil, calendar.InvalidArgument("increment",
			fmt.Sprintf("increment = %s, must be greater than zero", increment))
	}
	if increment%time.Millisecond != 0 {
		return nil, calendar.InvalidArgument("increment",
			fmt.Sprintf("increment = %s, must be a whole number of milliseconds", increment))
	}

	start := calendar.MinDate
	end := start.AddDate(0, 0, 1)

	rows := make([]TimeRow, 0, int(end.Sub(start)/increment)+1)
	for t := start; t.Before(end); t = t.Add(increment) {
		rows = append(rows, BuildTime(t))
	}
	return rows, nil
}
