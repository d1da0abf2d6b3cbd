package calendar

import (
	"fmt"
	"time"
)

// tickDuration is the rounding resolution. Instants are measured in ticks
// from 0001-01-01T00:00:00.
const tickDuration = 100 * time.Nanosecond

var zeroUnix = MinDate.Unix()

func ticks(t time.Time) int64 {
	naive := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return (naive.Unix()-zeroUnix)*int64(time.Second/tickDuration) + int64(naive.Nanosecond())/int64(tickDuration)
}

// RoundToInterval rounds t to the nearest multiple of interval measured from
// the zero instant. Ties round up. The wall clock of t is treated as naive and
// the result keeps t's location. The interval must be a positive multiple of
// 100ns.
func RoundToInterval(t time.Time, interval time.Duration) (time.Time, error) {
	if interval < tickDuration {
		return time.Time{}, newInvalidArgument("interval",
			fmt.Sprintf("interval = %s, must be at least %s", interval, tickDuration))
	}
	if interval%tickDuration != 0 {
		return time.Time{}, newInvalidArgument("interval",
			fmt.Sprintf("interval = %s, must be a multiple of %s", interval, tickDuration))
	}
	return roundToInterval(t, interval), nil
}

func roundToInterval(t time.Time, interval time.Duration) time.Time {
	span := int64(interval / tickDuration)
	half := (span + 1) >> 1
	offset := half - (ticks(t)+half)%span
	return t.Add(time.Duration(offset) * tickDuration)
}

// RoundToHour rounds t to the nearest hour.
func RoundToHour(t time.Time) time.Time {
	return roundToInterval(t, time.Hour)
}

// RoundToMinute rounds t to the nearest minute.
func RoundToMinute(t time.Time) time.Time {
	return roundToInterval(t, time.Minute)
}

// RoundToSecond rounds t to the nearest second.
func RoundToSecond(t time.Time) time.Time {
	return roundToInterval(t, time.Second)
}

// TimeID formats the time of day as HHmmssfff, e.g. "233647854".
func TimeID(t time.Time) string {
	return fmt.Sprintf("%02d%02d%02d%03d", t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))
}

// TimeIDToHour returns the TimeID of t rounded to the nearest hour.
func TimeIDToHour(t time.Time) string {
	return TimeID(RoundToHour(t))
}

// TimeIDToMinute returns the TimeID of t rounded to the nearest minute.
func TimeIDToMinute(t time.Time) string {
	return TimeID(RoundToMinute(t))
}

// TimeIDToSecond returns the TimeID of t rounded to the nearest second.
func TimeIDToSecond(t time.Time) string {
	return TimeID(RoundToSecond(t))
}

// TimeIDToInterval returns the TimeID of t rounded to interval.
func TimeIDToInterval(t time.Time, interval time.Duration) (string, error) {
	rounded, err := RoundToInterval(t, interval)
	if err != nil {
		return "", err
	}
	return TimeID(rounded), nil
}
