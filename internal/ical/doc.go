// Package ical exports a calendar's occurrences as an RFC 5545 iCalendar
// stream.
//
// Rules whose pattern has an exact RRULE equivalent become one recurring
// all-day VEVENT bounded by UNTIL. Everything else (weekend-shifted yearly
// dates, calculated dates, dated events) is expanded into one VEVENT per
// occurrence. Every VEVENT carries X-THISDATE-DAY-OFF so consumers can tell
// holidays from workday annotations.
package ical
