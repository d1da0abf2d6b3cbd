package ical

import (
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode"

	goical "github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/roach88/thisdate/internal/calendar"
)

// ProductID is the default PRODID of exported calendars.
const ProductID = "-//thisdate//Calendar Export//EN"

// Non-standard and less common properties set on every VEVENT.
const (
	PropDayOff       = "X-THISDATE-DAY-OFF"
	PropCalendarName = "X-WR-CALNAME"
	propTransparency = "TRANSP"
	propCategories   = "CATEGORIES"
)

const dateValueLayout = "20060102"

// Option configures Export.
type Option func(*options)

type options struct {
	stamp     time.Time
	productID string
}

// WithStamp sets the DTSTAMP of every VEVENT. Without it the current time is
// used.
func WithStamp(t time.Time) Option {
	return func(o *options) { o.stamp = t }
}

// WithProductID overrides ProductID.
func WithProductID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.productID = id
		}
	}
}

// Export returns a VCALENDAR holding every occurrence of cal's rules in
// [from, to]. Reversed bounds are swapped; both bounds are required.
//
// A rule with an RRULE equivalent and more than one occurrence becomes a
// single recurring VEVENT starting at its first occurrence with UNTIL set to
// its last. Other rules produce one VEVENT per occurrence.
func Export(cal *calendar.Calendar, from, to time.Time, opts ...Option) (*goical.Calendar, error) {
	if from.IsZero() || to.IsZero() {
		return nil, calendar.InvalidArgument("range", "export needs both a from and a to date")
	}
	from, to = calendar.Truncate(from), calendar.Truncate(to)
	if from.After(to) {
		from, to = to, from
	}

	o := options{productID: ProductID}
	for _, opt := range opts {
		opt(&o)
	}
	if o.stamp.IsZero() {
		o.stamp = time.Now()
	}

	out := goical.NewCalendar()
	out.Props.SetText(goical.PropVersion, "2.0")
	out.Props.SetText(goical.PropProductID, o.productID)
	out.Props.SetText(goical.PropCalendarScale, "GREGORIAN")
	if name := cal.Name(); name != "" {
		out.Props.SetText(PropCalendarName, name)
	}

	var recurring, single int
	for _, r := range cal.Snapshot() {
		dates := r.OccurrencesBetween(from, to)
		if len(dates) == 0 {
			continue
		}

		if opt, ok := RRule(r); ok && len(dates) > 1 {
			ev := newEvent(r, dates[0], o.stamp)
			rule := goical.NewProp(goical.PropRecurrenceRule)
			rule.Value = recurrenceValue(opt, dates[len(dates)-1])
			ev.Props.Set(rule)
			out.Children = append(out.Children, ev.Component)
			recurring++
			continue
		}

		for _, d := range dates {
			out.Children = append(out.Children, newEvent(r, d, o.stamp).Component)
			single++
		}
	}

	slog.Info("calendar exported",
		"calendar", cal.Name(),
		"from", from.Format(time.DateOnly),
		"to", to.Format(time.DateOnly),
		"recurring", recurring,
		"single", single)
	return out, nil
}

// Encode writes cal as an iCalendar stream.
func Encode(w io.Writer, cal *goical.Calendar) error {
	return goical.NewEncoder(w).Encode(cal)
}

// recurrenceValue renders opt with an all-day UNTIL. The library formats
// UNTIL as a UTC date-time, which RFC 5545 forbids next to a DATE DTSTART.
func recurrenceValue(opt *rrule.ROption, until time.Time) string {
	opt.Dtstart = time.Time{}
	opt.Until = time.Time{}
	return opt.RRuleString() + ";UNTIL=" + until.Format(dateValueLayout)
}

func newEvent(r calendar.Rule, date, stamp time.Time) *goical.Event {
	ev := goical.NewEvent()
	ev.Props.SetText(goical.PropUID, UID(r.Name, date))
	ev.Props.SetDateTime(goical.PropDateTimeStamp, stamp.UTC())
	ev.Props.SetDate(goical.PropDateTimeStart, date)
	ev.Props.SetDate(goical.PropDateTimeEnd, calendar.AddDays(date, 1))
	ev.Props.SetText(goical.PropSummary, r.Name)
	ev.Props.SetText(propCategories, strings.ToUpper(r.Category().String()))

	if r.DayOff {
		ev.Props.SetText(propTransparency, "OPAQUE")
		ev.Props.SetText(PropDayOff, "TRUE")
	} else {
		ev.Props.SetText(propTransparency, "TRANSPARENT")
		ev.Props.SetText(PropDayOff, "FALSE")
	}
	return ev
}

// UID returns the stable identifier of the occurrence of name starting on
// date, e.g. "20161124-thanksgiving-day@thisdate".
func UID(name string, date time.Time) string {
	return date.Format(dateValueLayout) + "-" + slug(name) + "@thisdate"
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if r == '\'' {
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
