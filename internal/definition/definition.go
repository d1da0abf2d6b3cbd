package definition

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/thisdate/internal/calendar"
	"github.com/roach88/thisdate/internal/presets"
)

//go:embed schema.cue
var schemaSource string

// Event kinds accepted in definitions.
const (
	KindDated                 = calendar.KindDated
	KindWeekly                = calendar.KindWeekly
	KindWeeklyInMonth         = calendar.KindWeeklyInMonth
	KindMonthlyDay            = calendar.KindMonthlyDay
	KindMonthlyWeekdayForward = calendar.KindMonthlyWeekdayForward
	KindMonthlyWeekdayReverse = calendar.KindMonthlyWeekdayReverse
	KindMonthlyLastDay        = calendar.KindMonthlyLastDay
	KindYearlyDate            = calendar.KindYearlyDate
	KindYearlyWeekdayForward  = calendar.KindYearlyWeekdayForward
	KindYearlyWeekdayReverse  = calendar.KindYearlyWeekdayReverse
	KindYearlyCalculated      = calendar.KindYearlyCalculated
)

const dateLayout = "2006-01-02"

// Definition is a decoded calendar definition.
type Definition struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Presets []string `json:"presets" yaml:"presets,omitempty"`
	Events  []Event  `json:"events" yaml:"events,omitempty"`
}

// Event is one rule of a definition. Which fields apply depends on Kind.
type Event struct {
	Name          string   `json:"name" yaml:"name"`
	Kind          string   `json:"kind" yaml:"kind"`
	DayOff        bool     `json:"day_off" yaml:"day_off"`
	ValidFrom     string   `json:"valid_from,omitempty" yaml:"valid_from,omitempty"`
	ValidTo       string   `json:"valid_to,omitempty" yaml:"valid_to,omitempty"`
	Date          string   `json:"date,omitempty" yaml:"date,omitempty"`
	Weekdays      []string `json:"weekdays,omitempty" yaml:"weekdays,omitempty"`
	Interval      int      `json:"interval,omitempty" yaml:"interval,omitempty"`
	Seed          string   `json:"seed,omitempty" yaml:"seed,omitempty"`
	Weekday       string   `json:"weekday,omitempty" yaml:"weekday,omitempty"`
	Occurrences   []int    `json:"occurrences,omitempty" yaml:"occurrences,omitempty"`
	Day           int      `json:"day,omitempty" yaml:"day,omitempty"`
	Month         int      `json:"month,omitempty" yaml:"month,omitempty"`
	N             int      `json:"n,omitempty" yaml:"n,omitempty"`
	SaturdayBack  bool     `json:"saturday_back,omitempty" yaml:"saturday_back,omitempty"`
	SundayForward bool     `json:"sunday_forward,omitempty" yaml:"sunday_forward,omitempty"`
}

// LoadFile reads a definition from path. Files ending in .cue are compiled
// as CUE; .yaml and .yml files are read as YAML.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("reading definition: %v", err)}
	}
	return LoadBytes(path, data)
}

// LoadBytes decodes data using the extension of filename to pick the reader.
func LoadBytes(filename string, data []byte) (*Definition, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".cue":
		ctx := cuecontext.New()
		return Compile(ctx.CompileBytes(data, cue.Filename(filename)))
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("%s: %v", filename, err)}
		}
		return FromMap(doc)
	default:
		return nil, &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported definition file %q (want .cue, .yaml or .yml)", filename),
		}
	}
}

// FromMap validates a generic document, such as one decoded from YAML.
func FromMap(doc map[string]any) (*Definition, error) {
	if doc == nil {
		doc = map[string]any{}
	}
	ctx := cuecontext.New()
	return Compile(ctx.Encode(doc))
}

// Compile unifies v with the #Definition schema and decodes the result.
func Compile(v cue.Value) (*Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(ErrCodeSchema, err)
	}

	schema := v.Context().CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(ErrCodeSchema, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Definition")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(ErrCodeSchema, err)
	}

	def := &Definition{}
	if err := unified.Decode(def); err != nil {
		return nil, formatCUEError(ErrCodeDecode, err)
	}

	for _, name := range def.Presets {
		if _, ok := presets.Lookup(name); !ok {
			return nil, &LoadError{
				Code:    ErrCodeSchema,
				Field:   "presets",
				Message: fmt.Sprintf("unknown preset %q (valid: %v)", name, presets.Names()),
			}
		}
	}

	for i := range def.Events {
		if err := def.Events[i].check(); err != nil {
			err.Field = fmt.Sprintf("events.%d.%s", i, err.Field)
			return nil, err
		}
	}

	return def, nil
}

// Apply registers the presets and then the events of d on cal, in order. It
// stops at the first failure.
func (d *Definition) Apply(cal *calendar.Calendar) error {
	for _, name := range d.Presets {
		if err := presets.Apply(cal, name); err != nil {
			return err
		}
	}
	for i, ev := range d.Events {
		if err := ev.Register(cal); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, ev.Name, err)
		}
	}

	slog.Debug("definition applied",
		"name", d.Name,
		"presets", len(d.Presets),
		"events", len(d.Events))
	return nil
}

// Build returns a new calendar with d applied.
func Build(d *Definition) (*calendar.Calendar, error) {
	var opts []calendar.Option
	if d.Name != "" {
		opts = append(opts, calendar.WithName(d.Name))
	}
	cal := calendar.New(opts...)
	if err := d.Apply(cal); err != nil {
		return nil, err
	}
	return cal, nil
}

// Register adds the event to cal with the Add method matching its kind.
func (e Event) Register(cal *calendar.Calendar) error {
	window := calendar.WithValidity(parseDate(e.ValidFrom), parseDate(e.ValidTo))
	month := time.Month(e.Month)

	switch e.Kind {
	case KindDated:
		return cal.AddDatedEvent(e.Name, parseDate(e.Date), e.DayOff)
	case KindWeekly:
		weekdays := make([]time.Weekday, len(e.Weekdays))
		for i, name := range e.Weekdays {
			weekdays[i] = weekdayNames[name]
		}
		interval := e.Interval
		if interval == 0 {
			interval = 1
		}
		return cal.AddWeeklyEvent(e.Name, weekdays, e.DayOff, interval, window, calendar.WithSeed(parseDate(e.Seed)))
	case KindWeeklyInMonth:
		return cal.AddWeeklyInMonthEvent(e.Name, weekdayNames[e.Weekday], e.DayOff, e.Occurrences, window)
	case KindMonthlyDay:
		return cal.AddMonthlyDayEvent(e.Name, e.Day, e.DayOff, window)
	case KindMonthlyWeekdayForward:
		return cal.AddMonthlyWeekdayForwardEvent(e.Name, weekdayNames[e.Weekday], e.N, e.DayOff, window)
	case KindMonthlyWeekdayReverse:
		return cal.AddMonthlyWeekdayReverseEvent(e.Name, weekdayNames[e.Weekday], e.N, e.DayOff, window)
	case KindMonthlyLastDay:
		return cal.AddMonthlyLastDayEvent(e.Name, e.DayOff, window)
	case KindYearlyDate:
		return cal.AddYearlyDateEvent(e.Name, month, e.Day, e.DayOff, e.SaturdayBack, e.SundayForward, window)
	case KindYearlyWeekdayForward:
		return cal.AddYearlyWeekdayForwardEvent(e.Name, month, weekdayNames[e.Weekday], e.N, e.DayOff, window)
	case KindYearlyWeekdayReverse:
		return cal.AddYearlyWeekdayReverseEvent(e.Name, month, weekdayNames[e.Weekday], e.N, e.DayOff, window)
	case KindYearlyCalculated:
		return cal.AddYearlyCalculatedEvent(e.Name, e.DayOff, window)
	}
	return fmt.Errorf("unknown event kind %q", e.Kind)
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// check parses the string-typed fields the schema only checks for shape.
func (e Event) check() *LoadError {
	fields := []struct {
		name  string
		value string
	}{
		{"date", e.Date},
		{"valid_from", e.ValidFrom},
		{"valid_to", e.ValidTo},
		{"seed", e.Seed},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, f.value); err != nil {
			return &LoadError{Code: ErrCodeDecode, Field: f.name, Message: fmt.Sprintf("invalid date %q", f.value)}
		}
	}
	if e.Kind == KindDated && e.Date == "" {
		return &LoadError{Code: ErrCodeDecode, Field: "date", Message: "date is required"}
	}
	return nil
}

// parseDate returns the zero time for an empty string. Values have already
// passed check.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
