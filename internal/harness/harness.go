package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/roach88/thisdate/internal/calendar"
	"github.com/roach88/thisdate/internal/definition"
	"github.com/roach88/thisdate/internal/store"
	"github.com/roach88/thisdate/internal/testutil"
)

// Harness executes the steps of one scenario against one calendar.
type Harness struct {
	cal   *calendar.Calendar
	store *store.Store
	clock *testutil.DeterministicClock
	ids   *testutil.SequenceIDGenerator
}

// outcome is what a step produced: a result value or an error.
type outcome struct {
	value any
	err   error
}

// Run executes a scenario and returns the result.
//
// The calendar is built from the scenario's definition block. Populate steps
// share one in-memory warehouse, opened on first use, with a deterministic
// clock and load IDs so traces are reproducible.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	def, err := definition.FromMap(scenario.Calendar)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar: %w", err)
	}
	cal, err := definition.Build(def)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar: %w", err)
	}

	h := &Harness{
		cal:   cal,
		clock: testutil.NewDeterministicClock(testutil.DefaultEpoch, time.Second),
		ids:   testutil.NewSequenceIDGenerator("load"),
	}
	defer h.close()

	result := NewResult()
	for i, step := range scenario.Steps {
		out, err := h.execute(ctx, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}

		ev := TraceEvent{Op: step.Op, Args: stepArgs(step), Result: out.value}
		if out.err != nil {
			ev.Error = errorCode(out.err)
		}
		result.AddTrace(ev)

		if step.Expect != nil {
			for _, msg := range compare(step, out) {
				result.AddError(fmt.Sprintf("step %d (%s): %s", i, step.Op, msg))
			}
		}
	}

	slog.Info("scenario run",
		"scenario", scenario.Name,
		"steps", len(scenario.Steps),
		"pass", result.Pass)
	return result, nil
}

func (h *Harness) close() {
	if h.store != nil {
		_ = h.store.Close()
	}
}

// execute runs one step. Calendar errors are part of the outcome; only
// infrastructure failures are returned as errors.
func (h *Harness) execute(ctx context.Context, s Step) (outcome, error) {
	switch s.Op {
	case OpEventsOn:
		names := h.cal.EventsOnDate(mustDate(s.Date), boolOr(s.Workdays, true), boolOr(s.DaysOff, true))
		return outcome{value: nonNil(names)}, nil
	case OpIsDayOff:
		return outcome{value: h.cal.IsDayOff(mustDate(s.Date))}, nil
	case OpIsWorkday:
		return outcome{value: h.cal.IsWorkDay(mustDate(s.Date))}, nil
	case OpAddWorkdays:
		d, err := h.cal.AddWorkdays(mustDate(s.Date), s.N)
		if err != nil {
			return outcome{err: err}, nil
		}
		return outcome{value: formatDate(d)}, nil
	case OpBetween:
		return outcome{value: formatDates(h.cal.EventDatesBetween(s.Name, optionalDate(s.From), optionalDate(s.To)))}, nil
	case OpBetweenYears:
		dates, err := h.cal.EventDatesBetweenYears(s.Name, s.FromYear, s.ToYear)
		if err != nil {
			return outcome{err: err}, nil
		}
		return outcome{value: formatDates(dates)}, nil
	case OpEventsBetween:
		occ := h.cal.EventsBetween(mustDate(s.From), mustDate(s.To))
		lines := make([]string, len(occ))
		for i, o := range occ {
			lines[i] = formatDate(o.Date) + " " + o.Name
		}
		return outcome{value: lines}, nil
	case OpAdd:
		return outcome{err: h.add(s.Event)}, nil
	case OpRemove:
		return outcome{value: h.cal.RemoveEvent(s.Name)}, nil
	case OpCount:
		return outcome{value: h.count(s.Category)}, nil
	case OpPopulate:
		return h.populate(ctx, s.FromYear, s.ToYear)
	}
	return outcome{}, fmt.Errorf("unknown op %q", s.Op)
}

func (h *Harness) add(event map[string]any) error {
	def, err := definition.FromMap(map[string]any{"events": []any{event}})
	if err != nil {
		return err
	}
	return def.Events[0].Register(h.cal)
}

func (h *Harness) count(category string) int {
	if category == "" {
		return h.cal.CountEvents()
	}
	switch categories[category] {
	case calendar.CategoryYearly:
		return h.cal.CountYearlyEvents()
	case calendar.CategoryMonthly:
		return h.cal.CountMonthlyEvents()
	case calendar.CategoryWeekly:
		return h.cal.CountWeeklyEvents()
	}
	return h.cal.CountDatedEvents()
}

func (h *Harness) populate(ctx context.Context, fromYear, toYear int) (outcome, error) {
	if h.store == nil {
		st, err := store.Open(":memory:")
		if err != nil {
			return outcome{}, fmt.Errorf("failed to create in-memory store: %w", err)
		}
		h.store = st
	}

	res, err := h.store.PopulateDateDimension(ctx, h.cal, fromYear, toYear,
		store.WithClock(h.clock),
		store.WithIDGenerator(h.ids))
	if err != nil {
		if calendar.CodeOf(err) != "" {
			return outcome{err: err}, nil
		}
		return outcome{}, err
	}
	return outcome{value: res.Rows}, nil
}

func stepArgs(s Step) map[string]any {
	args := map[string]any{}
	set := func(key string, v any, ok bool) {
		if ok {
			args[key] = v
		}
	}
	set("date", s.Date, s.Date != "")
	set("from", s.From, s.From != "")
	set("to", s.To, s.To != "")
	set("from_year", s.FromYear, s.FromYear != 0)
	set("to_year", s.ToYear, s.ToYear != 0)
	set("n", s.N, s.Op == OpAddWorkdays)
	set("name", s.Name, s.Name != "")
	set("category", s.Category, s.Category != "")
	set("event", s.Event, len(s.Event) > 0)
	set("workdays", boolOr(s.Workdays, true), s.Op == OpEventsOn)
	set("days_off", boolOr(s.DaysOff, true), s.Op == OpEventsOn)
	if len(args) == 0 {
		return nil
	}
	return args
}

// errorCode names err by its calendar or definition error code.
func errorCode(err error) string {
	if code := calendar.CodeOf(err); code != "" {
		return string(code)
	}
	var le *definition.LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return err.Error()
}

// compare returns one message per mismatch between the step's expect block
// and its outcome.
func compare(s Step, out outcome) []string {
	want := s.Expect
	if want.Error != "" {
		if out.err == nil {
			return []string{fmt.Sprintf("expected error %s, got %v", want.Error, out.value)}
		}
		if got := errorCode(out.err); got != want.Error {
			return []string{fmt.Sprintf("expected error %s, got %s", want.Error, got)}
		}
		return nil
	}
	if out.err != nil {
		return []string{fmt.Sprintf("unexpected error: %v", out.err)}
	}

	var msgs []string
	mismatch := func(field string, expected, actual any) {
		msgs = append(msgs, fmt.Sprintf("%s: expected %v, got %v", field, expected, actual))
	}

	switch v := out.value.(type) {
	case []string:
		expected := want.Events
		field := "events"
		if want.Dates != nil {
			expected, field = want.Dates, "dates"
		}
		if expected != nil && !slices.Equal(expected, v) {
			mismatch(field, expected, v)
		}
		if want.Count != nil && *want.Count != len(v) {
			mismatch("count", *want.Count, len(v))
		}
	case bool:
		if want.Value != nil && *want.Value != v {
			mismatch("value", *want.Value, v)
		}
	case string:
		if want.Date != "" && want.Date != v {
			mismatch("date", want.Date, v)
		}
	case int:
		if want.Count != nil && *want.Count != v {
			mismatch("count", *want.Count, v)
		}
	}
	return msgs
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// mustDate parses a date already checked by validateStep.
func mustDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(fmt.Sprintf("harness: unvalidated date %q", s))
	}
	return t
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func formatDates(ts []time.Time) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = formatDate(t)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// optionalDate parses a validated date; empty means unbounded.
func optionalDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	return mustDate(s)
}
