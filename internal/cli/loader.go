package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/roach88/thisdate/internal/calendar"
	"github.com/roach88/thisdate/internal/definition"
	"github.com/roach88/thisdate/internal/presets"
)

// Error codes reported by commands in addition to the calendar codes
// (INVALID_ARGUMENT, DUPLICATE_KEY, OUT_OF_RANGE) and the definition codes
// (E101..E104).
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeBadArgument = "E002" // Argument could not be parsed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeStore       = "E008" // Warehouse error
	ErrCodeTestFailed  = "E_TEST_FAILED"
)

// loadCalendar builds the calendar selected by the configuration: the
// definition file when set, otherwise the preset.
func (o *RootOptions) loadCalendar() (*calendar.Calendar, error) {
	cfg := o.settings().Calendar

	if cfg.Definition != "" {
		def, err := definition.LoadFile(cfg.Definition)
		if err != nil {
			return nil, err
		}
		return definition.Build(def)
	}
	return presets.Build(cfg.Preset)
}

// errorCode picks the code reported for err.
func errorCode(err error) string {
	if code := calendar.CodeOf(err); code != "" {
		return string(code)
	}
	var le *definition.LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	if errors.Is(err, presets.ErrUnknownPreset) {
		return ErrCodeBadArgument
	}
	return ErrCodeGeneric
}

// failCalendar reports a calendar load failure as a command error.
func failCalendar(f *OutputFormatter, err error) error {
	return f.Fail(ExitCommandError, errorCode(err), err.Error(), nil)
}

// parseDateArg parses a yyyy-mm-dd argument.
func parseDateArg(name, value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date %q (want yyyy-mm-dd)", name, value)
	}
	return t, nil
}

// parseIntArg parses an integer argument.
func parseIntArg(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", name, value)
	}
	return n, nil
}

// badArgument reports an unparsable argument as a command error.
func badArgument(f *OutputFormatter, err error) error {
	return f.Fail(ExitCommandError, ErrCodeBadArgument, err.Error(), nil)
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
