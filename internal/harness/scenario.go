package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/thisdate/internal/calendar"
)

// Scenario builds a calendar and checks a sequence of steps against it.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Calendar is a definition document (name, presets, events).
	Calendar map[string]any `yaml:"calendar"`

	// Steps run in order against the calendar.
	Steps []Step `yaml:"steps"`
}

// Step is a single query or mutation. Which fields apply depends on Op.
type Step struct {
	Op       string         `yaml:"op"`
	Date     string         `yaml:"date,omitempty"`
	From     string         `yaml:"from,omitempty"`
	To       string         `yaml:"to,omitempty"`
	FromYear int            `yaml:"from_year,omitempty"`
	ToYear   int            `yaml:"to_year,omitempty"`
	N        int            `yaml:"n,omitempty"`
	Name     string         `yaml:"name,omitempty"`
	Category string         `yaml:"category,omitempty"`
	Event    map[string]any `yaml:"event,omitempty"`

	// Workdays and DaysOff filter events_on; both default to true.
	Workdays *bool `yaml:"workdays,omitempty"`
	DaysOff  *bool `yaml:"days_off,omitempty"`

	// Expect is optional. Without it the step only records its trace.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists the expected outcome of a step. Only the fields relevant to
// the step's op are compared.
type Expect struct {
	Events []string `yaml:"events,omitempty"`
	Dates  []string `yaml:"dates,omitempty"`
	Date   string   `yaml:"date,omitempty"`
	Value  *bool    `yaml:"value,omitempty"`
	Count  *int     `yaml:"count,omitempty"`

	// Error is the expected error code. Any step outcome other than an error
	// with this code fails.
	Error string `yaml:"error,omitempty"`
}

// Step operations.
const (
	OpEventsOn      = "events_on"
	OpIsDayOff      = "is_day_off"
	OpIsWorkday     = "is_workday"
	OpAddWorkdays   = "add_workdays"
	OpBetween       = "between"
	OpBetweenYears  = "between_years"
	OpEventsBetween = "events_between"
	OpAdd           = "add"
	OpRemove        = "remove"
	OpCount         = "count"
	OpPopulate      = "populate"
)

var categories = map[string]calendar.Category{
	calendar.CategoryYearly.String():  calendar.CategoryYearly,
	calendar.CategoryMonthly.String(): calendar.CategoryMonthly,
	calendar.CategoryWeekly.String():  calendar.CategoryWeekly,
	calendar.CategoryDated.String():   calendar.CategoryDated,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

func validateStep(s Step) error {
	require := func(ok bool, field string) error {
		if !ok {
			return fmt.Errorf("%s is required for %s", field, s.Op)
		}
		return nil
	}
	checkDates := func(optional bool, fields ...string) error {
		for _, f := range fields {
			v := map[string]string{"date": s.Date, "from": s.From, "to": s.To}[f]
			if v == "" {
				if optional {
					continue
				}
				return fmt.Errorf("%s is required for %s", f, s.Op)
			}
			if _, err := time.Parse(time.DateOnly, v); err != nil {
				return fmt.Errorf("%s: invalid date %q", f, v)
			}
		}
		return nil
	}
	dates := func(fields ...string) error { return checkDates(false, fields...) }

	switch s.Op {
	case "":
		return fmt.Errorf("op is required")
	case OpEventsOn, OpIsDayOff, OpIsWorkday, OpAddWorkdays:
		return dates("date")
	case OpBetween:
		if err := require(s.Name != "", "name"); err != nil {
			return err
		}
		return checkDates(true, "from", "to")
	case OpEventsBetween:
		return dates("from", "to")
	case OpBetweenYears:
		return require(s.Name != "", "name")
	case OpAdd:
		return require(len(s.Event) > 0, "event")
	case OpRemove:
		return require(s.Name != "", "name")
	case OpCount:
		if _, ok := categories[s.Category]; s.Category != "" && !ok {
			return fmt.Errorf("unknown category %q", s.Category)
		}
		return nil
	case OpPopulate:
		return require(s.FromYear != 0 && s.ToYear != 0, "from_year and to_year")
	}
	return fmt.Errorf("unknown op %q", s.Op)
}
