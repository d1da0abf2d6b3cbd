package store

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces load IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 load IDs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Clock supplies the start time recorded for a load.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Progress receives row counts while a populate runs. A
// *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(n int) error
}

type noProgress struct{}

func (noProgress) Add(int) error { return nil }

// PopulateOption configures a populate run.
type PopulateOption func(*populateOptions)

type populateOptions struct {
	ids      IDGenerator
	clock    Clock
	progress Progress
}

// WithIDGenerator overrides the UUIDv7 load ID generator.
func WithIDGenerator(g IDGenerator) PopulateOption {
	return func(o *populateOptions) {
		if g != nil {
			o.ids = g
		}
	}
}

// WithClock overrides the wall clock used for loads.started_at.
func WithClock(c Clock) PopulateOption {
	return func(o *populateOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithProgress reports processed rows to p: one call per year of a date
// populate and one call for the time table. Years or tables that were already
// present still count as processed.
func WithProgress(p Progress) PopulateOption {
	return func(o *populateOptions) {
		if p != nil {
			o.progress = p
		}
	}
}

func collectPopulateOptions(opts []PopulateOption) populateOptions {
	o := populateOptions{
		ids:      UUIDv7Generator{},
		clock:    systemClock{},
		progress: noProgress{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
