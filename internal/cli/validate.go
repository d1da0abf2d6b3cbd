package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/thisdate/internal/definition"
)

// ValidationResult is the JSON payload of the validate command.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Name    string `json:"name,omitempty"`
	Presets int    `json:"presets"`
	Events  int    `json:"events"`
	Rules   int    `json:"rules"`
}

// ValidationError locates a definition problem.
type ValidationError struct {
	Field  string `json:"field,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <definition>",
		Short: "Validate a calendar definition file",
		Long: `Validate a calendar definition (.yaml, .yml or .cue) against the definition
schema, then build it to catch registration errors such as duplicate names or
out-of-range days.

Exit codes:
  0 - Definition is valid
  1 - Definition is invalid
  2 - Command error (file not found, unsupported extension)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	def, err := definition.LoadFile(path)
	if err != nil {
		return failDefinition(f, err)
	}
	f.VerboseLog("Loaded %s: %d preset(s), %d event(s)", path, len(def.Presets), len(def.Events))

	cal, err := definition.Build(def)
	if err != nil {
		return f.Fail(ExitFailure, errorCode(err), err.Error(), nil)
	}

	result := ValidationResult{
		Valid:   true,
		Name:    def.Name,
		Presets: len(def.Presets),
		Events:  len(def.Events),
		Rules:   cal.CountEvents(),
	}
	return f.Emit(result, func(w io.Writer) {
		fmt.Fprintf(w, "✓ %s valid (%d preset(s), %d event(s), %d rule(s))\n",
			path, result.Presets, result.Events, result.Rules)
	})
}

// failDefinition reports a LoadError with its position. Unreadable and
// unsupported files are command errors; schema and decode failures mean the
// definition is invalid.
func failDefinition(f *OutputFormatter, err error) error {
	var le *definition.LoadError
	if !errors.As(err, &le) {
		return f.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	exit := ExitFailure
	if le.Code == definition.ErrCodeRead || le.Code == definition.ErrCodeUnsupported {
		exit = ExitCommandError
	}

	var details any
	if le.Field != "" || le.Pos.IsValid() {
		loc := &ValidationError{Field: le.Field}
		if le.Pos.IsValid() {
			loc.Line = le.Pos.Line()
			loc.Column = le.Pos.Column()
		}
		details = loc
	}
	return f.Fail(exit, le.Code, le.Error(), details)
}
