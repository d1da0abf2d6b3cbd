package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/thisdate/internal/calendar"
)

// RuleInfo describes one registered rule.
type RuleInfo struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	DayOff bool   `json:"day_off"`
}

// RulesResult is the JSON payload of the rules command.
type RulesResult struct {
	Calendar string     `json:"calendar"`
	Total    int        `json:"total"`
	Yearly   []RuleInfo `json:"yearly"`
	Monthly  []RuleInfo `json:"monthly"`
	Weekly   []RuleInfo `json:"weekly"`
	Dated    []RuleInfo `json:"dated"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rules of the selected calendar",
		Long: `List every rule of the selected calendar grouped by category (yearly,
monthly, weekly, dated) in registration order, with counts.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(rootOpts, cmd)
		},
	}
}

func runRules(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	cal, err := opts.loadCalendar()
	if err != nil {
		return failCalendar(f, err)
	}

	result := RulesResult{
		Calendar: cal.Name(),
		Total:    cal.CountEvents(),
		Yearly:   ruleInfos(cal, cal.KeysYearlyEvents()),
		Monthly:  ruleInfos(cal, cal.KeysMonthlyEvents()),
		Weekly:   ruleInfos(cal, cal.KeysWeeklyEvents()),
		Dated:    ruleInfos(cal, cal.KeysDatedEvents()),
	}

	return f.Emit(result, func(w io.Writer) {
		fmt.Fprintf(w, "%s: %d rule(s)\n", result.Calendar, result.Total)
		for _, group := range []struct {
			title string
			rules []RuleInfo
		}{
			{"Yearly", result.Yearly},
			{"Monthly", result.Monthly},
			{"Weekly", result.Weekly},
			{"Dated", result.Dated},
		} {
			if len(group.rules) == 0 {
				continue
			}
			fmt.Fprintf(w, "\n%s (%d)\n", group.title, len(group.rules))
			for _, r := range group.rules {
				marker := " "
				if r.DayOff {
					marker = "*"
				}
				fmt.Fprintf(w, "  %s %s [%s]\n", marker, r.Name, r.Kind)
			}
		}
	})
}

func ruleInfos(cal *calendar.Calendar, names []string) []RuleInfo {
	infos := make([]RuleInfo, 0, len(names))
	for _, name := range names {
		r, ok := cal.Rule(name)
		if !ok {
			continue
		}
		infos = append(infos, RuleInfo{Name: r.Name, Kind: r.Pattern.Kind(), DayOff: r.DayOff})
	}
	return infos
}
