// Package harness runs calendar scenarios: YAML files that build a calendar
// and check a sequence of queries against expected answers.
//
// # Scenario Format
//
//	name: nyse_2016
//	description: "NYSE holidays and workday arithmetic in 2016"
//	calendar:
//	  presets: [nyse]
//	  events:
//	    - name: Payday
//	      kind: monthly_last_day
//	steps:
//	  - op: events_on
//	    date: "2016-01-01"
//	    expect:
//	      events: ["New Year's Day"]
//	  - op: add_workdays
//	    date: "2016-01-01"
//	    n: 1
//	    expect:
//	      date: "2016-01-04"
//
// The calendar block uses the definition file format. Steps run in order
// against a single calendar, so add and remove steps affect later queries.
//
// # Operations
//
//   - events_on: names on date (workdays and days_off filters, both default true)
//   - is_day_off, is_workday: boolean answers for date
//   - add_workdays: date moved by n workdays
//   - between: occurrences of name in [from, to]; a missing bound is open
//   - between_years: occurrences of name in [from_year, to_year]
//   - events_between: "yyyy-mm-dd name" lines for every occurrence in [from, to]
//   - add: registers event (a definition event)
//   - remove: removes name, answering whether it existed
//   - count: number of rules, optionally restricted to category
//   - populate: date dimension rows written for [from_year, to_year] into an
//     in-memory warehouse
//
// Each step may carry an expect block. Errors are matched by code
// (INVALID_ARGUMENT, DUPLICATE_KEY, OUT_OF_RANGE).
//
// # Golden Files
//
// RunWithGolden records the trace of a scenario as JSON under
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
