// Package presets registers well-known holidays and the calendars built from
// them.
//
// Each holiday function adds one rule to a calendar under a fixed name and
// returns the registry's error unchanged, so a duplicate registration surfaces
// as a DUPLICATE_KEY error.
//
// Named calendars:
//
//	nyse            New York Stock Exchange trading holidays plus weekends
//	usa-federal     United States federal holidays plus weekends
//	usa-observance  federal holidays plus common observances (workdays)
package presets
