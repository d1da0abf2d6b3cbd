// Package calendar implements a recurrence-rule calendar engine.
//
// A Calendar is a registry of named rules. Each rule carries a day-off flag,
// an inclusive validity window, and a Pattern describing when it recurs.
// Patterns fall into four categories that are always visited in the same
// order:
//
//	Yearly  - fixed month/day, nth weekday of a month, Easter-based dates
//	Monthly - day of month, nth weekday forward/reverse, last day of month
//	Weekly  - weekday sets with an interval, nth weekday occurrences in a month
//	Dated   - a single explicit date
//
// ORDERING:
// Query results are ordered by category (Yearly, Monthly, Weekly, Dated)
// and, within a category, by registration order. Callers may rely on it.
//
// NAMES:
// Rule names are unique across all categories and compared case-insensitively
// after Unicode folding. The original spelling is kept for output.
//
// DATES:
// All dates are naive calendar days represented as midnight UTC time.Time
// values. Time of day and location are discarded by Truncate before any
// comparison.
//
// CONCURRENCY:
// A Calendar is safe for concurrent use. Mutations take an exclusive lock and
// queries share a read lock. Independent calendars share no state.
package calendar
