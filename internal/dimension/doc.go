// Package dimension builds the rows of a date/time warehouse dimension.
//
// A DateRow describes one calendar day, including the events a calendar
// reports for it. A TimeRow describes one instant of the zero day
// 0001-01-01 and carries the common display formats for that time of day.
// Rows are plain values; internal/store persists them.
package dimension
