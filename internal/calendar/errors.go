package calendar

import (
	"errors"
	"fmt"
)

// Error is returned by registration and arithmetic operations when an
// argument is rejected. A rejected registration never mutates the calendar.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Field names the offending argument (e.g. "name", "month").
	Field string

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes calendar errors.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates a missing name, an empty weekday set,
	// a multi-week interval without a seed, or an unsupported calculated event.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// ErrCodeDuplicateKey indicates the name is already registered in some category.
	ErrCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"

	// ErrCodeOutOfRange indicates a year, month, day, count or interval bound violation.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidArgument reports whether err is an ErrCodeInvalidArgument error.
func IsInvalidArgument(err error) bool {
	return hasCode(err, ErrCodeInvalidArgument)
}

// IsDuplicateKey reports whether err is an ErrCodeDuplicateKey error.
func IsDuplicateKey(err error) bool {
	return hasCode(err, ErrCodeDuplicateKey)
}

// IsOutOfRange reports whether err is an ErrCodeOutOfRange error.
func IsOutOfRange(err error) bool {
	return hasCode(err, ErrCodeOutOfRange)
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

func hasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

func newInvalidArgument(field, message string) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Field: field, Message: message}
}

func newEmptyName() *Error {
	return newInvalidArgument("name", "name cannot be null or empty")
}

func newDuplicateKey(name string) *Error {
	return &Error{
		Code:    ErrCodeDuplicateKey,
		Field:   "name",
		Message: fmt.Sprintf("name %q has already been added", name),
	}
}

func newOutOfRange(field string, value, min, max int) *Error {
	return &Error{
		Code:    ErrCodeOutOfRange,
		Field:   field,
		Message: fmt.Sprintf("%s %d is out of range, valid range is [%d...%d]", field, value, min, max),
	}
}

func newNotPositive(field string, value int) *Error {
	return &Error{
		Code:    ErrCodeOutOfRange,
		Field:   field,
		Message: fmt.Sprintf("%s = %d, cannot be zero or negative", field, value),
	}
}

// InvalidArgument returns an ErrCodeInvalidArgument error for callers outside
// this package that validate their own arguments.
func InvalidArgument(field, message string) error {
	return newInvalidArgument(field, message)
}

// CheckYear returns an ErrCodeOutOfRange error unless MinYear <= year <= MaxYear.
func CheckYear(field string, year int) error {
	return checkYear(field, year)
}
