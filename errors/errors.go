// Package errors provides error handling for qntx-dims.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for CLI and HTTP callers
//
// Usage:
//
//	// Reject caller input
//	return errors.NewInvalidInputError("reference time is required")
//
//	// Wrap with context
//	if err := loadCorpus(path); err != nil {
//	    return errors.Wrap(err, "failed to load corpus")
//	}
//
//	// Check errors
//	if errors.IsInvalidInputError(err) {
//	    // answer 400
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	Mark           = crdb.Mark
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors. Wrap them with errors.Wrap() to add context while
// preserving errors.Is() matching.
var (
	// ErrInvalidInput marks a malformed parse request: missing reference time,
	// unknown timezone, unsupported locale. It is the only failure a parse
	// surfaces to its caller.
	ErrInvalidInput = New("invalid input")

	// ErrUnsupportedLocale indicates no rule table exists for the locale
	ErrUnsupportedLocale = New("unsupported locale")

	// ErrUnknownDimension indicates a dimension name that does not exist
	ErrUnknownDimension = New("unknown dimension")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")
)

// IsInvalidInputError checks if an error is or wraps ErrInvalidInput
func IsInvalidInputError(err error) bool {
	return err != nil && Is(err, ErrInvalidInput)
}

// IsUnsupportedLocaleError checks if an error is or wraps ErrUnsupportedLocale
func IsUnsupportedLocaleError(err error) bool {
	return err != nil && Is(err, ErrUnsupportedLocale)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewInvalidInputError creates an invalid-input error with a formatted message
func NewInvalidInputError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidInput, Newf(format, args...).Error())
}

// WrapInvalidInput marks err as invalid caller input, keeping its message
func WrapInvalidInput(err error, context string) error {
	return Wrap(Wrap(ErrInvalidInput, err.Error()), context)
}

// NewUnsupportedLocaleError reports a locale with no rule table.
// The result matches both ErrUnsupportedLocale and ErrInvalidInput.
func NewUnsupportedLocaleError(locale string) error {
	err := Wrapf(ErrUnsupportedLocale, "%s", locale)
	return Mark(err, ErrInvalidInput)
}

// NewUnknownDimensionError reports a dimension name that does not exist.
// The result matches both ErrUnknownDimension and ErrInvalidInput.
func NewUnknownDimensionError(name string) error {
	err := WithHint(Wrapf(ErrUnknownDimension, "%q", name), "run `qntx-dims dims` to list dimensions")
	return Mark(err, ErrInvalidInput)
}
