// Package errors provides error handling for phpmodelgen.
//
// This package re-exports github.com/cockroachdb/errors and defines the
// sentinels callers match with Is:
//
//	t, err := phptype.FromString("?|")
//	if errors.Is(err, errors.ErrInvalidType) {
//	    // the string carried no type information
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
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	Mark         = crdb.Mark
)

// Error inspection
var (
	Is                 = crdb.Is
	As                 = crdb.As
	Unwrap             = crdb.Unwrap
	FlattenHints       = crdb.FlattenHints
	IsAssertionFailure = crdb.IsAssertionFailure
)

// Sentinels for the generator's error taxonomy.
var (
	// ErrInvalidType indicates a type string carries no extractable type.
	ErrInvalidType = New("invalid type")

	// ErrUnsupportedConstruct indicates a requested combination cannot be rendered,
	// e.g. a variadic parameter with a default value.
	ErrUnsupportedConstruct = New("unsupported construct")

	// ErrInvariantViolation indicates the renderer reached a structurally
	// impossible state. It is a bug, never a user input error.
	ErrInvariantViolation = New("internal invariant violation")
)

// InvalidTypef returns an error matching ErrInvalidType.
func InvalidTypef(format string, args ...interface{}) error {
	return crdb.Wrapf(ErrInvalidType, format, args...)
}

// Unsupportedf returns an error matching ErrUnsupportedConstruct.
func Unsupportedf(format string, args ...interface{}) error {
	return crdb.Wrapf(ErrUnsupportedConstruct, format, args...)
}

// Invariantf returns an assertion failure marked with ErrInvariantViolation.
func Invariantf(format string, args ...interface{}) error {
	return crdb.Mark(crdb.AssertionFailedf(format, args...), ErrInvariantViolation)
}
