// Package errors provides error handling for stubgen.
//
// This package re-exports github.com/cockroachdb/errors so every package
// gets stack traces, wrapping and user-facing hints from one import, and
// adds the sentinel errors the exporter and the unit loader report.
//
// Usage:
//
//	if err := render(decl); err != nil {
//	    return errors.Wrapf(err, "declaration %q", name)
//	}
//
//	if errors.Is(err, errors.ErrUnsupportedExpression) {
//	    // drop the declaration
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
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
	CombineErrors  = crdb.CombineErrors
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the export pipeline.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrInvalidType is reported when the type graph carries an invalid type node
	ErrInvalidType = New("invalid type")

	// ErrUnsupportedAtomic is reported for an atomic kind outside the rendering table
	ErrUnsupportedAtomic = New("unsupported atomic type")

	// ErrUnsupportedExpression is reported for initializer shapes that cannot be rendered
	ErrUnsupportedExpression = New("unsupported expression")

	// ErrUnsupportedFormat is reported for unit documents with an unknown extension
	ErrUnsupportedFormat = New("unsupported document format")

	// ErrIncompatibleVersion is reported when a unit document's format_version is out of range
	ErrIncompatibleVersion = New("incompatible format version")

	// ErrUnknownReference is reported when a unit document references an undefined type id
	ErrUnknownReference = New("unknown reference")

	// ErrTypeCycle is reported when pointer or function types reference themselves
	ErrTypeCycle = New("type cycle")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the request was malformed or invalid
	ErrInvalidRequest = New("invalid request")
)

// IsRenderError reports whether err stems from rendering a declaration
// rather than from I/O or configuration.
func IsRenderError(err error) bool {
	return err != nil && IsAny(err, ErrInvalidType, ErrUnsupportedAtomic, ErrUnsupportedExpression)
}

// IsLoadError reports whether err stems from decoding a unit document.
func IsLoadError(err error) bool {
	return err != nil && IsAny(err, ErrUnsupportedFormat, ErrIncompatibleVersion, ErrUnknownReference, ErrTypeCycle)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}
