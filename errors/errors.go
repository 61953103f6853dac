// Package errors provides error handling for iconforge.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// On top of that it defines the pipeline's error kinds as sentinels. Stages
// wrap a sentinel with the offending path so callers can branch with Is and
// users still see which file was the problem:
//
//	if _, err := os.Stat(path); os.IsNotExist(err) {
//	    return errors.Wrapf(errors.ErrMissingInput, "metadata store %s", path)
//	}
//
//	if errors.Is(err, errors.ErrMissingInput) {
//	    // degrade to an empty catalog
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
	UnwrapOnce     = crdb.UnwrapOnce
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

// Pipeline error kinds. Wrap these with Wrapf to name the offending path
// while preserving the kind for Is checks.
var (
	// ErrMissingInput indicates a required directory or file is absent
	ErrMissingInput = New("required input missing")

	// ErrMalformedMetadata indicates a metadata file exists but cannot be trusted
	ErrMalformedMetadata = New("malformed metadata")

	// ErrIdentifierCollision indicates two distinct icon names derive the same symbol
	ErrIdentifierCollision = New("identifier collision")

	// ErrDuplicateName indicates two records share one catalog key
	ErrDuplicateName = New("duplicate icon name")

	// ErrValidationFailed indicates the usage validator found unknown icon names
	ErrValidationFailed = New("icon usage validation failed")

	// ErrDownstreamTool indicates a sub-invocation exited non-zero
	ErrDownstreamTool = New("downstream tool failed")

	// ErrInvalidConfig indicates the configuration is unusable
	ErrInvalidConfig = New("invalid configuration")
)

// IsMissingInput checks if an error is or wraps ErrMissingInput
func IsMissingInput(err error) bool {
	return err != nil && Is(err, ErrMissingInput)
}

// IsMalformedMetadata checks if an error is or wraps ErrMalformedMetadata
func IsMalformedMetadata(err error) bool {
	return err != nil && Is(err, ErrMalformedMetadata)
}

// IsValidationFailure checks if an error is or wraps ErrValidationFailed
func IsValidationFailure(err error) bool {
	return err != nil && Is(err, ErrValidationFailed)
}

// Kind returns a short label for the pipeline error kind wrapped by err,
// or "internal" when err carries none of the sentinels.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrMissingInput):
		return "missing-input"
	case Is(err, ErrMalformedMetadata):
		return "malformed-metadata"
	case Is(err, ErrIdentifierCollision), Is(err, ErrDuplicateName):
		return "identifier-collision"
	case Is(err, ErrValidationFailed):
		return "validation-failure"
	case Is(err, ErrDownstreamTool):
		return "downstream-tool-failure"
	case Is(err, ErrInvalidConfig):
		return "invalid-config"
	default:
		return "internal"
	}
}

// NewMissingInput creates a missing-input error naming the absent path
func NewMissingInput(what, path string) error {
	return WithHintf(Wrapf(ErrMissingInput, "%s %s", what, path),
		"run the preceding pipeline stage first (iconforge build runs them all)")
}

// NewMalformed creates a malformed-metadata error for path, keeping cause as detail
func NewMalformed(path string, cause error) error {
	err := Wrapf(ErrMalformedMetadata, "%s", path)
	if cause != nil {
		err = WithDetail(err, cause.Error())
	}
	return err
}
