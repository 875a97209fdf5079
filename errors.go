package bwtz

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CodecError is the error type returned by every package in this module. Each
// sentinel below can be refined with a message or wrapped around a cause, and
// the result still matches the sentinel under [errors.Is].
type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type baseCodecError string

const rootError = baseCodecError("")

// ErrInvalidIndex is returned when a block-sort primary index is outside the
// buffer, or a recency rank is outside [0, 255].
var ErrInvalidIndex = rootError.WithMessage("Invalid index")

// ErrTruncatedData is returned when an encoded stream ends in the middle of a
// record or before the container header is complete.
var ErrTruncatedData = rootError.WithMessage("Truncated data")

var ErrInvalidArgument = rootError.WithMessage("Invalid argument")
var ErrIOFailed = rootError.WithMessage("Input/output error")
var ErrNotFound = rootError.WithMessage("No such file or directory")
var ErrVerificationFailed = rootError.WithMessage("Integrity check failed")

func (e baseCodecError) Error() string {
	return string(e)
}

func (e baseCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       message,
		originalError: e,
	}
}

func (e baseCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// customCodecError is a sentinel refined by a message, an underlying cause, or
// both. originalError is either the sentinel it came from or a multierror
// holding the sentinel and the cause.
type customCodecError struct {
	message       string
	originalError error
}

func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}
