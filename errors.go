package resampler

import (
	"errors"
	"fmt"
)

// ErrorKind classifies resampler errors.
type ErrorKind int

const (
	// KindConfiguration marks errors caused by rates, tokens or input that
	// are invalid regardless of image content. The same configuration fails
	// for every image.
	KindConfiguration ErrorKind = iota + 1

	// KindProcessing marks failures of a transform or resize step on a
	// particular image.
	KindProcessing
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindProcessing:
		return "processing"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Common errors returned by the resampler. Every *Error matches exactly one
// of them with errors.Is.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid resampler configuration")

	// ErrProcessing indicates a transform or resize step failed.
	ErrProcessing = errors.New("resampling failed")
)

// Error is the structured error returned by the resampler.
type Error struct {
	Kind ErrorKind

	// Op names the step that failed: "rates", "interpolation",
	// "filter-shape", "input", or a pipeline stage name.
	Op string

	// Msg is a human-readable description with the offending values.
	Msg string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("resampler: %s: %s", e.Op, e.Msg)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	switch e.Kind {
	case KindConfiguration:
		errs = append(errs, ErrInvalidConfig)
	case KindProcessing:
		errs = append(errs, ErrProcessing)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// IsConfigError reports whether err is a configuration error.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// IsProcessingError reports whether err is a processing error.
func IsProcessingError(err error) bool {
	return errors.Is(err, ErrProcessing)
}

func configError(op, format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func processingError(op, msg string, err error) *Error {
	return &Error{Kind: KindProcessing, Op: op, Msg: msg, Err: err}
}
