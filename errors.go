package audiofilter

import (
	"errors"
	"fmt"
)

// Common errors returned by the package.
var (
	// ErrFileNotFound indicates a missing audio or filter file.
	ErrFileNotFound = errors.New("file not found")

	// ErrSampleRateMismatch indicates signals with different sample rates were combined.
	ErrSampleRateMismatch = errors.New("sample rate mismatch")

	// ErrInvalidCutoffRange indicates cutoff frequencies outside (0, rate/2) or f_low >= f_high.
	ErrInvalidCutoffRange = errors.New("invalid cutoff range")

	// ErrInvalidOrder indicates a filter order outside 1..MaxOrder.
	ErrInvalidOrder = errors.New("invalid filter order")

	// ErrMalformedFilterFile indicates a filter file whose contents can't form a filter.
	ErrMalformedFilterFile = errors.New("malformed filter file")

	// ErrSilentSignal indicates a signal whose peak amplitude is zero.
	ErrSilentSignal = errors.New("silent signal")

	// ErrEmptySignal indicates a signal with no samples.
	ErrEmptySignal = errors.New("empty signal")

	// ErrNoInput indicates that no audio inputs were given.
	ErrNoInput = errors.New("no audio input")

	// ErrUnsupportedFormat indicates a WAV file that isn't integer PCM.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// ParseError reports a fatal problem on one line of a filter file.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: line %d %q: %v", ErrMalformedFilterFile, e.Line, e.Text, e.Err)
}

// Unwrap lets errors.Is match both ErrMalformedFilterFile and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformedFilterFile, e.Err}
}
