// Package errs defines the sentinel errors returned by the bkn packages.
//
// Errors are wrapped with context using fmt.Errorf("%w: ...") so callers can
// match the kind with errors.Is while still getting the offset or field name
// that failed.
package errs

import "errors"

var (
	// ErrIO reports a file that could not be opened or fully read.
	ErrIO = errors.New("io error")

	// ErrFormat reports a read, skip or length prefix that runs past the end of the buffer.
	ErrFormat = errors.New("format error")

	// ErrPatternMismatch reports a metadata field whose required value portion cannot be located.
	ErrPatternMismatch = errors.New("pattern mismatch")

	// ErrInvalidFieldType reports a schema entry with an unknown field type.
	ErrInvalidFieldType = errors.New("invalid field type")

	// ErrInvalidLayout reports a layout that cannot describe a BKN file (empty marker, empty schema, ...).
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrInvalidConfig reports a configuration value that failed validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrInsufficientData reports a curve fit over fewer points than the model needs.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrUnknownCompression reports an unsupported compression name or type.
	ErrUnknownCompression = errors.New("unknown compression")
)
