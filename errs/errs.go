// Package errs defines the sentinel errors returned by the hspice packages.
//
// Errors are grouped into three categories. Every specific error wraps exactly one
// category, so callers can match either the precise failure or its class:
//
//	if errors.Is(err, errs.ErrFormat) {
//	    // malformed file, re-reading will not help
//	}
//	if errors.Is(err, errs.ErrTrailerMismatch) {
//	    // the precise failure
//	}
package errs

import (
	"errors"
	"fmt"
	"io"
)

// Error categories.
var (
	// ErrIO marks failures to open, map, read or decompress the underlying file.
	ErrIO = errors.New("io error")
	// ErrFormat marks byte-level format violations (framing, markers, layout).
	ErrFormat = errors.New("format error")
	// ErrParse marks header contents that cannot be interpreted.
	ErrParse = errors.New("parse error")
)

// Format errors.
var (
	ErrEmptyFile            = fmt.Errorf("%w: file is empty", ErrFormat)
	ErrASCIIFormat          = fmt.Errorf("%w: file is ASCII format, only binary supported", ErrFormat)
	ErrTruncated            = fmt.Errorf("%w: %w", ErrFormat, io.ErrUnexpectedEOF)
	ErrCorruptedBlockHeader = fmt.Errorf("%w: corrupted block header", ErrFormat)
	ErrByteOrderChanged     = fmt.Errorf("%w: byte order changed between blocks", ErrFormat)
	ErrTrailerMismatch      = fmt.Errorf("%w: block header and trailer mismatch", ErrFormat)
	ErrMisalignedBlock      = fmt.Errorf("%w: block length is not a multiple of the item size", ErrFormat)
	ErrUnknownPostFormat    = fmt.Errorf("%w: unknown post format", ErrFormat)
	ErrMultiDimSweep        = fmt.Errorf("%w: only one-dimensional sweep supported", ErrFormat)
	ErrMissingSentinel      = fmt.Errorf("%w: data ended without end-of-data marker", ErrFormat)
	ErrTrailingValues       = fmt.Errorf("%w: trailing values do not fill a row", ErrFormat)
)

// Parse errors.
var (
	ErrHeaderTooShort      = fmt.Errorf("%w: header buffer too short", ErrParse)
	ErrNotEnoughNames      = fmt.Errorf("%w: not enough vector names", ErrParse)
	ErrInvalidVectorCount  = fmt.Errorf("%w: invalid vector count", ErrParse)
	ErrInvalidSignalName   = fmt.Errorf("%w: signal name must not be empty", ErrParse)
	ErrDuplicateSignal     = fmt.Errorf("%w: signal name already tracked", ErrParse)
	ErrInvalidItemWidth    = fmt.Errorf("%w: item width must be positive", ErrParse)
	ErrUnsupportedEncoding = fmt.Errorf("%w: unsupported source compression", ErrParse)
)

// Stream errors.
var (
	// ErrStreamFailed is returned by every Next call after a decoding error; it
	// wraps the original failure.
	ErrStreamFailed = errors.New("stream is unusable after a previous error")
	// ErrNoTables is returned when a result without tables is written out.
	ErrNoTables = errors.New("no data tables found")
)

// IO wraps an operating system or decompression failure into the ErrIO category.
func IO(op string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}
