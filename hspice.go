// Package hspice decodes HSPICE binary waveform files (.tr*, .ac*, .sw*).
//
// A file is a header section followed by a data section, both stored as framed
// blocks. The header lists the scale vector (time or frequency), the signal
// names and an optional one-dimensional sweep. The data section holds rows of
// 32-bit or 64-bit floats, one table per sweep point, each ending with a
// sentinel value.
//
// # Basic Usage
//
// Decoding a whole file:
//
//	result, err := hspice.DecodeFile("sim.tr0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := result.Signal("out", 0)
//	fmt.Println(result.ScaleName(), out.Len())
//
// Streaming a large file in chunks of at least 10000 rows:
//
//	stream, err := hspice.OpenStream("sim.tr0", hspice.DefaultChunkRows,
//	    waveform.WithSignals("out", "in"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stream.Close()
//
//	for chunk, err := range stream.All() {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(chunk.Index, chunk.ScaleStart, chunk.ScaleEnd)
//	}
//
// # File Access
//
// Uncompressed files are memory mapped. Files stored as zstd, S2 or LZ4 frames
// (".zst", ".s2", ".lz4", or detected from their leading bytes) are decompressed
// into memory first.
//
// # Package Structure
//
// This package wraps the waveform and section packages for the common cases.
// Use them directly to decode byte slices with full control.
package hspice

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/internal/hash"
	"github.com/arloliu/hspice/internal/source"
	"github.com/arloliu/hspice/section"
	"github.com/arloliu/hspice/waveform"
)

// DefaultChunkRows is the default minimum number of rows per streamed chunk.
const DefaultChunkRows = waveform.DefaultChunkRows

// DecodeFile reads and decodes every table of the file at path.
//
// The path is passed to the decoder as its source name, so the file extension
// is used to infer the analysis when the header does not reveal it. Options
// given by the caller take precedence.
//
// Parameters:
//   - path: file to decode, optionally compressed
//   - opts: waveform options (WithSignals, WithLogger, WithStrict, WithSourceName)
//
// Returns:
//   - *waveform.WaveformResult: the decoded tables
//   - error: I/O, format or parse error
func DecodeFile(path string, opts ...waveform.Option) (*waveform.WaveformResult, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return waveform.Decode(src.Bytes(), withSource(path, opts)...)
}

// DecodeBytes decodes an in-memory file. Compressed content is detected from
// its leading bytes.
func DecodeBytes(data []byte, opts ...waveform.Option) (*waveform.WaveformResult, error) {
	src, err := source.FromBytes("", data)
	if err != nil {
		return nil, err
	}

	return waveform.Decode(src.Bytes(), opts...)
}

// ReadHeader parses only the header section of the file at path.
func ReadHeader(path string) (section.HeaderMetadata, error) {
	src, err := source.Open(path)
	if err != nil {
		return section.HeaderMetadata{}, err
	}
	defer src.Close()

	meta, _, err := section.ReadHeader(src.Bytes())

	return meta, err
}

// SignalID returns the 64-bit identifier of a signal name, as used by the
// signal index of a decoded result.
func SignalID(name string) uint64 {
	return hash.ID(name)
}

// Stream is a chunked reader over an opened file. It must be closed to release
// the file mapping.
type Stream struct {
	*waveform.Stream

	src    *source.Source
	closed bool
}

// OpenStream opens the file at path and positions a stream at its first data block.
//
// Parameters:
//   - path: file to stream, optionally compressed
//   - minChunkRows: minimum rows per chunk; values below 1 are raised to 1
//   - opts: waveform options
//
// Returns:
//   - *Stream: the opened stream, to be closed by the caller
//   - error: I/O, header format or parse error, or an invalid option
func OpenStream(path string, minChunkRows int, opts ...waveform.Option) (*Stream, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}

	ws, err := waveform.NewStream(src.Bytes(), minChunkRows, withSource(path, opts)...)
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	return &Stream{Stream: ws, src: src}, nil
}

// NewStream streams an in-memory file. Compressed content is detected from its
// leading bytes. Close is a no-op for streams created this way.
func NewStream(data []byte, minChunkRows int, opts ...waveform.Option) (*Stream, error) {
	src, err := source.FromBytes("", data)
	if err != nil {
		return nil, err
	}

	ws, err := waveform.NewStream(src.Bytes(), minChunkRows, opts...)
	if err != nil {
		return nil, err
	}

	return &Stream{Stream: ws, src: src}, nil
}

// Next returns the next chunk. After Close it fails with os.ErrClosed.
func (s *Stream) Next() (waveform.DataChunk, error) {
	if s.closed {
		return waveform.DataChunk{}, errClosed
	}

	return s.Stream.Next()
}

// All iterates over the remaining chunks. Every step goes through Next, so a
// Close during iteration ends it with os.ErrClosed.
func (s *Stream) All() iter.Seq2[waveform.DataChunk, error] {
	return func(yield func(waveform.DataChunk, error) bool) {
		for {
			chunk, err := s.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(waveform.DataChunk{}, err)
				return
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// Reset rewinds the stream to the first data block.
func (s *Stream) Reset() error {
	if s.closed {
		return errClosed
	}

	return s.Stream.Reset()
}

// Close releases the underlying file. It is safe to call more than once.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	return s.src.Close()
}

var errClosed = fmt.Errorf("%w: %w", errs.ErrStreamFailed, os.ErrClosed)

func withSource(path string, opts []waveform.Option) []waveform.Option {
	return append([]waveform.Option{waveform.WithSourceName(path)}, opts...)
}
