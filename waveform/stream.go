package waveform

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/arloliu/hspice/encoding"
	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/format"
	"github.com/arloliu/hspice/section"
	"go.uber.org/zap"
)

type streamState uint8

const (
	stateReading  streamState = iota // blocks remain to be read
	stateDraining                    // data exhausted, buffered rows remain
	stateDone                        // every row was emitted
	stateFailed                      // a decode error made the stream unusable
)

func (s streamState) String() string {
	switch s {
	case stateReading:
		return "reading"
	case stateDraining:
		return "draining"
	case stateDone:
		return "done"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StreamMetadata describes the file behind a Stream.
type StreamMetadata struct {
	Title       string
	Date        string
	ScaleName   string
	SignalNames []string
	Precision   format.Precision
	IsComplex   bool
	SweepName   string
	SweepSize   int
}

// Stream reconstructs rows from the data section block by block and emits them
// as chunks of at least minChunkRows rows.
//
// Whole blocks are always consumed: a chunk can exceed minChunkRows by up to one
// block's worth of rows. Values that do not complete a row are carried into the
// next block read. The last chunk may be shorter.
//
// For swept files only the first table is streamed and its leading sweep value
// is dropped.
type Stream struct {
	data         []byte
	cfg          *config
	minChunkRows int

	meta   section.HeaderMetadata
	layout *signalLayout
	reader *encoding.BlockReader

	pending   []float64 // values of an incomplete row
	rows      []float64 // complete rows, flat
	firstRead bool
	state     streamState
	err       error
	index     int
	dropped   int
}

// NewStream parses the header of data and prepares incremental decoding.
//
// Parameters:
//   - data: the complete file contents
//   - minChunkRows: minimum rows per chunk; values below 1 are raised to 1
//   - opts: WithSignals, WithLogger, WithStrict
//
// Returns:
//   - *Stream: stream positioned at the first data block
//   - error: header format or parse error, or an invalid option
func NewStream(data []byte, minChunkRows int, opts ...Option) (*Stream, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	s := &Stream{
		data:         data,
		cfg:          cfg,
		minChunkRows: max(minChunkRows, 1),
	}
	if err := s.open(); err != nil {
		return nil, err
	}

	cfg.logger.Info("stream opened",
		zap.String("source", cfg.sourceName),
		zap.Int("signals", len(s.meta.SignalNames)),
		zap.Int("selected", s.layout.count),
		zap.String("scale", s.meta.ScaleName),
		zap.Int("chunk_rows", s.minChunkRows),
	)
	if s.meta.SweepSize > 1 {
		cfg.logger.Warn("streaming a swept file yields only the first table",
			zap.String("sweep", s.meta.SweepName),
			zap.Int("tables", s.meta.SweepSize),
		)
	}

	return s, nil
}

func (s *Stream) open() error {
	meta, offset, err := section.ReadHeader(s.data)
	if err != nil {
		return err
	}

	layout, err := newSignalLayout(&meta, s.cfg.signals, s.cfg.logger)
	if err != nil {
		return err
	}

	s.meta = meta
	s.layout = layout
	s.reader = encoding.NewBlockReader(s.data, offset, meta.Engine, meta.Precision, s.cfg.strict)
	s.pending = s.pending[:0]
	s.rows = s.rows[:0]
	s.firstRead = true
	s.state = stateReading
	s.err = nil
	s.index = 0
	s.dropped = 0

	return nil
}

// Metadata returns a description of the underlying file.
func (s *Stream) Metadata() StreamMetadata {
	return StreamMetadata{
		Title:       s.meta.Title,
		Date:        s.meta.Date,
		ScaleName:   s.meta.ScaleName,
		SignalNames: s.meta.SignalNames,
		Precision:   s.meta.Precision,
		IsComplex:   s.meta.IsComplex(),
		SweepName:   s.meta.SweepName,
		SweepSize:   s.meta.SweepSize,
	}
}

// DroppedValues returns the number of trailing values discarded because they did
// not complete a row.
func (s *Stream) DroppedValues() int {
	return s.dropped
}

// Reset re-parses the header and rewinds to the first data block, clearing all
// buffered state. A failed stream becomes usable again if the header parses.
func (s *Stream) Reset() error {
	if err := s.open(); err != nil {
		s.fail(err)
		return err
	}

	return nil
}

// Next returns the next chunk.
//
// Returns io.EOF after the last chunk. The first decode error is returned as is;
// every later call returns ErrStreamFailed wrapping it.
func (s *Stream) Next() (DataChunk, error) {
	switch s.state {
	case stateFailed:
		return DataChunk{}, fmt.Errorf("%w: %w", errs.ErrStreamFailed, s.err)
	case stateDone:
		return DataChunk{}, io.EOF
	}

	for s.bufferedRows() < s.minChunkRows && s.state == stateReading {
		if err := s.readBlock(); err != nil {
			s.fail(err)
			return DataChunk{}, err
		}
	}

	if s.state == stateDraining {
		if err := s.flushPending(); err != nil {
			s.fail(err)
			return DataChunk{}, err
		}
	}

	if len(s.rows) == 0 {
		s.state = stateDone
		return DataChunk{}, io.EOF
	}

	chunk := s.buildChunk()
	s.rows = s.rows[:0]

	return chunk, nil
}

// All returns an iterator over the remaining chunks. Iteration stops after the
// first error, which is yielded with a zero chunk.
func (s *Stream) All() iter.Seq2[DataChunk, error] {
	return func(yield func(DataChunk, error) bool) {
		for {
			chunk, err := s.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(DataChunk{}, err)
				return
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

func (s *Stream) fail(err error) {
	s.state = stateFailed
	s.err = err
}

func (s *Stream) bufferedRows() int {
	return len(s.rows) / s.layout.columns
}

// readBlock consumes exactly one block and moves every complete row into the
// row buffer.
func (s *Stream) readBlock() error {
	block, err := s.reader.Next()
	if errors.Is(err, io.EOF) {
		if s.cfg.strict {
			return fmt.Errorf("data ended at offset %d: %w", s.reader.Offset(), errs.ErrMissingSentinel)
		}
		s.state = stateDraining

		return nil
	}
	if err != nil {
		return err
	}

	s.pending = append(s.pending, block.Data()...)
	if s.firstRead {
		s.firstRead = false
		if s.meta.HasSweep() && len(s.pending) > 0 {
			s.pending = append(s.pending[:0], s.pending[1:]...)
		}
	}

	columns := s.layout.columns
	whole := len(s.pending) / columns * columns
	s.rows = append(s.rows, s.pending[:whole]...)
	n := copy(s.pending, s.pending[whole:])
	s.pending = s.pending[:n]

	if block.Terminal {
		s.state = stateDraining
	}

	return nil
}

// flushPending moves any whole rows left in pending to the row buffer and
// discards the rest.
func (s *Stream) flushPending() error {
	if len(s.pending) == 0 {
		return nil
	}

	columns := s.layout.columns
	whole := len(s.pending) / columns * columns
	s.rows = append(s.rows, s.pending[:whole]...)

	leftover := len(s.pending) - whole
	s.pending = s.pending[:0]
	if leftover == 0 {
		return nil
	}

	if s.cfg.strict {
		return fmt.Errorf("%d values left over with %d columns: %w", leftover, columns, errs.ErrTrailingValues)
	}
	s.dropped += leftover
	s.cfg.logger.Warn("dropping trailing values",
		zap.Int("values", leftover),
		zap.Int("columns", columns),
	)

	return nil
}

func (s *Stream) buildChunk() DataChunk {
	scale, vectors := s.layout.vectors(s.rows)

	signals := make(map[string]VectorData, s.layout.count+1)
	for i, vec := range vectors {
		if s.layout.include[i] {
			signals[s.layout.names[i]] = vec
		}
	}
	signals[s.meta.ScaleName] = scale

	chunk := DataChunk{
		Index:      s.index,
		ScaleStart: scale[0],
		ScaleEnd:   scale[len(scale)-1],
		Signals:    signals,
		rows:       len(scale),
	}
	s.index++

	s.cfg.logger.Debug("chunk built",
		zap.Int("chunk", chunk.Index),
		zap.Int("rows", chunk.rows),
		zap.Float64("scale_start", chunk.ScaleStart),
		zap.Float64("scale_end", chunk.ScaleEnd),
	)

	return chunk
}
