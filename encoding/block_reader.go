package encoding

import (
	"fmt"
	"io"

	"github.com/arloliu/hspice/endian"
	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/format"
	"github.com/arloliu/hspice/internal/cursor"
	"github.com/arloliu/hspice/section"
)

// Block is one decoded data block.
type Block struct {
	// Offset is the byte offset of the block frame.
	Offset int
	// Values holds every decoded item, the sentinel included.
	Values []float64
	// Terminal reports whether the last value is the end-of-table sentinel.
	Terminal bool
}

// Data returns the block values without the sentinel.
func (b Block) Data() []float64 {
	if b.Terminal {
		return b.Values[:len(b.Values)-1]
	}

	return b.Values
}

// BlockReader walks the data blocks of a waveform file one block at a time.
//
// The Values slice of a returned Block is reused by the next call to Next.
type BlockReader struct {
	c         *cursor.Cursor
	precision format.Precision
	strict    bool
	blocks    int
	values    []float64
}

// NewBlockReader creates a reader over data starting at offset.
//
// Parameters:
//   - data: the whole file
//   - offset: byte offset of the first data block
//   - engine: byte order established by the header, or nil to detect it
//   - precision: item precision from the header
//   - strict: reject misaligned block lengths
func NewBlockReader(data []byte, offset int, engine endian.EndianEngine, precision format.Precision, strict bool) *BlockReader {
	c := cursor.New(data).At(offset)
	c.SetEngine(engine)

	return &BlockReader{
		c:         c,
		precision: precision,
		strict:    strict,
	}
}

// Offset returns the byte offset of the next block.
func (r *BlockReader) Offset() int {
	return r.c.Pos()
}

// Blocks returns the number of blocks read so far.
func (r *BlockReader) Blocks() int {
	return r.blocks
}

// Next reads the next block.
//
// Returns io.EOF when the data is exhausted at a block boundary.
func (r *BlockReader) Next() (Block, error) {
	if r.c.Remaining() == 0 {
		return Block{}, io.EOF
	}

	frame, err := section.ReadFrame(r.c, r.precision.ItemSize(), r.strict)
	if err != nil {
		return Block{}, err
	}

	payload, err := r.c.ReadBytes(frame.PayloadSize())
	if err != nil {
		return Block{}, fmt.Errorf("data block at offset %d: %w", frame.Offset, err)
	}

	dec := NewRawDecoder(frame.Engine, r.precision)
	r.values, err = dec.DecodeInto(r.values[:0], payload, frame.ItemCount)
	if err != nil {
		return Block{}, fmt.Errorf("data block at offset %d: %w", frame.Offset, err)
	}

	if err := section.ReadTrailer(r.c, frame); err != nil {
		return Block{}, err
	}
	r.blocks++

	block := Block{Offset: frame.Offset, Values: r.values}
	if last, ok := dec.At(payload, frame.ItemCount-1, frame.ItemCount); ok {
		block.Terminal = IsTerminal(r.precision, last)
	}

	return block, nil
}

// ReadTable appends the values of every block up to and including the next
// terminal block to dst, sentinel stripped.
//
// Returns ErrMissingSentinel if the data ends before a terminal block.
func (r *BlockReader) ReadTable(dst []float64) ([]float64, error) {
	for {
		block, err := r.Next()
		if err == io.EOF {
			return dst, fmt.Errorf("table ending at offset %d: %w", r.Offset(), errs.ErrMissingSentinel)
		}
		if err != nil {
			return dst, err
		}

		dst = append(dst, block.Data()...)
		if block.Terminal {
			return dst, nil
		}
	}
}
