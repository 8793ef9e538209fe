package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/hspice/endian"
	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/format"
	"github.com/arloliu/hspice/internal/pool"
)

// End-of-table sentinels. A data block whose last value reaches the sentinel of
// the file's precision is the last block of its table.
const (
	// Sentinel32 is 1e30 rounded to float32, compared at float32 precision.
	Sentinel32 = 1.0000000150474662e30
	// Sentinel64 is the 2001 format sentinel.
	Sentinel64 = 1.0e30
)

// IsTerminal reports whether value marks the end of a table for precision.
func IsTerminal(precision format.Precision, value float64) bool {
	if precision == format.Precision64 {
		return value >= Sentinel64
	}

	return float32(value) >= float32(Sentinel32)
}

// RawDecoder decodes raw IEEE 754 items of one precision in a given byte order.
//
// The decoder is a small immutable value; float32 items are widened to float64
// after decoding. Items are read through the byte order, so input alignment does
// not matter.
type RawDecoder struct {
	engine    endian.EndianEngine
	precision format.Precision
}

// NewRawDecoder creates a decoder for items of precision in engine byte order.
func NewRawDecoder(engine endian.EndianEngine, precision format.Precision) RawDecoder {
	return RawDecoder{engine: engine, precision: precision}
}

// ItemSize returns the byte width of one item.
func (d RawDecoder) ItemSize() int {
	return d.precision.ItemSize()
}

func (d RawDecoder) at(data []byte, index int) float64 {
	if d.precision == format.Precision64 {
		start := index * 8
		return math.Float64frombits(d.engine.Uint64(data[start : start+8]))
	}

	start := index * 4

	return float64(math.Float32frombits(d.engine.Uint32(data[start : start+4])))
}

// At retrieves the value at index of a payload holding count items. It returns
// false if index is outside [0, count) or data is too short.
func (d RawDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count || (index+1)*d.ItemSize() > len(data) {
		return 0, false
	}

	return d.at(data, index), true
}

// DecodeInto appends the first count values of data to dst.
//
// Returns ErrTruncated if data holds fewer than count items.
func (d RawDecoder) DecodeInto(dst []float64, data []byte, count int) ([]float64, error) {
	if count < 0 || len(data) < count*d.ItemSize() {
		return dst, fmt.Errorf("decode %d %s values from %d bytes: %w", count, d.precision, len(data), errs.ErrTruncated)
	}

	dst = grow(dst, count)
	for i := range count {
		dst = append(dst, d.at(data, i))
	}

	return dst, nil
}

func grow(s []float64, n int) []float64 {
	if cap(s)-len(s) >= n {
		return s
	}

	// Grow by at least 25% to amortize repeated appends of small blocks.
	newCap := max(len(s)+n, cap(s)+cap(s)/4)
	out := make([]float64, len(s), newCap)
	copy(out, s)

	return out
}

// RawEncoder encodes float64 values as raw IEEE 754 items of one precision.
//
// It is the inverse of RawDecoder and backs the SPICE3 binary writer.
type RawEncoder struct {
	buf       *pool.ByteBuffer
	engine    endian.EndianEngine
	precision format.Precision
	count     int
}

// NewRawEncoder creates an encoder writing items of precision in engine byte order.
func NewRawEncoder(engine endian.EndianEngine, precision format.Precision) *RawEncoder {
	return &RawEncoder{
		buf:       pool.GetHeaderBuffer(),
		engine:    engine,
		precision: precision,
	}
}

// Write encodes a single value.
//
// Panics if Finish() has been called.
func (e *RawEncoder) Write(value float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.B = e.append(e.buf.B, value)
}

// WriteSlice encodes values in order.
//
// Panics if Finish() has been called.
func (e *RawEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if len(values) == 0 {
		return
	}

	e.count += len(values)
	if need := len(values) * e.precision.ItemSize(); cap(e.buf.B)-len(e.buf.B) < need {
		b := make([]byte, len(e.buf.B), len(e.buf.B)+need)
		copy(b, e.buf.B)
		e.buf.B = b
	}
	for _, v := range values {
		e.buf.B = e.append(e.buf.B, v)
	}
}

func (e *RawEncoder) append(b []byte, value float64) []byte {
	if e.precision == format.Precision64 {
		return e.engine.AppendUint64(b, math.Float64bits(value))
	}

	return e.engine.AppendUint32(b, math.Float32bits(float32(value)))
}

// Bytes returns the encoded bytes.
//
// Panics if Finish() has been called.
func (e *RawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded values.
func (e *RawEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes.
//
// Panics if Finish() has been called.
func (e *RawEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset discards the encoded values, keeping the buffer for reuse.
func (e *RawEncoder) Reset() {
	if e.buf != nil {
		e.buf.Reset()
	}
	e.count = 0
}

// Finish returns the buffer to the pool.
func (e *RawEncoder) Finish() {
	if e.buf != nil {
		pool.PutHeaderBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}
