// Package wavetest builds synthetic HSPICE binary waveform files for tests.
package wavetest

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/arloliu/hspice/endian"
	"github.com/arloliu/hspice/format"
)

// Sentinel values terminating a data table.
const (
	Sentinel32 = float64(float32(1e30))
	Sentinel64 = 1e30
)

// File describes a synthetic waveform file.
type File struct {
	// Engine is the byte order of every frame and value. Defaults to little endian.
	Engine endian.EndianEngine
	// Precision selects 9601 (32-bit) or 2001 (64-bit) data. Defaults to 32-bit.
	Precision format.Precision
	Title     string
	Date      string
	Variables int
	Probes    int
	// Sweeps is the sweep dimension count written at offset 8.
	Sweeps int
	// SweepSize is written at the precision dependent sweep size offset when > 0.
	SweepSize int
	// Tokens is the whitespace separated name section, type codes included.
	Tokens []string
	// Tables holds the flat values of each table, sweep value first when swept.
	// The sentinel is appended by the builder.
	Tables [][]float64
	// BlockValues splits table values into blocks of this many values.
	// Zero writes one block per table.
	BlockValues int
	// HeaderBlockSize splits the header into blocks of this many bytes.
	// Zero writes the header as one block.
	HeaderBlockSize int
	// OmitSentinel leaves the sentinel off the last table.
	OmitSentinel bool
}

// Names builds a token list: the type code, one placeholder code per remaining
// vector, the scale, the signals and an optional sweep name.
func Names(typeCode int, scale string, signals []string, sweep string) []string {
	tokens := []string{fmt.Sprint(typeCode)}
	for range signals {
		tokens = append(tokens, "1")
	}
	tokens = append(tokens, scale)
	tokens = append(tokens, signals...)
	if sweep != "" {
		tokens = append(tokens, sweep)
	}

	return tokens
}

func (f *File) engine() endian.EndianEngine {
	if f.Engine == nil {
		return endian.GetLittleEndianEngine()
	}

	return f.Engine
}

func (f *File) precision() format.Precision {
	if f.Precision == 0 {
		return format.Precision32
	}

	return f.Precision
}

// Header returns the header blob without the end marker.
func (f *File) Header() []byte {
	fixed := []byte(strings.Repeat(" ", 256))
	put := func(offset int, s string) {
		copy(fixed[offset:], s)
	}

	put(0, fmt.Sprintf("%4d", f.Variables))
	put(4, fmt.Sprintf("%4d", f.Probes))
	put(8, fmt.Sprintf("%4d", f.Sweeps))
	put(16, "9601")
	if f.precision() == format.Precision64 {
		put(20, "2001")
	}
	put(24, f.Title)
	put(88, f.Date)
	if f.SweepSize > 0 {
		offset := 176
		if f.precision() == format.Precision64 {
			offset = 187
		}
		put(offset, fmt.Sprintf("%10d", f.SweepSize))
	}

	return append(fixed, []byte(strings.Join(f.Tokens, " ")+" ")...)
}

// Bytes returns the complete file.
func (f *File) Bytes() []byte {
	engine := f.engine()

	header := append(f.Header(), "$&%#"...)
	var out []byte
	step := f.HeaderBlockSize
	if step <= 0 {
		step = len(header)
	}
	for start := 0; start < len(header); start += step {
		end := min(start+step, len(header))
		out = append(out, Block(engine, 1, header[start:end])...)
	}

	for i, table := range f.Tables {
		values := append([]float64(nil), table...)
		if !f.OmitSentinel || i < len(f.Tables)-1 {
			values = append(values, f.sentinel())
		}
		out = append(out, f.DataBlocks(values)...)
	}

	return out
}

// DataBlocks encodes values into consecutive data blocks.
func (f *File) DataBlocks(values []float64) []byte {
	step := f.BlockValues
	if step <= 0 {
		step = max(len(values), 1)
	}

	var out []byte
	for start := 0; start < len(values); start += step {
		end := min(start+step, len(values))
		out = append(out, DataBlock(f.engine(), f.precision(), values[start:end])...)
	}

	return out
}

func (f *File) sentinel() float64 {
	if f.precision() == format.Precision64 {
		return Sentinel64
	}

	return Sentinel32
}

// Frame returns a 16-byte frame header declaring length payload bytes.
func Frame(engine endian.EndianEngine, itemWidth int, length int) []byte {
	b := make([]byte, 0, 16)
	b = engine.AppendUint32(b, 4)
	b = engine.AppendUint32(b, uint32(itemWidth)) //nolint:gosec
	b = engine.AppendUint32(b, 4)
	b = engine.AppendUint32(b, uint32(length)) //nolint:gosec

	return b
}

// Block returns a complete block: frame, payload and trailer.
func Block(engine endian.EndianEngine, itemWidth int, payload []byte) []byte {
	b := Frame(engine, itemWidth, len(payload))
	b = append(b, payload...)

	return engine.AppendUint32(b, uint32(len(payload))) //nolint:gosec
}

// DataBlock encodes values at the given precision into one block.
func DataBlock(engine endian.EndianEngine, precision format.Precision, values []float64) []byte {
	return Block(engine, precision.ItemSize(), EncodeValues(engine, precision, values))
}

// EncodeValues encodes values without framing.
func EncodeValues(engine endian.EndianEngine, precision format.Precision, values []float64) []byte {
	payload := make([]byte, 0, len(values)*precision.ItemSize())
	for _, v := range values {
		if precision == format.Precision64 {
			payload = engine.AppendUint64(payload, math.Float64bits(v))
		} else {
			payload = engine.AppendUint32(payload, math.Float32bits(float32(v)))
		}
	}

	return payload
}

// Rows flattens rows into one value slice, prefixed by sweep values if given.
func Rows(prefix []float64, rows ...[]float64) []float64 {
	out := append([]float64(nil), prefix...)
	for _, row := range rows {
		out = append(out, row...)
	}

	return out
}

// Transient returns a real 32-bit transient file with n rows of
// time, out and in, split into blocks of blockValues values.
//
// Row i holds time i*1e-9, out = i, in = -i.
func Transient(n int, blockValues int) *File {
	values := make([]float64, 0, n*3)
	for i := range n {
		values = append(values, float64(i)*1e-9, float64(i), -float64(i))
	}

	return &File{
		Title:       "transient test",
		Date:        "01/02/2024 10:00:00",
		Variables:   1,
		Probes:      2,
		Tokens:      Names(1, "TIME", []string{"v(out)", "v(in)"}, ""),
		Tables:      [][]float64{values},
		BlockValues: blockValues,
	}
}

// Order returns the binary byte order for a name, for table driven tests.
func Order(big bool) endian.EndianEngine {
	if big {
		return binary.BigEndian
	}

	return binary.LittleEndian
}
