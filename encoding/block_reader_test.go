package encoding

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/format"
	"github.com/arloliu/hspice/internal/wavetest"
	"github.com/stretchr/testify/require"
)

func TestBlockReader_TerminalBlock(t *testing.T) {
	// A 32-bit block [4, 0, 4, 8] + 1e30 + 8 decodes to one value with the
	// sentinel detected.
	le := binary.LittleEndian
	data := wavetest.DataBlock(le, format.Precision32, []float64{wavetest.Sentinel32})
	require.Equal(t, []byte{4, 0, 0, 0}, data[0:4])
	require.Equal(t, uint32(4), le.Uint32(data[12:16]))

	r := NewBlockReader(data, 0, nil, format.Precision32, true)
	block, err := r.Next()
	require.NoError(t, err)
	require.True(t, block.Terminal)
	require.Len(t, block.Values, 1)
	require.Empty(t, block.Data())
	require.Equal(t, 1, r.Blocks())

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestBlockReader_TerminalBlock64(t *testing.T) {
	// A 64-bit block [4, 0, 4, 8] + 1e30 + 8.
	le := binary.LittleEndian
	data := []byte{4, 0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 8, 0, 0, 0}
	data = le.AppendUint64(data, math.Float64bits(1e30))
	data = le.AppendUint32(data, 8)

	r := NewBlockReader(data, 0, nil, format.Precision64, true)
	block, err := r.Next()
	require.NoError(t, err)
	require.True(t, block.Terminal)
	require.Equal(t, []float64{1e30}, block.Values)
	require.Empty(t, block.Data())
	require.Equal(t, len(data), r.Offset())

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestBlockReader_Precisions(t *testing.T) {
	tests := []struct {
		name      string
		engine    binary.ByteOrder
		precision format.Precision
		sentinel  float64
	}{
		{"f32 little", binary.LittleEndian, format.Precision32, wavetest.Sentinel32},
		{"f32 big", binary.BigEndian, format.Precision32, wavetest.Sentinel32},
		{"f64 little", binary.LittleEndian, format.Precision64, wavetest.Sentinel64},
		{"f64 big", binary.BigEndian, format.Precision64, wavetest.Sentinel64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := wavetest.Order(tt.engine == binary.BigEndian)
			data := wavetest.DataBlock(engine, tt.precision, []float64{1, 2})
			data = append(data, wavetest.DataBlock(engine, tt.precision, []float64{3, tt.sentinel})...)

			r := NewBlockReader(data, 0, nil, tt.precision, true)

			first, err := r.Next()
			require.NoError(t, err)
			require.False(t, first.Terminal)
			require.Equal(t, []float64{1, 2}, first.Data())
			require.Equal(t, 0, first.Offset)

			second, err := r.Next()
			require.NoError(t, err)
			require.True(t, second.Terminal)
			require.Equal(t, []float64{3}, second.Data())
			require.Equal(t, len(data), r.Offset())
		})
	}
}

func TestBlockReader_ReadTable(t *testing.T) {
	le := binary.LittleEndian
	f := &wavetest.File{BlockValues: 4}
	data := f.DataBlocks([]float64{1, 2, 3, 4, 5, 6, wavetest.Sentinel32})
	data = append(data, f.DataBlocks([]float64{7, wavetest.Sentinel32})...)

	r := NewBlockReader(data, 0, le, format.Precision32, false)

	table, err := r.ReadTable(nil)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, table)
	require.Equal(t, 2, r.Blocks())

	table, err = r.ReadTable(table[:0])
	require.NoError(t, err)
	require.Equal(t, []float64{7}, table)

	_, err = r.ReadTable(nil)
	require.ErrorIs(t, err, errs.ErrMissingSentinel)
}

func TestBlockReader_Errors(t *testing.T) {
	le := binary.LittleEndian

	t.Run("Trailer mismatch", func(t *testing.T) {
		data := wavetest.DataBlock(le, format.Precision32, []float64{1, wavetest.Sentinel32})
		le.PutUint32(data[len(data)-4:], 4)

		_, err := NewBlockReader(data, 0, nil, format.Precision32, false).Next()
		require.ErrorIs(t, err, errs.ErrTrailerMismatch)
	})

	t.Run("Byte order differs from header", func(t *testing.T) {
		data := wavetest.DataBlock(binary.BigEndian, format.Precision32, []float64{1})

		_, err := NewBlockReader(data, 0, le, format.Precision32, false).Next()
		require.ErrorIs(t, err, errs.ErrByteOrderChanged)
	})

	t.Run("Truncated payload", func(t *testing.T) {
		data := wavetest.DataBlock(le, format.Precision64, []float64{1, 2})

		_, err := NewBlockReader(data[:20], 0, nil, format.Precision64, false).Next()
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("Misaligned strict", func(t *testing.T) {
		data := wavetest.Block(le, 4, make([]byte, 6))

		_, err := NewBlockReader(data, 0, nil, format.Precision32, true).Next()
		require.ErrorIs(t, err, errs.ErrMisalignedBlock)
	})

	t.Run("Misaligned lenient", func(t *testing.T) {
		payload := wavetest.EncodeValues(le, format.Precision32, []float64{9})
		payload = append(payload, 0xFF, 0xFF)
		data := wavetest.Block(le, 4, payload)

		block, err := NewBlockReader(data, 0, nil, format.Precision32, false).Next()
		require.NoError(t, err)
		require.Equal(t, []float64{9}, block.Values)
	})
}
