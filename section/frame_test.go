package section

import (
	"encoding/binary"
	"testing"

	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/internal/cursor"
	"github.com/arloliu/hspice/internal/wavetest"
	"github.com/stretchr/testify/require"
)

func TestReadFrame(t *testing.T) {
	tests := []struct {
		name   string
		engine binary.ByteOrder
	}{
		{"little endian", binary.LittleEndian},
		{"big endian", binary.BigEndian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := wavetest.Order(tt.engine == binary.BigEndian)
			data := wavetest.Block(engine, 4, make([]byte, 12))
			c := cursor.New(data)

			frame, err := ReadFrame(c, 4, true)
			require.NoError(t, err)
			require.Equal(t, 0, frame.Offset)
			require.Equal(t, 12, frame.Length)
			require.Equal(t, 3, frame.ItemCount)
			require.Equal(t, 0, frame.Padding)
			require.Equal(t, engine, frame.Engine)
			require.Equal(t, engine, c.Engine())
			require.Equal(t, FrameSize, c.Pos())

			require.NoError(t, c.Skip(frame.PayloadSize()))
			require.NoError(t, ReadTrailer(c, frame))
			require.Equal(t, 0, c.Remaining())
		})
	}
}

func TestReadFrame_Errors(t *testing.T) {
	le := binary.LittleEndian

	t.Run("Corrupted markers", func(t *testing.T) {
		data := wavetest.Block(le, 4, make([]byte, 4))
		le.PutUint32(data[8:12], 5)

		_, err := ReadFrame(cursor.New(data), 4, false)
		require.ErrorIs(t, err, errs.ErrCorruptedBlockHeader)
		require.ErrorIs(t, err, errs.ErrFormat)
	})

	t.Run("Mixed marker byte order", func(t *testing.T) {
		data := wavetest.Block(le, 4, make([]byte, 4))
		binary.BigEndian.PutUint32(data[8:12], 4)

		_, err := ReadFrame(cursor.New(data), 4, false)
		require.ErrorIs(t, err, errs.ErrCorruptedBlockHeader)
	})

	t.Run("Truncated frame", func(t *testing.T) {
		data := wavetest.Frame(le, 4, 8)[:10]

		_, err := ReadFrame(cursor.New(data), 4, false)
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("Negative length", func(t *testing.T) {
		data := wavetest.Frame(le, 4, 0)
		le.PutUint32(data[12:16], 0xFFFFFFF0)

		_, err := ReadFrame(cursor.New(data), 4, false)
		require.ErrorIs(t, err, errs.ErrCorruptedBlockHeader)
	})

	t.Run("Invalid item width", func(t *testing.T) {
		_, err := ReadFrame(cursor.New(wavetest.Frame(le, 4, 8)), 0, false)
		require.ErrorIs(t, err, errs.ErrInvalidItemWidth)
	})

	t.Run("Byte order change", func(t *testing.T) {
		data := wavetest.Block(le, 4, make([]byte, 4))
		data = append(data, wavetest.Block(binary.BigEndian, 4, make([]byte, 4))...)
		c := cursor.New(data)

		frame, err := ReadFrame(c, 4, false)
		require.NoError(t, err)
		require.NoError(t, c.Skip(frame.PayloadSize()))
		require.NoError(t, ReadTrailer(c, frame))

		_, err = ReadFrame(c, 4, false)
		require.ErrorIs(t, err, errs.ErrByteOrderChanged)
	})
}

func TestReadFrame_Misaligned(t *testing.T) {
	le := binary.LittleEndian
	data := wavetest.Block(le, 4, make([]byte, 10))

	t.Run("Strict", func(t *testing.T) {
		_, err := ReadFrame(cursor.New(data), 4, true)
		require.ErrorIs(t, err, errs.ErrMisalignedBlock)
	})

	t.Run("Lenient skips leftover bytes", func(t *testing.T) {
		c := cursor.New(data)
		frame, err := ReadFrame(c, 4, false)
		require.NoError(t, err)
		require.Equal(t, 2, frame.ItemCount)
		require.Equal(t, 2, frame.Padding)
		require.Equal(t, 8, frame.PayloadSize())

		require.NoError(t, c.Skip(frame.PayloadSize()))
		require.NoError(t, ReadTrailer(c, frame))
		require.Equal(t, 0, c.Remaining())
	})
}

func TestReadTrailer_Mismatch(t *testing.T) {
	le := binary.LittleEndian
	data := wavetest.Block(le, 4, make([]byte, 8))
	le.PutUint32(data[len(data)-4:], 12)
	c := cursor.New(data)

	frame, err := ReadFrame(c, 4, true)
	require.NoError(t, err)
	require.NoError(t, c.Skip(frame.PayloadSize()))

	err = ReadTrailer(c, frame)
	require.ErrorIs(t, err, errs.ErrTrailerMismatch)
	require.ErrorIs(t, err, errs.ErrFormat)
}

func TestReadTrailer_Truncated(t *testing.T) {
	le := binary.LittleEndian
	data := wavetest.Block(le, 4, make([]byte, 8))
	c := cursor.New(data[:len(data)-2])

	frame, err := ReadFrame(c, 4, true)
	require.NoError(t, err)
	require.NoError(t, c.Skip(frame.PayloadSize()))
	require.ErrorIs(t, ReadTrailer(c, frame), errs.ErrTruncated)
}
