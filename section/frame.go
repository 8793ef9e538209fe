package section

import (
	"fmt"

	"github.com/arloliu/hspice/endian"
	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/internal/cursor"
)

// Frame describes one block header.
type Frame struct {
	// Offset is the position of the frame's first byte.
	Offset int
	// Length is the declared payload length in bytes.
	Length int
	// ItemCount is the number of whole items of the requested width in the payload.
	ItemCount int
	// Padding is the number of payload bytes after the last whole item.
	// It is always zero in strict mode.
	Padding int
	// Engine is the byte order the frame was decoded with.
	Engine endian.EndianEngine
}

// PayloadSize returns the number of bytes covered by whole items.
func (f Frame) PayloadSize() int {
	return f.Length - f.Padding
}

// ReadFrame reads a 16-byte block frame at the cursor position.
//
// The first frame fixes the cursor's byte order. A frame whose markers only match
// the other order fails with ErrByteOrderChanged.
//
// Parameters:
//   - c: cursor positioned at a frame
//   - itemWidth: size of one payload item in bytes (1 for header text)
//   - strict: reject payload lengths that are not a multiple of itemWidth
//
// Returns:
//   - Frame: the decoded frame, cursor positioned at the payload
//   - error: ErrTruncated, ErrCorruptedBlockHeader, ErrByteOrderChanged or ErrMisalignedBlock
func ReadFrame(c *cursor.Cursor, itemWidth int, strict bool) (Frame, error) {
	if itemWidth <= 0 {
		return Frame{}, errs.ErrInvalidItemWidth
	}

	offset := c.Pos()
	header, err := c.Peek(FrameSize)
	if err != nil {
		return Frame{}, fmt.Errorf("block frame at offset %d: %w", offset, err)
	}

	engine, ok := endian.DetectMarker(header[0:4], header[8:12], FrameMarker)
	if !ok {
		return Frame{}, fmt.Errorf("block frame at offset %d: %w", offset, errs.ErrCorruptedBlockHeader)
	}

	switch prev := c.Engine(); {
	case prev == nil:
		c.SetEngine(engine)
	case prev != engine:
		return Frame{}, fmt.Errorf("block frame at offset %d: %s after %s: %w",
			offset, endian.Name(engine), endian.Name(prev), errs.ErrByteOrderChanged)
	}

	length := int32(engine.Uint32(header[12:16])) //nolint:gosec
	if length < 0 {
		return Frame{}, fmt.Errorf("block frame at offset %d: negative length %d: %w",
			offset, length, errs.ErrCorruptedBlockHeader)
	}

	frame := Frame{
		Offset:    offset,
		Length:    int(length),
		ItemCount: int(length) / itemWidth,
		Padding:   int(length) % itemWidth,
		Engine:    engine,
	}
	if frame.Padding != 0 && strict {
		return Frame{}, fmt.Errorf("block frame at offset %d: length %d, item width %d: %w",
			offset, length, itemWidth, errs.ErrMisalignedBlock)
	}

	_ = c.Skip(FrameSize)

	return frame, nil
}

// ReadTrailer skips any padding left after the frame's items and verifies that
// the trailer word repeats the declared payload length.
//
// The cursor must be positioned right after the frame's whole items.
func ReadTrailer(c *cursor.Cursor, f Frame) error {
	if f.Padding > 0 {
		if err := c.Skip(f.Padding); err != nil {
			return fmt.Errorf("block padding at offset %d: %w", c.Pos(), err)
		}
	}

	offset := c.Pos()
	trailer, err := c.Int32()
	if err != nil {
		return fmt.Errorf("block trailer at offset %d: %w", offset, err)
	}
	if int(trailer) != f.Length {
		return fmt.Errorf("block trailer at offset %d: got %d, want %d: %w",
			offset, trailer, f.Length, errs.ErrTrailerMismatch)
	}

	return nil
}
