// Package cursor provides a forward-only, bounds-checked view over an immutable
// byte buffer.
package cursor

import (
	"github.com/arloliu/hspice/endian"
	"github.com/arloliu/hspice/errs"
)

// Cursor reads fixed-width values from a byte slice while tracking its position.
//
// The byte order is unknown until the first block frame has been inspected; until
// SetEngine is called, integer reads use little endian.
type Cursor struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// New creates a cursor positioned at the start of data.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// At creates a cursor over data positioned at offset, sharing the byte order of c.
func (c *Cursor) At(offset int) *Cursor {
	if offset < 0 {
		offset = 0
	}
	if offset > len(c.data) {
		offset = len(c.data)
	}

	return &Cursor{data: c.data, pos: offset, engine: c.engine}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the size of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Engine returns the established byte order, or nil if none was set yet.
func (c *Cursor) Engine() endian.EndianEngine {
	return c.engine
}

// SetEngine fixes the byte order used by subsequent integer reads.
func (c *Cursor) SetEngine(engine endian.EndianEngine) {
	c.engine = engine
}

// ReadBytes returns the next n bytes without copying and advances past them.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, errs.ErrTruncated
	}

	b := c.data[c.pos : c.pos+n : c.pos+n]
	c.pos += n

	return b, nil
}

// Peek returns the next n bytes without advancing.
func (c *Cursor) Peek(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, errs.ErrTruncated
	}

	return c.data[c.pos : c.pos+n : c.pos+n], nil
}

// Skip advances the position by n bytes.
func (c *Cursor) Skip(n int) error {
	if n < 0 || n > c.Remaining() {
		return errs.ErrTruncated
	}
	c.pos += n

	return nil
}

// Uint32 reads a 32-bit unsigned integer in the established byte order.
func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return c.order().Uint32(b), nil
}

// Int32 reads a 32-bit signed integer in the established byte order.
func (c *Cursor) Int32() (int32, error) {
	v, err := c.Uint32()
	return int32(v), err //nolint:gosec
}

func (c *Cursor) order() endian.EndianEngine {
	if c.engine == nil {
		return endian.GetLittleEndianEngine()
	}

	return c.engine
}
