// Package pool provides reusable buffers for header accumulation and block decoding.
package pool

import (
	"bytes"
	"sync"
)

// Default sizes of pooled buffers.
const (
	HeaderBufferDefaultSize  = 1024 * 4        // 4KiB, a typical header fits
	HeaderBufferMaxThreshold = 1024 * 64       // 64KiB
	ValueBufferDefaultSize   = 1024 * 8        // 8Ki float64 values
	ValueBufferMaxThreshold  = 1024 * 1024 * 4 // 4Mi float64 values
)

// ByteBuffer is a growable byte slice that can be returned to a pool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer but keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// Index returns the index of the first occurrence of sep, or -1.
func (bb *ByteBuffer) Index(sep []byte) int {
	return bytes.Index(bb.B, sep)
}

// Truncate discards all but the first n bytes.
// Panics if n is negative or greater than the length.
func (bb *ByteBuffer) Truncate(n int) {
	if n < 0 || n > len(bb.B) {
		panic("Truncate: invalid length")
	}
	bb.B = bb.B[:n]
}

// ByteBufferPool is a pool of ByteBuffers.
//
// Buffers that grew beyond maxThreshold are dropped on Put to avoid retaining
// unusually large headers.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool handing out buffers of defaultSize capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var headerPool = NewByteBufferPool(HeaderBufferDefaultSize, HeaderBufferMaxThreshold)

// GetHeaderBuffer retrieves a ByteBuffer from the header pool.
func GetHeaderBuffer() *ByteBuffer {
	return headerPool.Get()
}

// PutHeaderBuffer returns a ByteBuffer to the header pool.
func PutHeaderBuffer(bb *ByteBuffer) {
	headerPool.Put(bb)
}
