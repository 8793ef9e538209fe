package pool

import "sync"

// ValueBuffer is a growable float64 slice that can be returned to a pool.
//
// The full decoder collects the flat values of one table in a ValueBuffer before
// splitting them into columns, so the scratch memory is reused across tables.
type ValueBuffer struct {
	V []float64
}

// Len returns the number of buffered values.
func (vb *ValueBuffer) Len() int {
	return len(vb.V)
}

// Append appends values to the buffer.
func (vb *ValueBuffer) Append(values ...float64) {
	vb.V = append(vb.V, values...)
}

// Reset empties the buffer but keeps its capacity.
func (vb *ValueBuffer) Reset() {
	vb.V = vb.V[:0]
}

var valuePool = sync.Pool{
	New: func() any {
		return &ValueBuffer{V: make([]float64, 0, ValueBufferDefaultSize)}
	},
}

// GetValueBuffer retrieves an empty ValueBuffer from the pool.
func GetValueBuffer() *ValueBuffer {
	vb, _ := valuePool.Get().(*ValueBuffer)
	vb.Reset()

	return vb
}

// PutValueBuffer returns a ValueBuffer to the pool. Buffers larger than
// ValueBufferMaxThreshold are dropped.
func PutValueBuffer(vb *ValueBuffer) {
	if vb == nil || cap(vb.V) > ValueBufferMaxThreshold {
		return
	}

	vb.Reset()
	valuePool.Put(vb)
}
