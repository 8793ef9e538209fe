package waveform

// DataChunk is a bounded run of consecutive rows produced by a Stream.
type DataChunk struct {
	// Index numbers chunks from 0 in emission order.
	Index int
	// ScaleStart and ScaleEnd are the scale values of the first and last row.
	ScaleStart float64
	ScaleEnd   float64
	// Signals maps variable names to the chunk's samples. The scale vector is
	// always present under the scale name; other signals only if selected.
	Signals map[string]VectorData

	rows int
}

// Len returns the number of rows in the chunk.
func (c DataChunk) Len() int {
	return c.rows
}
