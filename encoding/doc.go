// Package encoding decodes the numeric data section of HSPICE binary waveform files.
//
// Values are stored as raw IEEE 754 items, float32 for the 9007/9601 post formats
// and float64 for 2001, in the byte order discovered from the block frames. A
// table ends with the block whose last item reaches the precision's sentinel
// (1e30 at native precision).
//
// # Reading blocks
//
//	r := encoding.NewBlockReader(data, offset, meta.Engine, meta.Precision, false)
//	for {
//	    block, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    consume(block.Data())
//	    if block.Terminal {
//	        break
//	    }
//	}
//
// ReadTable collects one whole table in a single call.
package encoding
