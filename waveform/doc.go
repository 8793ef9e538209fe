// Package waveform turns the data section of an HSPICE binary file into signal
// tables.
//
// Two read paths share the same block framing and sentinel detection:
//
//   - Decoder materializes every table of a file at once into a WaveformResult.
//   - Stream reconstructs rows incrementally and emits bounded DataChunks, keeping
//     at most one chunk of rows plus one block's leftover values in memory.
//
// A row is the scale value followed by one value per real signal or a real and
// imaginary pair per complex signal. Block boundaries do not align with rows, so
// the stream carries incomplete rows across block reads.
//
// # Basic Usage
//
//	s, err := waveform.NewStream(data, 10000, waveform.WithSignals("out"))
//	if err != nil {
//	    return err
//	}
//	for chunk, err := range s.All() {
//	    if err != nil {
//	        return err
//	    }
//	    out := chunk.Signals["out"].(waveform.RealVector)
//	    _ = out
//	}
//
// Neither Decoder nor Stream is safe for concurrent use. Independent handles over
// the same bytes are.
package waveform
