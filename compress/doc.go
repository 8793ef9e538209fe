// Package compress opens HSPICE waveform files stored in a compressed container.
//
// Simulation output is large and compresses well, so archived ".tr0" files are
// often kept as ".tr0.zst", ".tr0.s2" or ".tr0.lz4". Each codec handles a whole
// file in the standard container of its algorithm:
//
//   - None: pass-through for raw files
//   - Zstd: Zstandard frames (klauspost/compress, or libzstd with -tags gozstd)
//   - S2: S2 or Snappy framed streams
//   - LZ4: LZ4 frames
//
// # Usage
//
//	ct := compress.ForFile(path, data[:16])
//	codec, err := compress.GetCodec(ct)
//	if err != nil {
//	    return err
//	}
//	raw, err := codec.Decompress(data)
//
// All codecs are stateless values and safe for concurrent use.
package compress
