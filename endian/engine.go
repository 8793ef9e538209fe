// Package endian provides byte order utilities for decoding HSPICE binary files.
//
// HSPICE files carry no explicit byte order flag. The order is discovered from the
// block frame markers: every block starts with words that must read as the literal
// value 4, and only one interpretation (little or big endian) makes that true.
//
// # Basic Usage
//
//	engine, ok := endian.DetectMarker(header[0:4], header[8:12], 4)
//	if !ok {
//	    return errs.ErrCorruptedBlockHeader
//	}
//	length := engine.Uint32(header[12:16])
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// DetectMarker returns the byte order under which both 4-byte words equal marker.
//
// Little endian is tried first. The second return value is false when neither
// interpretation matches, or when either word is shorter than 4 bytes.
//
// Parameters:
//   - first: the first marker word
//   - second: the second marker word
//   - marker: the expected value of both words
//
// Returns:
//   - EndianEngine: the matching engine (nil if none)
//   - bool: whether a matching interpretation was found
func DetectMarker(first, second []byte, marker uint32) (EndianEngine, bool) {
	if len(first) < 4 || len(second) < 4 {
		return nil, false
	}

	for _, engine := range []EndianEngine{binary.LittleEndian, binary.BigEndian} {
		if engine.Uint32(first) == marker && engine.Uint32(second) == marker {
			return engine, true
		}
	}

	return nil, false
}

// Name returns "little" or "big" for the standard engines and "unknown" otherwise.
func Name(engine EndianEngine) string {
	switch engine {
	case binary.LittleEndian:
		return "little"
	case binary.BigEndian:
		return "big"
	default:
		return "unknown"
	}
}
