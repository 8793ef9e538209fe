package compress

import (
	"bytes"
	"fmt"

	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/format"
)

// Compressor compresses a whole waveform file.
type Compressor interface {
	// Compress returns the compressed form of data. The input is not modified
	// and the result is owned by the caller.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a whole waveform file.
//
// Implementations are safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original bytes of a compressed file. It fails if
	// data is corrupted or uses another algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats summarizes one compression run.
type CompressionStats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
	// CompressionTimeNs is the wall time spent compressing.
	CompressionTimeNs int64
}

// CompressionRatio returns compressed size / original size, 0 for empty input.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for a compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedEncoding, compressionType)
}

// Frame magic numbers of the supported container formats.
var (
	zstdMagic     = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic      = []byte{0x04, 0x22, 0x4D, 0x18}
	s2StreamMagic = []byte("\xff\x06\x00\x00S2sTwO")
	snappyMagic   = []byte("\xff\x06\x00\x00sNaPpY")
)

// Detect identifies the container format from the leading bytes of a file.
// Unrecognized data, including every raw waveform file, is CompressionNone.
func Detect(head []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(head, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(head, s2StreamMagic), bytes.HasPrefix(head, snappyMagic):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}

// ForFile picks the compression of a file from its name, falling back to its
// leading bytes when the extension is not a compression suffix.
func ForFile(name string, head []byte) format.CompressionType {
	if ct := format.CompressionFromExtension(extension(name)); ct != format.CompressionNone {
		return ct
	}

	return Detect(head)
}

func extension(name string) string {
	for i := len(name) - 1; i >= 0 && name[i] != '/'; i-- {
		if name[i] == '.' {
			return name[i:]
		}
	}

	return ""
}
