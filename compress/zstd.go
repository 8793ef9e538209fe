package compress

// ZstdCompressor handles Zstandard frames (".zst" files).
//
// The pure Go implementation from klauspost/compress is used by default; building
// with cgo and the gozstd tag switches to the libzstd binding.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstandard codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
