package compress

import (
	"testing"

	"github.com/arloliu/hspice/internal/wavetest"
)

func BenchmarkDecompress(b *testing.B) {
	data := wavetest.Transient(100_000, 3000).Bytes()

	for name, codec := range getAllCodecs() {
		compressed, err := codec.Compress(data)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				if _, err := codec.Decompress(compressed); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
