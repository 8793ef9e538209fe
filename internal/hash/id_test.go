package hash

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestID_SignalNames(t *testing.T) {
	names := []string{"time", "out", "in", "x1.n3", "i(vdd)", "hertz"}
	seen := make(map[uint64]string, len(names))
	for _, name := range names {
		id := ID(name)
		require.Equal(t, id, ID(name), "hash must be stable")
		require.NotContains(t, seen, id, "unexpected collision for %q", name)
		seen[id] = name
	}

	require.NotEqual(t, ID("out"), ID("OUT"))
}

func BenchmarkID(b *testing.B) {
	names := make([]string, 64)
	for i := range names {
		names[i] = fmt.Sprintf("xcore.xalu%d.net%d", i, i*7)
	}

	b.ResetTimer()
	i := 0
	for b.Loop() {
		ID(names[i&63])
		i++
	}
}
