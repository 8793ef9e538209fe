package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrecision(t *testing.T) {
	require.Equal(t, 4, Precision32.ItemSize())
	require.Equal(t, 8, Precision64.ItemSize())
	require.Equal(t, "f32", Precision32.String())
	require.Equal(t, "f64", Precision64.String())
	require.Equal(t, "Unknown", Precision(0).String())
}

func TestAnalysisFromScaleName(t *testing.T) {
	tests := map[string]AnalysisType{
		"TIME":      AnalysisTransient,
		"time":      AnalysisTransient,
		"HERTZ":     AnalysisAC,
		"Frequency": AnalysisAC,
		"freq":      AnalysisAC,
		"vin":       AnalysisUnknown,
		"":          AnalysisUnknown,
	}

	for name, want := range tests {
		require.Equal(t, want, AnalysisFromScaleName(name), name)
	}
}

func TestAnalysisFromExtension(t *testing.T) {
	tests := []struct {
		name string
		want AnalysisType
	}{
		{"sim.tr0", AnalysisTransient},
		{"/runs/sim.TR12", AnalysisTransient},
		{"sim.ac0", AnalysisAC},
		{"sim.sw1", AnalysisDC},
		{"sim.sw0.zst", AnalysisDC},
		{"sim.ac0.lz4", AnalysisAC},
		{"sim.raw", AnalysisUnknown},
		{"sim", AnalysisUnknown},
		{"sim.zst", AnalysisUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AnalysisFromExtension(tt.name))
		})
	}
}

func TestAnalysisType_Names(t *testing.T) {
	require.Equal(t, "transient", AnalysisTransient.String())
	require.Equal(t, "Transient Analysis", AnalysisTransient.PlotName())
	require.Equal(t, "AC Analysis", AnalysisAC.PlotName())
	require.Equal(t, "DC Analysis", AnalysisDC.PlotName())
	require.Equal(t, "unknown", AnalysisUnknown.String())
	require.Equal(t, "Analysis", AnalysisUnknown.PlotName())
}

func TestCompressionFromExtension(t *testing.T) {
	require.Equal(t, CompressionZstd, CompressionFromExtension(".zst"))
	require.Equal(t, CompressionZstd, CompressionFromExtension("ZSTD"))
	require.Equal(t, CompressionS2, CompressionFromExtension(".s2"))
	require.Equal(t, CompressionLZ4, CompressionFromExtension("lz4"))
	require.Equal(t, CompressionNone, CompressionFromExtension(".tr0"))
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0).String())
}

func TestKindOfScale(t *testing.T) {
	require.Equal(t, KindTime, KindOfScale("TIME"))
	require.Equal(t, KindFrequency, KindOfScale("hertz"))
	require.Equal(t, KindUnknown, KindOfScale("vin"))
}

func TestKindOfToken(t *testing.T) {
	tests := map[string]VarKind{
		"v(out)":   KindVoltage,
		"V(OUT)":   KindVoltage,
		"vdb(out)": KindVoltage,
		"i(vdd)":   KindCurrent,
		"i1(m1)":   KindCurrent,
		"i12(m1)":  KindCurrent,
		"ix(m1)":   KindUnknown,
		"p(r1)":    KindUnknown,
		"out":      KindUnknown,
		"(out)":    KindUnknown,
	}

	for token, want := range tests {
		require.Equal(t, want, KindOfToken(token), token)
	}
	require.Equal(t, "voltage", KindVoltage.String())
	require.Equal(t, "unknown", KindUnknown.String())
}
