package main

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/hspice/internal/wavetest"
	"github.com/arloliu/hspice/section"
	"github.com/arloliu/hspice/waveform"
)

func TestSummarize(t *testing.T) {
	s := summarize("out", []float64{1, 2, 3, 4})
	require.Equal(t, 4, s.Points)
	require.Equal(t, 1.0, s.Min)
	require.Equal(t, 4.0, s.Max)
	require.InDelta(t, 2.5, s.Mean, 1e-12)
	require.InDelta(t, math.Sqrt(5.0/3.0), s.StdDev, 1e-12)
	require.InDelta(t, math.Sqrt(7.5), s.RMS, 1e-12)

	single := summarize("x", []float64{7})
	require.Zero(t, single.StdDev)

	empty := summarize("none", nil)
	require.Zero(t, empty.Points)
}

func TestAccumulator(t *testing.T) {
	stream, err := waveform.NewStream(wavetest.Transient(20, 6).Bytes(), 4)
	require.NoError(t, err)

	acc := newAccumulator()
	for chunk, err := range stream.All() {
		require.NoError(t, err)
		acc.add(chunk)
	}

	stats := acc.summaries("TIME")
	require.Len(t, stats, 3)
	require.Equal(t, "TIME", stats[0].Name)
	require.Equal(t, "in", stats[1].Name)
	require.Equal(t, "out", stats[2].Name)
	require.Equal(t, 20, stats[2].Points)
	require.Equal(t, 19.0, stats[2].Max)
	require.Equal(t, -19.0, stats[1].Min)
}

func TestPrintResult(t *testing.T) {
	data := wavetest.Transient(5, 0).Bytes()

	meta, _, err := section.ReadHeader(data)
	require.NoError(t, err)
	result, err := waveform.Decode(data)
	require.NoError(t, err)

	var buf bytes.Buffer
	printHeader(&buf, "sim.tr0", meta)
	printResult(&buf, result)

	out := buf.String()
	require.Contains(t, out, "title:     transient test")
	require.Contains(t, out, "f32 (little endian)")
	require.Contains(t, out, "analysis:  transient")
	require.Contains(t, out, "[table 0]")
	require.Contains(t, out, "out")
}
