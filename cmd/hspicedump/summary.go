package main

import (
	"fmt"
	"io"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/hspice/endian"
	"github.com/arloliu/hspice/section"
	"github.com/arloliu/hspice/waveform"
)

type signalStats struct {
	Name   string
	Points int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	RMS    float64
}

func summarize(name string, values []float64) signalStats {
	s := signalStats{Name: name, Points: len(values)}
	if len(values) == 0 {
		return s
	}

	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		s.StdDev = 0
	}
	s.RMS = floats.Norm(values, 2) / math.Sqrt(float64(len(values)))

	return s
}

// accumulator collects streamed chunk values per signal in first-seen order.
type accumulator struct {
	order  []string
	values map[string][]float64
}

func newAccumulator() *accumulator {
	return &accumulator{values: make(map[string][]float64)}
}

func (a *accumulator) add(chunk waveform.DataChunk) {
	for name, vec := range chunk.Signals {
		if _, ok := a.values[name]; !ok {
			a.order = append(a.order, name)
		}
		a.values[name] = append(a.values[name], waveform.Reals(vec)...)
	}
}

// summaries returns the scale first, then the signals sorted by name.
func (a *accumulator) summaries(scale string) []signalStats {
	names := make([]string, 0, len(a.order))
	for _, name := range a.order {
		if name != scale {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	out := make([]signalStats, 0, len(names)+1)
	if v, ok := a.values[scale]; ok {
		out = append(out, summarize(scale, v))
	}
	for _, name := range names {
		out = append(out, summarize(name, a.values[name]))
	}

	return out
}

func printHeader(w io.Writer, path string, meta section.HeaderMetadata) {
	fmt.Fprintf(w, "file:      %s\n", path)
	fmt.Fprintf(w, "title:     %s\n", meta.Title)
	fmt.Fprintf(w, "date:      %s\n", meta.Date)
	fmt.Fprintf(w, "precision: %s (%s endian)\n", meta.Precision, endian.Name(meta.Engine))
	fmt.Fprintf(w, "values:    %s\n", meta.ValueType)
	fmt.Fprintf(w, "scale:     %s\n", meta.ScaleName)
	fmt.Fprintf(w, "signals:   %d\n", len(meta.SignalNames))
	if meta.HasSweep() {
		fmt.Fprintf(w, "sweep:     %s (%d points)\n", meta.SweepName, meta.SweepSize)
	}
}

func printResult(w io.Writer, result *waveform.WaveformResult) {
	fmt.Fprintf(w, "analysis:  %s\n", result.Analysis)
	fmt.Fprintf(w, "tables:    %d\n", len(result.Tables))

	for t := range result.Tables {
		table := &result.Tables[t]
		if table.HasSweepValue {
			fmt.Fprintf(w, "\n[table %d] %s = %g\n", t, result.SweepParam, table.SweepValue)
		} else {
			fmt.Fprintf(w, "\n[table %d]\n", t)
		}
		if table.DroppedValues > 0 {
			fmt.Fprintf(w, "dropped values: %d\n", table.DroppedValues)
		}

		stats := make([]signalStats, 0, len(table.Vectors))
		for i, vec := range table.Vectors {
			stats = append(stats, summarize(result.Variables[i].Name, waveform.Reals(vec)))
		}
		printStats(w, stats)
	}
}

func printStats(w io.Writer, stats []signalStats) {
	fmt.Fprintf(w, "%-24s %8s %14s %14s %14s %14s %14s\n", "signal", "points", "min", "max", "mean", "stddev", "rms")
	for _, s := range stats {
		fmt.Fprintf(w, "%-24s %8d %14.6g %14.6g %14.6g %14.6g %14.6g\n",
			s.Name, s.Points, s.Min, s.Max, s.Mean, s.StdDev, s.RMS)
	}
}
