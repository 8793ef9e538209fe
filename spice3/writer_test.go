package spice3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/format"
	"github.com/arloliu/hspice/internal/wavetest"
	"github.com/arloliu/hspice/waveform"
)

func splitRaw(t *testing.T, raw []byte) (string, []float64) {
	t.Helper()

	marker := []byte("Binary:\n")
	idx := bytes.Index(raw, marker)
	require.GreaterOrEqual(t, idx, 0)

	body := raw[idx+len(marker):]
	require.Zero(t, len(body)%8)

	values := make([]float64, len(body)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(body[i*8:]))
	}

	return string(raw[:idx+len(marker)]), values
}

func TestWrite_Transient(t *testing.T) {
	result, err := waveform.Decode(wavetest.Transient(3, 0).Bytes())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, result))

	header, values := splitRaw(t, buf.Bytes())
	require.Equal(t, "Title: transient test\n"+
		"Date: 01/02/2024 10:00:00\n"+
		"Plotname: Transient Analysis\n"+
		"Flags: real\n"+
		"No. Variables: 3\n"+
		"No. Points: 3\n"+
		"Variables:\n"+
		"\t0\tTIME\ttime\n"+
		"\t1\tout\tvoltage\n"+
		"\t2\tin\tvoltage\n"+
		"Binary:\n", header)

	require.Len(t, values, 9)
	for i := range 3 {
		require.InDelta(t, float64(i)*1e-9, values[i*3], 1e-12)
		require.Equal(t, float64(i), values[i*3+1])
		require.Equal(t, -float64(i), values[i*3+2])
	}
}

func TestWrite_ComplexAsMagnitude(t *testing.T) {
	result := &waveform.WaveformResult{
		Title:    "ac",
		Analysis: format.AnalysisAC,
		Variables: []waveform.Variable{
			{Name: "HERTZ", Kind: format.KindFrequency},
			{Name: "out", Kind: format.KindVoltage},
			{Name: "i(vdd)", Kind: format.KindCurrent},
		},
		Tables: []waveform.DataTable{{
			Vectors: []waveform.VectorData{
				waveform.RealVector{1e3, 2e3},
				waveform.ComplexVector{complex(3, 4), complex(0, -2)},
				waveform.RealVector{0.5, 0.25},
			},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, result))

	header, values := splitRaw(t, buf.Bytes())
	require.Contains(t, header, "Plotname: AC Analysis\n")
	require.Contains(t, header, "Flags: real\n")
	require.Contains(t, header, "\t0\tHERTZ\tfrequency\n")
	require.Contains(t, header, "\t2\ti(vdd)\tcurrent\n")
	require.Equal(t, []float64{1e3, 5, 0.5, 2e3, 2, 0.25}, values)
}

func TestWrite_FirstTableOnly(t *testing.T) {
	result := &waveform.WaveformResult{
		Variables:  []waveform.Variable{{Name: "TIME", Kind: format.KindTime}, {Name: "out", Kind: format.KindVoltage}},
		SweepParam: "vdd",
		Tables: []waveform.DataTable{
			{SweepValue: 1, HasSweepValue: true, Vectors: []waveform.VectorData{waveform.RealVector{0, 1}, waveform.RealVector{10, 11}}},
			{SweepValue: 2, HasSweepValue: true, Vectors: []waveform.VectorData{waveform.RealVector{0, 1}, waveform.RealVector{20, 21}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, result))

	header, values := splitRaw(t, buf.Bytes())
	require.Contains(t, header, "No. Points: 2\n")
	require.Equal(t, []float64{0, 10, 1, 11}, values)
}

func TestWrite_ManyRows(t *testing.T) {
	n := rowsPerFlush*2 + 17
	result, err := waveform.Decode(wavetest.Transient(n, 1000).Bytes())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, result))

	_, values := splitRaw(t, buf.Bytes())
	require.Len(t, values, n*3)
	require.Equal(t, float64(n-1), values[(n-1)*3+1])
}

func TestWrite_NoTables(t *testing.T) {
	require.ErrorIs(t, Write(&bytes.Buffer{}, &waveform.WaveformResult{}), errs.ErrNoTables)
	require.ErrorIs(t, Write(&bytes.Buffer{}, nil), errs.ErrNoTables)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_WriterError(t *testing.T) {
	result, err := waveform.Decode(wavetest.Transient(5, 0).Bytes())
	require.NoError(t, err)

	require.ErrorIs(t, Write(failingWriter{}, result), errs.ErrIO)
}

func TestWriteFile(t *testing.T) {
	result, err := waveform.Decode(wavetest.Transient(4, 0).Bytes())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.raw")
	require.NoError(t, WriteFile(path, result))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, result))
	require.Equal(t, buf.Bytes(), raw)

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "out.raw"), result)
	require.ErrorIs(t, err, errs.ErrIO)
}
