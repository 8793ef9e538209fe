// Package spice3 writes decoded waveforms as SPICE3 binary raw files, the format
// read by ngspice and most waveform viewers.
//
// The file starts with a text header:
//
//	Title: <title>
//	Date: <date>
//	Plotname: Transient Analysis
//	Flags: real
//	No. Variables: 3
//	No. Points: 1001
//	Variables:
//		0	TIME	time
//		1	out	voltage
//		2	i(vdd)	current
//	Binary:
//
// followed by one row per point: the scale and every signal as little-endian
// float64 values. Only the first table of a swept result is written. Complex
// signals are written as magnitudes, so the flags are always "real".
package spice3

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/hspice/encoding"
	"github.com/arloliu/hspice/endian"
	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/format"
	"github.com/arloliu/hspice/waveform"
)

// rowsPerFlush bounds the encoder buffer between writes.
const rowsPerFlush = 4096

// Write encodes the first table of result to w.
//
// Returns ErrNoTables if the result holds no table.
func Write(w io.Writer, result *waveform.WaveformResult) error {
	if result == nil || len(result.Tables) == 0 {
		return errs.ErrNoTables
	}

	table := &result.Tables[0]
	columns := make([][]float64, len(table.Vectors))
	for i, vec := range table.Vectors {
		columns[i] = waveform.Reals(vec)
	}
	points := table.Rows()

	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, result, points); err != nil {
		return err
	}

	enc := encoding.NewRawEncoder(endian.GetLittleEndianEngine(), format.Precision64)
	defer enc.Finish()

	for r := range points {
		for _, col := range columns {
			if r < len(col) {
				enc.Write(col[r])
			} else {
				enc.Write(0)
			}
		}

		if (r+1)%rowsPerFlush == 0 {
			if _, err := bw.Write(enc.Bytes()); err != nil {
				return errs.IO("write", err)
			}
			enc.Reset()
		}
	}

	if _, err := bw.Write(enc.Bytes()); err != nil {
		return errs.IO("write", err)
	}
	if err := bw.Flush(); err != nil {
		return errs.IO("flush", err)
	}

	return nil
}

// WriteFile creates path and writes result to it.
func WriteFile(path string, result *waveform.WaveformResult) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.IO("create", err)
	}

	if err := Write(f, result); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return errs.IO("close", err)
	}

	return nil
}

func writeHeader(w *bufio.Writer, result *waveform.WaveformResult, points int) error {
	fmt.Fprintf(w, "Title: %s\n", result.Title)
	fmt.Fprintf(w, "Date: %s\n", result.Date)
	fmt.Fprintf(w, "Plotname: %s\n", result.Analysis.PlotName())
	fmt.Fprintf(w, "Flags: real\n")
	fmt.Fprintf(w, "No. Variables: %d\n", len(result.Variables))
	fmt.Fprintf(w, "No. Points: %d\n", points)
	fmt.Fprintf(w, "Variables:\n")
	for i, v := range result.Variables {
		fmt.Fprintf(w, "\t%d\t%s\t%s\n", i, v.Name, variableType(i, v))
	}
	if _, err := fmt.Fprintf(w, "Binary:\n"); err != nil {
		return errs.IO("write", err)
	}

	return nil
}

func variableType(i int, v waveform.Variable) string {
	switch v.Kind {
	case format.KindTime:
		return "time"
	case format.KindFrequency:
		return "frequency"
	case format.KindCurrent:
		return "current"
	case format.KindVoltage:
		return "voltage"
	}

	if i == 0 {
		return "time"
	}

	return "voltage"
}
