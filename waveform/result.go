package waveform

import (
	"github.com/arloliu/hspice/format"
	"github.com/arloliu/hspice/internal/collision"
)

// Variable names one vector of a result.
type Variable struct {
	Name string
	Kind format.VarKind
}

// DataTable holds the vectors of one sweep point.
type DataTable struct {
	// SweepValue is the sweep parameter value; valid only if HasSweepValue.
	SweepValue    float64
	HasSweepValue bool
	// Vectors is indexed like WaveformResult.Variables; index 0 is the scale.
	Vectors []VectorData
	// DroppedValues counts trailing values that did not fill a whole row.
	DroppedValues int
}

// Rows returns the number of rows in the table.
func (t *DataTable) Rows() int {
	if len(t.Vectors) == 0 {
		return 0
	}

	return t.Vectors[0].Len()
}

// WaveformResult is a fully decoded waveform file.
type WaveformResult struct {
	Title     string
	Date      string
	Analysis  format.AnalysisType
	Precision format.Precision
	// Variables lists the scale first, then the signals in file order.
	Variables []Variable
	// SweepParam is empty when the file has no sweep.
	SweepParam string
	Tables     []DataTable

	index *collision.Tracker
}

// ScaleName returns the name of the scale variable.
func (r *WaveformResult) ScaleName() string {
	if len(r.Variables) == 0 {
		return ""
	}

	return r.Variables[0].Name
}

// HasSweep reports whether the result holds one table per sweep point.
func (r *WaveformResult) HasSweep() bool {
	return r.SweepParam != ""
}

// NumPoints returns the number of rows of the first table.
func (r *WaveformResult) NumPoints() int {
	if len(r.Tables) == 0 {
		return 0
	}

	return r.Tables[0].Rows()
}

// SweepValues returns the sweep value of every table, or nil without a sweep.
func (r *WaveformResult) SweepValues() []float64 {
	if !r.HasSweep() {
		return nil
	}

	values := make([]float64, 0, len(r.Tables))
	for i := range r.Tables {
		values = append(values, r.Tables[i].SweepValue)
	}

	return values
}

// VariableIndex returns the position of a variable by exact name.
func (r *WaveformResult) VariableIndex(name string) (int, bool) {
	if r.index != nil {
		return r.index.Lookup(name)
	}

	for i, v := range r.Variables {
		if v.Name == name {
			return i, true
		}
	}

	return -1, false
}

// Signal returns the vector of a variable in the given table.
func (r *WaveformResult) Signal(name string, table int) (VectorData, bool) {
	if table < 0 || table >= len(r.Tables) {
		return nil, false
	}

	i, ok := r.VariableIndex(name)
	if !ok || i >= len(r.Tables[table].Vectors) {
		return nil, false
	}

	return r.Tables[table].Vectors[i], true
}

func (r *WaveformResult) buildIndex() {
	names := make([]string, len(r.Variables))
	for i, v := range r.Variables {
		names[i] = v.Name
	}
	r.index = collision.NewTrackerFromNames(names)
}
