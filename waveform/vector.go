package waveform

import (
	"math/cmplx"

	"github.com/arloliu/hspice/format"
)

// VectorData is the sample sequence of one variable. It is implemented only by
// RealVector and ComplexVector.
type VectorData interface {
	// Len returns the number of samples.
	Len() int
	// Type reports whether the samples are real or complex.
	Type() format.ValueType

	vectorData()
}

// RealVector holds real samples.
type RealVector []float64

// ComplexVector holds complex samples.
type ComplexVector []complex128

var (
	_ VectorData = RealVector(nil)
	_ VectorData = ComplexVector(nil)
)

func (v RealVector) Len() int               { return len(v) }
func (v RealVector) Type() format.ValueType { return format.Real }
func (RealVector) vectorData()              {}

func (v ComplexVector) Len() int               { return len(v) }
func (v ComplexVector) Type() format.ValueType { return format.Complex }
func (ComplexVector) vectorData()              {}

// Magnitudes returns |z| for every sample.
func (v ComplexVector) Magnitudes() []float64 {
	out := make([]float64, len(v))
	for i, z := range v {
		out[i] = cmplx.Abs(z)
	}

	return out
}

// Reals returns the samples of v as float64 values; complex samples are
// reduced to their magnitude.
func Reals(v VectorData) []float64 {
	switch vec := v.(type) {
	case RealVector:
		return vec
	case ComplexVector:
		return vec.Magnitudes()
	default:
		return nil
	}
}
