package waveform

import (
	"errors"

	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/internal/collision"
	"github.com/arloliu/hspice/internal/hash"
	"github.com/arloliu/hspice/section"
	"go.uber.org/zap"
)

// signalLayout is the per-signal column plan of a file, resolved once against the
// optional allow-list.
type signalLayout struct {
	names   []string
	include []bool // signal i is materialized
	complex []bool // signal i is a real/imaginary pair
	column  []int  // column of signal i within a row
	columns int    // values per row
	count   int    // number of included signals
}

func newSignalLayout(meta *section.HeaderMetadata, allow []string, logger *zap.Logger) (*signalLayout, error) {
	l := &signalLayout{
		names:   meta.SignalNames,
		include: make([]bool, len(meta.SignalNames)),
		complex: make([]bool, len(meta.SignalNames)),
		column:  make([]int, len(meta.SignalNames)),
		columns: meta.ColumnCount(),
	}

	var allowed *collision.Tracker
	if len(allow) > 0 {
		allowed = collision.NewTracker()
		for _, name := range allow {
			err := allowed.Track(name, hash.ID(name))
			if err != nil && !errors.Is(err, errs.ErrDuplicateSignal) {
				return nil, err
			}
		}
		if allowed.HasCollision() {
			logger.Debug("signal filter hash collision, matching by name")
		}
	}

	col := 1
	for i, name := range meta.SignalNames {
		l.complex[i] = meta.IsComplexSignal(i)
		l.column[i] = col
		l.include[i] = allowed == nil || allowed.Contains(name)
		if l.include[i] {
			l.count++
		}
		if l.complex[i] {
			col += 2
		} else {
			col++
		}
	}

	if allowed != nil {
		present := collision.NewTrackerFromNames(meta.SignalNames)
		for _, name := range allowed.Names() {
			if !present.Contains(name) {
				logger.Warn("requested signal not found", zap.String("signal", name))
			}
		}
	}

	return l, nil
}

// vectors splits flat rows into the scale vector and one vector per included
// signal. rows must hold a whole number of rows.
func (l *signalLayout) vectors(rows []float64) (RealVector, []VectorData) {
	n := len(rows) / l.columns

	scale := make(RealVector, n)
	for r := range n {
		scale[r] = rows[r*l.columns]
	}

	signals := make([]VectorData, len(l.names))
	for i := range l.names {
		if !l.include[i] {
			continue
		}

		col := l.column[i]
		if l.complex[i] {
			vec := make(ComplexVector, n)
			for r := range n {
				base := r*l.columns + col
				vec[r] = complex(rows[base], rows[base+1])
			}
			signals[i] = vec
		} else {
			vec := make(RealVector, n)
			for r := range n {
				vec[r] = rows[r*l.columns+col]
			}
			signals[i] = vec
		}
	}

	return scale, signals
}
