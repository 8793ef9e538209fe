package waveform

import (
	"fmt"

	"github.com/arloliu/hspice/encoding"
	"github.com/arloliu/hspice/endian"
	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/format"
	"github.com/arloliu/hspice/internal/pool"
	"github.com/arloliu/hspice/section"
	"go.uber.org/zap"
)

// Decoder materializes every table of a waveform file.
type Decoder struct {
	data   []byte
	meta   section.HeaderMetadata
	offset int
	cfg    *config
	layout *signalLayout
}

// NewDecoder parses the header of data and prepares a full decode.
//
// Parameters:
//   - data: the complete file contents
//   - opts: WithSignals, WithLogger, WithStrict, WithSourceName
//
// Returns:
//   - *Decoder: decoder ready for Decode
//   - error: header format or parse error, or an invalid option
func NewDecoder(data []byte, opts ...Option) (*Decoder, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	meta, offset, err := section.ReadHeader(data)
	if err != nil {
		return nil, err
	}

	layout, err := newSignalLayout(&meta, cfg.signals, cfg.logger)
	if err != nil {
		return nil, err
	}

	cfg.logger.Info("header parsed",
		zap.String("source", cfg.sourceName),
		zap.String("title", meta.Title),
		zap.Stringer("precision", meta.Precision),
		zap.String("byte_order", endian.Name(meta.Engine)),
		zap.Int("vectors", meta.VectorCount),
		zap.String("scale", meta.ScaleName),
		zap.String("sweep", meta.SweepName),
		zap.Int("tables", meta.SweepSize),
	)

	return &Decoder{
		data:   data,
		meta:   meta,
		offset: offset,
		cfg:    cfg,
		layout: layout,
	}, nil
}

// Metadata returns the parsed header.
func (d *Decoder) Metadata() section.HeaderMetadata {
	return d.meta
}

// DataOffset returns the byte offset of the first data block.
func (d *Decoder) DataOffset() int {
	return d.offset
}

// Decode reads all tables. Any error aborts the decode and no partial result is
// returned.
func (d *Decoder) Decode() (*WaveformResult, error) {
	result := &WaveformResult{
		Title:      d.meta.Title,
		Date:       d.meta.Date,
		Analysis:   d.analysis(),
		Precision:  d.meta.Precision,
		Variables:  d.variables(),
		SweepParam: d.meta.SweepName,
		Tables:     make([]DataTable, 0, d.meta.SweepSize),
	}

	reader := encoding.NewBlockReader(d.data, d.offset, d.meta.Engine, d.meta.Precision, d.cfg.strict)
	buf := pool.GetValueBuffer()
	defer pool.PutValueBuffer(buf)

	for t := range d.meta.SweepSize {
		blocksBefore := reader.Blocks()

		var err error
		buf.V, err = reader.ReadTable(buf.V[:0])
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", t, err)
		}

		table, err := d.buildTable(buf.V)
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", t, err)
		}

		d.cfg.logger.Debug("table decoded",
			zap.Int("table", t),
			zap.Int("blocks", reader.Blocks()-blocksBefore),
			zap.Int("rows", table.Rows()),
		)
		result.Tables = append(result.Tables, table)
	}

	result.buildIndex()

	return result, nil
}

func (d *Decoder) buildTable(values []float64) (DataTable, error) {
	var table DataTable
	if d.meta.HasSweep() && len(values) > 0 {
		table.SweepValue = values[0]
		table.HasSweepValue = true
		values = values[1:]
	} else if d.meta.HasSweep() {
		table.HasSweepValue = true
	}

	columns := d.layout.columns
	whole := len(values) / columns * columns
	table.DroppedValues = len(values) - whole
	if table.DroppedValues > 0 {
		if d.cfg.strict {
			return DataTable{}, fmt.Errorf("%d values left over with %d columns: %w",
				table.DroppedValues, columns, errs.ErrTrailingValues)
		}
		d.cfg.logger.Warn("dropping trailing values",
			zap.Int("values", table.DroppedValues),
			zap.Int("columns", columns),
		)
	}

	scale, signals := d.layout.vectors(values[:whole])
	table.Vectors = make([]VectorData, 0, d.layout.count+1)
	table.Vectors = append(table.Vectors, scale)
	for i, vec := range signals {
		if d.layout.include[i] {
			table.Vectors = append(table.Vectors, vec)
		}
	}

	return table, nil
}

func (d *Decoder) variables() []Variable {
	vars := make([]Variable, 0, d.layout.count+1)
	vars = append(vars, Variable{Name: d.meta.ScaleName, Kind: format.KindOfScale(d.meta.ScaleName)})
	for i, name := range d.meta.SignalNames {
		if d.layout.include[i] {
			vars = append(vars, Variable{Name: name, Kind: d.meta.SignalKinds[i]})
		}
	}

	return vars
}

func (d *Decoder) analysis() format.AnalysisType {
	if d.meta.IsComplex() {
		return format.AnalysisAC
	}
	if a := format.AnalysisFromScaleName(d.meta.ScaleName); a != format.AnalysisUnknown {
		return a
	}

	return format.AnalysisFromExtension(d.cfg.sourceName)
}

// Decode parses and fully decodes data in one call.
func Decode(data []byte, opts ...Option) (*WaveformResult, error) {
	d, err := NewDecoder(data, opts...)
	if err != nil {
		return nil, err
	}

	return d.Decode()
}
