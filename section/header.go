package section

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/hspice/endian"
	"github.com/arloliu/hspice/errs"
	"github.com/arloliu/hspice/format"
	"github.com/arloliu/hspice/internal/cursor"
	"github.com/arloliu/hspice/internal/pool"
)

// HeaderMetadata is the parsed content of the header blob. It is immutable after
// parsing.
type HeaderMetadata struct {
	Title     string
	Date      string
	Precision format.Precision
	// VariableCount is the number of independent variables, including the scale.
	VariableCount int
	// VectorCount is probes plus variables; it counts the scale vector.
	VectorCount int
	ValueType   format.ValueType
	ScaleName   string
	// SignalNames holds VectorCount-1 names, lowercased with any v(...) wrapper removed.
	SignalNames []string
	// SignalKinds is parallel to SignalNames and inferred from the raw tokens.
	SignalKinds []format.VarKind
	// SweepName is empty when the file has no sweep.
	SweepName string
	// SweepSize is the number of data tables, 1 without a sweep.
	SweepSize int
	// Engine is the byte order discovered from the header frames. ReadHeader
	// sets it; ParseHeaderMetadata leaves it nil.
	Engine endian.EndianEngine
}

// HasSweep reports whether the file declares a sweep parameter.
func (h *HeaderMetadata) HasSweep() bool {
	return h.SweepName != ""
}

// IsComplex reports whether the file holds complex AC data.
func (h *HeaderMetadata) IsComplex() bool {
	return h.ValueType == format.Complex
}

// IsComplexSignal reports whether signal i (0-based, scale excluded) is stored as
// a real/imaginary pair. Only the first VariableCount-1 signals of a complex
// file are.
func (h *HeaderMetadata) IsComplexSignal(i int) bool {
	return h.IsComplex() && i < h.VariableCount-1
}

// ColumnCount returns the number of flat values making up one row.
func (h *HeaderMetadata) ColumnCount() int {
	if h.IsComplex() && h.VariableCount > 1 {
		return h.VectorCount + h.VariableCount - 1
	}

	return h.VectorCount
}

// ItemSize returns the byte width of one data value.
func (h *HeaderMetadata) ItemSize() int {
	return h.Precision.ItemSize()
}

// ReadHeader validates the start of a binary waveform file and parses its header.
//
// Returns:
//   - HeaderMetadata: parsed metadata
//   - int: byte offset of the first data block
//   - error: format or parse error
func ReadHeader(data []byte) (HeaderMetadata, int, error) {
	if len(data) == 0 {
		return HeaderMetadata{}, 0, errs.ErrEmptyFile
	}
	if data[0] >= ' ' {
		return HeaderMetadata{}, 0, errs.ErrASCIIFormat
	}

	c := cursor.New(data)
	blob, err := ReadHeaderBlocks(c)
	if err != nil {
		return HeaderMetadata{}, 0, err
	}

	meta, err := ParseHeaderMetadata(blob)
	if err != nil {
		return HeaderMetadata{}, 0, err
	}
	meta.Engine = c.Engine()

	return meta, c.Pos(), nil
}

// ReadHeaderBlocks concatenates 1-byte-item blocks until the header end marker
// appears and returns the bytes before the marker. The cursor is left after the
// block containing the marker.
func ReadHeaderBlocks(c *cursor.Cursor) ([]byte, error) {
	buf := pool.GetHeaderBuffer()
	defer pool.PutHeaderBuffer(buf)

	marker := []byte(HeaderEndMarker)
	for {
		frame, err := ReadFrame(c, 1, false)
		if err != nil {
			return nil, fmt.Errorf("header: %w", err)
		}

		payload, err := c.ReadBytes(frame.PayloadSize())
		if err != nil {
			return nil, fmt.Errorf("header block at offset %d: %w", frame.Offset, err)
		}
		if err := ReadTrailer(c, frame); err != nil {
			return nil, fmt.Errorf("header: %w", err)
		}

		// The marker may straddle two blocks.
		from := max(buf.Len()-len(marker)+1, 0)
		_, _ = buf.Write(payload)

		if idx := bytes.Index(buf.Bytes()[from:], marker); idx >= 0 {
			buf.Truncate(from + idx)
			break
		}
	}

	return bytes.Clone(buf.Bytes()), nil
}

// ParseHeaderMetadata interprets a header blob (without the end marker).
func ParseHeaderMetadata(blob []byte) (HeaderMetadata, error) {
	postA := extractString(blob, PostMarkerAOffset, PostMarkerAOffset+PostMarkerSize)
	postB := extractString(blob, PostMarkerBOffset, PostMarkerBOffset+PostMarkerSize)

	var meta HeaderMetadata
	switch {
	case postB == PostMarker2001:
		meta.Precision = format.Precision64
	case postA == PostMarker9007 || postA == PostMarker9601:
		meta.Precision = format.Precision32
	default:
		return HeaderMetadata{}, fmt.Errorf("%w: %q/%q", errs.ErrUnknownPostFormat, postA, postB)
	}

	meta.Date = extractString(blob, DateOffset, DateEnd)
	titleEnd := DateOffset
	for titleEnd > TitleOffset && titleEnd <= len(blob) && blob[titleEnd-1] == ' ' {
		titleEnd--
	}
	meta.Title = extractString(blob, TitleOffset, titleEnd)

	sweeps := extractInt(blob, SweepCountOffset, SweepCountEnd)
	if sweeps != 0 && sweeps != 1 {
		return HeaderMetadata{}, fmt.Errorf("%w: %d sweep dimensions", errs.ErrMultiDimSweep, sweeps)
	}

	probes := extractInt(blob, ProbeCountOffset, SweepCountOffset)
	meta.VariableCount = extractInt(blob, VariableCountOffset, ProbeCountOffset)
	meta.VectorCount = probes + meta.VariableCount
	if probes < 0 || meta.VariableCount < 0 || meta.VectorCount < 1 {
		return HeaderMetadata{}, fmt.Errorf("%w: %d variables, %d probes",
			errs.ErrInvalidVectorCount, meta.VariableCount, probes)
	}

	if len(blob) < TokensOffset {
		return HeaderMetadata{}, fmt.Errorf("%w: %d bytes", errs.ErrHeaderTooShort, len(blob))
	}

	tokens := strings.Fields(strings.ToValidUTF8(string(blob[TokensOffset:]), "�"))
	if len(tokens) > 0 {
		if code, err := strconv.Atoi(tokens[0]); err == nil && code == FrequencyTypeCode {
			meta.ValueType = format.Complex
		}
	}

	vc := meta.VectorCount
	if len(tokens) < vc+1 {
		return HeaderMetadata{}, fmt.Errorf("%w: %d tokens for %d vectors", errs.ErrNotEnoughNames, len(tokens), vc)
	}
	if len(tokens) < 2*vc {
		return HeaderMetadata{}, fmt.Errorf("%w: %d signal names for %d signals",
			errs.ErrNotEnoughNames, len(tokens)-vc-1, vc-1)
	}

	meta.ScaleName = tokens[vc]
	meta.SignalNames = make([]string, 0, vc-1)
	meta.SignalKinds = make([]format.VarKind, 0, vc-1)
	for _, token := range tokens[vc+1 : 2*vc] {
		meta.SignalNames = append(meta.SignalNames, SignalName(token))
		meta.SignalKinds = append(meta.SignalKinds, format.KindOfToken(token))
	}

	meta.SweepSize = 1
	if sweeps == 1 && len(tokens) > 2*vc {
		meta.SweepName = tokens[2*vc]

		sizeOffset := SweepSizeAOffset
		if postB == PostMarker2001 {
			sizeOffset = SweepSizeBOffset
		}
		meta.SweepSize = max(extractInt(blob, sizeOffset, sizeOffset+SweepSizeWidth), 1)
	}

	return meta, nil
}

// SignalName normalizes a raw header token: lowercased, with a leading "v(" and
// any trailing ")" removed.
func SignalName(token string) string {
	name := strings.ToLower(token)
	if rest, ok := strings.CutPrefix(name, "v("); ok {
		name = strings.TrimRight(rest, ")")
	}

	return name
}

// extractString returns blob[start:end] cut at the first NUL and trimmed.
// Out of range requests yield "".
func extractString(blob []byte, start, end int) string {
	if start >= len(blob) || end > len(blob) || start >= end {
		return ""
	}

	field := blob[start:end]
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}

	return strings.TrimSpace(strings.ToValidUTF8(string(field), "�"))
}

// extractInt parses a decimal field, yielding 0 when it is absent or malformed.
func extractInt(blob []byte, start, end int) int {
	n, err := strconv.Atoi(extractString(blob, start, end))
	if err != nil {
		return 0
	}

	return n
}
