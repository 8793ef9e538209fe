package format

import (
	"path/filepath"
	"strings"
)

type (
	Precision       uint8
	ValueType       uint8
	AnalysisType    int8
	VarKind         int8
	CompressionType uint8
)

const (
	Precision32 Precision = 0x1 // Precision32 is the 9007/9601 post format with 4-byte floats.
	Precision64 Precision = 0x2 // Precision64 is the 2001 post format with 8-byte floats.

	Real    ValueType = 0x0 // Real marks files holding only real signals.
	Complex ValueType = 0x1 // Complex marks frequency-domain files with complex signals.

	CompressionNone CompressionType = 0x1 // CompressionNone represents an uncompressed file.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a Zstandard-compressed file.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents an S2-compressed file.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 block-compressed file.
)

const (
	AnalysisUnknown   AnalysisType = -1
	AnalysisTransient AnalysisType = 0
	AnalysisAC        AnalysisType = 1
	AnalysisDC        AnalysisType = 2
	AnalysisOperating AnalysisType = 3
	AnalysisNoise     AnalysisType = 4
)

const (
	KindUnknown   VarKind = -1
	KindTime      VarKind = 0
	KindFrequency VarKind = 1
	KindVoltage   VarKind = 2
	KindCurrent   VarKind = 3
)

// ItemSize returns the number of bytes of one data item.
func (p Precision) ItemSize() int {
	if p == Precision64 {
		return 8
	}

	return 4
}

func (p Precision) String() string {
	switch p {
	case Precision32:
		return "f32"
	case Precision64:
		return "f64"
	default:
		return "Unknown"
	}
}

func (v ValueType) String() string {
	switch v {
	case Real:
		return "Real"
	case Complex:
		return "Complex"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (a AnalysisType) String() string {
	switch a {
	case AnalysisTransient:
		return "transient"
	case AnalysisAC:
		return "ac"
	case AnalysisDC:
		return "dc"
	case AnalysisOperating:
		return "operating"
	case AnalysisNoise:
		return "noise"
	default:
		return "unknown"
	}
}

// PlotName returns the SPICE3 plot name for the analysis.
func (a AnalysisType) PlotName() string {
	switch a {
	case AnalysisTransient:
		return "Transient Analysis"
	case AnalysisAC:
		return "AC Analysis"
	case AnalysisDC:
		return "DC Analysis"
	case AnalysisOperating:
		return "Operating Point"
	case AnalysisNoise:
		return "Noise Analysis"
	default:
		return "Analysis"
	}
}

// AnalysisFromScaleName infers the analysis from the scale vector name.
func AnalysisFromScaleName(name string) AnalysisType {
	switch strings.ToLower(name) {
	case "time":
		return AnalysisTransient
	case "hertz", "freq", "frequency":
		return AnalysisAC
	default:
		return AnalysisUnknown
	}
}

// AnalysisFromExtension infers the analysis from a file name such as "sim.tr0",
// "sim.ac1" or "sim.sw0". Compression suffixes (".zst", ".s2", ".lz4") are ignored.
func AnalysisFromExtension(name string) AnalysisType {
	ext := strings.ToLower(filepath.Ext(name))
	if CompressionFromExtension(ext) != CompressionNone {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(name, filepath.Ext(name))))
	}
	ext = strings.TrimPrefix(ext, ".")

	switch {
	case strings.HasPrefix(ext, "tr"):
		return AnalysisTransient
	case strings.HasPrefix(ext, "ac"):
		return AnalysisAC
	case strings.HasPrefix(ext, "sw"):
		return AnalysisDC
	default:
		return AnalysisUnknown
	}
}

// CompressionFromExtension maps a file extension (with or without the leading dot)
// to the compression used for the whole file.
func CompressionFromExtension(ext string) CompressionType {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "zst", "zstd":
		return CompressionZstd
	case "s2":
		return CompressionS2
	case "lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

func (k VarKind) String() string {
	switch k {
	case KindTime:
		return "time"
	case KindFrequency:
		return "frequency"
	case KindVoltage:
		return "voltage"
	case KindCurrent:
		return "current"
	default:
		return "unknown"
	}
}

// KindOfScale infers the kind of the scale vector from its name.
func KindOfScale(name string) VarKind {
	switch strings.ToLower(name) {
	case "time":
		return KindTime
	case "hertz", "freq", "frequency":
		return KindFrequency
	default:
		return KindUnknown
	}
}

// KindOfToken infers the kind of a signal from its raw header token, before the
// v(...) wrapper is removed. Current probes are written as i(x), i1(x), i2(x)...
func KindOfToken(token string) VarKind {
	t := strings.ToLower(token)
	open := strings.IndexByte(t, '(')
	if open <= 0 {
		return KindUnknown
	}

	prefix := t[:open]
	switch {
	case prefix == "v" || prefix == "vm" || prefix == "vr" || prefix == "vi" || prefix == "vp" || prefix == "vdb":
		return KindVoltage
	case prefix[0] == 'i' && strings.Trim(prefix[1:], "0123456789") == "":
		return KindCurrent
	default:
		return KindUnknown
	}
}
