package section

// Block framing.
const (
	FrameSize   = 16 // four 32-bit words: marker, item width, marker, payload length
	TrailerSize = 4  // one 32-bit word repeating the payload length
	FrameMarker = 4  // literal value of frame words 0 and 2
)

// Header blob byte offsets. Ranges are half-open.
const (
	VariableCountOffset = 0
	ProbeCountOffset    = 4
	SweepCountOffset    = 8
	SweepCountEnd       = 12
	PostMarkerAOffset   = 16
	PostMarkerBOffset   = 20
	PostMarkerSize      = 4
	TitleOffset         = 24
	DateOffset          = 88
	DateEnd             = 112
	SweepSizeAOffset    = 176
	SweepSizeBOffset    = 187
	SweepSizeWidth      = 10
	TokensOffset        = 256
)

// Post format markers.
const (
	PostMarker9007 = "9007"
	PostMarker9601 = "9601"
	PostMarker2001 = "2001"
)

// HeaderEndMarker terminates the header blob.
const HeaderEndMarker = "$&%#"

// FrequencyTypeCode in the first header token marks complex (AC) data.
const FrequencyTypeCode = 2
