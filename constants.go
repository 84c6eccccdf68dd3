package audiofilter

// Filter file markers
const (
	fcfCommentPrefix = "%"
	fcfSOSMarker     = "SOS Matrix:"
	fcfScaleMarker   = "Scale Values:"
	sectionFields    = 6 // b0 b1 b2 a0 a1 a2
)

// Butterworth design limits
const (
	// MaxOrder is the highest Butterworth order Design accepts.
	MaxOrder = 32

	// DefaultResponsePoints is the response grid size used by front ends.
	DefaultResponsePoints = 2000
)

// Spectrum constants
const (
	// dbFloor keeps 20*log10 finite for empty bins.
	dbFloor = 1e-12

	dbScale       = 20.0
	nyquistDivide = 2
)

// PCM constants
const (
	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt8  = 128.0
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	unsigned8Offset = 128

	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE

	// The WAVE_FORMAT_EXTENSIBLE subformat GUID starts after the 16 byte
	// common fmt fields, cbSize, valid bits and channel mask.
	wavFmtSubFormatOffset = 24
	wavFmtExtensibleSize  = 40

	// DefaultBitDepth is used by WriteWAV when no bit depth is given.
	DefaultBitDepth = bitsPerSample16
)
