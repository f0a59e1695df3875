// Package frame decodes and validates MPEG audio Layer III frame headers.
package frame

import "fmt"

const (
	// HeaderSize is the size of a frame header in bytes.
	HeaderSize = 4
	// MinFrameSize is the smallest frame length accepted as real.
	MinFrameSize = 21
	// NumBitrates is the number of usable bitrate indices (15 is reserved).
	NumBitrates = 15

	syncWord = 0xFFE
)

// Header is one decoded frame header. The zero value is not a valid header.
type Header struct {
	sync           int
	version        Version
	layer          Layer
	crc            int
	bitrateIndex   int
	frequencyIndex int
	padding        int
	extension      int
	mode           Mode
	modeExtension  int
	copyright      int
	original       int
	emphasis       int
}

// Decode parses b as a frame header. It reports false when b is not a
// Layer III header or describes a frame too small to be real.
func Decode(b [HeaderSize]byte) (Header, bool) {
	var h Header

	h.sync = int(b[0])<<4 | int(b[1]&0xE0)>>4
	if b[1]&0x10 != 0 {
		h.version = Version((b[1] >> 3) & 1)
	} else {
		h.version = Version25
	}
	h.layer = Layer((b[1] >> 1) & 3)
	h.bitrateIndex = int(b[2]>>4) & 0x0F
	if h.sync != syncWord || h.layer != Layer3 || h.bitrateIndex == 0x0F {
		return Header{}, false
	}

	h.crc = int(b[1] & 1)
	h.frequencyIndex = int(b[2]>>2) & 3
	h.padding = int(b[2]>>1) & 1
	h.extension = int(b[2] & 1)
	h.mode = Mode(b[3]>>6) & 3
	h.modeExtension = int(b[3]>>4) & 3
	h.copyright = int(b[3]>>3) & 1
	h.original = int(b[3]>>2) & 1
	h.emphasis = int(b[3] & 3)

	if h.frequencyIndex == 3 {
		return Header{}, false
	}
	if h.FrameLength() < MinFrameSize {
		return Header{}, false
	}
	return h, true
}

// FrameLength returns the length in bytes of the frame this header starts,
// header included. It returns 1 for a header without a sync word, so that
// callers stepping by frame length always make progress.
func (h Header) FrameLength() int {
	if h.sync != syncWord {
		return 1
	}
	col, ok := h.layer.column()
	if !ok {
		return 1
	}
	freq := h.Frequency()
	if freq == 0 {
		return 1
	}
	mult := 1
	if h.version == Version1 {
		mult = 2
	}
	return frameSizeTable[col]*mult*h.Bitrate()/freq + h.padding
}

// Bitrate returns the bitrate in kbps, 0 for free format.
func (h Header) Bitrate() int {
	col, ok := h.layer.column()
	if !ok || h.bitrateIndex < 0 || h.bitrateIndex >= NumBitrates {
		return 0
	}
	return bitrateTable[bitrateRow(h.version)][col][h.bitrateIndex]
}

// Frequency returns the sample rate in Hz.
func (h Header) Frequency() int {
	if h.version < Version2 || h.version > Version25 || h.frequencyIndex < 0 || h.frequencyIndex > 2 {
		return 0
	}
	return frequencyTable[h.version][h.frequencyIndex]
}

// SameConstant reports whether o belongs to the same logical stream as h.
// Bitrate, padding, the private bit and mode extension may differ between
// frames of one VBR stream.
func (h Header) SameConstant(o Header) bool {
	return h.version == o.version &&
		h.layer == o.layer &&
		h.crc == o.crc &&
		h.frequencyIndex == o.frequencyIndex &&
		h.mode == o.mode &&
		h.copyright == o.copyright &&
		h.original == o.original &&
		h.emphasis == o.emphasis
}

// WithBitrateIndex returns a copy of h using bitrate index i.
func (h Header) WithBitrateIndex(i int) Header {
	h.bitrateIndex = i
	return h
}

func (h Header) Version() Version    { return h.version }
func (h Header) Layer() Layer        { return h.layer }
func (h Header) BitrateIndex() int   { return h.bitrateIndex }
func (h Header) FrequencyIndex() int { return h.frequencyIndex }
func (h Header) Padding() int        { return h.padding }
func (h Header) CRC() int            { return h.crc }
func (h Header) Extension() int      { return h.extension }
func (h Header) Mode() Mode          { return h.mode }
func (h Header) ModeExtension() int  { return h.modeExtension }
func (h Header) Copyright() int      { return h.copyright }
func (h Header) Original() int       { return h.original }
func (h Header) Emphasis() int       { return h.emphasis }

func (h Header) String() string {
	return fmt.Sprintf("%s %s, %d kbps, %d Hz, %s", h.version, h.layer, h.Bitrate(), h.Frequency(), h.mode)
}
