package frame

// Version is the MPEG audio version. The values double as the row index
// into the frequency table.
type Version int

const (
	Version2  Version = 0
	Version1  Version = 1
	Version25 Version = 2
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "MPEG-1"
	case Version2:
		return "MPEG-2"
	case Version25:
		return "MPEG-2.5"
	}
	return "MPEG-?"
}

// Layer is the raw 2-bit layer code as it appears in the header.
type Layer int

const (
	LayerReserved Layer = 0
	Layer3        Layer = 1
	Layer2        Layer = 2
	Layer1        Layer = 3
)

func (l Layer) String() string {
	switch l {
	case Layer1:
		return "Layer I"
	case Layer2:
		return "Layer II"
	case Layer3:
		return "Layer III"
	}
	return "Layer ?"
}

// column maps a layer code to its position in the size and bitrate tables
// (Layer I first).
func (l Layer) column() (int, bool) {
	if l < Layer3 || l > Layer1 {
		return 0, false
	}
	return int(Layer1 - l), true
}

// Mode is the channel mode.
type Mode int

const (
	ModeStereo Mode = iota
	ModeJointStereo
	ModeDualChannel
	ModeSingleChannel
)

func (m Mode) String() string {
	return [...]string{"stereo", "joint stereo", "dual channel", "single channel"}[m&3]
}

// bitrate rows
const (
	rowMPEG2x = 0
	rowMPEG1  = 1
)

// bitrateTable holds kbps values per [row][layer column][bitrate index].
// Index 0 is free format and never survives Decode.
var bitrateTable = [2][3][15]int{
	rowMPEG2x: {
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160},
	},
	rowMPEG1: {
		{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384},
		{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320},
	},
}

// frequencyTable holds sample rates in Hz per [version][frequency index].
var frequencyTable = [3][3]int{
	Version2:  {22050, 24000, 16000},
	Version1:  {44100, 48000, 32000},
	Version25: {11025, 12000, 8000},
}

// frameSizeTable is the size coefficient per layer column.
var frameSizeTable = [3]int{24000, 72000, 72000}

func bitrateRow(v Version) int {
	if v == Version1 {
		return rowMPEG1
	}
	return rowMPEG2x
}
