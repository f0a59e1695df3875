package scraper

import "time"

type Format string

const (
	FormatMP3 Format = "mp3"
)

// Audio describes one analysed file. Bitrate is the median frame bitrate
// in kbps; AnchorOffset is where the first trusted frame starts.
type Audio struct {
	Path         string        `json:"path"`
	Duration     time.Duration `json:"duration"`
	Format       Format        `json:"format"`
	Bitrate      int           `json:"bitrate"`
	SampleRate   int           `json:"sample_rate"`
	Frames       int           `json:"frames"`
	AnchorOffset int64         `json:"anchor_offset"`
}

func (a Audio) Seconds() int { return int(a.Duration / time.Second) }
