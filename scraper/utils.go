package scraper

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tcolgate/mp3"
)

// Decoded is the result of decoding every frame of a stream.
type Decoded struct {
	Duration time.Duration
	Frames   int
	Skipped  int
}

// Mp3DurationByFrames decodes the frames of path starting at offset and sums
// their sample durations. Pass the anchor offset found by Probe so both
// count the same frames. It stops at the first frame it cannot parse.
func Mp3DurationByFrames(path string, offset int64) (Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return Decoded{}, err
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return Decoded{}, fmt.Errorf("seek to %d: %w", offset, err)
	}

	d := mp3.NewDecoder(f)
	var (
		frame   mp3.Frame
		skipped int
		out     Decoded
	)
	for {
		if err := d.Decode(&frame, &skipped); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return out, fmt.Errorf("frame %d: %w", out.Frames, err)
		}
		out.Skipped += skipped
		out.Frames++
		out.Duration += frame.Duration()
	}
	return out, nil
}
