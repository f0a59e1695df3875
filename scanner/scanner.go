// Package scanner estimates the duration of an MPEG audio stream by walking
// its frame headers.
//
// A scan runs in three steps. LocateAnchor skips leading garbage and tags
// until it sees MinConsecutiveFrames consistent frames in a row. Walk counts
// every frame from the anchor to the end of the stream, bucketed by bitrate
// index. Summarize turns that histogram into whole seconds.
package scanner

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/humblenginr/mp3_vbr_length/frame"
)

// MinConsecutiveFrames is how many back to back frames with the same
// constant fields must be seen before the stream is trusted.
const MinConsecutiveFrames = 4

const syncByte = 0xFF

// Anchor is the trusted start of the audio stream.
type Anchor struct {
	// Offset of the first frame of the run.
	Offset int64
	// Header is the last header decoded in the run.
	Header frame.Header
}

// Histogram counts frames per bitrate index.
type Histogram [frame.NumBitrates]int

// Total returns the number of frames counted.
func (h Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Median returns the lowest bitrate index at which the running frame count
// reaches half the total. It reports false for an empty histogram.
func (h Histogram) Median() (int, bool) {
	total := h.Total()
	if total == 0 {
		return 0, false
	}
	sofar := 0
	for i, c := range h {
		if c == 0 {
			continue
		}
		sofar += c
		if sofar >= total/2 {
			return i, true
		}
	}
	return 0, false
}

// Summary is the result of analysing one stream.
type Summary struct {
	TotalSize    int64
	AnchorOffset int64
	Histogram    Histogram
	Frames       int
	// Representative carries the stream's constant fields and the median
	// bitrate. It is nil when no stream was found.
	Representative *frame.Header
	Seconds        int
}

// Found reports whether a frame stream was located.
func (s Summary) Found() bool { return s.Representative != nil }

// Duration returns Seconds as a time.Duration.
func (s Summary) Duration() time.Duration { return time.Duration(s.Seconds) * time.Second }

// LocateAnchor searches forward from the source position for a run of
// MinConsecutiveFrames consistent frames. On success the source is
// positioned at the anchor. Running out of data is reported as false with
// a nil error.
func LocateAnchor(src *Source) (Anchor, bool, error) {
	pos := src.pos
	for {
		cand, st, err := src.indexByte(pos, syncByte)
		if err != nil {
			return Anchor{}, false, fmt.Errorf("search sync: %w", err)
		}
		if st == readEOF {
			return Anchor{}, false, nil
		}

		last, ok, err := confirmRun(src, cand)
		if err != nil {
			return Anchor{}, false, fmt.Errorf("confirm frame at %d: %w", cand, err)
		}
		if ok {
			src.pos = cand
			return Anchor{Offset: cand, Header: last}, true, nil
		}
		pos = cand + 1
	}
}

// confirmRun decodes frames starting at off and returns the last header of
// the run when MinConsecutiveFrames of them agree with the first.
func confirmRun(src *Source, off int64) (frame.Header, bool, error) {
	b, st, err := src.headerAt(off)
	if err != nil || st == readEOF {
		return frame.Header{}, false, err
	}
	first, ok := frame.Decode(b)
	if !ok {
		return frame.Header{}, false, nil
	}

	last := first
	off += int64(first.FrameLength())
	for n := 1; n < MinConsecutiveFrames; n++ {
		b, st, err := src.headerAt(off)
		if err != nil || st == readEOF {
			return frame.Header{}, false, err
		}
		next, ok := frame.Decode(b)
		if !ok || !first.SameConstant(next) {
			return frame.Header{}, false, nil
		}
		last = next
		off += int64(next.FrameLength())
	}
	return last, true, nil
}

// Walk counts every frame from the source position to the end of the
// stream. Bytes that do not decode are skipped one at a time.
func Walk(src *Source) (Histogram, error) {
	var hist Histogram
	pos := src.pos
	for {
		cand, st, err := src.indexByte(pos, syncByte)
		if err != nil {
			return hist, fmt.Errorf("search sync: %w", err)
		}
		if st == readEOF {
			break
		}
		b, st, err := src.headerAt(cand)
		if err != nil {
			return hist, fmt.Errorf("read header at %d: %w", cand, err)
		}
		if st == readEOF {
			break
		}

		h, ok := frame.Decode(b)
		if !ok {
			pos = cand + 1
			continue
		}
		hist[h.BitrateIndex()]++
		pos = cand + int64(h.FrameLength())
	}
	src.pos = src.size
	return hist, nil
}

// Summarize reduces a histogram to whole seconds and a representative
// header: anchor with the median bitrate index. It reports false when the
// histogram is empty.
func Summarize(anchor frame.Header, hist Histogram) (int, frame.Header, bool) {
	median, ok := hist.Median()
	if !ok {
		return 0, frame.Header{}, false
	}

	var seconds float64
	for i, n := range hist {
		if n == 0 {
			continue
		}
		v := anchor.WithBitrateIndex(i)
		rate := v.Bitrate()
		if rate == 0 {
			continue
		}
		// 125 bytes per second per kbps
		seconds += float64(v.FrameLength()*n) / float64(rate*125)
	}
	return int(math.Floor(seconds + 0.5)), anchor.WithBitrateIndex(median), true
}

// Analyze scans r, which holds size bytes, from the start.
func Analyze(r io.ReadSeeker, size int64) (Summary, error) {
	src, err := NewSource(r, size)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{TotalSize: size}

	anchor, ok, err := LocateAnchor(src)
	if err != nil {
		return Summary{}, err
	}
	if !ok {
		log.Printf("[DEBUG] [scan] no frame stream in %d bytes", size)
		return sum, nil
	}
	log.Printf("[DEBUG] [scan] anchor at offset %d: %s", anchor.Offset, anchor.Header)

	hist, err := Walk(src)
	if err != nil {
		return Summary{}, err
	}
	seconds, rep, ok := Summarize(anchor.Header, hist)
	if !ok {
		return sum, nil
	}

	sum.AnchorOffset = anchor.Offset
	sum.Histogram = hist
	sum.Frames = hist.Total()
	sum.Representative = &rep
	sum.Seconds = seconds
	log.Printf("[DEBUG] [scan] %d frames, %d s, median %d kbps", sum.Frames, sum.Seconds, rep.Bitrate())
	return sum, nil
}

// AnalyzeFile opens path and scans it.
func AnalyzeFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Summary{}, fmt.Errorf("stat %s: %w", path, err)
	}
	sum, err := Analyze(f, st.Size())
	if err != nil {
		return Summary{}, fmt.Errorf("analyze %s: %w", path, err)
	}
	return sum, nil
}
