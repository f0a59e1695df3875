package scraper

import (
	"errors"
	"fmt"
	"path/filepath"

	log "github.com/go-pkgz/lgr"

	"github.com/humblenginr/mp3_vbr_length/scanner"
)

// Probe scans the file at path and returns its estimated duration along
// with the stream's representative bitrate and sample rate. A file without
// MPEG audio frames is not an error: it comes back with zero Frames and
// zero Duration.
func Probe(path string) (*Audio, error) {
	if path == "" {
		return nil, errors.New("path cannot be empty")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("make abs path: %w", err)
	}

	sum, err := scanner.AnalyzeFile(absPath)
	if err != nil {
		return nil, err
	}
	if !sum.Found() {
		log.Printf("[DEBUG] [probe] no frames in %s (%d bytes)", absPath, sum.TotalSize)
		return &Audio{Path: absPath, Format: FormatMP3}, nil
	}

	rep := sum.Representative
	log.Printf("[DEBUG] [probe] %s: %s, %d frames from offset %d", absPath, rep, sum.Frames, sum.AnchorOffset)
	return &Audio{
		Path:         absPath,
		Duration:     sum.Duration(),
		Format:       FormatMP3,
		Bitrate:      rep.Bitrate(),
		SampleRate:   rep.Frequency(),
		Frames:       sum.Frames,
		AnchorOffset: sum.AnchorOffset,
	}, nil
}
