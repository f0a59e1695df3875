package scanner

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/humblenginr/mp3_vbr_length/frame"
)

// ErrNegativeSize is returned when a source is created with a size below zero.
var ErrNegativeSize = errors.New("negative source size")

// windowSize is how much of the underlying reader is held in memory at once.
var windowSize = 64 << 10

type readState int

const (
	readOK readState = iota
	readEOF
)

// Source is a random access view of a stream of known size. It keeps a
// scan position and serves reads from a window filled with seek+read.
type Source struct {
	r    io.ReadSeeker
	size int64
	pos  int64

	buf  []byte
	base int64 // stream offset of buf[0]
}

// NewSource wraps r, which holds size bytes.
func NewSource(r io.ReadSeeker, size int64) (*Source, error) {
	if size < 0 {
		return nil, ErrNegativeSize
	}
	return &Source{r: r, size: size}, nil
}

// Pos returns the scan position.
func (s *Source) Pos() int64 { return s.pos }

// Seek moves the scan position to off.
func (s *Source) Seek(off int64) { s.pos = off }

func (s *Source) end() int64 { return s.base + int64(len(s.buf)) }

// fill loads the window starting at off. A reader that ends before the
// declared size leaves a short window; that is not an error.
func (s *Source) fill(off int64) error {
	if _, err := s.r.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("seek to %d: %w", off, err)
	}
	n := int64(windowSize)
	if rem := s.size - off; rem < n {
		n = rem
	}
	if cap(s.buf) < windowSize {
		s.buf = make([]byte, windowSize)
	}
	s.buf = s.buf[:n]
	m, err := io.ReadFull(s.r, s.buf)
	s.buf = s.buf[:m]
	s.base = off
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("read at %d: %w", off, err)
	}
	return nil
}

// headerAt returns the frame.HeaderSize bytes at off.
func (s *Source) headerAt(off int64) ([frame.HeaderSize]byte, readState, error) {
	var b [frame.HeaderSize]byte
	if off < 0 || off+frame.HeaderSize > s.size {
		return b, readEOF, nil
	}
	if off < s.base || off+frame.HeaderSize > s.end() {
		if err := s.fill(off); err != nil {
			return b, readEOF, err
		}
		if off+frame.HeaderSize > s.end() {
			return b, readEOF, nil
		}
	}
	copy(b[:], s.buf[off-s.base:])
	return b, readOK, nil
}

// indexByte returns the offset of the first c at or after off.
func (s *Source) indexByte(off int64, c byte) (int64, readState, error) {
	for off >= 0 && off < s.size {
		if off < s.base || off >= s.end() {
			if err := s.fill(off); err != nil {
				return 0, readEOF, err
			}
			if len(s.buf) == 0 {
				return 0, readEOF, nil
			}
		}
		if i := bytes.IndexByte(s.buf[off-s.base:], c); i >= 0 {
			return off + int64(i), readOK, nil
		}
		off = s.end()
	}
	return 0, readEOF, nil
}
