package mulaw

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

var errNilWriter = errors.New("can't write to a nil writer")

// sink writes a WAVE header followed by the payload and patches the header
// sizes on Close. The underlying writer is NOT closed.
type sink struct {
	w   io.WriteSeeker
	buf *bufio.Writer

	format Format

	// WrittenBytes counts payload bytes only.
	WrittenBytes int
	scratch      [2]byte
}

func newSink(w io.WriteSeeker, format Format) *sink {
	return &sink{
		w:      w,
		buf:    bufio.NewWriter(w),
		format: format,
	}
}

// writeHeader writes the header with zero sizes. It must come before any
// payload byte.
func (s *sink) writeHeader() error {
	hdr := s.format.Header()
	if _, err := s.buf.Write(hdr[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	return nil
}

// WriteByte adds one payload byte.
func (s *sink) WriteByte(b byte) error {
	if err := s.grow(1); err != nil {
		return err
	}

	if err := s.buf.WriteByte(b); err != nil {
		return fmt.Errorf("failed to write mu-law sample: %w", err)
	}

	s.WrittenBytes++

	return nil
}

// AddLE adds one 16-bit little endian payload sample.
func (s *sink) AddLE(sample int16) error {
	if err := s.grow(2); err != nil {
		return err
	}

	binary.LittleEndian.PutUint16(s.scratch[:], uint16(sample))

	if _, err := s.buf.Write(s.scratch[:]); err != nil {
		return fmt.Errorf("failed to write 16-bit sample: %w", err)
	}

	s.WrittenBytes += 2

	return nil
}

func (s *sink) grow(n int) error {
	if uint64(s.WrittenBytes)+uint64(n) > MaxDataSize {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, uint64(s.WrittenBytes)+uint64(n))
	}

	return nil
}

// Close flushes the buffered payload and makes sure the header sizes are up
// to date.
func (s *sink) Close() error {
	if err := s.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush payload: %w", err)
	}

	if err := PatchSizes(s.w, uint32(s.WrittenBytes)); err != nil {
		return err
	}

	if f, ok := s.w.(*os.File); ok {
		return f.Sync()
	}

	return nil
}
