package mulaw

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

var errSeekBufferWhence = errors.New("invalid whence")

// seekBuffer is an in-memory io.WriteSeeker.
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > len(b.data) {
		b.data = append(b.data, make([]byte, end-len(b.data))...)
	}

	copy(b.data[b.pos:end], p)
	b.pos = end

	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int

	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = b.pos
	case io.SeekEnd:
		base = len(b.data)
	default:
		return 0, errSeekBufferWhence
	}

	b.pos = base + int(offset)

	return int64(b.pos), nil
}

// failingWriter accepts limit bytes and then fails every write.
type failingWriter struct {
	seekBuffer
	limit int
}

var errDiskFull = errors.New("disk full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(w.data)+len(p) > w.limit {
		return 0, errDiskFull
	}

	return w.seekBuffer.Write(p)
}

func pcmSource(prefix int, samples ...int16) *bytes.Reader {
	buf := make([]byte, prefix, prefix+2*len(samples))
	for _, s := range samples {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
	}

	return bytes.NewReader(buf)
}

func muLawSource(prefix int, codes ...byte) *bytes.Reader {
	buf := make([]byte, prefix, prefix+len(codes))
	buf = append(buf, codes...)

	return bytes.NewReader(buf)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
