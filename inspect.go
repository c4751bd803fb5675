package mulaw

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/riff"
)

var (
	// ErrNotWave is returned by Inspect for streams that are not RIFF/WAVE.
	ErrNotWave = errors.New("not a RIFF/WAVE stream")
	// ErrFmtChunkNotFound is returned when no fmt chunk precedes the data.
	ErrFmtChunkNotFound = errors.New("fmt chunk not found")
	// ErrDataChunkNotFound is returned when the stream has no data chunk.
	ErrDataChunkNotFound = errors.New("data chunk not found")
)

// Info describes a WAVE stream.
type Info struct {
	Format    Format
	ChunkSize uint32
	DataSize  uint32
	Duration  time.Duration
}

func (i *Info) String() string {
	return fmt.Sprintf("%s, %d data bytes, duration: %v", i.Format, i.DataSize, i.Duration)
}

// Inspect reads the RIFF header, the fmt chunk and the data chunk header of
// r. Other chunks are skipped. The reader is left at the start of the
// payload.
func Inspect(r io.Reader) (*Info, error) {
	parser := riff.New(r)

	id, size, err := parser.IDnSize()
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk ID and size: %w", err)
	}

	if id != riff.RiffID {
		return nil, fmt.Errorf("%w: %q - %w", ErrNotWave, id[:], riff.ErrFmtNotSupported)
	}

	var format [4]byte

	err = binary.Read(r, binary.BigEndian, &format)
	if err != nil {
		return nil, fmt.Errorf("failed to read format: %w", err)
	}

	if format != riff.WavFormatID {
		return nil, fmt.Errorf("%w: %q - %w", ErrNotWave, format[:], riff.ErrFmtNotSupported)
	}

	info := &Info{ChunkSize: size}
	sawFmt := false

	for {
		id, size, err = parser.IDnSize()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrDataChunkNotFound
		}

		if err != nil {
			return nil, fmt.Errorf("error reading chunk header - %w", err)
		}

		switch id {
		case riff.FmtID:
			chunk := &riff.Chunk{ID: id, Size: int(size), R: io.LimitReader(r, int64(size))}

			info.Format, err = decodeFmtChunk(chunk)
			if err != nil {
				return nil, err
			}

			sawFmt = true
		case riff.DataFormatID:
			if !sawFmt {
				return nil, ErrFmtChunkNotFound
			}

			info.DataSize = size
			info.Duration = payloadDuration(size, info.Format)

			return info, nil
		default:
			// chunks are word aligned, the pad byte is not part of the size
			if size%2 == 1 {
				size++
			}

			_, err = io.CopyN(io.Discard, r, int64(size))
			if err != nil {
				return nil, fmt.Errorf("failed to skip chunk %q: %w", id[:], err)
			}
		}
	}
}

func decodeFmtChunk(chunk *riff.Chunk) (Format, error) {
	var (
		f          Format
		byteRate   uint32
		blockAlign uint16
	)

	err := chunk.ReadLE(&f.AudioFormat)
	if err != nil {
		return f, fmt.Errorf("failed to read wav format: %w", err)
	}

	err = chunk.ReadLE(&f.NumChannels)
	if err != nil {
		return f, fmt.Errorf("failed to read channels: %w", err)
	}

	err = chunk.ReadLE(&f.SampleRate)
	if err != nil {
		return f, fmt.Errorf("failed to read sample rate: %w", err)
	}

	err = chunk.ReadLE(&byteRate)
	if err != nil {
		return f, fmt.Errorf("failed to read avg bytes/sec: %w", err)
	}

	err = chunk.ReadLE(&blockAlign)
	if err != nil {
		return f, fmt.Errorf("failed to read block align: %w", err)
	}

	err = chunk.ReadLE(&f.BitsPerSample)
	if err != nil {
		return f, fmt.Errorf("failed to read bit depth: %w", err)
	}

	chunk.Drain()

	return f, nil
}
