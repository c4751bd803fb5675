package mulaw

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
)

var (
	errNilBuffer = errors.New("can't encode a nil buffer")
	// ErrUnsupportedBuffer is returned for buffers that are not mono 16-bit.
	ErrUnsupportedBuffer = errors.New("unsupported buffer format")
)

// EncodeBuffer encodes a mono 16-bit buffer. Samples outside the int16 range
// are clamped. A zero SourceBitDepth is taken as 16.
func EncodeBuffer(buf *audio.IntBuffer) ([]byte, error) {
	if buf == nil {
		return nil, errNilBuffer
	}

	if buf.Format != nil && buf.Format.NumChannels > 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedBuffer, buf.Format.NumChannels)
	}

	if buf.SourceBitDepth != 0 && buf.SourceBitDepth != 16 {
		return nil, fmt.Errorf("%w: %d-bit", ErrUnsupportedBuffer, buf.SourceBitDepth)
	}

	out := make([]byte, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = Encode(clampInt16(v))
	}

	return out, nil
}

// DecodeBuffer decodes codes into a mono 8 kHz 16-bit buffer.
func DecodeBuffer(codes []byte) *audio.IntBuffer {
	format := KindPCM.Format()

	data := make([]int, len(codes))
	for i, code := range codes {
		data[i] = int(Decode(code))
	}

	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: int(format.NumChannels),
			SampleRate:  int(format.SampleRate),
		},
		Data:           data,
		SourceBitDepth: int(format.BitsPerSample),
	}
}

// ReadPCMBuffer reads a whole mu-law WAVE stream, skipping its header like
// DecodeStream does, and returns the decoded samples.
func ReadPCMBuffer(src io.Reader, opts ...Option) (*audio.IntBuffer, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	if src == nil {
		return nil, errNilReader
	}

	err = skipHeader(src, o.DecodeSkip, o.LenientSkip)
	if err != nil {
		return nil, err
	}

	codes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read mu-law data: %w", err)
	}

	return DecodeBuffer(codes), nil
}

func clampInt16(v int) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}

	if v < math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}
