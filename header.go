package mulaw

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/riff"
)

const (
	// HeaderSize is the length of the canonical RIFF/WAVE header.
	HeaderSize = 44

	// AudioFormatPCM is the fmt chunk tag for linear PCM.
	AudioFormatPCM = 1
	// AudioFormatMuLaw is the fmt chunk tag for ITU G.711 mu-law.
	AudioFormatMuLaw = 7

	chunkSizeOffset = 4
	dataSizeOffset  = 40
	fmtChunkSize    = 16
	// ChunkSize covers everything after its own field.
	chunkSizeOverhead = HeaderSize - 8

	defaultSampleRate = 8000
)

// MaxDataSize is the largest payload whose ChunkSize still fits in 32 bits.
const MaxDataSize = math.MaxUint32 - chunkSizeOverhead

var (
	// ErrInvalidHeader is returned when a header does not have the canonical
	// RIFF/WAVE/fmt/data layout.
	ErrInvalidHeader = errors.New("invalid WAVE header")
	// ErrPayloadTooLarge is returned when the payload can't be described by
	// the 32-bit size fields.
	ErrPayloadTooLarge = errors.New("payload too large for a WAVE header")
)

// Kind selects one of the two destination header templates.
type Kind int

const (
	// KindPCM is 16-bit linear PCM.
	KindPCM Kind = iota
	// KindMuLaw is 8-bit G.711 mu-law.
	KindMuLaw
)

func (k Kind) String() string {
	switch k {
	case KindPCM:
		return "PCM"
	case KindMuLaw:
		return "mu-law"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Format returns the fmt chunk values of the template. Unknown kinds
// return the zero Format.
func (k Kind) Format() Format {
	switch k {
	case KindPCM:
		return Format{
			AudioFormat:   AudioFormatPCM,
			NumChannels:   1,
			SampleRate:    defaultSampleRate,
			BitsPerSample: 16,
		}
	case KindMuLaw:
		return Format{
			AudioFormat:   AudioFormatMuLaw,
			NumChannels:   1,
			SampleRate:    defaultSampleRate,
			BitsPerSample: 8,
		}
	default:
		return Format{}
	}
}

// Format holds the fmt chunk fields a header is built from. Byte rate and
// block alignment are derived.
type Format struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	BitsPerSample uint16
}

// BlockAlign is the size in bytes of one frame.
func (f Format) BlockAlign() uint16 {
	if f.BitsPerSample == 0 {
		return 0
	}

	return f.NumChannels * uint16(bytesPerSample(int(f.BitsPerSample)))
}

// ByteRate is the number of payload bytes per second.
func (f Format) ByteRate() uint32 {
	return f.SampleRate * uint32(f.BlockAlign())
}

func (f Format) String() string {
	name := fmt.Sprintf("format %d", f.AudioFormat)

	switch f.AudioFormat {
	case AudioFormatPCM:
		name = "PCM"
	case AudioFormatMuLaw:
		name = "mu-law"
	}

	return fmt.Sprintf("%s, %d ch, %d Hz, %d-bit", name, f.NumChannels, f.SampleRate, f.BitsPerSample)
}

// Header builds the 44-byte header for f with both size fields set to zero.
func (f Format) Header() Header {
	var h Header

	copy(h[0:4], riff.RiffID[:])
	copy(h[8:12], riff.WavFormatID[:])
	copy(h[12:16], riff.FmtID[:])
	binary.LittleEndian.PutUint32(h[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(h[20:22], f.AudioFormat)
	binary.LittleEndian.PutUint16(h[22:24], f.NumChannels)
	binary.LittleEndian.PutUint32(h[24:28], f.SampleRate)
	binary.LittleEndian.PutUint32(h[28:32], f.ByteRate())
	binary.LittleEndian.PutUint16(h[32:34], f.BlockAlign())
	binary.LittleEndian.PutUint16(h[34:36], f.BitsPerSample)
	copy(h[36:40], riff.DataFormatID[:])

	return h
}

// Header is a canonical RIFF/WAVE header: a RIFF chunk holding a 16-byte fmt
// chunk and the header of the data chunk.
type Header [HeaderSize]byte

// BuildHeader returns the template for kind with placeholder sizes.
func BuildHeader(kind Kind) Header {
	return kind.Format().Header()
}

// ParseHeader copies and validates the first HeaderSize bytes of b.
func ParseHeader(b []byte) (Header, error) {
	var h Header
	if len(b) < HeaderSize {
		return h, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidHeader, len(b), HeaderSize)
	}

	copy(h[:], b)

	return h, h.Validate()
}

// Validate checks the chunk IDs, the fmt chunk size and the consistency of
// the two size fields.
func (h Header) Validate() error {
	switch {
	case [4]byte(h[0:4]) != riff.RiffID:
		return fmt.Errorf("%w: missing RIFF id", ErrInvalidHeader)
	case [4]byte(h[8:12]) != riff.WavFormatID:
		return fmt.Errorf("%w: missing WAVE id", ErrInvalidHeader)
	case [4]byte(h[12:16]) != riff.FmtID:
		return fmt.Errorf("%w: missing fmt chunk", ErrInvalidHeader)
	case binary.LittleEndian.Uint32(h[16:20]) != fmtChunkSize:
		return fmt.Errorf("%w: fmt chunk size %d", ErrInvalidHeader, binary.LittleEndian.Uint32(h[16:20]))
	case [4]byte(h[36:40]) != riff.DataFormatID:
		return fmt.Errorf("%w: missing data chunk", ErrInvalidHeader)
	case h.ChunkSize() != h.DataSize()+chunkSizeOverhead:
		return fmt.Errorf("%w: chunk size %d does not match data size %d", ErrInvalidHeader, h.ChunkSize(), h.DataSize())
	}

	return nil
}

// ChunkSize is the RIFF chunk size field.
func (h Header) ChunkSize() uint32 {
	return binary.LittleEndian.Uint32(h[chunkSizeOffset:])
}

// DataSize is the data chunk size field.
func (h Header) DataSize() uint32 {
	return binary.LittleEndian.Uint32(h[dataSizeOffset:])
}

// Format decodes the fmt chunk fields.
func (h Header) Format() Format {
	return Format{
		AudioFormat:   binary.LittleEndian.Uint16(h[20:22]),
		NumChannels:   binary.LittleEndian.Uint16(h[22:24]),
		SampleRate:    binary.LittleEndian.Uint32(h[24:28]),
		BitsPerSample: binary.LittleEndian.Uint16(h[34:36]),
	}
}

// SetSizes fills in both size fields for a payload of dataSize bytes.
func (h *Header) SetSizes(dataSize uint32) error {
	if dataSize > MaxDataSize {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, dataSize)
	}

	binary.LittleEndian.PutUint32(h[dataSizeOffset:], dataSize)
	binary.LittleEndian.PutUint32(h[chunkSizeOffset:], dataSize+chunkSizeOverhead)

	return nil
}

// PatchSizes rewrites the size fields of a header at the start of w and
// returns to the end of the stream. Call it once the whole payload has been
// written.
func PatchSizes(w io.WriteSeeker, dataSize uint32) error {
	if dataSize > MaxDataSize {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, dataSize)
	}

	if _, err := w.Seek(dataSizeOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to data size position: %w", err)
	}

	err := binary.Write(w, binary.LittleEndian, dataSize)
	if err != nil {
		return fmt.Errorf("%w when writing the data chunk size", err)
	}

	if _, err := w.Seek(chunkSizeOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to file size position: %w", err)
	}

	err = binary.Write(w, binary.LittleEndian, dataSize+chunkSizeOverhead)
	if err != nil {
		return fmt.Errorf("%w when writing the riff chunk size", err)
	}

	if _, err := w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end of file: %w", err)
	}

	return nil
}

func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/8 + 1
}
