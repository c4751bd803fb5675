package mulaw

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// DefaultEncodeSkip is the number of PCM source bytes skipped before the
	// first sample.
	DefaultEncodeSkip = HeaderSize
	// DefaultDecodeSkip is the number of mu-law source bytes skipped before
	// the first code. The mu-law sources carry 12 bytes more header than the
	// canonical 44; the value is kept as is and can be overridden with
	// WithDecodeSkip.
	DefaultDecodeSkip = HeaderSize + 12
)

var (
	// ErrShortHeader is returned when the source ends inside the prefix that
	// should be skipped.
	ErrShortHeader = errors.New("source shorter than its header")
	// ErrInvalidSkip is returned for a negative skip length.
	ErrInvalidSkip = errors.New("invalid header skip length")
	errNilReader   = errors.New("can't read from a nil reader")
)

// Options controls how source headers are skipped.
type Options struct {
	// EncodeSkip is the PCM source prefix length.
	EncodeSkip int
	// DecodeSkip is the mu-law source prefix length.
	DecodeSkip int
	// LenientSkip treats a source shorter than its prefix as an empty
	// payload instead of failing with ErrShortHeader.
	LenientSkip bool
}

// DefaultOptions returns the options used when none are passed.
func DefaultOptions() Options {
	return Options{
		EncodeSkip: DefaultEncodeSkip,
		DecodeSkip: DefaultDecodeSkip,
	}
}

// Option changes one of the transcoding Options.
type Option func(*Options)

// WithEncodeSkip sets the number of bytes skipped at the start of a PCM source.
func WithEncodeSkip(n int) Option {
	return func(o *Options) { o.EncodeSkip = n }
}

// WithDecodeSkip sets the number of bytes skipped at the start of a mu-law source.
func WithDecodeSkip(n int) Option {
	return func(o *Options) { o.DecodeSkip = n }
}

// WithLenientSkip makes a truncated source header produce an empty, valid
// destination file.
func WithLenientSkip() Option {
	return func(o *Options) { o.LenientSkip = true }
}

// WithOptions replaces all options at once.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

func newOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.EncodeSkip < 0 {
		return o, fmt.Errorf("%w: encode skip %d", ErrInvalidSkip, o.EncodeSkip)
	}

	if o.DecodeSkip < 0 {
		return o, fmt.Errorf("%w: decode skip %d", ErrInvalidSkip, o.DecodeSkip)
	}

	return o, nil
}

// EncodeStream reads 16-bit little endian PCM samples from src, after
// skipping its header, and writes a mu-law WAVE file to dst. A trailing odd
// byte is ignored. It returns the number of payload bytes written.
func EncodeStream(dst io.WriteSeeker, src io.Reader, opts ...Option) (int, error) {
	o, err := newOptions(opts)
	if err != nil {
		return 0, err
	}

	return transcode(dst, src, o.EncodeSkip, o.LenientSkip, KindMuLaw, 2, func(in []byte, out *sink) error {
		return out.WriteByte(Encode(int16(binary.LittleEndian.Uint16(in))))
	})
}

// DecodeStream reads mu-law codes from src, after skipping its header, and
// writes a 16-bit PCM WAVE file to dst. It returns the number of payload
// bytes written.
func DecodeStream(dst io.WriteSeeker, src io.Reader, opts ...Option) (int, error) {
	o, err := newOptions(opts)
	if err != nil {
		return 0, err
	}

	return transcode(dst, src, o.DecodeSkip, o.LenientSkip, KindPCM, 1, func(in []byte, out *sink) error {
		return out.AddLE(Decode(in[0]))
	})
}

func transcode(dst io.WriteSeeker, src io.Reader, skipLen int, lenient bool, kind Kind, unit int, convert func([]byte, *sink) error) (int, error) {
	if dst == nil {
		return 0, errNilWriter
	}

	if src == nil {
		return 0, errNilReader
	}

	rd := bufio.NewReader(src)

	err := skipHeader(rd, skipLen, lenient)
	if err != nil {
		return 0, err
	}

	out := newSink(dst, kind.Format())

	err = out.writeHeader()
	if err != nil {
		return 0, err
	}

	in := make([]byte, unit)
	for {
		_, err = io.ReadFull(rd, in)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}

		if err != nil {
			return out.WrittenBytes, fmt.Errorf("failed to read source: %w", err)
		}

		err = convert(in, out)
		if err != nil {
			return out.WrittenBytes, err
		}
	}

	err = out.Close()
	if err != nil {
		return out.WrittenBytes, err
	}

	return out.WrittenBytes, nil
}

func skipHeader(r io.Reader, n int, lenient bool) error {
	if n == 0 {
		return nil
	}

	skipped, err := io.CopyN(io.Discard, r, int64(n))
	if err == nil {
		return nil
	}

	if !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to skip source header: %w", err)
	}

	if lenient {
		return nil
	}

	return fmt.Errorf("%w: got %d of %d bytes", ErrShortHeader, skipped, n)
}
