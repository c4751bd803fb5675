package mulaw

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// EncodeFile encodes the PCM WAVE file at srcPath into a mu-law WAVE file at
// dstPath, replacing it if it exists.
func EncodeFile(dstPath, srcPath string, opts ...Option) (int, error) {
	return transcodeFile(dstPath, srcPath, EncodeStream, opts)
}

// DecodeFile decodes the mu-law WAVE file at srcPath into a PCM WAVE file at
// dstPath, replacing it if it exists.
func DecodeFile(dstPath, srcPath string, opts ...Option) (int, error) {
	return transcodeFile(dstPath, srcPath, DecodeStream, opts)
}

type streamFunc func(dst io.WriteSeeker, src io.Reader, opts ...Option) (int, error)

// transcodeFile opens the source before creating the destination, so a
// missing source leaves the file system untouched. A source too short for
// its header removes the destination again.
func transcodeFile(dstPath, srcPath string, fn streamFunc, opts []Option) (int, error) {
	in, err := os.Open(srcPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", srcPath, err)
	}
	defer in.Close()

	out, err := os.Create(dstPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dstPath, err)
	}

	n, err := fn(out, in, opts...)
	closeErr := out.Close()

	if errors.Is(err, ErrShortHeader) {
		_ = os.Remove(dstPath)
		return 0, err
	}

	if err != nil {
		return n, err
	}

	if closeErr != nil {
		return n, fmt.Errorf("failed to close %s: %w", dstPath, closeErr)
	}

	return n, nil
}
