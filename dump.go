package mulaw

import (
	"bufio"
	"fmt"
	"io"
)

// DefaultDumpLimit is the number of bytes Dump prints when no limit is given.
const DefaultDumpLimit = 100

// Dump writes the first limit bytes of r to w as space separated upper case
// hex pairs. A limit <= 0 means DefaultDumpLimit. It returns the number of
// bytes printed.
func Dump(w io.Writer, r io.Reader, limit int) (int, error) {
	if limit <= 0 {
		limit = DefaultDumpLimit
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(limit)))
	if err != nil {
		return 0, fmt.Errorf("failed to read dump input: %w", err)
	}

	bw := bufio.NewWriter(w)
	for _, b := range data {
		fmt.Fprintf(bw, "%02X ", b)
	}

	err = bw.Flush()
	if err != nil {
		return 0, fmt.Errorf("failed to write dump: %w", err)
	}

	return len(data), nil
}
