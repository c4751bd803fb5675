package mulaw

import "io"

// WritePCM writes samples to dst as a 16-bit PCM WAVE file and returns the
// number of payload bytes written.
func WritePCM(dst io.WriteSeeker, samples []int16) (int, error) {
	if dst == nil {
		return 0, errNilWriter
	}

	out := newSink(dst, KindPCM.Format())

	err := out.writeHeader()
	if err != nil {
		return 0, err
	}

	for _, sample := range samples {
		err = out.AddLE(sample)
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
