package mulaw

import (
	"math"
	"time"
)

// payloadDuration is the playing time of dataSize bytes in format f.
func payloadDuration(dataSize uint32, f Format) time.Duration {
	blockAlign := f.BlockAlign()
	if blockAlign == 0 {
		return 0
	}

	frames := int64(dataSize) / int64(blockAlign)

	return time.Duration(frames) * sampleDuration(int(f.SampleRate))
}

func sampleDuration(sampleRate int) time.Duration {
	if sampleRate == 0 {
		return 0
	}

	return time.Second / time.Duration(math.Abs(float64(sampleRate)))
}
