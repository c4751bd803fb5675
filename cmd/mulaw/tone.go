package main

import (
	"fmt"
	"math"
	"os"

	"github.com/venetiafurtado/mulaw"
)

// maxToneLength keeps the payload under the 32-bit data chunk size.
const maxToneLength = 3600

// tone writes a 16-bit 8 kHz PCM sine wave, usable as encode input.
func (c *command) tone(args []string) error {
	flagSet := c.flagSet("tone")

	output := flagSet.String("o", "tone.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 1, "length in seconds of output file")
	amplitude := flagSet.Float64("amplitude", 0.25, "peak amplitude, 0 to 1 of full scale")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	format := mulaw.KindPCM.Format()
	sampleRate := float64(format.SampleRate)

	if math.IsNaN(*length) || *length < 0 || *length > maxToneLength {
		return fmt.Errorf("%w: -length %v, want 0 to %v seconds", errInvalidFlag, *length, maxToneLength)
	}

	if math.IsNaN(*frequency) || math.IsInf(*frequency, 0) || *frequency < 0 {
		return fmt.Errorf("%w: -frequency %v", errInvalidFlag, *frequency)
	}

	numSamples := int(sampleRate * *length)
	scale := math.Max(0, math.Min(1, *amplitude)) * math.MaxInt16

	samples := make([]int16, numSamples)
	for i := range samples {
		samples[i] = int16(scale * math.Sin(float64(i)/sampleRate*(*frequency)*2*math.Pi))
	}

	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}
	defer file.Close()

	n, err := mulaw.WritePCM(file, samples)
	if err != nil {
		return err
	}

	c.log.Info().Str("dst", *output).Float64("hz", *frequency).Int("bytes", n).Msg("generated")

	return nil
}
