package mulaw

const (
	// Bias is added to the sample magnitude before the segment search.
	Bias = 33
	// Clip is the largest biased magnitude. Louder samples saturate.
	Clip = 0x1FFF

	signBit         = 0x80
	firstSegmentBit = 5
	lastSegmentBit  = 12
)

// highestSetBit returns the position of the leading one bit of value,
// scanning from bit 12 down to bit 5. Values without a bit set in that range
// report 5.
func highestSetBit(value int) int {
	pos := lastSegmentBit
	for mask := 1 << lastSegmentBit; pos > firstSegmentBit && value&mask == 0; mask >>= 1 {
		pos--
	}

	return pos
}

// Encode compresses a linear sample into a mu-law code.
func Encode(sample int16) byte {
	magnitude := int(sample)

	var sign byte
	if magnitude < 0 {
		magnitude = -magnitude
		sign = signBit
	}

	magnitude += Bias
	if magnitude > Clip {
		magnitude = Clip
	}

	pos := highestSetBit(magnitude)
	mantissa := byte(magnitude>>(pos-4)) & 0x0F

	return ^(sign | byte(pos-firstSegmentBit)<<4 | mantissa)
}

// Decode expands a mu-law code into a linear sample.
func Decode(code byte) int16 {
	code = ^code
	sign := code & signBit
	code &^= signBit

	pos := int(code>>4) + firstSegmentBit
	mantissa := int(code & 0x0F)

	magnitude := (1<<pos | mantissa<<(pos-4) | 1<<(pos-5)) - Bias
	if sign != 0 {
		return int16(-magnitude)
	}

	return int16(magnitude)
}

// EncodeSamples encodes every sample of pcm.
func EncodeSamples(pcm []int16) []byte {
	out := make([]byte, len(pcm))
	for i, sample := range pcm {
		out[i] = Encode(sample)
	}

	return out
}

// DecodeCodes decodes every code of data.
func DecodeCodes(data []byte) []int16 {
	out := make([]int16, len(data))
	for i, code := range data {
		out[i] = Decode(code)
	}

	return out
}
