// Package mulaw converts between 16-bit linear PCM and 8-bit G.711 mu-law,
// each wrapped in a minimal 44-byte RIFF/WAVE container.
//
// The package has three layers:
//
//   - Encode and Decode map one sample to one code and back.
//   - BuildHeader and PatchSizes produce the fixed mono 8 kHz WAVE headers
//     and fill in their size fields once the payload length is known.
//   - EncodeStream and DecodeStream skip the source header, write a fresh
//     destination header, transcode the payload and patch the sizes.
//
// Source headers are skipped, not parsed. Use Inspect to read the header of
// a file produced by this package.
package mulaw
