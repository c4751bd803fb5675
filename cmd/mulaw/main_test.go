package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/venetiafurtado/mulaw"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func pcmFile(prefix int, samples ...int16) []byte {
	buf := make([]byte, prefix)
	for _, s := range samples {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
	}

	return buf
}

func TestRunEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "speech.wav", pcmFile(mulaw.HeaderSize, 0, 32767, -32768, -1))
	encPath := filepath.Join(dir, "encode.wav")

	var stdout, stderr bytes.Buffer

	err := run([]string{"-log-format", "json", "encode", "-o", encPath, src}, &stdout, &stderr)
	require.NoError(t, err)
	require.Contains(t, stderr.String(), `"bytes":4`)

	enc, err := os.ReadFile(encPath)
	require.NoError(t, err)
	require.Len(t, enc, 48)
	require.Equal(t, []byte{0xFF, 0x80, 0x00, 0x7E}, enc[mulaw.HeaderSize:])

	// the encoder writes a 44-byte header, so decode needs a matching skip
	cfgPath := writeFile(t, dir, "mulaw.yaml", []byte("transcode:\n  decode_skip: 44\nlog:\n  level: warn\n"))
	decPath := filepath.Join(dir, "decode.wav")

	stderr.Reset()

	err = run([]string{"-config", cfgPath, "decode", "-o", decPath, encPath}, &stdout, &stderr)
	require.NoError(t, err)
	require.Empty(t, stderr.String())

	dec, err := os.ReadFile(decPath)
	require.NoError(t, err)
	require.Len(t, dec, mulaw.HeaderSize+8)

	h, err := mulaw.ParseHeader(dec)
	require.NoError(t, err)
	require.Equal(t, uint32(8), h.DataSize())
	require.Equal(t, uint32(44), h.ChunkSize())
	require.Equal(t, mulaw.KindPCM.Format(), h.Format())
}

func TestRunDefaultOutputName(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.wav", append(make([]byte, mulaw.DefaultDecodeSkip), 0xFF, 0xFE))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))

	defer func() { require.NoError(t, os.Chdir(wd)) }()

	err = run([]string{"-log-level", "disabled", "decode", src}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	fi, err := os.Stat(filepath.Join(dir, "decode.wav"))
	require.NoError(t, err)
	require.EqualValues(t, mulaw.HeaderSize+4, fi.Size())
}

func TestRunInfo(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "speech.wav", pcmFile(mulaw.HeaderSize, make([]int16, 8000)...))
	encPath := filepath.Join(dir, "encode.wav")

	require.NoError(t, run([]string{"-log-level", "disabled", "encode", "-o", encPath, src}, &bytes.Buffer{}, &bytes.Buffer{}))

	var stdout bytes.Buffer

	require.NoError(t, run([]string{"info", encPath}, &stdout, &bytes.Buffer{}))

	out := stdout.String()
	require.Contains(t, out, "AudioFormat: 7\n")
	require.Contains(t, out, "SampleRate: 8000\n")
	require.Contains(t, out, "ByteRate: 8000\n")
	require.Contains(t, out, "DataSize: 8000\n")
	require.Contains(t, out, "ChunkSize: 8036\n")
	require.Contains(t, out, "Duration: 1s\n")
}

func TestRunDump(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "file.bin", []byte("RIFF\x00\x01"))

	var stdout bytes.Buffer

	require.NoError(t, run([]string{"dump", "-n", "4", src}, &stdout, &bytes.Buffer{}))
	require.Equal(t, "52 49 46 46 \n", stdout.String())

	stdout.Reset()

	require.NoError(t, run([]string{"dump", src}, &stdout, &bytes.Buffer{}))
	require.Equal(t, "52 49 46 46 00 01 \n", stdout.String())
}

func TestRunAIFF(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "call.wav", append(make([]byte, mulaw.DefaultDecodeSkip), bytes.Repeat([]byte{0xFE, 0x7E}, 100)...))

	require.NoError(t, run([]string{"-log-level", "disabled", "aiff", src}, &bytes.Buffer{}, &bytes.Buffer{}))

	out, err := os.ReadFile(filepath.Join(dir, "call.aif"))
	require.NoError(t, err)
	require.Greater(t, len(out), 400)
	require.Equal(t, "FORM", string(out[0:4]))
	require.Equal(t, "AIFF", string(out[8:12]))
}

func TestRunLenientConfig(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "short.wav", []byte{1, 2, 3})
	dst := filepath.Join(dir, "encode.wav")

	err := run([]string{"encode", "-o", dst, src}, &bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorIs(t, err, mulaw.ErrShortHeader)

	cfgPath := writeFile(t, dir, "lenient.yaml", []byte("transcode:\n  lenient_skip: true\n"))

	err = run([]string{"-config", cfgPath, "-log-level", "disabled", "encode", "-o", dst, src}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Len(t, out, mulaw.HeaderSize)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no command", nil, errMissingCommand},
		{"unknown command", []string{"play"}, errUnknownCommand},
		{"encode without path", []string{"encode"}, errMissingPath},
		{"info without path", []string{"info"}, errMissingPath},
		{"dump without path", []string{"dump"}, errMissingPath},
		{"aiff without path", []string{"aiff"}, errMissingPath},
		{"bad log format", []string{"-log-format", "xml", "info", "x"}, errLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, &bytes.Buffer{}, &bytes.Buffer{})
			require.ErrorIs(t, err, tt.want)
		})
	}

	require.Error(t, run([]string{"-log-level", "loud", "info", "x"}, &bytes.Buffer{}, &bytes.Buffer{}))
	require.Error(t, run([]string{"-config", filepath.Join(dir, "missing.yaml"), "info", "x"}, &bytes.Buffer{}, &bytes.Buffer{}))
	require.Error(t, run([]string{"encode", "-o", filepath.Join(dir, "out.wav"), filepath.Join(dir, "missing.wav")}, &bytes.Buffer{}, &bytes.Buffer{}))
	require.Error(t, run([]string{"info", writeFile(t, dir, "junk.wav", []byte("not a wave file at all"))}, &bytes.Buffer{}, &bytes.Buffer{}))
}

func TestConfigOverlay(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "c.yaml", []byte("transcode:\n  encode_skip: 0\n"))

	cfg := defaultConfig()
	require.NoError(t, loadConfig(cfgPath, &cfg))
	require.Equal(t, 0, cfg.Transcode.EncodeSkip)
	require.Equal(t, mulaw.DefaultDecodeSkip, cfg.Transcode.DecodeSkip)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestRunToneThenEncode(t *testing.T) {
	dir := t.TempDir()
	tonePath := filepath.Join(dir, "tone.wav")
	encPath := filepath.Join(dir, "encode.wav")

	require.NoError(t, run([]string{"-log-level", "disabled", "tone", "-o", tonePath, "-length", "0.5"}, &bytes.Buffer{}, &bytes.Buffer{}))

	f, err := os.Open(tonePath)
	require.NoError(t, err)

	info, err := mulaw.Inspect(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	require.Equal(t, mulaw.KindPCM.Format(), info.Format)
	require.Equal(t, uint32(8000), info.DataSize)

	require.NoError(t, run([]string{"-log-level", "disabled", "encode", "-o", encPath, tonePath}, &bytes.Buffer{}, &bytes.Buffer{}))

	fi, err := os.Stat(encPath)
	require.NoError(t, err)
	require.EqualValues(t, mulaw.HeaderSize+4000, fi.Size())
}

func TestRunToneInvalidValues(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"negative length", []string{"-length", "-1"}},
		{"NaN length", []string{"-length", "NaN"}},
		{"huge length", []string{"-length", "1e300"}},
		{"negative frequency", []string{"-frequency", "-440"}},
		{"infinite frequency", []string{"-frequency", "+Inf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, "tone.wav")
			args := append([]string{"tone", "-o", out}, tt.args...)

			err := run(args, &bytes.Buffer{}, &bytes.Buffer{})
			require.ErrorIs(t, err, errInvalidFlag)
			require.NoFileExists(t, out)
		})
	}
}

func TestRunToneZeroLength(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tone.wav")

	require.NoError(t, run([]string{"-log-level", "disabled", "tone", "-o", out, "-length", "0"}, &bytes.Buffer{}, &bytes.Buffer{}))

	fi, err := os.Stat(out)
	require.NoError(t, err)
	require.EqualValues(t, mulaw.HeaderSize, fi.Size())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"help", flag.ErrHelp, 0},
		{"usage", errMissingCommand, 2},
		{"wrapped usage", fmt.Errorf("%w: -length -1", errInvalidFlag), 2},
		{"failure", errors.New("disk full"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, exitCode(tt.err, &bytes.Buffer{}))
		})
	}
}

func TestRunHelp(t *testing.T) {
	var stderr bytes.Buffer

	err := run([]string{"-h"}, &bytes.Buffer{}, &stderr)
	require.ErrorIs(t, err, flag.ErrHelp)
	require.Equal(t, 0, exitCode(err, &bytes.Buffer{}))
	require.Contains(t, stderr.String(), "-log-level")
}

func TestRunToneFlagParseError(t *testing.T) {
	err := run([]string{"tone", "-length", "not-a-number"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
}
