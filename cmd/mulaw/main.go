// This tool converts 16-bit PCM WAVE files to G.711 mu-law WAVE files and
// back, and helps inspect the results.
//
// Usage:
//
//	mulaw [-config file.yaml] [-log-level info] [-log-format text] <command> [flags] <file>
//
// Commands:
//
//	encode [-o encode.wav] <pcm.wav>     PCM to mu-law
//	decode [-o decode.wav] <mulaw.wav>   mu-law to PCM
//	aiff   [-o out.aif] <mulaw.wav>      mu-law to 16-bit AIFF
//	info   <file.wav>                    print the WAVE header
//	dump   [-n 100] <file>               print the first bytes in hex
//	tone   [-o tone.wav] [-frequency 440] [-length 1]   generate a PCM sine
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/venetiafurtado/mulaw"
)

const usage = "usage: mulaw [-config file] [-log-level level] [-log-format text|color|json] encode|decode|aiff|info|dump|tone [flags] <file>"

var (
	errMissingCommand = errors.New("missing command")
	errUnknownCommand = errors.New("unknown command")
	errMissingPath    = errors.New("missing path argument")
	errInvalidFlag    = errors.New("invalid flag value")
)

func main() {
	os.Exit(exitCode(run(os.Args[1:], os.Stdout, os.Stderr), os.Stderr))
}

// exitCode reports err on stderr and maps it to the process exit status.
func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		// the flag set already printed its defaults
		return 0
	case errors.Is(err, errMissingCommand), errors.Is(err, errUnknownCommand),
		errors.Is(err, errMissingPath), errors.Is(err, errInvalidFlag):
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, usage)
		return 2
	default:
		fmt.Fprintln(stderr, "mulaw:", err)
		return 1
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	flagSet := flag.NewFlagSet("mulaw", flag.ContinueOnError)
	flagSet.SetOutput(stderr)

	configPath := flagSet.String("config", "", "YAML file with transcode and log settings")
	logLevel := flagSet.String("log-level", "", "log level: trace, debug, info, warn, error, disabled")
	logFormat := flagSet.String("log-format", "", "log format: text, color or json")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	cfg := defaultConfig()

	if *configPath != "" {
		err = loadConfig(*configPath, &cfg)
		if err != nil {
			return err
		}
	}

	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}

	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		return errMissingCommand
	}

	cmd := &command{
		cfg:    cfg,
		log:    logger.With().Str("cmd", rest[0]).Logger(),
		stdout: stdout,
		stderr: stderr,
	}

	switch rest[0] {
	case "encode":
		return cmd.transcode(rest[1:], "encode.wav", mulaw.EncodeFile)
	case "decode":
		return cmd.transcode(rest[1:], "decode.wav", mulaw.DecodeFile)
	case "aiff":
		return cmd.exportAIFF(rest[1:])
	case "info":
		return cmd.info(rest[1:])
	case "dump":
		return cmd.dump(rest[1:])
	case "tone":
		return cmd.tone(rest[1:])
	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, rest[0])
	}
}

type command struct {
	cfg    config
	log    zerolog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (c *command) flagSet(name string) *flag.FlagSet {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(c.stderr)

	return flagSet
}

type fileFunc func(dstPath, srcPath string, opts ...mulaw.Option) (int, error)

func (c *command) transcode(args []string, defaultOutput string, fn fileFunc) error {
	flagSet := c.flagSet("transcode")
	output := flagSet.String("o", defaultOutput, "filename to write to")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if flagSet.NArg() < 1 {
		return errMissingPath
	}

	src := flagSet.Arg(0)

	n, err := fn(*output, src, c.cfg.options()...)
	if err != nil {
		return err
	}

	c.log.Info().Str("src", src).Str("dst", *output).Int("bytes", n).Msg("transcoded")

	return nil
}

func (c *command) info(args []string) error {
	if len(args) < 1 {
		return errMissingPath
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := mulaw.Inspect(file)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", args[0], err)
	}

	f := info.Format
	fmt.Fprintf(c.stdout, "Format: %s\n", f)
	fmt.Fprintf(c.stdout, "AudioFormat: %d\n", f.AudioFormat)
	fmt.Fprintf(c.stdout, "Channels: %d\n", f.NumChannels)
	fmt.Fprintf(c.stdout, "SampleRate: %d\n", f.SampleRate)
	fmt.Fprintf(c.stdout, "ByteRate: %d\n", f.ByteRate())
	fmt.Fprintf(c.stdout, "BlockAlign: %d\n", f.BlockAlign())
	fmt.Fprintf(c.stdout, "BitsPerSample: %d\n", f.BitsPerSample)
	fmt.Fprintf(c.stdout, "ChunkSize: %d\n", info.ChunkSize)
	fmt.Fprintf(c.stdout, "DataSize: %d\n", info.DataSize)
	fmt.Fprintf(c.stdout, "Duration: %v\n", info.Duration)

	return nil
}

func (c *command) dump(args []string) error {
	flagSet := c.flagSet("dump")
	limit := flagSet.Int("n", mulaw.DefaultDumpLimit, "number of bytes to print")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if flagSet.NArg() < 1 {
		return errMissingPath
	}

	file, err := os.Open(flagSet.Arg(0))
	if err != nil {
		return err
	}
	defer file.Close()

	n, err := mulaw.Dump(c.stdout, file, *limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.stdout)
	c.log.Debug().Str("src", flagSet.Arg(0)).Int("bytes", n).Msg("dumped")

	return nil
}
