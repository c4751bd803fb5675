package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/aiff"
	"github.com/venetiafurtado/mulaw"
)

// exportAIFF decodes a mu-law WAVE file into a 16-bit AIFF file next to it.
func (c *command) exportAIFF(args []string) error {
	flagSet := c.flagSet("aiff")
	output := flagSet.String("o", "", "filename to write to (default: source with .aif extension)")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if flagSet.NArg() < 1 {
		return errMissingPath
	}

	sourcePath := flagSet.Arg(0)

	outPath := *output
	if outPath == "" {
		outPath = sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + ".aif"
	}

	in, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer in.Close()

	buf, err := mulaw.ReadPCMBuffer(in, c.cfg.options()...)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", sourcePath, err)
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	encoder := aiff.NewEncoder(outFile, buf.Format.SampleRate, buf.SourceBitDepth, buf.Format.NumChannels)

	err = encoder.Write(buf)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("failed to finalize %s: %w", outPath, err)
	}

	c.log.Info().Str("src", sourcePath).Str("dst", outPath).Int("samples", len(buf.Data)).Msg("exported")

	return nil
}
