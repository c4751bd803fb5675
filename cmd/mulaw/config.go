package main

import (
	"fmt"
	"os"

	"github.com/venetiafurtado/mulaw"
	"gopkg.in/yaml.v3"
)

type config struct {
	Transcode struct {
		EncodeSkip  int  `yaml:"encode_skip"`
		DecodeSkip  int  `yaml:"decode_skip"`
		LenientSkip bool `yaml:"lenient_skip"`
	} `yaml:"transcode"`
	Log logConfig `yaml:"log"`
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaultConfig() config {
	var cfg config

	opts := mulaw.DefaultOptions()
	cfg.Transcode.EncodeSkip = opts.EncodeSkip
	cfg.Transcode.DecodeSkip = opts.DecodeSkip
	cfg.Log.Level = "info"

	return cfg
}

// loadConfig overlays the YAML file at path on cfg. Keys missing from the
// file keep their current values.
func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return nil
}

func (c config) options() []mulaw.Option {
	return []mulaw.Option{
		mulaw.WithOptions(mulaw.Options{
			EncodeSkip:  c.Transcode.EncodeSkip,
			DecodeSkip:  c.Transcode.DecodeSkip,
			LenientSkip: c.Transcode.LenientSkip,
		}),
	}
}
