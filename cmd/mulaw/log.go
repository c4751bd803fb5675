package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var errLogFormat = errors.New("unknown log format")

// newLogger supports:
// - format: empty (autodetect color support), color, text, json
// - level:  disabled, trace, debug, info, warn, error...
func newLogger(cfg logConfig, out io.Writer) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel

	if cfg.Level != "" {
		var err error

		lvl, err = zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
		}
	}

	writer := out

	switch cfg.Format {
	case "json":
	case "", "text", "color":
		console := zerolog.ConsoleWriter{
			Out: out,
			PartsOrder: []string{
				zerolog.LevelFieldName,
				zerolog.MessageFieldName,
			},
		}

		switch cfg.Format {
		case "text":
			console.NoColor = true
		case "color":
			console.NoColor = false
		default:
			console.NoColor = !isTerminal(out)
		}

		writer = console
	default:
		return zerolog.Nop(), fmt.Errorf("%w: %q", errLogFormat, cfg.Format)
	}

	return zerolog.New(writer).Level(lvl), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}
