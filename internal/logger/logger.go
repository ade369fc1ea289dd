package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Env   string // development -> console, anything else -> JSON
	Level string // trace, debug, info, warn, error
}

// New builds the process logger and installs it as zerolog's global logger.
func New(cfg Config) zerolog.Logger {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	w := out
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zl := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl
	zerolog.DefaultContextLogger = &zl
	return zl
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
