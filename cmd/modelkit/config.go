package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/rs/zerolog"
)

// Config is the process configuration, read from the environment.
type Config struct {
	// LogLevel is a zerolog level name. ENV: MODELKIT_LOG_LEVEL
	LogLevel string `env:"MODELKIT_LOG_LEVEL,default=info"`
	// LogFormat is console or json. ENV: MODELKIT_LOG_FORMAT
	LogFormat string `env:"MODELKIT_LOG_FORMAT,default=console"`
	// StrictHints rejects unknown x-modelkit-* OpenAPI extensions.
	// ENV: MODELKIT_STRICT_HINTS
	StrictHints bool `env:"MODELKIT_STRICT_HINTS,default=false"`
}

func defaultConfig() Config {
	return Config{LogLevel: "info", LogFormat: "console"}
}

func loadConfig() (Config, error) {
	cfg := defaultConfig()
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg Config, w io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.LogLevel != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("config: log level: %w", err)
		}
		level = parsed
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("config: unknown log format %q", cfg.LogFormat)
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
