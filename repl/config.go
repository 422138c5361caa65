package repl

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config holds settings for a calculator session, usually read from a TOML
// file:
//
//	precision = 128
//	log_level = "debug"
//	color = false
//	vars = "vars.yaml"
type Config struct {
	// Precision is the precision of calculations in bits.
	Precision uint `toml:"precision"`
	// LogLevel is a zerolog level name.
	LogLevel string `toml:"log_level"`
	// Color enables coloured diagnostics.
	Color bool `toml:"color"`
	// Vars is a YAML file of variables to load at startup, if not empty.
	Vars string `toml:"vars"`
}

// DefaultConfig returns the settings used when there is no config file.
func DefaultConfig() Config {
	return Config{
		Precision: 64,
		LogLevel:  "warn",
		Color:     true,
	}
}

// LoadConfig reads a TOML config file over the defaults. An empty path gives
// the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if und := md.Undecoded(); len(und) != 0 {
		return Config{}, fmt.Errorf("reading config %s: unknown key %s", path, und[0])
	}
	return cfg, cfg.Validate()
}

// Validate checks that the precision is positive and the log level is a
// zerolog level name.
func (cfg Config) Validate() error {
	if cfg.Precision == 0 {
		return fmt.Errorf("precision must be positive")
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("bad log level %q: %w", cfg.LogLevel, err)
	}
	return nil
}

// Level returns the configured log level, or warn if it is not valid.
func (cfg Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return l
}

// Options creates session options from the config.
func (cfg Config) Options(out io.Writer, log zerolog.Logger) Options {
	return Options{
		Out:    out,
		Logger: log,
		Prec:   cfg.Precision,
		Color:  cfg.Color,
	}
}
