package repl_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calc/repl"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := repl.LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != repl.DefaultConfig() {
		t.Errorf("empty path gave %+v", cfg)
	}

	path := writeFile(t, "calc.toml", `
precision = 128
log_level = "debug"
color = false
vars = "vars.yaml"
`)
	cfg, err = repl.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := repl.Config{Precision: 128, LogLevel: "debug", Color: false, Vars: "vars.yaml"}
	if cfg != want {
		t.Errorf("want %+v, got %+v", want, cfg)
	}
	if cfg.Level() != zerolog.DebugLevel {
		t.Errorf("wrong level %v", cfg.Level())
	}

	// Keys not in the file keep their defaults.
	path = writeFile(t, "partial.toml", "precision = 32\n")
	cfg, err = repl.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want = repl.DefaultConfig()
	want.Precision = 32
	if cfg != want {
		t.Errorf("want %+v, got %+v", want, cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unknown-key", "colour = true\n"},
		{"zero-precision", "precision = 0\n"},
		{"bad-level", "log_level = \"loud\"\n"},
		{"bad-type", "precision = \"high\"\n"},
		{"syntax", "precision = \n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeFile(t, "calc.toml", c.src)
			if cfg, err := repl.LoadConfig(path); err == nil {
				t.Errorf("%q gave no error, got %+v", c.src, cfg)
			}
		})
	}
	if _, err := repl.LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file gave no error")
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  repl.Config
		ok   bool
	}{
		{"default", repl.DefaultConfig(), true},
		{"debug", repl.Config{Precision: 128, LogLevel: "debug"}, true},
		{"bad-level", repl.Config{Precision: 64, LogLevel: "bogus"}, false},
		{"zero-precision", repl.Config{LogLevel: "warn"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if (err == nil) != c.ok {
				t.Errorf("%+v: want ok=%t, got %v", c.cfg, c.ok, err)
			}
		})
	}
}

func TestConfigLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.NoLevel},
		{"loud", zerolog.WarnLevel},
	}
	for _, c := range cases {
		cfg := repl.Config{LogLevel: c.in}
		if got := cfg.Level(); got != c.want {
			t.Errorf("%q: want %v, got %v", c.in, c.want, got)
		}
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := repl.Config{Precision: 16, Color: true}
	opts := cfg.Options(nil, zerolog.Nop())
	if opts.Prec != 16 || !opts.Color || opts.Out != nil {
		t.Errorf("wrong options %+v", opts)
	}
}
