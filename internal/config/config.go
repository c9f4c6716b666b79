// Package config loads and validates umpconv configuration files.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/danmuck/midi2/internal/logging"
)

// Input forms.
const (
	InputUmp   = "ump"
	InputBytes = "bytes"
)

// Output encodings.
const (
	OutputText    = "text"
	OutputJSON    = "json"
	OutputMsgpack = "msgpack"
)

type Config struct {
	// Input is the wire form of decoded hex arguments.
	Input string `toml:"input"`
	// Output selects how decoded records are printed.
	Output string `toml:"output"`
	// Group is the UMP group assigned when converting byte-stream input.
	Group uint8 `toml:"group"`
	// LogLevel accepts the names understood by logging.ParseLevel.
	LogLevel string `toml:"log_level"`
	// MetricsFile, when set, receives decode counters in the Prometheus
	// text format after every run.
	MetricsFile string `toml:"metrics_file"`
}

type fileConfig struct {
	Input       string `toml:"input"`
	Output      string `toml:"output"`
	Group       int64  `toml:"group"`
	LogLevel    string `toml:"log_level"`
	MetricsFile string `toml:"metrics_file"`
}

func Default() Config {
	return Config{
		Input:    InputUmp,
		Output:   OutputText,
		LogLevel: "info",
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("input") {
		cfg.Input = strings.ToLower(strings.TrimSpace(raw.Input))
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.ToLower(strings.TrimSpace(raw.Output))
	}
	if meta.IsDefined("group") {
		if raw.Group < 0 || raw.Group > 15 {
			return Config{}, errors.Errorf("config %s: group %d out of range 0-15", path, raw.Group)
		}
		cfg.Group = uint8(raw.Group)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("metrics_file") {
		cfg.MetricsFile = strings.TrimSpace(raw.MetricsFile)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	switch cfg.Input {
	case InputUmp, InputBytes:
	default:
		return fmt.Errorf("input must be %q or %q, got %q", InputUmp, InputBytes, cfg.Input)
	}
	switch cfg.Output {
	case OutputText, OutputJSON, OutputMsgpack:
	default:
		return fmt.Errorf("output must be one of text, json, msgpack, got %q", cfg.Output)
	}
	if cfg.Group > 15 {
		return fmt.Errorf("group %d out of range 0-15", cfg.Group)
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	return nil
}
