// Package config loads the cutscene tool configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds everything the run command needs.
type Config struct {
	Loop    LoopConfig    `toml:"loop"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
	Journal JournalConfig `toml:"journal"`
	Demo    DemoConfig    `toml:"demo"`
}

// LoopConfig controls the fixed-rate tick loop.
type LoopConfig struct {
	FPS       int   `toml:"fps"`
	MaxFrames int64 `toml:"max_frames"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MetricsConfig controls the Prometheus endpoint.
// An empty Addr disables it.
type MetricsConfig struct {
	Addr string `toml:"addr"`
}

// JournalConfig controls the SQLite event journal.
// An empty Path disables it.
type JournalConfig struct {
	Path string `toml:"path"`
}

// DemoConfig controls the demo scenes.
type DemoConfig struct {
	// SkipAtFrame requests a global skip on that frame. Negative
	// means never.
	SkipAtFrame int64 `toml:"skip_at_frame"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Loop: LoopConfig{
			FPS:       60,
			MaxFrames: 0, // run until idle
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Demo: DemoConfig{
			SkipAtFrame: -1,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("parse config: unknown key %q", undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the loop cannot run with.
func (c Config) Validate() error {
	if c.Loop.FPS <= 0 {
		return fmt.Errorf("loop.fps must be positive, got %d", c.Loop.FPS)
	}
	if c.Loop.MaxFrames < 0 {
		return fmt.Errorf("loop.max_frames must not be negative, got %d", c.Loop.MaxFrames)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Save writes c to path as TOML.
func Save(path string, c Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
