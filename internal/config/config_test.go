package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Loop.FPS != 60 {
		t.Errorf("Loop.FPS = %d, want 60", cfg.Loop.FPS)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Demo.SkipAtFrame != -1 {
		t.Errorf("Demo.SkipAtFrame = %d, want -1", cfg.Demo.SkipAtFrame)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cutscene.toml")
	data := `
[loop]
fps = 30
max_frames = 600

[log]
level = "debug"
format = "json"

[metrics]
addr = ":9100"

[journal]
path = "events.db"

[demo]
skip_at_frame = 45
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Loop.FPS != 30 || cfg.Loop.MaxFrames != 600 {
		t.Errorf("Loop = %+v", cfg.Loop)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Metrics.Addr != ":9100" || cfg.Journal.Path != "events.db" {
		t.Errorf("Metrics = %+v, Journal = %+v", cfg.Metrics, cfg.Journal)
	}
	if cfg.Demo.SkipAtFrame != 45 {
		t.Errorf("Demo.SkipAtFrame = %d", cfg.Demo.SkipAtFrame)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cutscene.toml")
	os.WriteFile(path, []byte("[log]\nlevel = \"warn\"\n"), 0o644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Log.Level != "warn" || cfg.Loop.FPS != 60 || cfg.Log.Format != "text" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key": "[loop]\nspeed = 2\n",
		"bad fps":     "[loop]\nfps = 0\n",
		"bad format":  "[log]\nformat = \"xml\"\n",
		"bad syntax":  "[loop\n",
	}
	for name, data := range tests {
		path := filepath.Join(t.TempDir(), "cutscene.toml")
		os.WriteFile(path, []byte(data), 0o644)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cutscene.toml")
	cfg := DefaultConfig()
	cfg.Metrics.Addr = "127.0.0.1:9100"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "[metrics]") {
		t.Errorf("missing section in %s", data)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded != cfg {
		t.Errorf("got %+v, want %+v", loaded, cfg)
	}
}
