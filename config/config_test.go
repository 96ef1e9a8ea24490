package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"snake-sim/game/types"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate(): %v", err)
	}
	if cfg.Interval() != time.Second {
		t.Fatalf("Interval() = %v, want 1s", cfg.Interval())
	}
}

func TestInterval(t *testing.T) {
	cfg := Default()
	cfg.Snake.Speed = 4
	cfg.Snake.TimeTillMove = 0.5
	if got := cfg.Interval(); got != 125*time.Millisecond {
		t.Fatalf("Interval() = %v, want 125ms", got)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero speed", func(c *Config) { c.Snake.Speed = 0 }},
		{"negative speed", func(c *Config) { c.Snake.Speed = -1 }},
		{"zero interval", func(c *Config) { c.Snake.TimeTillMove = 0 }},
		{"zero length", func(c *Config) { c.Snake.StartLength = 0 }},
		{"no heading", func(c *Config) { c.Snake.StartHeading = types.None }},
		{"start outside", func(c *Config) { c.Snake.StartX = 8 }},
		{"negative food", func(c *Config) { c.Food.Amount = -1 }},
		{"too much food", func(c *Config) { c.Room.Cols, c.Room.Rows, c.Food.Amount = 2, 2, 4 }},
		{"empty room", func(c *Config) { c.Room.Rows = 0 }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, types.ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(`
[room]
cols = 20
rows = 11

[snake]
speed = 2.0
start_heading = "left"

[food]
amount = 3

[session]
seed = 99
`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Room.Cols != 20 || cfg.Room.Rows != 11 {
		t.Fatalf("room = %dx%d, want 20x11", cfg.Room.Cols, cfg.Room.Rows)
	}
	if cfg.Snake.StartHeading != types.Left {
		t.Fatalf("StartHeading = %v, want left", cfg.Snake.StartHeading)
	}
	if cfg.Food.Amount != 3 || cfg.Session.Seed != 99 {
		t.Fatalf("food=%d seed=%d, want 3 and 99", cfg.Food.Amount, cfg.Session.Seed)
	}
	if cfg.Score.BaseScoreAtEat != 150 || cfg.Snake.StartLength != 3 {
		t.Fatalf("defaults not kept: %+v", cfg)
	}
	if cfg.Interval() != 500*time.Millisecond {
		t.Fatalf("Interval() = %v, want 500ms", cfg.Interval())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.toml")
	if err := os.WriteFile(path, []byte("[snake]\nspeeed = 2.0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, types.ErrInvalidConfig) {
		t.Fatalf("Load() = %v, want ErrInvalidConfig", err)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	if _, err := Decode("[room]\ncolumns = 20\n"); !errors.Is(err, types.ErrInvalidConfig) {
		t.Fatalf("Decode() = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.toml")
	data := "[log]\nlevel = \"debug\"\nformat = \"json\"\n\n[spectate]\nlisten = \"127.0.0.1:8088\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" || cfg.Spectate.Listen != "127.0.0.1:8088" {
		t.Fatalf("Load = %+v", cfg)
	}
}
