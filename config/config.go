// Package config holds the tunables of a snake session and loads them from TOML.
package config

import (
	"strings"
	"time"

	"snake-sim/game/entity"
	"snake-sim/game/types"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

type Config struct {
	Room     RoomConfig     `toml:"room"`
	Snake    SnakeConfig    `toml:"snake"`
	Food     FoodConfig     `toml:"food"`
	Score    ScoreConfig    `toml:"score"`
	Session  SessionConfig  `toml:"session"`
	Log      LogConfig      `toml:"log"`
	Spectate SpectateConfig `toml:"spectate"`
}

type RoomConfig struct {
	Cols     int     `toml:"cols"`
	Rows     int     `toml:"rows"`
	CellSize float64 `toml:"cell_size"`
	OffsetX  float64 `toml:"offset_x"`
	OffsetY  float64 `toml:"offset_y"`
}

type SnakeConfig struct {
	// Speed divides TimeTillMove
	Speed        float64       `toml:"speed"`
	TimeTillMove float64       `toml:"time_till_move"` // seconds
	StartLength  int           `toml:"start_length"`
	StartX       int           `toml:"start_x"`
	StartY       int           `toml:"start_y"`
	StartHeading types.Heading `toml:"start_heading"`
}

type FoodConfig struct {
	Amount int `toml:"amount"`
}

type ScoreConfig struct {
	BaseScoreAtEat float64 `toml:"base_score_at_eat"`
	TimeScoreMin   float64 `toml:"time_score_min"`
	TimeScoreMax   float64 `toml:"time_score_max"`
	TimeMin        float64 `toml:"time_min"`
	TimeMax        float64 `toml:"time_max"`
}

type SessionConfig struct {
	// Seed fixes the food sequence; 0 seeds from the clock
	Seed         uint64 `toml:"seed"`
	Debug        bool   `toml:"debug"`
	HistoryLimit int    `toml:"history_limit"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type SpectateConfig struct {
	Listen string `toml:"listen"`
}

func Default() Config {
	return Config{
		Room: RoomConfig{
			Cols:     16,
			Rows:     9,
			CellSize: 1,
		},
		Snake: SnakeConfig{
			Speed:        1,
			TimeTillMove: 1,
			StartLength:  3,
			StartHeading: types.Up,
		},
		Food: FoodConfig{
			Amount: 1,
		},
		Score: ScoreConfig{
			BaseScoreAtEat: 150,
			TimeScoreMin:   15,
			TimeScoreMax:   100,
			TimeMin:        10,
			TimeMax:        1,
		},
		Session: SessionConfig{
			HistoryLimit: 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a TOML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "load config %s", path)
	}
	if err := checkUndecoded(md, path); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Decode parses TOML text over the defaults. Unknown keys are rejected.
func Decode(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return cfg, errors.Wrap(err, "decode config")
	}
	if err := checkUndecoded(md, "config"); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func checkUndecoded(md toml.MetaData, source string) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return errors.Wrapf(types.ErrInvalidConfig, "unknown keys in %s: %s", source, strings.Join(keys, ", "))
}

// Interval is the delay between two ticks
func (c Config) Interval() time.Duration {
	return time.Duration(c.Snake.TimeTillMove / c.Snake.Speed * float64(time.Second))
}

func (c Config) StartCell() types.Point {
	return types.Point{X: c.Snake.StartX, Y: c.Snake.StartY}
}

// NewRoom builds the room described by the config
func (c Config) NewRoom() (*entity.Room, error) {
	return entity.NewRoom(c.Room.Cols, c.Room.Rows, c.Room.CellSize, c.Room.OffsetX, c.Room.OffsetY)
}

func (c Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return errors.Wrapf(types.ErrInvalidConfig, format, args...)
	}

	room, err := c.NewRoom()
	if err != nil {
		return err
	}
	if c.Snake.Speed <= 0 {
		return invalid("snake speed %v must be positive", c.Snake.Speed)
	}
	if c.Snake.TimeTillMove <= 0 {
		return invalid("time till move %v must be positive", c.Snake.TimeTillMove)
	}
	if c.Snake.StartLength < 1 {
		return invalid("start length %d must be at least 1", c.Snake.StartLength)
	}
	if c.Snake.StartHeading == types.None {
		return invalid("start heading is required")
	}
	if !room.Contains(c.StartCell()) {
		return invalid("start cell %v outside %dx%d room", c.StartCell(), c.Room.Cols, c.Room.Rows)
	}
	if c.Food.Amount < 0 {
		return invalid("food amount %d is negative", c.Food.Amount)
	}
	if 1+c.Food.Amount > room.Capacity() {
		return invalid("%d food and the snake do not fit in %d cells", c.Food.Amount, room.Capacity())
	}
	if c.Score.TimeMin < 0 || c.Score.TimeMax < 0 {
		return invalid("score times must not be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return invalid("log format %q", c.Log.Format)
	}
	return nil
}
