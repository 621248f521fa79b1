// Package config holds the runtime settings of the game frontend. Settings
// come from built-in defaults, then an optional YAML file, then TILED_*
// environment variables.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/tiled/internal/errors"
	"github.com/samdwyer/tiled/internal/fov"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TILED_"

// Config holds game configuration options.
type Config struct {
	Window Window `yaml:"window"`

	// VisibleRange is how many cells a ray travels from the player.
	VisibleRange int `yaml:"visible_range"`
	// Rays is the number of rays cast per frame.
	Rays int `yaml:"rays"`
	// FrameRate is the number of updates per second.
	FrameRate int `yaml:"frame_rate"`
	// KeyHold is how long a repeating terminal key counts as held after its
	// last event. Terminals report presses only, never releases.
	KeyHold time.Duration `yaml:"key_hold"`
	// KeyRepeatDelay is how long a fresh press counts as held while waiting
	// for the terminal's first auto-repeat.
	KeyRepeatDelay time.Duration `yaml:"key_repeat_delay"`

	Log       Log       `yaml:"log"`
	Telemetry Telemetry `yaml:"telemetry"`
}

// Window is the viewport size in tiles.
type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Log configures the slog handler.
type Log struct {
	Level string `yaml:"level"`
	// File receives log output. Empty discards logs while the terminal is
	// in use.
	File string `yaml:"file"`
}

// Telemetry toggles trace export.
type Telemetry struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window:         Window{Width: 21, Height: 13},
		VisibleRange:   fov.DefaultRange,
		Rays:           fov.DefaultRays,
		FrameRate:      30,
		KeyHold:        150 * time.Millisecond,
		KeyRepeatDelay: 600 * time.Millisecond,
		Log:            Log{Level: "info"},
	}
}

// Load builds the configuration. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.WrapWithCodef(err, errors.CodeNotFound, "read config %s", path)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "parse config %s", path)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"WINDOW_WIDTH", &c.Window.Width},
		{"WINDOW_HEIGHT", &c.Window.Height},
		{"VISIBLE_RANGE", &c.VisibleRange},
		{"RAYS", &c.Rays},
		{"FRAME_RATE", &c.FrameRate},
	}
	for _, f := range ints {
		v, ok := lookup(EnvPrefix + f.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "%s%s", EnvPrefix, f.name)
		}
		*f.dst = n
	}

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{"KEY_HOLD", &c.KeyHold},
		{"KEY_REPEAT_DELAY", &c.KeyRepeatDelay},
	}
	for _, f := range durations {
		v, ok := lookup(EnvPrefix + f.name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "%s%s", EnvPrefix, f.name)
		}
		*f.dst = d
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FILE"); ok {
		c.Log.File = v
	}
	if v, ok := lookup(EnvPrefix + "TELEMETRY_ENABLED"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "%sTELEMETRY_ENABLED", EnvPrefix)
		}
		c.Telemetry.Enabled = b
	}
	return nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"window.width", c.Window.Width},
		{"window.height", c.Window.Height},
		{"visible_range", c.VisibleRange},
		{"rays", c.Rays},
		{"frame_rate", c.FrameRate},
	}
	for _, chk := range checks {
		if chk.value <= 0 {
			return errors.InvalidArgumentf("%s must be positive, got %d", chk.name, chk.value)
		}
	}
	if c.KeyHold <= 0 {
		return errors.InvalidArgumentf("key_hold must be positive, got %s", c.KeyHold)
	}
	if c.KeyRepeatDelay < c.KeyHold {
		return errors.InvalidArgumentf("key_repeat_delay must be at least key_hold, got %s", c.KeyRepeatDelay)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// FrameInterval is the time between two updates.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

// Viewport is the window size as a visibility viewport.
func (c Config) Viewport() fov.Viewport {
	return fov.Viewport{Width: c.Window.Width, Height: c.Window.Height}
}

// SlogLevel parses Level.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "log.level %q", l.Level)
	}
	return level, nil
}
