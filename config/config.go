// Package config loads settings.toml: video, input, physics, audio and debug-draw sections
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/zoo-spree/physics"
)

// DefaultPath is the settings file looked up next to the binary's working directory
const DefaultPath = "settings.toml"

// Fallback window size when resolution is not "auto"
const (
	defaultXResolution = 800
	defaultYResolution = 600
)

// Config is the decoded settings.toml
type Config struct {
	Video   VideoConfig   `toml:"video"`
	Input   InputConfig   `toml:"input"`
	Physics PhysicsConfig `toml:"physics"`
	Audio   AudioConfig   `toml:"audio"`
	Debug   DebugConfig   `toml:"debug"`
}

// VideoConfig sizes the play field
// Resolution is "auto" (take the terminal size) or "WxH"
type VideoConfig struct {
	Fullscreen bool   `toml:"fullscreen"`
	Resolution string `toml:"resolution"`
	Scale      int    `toml:"scale"`

	autoX, autoY int
	hasAuto      bool
}

// InputConfig controls the virtual controllers
// Deadzone is in raw axis units, 0..32767
type InputConfig struct {
	Deadzone int  `toml:"deadzone"`
	Keyboard bool `toml:"keyboard"`
}

// PhysicsConfig parameterizes the world step
type PhysicsConfig struct {
	GravityX           float64 `toml:"gravity_x"`
	GravityY           float64 `toml:"gravity_y"`
	TimeStep           float64 `toml:"time_step"`
	VelocityIterations int     `toml:"velocity_iterations"`
	PositionIterations int     `toml:"position_iterations"`
}

// AudioConfig toggles impact sounds
type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// DebugConfig selects debug-draw layers
type DebugConfig struct {
	DrawShapes       bool `toml:"draw_shapes"`
	DrawJoints       bool `toml:"draw_joints"`
	DrawAABBs        bool `toml:"draw_aabbs"`
	DrawPairs        bool `toml:"draw_pairs"`
	DrawCenterOfMass bool `toml:"draw_center_of_mass"`
}

// Default returns the settings used when no file is present
func Default() *Config {
	return &Config{
		Video: VideoConfig{
			Resolution: "auto",
			Scale:      1,
		},
		Input: InputConfig{
			Deadzone: 8000,
			Keyboard: true,
		},
		Physics: PhysicsConfig{
			GravityX:           0,
			GravityY:           -10,
			TimeStep:           1.0 / 60.0,
			VelocityIterations: 6,
			PositionIterations: 2,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Debug: DebugConfig{
			DrawShapes: true,
			DrawJoints: true,
		},
	}
}

// Load reads and validates path
// A missing file yields the defaults together with an error wrapping os.ErrNotExist
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("config: %s not found, using defaults", path)
			return Default(), fmt.Errorf("load config %s: %w", path, err)
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults, so omitted keys keep their default values
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("config: unknown key %s ignored", key)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with
func (c *Config) Validate() error {
	if c.Video.Scale < 1 {
		return fmt.Errorf("video.scale %d: must be at least 1", c.Video.Scale)
	}
	if !c.Video.AutoResolution() {
		if _, _, err := parseResolution(c.Video.Resolution); err != nil {
			return err
		}
	}
	if c.Input.Deadzone < 0 || c.Input.Deadzone > 32767 {
		return fmt.Errorf("input.deadzone %d: out of range 0..32767", c.Input.Deadzone)
	}
	if c.Physics.TimeStep <= 0 {
		return fmt.Errorf("physics.time_step %g: must be positive", c.Physics.TimeStep)
	}
	if c.Physics.VelocityIterations < 1 || c.Physics.PositionIterations < 1 {
		return fmt.Errorf("physics iterations %d/%d: must be positive",
			c.Physics.VelocityIterations, c.Physics.PositionIterations)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume %g: out of range 0..1", c.Audio.Volume)
	}
	return nil
}

// Save writes c to path as TOML
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save config %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("save config %s: %w", path, err)
	}
	return nil
}

// AutoResolution reports whether the size follows the terminal
func (v *VideoConfig) AutoResolution() bool {
	return v.Resolution == "auto"
}

// SetAutoResolution records the detected output size used in auto mode
func (v *VideoConfig) SetAutoResolution(w, h int) {
	v.autoX, v.autoY = w, h
	v.hasAuto = true
}

// XResolution returns the play-field width after scaling
func (v *VideoConfig) XResolution() int {
	if v.AutoResolution() {
		if v.hasAuto {
			return v.autoX / v.scale()
		}
		return defaultXResolution
	}
	w, _, err := parseResolution(v.Resolution)
	if err != nil {
		return defaultXResolution
	}
	return w / v.scale()
}

// YResolution returns the play-field height after scaling
func (v *VideoConfig) YResolution() int {
	if v.AutoResolution() {
		if v.hasAuto {
			return v.autoY / v.scale()
		}
		return defaultYResolution
	}
	_, h, err := parseResolution(v.Resolution)
	if err != nil {
		return defaultYResolution
	}
	return h / v.scale()
}

func (v *VideoConfig) scale() int {
	if v.Scale < 1 {
		return 1
	}
	return v.Scale
}

func parseResolution(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("video.resolution %q: want \"auto\" or WxH", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("video.resolution %q: bad width", s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("video.resolution %q: bad height", s)
	}
	return w, h, nil
}

// Gravity returns the configured gravity vector
func (p PhysicsConfig) Gravity() physics.Vec2 {
	return physics.V(p.GravityX, p.GravityY)
}

// DrawFlags converts the debug section to physics draw flags
func (d DebugConfig) DrawFlags() physics.DrawFlags {
	var f physics.DrawFlags
	if d.DrawShapes {
		f |= physics.DrawShapes
	}
	if d.DrawJoints {
		f |= physics.DrawJoints
	}
	if d.DrawAABBs {
		f |= physics.DrawAABBs
	}
	if d.DrawPairs {
		f |= physics.DrawPairs
	}
	if d.DrawCenterOfMass {
		f |= physics.DrawCenterOfMass
	}
	return f
}
