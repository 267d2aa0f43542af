package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/trajsim/internal/kinematics"
	"github.com/san-kum/trajsim/internal/session"
	"github.com/san-kum/trajsim/internal/sim"
	"github.com/san-kum/trajsim/internal/viewport"
)

const (
	DefaultInitialSpeed  = 30.0
	DefaultAngle         = 45.0
	DefaultFPS           = 60
	DefaultMultiplier    = 1.0
	DefaultMaxDuration   = 60.0
	DefaultTrailCapacity = 200
	DefaultSamples       = 300
	DefaultPlotWidth     = 80
	DefaultPlotHeight    = 24
	DefaultVectorScale   = 0.5

	MaxAngle = 89.9
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Launch LaunchConfig `yaml:"launch"`
	Sim    SimConfig    `yaml:"sim"`
	Plot   PlotConfig   `yaml:"plot"`
}

type LaunchConfig struct {
	InitialSpeed float64  `yaml:"initial_speed"`
	FinalSpeed   *float64 `yaml:"final_speed,omitempty"`
	Angle        float64  `yaml:"angle"`
}

type SimConfig struct {
	FPS             int     `yaml:"fps"`
	Dt              float64 `yaml:"dt"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	MaxDuration     float64 `yaml:"max_duration"`
	TrailCapacity   int     `yaml:"trail_capacity"`
	Samples         int     `yaml:"samples"`
}

// PlotConfig sizes the terminal plot in character cells. Margins are in
// braille sub-pixels (two per cell horizontally, four vertically).
type PlotConfig struct {
	Width       int              `yaml:"width"`
	Height      int              `yaml:"height"`
	Margins     viewport.Margins `yaml:"margins"`
	VectorScale float64          `yaml:"vector_scale"`
}

func DefaultConfig() *Config {
	return &Config{
		Launch: LaunchConfig{
			InitialSpeed: DefaultInitialSpeed,
			Angle:        DefaultAngle,
		},
		Sim: SimConfig{
			FPS:             DefaultFPS,
			Dt:              1.0 / DefaultFPS,
			SpeedMultiplier: DefaultMultiplier,
			MaxDuration:     DefaultMaxDuration,
			TrailCapacity:   DefaultTrailCapacity,
			Samples:         DefaultSamples,
		},
		Plot: PlotConfig{
			Width:       DefaultPlotWidth,
			Height:      DefaultPlotHeight,
			Margins:     viewport.Margins{Left: 4, Right: 2, Top: 2, Bottom: 6},
			VectorScale: DefaultVectorScale,
		},
	}
}

// Load reads a yaml file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case !(c.Launch.InitialSpeed > 0):
		return fmt.Errorf("%w: initial_speed must be positive, got %g", ErrInvalidConfig, c.Launch.InitialSpeed)
	case c.Launch.Angle < 0 || c.Launch.Angle > MaxAngle:
		return fmt.Errorf("%w: angle must be in [0, %g], got %g", ErrInvalidConfig, MaxAngle, c.Launch.Angle)
	case c.Sim.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.Sim.FPS)
	case !(c.Sim.Dt > 0):
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Sim.Dt)
	case !(c.Sim.SpeedMultiplier > 0):
		return fmt.Errorf("%w: speed_multiplier must be positive, got %g", ErrInvalidConfig, c.Sim.SpeedMultiplier)
	case !(c.Sim.MaxDuration > 0):
		return fmt.Errorf("%w: max_duration must be positive, got %g", ErrInvalidConfig, c.Sim.MaxDuration)
	case c.Sim.TrailCapacity < 1:
		return fmt.Errorf("%w: trail_capacity must be at least 1, got %d", ErrInvalidConfig, c.Sim.TrailCapacity)
	case c.Sim.Samples < 1:
		return fmt.Errorf("%w: samples must be at least 1, got %d", ErrInvalidConfig, c.Sim.Samples)
	case c.Plot.Width <= 0 || c.Plot.Height <= 0:
		return fmt.Errorf("%w: plot size must be positive, got %dx%d", ErrInvalidConfig, c.Plot.Width, c.Plot.Height)
	}
	return nil
}

// Params returns the launch parameters described by the config.
func (c *Config) Params() kinematics.LaunchParameters {
	return kinematics.LaunchParameters{
		InitialSpeed: c.Launch.InitialSpeed,
		AngleDeg:     c.Launch.Angle,
		FinalSpeed:   c.Launch.FinalSpeed,
	}
}

// RunConfig returns the headless runner settings.
func (c *Config) RunConfig() sim.Config {
	return sim.Config{
		Dt:              c.Sim.Dt,
		SpeedMultiplier: c.Sim.SpeedMultiplier,
		MaxDuration:     c.Sim.MaxDuration,
		TrailCapacity:   c.Sim.TrailCapacity,
		Samples:         c.Sim.Samples,
	}
}

// SessionSettings lays the plot out on a braille canvas of Plot.Width x
// Plot.Height cells.
func (c *Config) SessionSettings() session.Settings {
	s := session.DefaultSettings()
	s.Area = viewport.Rect{W: float64(c.Plot.Width * 2), H: float64(c.Plot.Height * 4)}
	s.Margins = c.Plot.Margins
	s.Samples = c.Sim.Samples
	s.TrailCapacity = c.Sim.TrailCapacity
	s.MaxAngle = MaxAngle
	s.VectorScale = c.Plot.VectorScale
	return s
}
