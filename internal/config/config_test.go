package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/trajsim/internal/kinematics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Launch.InitialSpeed != 30 {
		t.Errorf("expected initial speed 30, got %f", cfg.Launch.InitialSpeed)
	}
	if cfg.Launch.FinalSpeed != nil {
		t.Error("final speed should default to unset")
	}
	if cfg.Sim.Dt <= 0 {
		t.Error("dt should be positive")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte("launch:\n  initial_speed: 25\n  final_speed: 10\nsim:\n  trail_capacity: 50\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Launch.InitialSpeed != 25 {
		t.Errorf("expected initial speed 25, got %f", cfg.Launch.InitialSpeed)
	}
	if cfg.Launch.FinalSpeed == nil || *cfg.Launch.FinalSpeed != 10 {
		t.Errorf("expected final speed 10, got %v", cfg.Launch.FinalSpeed)
	}
	if cfg.Launch.Angle != DefaultAngle {
		t.Errorf("expected default angle kept, got %f", cfg.Launch.Angle)
	}
	if cfg.Sim.TrailCapacity != 50 {
		t.Errorf("expected trail capacity 50, got %d", cfg.Sim.TrailCapacity)
	}
	if cfg.Sim.Samples != DefaultSamples {
		t.Errorf("expected default samples kept, got %d", cfg.Sim.Samples)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("launch: [1, 2"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("launch:\n  angle: 95\n"), 0644)
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := GetPreset("cliff")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Launch.FinalSpeed == nil || *loaded.Launch.FinalSpeed != 30 {
		t.Errorf("final speed lost in round trip: %v", loaded.Launch.FinalSpeed)
	}
	if loaded.Plot.Margins != cfg.Plot.Margins {
		t.Errorf("margins lost: %+v", loaded.Plot.Margins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero speed", func(c *Config) { c.Launch.InitialSpeed = 0 }},
		{"negative angle", func(c *Config) { c.Launch.Angle = -1 }},
		{"steep angle", func(c *Config) { c.Launch.Angle = 90 }},
		{"zero fps", func(c *Config) { c.Sim.FPS = 0 }},
		{"zero dt", func(c *Config) { c.Sim.Dt = 0 }},
		{"zero multiplier", func(c *Config) { c.Sim.SpeedMultiplier = 0 }},
		{"zero duration", func(c *Config) { c.Sim.MaxDuration = 0 }},
		{"empty trail", func(c *Config) { c.Sim.TrailCapacity = 0 }},
		{"no samples", func(c *Config) { c.Sim.Samples = 0 }},
		{"no plot", func(c *Config) { c.Plot.Width = 0 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}

	// Final speed is not range checked.
	cfg := DefaultConfig()
	cfg.Launch.FinalSpeed = speed(-5)
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error for negative final speed: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("lob")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Launch.Angle != 80 {
		t.Errorf("expected angle 80, got %f", cfg.Launch.Angle)
	}
	if cfg.Sim.Samples != DefaultSamples {
		t.Error("preset should keep default sim settings")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}

	// Presets hand out copies.
	a := GetPreset("cliff")
	*a.Launch.FinalSpeed = 99
	if *GetPreset("cliff").Launch.FinalSpeed != 30 {
		t.Error("preset mutated through returned config")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestUnreachablePreset(t *testing.T) {
	_, err := kinematics.Solve(GetPreset("unreachable").Params(), 10)
	if !errors.Is(err, kinematics.ErrNoSolution) {
		t.Errorf("expected no solution, got %v", err)
	}
}

func TestSessionSettings(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.SessionSettings()
	if s.Area.W != float64(cfg.Plot.Width*2) || s.Area.H != float64(cfg.Plot.Height*4) {
		t.Errorf("unexpected plot area %+v", s.Area)
	}
	if s.TrailCapacity != cfg.Sim.TrailCapacity || s.Samples != cfg.Sim.Samples {
		t.Error("sim sizes not carried into session settings")
	}
}

func TestRunConfig(t *testing.T) {
	cfg := DefaultConfig()
	rc := cfg.RunConfig()
	if rc.Dt != cfg.Sim.Dt || rc.MaxDuration != cfg.Sim.MaxDuration {
		t.Errorf("run config mismatch: %+v", rc)
	}
}
