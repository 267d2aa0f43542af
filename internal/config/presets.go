package config

import "sort"

// Presets are named launch setups on top of the default config.
var Presets = map[string]LaunchConfig{
	"flat":        {InitialSpeed: 30, Angle: 45},
	"cliff":       {InitialSpeed: 20, FinalSpeed: speed(30), Angle: 35},
	"ledge":       {InitialSpeed: 30, FinalSpeed: speed(25), Angle: 60},
	"lob":         {InitialSpeed: 15, Angle: 80},
	"skim":        {InitialSpeed: 40, Angle: 10},
	"unreachable": {InitialSpeed: 10, FinalSpeed: speed(15), Angle: 10},
}

func speed(v float64) *float64 { return &v }

// GetPreset returns a full config for the named preset, or nil.
func GetPreset(name string) *Config {
	launch, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Launch = launch
	if launch.FinalSpeed != nil {
		cfg.Launch.FinalSpeed = speed(*launch.FinalSpeed)
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
