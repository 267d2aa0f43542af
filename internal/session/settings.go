package session

import "github.com/san-kum/trajsim/internal/viewport"

// Settings holds the layout and input limits a Session works within.
type Settings struct {
	Area    viewport.Rect
	Margins viewport.Margins

	Samples       int
	TrailCapacity int

	MinAngle  float64
	MaxAngle  float64
	AngleStep float64
	WheelStep float64

	MinMultiplier  float64
	MaxMultiplier  float64
	MultiplierStep float64

	// VectorScale converts m/s to pixels for the velocity arrow.
	VectorScale float64
}

func DefaultSettings() Settings {
	return Settings{
		Area:           viewport.Rect{W: 640, H: 600},
		Margins:        viewport.Margins{Left: 40, Right: 20, Top: 20, Bottom: 60},
		Samples:        300,
		TrailCapacity:  200,
		MinAngle:       0,
		MaxAngle:       89.9,
		AngleStep:      1.0,
		WheelStep:      1.5,
		MinMultiplier:  0.1,
		MaxMultiplier:  5.0,
		MultiplierStep: 1.5,
		VectorScale:    0.1,
	}
}
