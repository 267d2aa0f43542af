package sim

import (
	"errors"

	"github.com/san-kum/trajsim/internal/kinematics"
	"github.com/san-kum/trajsim/internal/projectile"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

// Sample is the simulation state recorded after one step.
type Sample struct {
	Time  float64 `json:"time"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Speed float64 `json:"speed"`
}

func (s Sample) Position() kinematics.Vec2 { return kinematics.Vec2{X: s.X, Y: s.Y} }

func sampleOf(st projectile.State) Sample {
	return Sample{
		Time:  st.Elapsed,
		X:     st.Position.X,
		Y:     st.Position.Y,
		VX:    st.Velocity.X,
		VY:    st.Velocity.Y,
		Speed: st.Speed,
	}
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample)
}

type Config struct {
	Dt              float64
	SpeedMultiplier float64
	MaxDuration     float64
	TrailCapacity   int
	Samples         int
}

func DefaultConfig() Config {
	return Config{
		Dt:              1.0 / 60,
		SpeedMultiplier: 1.0,
		MaxDuration:     60.0,
		TrailCapacity:   projectile.DefaultTrailCapacity,
		Samples:         300,
	}
}

type Result struct {
	Params      kinematics.LaunchParameters `json:"params"`
	Solution    kinematics.FlightSolution   `json:"solution"`
	SolutionErr error                       `json:"-"`
	Samples     []Sample                    `json:"samples"`
	Impacted    bool                        `json:"impacted"`
	ImpactTime  float64                     `json:"impact_time"`
	Range       float64                     `json:"range"`
	StepsTaken  int                         `json:"steps_taken"`
	Metrics     map[string]float64          `json:"metrics"`
}

// Path returns the recorded positions in order.
func (r *Result) Path() []kinematics.Vec2 {
	out := make([]kinematics.Vec2, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Position()
	}
	return out
}
