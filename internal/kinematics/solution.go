package kinematics

import (
	"math"
	"slices"
)

// LaunchParameters are the inputs of a single launch. FinalSpeed is optional
// and falls back to InitialSpeed when nil.
type LaunchParameters struct {
	InitialSpeed float64  `json:"initial_speed" yaml:"initial_speed"`
	AngleDeg     float64  `json:"angle_deg" yaml:"angle_deg"`
	FinalSpeed   *float64 `json:"final_speed,omitempty" yaml:"final_speed,omitempty"`
}

func (p LaunchParameters) Gravity() float64 { return StandardGravity }

// EffectiveFinalSpeed returns FinalSpeed, or InitialSpeed when unset.
func (p LaunchParameters) EffectiveFinalSpeed() float64 {
	if p.FinalSpeed == nil {
		return p.InitialSpeed
	}
	return *p.FinalSpeed
}

// DeltaY is the target displacement derived from the two speeds.
func (p LaunchParameters) DeltaY() float64 {
	return DisplacementFromSpeeds(p.InitialSpeed, p.EffectiveFinalSpeed(), p.Gravity())
}

// Validate rejects launch speeds the simulation cannot meaningfully start with.
// The final speed is deliberately not checked.
func (p LaunchParameters) Validate() error {
	if !(p.InitialSpeed > 0) || math.IsInf(p.InitialSpeed, 0) {
		return ErrInvalidSpeed
	}
	return nil
}

// FlightSolution is the analytic reference trajectory for a launch.
type FlightSolution struct {
	TimeOfFlight float64 `json:"time_of_flight"`
	Range        float64 `json:"range"`
	DeltaY       float64 `json:"delta_y"`
	Points       []Vec2  `json:"points"`
}

// Landing returns the last sampled point.
func (s FlightSolution) Landing() Vec2 {
	if len(s.Points) == 0 {
		return Vec2{}
	}
	return s.Points[len(s.Points)-1]
}

// Solve computes the flight time, range and a sampled trajectory.
// It returns ErrNoSolution when no positive time of flight exists.
func Solve(p LaunchParameters, samples int) (FlightSolution, error) {
	g := p.Gravity()
	dy := p.DeltaY()

	t, ok := SolveTimeOfFlight(p.InitialSpeed, p.AngleDeg, dy, g)
	if !ValidFlightTime(t, ok) {
		return FlightSolution{DeltaY: dy}, ErrNoSolution
	}

	v0 := LaunchVelocity(p.InitialSpeed, p.AngleDeg)
	return FlightSolution{
		TimeOfFlight: t,
		Range:        v0.X * t,
		DeltaY:       dy,
		Points:       slices.Collect(SampleTrajectory(p.InitialSpeed, p.AngleDeg, g, t, samples)),
	}, nil
}
