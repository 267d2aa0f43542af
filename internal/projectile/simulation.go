// Package projectile holds the state machine for a single simulated launch.
//
// A [Simulation] moves between Stopped, Running and Paused. Each Update
// evaluates the closed-form equations at the new elapsed time, so the
// simulated path carries no integration drift and matches the reference
// trajectory exactly up to the impact snap.
package projectile

import (
	"github.com/san-kum/trajsim/internal/kinematics"
)

// State is a read-only snapshot of a Simulation.
type State struct {
	Status          Status          `json:"status"`
	Elapsed         float64         `json:"elapsed"`
	Position        kinematics.Vec2 `json:"position"`
	Velocity        kinematics.Vec2 `json:"velocity"`
	InitialVelocity kinematics.Vec2 `json:"initial_velocity"`
	Speed           float64         `json:"speed"`
	ImpactTime      float64         `json:"impact_time"`
	HasImpact       bool            `json:"has_impact"`
	Range           float64         `json:"range"`
}

type Simulation struct {
	gravity float64
	running bool
	paused  bool
	elapsed float64

	v0  kinematics.Vec2
	pos kinematics.Vec2
	vel kinematics.Vec2

	trail *Trail

	impactTime float64
	hasImpact  bool
	rangeM     float64
}

// New creates a stopped simulation under standard gravity.
func New(trailCapacity int) *Simulation {
	return &Simulation{
		gravity: kinematics.StandardGravity,
		trail:   NewTrail(trailCapacity),
	}
}

// Launch resets the simulation and starts a new flight. dy is the target
// landing height. The speed is not validated here; a non-positive speed
// simply never produces an impact.
func (s *Simulation) Launch(vi, angleDeg, dy float64) {
	s.reset()

	s.v0 = kinematics.LaunchVelocity(vi, angleDeg)
	s.vel = s.v0
	s.running = true
	s.trail.Push(kinematics.Vec2{})

	t, ok := kinematics.SolveTimeOfFlight(vi, angleDeg, dy, s.gravity)
	if kinematics.ValidFlightTime(t, ok) {
		s.impactTime = t
		s.hasImpact = true
		s.rangeM = s.v0.X * t
	}
}

func (s *Simulation) reset() {
	s.running, s.paused = false, false
	s.elapsed = 0
	s.v0, s.pos, s.vel = kinematics.Vec2{}, kinematics.Vec2{}, kinematics.Vec2{}
	s.trail.Reset()
	s.impactTime, s.hasImpact = 0, false
	s.rangeM = 0
}

// Update advances elapsed time by dt*speedMultiplier while running.
func (s *Simulation) Update(dt, speedMultiplier float64) {
	if !s.running || s.paused {
		return
	}

	s.elapsed += dt * speedMultiplier
	s.pos = kinematics.PositionAt(s.v0, s.gravity, s.elapsed)
	s.vel = kinematics.VelocityAt(s.v0, s.gravity, s.elapsed)
	s.trail.Push(s.pos)

	if s.hasImpact && s.elapsed >= s.impactTime {
		s.running = false
		s.elapsed = s.impactTime
		s.pos = kinematics.Vec2{X: s.rangeM, Y: 0}
		s.vel = kinematics.Vec2{
			X: s.v0.X,
			Y: kinematics.ImpactVerticalVelocity(s.v0.Y, s.gravity, s.pos.Y),
		}
		s.trail.ReplaceLast(s.pos)
	}
}

// TogglePause flips pause only while running.
func (s *Simulation) TogglePause() {
	if s.running {
		s.paused = !s.paused
	}
}

// Stop ends the run but keeps position and trail visible.
func (s *Simulation) Stop() {
	s.running = false
	s.paused = false
}

func (s *Simulation) Status() Status {
	switch {
	case !s.running:
		return Stopped
	case s.paused:
		return Paused
	default:
		return Running
	}
}

func (s *Simulation) Speed() float64 { return s.vel.Norm() }

func (s *Simulation) Elapsed() float64                 { return s.elapsed }
func (s *Simulation) Position() kinematics.Vec2        { return s.pos }
func (s *Simulation) Velocity() kinematics.Vec2        { return s.vel }
func (s *Simulation) InitialVelocity() kinematics.Vec2 { return s.v0 }
func (s *Simulation) Range() float64                   { return s.rangeM }
func (s *Simulation) Gravity() float64                 { return s.gravity }

// ImpactTime reports the solved impact time, if any.
func (s *Simulation) ImpactTime() (float64, bool) {
	return s.impactTime, s.hasImpact
}

// Trail returns the recent positions, oldest first.
func (s *Simulation) Trail() []kinematics.Vec2 {
	return s.trail.Points()
}

func (s *Simulation) TrailCapacity() int { return s.trail.Cap() }

func (s *Simulation) Snapshot() State {
	return State{
		Status:          s.Status(),
		Elapsed:         s.elapsed,
		Position:        s.pos,
		Velocity:        s.vel,
		InitialVelocity: s.v0,
		Speed:           s.Speed(),
		ImpactTime:      s.impactTime,
		HasImpact:       s.hasImpact,
		Range:           s.rangeM,
	}
}
