// Package session runs the per-frame pipeline between the user interface and
// the physics core.
//
// Each frame follows a fixed order: pending commands are applied, the
// simulation advances by the frame delta, the reference trajectory and view
// transform are recomputed, and everything is projected to screen space.
// All UI state lives in the [Session] value; nothing is global.
package session

import (
	"fmt"
	"math"

	"github.com/san-kum/trajsim/internal/kinematics"
	"github.com/san-kum/trajsim/internal/projectile"
	"github.com/san-kum/trajsim/internal/viewport"
)

const DefaultAngle = 45.0

type Session struct {
	settings Settings
	sim      *projectile.Simulation

	vi, vf *float64

	angle       float64
	multiplier  float64
	showVectors bool
	showTrail   bool
}

func New(settings Settings) *Session {
	return &Session{
		settings:    settings,
		sim:         projectile.New(settings.TrailCapacity),
		angle:       DefaultAngle,
		multiplier:  1.0,
		showVectors: true,
		showTrail:   true,
	}
}

// SetInputs replaces the current speeds. nil means the field is empty.
func (s *Session) SetInputs(vi, vf *float64) {
	s.vi, s.vf = vi, vf
}

func (s *Session) SetAngle(deg float64) {
	s.angle = clamp(deg, s.settings.MinAngle, s.settings.MaxAngle)
}

func (s *Session) AdjustAngle(delta float64) {
	s.SetAngle(s.angle + delta)
}

// Scroll turns the angle by wheel notches.
func (s *Session) Scroll(notches float64) {
	s.AdjustAngle(notches * s.settings.WheelStep)
}

func (s *Session) SetMultiplier(m float64) {
	s.multiplier = clamp(m, s.settings.MinMultiplier, s.settings.MaxMultiplier)
}

// SetLayout changes the plot area, e.g. after a resize.
func (s *Session) SetLayout(area viewport.Rect, m viewport.Margins) {
	s.settings.Area = area
	s.settings.Margins = m
}

func (s *Session) Angle() float64                     { return s.angle }
func (s *Session) Multiplier() float64                { return s.multiplier }
func (s *Session) ShowVectors() bool                  { return s.showVectors }
func (s *Session) ShowTrail() bool                    { return s.showTrail }
func (s *Session) Settings() Settings                 { return s.settings }
func (s *Session) Simulation() *projectile.Simulation { return s.sim }

// Params builds launch parameters from the current inputs.
// It fails with kinematics.ErrInvalidSpeed when the initial speed is missing
// or not positive.
func (s *Session) Params() (kinematics.LaunchParameters, error) {
	if s.vi == nil {
		return kinematics.LaunchParameters{}, kinematics.ErrInvalidSpeed
	}
	p := kinematics.LaunchParameters{
		InitialSpeed: *s.vi,
		AngleDeg:     s.angle,
		FinalSpeed:   s.vf,
	}
	if err := p.Validate(); err != nil {
		return kinematics.LaunchParameters{}, err
	}
	return p, nil
}

// Apply executes a single command. Only Launch can fail, and only when the
// inputs are invalid; the simulation is left untouched in that case.
func (s *Session) Apply(cmd Command) error {
	switch cmd {
	case Launch:
		p, err := s.Params()
		if err != nil {
			return err
		}
		s.sim.Launch(p.InitialSpeed, p.AngleDeg, p.DeltaY())
	case TogglePause:
		s.sim.TogglePause()
	case Stop:
		s.sim.Stop()
	case SpeedUp:
		s.SetMultiplier(s.multiplier * s.settings.MultiplierStep)
	case SlowDown:
		s.SetMultiplier(s.multiplier / s.settings.MultiplierStep)
	case AngleUp:
		s.AdjustAngle(s.settings.AngleStep)
	case AngleDown:
		s.AdjustAngle(-s.settings.AngleStep)
	case ToggleVectors:
		s.showVectors = !s.showVectors
	case ToggleTrail:
		s.showTrail = !s.showTrail
	default:
		return fmt.Errorf("session: unknown command %d", cmd)
	}
	return nil
}

// Step advances the simulation by dt seconds of wall time and returns the
// resulting frame.
func (s *Session) Step(dt float64) Frame {
	s.sim.Update(dt, s.multiplier)
	return s.Frame()
}

// Frame recomputes the reference trajectory and view without advancing time.
func (s *Session) Frame() Frame {
	f := Frame{
		Area:        s.settings.Area,
		Angle:       s.angle,
		Multiplier:  s.multiplier,
		ShowVectors: s.showVectors,
		ShowTrail:   s.showTrail,
		Sim:         s.sim.Snapshot(),
		FinalSpeed:  s.vf,
	}

	var interest []kinematics.Vec2

	p, err := s.Params()
	f.InputErr = err
	if err == nil {
		f.Params = p
		f.Solution, f.SolutionErr = kinematics.Solve(p, s.settings.Samples)
		interest = append(interest, f.Solution.Points...)
	}

	trail := s.sim.Trail()
	interest = append(interest, trail...)
	pos := s.sim.Position()
	if !pos.IsZero() {
		interest = append(interest, pos)
	}

	f.Transform = viewport.Compute(interest, s.settings.Area, s.settings.Margins)
	f.Origin = f.Transform.WorldToScreen(kinematics.Vec2{})

	if f.HasSolution() {
		f.Trajectory = f.Transform.Project(f.Solution.Points)
		f.Landing = f.Transform.WorldToScreen(f.Solution.Landing())
	}
	if s.showTrail {
		f.Trail = f.Transform.Project(trail)
	}

	f.ShowProjectile = f.Sim.Status != projectile.Stopped || !pos.IsZero()
	f.Projectile = f.Transform.WorldToScreen(pos)

	vel := s.sim.Velocity()
	if s.showVectors && f.Sim.Status != projectile.Stopped && !vel.IsZero() {
		f.ShowVector = true
		f.VectorTip = kinematics.Vec2{
			X: f.Projectile.X + vel.X*s.settings.VectorScale,
			Y: f.Projectile.Y - vel.Y*s.settings.VectorScale,
		}
	}

	return f
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
