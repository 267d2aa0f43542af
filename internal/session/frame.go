package session

import (
	"github.com/san-kum/trajsim/internal/kinematics"
	"github.com/san-kum/trajsim/internal/projectile"
	"github.com/san-kum/trajsim/internal/viewport"
)

// Frame is everything a renderer needs for one draw. Fields ending in a
// screen-space meaning (Trajectory, Trail, Projectile, VectorTip, Landing,
// Origin) are already in pixels.
type Frame struct {
	Area      viewport.Rect
	Transform viewport.Transform

	Params     kinematics.LaunchParameters
	FinalSpeed *float64
	InputErr   error

	Solution    kinematics.FlightSolution
	SolutionErr error

	Sim projectile.State

	Trajectory []kinematics.Vec2
	Trail      []kinematics.Vec2
	Landing    kinematics.Vec2
	Origin     kinematics.Vec2

	Projectile     kinematics.Vec2
	ShowProjectile bool
	VectorTip      kinematics.Vec2
	ShowVector     bool

	Angle       float64
	Multiplier  float64
	ShowVectors bool
	ShowTrail   bool
}

// HasInput reports whether the initial speed is usable.
func (f Frame) HasInput() bool { return f.InputErr == nil }

// HasSolution reports whether a reference trajectory exists for the inputs.
func (f Frame) HasSolution() bool { return f.InputErr == nil && f.SolutionErr == nil }
