package kinematics

import (
	"iter"
	"math"
)

// StandardGravity is the fixed gravitational acceleration in m/s².
const StandardGravity = 9.81

// DisplacementFromSpeeds returns Δy = (vf² − vi²) / (2g).
// Positive means the landing point lies above the launch height.
func DisplacementFromSpeeds(vi, vf, g float64) float64 {
	return (vf*vf - vi*vi) / (2.0 * g)
}

// SolveTimeOfFlight solves y(t) = dy for the larger root.
// ok is false when the discriminant is negative. A returned time that is
// not positive is still reported with ok set; see ValidFlightTime.
func SolveTimeOfFlight(vi, angleDeg, dy, g float64) (t float64, ok bool) {
	vy0 := vi * math.Sin(radians(angleDeg))
	disc := vy0*vy0 - 2.0*g*dy
	if disc < 0 {
		return 0, false
	}
	return (vy0 + math.Sqrt(disc)) / g, true
}

// ValidFlightTime reports whether a SolveTimeOfFlight result is a usable
// forward-time impact.
func ValidFlightTime(t float64, ok bool) bool {
	return ok && t > 0
}

// LaunchVelocity splits a speed and elevation angle into components.
func LaunchVelocity(vi, angleDeg float64) Vec2 {
	rad := radians(angleDeg)
	return Vec2{X: vi * math.Cos(rad), Y: vi * math.Sin(rad)}
}

// PositionAt evaluates the closed-form position at time t.
func PositionAt(v0 Vec2, g, t float64) Vec2 {
	return Vec2{
		X: v0.X * t,
		Y: v0.Y*t - 0.5*g*t*t,
	}
}

// VelocityAt evaluates the closed-form velocity at time t.
func VelocityAt(v0 Vec2, g, t float64) Vec2 {
	return Vec2{X: v0.X, Y: v0.Y - g*t}
}

// ImpactVerticalVelocity returns the descending vertical velocity at height h
// from the energy relation vy² = vy0² − 2gh. The radicand is floored at zero.
func ImpactVerticalVelocity(vy0, g, h float64) float64 {
	return -math.Sqrt(math.Max(0, vy0*vy0-2.0*g*h))
}

// SampleTrajectory yields n+1 time-uniform points over [0, tEnd].
// The sequence can be ranged over any number of times with identical results.
// For n < 1 only the launch point is produced.
func SampleTrajectory(vi, angleDeg, g, tEnd float64, n int) iter.Seq[Vec2] {
	v0 := LaunchVelocity(vi, angleDeg)
	return func(yield func(Vec2) bool) {
		if n < 1 {
			yield(PositionAt(v0, g, 0))
			return
		}
		for i := 0; i <= n; i++ {
			t := tEnd * (float64(i) / float64(n))
			if !yield(PositionAt(v0, g, t)) {
				return
			}
		}
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
