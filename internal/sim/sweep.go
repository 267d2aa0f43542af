package sim

import (
	"context"

	"github.com/san-kum/trajsim/internal/kinematics"
)

type SweepPoint struct {
	Angle  float64
	Result *Result
}

// Sweep repeats a launch at each angle, one run after another. Metrics are
// reset between runs and take any per-launch state from the samples they
// observe, so each Result carries its own values.
func (r *Runner) Sweep(ctx context.Context, base kinematics.LaunchParameters, angles []float64, cfg Config) ([]SweepPoint, error) {
	points := make([]SweepPoint, 0, len(angles))
	for _, a := range angles {
		p := base
		p.AngleDeg = a
		res, err := r.Run(ctx, p, cfg)
		if err != nil {
			return points, err
		}
		points = append(points, SweepPoint{Angle: a, Result: res})
	}
	return points, nil
}

// Angles returns n evenly spaced angles over [from, to].
func Angles(from, to float64, n int) []float64 {
	if n < 2 {
		return []float64{from}
	}
	out := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	out[n-1] = to
	return out
}
