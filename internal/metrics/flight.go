package metrics

import (
	"math"

	"github.com/san-kum/trajsim/internal/kinematics"
	"github.com/san-kum/trajsim/internal/sim"
)

// PeakHeight is the highest simulated y.
type PeakHeight struct {
	peak    float64
	samples int
}

func NewPeakHeight() *PeakHeight { return &PeakHeight{} }

func (p *PeakHeight) Name() string { return "peak_height" }

func (p *PeakHeight) Observe(s sim.Sample) {
	if p.samples == 0 || s.Y > p.peak {
		p.peak = s.Y
	}
	p.samples++
}

func (p *PeakHeight) Value() float64 { return p.peak }
func (p *PeakHeight) Reset()         { p.peak, p.samples = 0, 0 }

// ImpactSpeed is the speed of the last observed sample.
type ImpactSpeed struct {
	last float64
}

func NewImpactSpeed() *ImpactSpeed { return &ImpactSpeed{} }

func (i *ImpactSpeed) Name() string         { return "impact_speed" }
func (i *ImpactSpeed) Observe(s sim.Sample) { i.last = s.Speed }
func (i *ImpactSpeed) Value() float64       { return i.last }
func (i *ImpactSpeed) Reset()               { i.last = 0 }

// PathLength sums the straight segments between consecutive samples.
type PathLength struct {
	prev    kinematics.Vec2
	total   float64
	started bool
}

func NewPathLength() *PathLength { return &PathLength{} }

func (p *PathLength) Name() string { return "path_length" }

func (p *PathLength) Observe(s sim.Sample) {
	pos := s.Position()
	if p.started {
		p.total += pos.Sub(p.prev).Norm()
	}
	p.prev, p.started = pos, true
}

func (p *PathLength) Value() float64 { return p.total }

func (p *PathLength) Reset() {
	p.prev, p.total, p.started = kinematics.Vec2{}, 0, false
}

// ReferenceDeviation is the largest distance between a simulated sample and
// the closed-form position at the same elapsed time. The launch velocity is
// taken from the first sample of each run, so one instance can be reused
// across runs with different parameters.
type ReferenceDeviation struct {
	v0      kinematics.Vec2
	gravity float64
	maxDev  float64
	started bool
}

func NewReferenceDeviation(gravity float64) *ReferenceDeviation {
	return &ReferenceDeviation{gravity: gravity}
}

func (r *ReferenceDeviation) Name() string { return "reference_deviation" }

func (r *ReferenceDeviation) Observe(s sim.Sample) {
	if !r.started {
		r.v0 = kinematics.Vec2{X: s.VX, Y: s.VY}
		r.started = true
	}
	ref := kinematics.PositionAt(r.v0, r.gravity, s.Time)
	r.maxDev = math.Max(r.maxDev, s.Position().Sub(ref).Norm())
}

func (r *ReferenceDeviation) Value() float64 { return r.maxDev }

func (r *ReferenceDeviation) Reset() {
	r.v0, r.maxDev, r.started = kinematics.Vec2{}, 0, false
}

// Default returns the standard metric set for a launch.
func Default(p kinematics.LaunchParameters) []sim.Metric {
	return []sim.Metric{
		NewPeakHeight(),
		NewImpactSpeed(),
		NewPathLength(),
		NewReferenceDeviation(p.Gravity()),
		NewEnergyDrift(p.Gravity()),
	}
}
