package metrics

import (
	"math"

	"github.com/san-kum/trajsim/internal/sim"
)

// EnergyDrift tracks the largest change in specific mechanical energy
// (½v² + g·y, J/kg) relative to the first observed sample.
type EnergyDrift struct {
	name     string
	gravity  float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(gravity float64) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", gravity: gravity}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s sim.Sample) {
	energy := 0.5*s.Speed*s.Speed + e.gravity*s.Y
	if e.samples == 0 {
		e.initial = energy
	}
	e.maxDrift = math.Max(e.maxDrift, math.Abs(energy-e.initial))
	e.samples++
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial, e.maxDrift = 0, 0
	e.samples = 0
}
