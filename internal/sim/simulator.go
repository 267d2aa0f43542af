package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/san-kum/trajsim/internal/kinematics"
	"github.com/san-kum/trajsim/internal/projectile"
)

// Runner drives a projectile simulation at a fixed frame time without a UI.
type Runner struct {
	metrics   []Metric
	observers []Observer
}

func New() *Runner {
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run launches once and steps until impact or cfg.MaxDuration of simulated
// time, whichever comes first. Launches with no solution always run to the cap.
func (r *Runner) Run(ctx context.Context, p kinematics.LaunchParameters, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sol, solErr := kinematics.Solve(p, cfg.Samples)

	result := &Result{
		Params:      p,
		Solution:    sol,
		SolutionErr: solErr,
		Samples:     make([]Sample, 0, sampleCapacity(sol.TimeOfFlight, cfg)),
		Metrics:     make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	s := projectile.New(cfg.TrailCapacity)
	s.Launch(p.InitialSpeed, p.AngleDeg, p.DeltaY())
	log.Debug("launch", "vi", p.InitialSpeed, "angle", p.AngleDeg, "dy", p.DeltaY())

	r.record(result, sampleOf(s.Snapshot()))

	for s.Status() == projectile.Running && s.Elapsed() < cfg.MaxDuration {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.Update(cfg.Dt, cfg.SpeedMultiplier)
		result.StepsTaken++
		r.record(result, sampleOf(s.Snapshot()))
	}

	result.ImpactTime, result.Impacted = s.ImpactTime()
	result.Impacted = result.Impacted && s.Status() == projectile.Stopped
	result.Range = s.Range()
	if result.Impacted {
		log.Debug("impact", "t", result.ImpactTime, "range", result.Range, "steps", result.StepsTaken)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (r *Runner) record(result *Result, smp Sample) {
	result.Samples = append(result.Samples, smp)
	for _, m := range r.metrics {
		m.Observe(smp)
	}
	for _, obs := range r.observers {
		obs.OnStep(smp)
	}
}

// maxPrealloc bounds the up-front sample allocation; longer runs grow by append.
const maxPrealloc = 1 << 16

// sampleCapacity estimates how many samples a run records: up to impact when
// one is known, otherwise up to the duration cap.
func sampleCapacity(timeOfFlight float64, cfg Config) int {
	span := cfg.MaxDuration
	if timeOfFlight > 0 {
		span = math.Min(timeOfFlight, cfg.MaxDuration)
	}
	steps := span/(cfg.Dt*cfg.SpeedMultiplier) + 2
	if steps > maxPrealloc {
		return maxPrealloc
	}
	return int(steps)
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.SpeedMultiplier <= 0 {
		return fmt.Errorf("%w: speed multiplier must be positive, got %f", ErrInvalidConfig, cfg.SpeedMultiplier)
	}
	if cfg.MaxDuration <= 0 {
		return fmt.Errorf("%w: max duration must be positive, got %f", ErrInvalidConfig, cfg.MaxDuration)
	}
	return nil
}
