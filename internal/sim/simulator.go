package sim

import (
	"context"
	"fmt"
)

type Simulator struct {
	sys        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(sys System, integrator Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances the system from x0 at cfg.Start to cfg.End in fixed steps,
// recording every sample. Each step produces a fresh state; recorded times
// are computed from the step index so successive samples differ by exactly
// cfg.Dt. A run with cfg.End == cfg.Start records the seed sample only.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if v, ok := s.sys.(Validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	if len(x0) != s.sys.StateDim() {
		return nil, fmt.Errorf("%w: state has %d components, system wants %d",
			ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}
	if !x0.IsValid() {
		return nil, fmt.Errorf("%w: initial state %v", ErrInvalidState, x0)
	}

	steps := cfg.Steps()
	result := &Result{
		States:  make([]State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, cfg.Start)
	s.observe(x, cfg.Start)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := cfg.Start + float64(i)*cfg.Dt
		next := s.integrator.Step(s.sys, x, t, cfg.Dt)
		if !next.IsValid() {
			return result, SimError{Step: i + 1, Time: t + cfg.Dt, Wrapped: ErrInvalidState}
		}

		x = next
		tNext := cfg.Start + float64(i+1)*cfg.Dt
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, tNext)
		s.observe(x, tNext)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) observe(x State, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, o := range s.observers {
		o.OnStep(x, t)
	}
}
