package sim

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is a continuous-time model described by its derivative.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Validatable systems are checked before a run starts.
type Validatable interface {
	Validate() error
}

type Integrator interface {
	Step(sys System, x State, t float64, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

// Config bounds a single run: fixed step dt from Start to End inclusive.
type Config struct {
	Dt    float64
	Start float64
	End   float64
}

func DefaultConfig() Config {
	return Config{
		Dt:    1.0,
		Start: 0.0,
		End:   30.0,
	}
}

func (c Config) Validate() error {
	if math.IsNaN(c.Dt) || math.IsInf(c.Dt, 0) || c.Dt <= 0 {
		return fmt.Errorf("%w: got %v", ErrNonPositiveStep, c.Dt)
	}
	if math.IsNaN(c.Start) || math.IsInf(c.Start, 0) || math.IsNaN(c.End) || math.IsInf(c.End, 0) {
		return fmt.Errorf("%w: start=%v end=%v", ErrInvalidBounds, c.Start, c.End)
	}
	if c.End < c.Start {
		return fmt.Errorf("%w: start=%v end=%v", ErrTimeReversed, c.Start, c.End)
	}
	return nil
}

// Steps returns the number of updates applied over [Start, End].
// The recorded trajectory has Steps()+1 samples.
func (c Config) Steps() int {
	return int(math.Ceil((c.End - c.Start) / c.Dt))
}

// Result is the recorded trajectory of a run: one sample per tick,
// times strictly increasing by Dt, seeded with the initial state.
type Result struct {
	States  []State
	Times   []float64
	Metrics map[string]float64
}

func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// Series extracts component i of every sample, for plotting.
func (r *Result) Series(i int) []float64 {
	out := make([]float64, len(r.States))
	for j, s := range r.States {
		if i < len(s) {
			out[j] = s[i]
		}
	}
	return out
}
