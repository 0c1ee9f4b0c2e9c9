package models

import (
	"fmt"
	"math"

	"github.com/DannyLionel/modsim/internal/sim"
)

// NewtonCooling models dT/dt = -r * (T - T_env): a body relaxing toward
// ambient temperature at a rate proportional to the gap.
type NewtonCooling struct {
	Rate    float64 // 1/time, >= 0
	Ambient float64 // degrees
}

func NewNewtonCooling() *NewtonCooling {
	return &NewtonCooling{
		Rate:    0.01,
		Ambient: 22.0,
	}
}

func (c *NewtonCooling) StateDim() int {
	return 1
}

func (c *NewtonCooling) Validate() error {
	if math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) || c.Rate < 0 {
		return fmt.Errorf("cooling: rate must be non-negative, got %v", c.Rate)
	}
	if math.IsNaN(c.Ambient) || math.IsInf(c.Ambient, 0) {
		return fmt.Errorf("cooling: ambient temperature must be finite, got %v", c.Ambient)
	}
	return nil
}

func (c *NewtonCooling) Derive(x sim.State, t float64) sim.State {
	return sim.State{-c.Rate * (x[0] - c.Ambient)}
}

// Exact returns the closed-form solution at time t for initial temperature
// t0Temp at time zero. Used to check integrator accuracy.
func (c *NewtonCooling) Exact(t0Temp, t float64) float64 {
	return c.Ambient + (t0Temp-c.Ambient)*math.Exp(-c.Rate*t)
}
