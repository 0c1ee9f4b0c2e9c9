package models

import (
	"fmt"
	"math"

	"github.com/DannyLionel/modsim/internal/sim"
)

// TwoBody models two coupled bodies (coffee and mug) exchanging heat with
// each other and independently losing heat to the environment:
//
//	dT1/dt = -k*(T1 - T2) - r1*(T1 - T_env)
//	dT2/dt = -k*(T2 - T1) - r2*(T2 - T_env)
//
// State layout: [T1, T2].
type TwoBody struct {
	Coupling float64 // k, heat exchange between the bodies
	Loss1    float64 // r1, first body's loss to ambient
	Loss2    float64 // r2, second body's loss to ambient
	Ambient  float64
}

func NewTwoBody() *TwoBody {
	return &TwoBody{
		Coupling: 0.05,
		Loss1:    0.01,
		Loss2:    0.02,
		Ambient:  22.0,
	}
}

func (b *TwoBody) StateDim() int {
	return 2
}

func (b *TwoBody) Validate() error {
	for name, v := range map[string]float64{
		"coupling": b.Coupling,
		"loss1":    b.Loss1,
		"loss2":    b.Loss2,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("twobody: %s must be non-negative, got %v", name, v)
		}
	}
	if math.IsNaN(b.Ambient) || math.IsInf(b.Ambient, 0) {
		return fmt.Errorf("twobody: ambient temperature must be finite, got %v", b.Ambient)
	}
	return nil
}

func (b *TwoBody) Derive(x sim.State, t float64) sim.State {
	t1, t2 := x[0], x[1]
	return sim.State{
		-b.Coupling*(t1-t2) - b.Loss1*(t1-b.Ambient),
		-b.Coupling*(t2-t1) - b.Loss2*(t2-b.Ambient),
	}
}
