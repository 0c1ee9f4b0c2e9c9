package metrics

import (
	"github.com/DannyLionel/modsim/internal/sim"
)

// TimeAbove accumulates the simulated time the first state component spends
// above a threshold (e.g. the window a drink stays hot enough to enjoy).
type TimeAbove struct {
	name      string
	threshold float64
	total     float64
	lastTime  float64
	lastAbove bool
	samples   int
}

func NewTimeAbove(threshold float64) *TimeAbove {
	return &TimeAbove{
		name:      "time_above",
		threshold: threshold,
	}
}

func (w *TimeAbove) Name() string { return w.name }

func (w *TimeAbove) Observe(x sim.State, t float64) {
	if len(x) == 0 {
		return
	}
	if w.samples > 0 && w.lastAbove {
		w.total += t - w.lastTime
	}
	w.lastTime = t
	w.lastAbove = x[0] > w.threshold
	w.samples++
}

func (w *TimeAbove) Value() float64 {
	return w.total
}

func (w *TimeAbove) Reset() {
	w.total = 0
	w.lastTime = 0
	w.lastAbove = false
	w.samples = 0
}
