package metrics

import (
	"math"

	"github.com/DannyLionel/modsim/internal/sim"
)

// AmbientGap reports the fraction of the initial temperature gap to ambient
// still remaining at the last observed sample. 1 means no progress, 0 means
// fully relaxed.
type AmbientGap struct {
	name    string
	ambient float64
	first   float64
	last    float64
	samples int
}

func NewAmbientGap(ambient float64) *AmbientGap {
	return &AmbientGap{
		name:    "ambient_gap",
		ambient: ambient,
	}
}

func (g *AmbientGap) Name() string { return g.name }

func (g *AmbientGap) Observe(x sim.State, t float64) {
	if len(x) == 0 {
		return
	}
	if g.samples == 0 {
		g.first = x[0]
	}
	g.last = x[0]
	g.samples++
}

func (g *AmbientGap) Value() float64 {
	initial := math.Abs(g.first - g.ambient)
	if g.samples == 0 || initial == 0 {
		return 0
	}
	return math.Abs(g.last-g.ambient) / initial
}

func (g *AmbientGap) Reset() {
	g.first = 0
	g.last = 0
	g.samples = 0
}
