package metrics

import (
	"github.com/DannyLionel/modsim/internal/sim"
)

// MeanTemperature averages the first state component over all samples.
type MeanTemperature struct {
	name    string
	samples int
	total   float64
}

func NewMeanTemperature() *MeanTemperature {
	return &MeanTemperature{name: "mean_temp"}
}

func (m *MeanTemperature) Name() string { return m.name }

func (m *MeanTemperature) Observe(x sim.State, t float64) {
	if len(x) == 0 {
		return
	}
	m.total += x[0]
	m.samples++
}

func (m *MeanTemperature) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanTemperature) Reset() {
	m.total = 0
	m.samples = 0
}
