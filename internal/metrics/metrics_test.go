package metrics

import (
	"math"
	"testing"

	"github.com/DannyLionel/modsim/internal/sim"
)

func TestMeanTemperature(t *testing.T) {
	m := NewMeanTemperature()

	m.Observe(sim.State{90}, 0)
	m.Observe(sim.State{80}, 1)
	m.Observe(sim.State{70}, 2)

	if m.Value() != 80 {
		t.Errorf("expected mean 80, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %v", m.Value())
	}
}

func TestTimeAbove(t *testing.T) {
	w := NewTimeAbove(50)

	// above for the first two intervals, below afterwards
	w.Observe(sim.State{90}, 0)
	w.Observe(sim.State{70}, 1)
	w.Observe(sim.State{55}, 2)
	w.Observe(sim.State{40}, 3)
	w.Observe(sim.State{30}, 4)

	if math.Abs(w.Value()-3.0) > 1e-12 {
		t.Errorf("expected 3 time units above threshold, got %v", w.Value())
	}
}

func TestTimeAbove_NeverAbove(t *testing.T) {
	w := NewTimeAbove(100)

	w.Observe(sim.State{90}, 0)
	w.Observe(sim.State{80}, 1)

	if w.Value() != 0 {
		t.Errorf("expected 0, got %v", w.Value())
	}
}

func TestAmbientGap(t *testing.T) {
	g := NewAmbientGap(22)

	g.Observe(sim.State{90}, 0)
	g.Observe(sim.State{56}, 1)

	// gap shrank from 68 to 34
	if math.Abs(g.Value()-0.5) > 1e-12 {
		t.Errorf("expected remaining gap 0.5, got %v", g.Value())
	}
}

func TestAmbientGap_StartsAtAmbient(t *testing.T) {
	g := NewAmbientGap(22)

	g.Observe(sim.State{22}, 0)
	g.Observe(sim.State{22}, 1)

	if g.Value() != 0 {
		t.Errorf("expected 0 for degenerate gap, got %v", g.Value())
	}
}
