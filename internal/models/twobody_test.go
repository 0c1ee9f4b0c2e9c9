package models_test

import (
	"context"
	"math"
	"testing"

	"github.com/DannyLionel/modsim/internal/integrators"
	"github.com/DannyLionel/modsim/internal/models"
	"github.com/DannyLionel/modsim/internal/sim"
)

func TestTwoBody_Equilibrium(t *testing.T) {
	b := models.NewTwoBody()
	b.Ambient = 22.0

	dx := b.Derive(sim.State{22.0, 22.0}, 0)
	if dx[0] != 0 || dx[1] != 0 {
		t.Errorf("expected zero derivatives at ambient, got %v", dx)
	}
}

func TestTwoBody_HeatFlowsDownhill(t *testing.T) {
	b := models.NewTwoBody()
	b.Loss1 = 0
	b.Loss2 = 0

	dx := b.Derive(sim.State{90.0, 20.0}, 0)
	if dx[0] >= 0 {
		t.Error("hot body should cool toward the cold one")
	}
	if dx[1] <= 0 {
		t.Error("cold body should warm toward the hot one")
	}
	if math.Abs(dx[0]+dx[1]) > 1e-12 {
		t.Errorf("isolated pair should conserve heat, got %v + %v", dx[0], dx[1])
	}
}

func TestTwoBody_TemperaturesConverge(t *testing.T) {
	b := models.NewTwoBody()

	s := sim.New(b, integrators.NewRK4())
	cfg := sim.Config{Dt: 0.1, Start: 0, End: 300}

	result, err := s.Run(context.Background(), sim.State{90.0, 20.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	final := result.Final()
	gap0 := math.Abs(90.0 - 20.0)
	gap := math.Abs(final[0] - final[1])
	if gap >= gap0/10 {
		t.Errorf("bodies should approach each other: initial gap %v, final gap %v", gap0, gap)
	}
	for i, v := range final {
		if math.Abs(v-b.Ambient) > gap0 {
			t.Errorf("body %d drifted away from ambient: %v", i, v)
		}
	}
}

func TestTwoBody_Validate(t *testing.T) {
	b := models.NewTwoBody()
	if err := b.Validate(); err != nil {
		t.Errorf("default model should validate: %v", err)
	}

	b.Coupling = -0.1
	if err := b.Validate(); err == nil {
		t.Error("negative coupling should fail validation")
	}
}
