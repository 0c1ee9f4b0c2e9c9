package sim

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{90.0}, true},
		{"zero", State{0.0}, true},
		{"with NaN", State{math.NaN()}, false},
		{"with +Inf", State{math.Inf(1)}, false},
		{"with -Inf", State{22.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Clone(t *testing.T) {
	s := State{90.0, 22.0}
	c := s.Clone()

	c[0] = 0
	if s[0] != 90.0 {
		t.Error("Clone did not create independent copy")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"valid", Config{Dt: 1, Start: 0, End: 30}, nil},
		{"zero length run", Config{Dt: 1, Start: 5, End: 5}, nil},
		{"zero dt", Config{Dt: 0, Start: 0, End: 30}, ErrNonPositiveStep},
		{"negative dt", Config{Dt: -0.1, Start: 0, End: 30}, ErrNonPositiveStep},
		{"NaN dt", Config{Dt: math.NaN(), Start: 0, End: 30}, ErrNonPositiveStep},
		{"reversed bounds", Config{Dt: 1, Start: 10, End: 5}, ErrTimeReversed},
		{"infinite end", Config{Dt: 1, Start: 0, End: math.Inf(1)}, ErrInvalidBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Steps(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"thirty unit steps", Config{Dt: 1, Start: 0, End: 30}, 30},
		{"zero length", Config{Dt: 1, Start: 0, End: 0}, 0},
		{"fractional dt", Config{Dt: 0.1, Start: 0, End: 1}, 10},
		{"partial last step", Config{Dt: 0.4, Start: 0, End: 1}, 3},
		{"offset start", Config{Dt: 2, Start: 10, End: 20}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Steps(); got != tt.want {
				t.Errorf("Steps() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResult_Series(t *testing.T) {
	r := &Result{
		States: []State{{90, 80}, {89, 79}, {88, 78}},
		Times:  []float64{0, 1, 2},
	}

	s := r.Series(1)
	if len(s) != 3 || s[0] != 80 || s[2] != 78 {
		t.Errorf("Series(1) = %v", s)
	}

	final := r.Final()
	if final[0] != 88 {
		t.Errorf("Final() = %v", final)
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Step: 150, Time: 1.5, Wrapped: ErrInvalidState}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("SimError should unwrap to its cause")
	}
	expected := "step 150 (t=1.5000): sim: invalid state (NaN or Inf detected)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}
