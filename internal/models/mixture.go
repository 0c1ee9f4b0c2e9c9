package models

import (
	"fmt"
	"math"
)

// Liquid is a volume of liquid at a uniform temperature.
type Liquid struct {
	Volume      float64 // milliliters, > 0
	Temperature float64 // degrees
}

func (l Liquid) validate() error {
	if math.IsNaN(l.Volume) || math.IsInf(l.Volume, 0) || l.Volume <= 0 {
		return fmt.Errorf("mixture: volume must be positive, got %v", l.Volume)
	}
	if math.IsNaN(l.Temperature) || math.IsInf(l.Temperature, 0) {
		return fmt.Errorf("mixture: temperature must be finite, got %v", l.Temperature)
	}
	return nil
}

// Mix blends two liquids of equal density and specific heat. The result's
// temperature is the volume-weighted average of the inputs.
func Mix(a, b Liquid) (Liquid, error) {
	if err := a.validate(); err != nil {
		return Liquid{}, err
	}
	if err := b.validate(); err != nil {
		return Liquid{}, err
	}

	total := a.Volume + b.Volume
	return Liquid{
		Volume:      total,
		Temperature: (a.Volume*a.Temperature + b.Volume*b.Temperature) / total,
	}, nil
}
