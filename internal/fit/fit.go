package fit

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/DannyLionel/modsim/internal/integrators"
	"github.com/DannyLionel/modsim/internal/models"
	"github.com/DannyLionel/modsim/internal/sim"
)

// ErrNoBracket indicates the observed end temperature cannot be produced by
// any rate in [Lo, Hi].
var ErrNoBracket = errors.New("fit: observed temperature not bracketed by rate range")

// Observation is a measured cooling experiment: a body started at Init in an
// Ambient environment and was measured at Final when the run ended.
type Observation struct {
	Init    float64
	Ambient float64
	Final   float64
}

// Options bound the search. Zero values fall back to defaults.
type Options struct {
	Cfg     sim.Config
	Lo, Hi  float64 // rate bracket, defaults [0, 1]
	Tol     float64 // bracket width to stop at, default 1e-9
	MaxIter int     // default 200
}

func (o Options) withDefaults() Options {
	if o.Hi == 0 && o.Lo == 0 {
		o.Hi = 1.0
	}
	if o.Tol == 0 {
		o.Tol = 1e-9
	}
	if o.MaxIter == 0 {
		o.MaxIter = 200
	}
	return o
}

// Rate finds, by bisection, the rate constant whose simulated end temperature
// matches the observation. The residual end(r) - Final is monotone in r, so a
// sign change over [Lo, Hi] pins the answer.
func Rate(ctx context.Context, obs Observation, opts Options) (float64, error) {
	opts = opts.withDefaults()
	if opts.Hi <= opts.Lo {
		return 0, fmt.Errorf("fit: rate range [%v, %v] is empty", opts.Lo, opts.Hi)
	}
	if err := opts.Cfg.Validate(); err != nil {
		return 0, err
	}

	residual := func(r float64) (float64, error) {
		end, err := endTemperature(ctx, obs, r, opts.Cfg)
		if err != nil {
			return 0, err
		}
		return end - obs.Final, nil
	}

	fLo, err := residual(opts.Lo)
	if err != nil {
		return 0, err
	}
	fHi, err := residual(opts.Hi)
	if err != nil {
		return 0, err
	}
	if fLo == 0 {
		return opts.Lo, nil
	}
	if fHi == 0 {
		return opts.Hi, nil
	}
	if fLo*fHi > 0 {
		return 0, fmt.Errorf("%w: residuals %v and %v at [%v, %v]",
			ErrNoBracket, fLo, fHi, opts.Lo, opts.Hi)
	}

	lo, hi := opts.Lo, opts.Hi
	for i := 0; i < opts.MaxIter && hi-lo > opts.Tol; i++ {
		mid := lo + (hi-lo)/2
		fMid, err := residual(mid)
		if err != nil {
			return 0, err
		}
		if fMid == 0 {
			return mid, nil
		}
		if math.Signbit(fMid) == math.Signbit(fLo) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}

	return lo + (hi-lo)/2, nil
}

func endTemperature(ctx context.Context, obs Observation, rate float64, cfg sim.Config) (float64, error) {
	cooling := models.NewNewtonCooling()
	cooling.Rate = rate
	cooling.Ambient = obs.Ambient

	s := sim.New(cooling, integrators.NewEuler())
	result, err := s.Run(ctx, sim.State{obs.Init}, cfg)
	if err != nil {
		return 0, err
	}
	return result.Final()[0], nil
}
