package fit_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/DannyLionel/modsim/internal/fit"
	"github.com/DannyLionel/modsim/internal/integrators"
	"github.com/DannyLionel/modsim/internal/models"
	"github.com/DannyLionel/modsim/internal/sim"
)

var _ = Describe("Rate", func() {
	var cfg sim.Config

	BeforeEach(func() {
		cfg = sim.Config{Dt: 1, Start: 0, End: 30}
	})

	simulateFinal := func(rate float64) float64 {
		cooling := models.NewNewtonCooling()
		cooling.Rate = rate
		cooling.Ambient = 22

		s := sim.New(cooling, integrators.NewEuler())
		result, err := s.Run(context.Background(), sim.State{90}, cfg)
		Expect(err).NotTo(HaveOccurred())
		return result.Final()[0]
	}

	It("recovers the rate that produced an observation", func() {
		observed := simulateFinal(0.01)

		r, err := fit.Rate(context.Background(), fit.Observation{
			Init:    90,
			Ambient: 22,
			Final:   observed,
		}, fit.Options{Cfg: cfg})

		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeNumerically("~", 0.01, 1e-6))
	})

	It("recovers a faster rate for a colder observation", func() {
		observed := simulateFinal(0.12)

		r, err := fit.Rate(context.Background(), fit.Observation{
			Init:    90,
			Ambient: 22,
			Final:   observed,
		}, fit.Options{Cfg: cfg})

		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeNumerically("~", 0.12, 1e-6))
	})

	It("rejects observations outside the bracket", func() {
		_, err := fit.Rate(context.Background(), fit.Observation{
			Init:    90,
			Ambient: 22,
			Final:   95, // warmer than the initial temperature
		}, fit.Options{Cfg: cfg})

		Expect(err).To(MatchError(fit.ErrNoBracket))
	})

	It("rejects an empty rate range", func() {
		_, err := fit.Rate(context.Background(), fit.Observation{
			Init:    90,
			Ambient: 22,
			Final:   70,
		}, fit.Options{Cfg: cfg, Lo: 0.5, Hi: 0.5})

		Expect(err).To(HaveOccurred())
	})

	It("rejects an invalid run configuration", func() {
		bad := sim.Config{Dt: -1, Start: 0, End: 30}

		_, err := fit.Rate(context.Background(), fit.Observation{
			Init:    90,
			Ambient: 22,
			Final:   70,
		}, fit.Options{Cfg: bad})

		Expect(err).To(MatchError(sim.ErrNonPositiveStep))
	})

	It("returns an endpoint when it matches exactly", func() {
		observed := simulateFinal(0)

		r, err := fit.Rate(context.Background(), fit.Observation{
			Init:    90,
			Ambient: 22,
			Final:   observed,
		}, fit.Options{Cfg: cfg})

		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeZero())
	})
})
