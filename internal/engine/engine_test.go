package engine_test

import (
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/shearlab/internal/config"
	"github.com/san-kum/shearlab/internal/engine"
	"github.com/san-kum/shearlab/internal/shear"
)

// threeFloorConfig keeps the numbers round so the closed-form chain
// frequencies apply: m = 1000 kg, k = 5e5 N/m per story.
func threeFloorConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Floors = 3
	cfg.FloorMass = 1000
	cfg.Stiffness = 5e5
	return cfg
}

var _ = Describe("Engine", func() {
	Describe("bare frame", func() {
		It("matches the closed-form chain frequencies", func() {
			cfg := threeFloorConfig()
			cfg.DampingRatio = 0

			eng, err := engine.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			modes := eng.Modes()
			Expect(modes).To(HaveLen(3))
			for j := 1; j <= 3; j++ {
				s := math.Sin(float64(2*j-1) * math.Pi / 14)
				want := math.Sqrt(4 * 500 * s * s)
				Expect(modes[j-1].Omega).To(BeNumerically("~", want, 1e-8))
			}
		})

		It("reports frequencies in hertz with mass-normalized shapes", func() {
			cfg := threeFloorConfig()

			eng, err := engine.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			hz := eng.NaturalFrequencies()
			Expect(hz).To(HaveLen(3))
			for i, m := range eng.Modes() {
				Expect(hz[i]).To(BeNumerically("~", m.Omega/(2*math.Pi), 1e-12))
			}

			sys := eng.System()
			for _, s := range eng.ModeShapes() {
				Expect(s).To(HaveLen(3))
				norm := 0.0
				for d, v := range s {
					norm += v * sys.M.At(d, d) * v
				}
				Expect(norm).To(BeNumerically("~", 1.0, 1e-9))
			}
		})

		It("fits zero coefficients for zero target damping", func() {
			cfg := threeFloorConfig()
			cfg.DampingRatio = 0

			eng, err := engine.New(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(eng.Coefficients().Alpha).To(BeZero())
			Expect(eng.Coefficients().Beta).To(BeZero())

			sys := eng.System()
			for i := 0; i < sys.DOF(); i++ {
				for j := 0; j < sys.DOF(); j++ {
					Expect(sys.C.At(i, j)).To(BeZero())
				}
			}
		})

		It("builds C as the fitted Rayleigh combination", func() {
			cfg := threeFloorConfig()
			cfg.DampingRatio = 0.03

			eng, err := engine.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			c := eng.Coefficients()
			sys := eng.System()
			for i := 0; i < sys.DOF(); i++ {
				for j := 0; j < sys.DOF(); j++ {
					want := c.Alpha*sys.M.At(i, j) + c.Beta*sys.K.At(i, j)
					Expect(sys.C.At(i, j)).To(BeNumerically("~", want, 1e-12))
				}
			}
		})
	})

	Describe("curated absorbers", func() {
		It("extends the system by one degree of freedom per absorber", func() {
			cfg := threeFloorConfig()
			cfg.AbsorberMode = config.AbsorberCurated
			cfg.Absorbers = []config.AbsorberConfig{
				{MassKg: 50, StiffnessNM: 250, DampingNSM: 10, Floor: 2},
			}

			eng, err := engine.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			sys := eng.System()
			Expect(sys.DOF()).To(Equal(4))
			Expect(sys.Floors()).To(Equal(3))
			Expect(sys.K.At(1, 3)).To(Equal(-250.0))
			Expect(sys.K.At(3, 3)).To(Equal(250.0))
			Expect(sys.M.At(3, 3)).To(Equal(50.0))
			Expect(eng.Absorbers()).To(HaveLen(1))
		})

		It("splits the fundamental when tuned to it", func() {
			cfg := threeFloorConfig()
			bare, err := engine.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			w1 := bare.BaseModes()[0].Omega
			cfg2 := threeFloorConfig()
			cfg2.AbsorberMode = config.AbsorberCurated
			cfg2.Absorbers = []config.AbsorberConfig{
				{MassKg: 60, StiffnessNM: 60 * w1 * w1, Floor: 3},
			}

			eng, err := engine.New(cfg2)
			Expect(err).NotTo(HaveOccurred())
			Expect(eng.Modes()[0].Omega).To(BeNumerically("<", w1))
			Expect(eng.Modes()[1].Omega).To(BeNumerically(">", w1))
		})
	})

	Describe("random absorbers", func() {
		It("reproduces the same set from the same seed", func() {
			cfg := threeFloorConfig()
			cfg.AbsorberMode = config.AbsorberRandom
			cfg.Random.Count = 3
			cfg.Random.Seed = 42

			a, err := engine.New(cfg)
			Expect(err).NotTo(HaveOccurred())
			b, err := engine.New(cfg.Clone())
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Absorbers()).To(Equal(b.Absorbers()))
			Expect(a.Modes()[0].Omega).To(Equal(b.Modes()[0].Omega))
		})

		It("draws a different set from a different seed", func() {
			cfg := threeFloorConfig()
			cfg.AbsorberMode = config.AbsorberRandom
			cfg.Random.Count = 3
			cfg.Random.Seed = 1

			other := cfg.Clone()
			other.Random.Seed = 2

			a, err := engine.New(cfg)
			Expect(err).NotTo(HaveOccurred())
			b, err := engine.New(other)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Absorbers()).NotTo(Equal(b.Absorbers()))
		})

		It("attaches generated absorbers before the curated list", func() {
			cfg := threeFloorConfig()
			cfg.AbsorberMode = config.AbsorberRandom
			cfg.Random.Count = 2
			cfg.Absorbers = []config.AbsorberConfig{
				{MassKg: 111, StiffnessNM: 2222, DampingNSM: 33, Floor: 1},
			}

			eng, err := engine.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			got := eng.Absorbers()
			Expect(got).To(HaveLen(3))
			Expect(got[2]).To(Equal(shear.Absorber{Mass: 111, Stiffness: 2222, Damping: 33, Floor: 1}))
			Expect(eng.System().DOF()).To(Equal(6))
		})
	})

	Describe("Run", func() {
		It("sweeps the configured grid over floor rows only by default", func() {
			cfg := threeFloorConfig()
			cfg.AbsorberMode = config.AbsorberCurated
			cfg.Absorbers = []config.AbsorberConfig{
				{MassKg: 40, StiffnessNM: 4000, DampingNSM: 60, Floor: 3},
			}
			cfg.Sweep = config.SweepConfig{StartRad: 1, EndRad: 60, StepRad: 0.5, OnSingular: "skip"}

			eng, err := engine.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			res, err := eng.Run()
			Expect(err).NotTo(HaveOccurred())

			grid, err := cfg.Grid()
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Response.Omegas).To(HaveLen(len(grid)))
			Expect(res.Response.Displacements).To(HaveLen(3))
			Expect(res.Floors).To(Equal(3))
			Expect(res.DOF).To(Equal(4))
			Expect(res.Absorbers).To(HaveLen(1))
		})

		It("answers an arbitrary grid through FrequencyResponse", func() {
			cfg := threeFloorConfig()
			cfg.DampingRatio = 0.02

			eng, err := engine.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			grid := []float64{0.5, 9, 12, 40}
			res, err := eng.FrequencyResponse(grid)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Omegas).To(Equal(grid))
			Expect(res.Displacements).To(HaveLen(3))
			for _, curve := range res.Displacements {
				Expect(curve).To(HaveLen(len(grid)))
			}
		})

		It("keeps absorber rows when asked to", func() {
			cfg := threeFloorConfig()
			cfg.AbsorberMode = config.AbsorberCurated
			cfg.Absorbers = []config.AbsorberConfig{
				{MassKg: 40, StiffnessNM: 4000, DampingNSM: 60, Floor: 3},
			}
			cfg.Output.IncludeAbsorbers = true

			eng, err := engine.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			res, err := eng.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Response.Displacements).To(HaveLen(4))
		})
	})

	Describe("validation", func() {
		It("rejects a meaningless configuration before assembly", func() {
			cfg := threeFloorConfig()
			cfg.Floors = 0

			_, err := engine.New(cfg)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, shear.ErrConfiguration)).To(BeTrue())
		})
	})
})

var _ = Describe("RandomAbsorbers", func() {
	rc := config.RandomConfig{
		Count:           5,
		MassFracMin:     0.01,
		MassFracMax:     0.02,
		TuningMin:       0.9,
		TuningMax:       1.1,
		DampingRatioMin: 0.05,
		DampingRatioMax: 0.1,
	}

	It("stays inside the configured ranges", func() {
		rng := rand.New(rand.NewSource(7))
		total, omega1 := 36000.0, 15.0

		for _, a := range engine.RandomAbsorbers(rc, 3, total, omega1, rng) {
			Expect(a.Floor).To(And(BeNumerically(">=", 1), BeNumerically("<=", 3)))
			Expect(a.Mass).To(And(
				BeNumerically(">=", rc.MassFracMin*total),
				BeNumerically("<=", rc.MassFracMax*total),
			))

			omega := math.Sqrt(a.Stiffness / a.Mass)
			Expect(omega).To(And(
				BeNumerically(">=", rc.TuningMin*omega1-1e-9),
				BeNumerically("<=", rc.TuningMax*omega1+1e-9),
			))

			zeta := a.Damping / (2 * a.Mass * omega)
			Expect(zeta).To(And(
				BeNumerically(">=", rc.DampingRatioMin-1e-9),
				BeNumerically("<=", rc.DampingRatioMax+1e-9),
			))
		}
	})

	It("is a pure function of its source", func() {
		a := engine.RandomAbsorbers(rc, 3, 36000, 15, rand.New(rand.NewSource(99)))
		b := engine.RandomAbsorbers(rc, 3, 36000, 15, rand.New(rand.NewSource(99)))
		Expect(a).To(Equal(b))
	})
})
