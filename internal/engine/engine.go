package engine

import (
	"math/rand"

	"github.com/san-kum/shearlab/internal/config"
	"github.com/san-kum/shearlab/internal/damping"
	"github.com/san-kum/shearlab/internal/modal"
	"github.com/san-kum/shearlab/internal/shear"
	"github.com/san-kum/shearlab/internal/sweep"
)

// Engine holds one fully assembled analysis pipeline.
type Engine struct {
	cfg       *config.Config
	building  *shear.Building
	base      *shear.Matrices
	sys       *shear.Matrices
	absorbers []shear.Absorber
	coeff     damping.Coefficients
	baseModes []modal.Mode
	modes     []modal.Mode
}

// Result bundles everything one configured run produces.
type Result struct {
	Floors    int
	DOF       int
	Absorbers []shear.Absorber
	Alpha     float64
	Beta      float64
	BaseModes []modal.Mode
	Modes     []modal.Mode
	Response  *sweep.Result
}

// New validates the configuration and assembles the full system: bare
// frame, Rayleigh damping fitted against the bare modes, then absorbers
// appended in attachment order.
func New(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	building, err := cfg.Building()
	if err != nil {
		return nil, err
	}
	base := shear.Assemble(building)

	baseModes, err := modal.Analyze(base.K, base.M)
	if err != nil {
		return nil, err
	}

	coeff, err := damping.FromModes(baseModes, cfg.DampingRatio)
	if err != nil {
		return nil, err
	}
	damped := base.WithRayleigh(coeff.Alpha, coeff.Beta)

	absorbers := resolveAbsorbers(cfg, building, baseModes)
	sys, err := damped.WithAbsorbers(absorbers)
	if err != nil {
		return nil, err
	}

	modes, err := modal.Analyze(sys.K, sys.M)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:       cfg,
		building:  building,
		base:      base,
		sys:       sys,
		absorbers: absorbers,
		coeff:     coeff,
		baseModes: baseModes,
		modes:     modes,
	}, nil
}

func resolveAbsorbers(cfg *config.Config, b *shear.Building, baseModes []modal.Mode) []shear.Absorber {
	switch cfg.AbsorberMode {
	case config.AbsorberCurated:
		return cfg.CuratedAbsorbers()
	case config.AbsorberRandom:
		rng := rand.New(rand.NewSource(cfg.Random.Seed))
		random := RandomAbsorbers(cfg.Random, b.Floors(), b.TotalMass(), baseModes[0].Omega, rng)
		return append(random, cfg.CuratedAbsorbers()...)
	default:
		return nil
	}
}

// RandomAbsorbers draws absorbers from the configured ranges. Each draw
// takes floor, mass fraction, tuning ratio and damping ratio in that
// order, so a fixed source reproduces the same set. Tuning ratios
// multiply omega1, the fundamental the absorbers aim at.
func RandomAbsorbers(rc config.RandomConfig, floors int, totalMass, omega1 float64, rng *rand.Rand) []shear.Absorber {
	out := make([]shear.Absorber, rc.Count)
	for i := range out {
		floor := 1 + rng.Intn(floors)
		frac := uniform(rng, rc.MassFracMin, rc.MassFracMax)
		tuning := uniform(rng, rc.TuningMin, rc.TuningMax)
		zeta := uniform(rng, rc.DampingRatioMin, rc.DampingRatioMax)

		mass := frac * totalMass
		omega := tuning * omega1
		out[i] = shear.Absorber{
			Mass:      mass,
			Stiffness: mass * omega * omega,
			Damping:   2 * zeta * mass * omega,
			Floor:     floor,
		}
	}
	return out
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// Config returns the validated configuration the engine was built from.
func (e *Engine) Config() *config.Config { return e.cfg }

// Building returns the resolved bare frame.
func (e *Engine) Building() *shear.Building { return e.building }

// Base returns the bare-frame matrices before absorbers, with Rayleigh
// damping not yet applied.
func (e *Engine) Base() *shear.Matrices { return e.base }

// System returns the full damped matrices including absorbers.
func (e *Engine) System() *shear.Matrices { return e.sys }

// Absorbers returns the attached absorbers in degree-of-freedom order.
func (e *Engine) Absorbers() []shear.Absorber { return e.absorbers }

// Coefficients returns the fitted Rayleigh coefficients.
func (e *Engine) Coefficients() damping.Coefficients { return e.coeff }

// BaseModes returns the modes of the bare frame.
func (e *Engine) BaseModes() []modal.Mode { return e.baseModes }

// Modes returns the modes of the full system including absorbers.
func (e *Engine) Modes() []modal.Mode { return e.modes }

// NaturalFrequencies returns the full-system natural frequencies in Hz,
// ascending.
func (e *Engine) NaturalFrequencies() []float64 { return modal.FrequenciesHz(e.modes) }

// ModeShapes returns the mass-normalized shape vectors in frequency order.
func (e *Engine) ModeShapes() [][]float64 {
	shapes := make([][]float64, len(e.modes))
	for i, m := range e.modes {
		shapes[i] = m.Shape
	}
	return shapes
}

// FrequencyResponse sweeps the full system over an arbitrary grid using
// the configured output, worker and singular-point settings.
func (e *Engine) FrequencyResponse(omegas []float64) (*sweep.Result, error) {
	return sweep.Run(e.sys, omegas, sweep.Options{
		Output:     e.cfg.OutputMode(),
		FloorsOnly: !e.cfg.Output.IncludeAbsorbers,
		Workers:    e.cfg.Workers,
		OnSingular: e.cfg.SingularPolicy(),
	})
}

// Run executes the configured sweep and bundles the result.
func (e *Engine) Run() (*Result, error) {
	grid, err := e.cfg.Grid()
	if err != nil {
		return nil, err
	}
	resp, err := e.FrequencyResponse(grid)
	if err != nil {
		return nil, err
	}
	return &Result{
		Floors:    e.sys.Floors(),
		DOF:       e.sys.DOF(),
		Absorbers: e.absorbers,
		Alpha:     e.coeff.Alpha,
		Beta:      e.coeff.Beta,
		BaseModes: e.baseModes,
		Modes:     e.modes,
		Response:  resp,
	}, nil
}
