// Package optim searches absorber parameters that minimize the peak
// floor response of a configured building.
package optim

import (
	"math"

	"github.com/san-kum/shearlab/internal/config"
	"github.com/san-kum/shearlab/internal/engine"
	"github.com/san-kum/shearlab/internal/metrics"
	"github.com/san-kum/shearlab/internal/shear"
	"github.com/san-kum/shearlab/internal/sweep"
)

// Grid spans the candidate absorbers in physical terms: mass as a
// fraction of the building, frequency as a ratio of the fundamental,
// damping as a viscous ratio.
type Grid struct {
	MassFracs     []float64
	TuningRatios  []float64
	DampingRatios []float64
	Floors        []int
}

// DefaultGrid brackets the textbook tuned-mass-damper region with the
// absorber on the roof.
func DefaultGrid(topFloor int) Grid {
	return Grid{
		MassFracs:     []float64{0.01, 0.02, 0.03, 0.05},
		TuningRatios:  []float64{0.85, 0.90, 0.95, 1.00, 1.05},
		DampingRatios: []float64{0.05, 0.10, 0.15},
		Floors:        []int{topFloor},
	}
}

// Candidate is one evaluated absorber and the peak it left behind.
type Candidate struct {
	Absorber shear.Absorber
	Peak     metrics.Peak
}

// Result reports the search outcome against the absorber-free baseline.
// Attenuation is the winner's per-floor peak ratio against that baseline.
type Result struct {
	Best        Candidate
	BarePeak    metrics.Peak
	Attenuation []float64
	Evaluated   int
}

// TuneAbsorber sweeps every grid combination as a single curated
// absorber on the configured building and keeps the one with the lowest
// peak floor amplitude. Combinations whose sweep fails are skipped; the
// search fails only when nothing is viable.
func TuneAbsorber(cfg *config.Config, grid Grid) (*Result, error) {
	if len(grid.MassFracs) == 0 || len(grid.TuningRatios) == 0 ||
		len(grid.DampingRatios) == 0 || len(grid.Floors) == 0 {
		return nil, &shear.ConfigError{Field: "grid", Detail: "every axis needs at least one value"}
	}

	bareCfg := cfg.Clone()
	bareCfg.AbsorberMode = config.AbsorberNone
	bareCfg.Absorbers = nil

	bare, err := engine.New(bareCfg)
	if err != nil {
		return nil, err
	}
	bareRun, err := bare.Run()
	if err != nil {
		return nil, err
	}

	floors := bare.Building().Floors()
	total := bare.Building().TotalMass()
	omega1 := bare.BaseModes()[0].Omega

	res := &Result{BarePeak: metrics.MaxPeak(bareRun.Response, floors)}
	best := math.Inf(1)
	var bestResp *sweep.Result

	for _, frac := range grid.MassFracs {
		for _, tuning := range grid.TuningRatios {
			for _, zeta := range grid.DampingRatios {
				for _, floor := range grid.Floors {
					mass := frac * total
					omega := tuning * omega1
					a := shear.Absorber{
						Mass:      mass,
						Stiffness: mass * omega * omega,
						Damping:   2 * zeta * mass * omega,
						Floor:     floor,
					}

					peak, resp, err := evaluate(bareCfg, a, floors)
					if err != nil {
						continue
					}
					res.Evaluated++
					if peak.Value < best {
						best = peak.Value
						bestResp = resp
						res.Best = Candidate{Absorber: a, Peak: peak}
					}
				}
			}
		}
	}

	if res.Evaluated == 0 {
		return nil, &shear.NumericalError{Op: "tune", Detail: "no grid combination produced a usable sweep"}
	}
	res.Attenuation = metrics.Attenuation(bareRun.Response, bestResp)
	return res, nil
}

func evaluate(bareCfg *config.Config, a shear.Absorber, floors int) (metrics.Peak, *sweep.Result, error) {
	cfg := bareCfg.Clone()
	cfg.AbsorberMode = config.AbsorberCurated
	cfg.Absorbers = []config.AbsorberConfig{{
		MassKg:      a.Mass,
		StiffnessNM: a.Stiffness,
		DampingNSM:  a.Damping,
		Floor:       a.Floor,
	}}

	eng, err := engine.New(cfg)
	if err != nil {
		return metrics.Peak{}, nil, err
	}
	run, err := eng.Run()
	if err != nil {
		return metrics.Peak{}, nil, err
	}
	return metrics.MaxPeak(run.Response, floors), run.Response, nil
}
