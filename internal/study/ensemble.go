package study

import (
	"fmt"
	"math"

	"github.com/san-kum/shearlab/internal/config"
	"github.com/san-kum/shearlab/internal/engine"
	"github.com/san-kum/shearlab/internal/metrics"
	"github.com/san-kum/shearlab/internal/shear"
)

// EnsembleTrial is one random-absorber draw: the seed it came from, its
// worst-floor peak and that peak relative to the bare building.
type EnsembleTrial struct {
	Seed        int64
	Peak        metrics.Peak
	Attenuation float64
}

// EnsembleStats aggregates an ensemble. Best is the lowest attenuation
// ratio seen and BestSeed reproduces it.
type EnsembleStats struct {
	Trials   int
	Mean     float64
	Best     float64
	Worst    float64
	BestSeed int64
}

// RunEnsemble draws trials random absorber sets from consecutive seeds
// starting at the configured one and compares each against the bare
// building. The configuration must be in random absorber mode.
func RunEnsemble(cfg *config.Config, trials int) ([]EnsembleTrial, EnsembleStats, error) {
	if cfg.AbsorberMode != config.AbsorberRandom {
		return nil, EnsembleStats{}, &shear.ConfigError{
			Field:  "absorber_mode",
			Detail: "ensemble needs random mode",
		}
	}
	if trials < 1 {
		return nil, EnsembleStats{}, &shear.ConfigError{Field: "trials", Detail: "need at least 1"}
	}

	bare := cfg.Clone()
	bare.AbsorberMode = config.AbsorberNone
	bare.Absorbers = nil

	bareEng, err := engine.New(bare)
	if err != nil {
		return nil, EnsembleStats{}, err
	}
	bareRun, err := bareEng.Run()
	if err != nil {
		return nil, EnsembleStats{}, err
	}
	barePeak := metrics.MaxPeak(bareRun.Response, bareRun.Floors)
	if barePeak.Value == 0 {
		return nil, EnsembleStats{}, &shear.NumericalError{
			Op:     "ensemble",
			Detail: "bare building has no finite peak on this grid",
		}
	}

	results := make([]EnsembleTrial, 0, trials)
	stats := EnsembleStats{Best: math.Inf(1), Worst: math.Inf(-1)}
	sum := 0.0

	for i := 0; i < trials; i++ {
		seed := cfg.Random.Seed + int64(i)

		trial := cfg.Clone()
		trial.Random.Seed = seed

		eng, err := engine.New(trial)
		if err != nil {
			return results, stats, fmt.Errorf("trial %d (seed %d): %w", i+1, seed, err)
		}
		run, err := eng.Run()
		if err != nil {
			return results, stats, fmt.Errorf("trial %d (seed %d): %w", i+1, seed, err)
		}

		peak := metrics.MaxPeak(run.Response, run.Floors)
		ratio := peak.Value / barePeak.Value
		results = append(results, EnsembleTrial{Seed: seed, Peak: peak, Attenuation: ratio})

		sum += ratio
		if ratio < stats.Best {
			stats.Best = ratio
			stats.BestSeed = seed
		}
		if ratio > stats.Worst {
			stats.Worst = ratio
		}

		if (i+1)%10 == 0 {
			fmt.Printf("  %d/%d trials\n", i+1, trials)
		}
	}

	stats.Trials = trials
	stats.Mean = sum / float64(trials)
	return results, stats, nil
}
