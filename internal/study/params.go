package study

import (
	"fmt"

	"github.com/san-kum/shearlab/internal/config"
	"github.com/san-kum/shearlab/internal/engine"
	"github.com/san-kum/shearlab/internal/metrics"
	"github.com/san-kum/shearlab/internal/shear"
)

// ParameterStudy varies one configuration value across a linear range,
// re-running the full analysis at every step.
type ParameterStudy struct {
	Param string  `yaml:"param"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Steps int     `yaml:"steps"`
}

// ParameterPoint is the outcome of one step of a parameter study.
type ParameterPoint struct {
	Value         float64
	FundamentalHz float64
	Peak          metrics.Peak
}

func applyParam(cfg *config.Config, param string, value float64) error {
	switch param {
	case "floor_mass_kg":
		cfg.FloorMass = value
	case "stiffness_nm":
		cfg.Stiffness = value
		cfg.Stiffnesses = nil
	case "damping_ratio":
		cfg.DampingRatio = value
	case "story_height_m":
		cfg.Story.HeightM = value
	case "story_thickness_m":
		cfg.Story.ThicknessM = value
	default:
		return &shear.ConfigError{
			Field:  "param",
			Detail: fmt.Sprintf("unknown parameter %q", param),
		}
	}
	return nil
}

// RunParameters executes a parameter study against a base configuration.
// The base is never mutated.
func RunParameters(cfg *config.Config, ps ParameterStudy) ([]ParameterPoint, error) {
	if ps.Steps < 2 {
		return nil, &shear.ConfigError{Field: "steps", Detail: "need at least 2"}
	}
	if ps.Max <= ps.Min {
		return nil, &shear.ConfigError{Field: "max", Detail: "must exceed min"}
	}

	points := make([]ParameterPoint, 0, ps.Steps)
	delta := (ps.Max - ps.Min) / float64(ps.Steps-1)

	for i := 0; i < ps.Steps; i++ {
		value := ps.Min + float64(i)*delta

		trial := cfg.Clone()
		if err := applyParam(trial, ps.Param, value); err != nil {
			return nil, err
		}

		eng, err := engine.New(trial)
		if err != nil {
			return points, fmt.Errorf("step %d (%s=%g): %w", i+1, ps.Param, value, err)
		}
		run, err := eng.Run()
		if err != nil {
			return points, fmt.Errorf("step %d (%s=%g): %w", i+1, ps.Param, value, err)
		}

		points = append(points, ParameterPoint{
			Value:         value,
			FundamentalHz: run.Modes[0].Hz,
			Peak:          metrics.MaxPeak(run.Response, run.Floors),
		})
	}

	return points, nil
}
