// Package config loads, validates and persists analysis configurations.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/shearlab/internal/shear"
	"github.com/san-kum/shearlab/internal/sweep"
)

const (
	DefaultFloors       = 3
	DefaultFloorMass    = 12000.0
	DefaultStoryHeight  = 3.0
	DefaultStoryWidth   = 0.35
	DefaultThickness    = 0.35
	DefaultYoungs       = 2.5e10
	DefaultDampingRatio = 0.02
	DefaultSweepStart   = 1.0
	DefaultSweepEnd     = 130.0
	DefaultSweepStep    = 0.5
)

// AbsorberMode selects where the attached absorbers come from.
type AbsorberMode string

const (
	AbsorberNone    AbsorberMode = "none"
	AbsorberCurated AbsorberMode = "curated"
	AbsorberRandom  AbsorberMode = "random"
)

type Config struct {
	Floors       int              `yaml:"floors"`
	FloorMass    float64          `yaml:"floor_mass_kg"`
	Story        StoryConfig      `yaml:"story"`
	Stiffness    float64          `yaml:"stiffness_nm"`
	Stiffnesses  []float64        `yaml:"stiffness_per_story_nm"`
	DampingRatio float64          `yaml:"damping_ratio"`
	AbsorberMode AbsorberMode     `yaml:"absorber_mode"`
	Absorbers    []AbsorberConfig `yaml:"absorbers"`
	Random       RandomConfig     `yaml:"random"`
	Sweep        SweepConfig      `yaml:"sweep"`
	Output       OutputConfig     `yaml:"output"`
	Workers      int              `yaml:"workers"`
}

// StoryConfig derives the lateral story stiffness from column geometry
// when no direct stiffness override is given.
type StoryConfig struct {
	HeightM    float64 `yaml:"height_m"`
	WidthM     float64 `yaml:"width_m"`
	ThicknessM float64 `yaml:"thickness_m"`
	YoungsPa   float64 `yaml:"youngs_pa"`
}

type AbsorberConfig struct {
	MassKg      float64 `yaml:"mass_kg"`
	StiffnessNM float64 `yaml:"stiffness_nm"`
	DampingNSM  float64 `yaml:"damping_nsm"`
	Floor       int     `yaml:"floor"`
}

// RandomConfig bounds the generated absorbers in random mode. Masses are
// fractions of the total building mass, tuning ratios multiply the
// fundamental frequency, damping is a viscous ratio.
type RandomConfig struct {
	Count           int     `yaml:"count"`
	Seed            int64   `yaml:"seed"`
	MassFracMin     float64 `yaml:"mass_frac_min"`
	MassFracMax     float64 `yaml:"mass_frac_max"`
	TuningMin       float64 `yaml:"tuning_min"`
	TuningMax       float64 `yaml:"tuning_max"`
	DampingRatioMin float64 `yaml:"damping_ratio_min"`
	DampingRatioMax float64 `yaml:"damping_ratio_max"`
}

type SweepConfig struct {
	StartRad   float64 `yaml:"start_rad"`
	EndRad     float64 `yaml:"end_rad"`
	StepRad    float64 `yaml:"step_rad"`
	OnSingular string  `yaml:"on_singular"` // skip|abort
}

type OutputConfig struct {
	Displacement     string `yaml:"displacement"` // magnitude|signed
	IncludeAbsorbers bool   `yaml:"include_absorbers"`
}

func DefaultConfig() *Config {
	return &Config{
		Floors:    DefaultFloors,
		FloorMass: DefaultFloorMass,
		Story: StoryConfig{
			HeightM:    DefaultStoryHeight,
			WidthM:     DefaultStoryWidth,
			ThicknessM: DefaultThickness,
			YoungsPa:   DefaultYoungs,
		},
		DampingRatio: DefaultDampingRatio,
		AbsorberMode: AbsorberNone,
		Random: RandomConfig{
			Count:           2,
			Seed:            1,
			MassFracMin:     0.01,
			MassFracMax:     0.03,
			TuningMin:       0.85,
			TuningMax:       1.15,
			DampingRatioMin: 0.05,
			DampingRatioMax: 0.15,
		},
		Sweep: SweepConfig{
			StartRad:   DefaultSweepStart,
			EndRad:     DefaultSweepEnd,
			StepRad:    DefaultSweepStep,
			OnSingular: "skip",
		},
		Output: OutputConfig{
			Displacement: "magnitude",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects physically meaningless or contradictory settings
// before any matrix is assembled.
func (c *Config) Validate() error {
	if c.Floors < 1 {
		return &shear.ConfigError{Field: "floors", Detail: fmt.Sprintf("%d, need at least one", c.Floors)}
	}
	if c.FloorMass <= 0 {
		return &shear.ConfigError{Field: "floor_mass_kg", Detail: fmt.Sprintf("%g must be positive", c.FloorMass)}
	}
	if err := c.validateStiffness(); err != nil {
		return err
	}
	if c.DampingRatio < 0 {
		return &shear.ConfigError{Field: "damping_ratio", Detail: fmt.Sprintf("%g must not be negative", c.DampingRatio)}
	}
	if err := c.validateAbsorbers(); err != nil {
		return err
	}
	if c.Sweep.StepRad <= 0 {
		return &shear.ConfigError{Field: "sweep.step_rad", Detail: fmt.Sprintf("%g must be positive", c.Sweep.StepRad)}
	}
	if c.Sweep.StartRad < 0 {
		return &shear.ConfigError{Field: "sweep.start_rad", Detail: fmt.Sprintf("%g must not be negative", c.Sweep.StartRad)}
	}
	if c.Sweep.EndRad < c.Sweep.StartRad {
		return &shear.ConfigError{
			Field:  "sweep.end_rad",
			Detail: fmt.Sprintf("%g below start %g", c.Sweep.EndRad, c.Sweep.StartRad),
		}
	}
	switch c.Sweep.OnSingular {
	case "", "skip", "abort":
	default:
		return &shear.ConfigError{Field: "sweep.on_singular", Detail: fmt.Sprintf("%q is not skip or abort", c.Sweep.OnSingular)}
	}
	switch c.Output.Displacement {
	case "", "magnitude", "signed":
	default:
		return &shear.ConfigError{Field: "output.displacement", Detail: fmt.Sprintf("%q is not magnitude or signed", c.Output.Displacement)}
	}
	if c.Workers < 0 {
		return &shear.ConfigError{Field: "workers", Detail: fmt.Sprintf("%d must not be negative", c.Workers)}
	}
	return nil
}

func (c *Config) validateStiffness() error {
	if len(c.Stiffnesses) > 0 {
		if len(c.Stiffnesses) != c.Floors {
			return &shear.ConfigError{
				Field:  "stiffness_per_story_nm",
				Detail: fmt.Sprintf("%d entries for %d floors", len(c.Stiffnesses), c.Floors),
			}
		}
		for i, k := range c.Stiffnesses {
			if k <= 0 {
				return &shear.ConfigError{
					Field:  "stiffness_per_story_nm",
					Detail: fmt.Sprintf("story %d stiffness %g must be positive", i+1, k),
				}
			}
		}
		return nil
	}
	if c.Stiffness < 0 {
		return &shear.ConfigError{Field: "stiffness_nm", Detail: fmt.Sprintf("%g must not be negative", c.Stiffness)}
	}
	if c.Stiffness > 0 {
		return nil
	}
	if c.Story.HeightM <= 0 {
		return &shear.ConfigError{Field: "story.height_m", Detail: fmt.Sprintf("%g must be positive", c.Story.HeightM)}
	}
	if c.Story.WidthM <= 0 {
		return &shear.ConfigError{Field: "story.width_m", Detail: fmt.Sprintf("%g must be positive", c.Story.WidthM)}
	}
	if c.Story.ThicknessM <= 0 {
		return &shear.ConfigError{Field: "story.thickness_m", Detail: fmt.Sprintf("%g must be positive", c.Story.ThicknessM)}
	}
	if c.Story.YoungsPa <= 0 {
		return &shear.ConfigError{Field: "story.youngs_pa", Detail: fmt.Sprintf("%g must be positive", c.Story.YoungsPa)}
	}
	return nil
}

func (c *Config) validateAbsorbers() error {
	switch c.AbsorberMode {
	case AbsorberNone:
		return nil
	case AbsorberCurated:
		if len(c.Absorbers) == 0 {
			return &shear.ConfigError{Field: "absorbers", Detail: "curated mode with an empty absorber list"}
		}
	case AbsorberRandom:
		r := c.Random
		if r.Count < 1 {
			return &shear.ConfigError{Field: "random.count", Detail: fmt.Sprintf("%d, need at least one", r.Count)}
		}
		if r.MassFracMin <= 0 || r.MassFracMax < r.MassFracMin {
			return &shear.ConfigError{
				Field:  "random.mass_frac",
				Detail: fmt.Sprintf("range %g..%g must be positive and ordered", r.MassFracMin, r.MassFracMax),
			}
		}
		if r.TuningMin <= 0 || r.TuningMax < r.TuningMin {
			return &shear.ConfigError{
				Field:  "random.tuning",
				Detail: fmt.Sprintf("range %g..%g must be positive and ordered", r.TuningMin, r.TuningMax),
			}
		}
		if r.DampingRatioMin < 0 || r.DampingRatioMax < r.DampingRatioMin {
			return &shear.ConfigError{
				Field:  "random.damping_ratio",
				Detail: fmt.Sprintf("range %g..%g must be non-negative and ordered", r.DampingRatioMin, r.DampingRatioMax),
			}
		}
	default:
		return &shear.ConfigError{
			Field:  "absorber_mode",
			Detail: fmt.Sprintf("%q is not none, curated or random", c.AbsorberMode),
		}
	}
	for i, a := range c.Absorbers {
		field := fmt.Sprintf("absorbers[%d]", i)
		if a.MassKg <= 0 {
			return &shear.ConfigError{Field: field + ".mass_kg", Detail: fmt.Sprintf("%g must be positive", a.MassKg)}
		}
		if a.StiffnessNM <= 0 {
			return &shear.ConfigError{Field: field + ".stiffness_nm", Detail: fmt.Sprintf("%g must be positive", a.StiffnessNM)}
		}
		if a.DampingNSM < 0 {
			return &shear.ConfigError{Field: field + ".damping_nsm", Detail: fmt.Sprintf("%g must not be negative", a.DampingNSM)}
		}
		if a.Floor < 1 || a.Floor > c.Floors {
			return &shear.ConfigError{Field: field + ".floor", Detail: fmt.Sprintf("floor %d outside 1..%d", a.Floor, c.Floors)}
		}
	}
	return nil
}

// StoryStiffness resolves the effective uniform story stiffness, direct
// override first, column geometry second.
func (c *Config) StoryStiffness() float64 {
	if c.Stiffness > 0 {
		return c.Stiffness
	}
	return shear.StoryStiffness(c.Story.YoungsPa, c.Story.HeightM, c.Story.WidthM, c.Story.ThicknessM)
}

// Building resolves the configured frame.
func (c *Config) Building() (*shear.Building, error) {
	masses := make([]float64, c.Floors)
	for i := range masses {
		masses[i] = c.FloorMass
	}
	if len(c.Stiffnesses) > 0 {
		return shear.NewBuilding(masses, append([]float64(nil), c.Stiffnesses...))
	}
	k := c.StoryStiffness()
	stiffnesses := make([]float64, c.Floors)
	for i := range stiffnesses {
		stiffnesses[i] = k
	}
	return shear.NewBuilding(masses, stiffnesses)
}

// CuratedAbsorbers converts the configured absorber list.
func (c *Config) CuratedAbsorbers() []shear.Absorber {
	out := make([]shear.Absorber, len(c.Absorbers))
	for i, a := range c.Absorbers {
		out[i] = shear.Absorber{
			Mass:      a.MassKg,
			Stiffness: a.StiffnessNM,
			Damping:   a.DampingNSM,
			Floor:     a.Floor,
		}
	}
	return out
}

// OutputMode maps the configured displacement reduction.
func (c *Config) OutputMode() sweep.OutputMode {
	if c.Output.Displacement == "signed" {
		return sweep.Signed
	}
	return sweep.Magnitude
}

// SingularPolicy maps the configured singular-point policy.
func (c *Config) SingularPolicy() sweep.SingularPolicy {
	if c.Sweep.OnSingular == "abort" {
		return sweep.Abort
	}
	return sweep.Skip
}

// Grid builds the configured frequency grid.
func (c *Config) Grid() ([]float64, error) {
	return sweep.Frequencies(c.Sweep.StartRad, c.Sweep.EndRad, c.Sweep.StepRad)
}

// Clone returns a deep copy safe to mutate independently.
func (c *Config) Clone() *Config {
	out := *c
	out.Stiffnesses = append([]float64(nil), c.Stiffnesses...)
	out.Absorbers = append([]AbsorberConfig(nil), c.Absorbers...)
	return &out
}
