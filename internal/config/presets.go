package config

import "sort"

// Presets are ready-made building scenarios. Each returns a full config
// so the CLI can run them without a YAML file.
var Presets = map[string]func() *Config{
	// Bare undamped frame. Resonances are exact, so singular sweep
	// points are expected and skipped.
	"bare": func() *Config {
		cfg := DefaultConfig()
		cfg.DampingRatio = 0
		return cfg
	},

	// One curated absorber on the roof, tuned to the fundamental of the
	// default frame with a 2% mass ratio.
	"tuned": func() *Config {
		cfg := DefaultConfig()
		cfg.AbsorberMode = AbsorberCurated
		cfg.Absorbers = []AbsorberConfig{
			{MassKg: 720, StiffnessNM: 1.65e5, DampingNSM: 2.2e3, Floor: 3},
		}
		return cfg
	},

	// Two seeded random absorbers around the fundamental.
	"random": func() *Config {
		cfg := DefaultConfig()
		cfg.AbsorberMode = AbsorberRandom
		cfg.Random.Count = 2
		cfg.Random.Seed = 42
		return cfg
	},

	// First story at 40% stiffness, the classic soft-story irregularity.
	"soft-story": func() *Config {
		cfg := DefaultConfig()
		k := cfg.StoryStiffness()
		cfg.Stiffnesses = []float64{0.4 * k, k, k}
		return cfg
	},
}

func GetPreset(name string) *Config {
	f, ok := Presets[name]
	if !ok {
		return nil
	}
	return f()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
