// Package study runs scripted batches of building analyses: YAML case
// lists, one-parameter variations and random-absorber ensembles.
package study

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/shearlab/internal/config"
	"github.com/san-kum/shearlab/internal/engine"
	"github.com/san-kum/shearlab/internal/metrics"
	"github.com/san-kum/shearlab/internal/shear"
	"github.com/san-kum/shearlab/internal/storage"
)

// Study is a scripted list of building cases.
type Study struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Cases       []Case `yaml:"cases"`
}

// Case is one building to analyze, either a named preset or an inline
// configuration.
type Case struct {
	Label  string         `yaml:"label"`
	Preset string         `yaml:"preset"`
	Config *config.Config `yaml:"config"`
	SaveAs string         `yaml:"save_as"`
}

// UnmarshalYAML decodes inline configs on top of the defaults so a case
// only spells out what differs.
func (c *Case) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Label  string     `yaml:"label"`
		Preset string     `yaml:"preset"`
		Config *yaml.Node `yaml:"config"`
		SaveAs string     `yaml:"save_as"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.Label, c.Preset, c.SaveAs = raw.Label, raw.Preset, raw.SaveAs
	if raw.Config != nil {
		cfg := config.DefaultConfig()
		if err := raw.Config.Decode(cfg); err != nil {
			return err
		}
		c.Config = cfg
	}
	return nil
}

// Load reads a study from a YAML file.
func Load(path string) (*Study, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var study Study
	if err := yaml.Unmarshal(data, &study); err != nil {
		return nil, err
	}

	return &study, nil
}

func (c *Case) resolve(index int) (*config.Config, string, error) {
	label := c.Label
	if label == "" {
		label = fmt.Sprintf("case-%d", index+1)
	}

	switch {
	case c.Preset != "" && c.Config != nil:
		return nil, "", &shear.ConfigError{
			Field:  "cases",
			Detail: fmt.Sprintf("case %q names both a preset and an inline config", label),
		}
	case c.Preset != "":
		cfg := config.GetPreset(c.Preset)
		if cfg == nil {
			return nil, "", &shear.ConfigError{
				Field:  "cases",
				Detail: fmt.Sprintf("case %q names unknown preset %q", label, c.Preset),
			}
		}
		return cfg, label, nil
	case c.Config != nil:
		return c.Config.Clone(), label, nil
	default:
		return nil, "", &shear.ConfigError{
			Field:  "cases",
			Detail: fmt.Sprintf("case %q has neither preset nor config", label),
		}
	}
}

// CaseResult summarizes one executed case.
type CaseResult struct {
	Label         string
	RunID         string
	FundamentalHz float64
	Peak          metrics.Peak
}

// Run executes every case in order, persisting each into the store when
// one is given. A failing case aborts with the results so far.
func Run(st *Study, store *storage.Store) ([]CaseResult, error) {
	results := make([]CaseResult, 0, len(st.Cases))

	for i, cs := range st.Cases {
		cfg, label, err := cs.resolve(i)
		if err != nil {
			return results, err
		}

		fmt.Printf("running case %d/%d: %s\n", i+1, len(st.Cases), label)

		eng, err := engine.New(cfg)
		if err != nil {
			return results, fmt.Errorf("case %q: %w", label, err)
		}
		run, err := eng.Run()
		if err != nil {
			return results, fmt.Errorf("case %q: %w", label, err)
		}

		peak := metrics.MaxPeak(run.Response, run.Floors)
		cr := CaseResult{
			Label:         label,
			FundamentalHz: run.Modes[0].Hz,
			Peak:          peak,
		}

		if store != nil {
			saveAs := cs.SaveAs
			if saveAs == "" {
				saveAs = label
			}
			id, err := store.Save(saveAs, cfg, run, map[string]float64{
				"peak":           peak.Value,
				"peak_omega_rad": peak.Omega,
			})
			if err != nil {
				return results, fmt.Errorf("case %q: %w", label, err)
			}
			cr.RunID = id
		}

		results = append(results, cr)
	}

	return results, nil
}
