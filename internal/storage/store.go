// Package storage persists analysis runs as browsable directories: one
// metadata.json, the swept response and mode table as CSV, and the exact
// configuration for replay.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/shearlab/internal/config"
	"github.com/san-kum/shearlab/internal/engine"
	"github.com/san-kum/shearlab/internal/modal"
	"github.com/san-kum/shearlab/internal/shear"
	"github.com/san-kum/shearlab/internal/sweep"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type AbsorberRecord struct {
	MassKg      float64 `json:"mass_kg"`
	StiffnessNM float64 `json:"stiffness_nm"`
	DampingNSM  float64 `json:"damping_nsm"`
	Floor       int     `json:"floor"`
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Label         string             `json:"label"`
	Timestamp     time.Time          `json:"timestamp"`
	Floors        int                `json:"floors"`
	DOF           int                `json:"dof"`
	AbsorberMode  string             `json:"absorber_mode"`
	Absorbers     []AbsorberRecord   `json:"absorbers,omitempty"`
	Alpha         float64            `json:"alpha"`
	Beta          float64            `json:"beta"`
	FrequenciesHz []float64          `json:"frequencies_hz"`
	Output        string             `json:"output"`
	SkippedPoints int                `json:"skipped_points"`
	Metrics       map[string]float64 `json:"metrics,omitempty"`
}

// Save writes one run directory and returns its ID. The directory holds
// metadata.json, response.csv, modes.csv and the configuration that
// produced the run.
func (s *Store) Save(label string, cfg *config.Config, res *engine.Result, extra map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", label, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Label:         label,
		Timestamp:     time.Now(),
		Floors:        res.Floors,
		DOF:           res.DOF,
		AbsorberMode:  string(cfg.AbsorberMode),
		Absorbers:     absorberRecords(res.Absorbers),
		Alpha:         res.Alpha,
		Beta:          res.Beta,
		FrequenciesHz: modal.FrequenciesHz(res.Modes),
		Output:        res.Response.Output.String(),
		SkippedPoints: len(res.Response.Errors),
		Metrics:       extra,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeResponseCSV(filepath.Join(runDir, "response.csv"), res.Floors, res.Response); err != nil {
		return "", err
	}
	if err := writeModesCSV(filepath.Join(runDir, "modes.csv"), res.Modes); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, "config.yaml"), cfg); err != nil {
		return "", err
	}

	return runID, nil
}

// List scans the base directory for runs, oldest first. Directories
// without readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadConfig reads back the configuration a run was produced from.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, "config.yaml"))
}

// LoadResponse reads the swept curves back, one row per stored degree
// of freedom.
func (s *Store) LoadResponse(runID string) ([]float64, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "response.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, [][]float64{}, nil
	}

	cols := len(records[0])
	rows := cols - 2 // omega and hz lead every record
	omegas := make([]float64, 0, len(records)-1)
	curves := make([][]float64, rows)
	for d := range curves {
		curves[d] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != cols {
			continue
		}
		w, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		omegas = append(omegas, w)
		for d := 0; d < rows; d++ {
			v, err := strconv.ParseFloat(record[d+2], 64)
			if err != nil {
				v = 0
			}
			curves[d] = append(curves[d], v)
		}
	}

	return omegas, curves, nil
}

func absorberRecords(absorbers []shear.Absorber) []AbsorberRecord {
	if len(absorbers) == 0 {
		return nil
	}
	out := make([]AbsorberRecord, len(absorbers))
	for i, a := range absorbers {
		out[i] = AbsorberRecord{
			MassKg:      a.Mass,
			StiffnessNM: a.Stiffness,
			DampingNSM:  a.Damping,
			Floor:       a.Floor,
		}
	}
	return out
}

func writeResponseCSV(path string, floors int, res *sweep.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"omega_rad", "hz"}
	for d := range res.Displacements {
		header = append(header, dofLabel(d, floors))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, omega := range res.Omegas {
		row := make([]string, 0, len(header))
		row = append(row,
			strconv.FormatFloat(omega, 'g', -1, 64),
			strconv.FormatFloat(omega/(2*math.Pi), 'g', -1, 64),
		)
		for d := range res.Displacements {
			row = append(row, strconv.FormatFloat(res.Displacements[d][i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func writeModesCSV(path string, modes []modal.Mode) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"mode", "omega_rad", "hz"}
	if len(modes) > 0 {
		for i := range modes[0].Shape {
			header = append(header, fmt.Sprintf("shape%d", i+1))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, m := range modes {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(m.Omega, 'g', -1, 64),
			strconv.FormatFloat(m.Hz, 'g', -1, 64),
		}
		for _, v := range m.Shape {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// dofLabel names a response row: floors first, absorbers after.
func dofLabel(d, floors int) string {
	if d < floors {
		return fmt.Sprintf("floor%d", d+1)
	}
	return fmt.Sprintf("absorber%d", d-floors+1)
}
