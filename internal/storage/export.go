package storage

import (
	"encoding/json"
	"math"
	"os"

	"github.com/san-kum/shearlab/internal/engine"
	"github.com/san-kum/shearlab/internal/modal"
	"github.com/san-kum/shearlab/internal/sweep"
)

// jsonFloat encodes NaN grid points as null so skipped frequencies
// survive the trip through encoding/json.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(f)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

type ExportData struct {
	Label         string             `json:"label"`
	Floors        int                `json:"floors"`
	DOF           int                `json:"dof"`
	Alpha         float64            `json:"alpha"`
	Beta          float64            `json:"beta"`
	FrequenciesHz []float64          `json:"frequencies_hz"`
	ModeShapes    [][]float64        `json:"mode_shapes"`
	Absorbers     []AbsorberRecord   `json:"absorbers,omitempty"`
	Output        string             `json:"output"`
	Omegas        []float64          `json:"omegas_rad"`
	Displacements [][]jsonFloat      `json:"displacements"`
	SkippedOmegas []float64          `json:"skipped_omegas,omitempty"`
	Metrics       map[string]float64 `json:"metrics,omitempty"`
}

func buildExport(label string, res *engine.Result, extra map[string]float64) ExportData {
	shapes := make([][]float64, len(res.Modes))
	for i, m := range res.Modes {
		shapes[i] = m.Shape
	}

	disp := make([][]jsonFloat, len(res.Response.Displacements))
	for d, curve := range res.Response.Displacements {
		row := make([]jsonFloat, len(curve))
		for i, v := range curve {
			row[i] = jsonFloat(v)
		}
		disp[d] = row
	}

	var skipped []float64
	for _, pe := range res.Response.Errors {
		skipped = append(skipped, pe.Omega)
	}

	return ExportData{
		Label:         label,
		Floors:        res.Floors,
		DOF:           res.DOF,
		Alpha:         res.Alpha,
		Beta:          res.Beta,
		FrequenciesHz: modal.FrequenciesHz(res.Modes),
		ModeShapes:    shapes,
		Absorbers:     absorberRecords(res.Absorbers),
		Output:        res.Response.Output.String(),
		Omegas:        res.Response.Omegas,
		Displacements: disp,
		SkippedOmegas: skipped,
		Metrics:       extra,
	}
}

func ExportJSON(path, label string, res *engine.Result, extra map[string]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(label, res, extra))
}

func ExportJSONStdout(label string, res *engine.Result, extra map[string]float64) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(label, res, extra))
}

// ExportCSV writes the response curves of a finished run to an
// arbitrary path in the same layout the run store uses.
func ExportCSV(path string, floors int, resp *sweep.Result) error {
	return writeResponseCSV(path, floors, resp)
}
