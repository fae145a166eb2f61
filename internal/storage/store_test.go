package storage

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/shearlab/internal/config"
	"github.com/san-kum/shearlab/internal/engine"
)

func runResult(t *testing.T) (*config.Config, *engine.Result) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Floors = 3
	cfg.FloorMass = 1000
	cfg.Stiffness = 5e5
	cfg.AbsorberMode = config.AbsorberCurated
	cfg.Absorbers = []config.AbsorberConfig{
		{MassKg: 40, StiffnessNM: 4000, DampingNSM: 50, Floor: 3},
	}
	cfg.Sweep = config.SweepConfig{StartRad: 2, EndRad: 50, StepRad: 1, OnSingular: "skip"}

	eng, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine failed: %v", err)
	}
	res, err := eng.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return cfg, res
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, res := runResult(t)
	runID, err := st.Save("test", cfg, res, map[string]float64{"peak": 0.0042})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Label != "test" {
		t.Errorf("expected label 'test', got '%s'", meta.Label)
	}
	if meta.Floors != 3 || meta.DOF != 4 {
		t.Errorf("expected 3 floors and 4 DOF, got %d/%d", meta.Floors, meta.DOF)
	}
	if meta.AbsorberMode != "curated" {
		t.Errorf("expected curated mode, got %s", meta.AbsorberMode)
	}
	if len(meta.Absorbers) != 1 || meta.Absorbers[0].Floor != 3 {
		t.Errorf("expected the absorber in metadata, got %+v", meta.Absorbers)
	}
	if len(meta.FrequenciesHz) != 4 {
		t.Errorf("expected 4 natural frequencies, got %d", len(meta.FrequenciesHz))
	}
	if meta.Metrics["peak"] != 0.0042 {
		t.Errorf("expected peak metric, got %f", meta.Metrics["peak"])
	}
}

func TestStoreLoadResponse(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, res := runResult(t)
	runID, err := st.Save("test", cfg, res, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	omegas, curves, err := st.LoadResponse(runID)
	if err != nil {
		t.Fatalf("load response failed: %v", err)
	}

	if len(omegas) != len(res.Response.Omegas) {
		t.Fatalf("expected %d grid points, got %d", len(res.Response.Omegas), len(omegas))
	}
	if len(curves) != len(res.Response.Displacements) {
		t.Fatalf("expected %d curves, got %d", len(res.Response.Displacements), len(curves))
	}
	for d := range curves {
		for i := range curves[d] {
			want := res.Response.Displacements[d][i]
			if math.Abs(curves[d][i]-want) > 1e-15*math.Abs(want) {
				t.Fatalf("curve %d point %d: expected %g, got %g", d, i, want, curves[d][i])
			}
		}
	}
}

func TestStoreLoadConfig(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, res := runResult(t)
	runID, err := st.Save("test", cfg, res, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.LoadConfig(runID)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if loaded.Floors != cfg.Floors {
		t.Errorf("expected %d floors, got %d", cfg.Floors, loaded.Floors)
	}
	if len(loaded.Absorbers) != 1 {
		t.Errorf("expected the absorber back, got %+v", loaded.Absorbers)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	cfg, res := runResult(t)
	if _, err := st.Save("test", cfg, res, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, res := runResult(t)
	runID, err := st.Save("test", cfg, res, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "response.csv", "modes.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportCSV(t *testing.T) {
	_, res := runResult(t)

	path := filepath.Join(t.TempDir(), "run.csv")
	if err := ExportCSV(path, res.Floors, res.Response); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	if len(records) != 1+len(res.Response.Omegas) {
		t.Fatalf("expected header plus %d rows, got %d", len(res.Response.Omegas), len(records))
	}
	header := records[0]
	if header[0] != "omega_rad" || header[1] != "hz" {
		t.Errorf("unexpected header %v", header)
	}
	if len(header) != 2+len(res.Response.Displacements) {
		t.Errorf("expected %d columns, got %d", 2+len(res.Response.Displacements), len(header))
	}
}

func TestExportJSONHandlesNaN(t *testing.T) {
	_, res := runResult(t)

	// Poison one grid point the way a skipped singular solve would.
	res.Response.Displacements[0][3] = math.NaN()

	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, "test", res, nil); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	disp, ok := out["displacements"].([]any)
	if !ok || len(disp) == 0 {
		t.Fatal("expected displacement rows in export")
	}
	row := disp[0].([]any)
	if row[3] != nil {
		t.Errorf("expected null at the poisoned point, got %v", row[3])
	}
}
