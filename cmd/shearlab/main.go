package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/shearlab/internal/config"
	"github.com/san-kum/shearlab/internal/engine"
	"github.com/san-kum/shearlab/internal/metrics"
	"github.com/san-kum/shearlab/internal/optim"
	"github.com/san-kum/shearlab/internal/report"
	"github.com/san-kum/shearlab/internal/storage"
	"github.com/san-kum/shearlab/internal/study"
	"github.com/san-kum/shearlab/internal/sweep"
	"github.com/san-kum/shearlab/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	label      string

	floors       int
	floorMass    float64
	stiffness    float64
	dampingRatio float64
	absorberMode string
	seed         int64
	count        int

	sweepStart float64
	sweepEnd   float64
	sweepStep  float64
	onSingular string
	signed     bool
	withAbs    bool
	workers    int

	// Command-specific knobs
	showShapes bool
	plotFloor  int
	tuneFloor  int
	varyMin    float64
	varyMax    float64
	varySteps  int
	trials     int
	outDir     string
	hzAxis     bool
	linearY    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shearlab",
		Short: "frequency-domain lab for shear buildings with tuned mass absorbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive explorer when no command given
			return tui.Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".shearlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the configured analysis and store the result",
		RunE:  runAnalysis,
	}
	addModelFlags(runCmd)
	runCmd.Flags().StringVar(&label, "label", "run", "label for the stored run")

	modalCmd := &cobra.Command{
		Use:   "modal",
		Short: "print natural frequencies and damping",
		RunE:  runModal,
	}
	addModelFlags(modalCmd)
	modalCmd.Flags().BoolVar(&showShapes, "shapes", false, "print mode shape components")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the frequency grid and chart one floor",
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&plotFloor, "floor", 0, "floor to chart (0 = top)")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search one absorber against the worst floor peak",
		RunE:  runTune,
	}
	addModelFlags(tuneCmd)
	tuneCmd.Flags().IntVar(&tuneFloor, "floor", 0, "attachment floor (0 = top)")

	varyCmd := &cobra.Command{
		Use:   "vary [param]",
		Short: "rerun the analysis across one parameter range",
		Long:  "parameters: floor_mass_kg, stiffness_nm, damping_ratio, story_height_m, story_thickness_m",
		Args:  cobra.ExactArgs(1),
		RunE:  runVary,
	}
	addModelFlags(varyCmd)
	varyCmd.Flags().Float64Var(&varyMin, "min", 0.01, "range start")
	varyCmd.Flags().Float64Var(&varyMax, "max", 0.05, "range end")
	varyCmd.Flags().IntVar(&varySteps, "steps", 5, "number of steps")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "compare random absorber draws against the bare frame",
		RunE:  runEnsemble,
	}
	addModelFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&trials, "trials", 10, "number of seeds to try")

	studyCmd := &cobra.Command{
		Use:   "study [file]",
		Short: "run a yaml study case by case",
		Args:  cobra.ExactArgs(1),
		RunE:  runStudy,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "chart a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	reportCmd := &cobra.Command{
		Use:   "report [run_id]",
		Short: "render response and mode-shape images",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReport,
	}
	addModelFlags(reportCmd)
	reportCmd.Flags().StringVar(&outDir, "out", "reports", "output directory")
	reportCmd.Flags().BoolVar(&hzAxis, "hz", false, "frequency axis in hz")
	reportCmd.Flags().BoolVar(&linearY, "linear", false, "linear amplitude axis")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored response as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE:  listPresets,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.AddCommand(runCmd, modalCmd, sweepCmd, tuneCmd, varyCmd, ensembleCmd,
		studyCmd, listCmd, plotCmd, reportCmd, exportJSONCmd, exportCSVCmd, presetsCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&floors, "floors", config.DefaultFloors, "number of floors")
	cmd.Flags().Float64Var(&floorMass, "mass", config.DefaultFloorMass, "mass per floor (kg)")
	cmd.Flags().Float64Var(&stiffness, "stiffness", 0, "story stiffness override (n/m)")
	cmd.Flags().Float64Var(&dampingRatio, "damping", config.DefaultDampingRatio, "target damping ratio")
	cmd.Flags().StringVar(&absorberMode, "absorbers", "none", "absorber mode: none, curated, random")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random absorber seed")
	cmd.Flags().IntVar(&count, "count", 2, "random absorber count")
	cmd.Flags().Float64Var(&sweepStart, "start", config.DefaultSweepStart, "sweep start (rad/s)")
	cmd.Flags().Float64Var(&sweepEnd, "end", config.DefaultSweepEnd, "sweep end (rad/s)")
	cmd.Flags().Float64Var(&sweepStep, "step", config.DefaultSweepStep, "sweep step (rad/s)")
	cmd.Flags().StringVar(&onSingular, "on-singular", "skip", "singular grid points: skip or abort")
	cmd.Flags().BoolVar(&signed, "signed", false, "signed real displacement instead of magnitude")
	cmd.Flags().BoolVar(&withAbs, "include-absorbers", false, "include absorber curves in the output")
	cmd.Flags().IntVar(&workers, "workers", 0, "sweep workers (0 = all cpus)")
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("floors") {
		cfg.Floors = floors
	}
	if f.Changed("mass") {
		cfg.FloorMass = floorMass
	}
	if f.Changed("stiffness") {
		cfg.Stiffness = stiffness
		cfg.Stiffnesses = nil
	}
	if f.Changed("damping") {
		cfg.DampingRatio = dampingRatio
	}
	if f.Changed("absorbers") {
		cfg.AbsorberMode = config.AbsorberMode(absorberMode)
	}
	if f.Changed("seed") {
		cfg.Random.Seed = seed
	}
	if f.Changed("count") {
		cfg.Random.Count = count
	}
	if f.Changed("start") {
		cfg.Sweep.StartRad = sweepStart
	}
	if f.Changed("end") {
		cfg.Sweep.EndRad = sweepEnd
	}
	if f.Changed("step") {
		cfg.Sweep.StepRad = sweepStep
	}
	if f.Changed("on-singular") {
		cfg.Sweep.OnSingular = onSingular
	}
	if f.Changed("signed") {
		if signed {
			cfg.Output.Displacement = "signed"
		} else {
			cfg.Output.Displacement = "magnitude"
		}
	}
	if f.Changed("include-absorbers") {
		cfg.Output.IncludeAbsorbers = withAbs
	}
	if f.Changed("workers") {
		cfg.Workers = workers
	}

	return cfg, nil
}

func dofName(d, floors int) string {
	if d < floors {
		return fmt.Sprintf("floor %d", d+1)
	}
	return fmt.Sprintf("absorber %d", d-floors+1)
}

func csvLabel(d, floors int) string {
	if d < floors {
		return fmt.Sprintf("floor%d", d+1)
	}
	return fmt.Sprintf("absorber%d", d-floors+1)
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %d-floor analysis...\n", cfg.Floors)
	start := time.Now()

	res, err := eng.Run()
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	peak := metrics.MaxPeak(res.Response, res.Floors)
	runID, err := st.Save(label, cfg, res, map[string]float64{
		"peak":           peak.Value,
		"peak_omega_rad": peak.Omega,
	})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("dof: %d (%d floors, %d absorbers)\n", res.DOF, res.Floors, len(res.Absorbers))
	fmt.Printf("rayleigh: alpha=%.6f beta=%.6e\n", res.Alpha, res.Beta)

	fmt.Println("\nnatural frequencies:")
	for i, m := range res.Modes {
		fmt.Printf("  mode %d: %.4f rad/s (%.4f hz)\n", i+1, m.Omega, m.Hz)
	}

	fmt.Println("\npeaks:")
	for d, p := range metrics.PeakResponse(res.Response) {
		fmt.Printf("  %s: %.6e m at %.2f rad/s\n", dofName(d, res.Floors), p.Value, p.Omega)
	}

	if n := len(res.Response.Errors); n > 0 {
		fmt.Printf("\nskipped %d singular grid points\n", n)
	}

	return nil
}

func runModal(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}

	coeff := eng.Coefficients()
	fmt.Printf("%d floors, %d dof\n", eng.System().Floors(), eng.System().DOF())
	fmt.Printf("rayleigh: alpha=%.6f beta=%.6e\n\n", coeff.Alpha, coeff.Beta)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tRAD/S\tHZ\tPERIOD")
	for i, m := range eng.Modes() {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4fs\n", i+1, m.Omega, m.Hz, 2*math.Pi/m.Omega)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if showShapes {
		hz := eng.NaturalFrequencies()
		shapes := eng.ModeShapes()
		floors := eng.System().Floors()

		fmt.Println("\nmass-normalized shapes:")
		sw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprint(sw, "DOF")
		for _, f := range hz {
			fmt.Fprintf(sw, "\t%.3f hz", f)
		}
		fmt.Fprintln(sw)
		for d := 0; d < eng.System().DOF(); d++ {
			fmt.Fprint(sw, dofLabel(d, floors))
			for _, s := range shapes {
				fmt.Fprintf(sw, "\t%+.4f", s[d])
			}
			fmt.Fprintln(sw)
		}
		if err := sw.Flush(); err != nil {
			return err
		}
	}

	if abs := eng.Absorbers(); len(abs) > 0 {
		fmt.Println("\nabsorbers:")
		for i, a := range abs {
			fmt.Printf("  %d: floor %d, %.1f kg, %.1f n/m, %.1f n·s/m\n",
				i+1, a.Floor, a.Mass, a.Stiffness, a.Damping)
		}
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}
	res, err := eng.Run()
	if err != nil {
		return err
	}

	floor := plotFloor
	if floor == 0 {
		floor = res.Floors
	}
	if floor < 1 || floor > len(res.Response.Displacements) {
		return fmt.Errorf("no curve for floor %d", floor)
	}

	chart := report.ASCIIFRF(res.Response, floor-1, res.Floors, 80, 15)
	fmt.Println(chart)

	p := metrics.PeakOf(res.Response, floor-1)
	fmt.Printf("\npeak %.6e m at %.2f rad/s (%.2f hz)\n", p.Value, p.Omega, p.Hz)
	if zeta, err := metrics.HalfPowerDamping(res.Response, floor-1); err == nil {
		fmt.Printf("half-power damping estimate %.4f\n", zeta)
	}

	if n := len(res.Response.Errors); n > 0 {
		fmt.Printf("skipped %d singular grid points\n", n)
	}

	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	floor := tuneFloor
	if floor == 0 {
		floor = cfg.Floors
	}
	grid := optim.DefaultGrid(floor)
	combos := len(grid.MassFracs) * len(grid.TuningRatios) * len(grid.DampingRatios) * len(grid.Floors)

	fmt.Printf("searching %d combinations on floor %d...\n", combos, floor)
	start := time.Now()

	res, err := optim.TuneAbsorber(cfg, grid)
	if err != nil {
		return err
	}

	fmt.Printf("evaluated %d in %v\n\n", res.Evaluated, time.Since(start))
	fmt.Printf("bare peak: %.6e m at %.2f rad/s\n", res.BarePeak.Value, res.BarePeak.Omega)

	b := res.Best
	fmt.Printf("best absorber: floor %d, %.1f kg, %.1f n/m, %.1f n·s/m\n",
		b.Absorber.Floor, b.Absorber.Mass, b.Absorber.Stiffness, b.Absorber.Damping)
	fmt.Printf("tuned peak: %.6e m (%.1f%% of bare)\n",
		b.Peak.Value, 100*b.Peak.Value/res.BarePeak.Value)

	if len(res.Attenuation) > 0 {
		fmt.Println("\nper-floor attenuation:")
		for i, r := range res.Attenuation {
			fmt.Printf("  floor %d: %.1f%%\n", i+1, 100*r)
		}
	}

	return nil
}

func runVary(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ps := study.ParameterStudy{Param: args[0], Min: varyMin, Max: varyMax, Steps: varySteps}
	points, err := study.RunParameters(cfg, ps)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tF1_HZ\tPEAK\tAT_RAD/S")
	for _, pt := range points {
		fmt.Fprintf(w, "%.4g\t%.4f\t%.6e\t%.2f\n",
			pt.Value, pt.FundamentalHz, pt.Peak.Value, pt.Peak.Omega)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	peaks := make([]float64, len(points))
	for i, pt := range points {
		peaks[i] = pt.Peak.Value
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(peaks,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("worst peak vs %s", args[0])),
	))

	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, stats, err := study.RunEnsemble(cfg, trials)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tPEAK\tRATIO")
	for _, tr := range results {
		fmt.Fprintf(w, "%d\t%.6e\t%.3f\n", tr.Seed, tr.Peak.Value, tr.Attenuation)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmean ratio: %.3f\n", stats.Mean)
	fmt.Printf("best: %.3f (seed %d)\n", stats.Best, stats.BestSeed)
	fmt.Printf("worst: %.3f\n", stats.Worst)

	return nil
}

func runStudy(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sd, err := study.Load(args[0])
	if err != nil {
		return err
	}
	if sd.Name != "" {
		fmt.Printf("study: %s\n", sd.Name)
	}
	if sd.Description != "" {
		fmt.Println(sd.Description)
	}

	results, err := study.Run(sd, st)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tRUN\tF1_HZ\tPEAK")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.6e\n", r.Label, r.RunID, r.FundamentalHz, r.Peak.Value)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tFLOORS\tDOF\tABSORBERS\tPEAK")
	for _, run := range runs {
		peak := "-"
		if v, ok := run.Metrics["peak"]; ok {
			peak = fmt.Sprintf("%.3e", v)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s (%d)\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Floors,
			run.DOF,
			run.AbsorberMode,
			len(run.Absorbers),
			peak,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	omegas, rows, err := st.LoadResponse(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 || len(omegas) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %d points, %.2f..%.2f rad/s\n\n", len(omegas), omegas[0], omegas[len(omegas)-1])

	res := &sweep.Result{Omegas: omegas, Displacements: rows}
	maxPlots := 6
	for d := 0; d < len(rows) && d < maxPlots; d++ {
		fmt.Println(report.ASCIIFRF(res, d, meta.Floors, 80, 10))
		fmt.Println()
	}

	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	name := "report"

	if len(args) == 1 {
		st := storage.New(dataDir)
		cfg, err = st.LoadConfig(args[0])
		if err != nil {
			return err
		}
		name = args[0]
	} else {
		cfg, err = resolveConfig(cmd)
		if err != nil {
			return err
		}
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}
	res, err := eng.Run()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	frfPath := filepath.Join(outDir, name+"_frf.png")
	err = report.SaveFRF(frfPath, res.Response, res.Floors, report.FRFOptions{
		HzAxis: hzAxis,
		LogY:   !linearY,
	})
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", frfPath)

	modesPath := filepath.Join(outDir, name+"_modes.png")
	if err := report.SaveModes(modesPath, res.Modes, res.Floors, ""); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", modesPath)

	return nil
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	cfg, err := st.LoadConfig(runID)
	if err != nil {
		return err
	}

	// Replay the stored configuration; the pipeline is deterministic.
	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}
	res, err := eng.Run()
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta.ID, res, meta.Metrics)
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	omegas, rows, err := st.LoadResponse(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"omega_rad", "hz"}
	for d := range rows {
		header = append(header, csvLabel(d, meta.Floors))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range omegas {
		row := []string{
			strconv.FormatFloat(omegas[i], 'g', -1, 64),
			strconv.FormatFloat(omegas[i]/(2*math.Pi), 'g', -1, 64),
		}
		for d := range rows {
			row = append(row, strconv.FormatFloat(rows[d][i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFLOORS\tDAMPING\tABSORBERS")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%s\n", name, cfg.Floors, cfg.DampingRatio, absorberSummary(cfg))
	}
	return w.Flush()
}

func absorberSummary(cfg *config.Config) string {
	switch cfg.AbsorberMode {
	case config.AbsorberCurated:
		return fmt.Sprintf("%d curated", len(cfg.Absorbers))
	case config.AbsorberRandom:
		return fmt.Sprintf("%d random (seed %d)", cfg.Random.Count, cfg.Random.Seed)
	default:
		return "none"
	}
}

func dofLabel(d, floors int) string {
	if d < floors {
		return fmt.Sprintf("floor%d", d+1)
	}
	return fmt.Sprintf("absorber%d", d-floors+1)
}
