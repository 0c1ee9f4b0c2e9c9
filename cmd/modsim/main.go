package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/DannyLionel/modsim/internal/config"
	"github.com/DannyLionel/modsim/internal/dataset"
	"github.com/DannyLionel/modsim/internal/fit"
	"github.com/DannyLionel/modsim/internal/integrators"
	"github.com/DannyLionel/modsim/internal/metrics"
	"github.com/DannyLionel/modsim/internal/models"
	"github.com/DannyLionel/modsim/internal/sim"
	"github.com/DannyLionel/modsim/internal/storage"
	"github.com/DannyLionel/modsim/internal/tui"
	"github.com/DannyLionel/modsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	start      float64
	end        float64
	initTemp   float64
	initTemp2  float64
	rate       float64
	ambient    float64
	coupling   float64
	loss1      float64
	loss2      float64
	integrator string
	configFile string
	preset     string
	threshold  float64
	// mix
	vol1, temp1 float64
	vol2, temp2 float64
	// fit
	observed float64
	rateLo   float64
	rateHi   float64
	// export
	outFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "modsim",
		Short: "thermal modeling and simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".modsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().Float64Var(&threshold, "threshold", 60.0, "drinkable temperature threshold")

	mixCmd := &cobra.Command{
		Use:   "mix",
		Short: "blend two liquids",
		RunE:  runMix,
	}
	mixCmd.Flags().Float64Var(&vol1, "v1", 300, "first volume (ml)")
	mixCmd.Flags().Float64Var(&temp1, "t1", 90, "first temperature")
	mixCmd.Flags().Float64Var(&vol2, "v2", 50, "second volume (ml)")
	mixCmd.Flags().Float64Var(&temp2, "t2", 5, "second temperature")

	fitCmd := &cobra.Command{
		Use:   "fit",
		Short: "estimate the cooling rate from an observed end temperature",
		RunE:  runFit,
	}
	fitCmd.Flags().Float64Var(&dt, "dt", 1.0, "timestep")
	fitCmd.Flags().Float64Var(&end, "end", 30.0, "end time")
	fitCmd.Flags().Float64Var(&initTemp, "init", 90.0, "initial temperature")
	fitCmd.Flags().Float64Var(&ambient, "ambient", 22.0, "ambient temperature")
	fitCmd.Flags().Float64Var(&observed, "observed", 70.0, "observed end temperature")
	fitCmd.Flags().Float64Var(&rateLo, "lo", 0.0, "rate bracket lower bound")
	fitCmd.Flags().Float64Var(&rateHi, "hi", 1.0, "rate bracket upper bound")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	rmCmd := &cobra.Command{
		Use:   "rm [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  removeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list preset configurations",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	tableCmd := &cobra.Command{
		Use:   "table [file.csv]",
		Short: "render a label,value dataset as a table and chart",
		Args:  cobra.ExactArgs(1),
		RunE:  showTable,
	}

	rootCmd.AddCommand(runCmd, mixCmd, fitCmd, listCmd, plotCmd, exportCmd, rmCmd, liveCmd, presetsCmd, tableCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&start, "start", 0.0, "start time")
	cmd.Flags().Float64Var(&end, "end", config.DefaultEnd, "end time")
	cmd.Flags().Float64Var(&initTemp, "init", config.DefaultInit, "initial temperature")
	cmd.Flags().Float64Var(&initTemp2, "init2", config.DefaultAmbient, "second body initial temperature (twobody)")
	cmd.Flags().Float64Var(&rate, "rate", config.DefaultRate, "cooling rate constant")
	cmd.Flags().Float64Var(&ambient, "ambient", config.DefaultAmbient, "ambient temperature")
	cmd.Flags().Float64Var(&coupling, "coupling", 0.05, "body coupling (twobody)")
	cmd.Flags().Float64Var(&loss1, "loss1", 0.01, "first body ambient loss (twobody)")
	cmd.Flags().Float64Var(&loss2, "loss2", 0.02, "second body ambient loss (twobody)")
	cmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator (euler, rk4)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset < config file < defaults, then flags on top of
// whatever the user changed explicitly.
func resolveConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for model %q", preset, model)
		}
		*cfg = *p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		cfg.Model = model
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("start") {
		cfg.Start = start
	}
	if flags.Changed("end") {
		cfg.End = end
	}
	if flags.Changed("init") {
		cfg.Init.Temp = initTemp
	}
	if flags.Changed("init2") {
		cfg.Init.Temp2 = initTemp2
	}
	if flags.Changed("rate") {
		cfg.Params.Rate = rate
	}
	if flags.Changed("ambient") {
		cfg.Params.Ambient = ambient
	}
	if flags.Changed("coupling") {
		cfg.Params.Coupling = coupling
	}
	if flags.Changed("loss1") {
		cfg.Params.Loss1 = loss1
	}
	if flags.Changed("loss2") {
		cfg.Params.Loss2 = loss2
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}

	return cfg, nil
}

func buildModel(cfg *config.Config) (sim.System, error) {
	switch cfg.Model {
	case "cooling":
		m := models.NewNewtonCooling()
		m.Rate = cfg.Params.Rate
		m.Ambient = cfg.Params.Ambient
		return m, nil
	case "twobody":
		m := models.NewTwoBody()
		if cfg.Params.Coupling != 0 {
			m.Coupling = cfg.Params.Coupling
		}
		if cfg.Params.Loss1 != 0 {
			m.Loss1 = cfg.Params.Loss1
		}
		if cfg.Params.Loss2 != 0 {
			m.Loss2 = cfg.Params.Loss2
		}
		m.Ambient = cfg.Params.Ambient
		return m, nil
	default:
		return nil, fmt.Errorf("unknown model: %s", cfg.Model)
	}
}

func buildIntegrator(name string) (sim.Integrator, error) {
	switch name {
	case "euler":
		return integrators.NewEuler(), nil
	case "rk4":
		return integrators.NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func modelParams(cfg *config.Config) map[string]float64 {
	switch cfg.Model {
	case "twobody":
		return map[string]float64{
			"coupling": cfg.Params.Coupling,
			"loss1":    cfg.Params.Loss1,
			"loss2":    cfg.Params.Loss2,
			"ambient":  cfg.Params.Ambient,
		}
	default:
		return map[string]float64{
			"rate":    cfg.Params.Rate,
			"ambient": cfg.Params.Ambient,
		}
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	dyn, err := buildModel(cfg)
	if err != nil {
		return err
	}
	integ, err := buildIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	s := sim.New(dyn, integ)
	s.AddMetric(metrics.NewMeanTemperature())
	s.AddMetric(metrics.NewTimeAbove(threshold))
	s.AddMetric(metrics.NewAmbientGap(cfg.Params.Ambient))

	runCfg := sim.Config{Dt: cfg.Dt, Start: cfg.Start, End: cfg.End}
	x0 := sim.State(cfg.GetInitState())

	fmt.Printf("running %s simulation...\n", cfg.Model)
	startedAt := time.Now()

	result, err := s.Run(context.Background(), x0, runCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(startedAt)

	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	runID, err := st.Save(storage.RunMetadata{
		Model:      cfg.Model,
		Integrator: cfg.Integrator,
		Dt:         cfg.Dt,
		Start:      cfg.Start,
		End:        cfg.End,
		Params:     modelParams(cfg),
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.States))
	fmt.Printf("final temp: %.4f\n", result.Final()[0])
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runMix(cmd *cobra.Command, args []string) error {
	blend, err := models.Mix(
		models.Liquid{Volume: vol1, Temperature: temp1},
		models.Liquid{Volume: vol2, Temperature: temp2},
	)
	if err != nil {
		return err
	}

	fmt.Printf("%.0f ml @ %.1f° + %.0f ml @ %.1f° = %.0f ml @ %.3f°\n",
		vol1, temp1, vol2, temp2, blend.Volume, blend.Temperature)
	return nil
}

func runFit(cmd *cobra.Command, args []string) error {
	r, err := fit.Rate(context.Background(), fit.Observation{
		Init:    initTemp,
		Ambient: ambient,
		Final:   observed,
	}, fit.Options{
		Cfg: sim.Config{Dt: dt, Start: 0, End: end},
		Lo:  rateLo,
		Hi:  rateHi,
	})
	if err != nil {
		return err
	}

	fmt.Printf("estimated rate: %.6f\n", r)
	fmt.Printf("(init %.1f°, ambient %.1f°, observed %.1f° at t=%.1f)\n",
		initTemp, ambient, observed, end)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tCREATED\tSPAN\tDT\tINTEG")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%.1f, %.1f]\t%.3f\t%s\n",
			run.ID,
			run.Model,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Start,
			run.End,
			run.Dt,
			run.Integrator,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, states, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d over [%.1f, %.1f]\n\n", len(states), times[0], times[len(times)-1])

	series := make([][]float64, len(states[0]))
	for i := range series {
		series[i] = make([]float64, len(states))
		for j := range states {
			series[i][j] = states[j][i]
		}
	}

	if len(series) == 1 {
		fmt.Println(viz.Temperature(series[0], "temperature"))
	} else {
		fmt.Println(viz.Compare(series, "temperatures"))
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, states, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	payload := struct {
		ID         string             `json:"id"`
		Model      string             `json:"model"`
		Integrator string             `json:"integrator"`
		Dt         float64            `json:"dt"`
		Start      float64            `json:"start"`
		End        float64            `json:"end"`
		Params     map[string]float64 `json:"params"`
		Metrics    map[string]float64 `json:"metrics"`
		Times      []float64          `json:"times"`
		States     []sim.State        `json:"states"`
	}{
		ID:         meta.ID,
		Model:      meta.Model,
		Integrator: meta.Integrator,
		Dt:         meta.Dt,
		Start:      meta.Start,
		End:        meta.End,
		Params:     meta.Params,
		Metrics:    meta.Metrics,
		Times:      times,
		States:     states,
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func removeRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	dyn, err := buildModel(cfg)
	if err != nil {
		return err
	}
	integ, err := buildIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	runCfg := sim.Config{Dt: cfg.Dt, Start: cfg.Start, End: cfg.End}
	return tui.Run(dyn, integ, sim.State(cfg.GetInitState()), runCfg, cfg.Model)
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := []string{"cooling", "twobody"}
	if len(args) == 1 {
		names = args
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tPRESET")
	for _, model := range names {
		for _, p := range config.ListPresets(model) {
			fmt.Fprintf(w, "%s\t%s\n", model, p)
		}
	}
	return w.Flush()
}

func showTable(cmd *cobra.Command, args []string) error {
	series, err := dataset.ReadCSV(args[0])
	if err != nil {
		return err
	}

	if err := series.Render(os.Stdout); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(viz.Temperature(series.Values(), series.Name))
	return nil
}
