package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dynvec/internal/automation"
	"github.com/san-kum/dynvec/internal/config"
	"github.com/san-kum/dynvec/internal/experiment"
	"github.com/san-kum/dynvec/internal/export"
	"github.com/san-kum/dynvec/internal/optim"
	"github.com/san-kum/dynvec/internal/storage"
	"github.com/san-kum/dynvec/internal/tui"
	"github.com/san-kum/dynvec/internal/vector"
	"github.com/san-kum/dynvec/internal/viz"
	"github.com/san-kum/dynvec/internal/workload"
	"github.com/spf13/cobra"
)

var (
	dataDir         string
	ops             int
	initialCapacity int
	growthFactor    float64
	seed            int64
	noTrace         bool
	verbose         bool
	iterations      int
	compareOps      int
	playCapacity    int
	playGrowth      float64
	numTrials       int
	tuneMetric      string
	growthRange     []float64
	capacityRange   []float64
	// Live view
	live      bool
	frameRate int
	// Config file
	configFile string
	// Preset name
	preset string
)

// main registers the dynvec commands and runs the playground when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "dynvec",
		Short: "dynamic array workbench",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunPlayground(workload.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dynvec", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [workload]",
		Short: "run a workload against a vector and save the trace",
		Args:  cobra.ExactArgs(1),
		RunE:  runWorkload,
	}
	addWorkloadFlags(runCmd)
	runCmd.Flags().BoolVar(&noTrace, "no-trace", false, "skip recording the len/cap trace")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log run progress to stderr")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&live, "live", false, "draw the slot diagram while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot length and capacity of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "chart length and capacity of a run as SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [workload]",
		Short: "time a workload at several sizes",
		Args:  cobra.ExactArgs(1),
		RunE:  benchWorkload,
	}
	benchCmd.Flags().IntVar(&iterations, "n", 5, "iterations per size")
	benchCmd.Flags().Float64Var(&growthFactor, "growth", vector.DefaultGrowth, "growth factor")

	compareCmd := &cobra.Command{
		Use:   "compare [workload] [growth1] [growth2] ...",
		Short: "compare growth factors on the same workload",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareGrowth,
	}
	compareCmd.Flags().IntVar(&compareOps, "ops", 10000, "number of ops")
	compareCmd.Flags().IntVar(&initialCapacity, "cap", vector.DefaultCapacity, "initial capacity")
	compareCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")

	tuneCmd := &cobra.Command{
		Use:   "tune [workload]",
		Short: "grid search growth factor and initial capacity",
		Args:  cobra.ExactArgs(1),
		RunE:  tuneWorkload,
	}
	tuneCmd.Flags().IntVar(&ops, "ops", config.DefaultOps, "number of ops")
	tuneCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "copies_per_append", "metric to minimise")
	tuneCmd.Flags().Float64SliceVar(&growthRange, "growth-range", []float64{1.25, 1.5, 2, 3}, "growth factors to try")
	tuneCmd.Flags().Float64SliceVar(&capacityRange, "cap-range", []float64{0, 4, 20, 64}, "initial capacities to try")

	trialsCmd := &cobra.Command{
		Use:   "trials [workload]",
		Short: "run a workload under consecutive seeds and summarise",
		Args:  cobra.ExactArgs(1),
		RunE:  seedTrials,
	}
	addWorkloadFlags(trialsCmd)
	trialsCmd.Flags().IntVar(&numTrials, "trials", 20, "number of seeds")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of workloads",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [workload]",
		Short: "list available presets for a workload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for workload: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	workloadsCmd := &cobra.Command{
		Use:   "workloads",
		Short: "list available workloads",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range registry.ListWorkloads() {
				fmt.Fprintf(w, "%s\t%s\n", name, registry.Describe(name))
			}
			return w.Flush()
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "interactive vector playground",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := workload.DefaultConfig()
			cfg.InitialCapacity = playCapacity
			cfg.GrowthFactor = playGrowth
			return viz.RunPlayground(cfg)
		},
	}
	playCmd.Flags().IntVar(&playCapacity, "cap", 4, "initial capacity")
	playCmd.Flags().Float64Var(&playGrowth, "growth", 2.0, "growth factor")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, benchCmd, compareCmd,
		tuneCmd, trialsCmd, scenarioCmd, presetsCmd, workloadsCmd, initConfigCmd, playCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addWorkloadFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&ops, "ops", config.DefaultOps, "number of ops")
	cmd.Flags().IntVar(&initialCapacity, "cap", vector.DefaultCapacity, "initial capacity")
	cmd.Flags().Float64Var(&growthFactor, "growth", vector.DefaultGrowth, "growth factor")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
}

// resolveConfig layers flags over the config file over the preset.
func resolveConfig(cmd *cobra.Command, name string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Workload = name

	if preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
		cfg.Workload = name
	}

	if cmd.Flags().Changed("ops") || (preset == "" && configFile == "") {
		cfg.Ops = ops
	}
	if cmd.Flags().Changed("cap") || (preset == "" && configFile == "") {
		cfg.InitialCapacity = initialCapacity
	}
	if cmd.Flags().Changed("growth") || (preset == "" && configFile == "") {
		cfg.GrowthFactor = growthFactor
	}
	if cmd.Flags().Changed("seed") || (preset == "" && configFile == "") {
		cfg.Seed = seed
	}
	if noTrace {
		cfg.RecordTrace = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runWorkload(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := resolveConfig(cmd, name)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	gen, err := registry.GetWorkload(name)
	if err != nil {
		return err
	}

	var logger *log.Logger
	if verbose {
		logger = log.New(os.Stderr, "dynvec: ", log.LstdFlags|log.Lmicroseconds)
	}

	exp := experiment.New(experiment.Config{
		Workload:        name,
		Ops:             cfg.Ops,
		InitialCapacity: cfg.InitialCapacity,
		GrowthFactor:    cfg.GrowthFactor,
		Seed:            cfg.Seed,
		RecordTrace:     cfg.RecordTrace,
		Logger:          logger,
	})
	if err := exp.Setup(gen, registry.DefaultMetrics()); err != nil {
		return err
	}

	var renderer *tui.LiveRenderer
	if live {
		renderer = tui.NewLiveRenderer(os.Stdout, name, frameRate)
		exp.GetRunner().AddObserver(renderer)
		renderer.Start()
	}

	fmt.Printf("running %s workload (%d ops)...\n", name, cfg.Ops)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if renderer != nil {
		renderer.Stop()
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Workload:        name,
		Seed:            cfg.Seed,
		InitialCapacity: cfg.InitialCapacity,
		GrowthFactor:    cfg.GrowthFactor,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final len: %d\n", len(result.Final))
	fmt.Printf("step errors: %d\n", len(result.Errors))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.4f\n", name, val)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tWORKLOAD\tTIME\tOPS\tGROWTH\tLEN\tREALLOCS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%d\t%d\n",
			run.ID,
			run.Workload,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ops,
			run.GrowthFactor,
			run.FinalLen,
			run.Stats.Reallocations,
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

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("workload: %s\n", meta.Workload)
	fmt.Printf("samples: %d\n\n", len(trace))

	lens := make([]float64, len(trace))
	caps := make([]float64, len(trace))
	for i, p := range trace {
		lens[i] = float64(p.Len)
		caps[i] = float64(p.Cap)
	}

	graph := asciigraph.PlotMany([][]float64{caps, lens},
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("capacity (upper) and length (lower) per step"),
	)
	fmt.Println(graph)
	fmt.Println()

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(os.Stdout, args[0])
}

func benchWorkload(cmd *cobra.Command, args []string) error {
	name := args[0]

	registry := experiment.NewRegistry()
	gen, err := registry.GetWorkload(name)
	if err != nil {
		return err
	}

	sizes := []int{1000, 10000, 100000}

	fmt.Printf("benchmarking %s (growth %.2f)\n\n", name, growthFactor)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OPS\tITER\tTIME/RUN\tOPS/SEC\tCOPIES/APPEND")

	for _, n := range sizes {
		exp := experiment.New(experiment.Config{
			Workload:        name,
			Ops:             n,
			InitialCapacity: vector.DefaultCapacity,
			GrowthFactor:    growthFactor,
			Seed:            42,
		})
		if err := exp.Setup(gen, registry.DefaultMetrics()); err != nil {
			return err
		}

		var total time.Duration
		var result *workload.Result
		for i := 0; i < iterations; i++ {
			start := time.Now()
			result, err = exp.Run(context.Background())
			if err != nil {
				return err
			}
			total += time.Since(start)
		}

		perRun := total / time.Duration(max(iterations, 1))
		opsPerSec := 0.0
		if perRun > 0 {
			opsPerSec = float64(n) / perRun.Seconds()
		}
		copies := 0.0
		if result != nil {
			copies = result.Metrics["copies_per_append"]
		}
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.3f\n", n, iterations, perRun, opsPerSec, copies)
	}

	return w.Flush()
}

func compareGrowth(cmd *cobra.Command, args []string) error {
	name := args[0]

	registry := experiment.NewRegistry()
	gen, err := registry.GetWorkload(name)
	if err != nil {
		return err
	}

	fmt.Printf("comparing growth factors for %s (ops=%d, cap=%d)\n\n", name, compareOps, initialCapacity)
	fmt.Printf("%-8s  %-10s  %-10s  %-10s  %-10s\n", "growth", "reallocs", "peak_cap", "copies/app", "slack")
	fmt.Println(strings.Repeat("-", 56))

	factors := make([]float64, 0, len(args)-1)
	for _, arg := range args[1:] {
		factor, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			fmt.Printf("%-8s  error: %v\n", arg, err)
			continue
		}
		factors = append(factors, factor)
	}

	sweep := experiment.NewSweep(experiment.Config{
		Workload:        name,
		Ops:             compareOps,
		InitialCapacity: initialCapacity,
		Seed:            seed,
		RecordTrace:     true,
	}, gen, registry.DefaultMetrics)

	results, err := sweep.Run(context.Background(), factors)
	if err != nil {
		return err
	}

	var series [][]float64
	for i, result := range results {
		fmt.Printf("%-8.2f  %10.0f  %10.0f  %10.3f  %10.3f\n",
			factors[i],
			result.Metrics["reallocations"],
			result.Metrics["peak_capacity"],
			result.Metrics["copies_per_append"],
			result.Metrics["slack"],
		)

		caps := make([]float64, len(result.Capacities))
		for j, c := range result.Capacities {
			caps[j] = float64(c)
		}
		series = append(series, caps)
	}

	if len(series) > 0 {
		fmt.Println()
		fmt.Println(asciigraph.PlotMany(series,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("capacity per step, one line per growth factor"),
		))
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID, path := args[0], args[1]

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	st := storage.New(dataDir)
	if err := export.WriteTraceSVG(f, st, runID, 800, 400); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func tuneWorkload(cmd *cobra.Command, args []string) error {
	name := args[0]

	registry := experiment.NewRegistry()
	gen, err := registry.GetWorkload(name)
	if err != nil {
		return err
	}

	search, err := optim.NewGridSearch(
		[]string{optim.ParamGrowth, optim.ParamCapacity},
		[][]float64{growthRange, capacityRange},
	)
	if err != nil {
		return err
	}

	base := experiment.Config{Workload: name, Ops: ops, Seed: seed}
	fmt.Printf("tuning %s on %s (%d combinations)...\n\n", name, tuneMetric, len(growthRange)*len(capacityRange))

	best, trials, err := search.Search(context.Background(), optim.ExperimentFor(base, gen, registry), tuneMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "GROWTH\tCAP\t%s\n", strings.ToUpper(tuneMetric))
	for _, t := range trials {
		score := fmt.Sprintf("%.4f", t.Score)
		if t.Err != nil {
			score = "error: " + t.Err.Error()
		}
		fmt.Fprintf(w, "%.2f\t%.0f\t%s\n", t.Params[optim.ParamGrowth], t.Params[optim.ParamCapacity], score)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: growth=%.2f cap=%.0f %s=%.4f\n",
		best.Params[optim.ParamGrowth], best.Params[optim.ParamCapacity], tuneMetric, best.Score)
	return nil
}

func seedTrials(cmd *cobra.Command, args []string) error {
	name := args[0]

	trials, err := automation.RunSeedTrials(context.Background(), &automation.SeedTrialsConfig{
		Workload:        name,
		Ops:             ops,
		InitialCapacity: initialCapacity,
		GrowthFactor:    growthFactor,
		NumTrials:       numTrials,
		Seed:            seed,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d seeds from %d\n\n", name, len(trials), seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMIN\tMEAN\tMAX")
	for _, metric := range []string{"copies_per_append", "reallocations", "peak_capacity", "slack"} {
		s := automation.Summarize(trials, metric)
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n", metric, s.Min, s.Mean, s.Max)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}

	results, err := automation.RunScenario(context.Background(), scenario, experiment.NewRegistry(), st, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tWORKLOAD\tOPS\tGROWTH\tREALLOCS\tRUN")
	for _, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%d\t%s\n",
			r.Step, r.Config.Workload, r.Config.Ops, r.Config.GrowthFactor, r.Result.Stats.Reallocations, runID)
	}
	return w.Flush()
}
