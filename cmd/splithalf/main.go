package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/splithalf/internal/config"
	"github.com/san-kum/splithalf/internal/export"
	"github.com/san-kum/splithalf/internal/narray"
	"github.com/san-kum/splithalf/internal/shrink"
	"github.com/san-kum/splithalf/internal/storage"
	"github.com/san-kum/splithalf/internal/synth"
	"github.com/san-kum/splithalf/internal/viz"
)

var (
	dataDir string
	// estimate inputs
	x1Path         string
	x2Path         string
	oddPath        string
	evenPath       string
	estShape       []int
	simShape       []int
	poolNoise      bool
	scalarSubjects bool
	configFile     string
	// simulate parameters
	subjects   int
	meanSpread float64
	betweenSD  float64
	sessionSD  float64
	noiseSD    float64
	seed         uint64
	replications int
	preset       string
	// export-svg
	svgOut    string
	svgMetric string
	svgCell   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "splithalf",
		Short: "split-half variance decomposition and shrinkage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")

	estimateCmd := &cobra.Command{
		Use:   "estimate",
		Short: "decompose and shrink a measured cohort",
		RunE:  runEstimate,
	}
	estimateCmd.Flags().StringVar(&x1Path, "x1", "", "first half-length split CSV")
	estimateCmd.Flags().StringVar(&x2Path, "x2", "", "second half-length split CSV")
	estimateCmd.Flags().StringVar(&oddPath, "odd", "", "odd-trial split CSV")
	estimateCmd.Flags().StringVar(&evenPath, "even", "", "even-trial split CSV")
	estimateCmd.Flags().IntSliceVar(&estShape, "shape", nil, "parameter axes to reshape rows into, e.g. 8,8")
	estimateCmd.Flags().BoolVar(&poolNoise, "pool", true, "pool the sampling variance across parameters")
	estimateCmd.Flags().BoolVar(&scalarSubjects, "scalar-subjects", false, "treat rank-1 input as one subject per element")
	estimateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "generate a synthetic cohort and check component recovery",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().IntSliceVar(&simShape, "shape", []int{8, 8}, "parameter axes")
	simulateCmd.Flags().IntVar(&subjects, "subjects", config.DefaultSubjects, "cohort size")
	simulateCmd.Flags().Float64Var(&meanSpread, "mean-spread", config.DefaultMeanSpread, "spread of population means")
	simulateCmd.Flags().Float64Var(&betweenSD, "between-sd", config.DefaultBetweenSD, "between-subject sd")
	simulateCmd.Flags().Float64Var(&sessionSD, "session-sd", config.DefaultSessionSD, "per-session drift sd")
	simulateCmd.Flags().Float64Var(&noiseSD, "noise-sd", config.DefaultNoiseSD, "full-length noise sd")
	simulateCmd.Flags().Uint64Var(&seed, "seed", config.DefaultSeed, "random seed")
	simulateCmd.Flags().IntVar(&replications, "replications", 1, "replicate cohorts with consecutive seeds")
	simulateCmd.Flags().BoolVar(&poolNoise, "pool", true, "pool the sampling variance across parameters")
	simulateCmd.Flags().StringVar(&preset, "preset", "", "use a named cohort regime")
	simulateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot component profiles of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	browseCmd := &cobra.Command{
		Use:   "browse [run_id]",
		Short: "browse per-parameter components interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  browseRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run components to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a component field as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>_<metric>.svg)")
	exportSVGCmd.Flags().StringVar(&svgMetric, "metric", "lambda", "component to render: sampling, session, within, between, total, lambda")
	exportSVGCmd.Flags().Float64Var(&svgCell, "cell", 16, "heatmap cell size in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list cohort regimes for simulate",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSHAPE\tSUBJECTS\tBETWEEN\tSESSION\tNOISE")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%v\t%d\t%.2f\t%.2f\t%.2f\n",
					name, p.Shape, p.Subjects, p.BetweenSD, p.SessionSD, p.NoiseSD)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(estimateCmd, simulateCmd, listCmd, plotCmd, browseCmd, exportCmd, exportCSVCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEstimate(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("x1") {
			x1Path = cfg.Estimate.X1
		}
		if !cmd.Flags().Changed("x2") {
			x2Path = cfg.Estimate.X2
		}
		if !cmd.Flags().Changed("odd") {
			oddPath = cfg.Estimate.Odd
		}
		if !cmd.Flags().Changed("even") {
			evenPath = cfg.Estimate.Even
		}
		if !cmd.Flags().Changed("pool") {
			poolNoise = cfg.Estimate.PoolNoise
		}
		if !cmd.Flags().Changed("scalar-subjects") {
			scalarSubjects = cfg.Estimate.ScalarSubjects
		}
		if !cmd.Flags().Changed("data") {
			dataDir = cfg.DataDir
		}
	}

	if x1Path == "" || x2Path == "" || oddPath == "" || evenPath == "" {
		return fmt.Errorf("all four replicate arrays are required: --x1, --x2, --odd, --even")
	}

	x1, err := loadReplicate(x1Path)
	if err != nil {
		return err
	}
	x2, err := loadReplicate(x2Path)
	if err != nil {
		return err
	}
	odd, err := loadReplicate(oddPath)
	if err != nil {
		return err
	}
	even, err := loadReplicate(evenPath)
	if err != nil {
		return err
	}

	opts := shrink.Options{PoolNoise: poolNoise, ScalarSubjects: scalarSubjects}

	start := time.Now()
	res, err := shrink.Estimate(x1, x2, odd, even, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save("estimate", 0, opts, res)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)
	printSummary(res)
	return nil
}

// loadReplicate reads one replicate CSV and reshapes its parameter rows to
// the requested axes, keeping subjects on the trailing axis.
func loadReplicate(path string) (*narray.Dense, error) {
	a, err := storage.ReadArray(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(estShape) == 0 {
		return a, nil
	}
	shape := append(append([]int(nil), estShape...), a.Subjects())
	out, err := a.Reshape(shape...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	params := synth.Params{
		Shape:      simShape,
		Subjects:   subjects,
		MeanSpread: meanSpread,
		BetweenSD:  betweenSD,
		SessionSD:  sessionSD,
		NoiseSD:    noiseSD,
		Seed:       seed,
	}

	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		params = cfg.Synth.Params()
		if cmd.Flags().Changed("seed") {
			params.Seed = seed
		}
		if cmd.Flags().Changed("subjects") {
			params.Subjects = subjects
		}
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		params = cfg.Synth.Params()
		if !cmd.Flags().Changed("data") {
			dataDir = cfg.DataDir
		}
	}

	cohort, err := synth.Generate(params)
	if err != nil {
		return err
	}

	opts := shrink.Options{PoolNoise: poolNoise}
	res, err := shrink.Estimate(cohort.X1, cohort.X2, cohort.Odd, cohort.Even, opts)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save("simulate", params.Seed, opts, res)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n\n", runID)
	printSummary(res)
	fmt.Println()
	printRecovery(res, cohort.Truth)

	if replications > 1 {
		fmt.Println()
		return runReplications(params, opts, cohort.Truth)
	}
	return nil
}

// runReplications repeats the study with consecutive seeds and reports the
// spread of the mean shrinkage weight across replicates.
func runReplications(params synth.Params, opts shrink.Options, truth synth.Truth) error {
	ens := synth.NewEnsemble(params, replications)
	results, err := ens.Run(context.Background(), opts)
	if err != nil {
		return err
	}

	means := make([]float64, len(results))
	for i, res := range results {
		means[i] = stat.Mean(res.Components.Lambda.Data(), nil)
	}

	fmt.Println(viz.Header.Render(fmt.Sprintf("lambda across %d replicates", replications)))
	fmt.Printf("truth: %.4f\n", truth.Lambda)
	fmt.Printf("mean:  %.4f  sd: %.4f  min: %.4f  max: %.4f\n",
		stat.Mean(means, nil), stat.StdDev(means, nil), minOf(means), maxOf(means))
	return nil
}

func printSummary(res *shrink.Result) {
	c := res.Components
	lambda := c.Lambda.Data()

	fmt.Println(viz.Header.Render("decomposition summary"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%v\n", viz.MetricLabel.Render("shape"), res.Shrunk.Shape())
	fmt.Fprintf(w, "%s\t%d\n", viz.MetricLabel.Render("subjects"), res.Subjects)
	fmt.Fprintf(w, "%s\t%d\n", viz.MetricLabel.Render("parameters"), res.Shrunk.Params())
	if c.Pooled {
		fmt.Fprintf(w, "%s\t%s\n", viz.MetricLabel.Render("sampling (pooled)"),
			viz.MetricValue.Render(fmt.Sprintf("%.6g", c.Sampling.Data()[0])))
	}
	mean := stat.Mean(lambda, nil)
	fmt.Fprintf(w, "%s\t%s\n", viz.MetricLabel.Render("lambda mean"),
		viz.LambdaStyle(mean).Render(fmt.Sprintf("%.4f", mean)))
	fmt.Fprintf(w, "%s\t%.4f / %.4f\n", viz.MetricLabel.Render("lambda min/max"),
		minOf(lambda), maxOf(lambda))
	w.Flush()
}

func printRecovery(res *shrink.Result, truth synth.Truth) {
	c := res.Components

	fmt.Println(viz.Header.Render("recovery against generative truth"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tTRUTH\tESTIMATE\tREL ERR")
	rows := []struct {
		name  string
		truth float64
		est   float64
	}{
		{"sampling", truth.Sampling, stat.Mean(c.Sampling.Data(), nil)},
		{"session", truth.Session, stat.Mean(c.Session.Data(), nil)},
		{"within", truth.Within, stat.Mean(c.Within.Data(), nil)},
		{"between", truth.Between, stat.Mean(c.Between.Data(), nil)},
		{"total", truth.Total, stat.Mean(c.Total.Data(), nil)},
		{"lambda", truth.Lambda, stat.Mean(c.Lambda.Data(), nil)},
	}
	for _, r := range rows {
		rel := math.NaN()
		if r.truth != 0 {
			rel = (r.est - r.truth) / r.truth
		}
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%+.2f%%\n", r.name, r.truth, r.est, rel*100)
	}
	w.Flush()
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
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tSHAPE\tSUBJECTS\tLAMBDA")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%d\t%.4f\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Shape,
			run.Subjects,
			run.Summary["lambda_mean"],
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
	table, err := st.LoadComponents(runID)
	if err != nil {
		return err
	}
	if len(table.Lambda) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("shape: %v, subjects: %d\n\n", meta.Shape, meta.Subjects)
	fmt.Print(viz.ComponentProfiles(table))
	return nil
}

func browseRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	table, err := st.LoadComponents(runID)
	if err != nil {
		return err
	}

	return viz.RunBrowse(meta, table)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	table, err := st.LoadComponents(runID)
	if err != nil {
		return err
	}
	shrunk, err := st.LoadShrunk(runID)
	if err != nil {
		return err
	}

	return export.WriteJSON(os.Stdout, meta, table, shrunk)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	table, err := st.LoadComponents(runID)
	if err != nil {
		return err
	}
	if len(table.Lambda) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"param", "sampling", "session", "within", "between", "total", "lambda"}); err != nil {
		return err
	}
	for j := range table.Lambda {
		row := []string{
			strconv.Itoa(j),
			formatFloat(table.Sampling[j]),
			formatFloat(table.Session[j]),
			formatFloat(table.Within[j]),
			formatFloat(table.Between[j]),
			formatFloat(table.Total[j]),
			formatFloat(table.Lambda[j]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	table, err := st.LoadComponents(runID)
	if err != nil {
		return err
	}

	var values []float64
	switch svgMetric {
	case "sampling":
		values = table.Sampling
	case "session":
		values = table.Session
	case "within":
		values = table.Within
	case "between":
		values = table.Between
	case "total":
		values = table.Total
	case "lambda":
		values = table.Lambda
	default:
		return fmt.Errorf("unknown metric: %s", svgMetric)
	}
	if len(values) == 0 {
		return fmt.Errorf("no data to render")
	}

	// matrix-shaped parameters render as a heatmap, everything else as a
	// profile over the flattened index
	paramAxes := meta.Shape[:len(meta.Shape)-1]
	var svg string
	if len(paramAxes) == 2 {
		svg = export.HeatmapSVG(values, paramAxes[0], paramAxes[1], svgCell)
	} else {
		svg = export.ProfileSVG(values, 800, 240, "#00ff88")
	}
	if svg == "" {
		return fmt.Errorf("nothing to render for metric %s", svgMetric)
	}

	out := svgOut
	if out == "" {
		out = fmt.Sprintf("%s_%s.svg", runID, svgMetric)
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
