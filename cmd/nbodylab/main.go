package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/nbodylab/internal/config"
	"github.com/san-kum/nbodylab/internal/driver"
	"github.com/san-kum/nbodylab/internal/nbody"
	"github.com/san-kum/nbodylab/internal/storage"
	"github.com/san-kum/nbodylab/internal/viz"
)

var (
	dataDir        string
	dt             float64
	tEnd           float64
	workers        int
	reportEvery    int
	partition      string
	classicKinetic bool
	scenario       string
	numBodies      int
	configFile     string
	preset         string
	noSave         bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nbodylab",
		Short: "parallel gravitational n-body integration lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nbodylab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [input-file]",
		Short: "run a simulation from a body file (or a generated scenario)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored energy diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&tEnd, "t-end", config.DefaultTEnd, "end time")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "force engine worker count")
	cmd.Flags().IntVar(&reportEvery, "report-every", config.DefaultReportEvery, "steps between energy reports")
	cmd.Flags().StringVar(&partition, "partition", "balanced", "worker partition policy (balanced|block)")
	cmd.Flags().BoolVar(&classicKinetic, "classic-kinetic", false, "use 0.5*m*v^2 kinetic energy instead of the default 0.5*m*|v|")
	cmd.Flags().StringVar(&scenario, "scenario", "binary", "generated scenario when no input file is given (binary|ring)")
	cmd.Flags().IntVar(&numBodies, "bodies", config.DefaultBodies, "number of bodies (ring scenario)")
}

// buildConfig merges preset, config file, and flags into one Config.
// Flags win; only flags the user actually set override the file.
func buildConfig(cmd *cobra.Command, inputFile string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenario))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("t-end") {
		cfg.TEnd = tEnd
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("report-every") {
		cfg.ReportEvery = reportEvery
	}
	if cmd.Flags().Changed("partition") {
		cfg.Partition = partition
	}
	if cmd.Flags().Changed("classic-kinetic") {
		cfg.ClassicKinetic = classicKinetic
	}
	if cmd.Flags().Changed("scenario") {
		cfg.Scenario = scenario
	}
	if cmd.Flags().Changed("bodies") {
		cfg.Bodies = numBodies
	}
	if inputFile != "" {
		cfg.Input = inputFile
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	inputFile := ""
	if len(args) > 0 {
		inputFile = args[0]
	}

	cfg, err := buildConfig(cmd, inputFile)
	if err != nil {
		return err
	}

	var sys nbody.System
	if cfg.Input == "-" {
		sys, err = nbody.Read(os.Stdin)
	} else {
		sys, err = cfg.MakeSystem()
	}
	if err != nil {
		return err
	}

	drvCfg, err := cfg.DriverConfig()
	if err != nil {
		return err
	}

	drv, err := driver.New(drvCfg)
	if err != nil {
		return err
	}

	drv.AddObserver(driver.ObserverFunc(func(d driver.Diagnostic) {
		if d.Step == 0 {
			fmt.Printf("Energies: %g %g %g\n", d.Total, d.Kinetic, d.Potential)
			return
		}
		fmt.Printf("t = %g, E = %g %g %g, dE = %g\n", d.T, d.Total, d.Kinetic, d.Potential, d.Drift)
	}))

	start := time.Now()
	result, err := drv.Run(context.Background(), sys)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed %d steps over %d bodies in %v\n", result.Steps, len(sys), elapsed)

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	label := cfg.Scenario
	if cfg.Input != "" {
		label = "file"
	}
	runID, err := st.Save(label, drvCfg, len(sys), result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		scenario = args[0]
	}

	cfg, err := buildConfig(cmd, "")
	if err != nil {
		return err
	}
	cfg.Scenario = scenario

	sys, err := cfg.MakeSystem()
	if err != nil {
		return err
	}

	drvCfg, err := cfg.DriverConfig()
	if err != nil {
		return err
	}

	m := viz.NewModel(sys, drvCfg, cfg.Scenario)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tBODIES\tSTEPS\tDT\tT_END\tWORKERS\tMAX_DRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%g\t%g\t%d\t%.3e\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Steps,
			run.Dt,
			run.TEnd,
			run.Workers,
			run.Metrics["max_drift"],
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

	reports, err := st.LoadReports(runID)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s, bodies: %d, dt: %g\n\n", meta.Scenario, meta.Bodies, meta.Dt)

	totals := make([]float64, len(reports))
	drifts := make([]float64, len(reports))
	for i, r := range reports {
		totals[i] = r.Total
		drifts[i] = r.Drift
	}

	fmt.Println(asciigraph.Plot(totals,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total energy"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(drifts,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("relative energy drift"),
	))

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	reports, err := st.LoadReports(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, reports)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	reports, err := st.LoadReports(runID)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"step", "time", "total", "kinetic", "potential", "drift"}); err != nil {
		return err
	}

	for _, r := range reports {
		row := []string{
			strconv.Itoa(r.Step),
			strconv.FormatFloat(r.T, 'f', 6, 64),
			strconv.FormatFloat(r.Total, 'f', 9, 64),
			strconv.FormatFloat(r.Kinetic, 'f', 9, 64),
			strconv.FormatFloat(r.Potential, 'f', 9, 64),
			strconv.FormatFloat(r.Drift, 'e', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
