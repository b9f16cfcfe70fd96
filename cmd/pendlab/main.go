package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/san-kum/pendlab/config"
	"github.com/san-kum/pendlab/derive"
	"github.com/san-kum/pendlab/diag"
	"github.com/san-kum/pendlab/internal/export"
	"github.com/san-kum/pendlab/mech"
	"github.com/san-kum/pendlab/ode"
	"github.com/san-kum/pendlab/record"
	"github.com/san-kum/pendlab/symbolic"
)

var (
	configFile string
	step       float64
	horizon    float64
	epsilon    float64
	theta1     float64
	theta2     float64
	omega1     float64
	omega2     float64
	m1, m2     float64
	l1, l2     float64
	gravity    float64
	outPath    string
	format     string
	perturb    float64
	coord      int
	latex      bool
	plotField  string
	plotWidth  int
	plotHeight int
)

func main() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		}),
	))

	rootCmd := &cobra.Command{
		Use:   "pendlab",
		Short: "two-link pendulum lab: Lagrangian mechanics, integration, chaos diagnostics",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate a run and export the record sequence",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	runCmd.Flags().StringVar(&format, "format", "csv", "output format: csv or json")

	divCmd := &cobra.Command{
		Use:   "divergence",
		Short: "evolve a perturbed pair and export the log-divergence series",
		RunE:  runDivergence,
	}
	addRunFlags(divCmd)
	addDivergenceFlags(divCmd)
	divCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	eqCmd := &cobra.Command{
		Use:   "equations",
		Short: "print the symbolic Euler-Lagrange equations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if latex {
				_, lt := symbolic.LagrangianText()
				fmt.Printf("L = %s\n\n", lt)
				for _, eq := range symbolic.EulerLagrange() {
					fmt.Printf("%% %s\n%s\n\n", eq.Coordinate, eq.LaTeX)
				}
				return nil
			}
			txt, _ := symbolic.LagrangianText()
			fmt.Printf("L = %s\n\n", txt)
			for _, eq := range symbolic.EulerLagrange() {
				fmt.Printf("[%s]  %s\n", eq.Coordinate, eq.Text)
			}
			return nil
		},
	}
	eqCmd.Flags().BoolVar(&latex, "latex", false, "emit LaTeX instead of plain text")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "integrate a run and chart one record field in the terminal",
		RunE:  plotRun,
	}
	addRunFlags(plotCmd)
	plotCmd.Flags().StringVar(&plotField, "field", "theta1", "record field to chart")
	plotCmd.Flags().IntVar(&plotWidth, "width", 100, "chart width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 20, "chart height")

	rootCmd.AddCommand(runCmd, divCmd, eqCmd, plotCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&step, "step", config.DefaultStep, "output sample interval")
	cmd.Flags().Float64Var(&horizon, "time", config.DefaultHorizon, "integration horizon")
	cmd.Flags().Float64Var(&epsilon, "epsilon", ode.DefaultEpsilon, "integration error tolerance")
	cmd.Flags().Float64Var(&theta1, "theta1", 1.5707963267948966, "initial first joint angle")
	cmd.Flags().Float64Var(&theta2, "theta2", 3.141592653589793, "initial second joint angle")
	cmd.Flags().Float64Var(&omega1, "omega1", 0, "initial first angular velocity")
	cmd.Flags().Float64Var(&omega2, "omega2", 0, "initial second angular velocity")
	cmd.Flags().Float64Var(&m1, "m1", mech.DefaultMass1, "mass of first bob")
	cmd.Flags().Float64Var(&m2, "m2", mech.DefaultMass2, "mass of second bob")
	cmd.Flags().Float64Var(&l1, "l1", mech.DefaultLength1, "length of first link")
	cmd.Flags().Float64Var(&l2, "l2", mech.DefaultLength2, "length of second link")
	cmd.Flags().Float64Var(&gravity, "g", mech.DefaultGravity, "gravitational acceleration")
}

func addDivergenceFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&perturb, "perturb", 1e-10, "initial perturbation of the chosen coordinate")
	cmd.Flags().IntVar(&coord, "coord", 0, "coordinate index to perturb and compare")
}

// effectiveConfig merges the config file (if any) with command-line flags;
// flags win when explicitly set.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("step") {
		cfg.Step = step
	}
	if cmd.Flags().Changed("time") {
		cfg.Horizon = horizon
	}
	if cmd.Flags().Changed("epsilon") {
		cfg.Epsilon = epsilon
	}
	if cmd.Flags().Changed("theta1") {
		cfg.Init.Theta1 = theta1
	}
	if cmd.Flags().Changed("theta2") {
		cfg.Init.Theta2 = theta2
	}
	if cmd.Flags().Changed("omega1") {
		cfg.Init.Omega1 = omega1
	}
	if cmd.Flags().Changed("omega2") {
		cfg.Init.Omega2 = omega2
	}
	if cmd.Flags().Changed("m1") {
		cfg.Params.M1 = m1
	}
	if cmd.Flags().Changed("m2") {
		cfg.Params.M2 = m2
	}
	if cmd.Flags().Changed("l1") {
		cfg.Params.L1 = l1
	}
	if cmd.Flags().Changed("l2") {
		cfg.Params.L2 = l2
	}
	if cmd.Flags().Changed("g") {
		cfg.Params.G = gravity
	}
	if cmd.Flags().Changed("perturb") {
		cfg.Divergence.Perturbation = perturb
	}
	if cmd.Flags().Changed("coord") {
		cfg.Divergence.Coordinate = coord
	}

	return cfg, nil
}

func evolve(cfg *config.Config) (*ode.Trajectory, mech.Params, error) {
	p := cfg.MechParams()
	if err := p.Validate(); err != nil {
		return nil, p, err
	}

	rhs := derive.StateDerivative(mech.BuildLagrangian(p))
	start := time.Now()
	traj, err := ode.Evolve(rhs, cfg.InitState(), cfg.Step, cfg.Horizon,
		ode.WithEpsilon(cfg.Epsilon))
	if err != nil {
		return nil, p, err
	}

	slog.Info("integration complete",
		"samples", traj.Len(),
		"horizon", cfg.Horizon,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return traj, p, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	traj, p, err := evolve(cfg)
	if err != nil {
		return err
	}

	recs := record.Transform(traj, p)
	slog.Info("post-processing complete",
		"records", len(recs),
		"final_drift", recs[len(recs)-1].DEnergy)

	switch format {
	case "json":
		if outPath != "" {
			return export.JSONFile(outPath, cfg.Step, cfg.Horizon, p, recs)
		}
		return export.WriteJSON(os.Stdout, cfg.Step, cfg.Horizon, p, recs)
	case "csv":
		if outPath != "" {
			return export.CSVFile(outPath, recs)
		}
		return export.WriteCSV(os.Stdout, recs)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func runDivergence(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	p := cfg.MechParams()
	if err := p.Validate(); err != nil {
		return err
	}

	rhs := derive.StateDerivative(mech.BuildLagrangian(p))
	a, b, err := diag.RunPair(rhs, cfg.InitState(),
		cfg.Divergence.Coordinate, cfg.Divergence.Perturbation,
		cfg.Step, cfg.Horizon, ode.WithEpsilon(cfg.Epsilon))
	if err != nil {
		return err
	}

	div, err := diag.Divergence(a, b, cfg.Divergence.Coordinate, cfg.DivergenceOptions())
	if err != nil {
		return err
	}

	times := make([]float64, a.Len())
	for i := range times {
		times[i] = a.At(i).T
	}

	slog.Info("divergence series ready",
		"samples", len(div),
		"perturbation", cfg.Divergence.Perturbation,
		"final", div[len(div)-1])

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		return export.SeriesCSV(f, "divergence", times, div)
	}
	return export.SeriesCSV(os.Stdout, "divergence", times, div)
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	traj, p, err := evolve(cfg)
	if err != nil {
		return err
	}

	recs := record.Transform(traj, p)

	col := -1
	for i, name := range record.Fields {
		if name == plotField {
			col = i
			break
		}
	}
	if col < 0 {
		return fmt.Errorf("unknown field %q (available: %v)", plotField, record.Fields)
	}

	series := make([]float64, len(recs))
	for i, r := range recs {
		series[i] = r.Row()[col]
	}

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Width(plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Caption(fmt.Sprintf("%s over %.1fs", plotField, cfg.Horizon))))
	return nil
}
