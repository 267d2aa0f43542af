package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/trajsim/internal/config"
	"github.com/san-kum/trajsim/internal/export"
	"github.com/san-kum/trajsim/internal/kinematics"
	"github.com/san-kum/trajsim/internal/metrics"
	"github.com/san-kum/trajsim/internal/sim"
	"github.com/san-kum/trajsim/internal/storage"
)

func printParams(p kinematics.LaunchParameters) {
	fmt.Printf("initial speed: %.2f m/s\n", p.InitialSpeed)
	fmt.Printf("final speed:   %.2f m/s\n", p.EffectiveFinalSpeed())
	fmt.Printf("angle:         %.2f°\n", p.AngleDeg)
	fmt.Printf("Δy:            %.3f m\n", p.DeltaY())
}

func solveTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	p := cfg.Params()
	printParams(p)

	sol, err := kinematics.Solve(p, cfg.Sim.Samples)
	if errors.Is(err, kinematics.ErrNoSolution) {
		fmt.Println("\nno solution: target height is out of reach at this speed and angle")
		return nil
	}
	if err != nil {
		return err
	}

	heights := make([]float64, len(sol.Points))
	peak := 0.0
	for i, pt := range sol.Points {
		heights[i] = pt.Y
		peak = max(peak, pt.Y)
	}

	fmt.Printf("time of flight: %.3f s\n", sol.TimeOfFlight)
	fmt.Printf("range:          %.3f m\n", sol.Range)
	fmt.Printf("peak height:    %.3f m\n\n", peak)

	if len(heights) > 1 {
		fmt.Println(asciigraph.Plot(heights, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("height (m)")))
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	p := cfg.Params()
	rc := cfg.RunConfig()

	runner := sim.New()
	for _, m := range metrics.Default(p) {
		runner.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("running projectile simulation...")
	start := time.Now()

	result, err := runner.Run(ctx, p, rc)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(rc, result)
	if err != nil {
		return err
	}
	log.Info("run saved", "id", runID, "steps", result.StepsTaken, "impacted", result.Impacted)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	if result.Impacted {
		fmt.Printf("impact: t=%.3fs range=%.3fm\n", result.ImpactTime, result.Range)
	} else {
		fmt.Printf("no impact within %.1fs\n", rc.MaxDuration)
	}
	fmt.Println("\nmetrics:")
	for _, m := range metrics.Default(p) {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}

	return nil
}

func sweepAngles(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if angleFrom < 0 || angleTo > config.MaxAngle || angleFrom > angleTo {
		return fmt.Errorf("sweep range must lie within [0, %g], got %g..%g", config.MaxAngle, angleFrom, angleTo)
	}

	runner := sim.New()
	runner.AddMetric(metrics.NewPeakHeight())
	runner.AddMetric(metrics.NewPathLength())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	points, err := runner.Sweep(ctx, cfg.Params(), sim.Angles(angleFrom, angleTo, steps), cfg.RunConfig())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANGLE\tFLIGHT\tRANGE\tPEAK\tPATH")
	for _, pt := range points {
		if !pt.Result.Impacted {
			fmt.Fprintf(w, "%.2f\t-\t-\t%.2fm\t%.2fm\n", pt.Angle, pt.Result.Metrics["peak_height"], pt.Result.Metrics["path_length"])
			continue
		}
		fmt.Fprintf(w, "%.2f\t%.3fs\t%.2fm\t%.2fm\t%.2fm\n",
			pt.Angle,
			pt.Result.ImpactTime,
			pt.Result.Range,
			pt.Result.Metrics["peak_height"],
			pt.Result.Metrics["path_length"],
		)
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
	fmt.Fprintln(w, "ID\tTIME\tVI\tANGLE\tΔY\tFLIGHT\tRANGE\tSTEPS")

	for _, run := range runs {
		flight, rng := "-", "-"
		if run.Impacted {
			flight = fmt.Sprintf("%.3fs", run.TimeOfFlight)
			rng = fmt.Sprintf("%.2fm", run.Range)
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%s\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.InitialSpeed,
			run.Params.AngleDeg,
			run.DeltaY,
			flight,
			rng,
			run.Steps,
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

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	printParams(meta.Params)
	fmt.Printf("dt: %.4fs  steps: %d\n\n", meta.Dt, meta.Steps)

	ys := make([]float64, len(samples))
	speeds := make([]float64, len(samples))
	for i, s := range samples {
		ys[i] = s.Y
		speeds[i] = s.Speed
	}

	fmt.Println(asciigraph.Plot(ys, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("height (m)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(speeds, asciigraph.Height(6), asciigraph.Width(60), asciigraph.Caption("speed (m/s)")))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if outFile == "" {
		return export.WriteJSON(os.Stdout, *meta, samples)
	}
	if err := export.ExportJSON(outFile, *meta, samples); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	path := make([]kinematics.Vec2, len(samples))
	for i, s := range samples {
		path[i] = s.Position()
	}

	var reference []kinematics.Vec2
	if sol, err := kinematics.Solve(meta.Params, config.DefaultSamples); err == nil {
		reference = sol.Points
	}

	opts := export.DefaultSVGOptions()
	opts.Width, opts.Height = width, height
	svg := export.TrajectoryToSVG(reference, path, opts)
	if svg == "" {
		return fmt.Errorf("no data to export")
	}

	out := outFile
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", out)
	return nil
}
