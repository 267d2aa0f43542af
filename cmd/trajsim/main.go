package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/trajsim/internal/config"
	"github.com/san-kum/trajsim/internal/logging"
	"github.com/san-kum/trajsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool
	theme      string

	// launch overrides
	vi       float64
	vf       float64
	angle    float64
	dt       float64
	speed    float64
	duration float64
	samples  int

	// sweep
	angleFrom float64
	angleTo   float64
	steps     int

	// export
	outFile string
	width   int
	height  int

	logFile *os.File
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// run executes the command tree and closes the debug log on every path,
// including commands that fail.
func run(args []string) error {
	defer closeLog()
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func closeLog() {
	if logFile == nil {
		return
	}
	logging.Setup(false, dataDir)
	logFile.Close()
	logFile = nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trajsim",
		Short: "projectile trajectory visualizer",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			f, err := logging.Setup(debug, dataDir)
			logFile = f
			return err
		},
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".trajsim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVar(&debug, "debug", false, "write debug log to <data>/logs")
	pf.Float64Var(&vi, "vi", config.DefaultInitialSpeed, "initial speed (m/s)")
	pf.Float64Var(&vf, "vf", 0, "final speed at impact (m/s), defaults to vi")
	pf.Float64Var(&angle, "angle", config.DefaultAngle, "launch angle (degrees)")
	pf.Float64Var(&dt, "dt", 1.0/config.DefaultFPS, "timestep")
	pf.Float64Var(&speed, "speed", config.DefaultMultiplier, "simulation speed multiplier")
	pf.Float64Var(&duration, "time", config.DefaultMaxDuration, "max simulated duration")
	pf.IntVar(&samples, "samples", config.DefaultSamples, "reference trajectory samples")

	rootCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "color theme")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve the reference trajectory",
		RunE:  solveTrajectory,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless simulation",
		RunE:  runSimulation,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare launches across a range of angles",
		RunE:  sweepAngles,
	}
	sweepCmd.Flags().Float64Var(&angleFrom, "from", 15, "first angle")
	sweepCmd.Flags().Float64Var(&angleTo, "to", 75, "last angle")
	sweepCmd.Flags().IntVar(&steps, "steps", 5, "number of angles")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run trajectory to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&width, "width", 640, "image width")
	exportSVGCmd.Flags().IntVar(&height, "height", 600, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				line := fmt.Sprintf("  %-12s vi=%g angle=%g", name, p.InitialSpeed, p.Angle)
				if p.FinalSpeed != nil {
					line += fmt.Sprintf(" vf=%g", *p.FinalSpeed)
				}
				fmt.Println(line)
			}
		},
	}

	rootCmd.AddCommand(solveCmd, runCmd, sweepCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, presetsCmd)
	return rootCmd
}

// resolveConfig layers the launch settings: defaults, then preset, then
// config file, then any flag set explicitly on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("vi") {
		cfg.Launch.InitialSpeed = vi
	}
	if flags.Changed("vf") {
		v := vf
		cfg.Launch.FinalSpeed = &v
	}
	if flags.Changed("angle") {
		cfg.Launch.Angle = angle
	}
	if flags.Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if flags.Changed("speed") {
		cfg.Sim.SpeedMultiplier = speed
	}
	if flags.Changed("time") {
		cfg.Sim.MaxDuration = duration
	}
	if flags.Changed("samples") {
		cfg.Sim.Samples = samples
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debug("config resolved", "preset", preset, "file", configFile, "vi", cfg.Launch.InitialSpeed, "angle", cfg.Launch.Angle)
	return cfg, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	return viz.Run(viz.Options{
		Settings:     cfg.SessionSettings(),
		InitialSpeed: cfg.Launch.InitialSpeed,
		FinalSpeed:   cfg.Launch.FinalSpeed,
		Angle:        cfg.Launch.Angle,
		Multiplier:   cfg.Sim.SpeedMultiplier,
		FPS:          cfg.Sim.FPS,
		Theme:        theme,
	})
}
