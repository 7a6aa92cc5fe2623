package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/rocketsim/internal/chart"
	"github.com/san-kum/rocketsim/internal/config"
	"github.com/san-kum/rocketsim/internal/gui"
	"github.com/san-kum/rocketsim/internal/rocket"
	"github.com/san-kum/rocketsim/internal/screen"
	"github.com/san-kum/rocketsim/internal/solver"
	"github.com/san-kum/rocketsim/internal/tui"
)

var (
	configFile string
	solverName string
	preset     string
	verbose    bool

	altitude  string
	velocity  string
	mass      string
	startTime string
	endTime   string

	chartWidth  int
	chartHeight int
	summary     bool
	theme       string
)

var logger log.Logger

// main opens the desktop window when no subcommand is given. It exits with
// status 1 when a command fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rocketsim",
		Short:         "simplified rocket ascent simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = newLogger(verbose)
			return config.LoadEnv(".env")
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml), defaults to $"+config.EnvConfig)
	rootCmd.PersistentFlags().StringVar(&solverName, "solver", solver.Default, "solver backend ("+strings.Join(solver.Names(), ", ")+")")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "prefill the launch parameters from a preset")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addFieldFlags(rootCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the desktop window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the terminal interface",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme ("+strings.Join(tui.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate once and print an ascii chart",
		Args:  cobra.NoArgs,
		RunE:  runOnce,
	}
	runCmd.Flags().IntVar(&chartWidth, "width", config.DefaultChartWidth, "chart width in columns")
	runCmd.Flags().IntVar(&chartHeight, "height", config.DefaultChartHeight, "chart height in rows")
	runCmd.Flags().BoolVar(&summary, "summary", true, "print apogee, max speed and propellant figures")

	compareCmd := &cobra.Command{
		Use:   "compare [solver...]",
		Short: "run the same launch through several solvers",
		RunE:  compareSolvers,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list launch presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tALTITUDE\tVELOCITY\tMASS\tSTART\tEND\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				l := p.Launch
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", name, l.Altitude, l.Velocity, l.Mass, l.StartTime, l.EndTime, p.Description)
			}
			return w.Flush()
		},
	}

	solversCmd := &cobra.Command{
		Use:   "solvers",
		Short: "list solver backends",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range solver.Names() {
				if name == solver.Default {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s (default)\n", name)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
		},
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, compareCmd, presetsCmd, solversCmd)
	return rootCmd
}

func addFieldFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&altitude, "altitude", "", "initial altitude (m)")
	cmd.PersistentFlags().StringVar(&velocity, "velocity", "", "initial velocity (m/s)")
	cmd.PersistentFlags().StringVar(&mass, "mass", "", "initial mass (kg)")
	cmd.PersistentFlags().StringVar(&startTime, "t0", "", "start time (s)")
	cmd.PersistentFlags().StringVar(&endTime, "tf", "", "end time (s)")
}

func newLogger(debug bool) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	l = log.With(l, "ts", log.DefaultTimestampUTC)
	if debug {
		return level.NewFilter(l, level.AllowDebug())
	}
	return level.NewFilter(l, level.AllowInfo())
}

// settings merges, lowest first: defaults, config file, $ROCKETSIM_SOLVER,
// preset, then flags the user actually set.
func settings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Launch = p.Launch
	}

	flags := cmd.Flags()
	if flags.Changed("solver") {
		cfg.Solver = solverName
	}
	if flags.Changed("altitude") {
		cfg.Launch.Altitude = altitude
	}
	if flags.Changed("velocity") {
		cfg.Launch.Velocity = velocity
	}
	if flags.Changed("mass") {
		cfg.Launch.Mass = mass
	}
	if flags.Changed("t0") {
		cfg.Launch.StartTime = startTime
	}
	if flags.Changed("tf") {
		cfg.Launch.EndTime = endTime
	}
	if flags.Changed("width") {
		cfg.Chart.Width = chartWidth
	}
	if flags.Changed("height") {
		cfg.Chart.Height = chartHeight
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fields := cfg.Launch.Fields()
	level.Debug(logger).Log("msg", "settings resolved", "solver", cfg.Solver, "fields", strings.Join(fields[:], ","))
	return cfg, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	s, err := cfg.NewSolver()
	if err != nil {
		return err
	}

	gui.Run(cmd.Context(), gui.Options{
		Solver:       s,
		SolverName:   cfg.Solver,
		Fields:       cfg.Launch.Fields(),
		WindowWidth:  cfg.Window.Width,
		WindowHeight: cfg.Window.Height,
		ChartWidth:   cfg.Chart.ImageWidth,
		ChartHeight:  cfg.Chart.ImageHeight,
		Logger:       logger,
	})
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	s, err := cfg.NewSolver()
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(), tui.Options{
		Solver:     s,
		SolverName: cfg.Solver,
		Fields:     cfg.Launch.Fields(),
		Theme:      theme,
		Logger:     logger,
	})
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	s, err := cfg.NewSolver()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	start := time.Now()
	res, err := rocket.Run(cmd.Context(), s, cfg.Launch.Fields())
	if err != nil {
		if errors.Is(err, rocket.ErrInvalidInput) || errors.Is(err, rocket.ErrIntegrationFailure) {
			// Same outcome as the modal box in the interactive front ends.
			fmt.Fprintln(out, screen.Message(err))
			return nil
		}
		return err
	}

	level.Info(logger).Log(
		"msg", "simulation finished",
		"solver", cfg.Solver,
		"samples", len(res.Times),
		"steps", res.Stats.Steps,
		"rejected", res.Stats.Rejected,
		"evaluations", res.Stats.Evaluations,
		"took", time.Since(start),
	)

	plot, err := chart.ASCII(res.Chart(), cfg.Chart.Width, cfg.Chart.Height)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	fmt.Fprintln(out, plot)

	if summary {
		fmt.Fprintln(out)
		fmt.Fprint(out, res.Summary())
	}
	return nil
}

func compareSolvers(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = solver.Names()
	}

	out := cmd.OutOrStdout()
	l := cfg.Launch
	fmt.Fprintf(out, "comparing solvers (y0=%s v0=%s m0=%s t=[%s, %s])\n\n", l.Altitude, l.Velocity, l.Mass, l.StartTime, l.EndTime)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "solver\tapogee (m)\tfinal y (m)\tfinal v (m/s)\tenergy change (%)\tsteps\tevals\ttime (ms)\t")

	for _, name := range names {
		s, err := solver.New(name, cfg.Options)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\t\t\t\t\t\n", name, err)
			continue
		}

		start := time.Now()
		res, err := rocket.Run(cmd.Context(), s, l.Fields())
		elapsed := time.Since(start)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t\t\t\t\t\t\t\n", name, screen.Message(err))
			continue
		}

		last := len(res.Times) - 1
		sum := res.Summary()
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.3f\t%d\t%d\t%.2f\t\n",
			name, sum.Apogee, res.Position[last], res.Velocity[last], 100*sum.EnergyChange,
			res.Stats.Steps, res.Stats.Evaluations, float64(elapsed.Microseconds())/1000)
	}
	return w.Flush()
}
