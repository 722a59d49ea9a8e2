package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/automation"
	"github.com/san-kum/asvsim/internal/config"
	"github.com/san-kum/asvsim/internal/env"
	"github.com/san-kum/asvsim/internal/experiment"
	"github.com/san-kum/asvsim/internal/export"
	"github.com/san-kum/asvsim/internal/logging"
	"github.com/san-kum/asvsim/internal/optim"
	"github.com/san-kum/asvsim/internal/storage"
	"github.com/san-kum/asvsim/internal/telemetry"
	"github.com/san-kum/asvsim/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	actionType  string
	trajectory  string
	agentName   string
	dt          float64
	maxVelocity float64
	maxAccel    float64
	episodes    int
	maxSteps    int
	workers     int
	seed        int64
	kp          float64
	kd          float64
	noise       float64
	logLevel    string
	metricsAddr string
	// Live view
	frameRate int
	// Plot
	episode int
	// Export
	withRecords bool
	// Step
	command string
	cmdX    float64
	cmdY    float64
	steps   int
	// Tune
	objective string
	kpValues  []float64
	kdValues  []float64
	// SVG
	svgOut  string
	svgSize int
	// Scenario
	scenarioLogLevel string
	// Sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepN     int
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	valStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "asvsim",
		Short:        "autonomous surface vehicle chase simulator",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".asvsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run chase episodes and store the results",
		Args:  cobra.NoArgs,
		RunE:  runEpisodes,
	}
	addEpisodeFlags(runCmd)
	runCmd.Flags().IntVar(&episodes, "episodes", config.DefaultEpisodes, "number of episodes")
	runCmd.Flags().IntVar(&workers, "workers", 1, "parallel episode workers (0 = all CPUs)")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address during the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one episode of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&episode, "episode", 0, "episode index")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().BoolVar(&withRecords, "records", false, "include per-step records")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a chase episode in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addEpisodeFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tACTION\tTRAJECTORY\tAGENT\tEPISODES\tSTEPS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n", name, p.ActionType, p.Trajectory, p.Agent, p.Episodes, p.MaxSteps)
			}
			return w.Flush()
		},
	}

	stepCmd := &cobra.Command{
		Use:   "step",
		Short: "drive a single vehicle with a fixed command",
		Args:  cobra.NoArgs,
		RunE:  stepVehicle,
	}
	stepCmd.Flags().StringVar(&command, "command", "acceleration", "command kind: velocity or acceleration")
	stepCmd.Flags().Float64Var(&cmdX, "x", 0, "command x component")
	stepCmd.Flags().Float64Var(&cmdY, "y", 0, "command y component")
	stepCmd.Flags().IntVar(&steps, "n", 10, "number of steps")
	stepCmd.Flags().Float64Var(&dt, "dt", config.DefaultInterval, "timestep")
	stepCmd.Flags().Float64Var(&maxVelocity, "vmax", asv.DefaultMaxVelocity, "velocity limit per axis")
	stepCmd.Flags().Float64Var(&maxAccel, "amax", asv.DefaultMaxAcceleration, "acceleration limit per axis")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the vehicle integrator",
		Args:  cobra.NoArgs,
		RunE:  benchVehicle,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search pursuit gains",
		Args:  cobra.NoArgs,
		RunE:  tuneAgent,
	}
	addEpisodeFlags(tuneCmd)
	tuneCmd.Flags().IntVar(&episodes, "episodes", config.DefaultEpisodes, "episodes per grid point")
	tuneCmd.Flags().IntVar(&workers, "workers", 1, "parallel episode workers (0 = all CPUs)")
	tuneCmd.Flags().StringVar(&objective, "objective", optim.RewardObjective, "reward (maximized) or a metric name (minimized)")
	tuneCmd.Flags().Float64SliceVar(&kpValues, "kp-grid", []float64{1, 2, 4, 8}, "kp values")
	tuneCmd.Flags().Float64SliceVar(&kdValues, "kd-grid", []float64{0, 0.5, 1}, "kd values")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "export one episode's trails as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().IntVar(&episode, "episode", 0, "episode index")
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&svgSize, "size", 600, "image width and height")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of runs from YAML",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().StringVar(&scenarioLogLevel, "log-level", "warn", "log level")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and report the reward",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addEpisodeFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&episodes, "episodes", config.DefaultEpisodes, "episodes per value")
	sweepCmd.Flags().IntVar(&workers, "workers", 1, "parallel episode workers (0 = all CPUs)")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "max_acceleration", fmt.Sprintf("parameter to sweep %v", automation.SweepParams()))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 100, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 600, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "n", 6, "number of values")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, liveCmd, presetsCmd, stepCmd, benchCmd, tuneCmd, svgCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addEpisodeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&actionType, "action", "acceleration", "action type: velocity or acceleration")
	cmd.Flags().StringVar(&trajectory, "trajectory", "sine", "target trajectory")
	cmd.Flags().StringVar(&agentName, "agent", "random", "agent")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultInterval, "timestep")
	cmd.Flags().Float64Var(&maxVelocity, "vmax", config.DefaultMaxVelocity, "velocity limit per axis")
	cmd.Flags().Float64Var(&maxAccel, "amax", config.DefaultMaxAcceleration, "acceleration limit per axis")
	cmd.Flags().IntVar(&maxSteps, "steps", config.DefaultMaxSteps, "max steps per episode")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "pursuit kp")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "pursuit kd")
	cmd.Flags().Float64Var(&noise, "noise", config.DefaultNoise, "random agent noise")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")
}

// resolveConfig layers preset, config file and changed flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	cfg, err := config.LoadWith(configFile, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("action") {
		cfg.ActionType = actionType
	}
	if flags.Changed("trajectory") {
		cfg.Trajectory = trajectory
	}
	if flags.Changed("agent") {
		cfg.Agent = agentName
	}
	if flags.Changed("dt") {
		cfg.Interval = dt
	}
	if flags.Changed("vmax") {
		cfg.MaxVelocity = maxVelocity
	}
	if flags.Changed("amax") {
		cfg.MaxAcceleration = maxAccel
	}
	if flags.Changed("steps") {
		cfg.MaxSteps = maxSteps
	}
	if flags.Changed("episodes") {
		cfg.Episodes = episodes
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("kp") {
		cfg.AgentParams.Kp = kp
	}
	if flags.Changed("kd") {
		cfg.AgentParams.Kd = kd
	}
	if flags.Changed("noise") {
		cfg.AgentParams.Noise = noise
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cfg.Seed == 0 || flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := logging.New("runner", cfg.LogLevel)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := experiment.NewRunner(experiment.NewRegistry(), log)

	if metricsAddr != "" {
		collector, err := telemetry.NewCollector(nil)
		if err != nil {
			return err
		}
		runner.SetCollector(collector)

		srv := &http.Server{Addr: metricsAddr, Handler: collector.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Str("addr", metricsAddr).Msg("metrics server failed")
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Info().Str("addr", metricsAddr).Msg("serving metrics")
	}

	expCfg := experiment.FromConfig(cfg)
	fmt.Printf("running %d %s episodes...\n", expCfg.Episodes, expCfg.Trajectory)
	start := time.Now()

	result, err := runner.Run(ctx, expCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(expCfg, result)
	if err != nil {
		return err
	}

	row := func(k, v string) {
		fmt.Println(keyStyle.Render(k) + valStyle.Render(v))
	}
	fmt.Println(titleStyle.Render("\nrun complete"))
	row("run id", runID)
	row("elapsed", elapsed.String())
	row("steps", fmt.Sprintf("%d", result.StepsTaken))
	row("reward mean", fmt.Sprintf("%.4f ± %.4f", result.Reward.Mean, result.Reward.StdDev))
	row("reward range", fmt.Sprintf("[%.4f, %.4f]", result.Reward.Min, result.Reward.Max))
	fmt.Println(titleStyle.Render("\nmetrics"))
	for _, name := range sortedKeys(result.Metrics) {
		row(name, fmt.Sprintf("%.6f", result.Metrics[name]))
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
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
	fmt.Fprintln(w, "ID\tTIME\tACTION\tTRAJECTORY\tAGENT\tEPISODES\tDT\tREWARD")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%.3fs\t%.3f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.ActionType,
			run.Trajectory,
			run.Agent,
			run.Episodes,
			run.Interval,
			run.Reward.Mean,
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

	records, err := st.LoadRecords(runID)
	if err != nil {
		return err
	}

	var vx, vy, tx, ty, reward []float64
	for _, r := range records {
		if r.Episode != episode {
			continue
		}
		vx = append(vx, r.Vehicle.X)
		vy = append(vy, r.Vehicle.Y)
		tx = append(tx, r.Target.X)
		ty = append(ty, r.Target.Y)
		reward = append(reward, r.Reward)
	}
	if len(reward) == 0 {
		return fmt.Errorf("no data to plot for episode %d", episode)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("trajectory: %s, agent: %s, action: %s\n", meta.Trajectory, meta.Agent, meta.ActionType)
	fmt.Printf("episode %d, samples: %d\n\n", episode, len(reward))

	plots := []struct {
		caption string
		series  [][]float64
	}{
		{"x: vehicle and target", [][]float64{vx, tx}},
		{"y: vehicle and target", [][]float64{vy, ty}},
		{"reward", [][]float64{reward}},
	}
	for _, p := range plots {
		graph := asciigraph.PlotMany(p.series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).Export(os.Stdout, args[0], withRecords)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	expCfg := experiment.FromConfig(cfg)
	registry := experiment.NewRegistry()
	rng := rand.New(rand.NewSource(expCfg.Seed))

	traj, err := registry.GetTrajectory(expCfg.Trajectory, rng)
	if err != nil {
		return err
	}
	ag, err := registry.GetAgent(expCfg.Agent, expCfg.AgentParams, rng)
	if err != nil {
		return err
	}
	e, err := env.New(expCfg.EnvConfig(), traj)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(e, ag, expCfg.MaxSteps, frameRate), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func stepVehicle(cmd *cobra.Command, args []string) error {
	v, err := asv.New(dt, asv.WithMaxVelocity(maxVelocity), asv.WithMaxAcceleration(maxAccel))
	if err != nil {
		return err
	}

	u := asv.Vector2{X: cmdX, Y: cmdY}
	switch strings.ToLower(command) {
	case string(env.ActionVelocity):
		v.SetVelocity(u)
	case string(env.ActionAcceleration):
		v.SetAcceleration(u)
	default:
		return fmt.Errorf("unknown command kind: %s", command)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTIME\tX\tY\tVX\tVY")
	fmt.Fprintf(w, "%d\t%.3f\t%.4f\t%.4f\t%.4f\t%.4f\n", 0, 0.0, 0.0, 0.0, v.Velocity().X, v.Velocity().Y)
	for i := 1; i <= steps; i++ {
		pos := v.Step()
		vel := v.Velocity()
		fmt.Fprintf(w, "%d\t%.3f\t%.4f\t%.4f\t%.4f\t%.4f\n", i, float64(i)*dt, pos.X, pos.Y, vel.X, vel.Y)
	}
	return w.Flush()
}

func benchVehicle(cmd *cobra.Command, args []string) error {
	counts := []int{1_000, 100_000, 1_000_000}
	dts := []float64{0.01, 0.1, 1}

	fmt.Println("benchmarking vehicle step")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPS\tDT\tTIME\tSTEPS/SEC")

	for _, n := range counts {
		for _, interval := range dts {
			v, err := asv.New(interval)
			if err != nil {
				return err
			}
			v.SetAcceleration(asv.Vector2{X: 1000, Y: -1000})

			start := time.Now()
			for i := 0; i < n; i++ {
				if i%50 == 0 {
					v.Reset()
					v.SetAcceleration(asv.Vector2{X: 1000, Y: -1000})
				}
				v.Step()
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%.2fs\t%v\t%.0f\n", n, interval, elapsed, float64(n)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func tuneAgent(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("agent") && preset == "" && configFile == "" {
		cfg.Agent = "pursuit"
	}
	// per-step logging drowns the table
	if !cmd.Flags().Changed("log-level") {
		cfg.LogLevel = "warn"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := experiment.NewRunner(experiment.NewRegistry(), logging.New("tune", cfg.LogLevel))
	gs := optim.NewGridSearch([]string{"kp", "kd"}, [][]float64{kpValues, kdValues})

	fmt.Printf("tuning %s on %s, %d grid points...\n", cfg.Agent, cfg.Trajectory, len(kpValues)*len(kdValues))
	best, trials, err := gs.Search(ctx, runner, experiment.FromConfig(cfg), objective)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "KP\tKD\t%s\n", strings.ToUpper(objective))
	for _, t := range trials {
		fmt.Fprintf(w, "%g\t%g\t%.6f\n", t.Params["kp"], t.Params["kd"], t.Score)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("\nbest"))
	fmt.Println(keyStyle.Render("kp") + valStyle.Render(fmt.Sprintf("%g", best.Params["kp"])))
	fmt.Println(keyStyle.Render("kd") + valStyle.Render(fmt.Sprintf("%g", best.Params["kd"])))
	fmt.Println(keyStyle.Render(objective) + valStyle.Render(fmt.Sprintf("%.6f", best.Score)))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	records, err := storage.New(dataDir).LoadRecords(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return export.TrajectoryToSVG(out, export.EpisodeSeries(records, episode), svgSize, svgSize)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := logging.New("scenario", scenarioLogLevel)
	runner := experiment.NewRunner(experiment.NewRegistry(), log)
	results, err := automation.RunScenario(ctx, sc, runner, st, log)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(sc.Name))
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN ID\tEPISODES\tSTEPS\tREWARD")
	for _, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4f\n", r.Name, runID, len(r.Result.Episodes), r.Result.StepsTaken, r.Result.Reward.Mean)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("log-level") {
		cfg.LogLevel = "warn"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := experiment.NewRunner(experiment.NewRegistry(), logging.New("sweep", cfg.LogLevel))
	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepN,
	}, runner)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tREWARD\tSTD\tTRACKING\n", strings.ToUpper(sweepParam))
	rewards := make([]float64, len(results))
	for i, r := range results {
		rewards[i] = r.Reward.Mean
		fmt.Fprintf(w, "%g\t%.4f\t%.4f\t%.4f\n", r.ParamValue, r.Reward.Mean, r.Reward.StdDev, r.Metrics["tracking_error"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(rewards,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("mean reward vs %s", sweepParam)),
	))
	return nil
}
