package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/skidsteer/internal/config"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	minValue   int
	maxValue   int
	stepValue  int
	theme      string

	saveRun    bool
	scriptFile string
	plotRun    bool
	live       bool
	delayMs    int
	gridSweep  bool
	gridSpan   int
	gridStep   int
	writeTo    string
	trials     int
	walkLength int
	seed       int64
	svgFile    string
	svgWidth   int
	svgHeight  int

	logger *zap.Logger
	cfg    *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "skidsteer",
		Short:         "keypad drive controller for skid-steer vehicles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(verbose)
			if err != nil {
				return err
			}
			cfg, err = loadConfig(cmd)
			return err
		},
		RunE: driveInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset controller range")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.IntVar(&minValue, "min", config.DefaultMin, "track value that means stopped")
	pf.IntVar(&maxValue, "max", config.DefaultMax, "saturation value")
	pf.IntVar(&stepValue, "step", config.DefaultStep, "change per command")
	pf.StringVar(&theme, "theme", "console", "color theme")

	driveCmd := &cobra.Command{
		Use:   "drive",
		Short: "drive interactively from the keyboard",
		RunE:  driveInteractive,
	}
	driveCmd.Flags().BoolVar(&saveRun, "save", false, "save the session when quitting")
	rootCmd.Flags().AddFlagSet(driveCmd.Flags())

	runCmd := &cobra.Command{
		Use:   "run [commands...]",
		Short: "apply a command sequence",
		Long: "Apply commands given as arguments and/or read from a script. Commands are\n" +
			"names (forward, back, left, right, stop) or keypad digits (8 2 4 6 5),\n" +
			"optionally repeated: forward*3, 8x3.",
		RunE: runSequence,
	}
	runCmd.Flags().StringVarP(&scriptFile, "script", "f", "", "script file, - for stdin")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "save the run")
	runCmd.Flags().BoolVar(&plotRun, "plot", false, "plot track values")
	runCmd.Flags().BoolVar(&live, "live", false, "print each step as it is applied")
	runCmd.Flags().IntVar(&delayMs, "delay", 0, "pause between live steps (ms)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSaved,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON or SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgFile, "svg", "", "write an svg plot to this file instead")
	exportCmd.Flags().IntVar(&svgWidth, "svg-width", 800, "svg width")
	exportCmd.Flags().IntVar(&svgHeight, "svg-height", 300, "svg height")

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "check every reachable state of the configured limits",
		RunE:  verifyLimits,
	}
	verifyCmd.Flags().BoolVar(&gridSweep, "grid", false, "sweep a range of limits instead")
	verifyCmd.Flags().IntVar(&gridSpan, "grid-span", 50, "largest span in the sweep")
	verifyCmd.Flags().IntVar(&gridStep, "grid-step", 10, "largest step in the sweep")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list controller presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE:  showConfig,
	}
	configCmd.Flags().StringVarP(&writeTo, "output", "o", "", "write to a yaml file instead")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml drive scenario and check its expectations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	fuzzCmd := &cobra.Command{
		Use:   "fuzz",
		Short: "drive with random commands and report faults",
		RunE:  fuzzCommands,
	}
	fuzzCmd.Flags().IntVar(&trials, "trials", 100, "number of random walks")
	fuzzCmd.Flags().IntVar(&walkLength, "length", 500, "commands per walk")
	fuzzCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")

	rootCmd.AddCommand(driveCmd, runCmd, listCmd, plotCmd, exportCmd, verifyCmd, scenarioCmd, fuzzCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}

// loadConfig layers defaults, preset, config file, .env and SKIDSTEER_*
// variables, then explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.DefaultConfig()
	if preset != "" {
		c = config.GetPreset(preset)
		if c == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, c)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		c = loaded
	}

	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	c.ApplyEnv(logger)

	flags := cmd.Flags()
	if flags.Changed("data") {
		c.Session.DataDir = dataDir
	}
	if flags.Changed("min") {
		c.Controller.Min = minValue
	}
	if flags.Changed("max") {
		c.Controller.Max = maxValue
	}
	if flags.Changed("step") {
		c.Controller.Step = stepValue
	}
	if flags.Changed("save") {
		c.Session.Save = saveRun
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("configuration", zap.Stringer("limits", c.Limits()), zap.String("data", c.Session.DataDir))
	return c, nil
}
