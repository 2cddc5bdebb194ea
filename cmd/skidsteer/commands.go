package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/skidsteer/internal/analysis"
	"github.com/san-kum/skidsteer/internal/automation"
	"github.com/san-kum/skidsteer/internal/config"
	"github.com/san-kum/skidsteer/internal/drive"
	"github.com/san-kum/skidsteer/internal/export"
	"github.com/san-kum/skidsteer/internal/metrics"
	"github.com/san-kum/skidsteer/internal/session"
	"github.com/san-kum/skidsteer/internal/storage"
	"github.com/san-kum/skidsteer/internal/tui"
	"github.com/san-kum/skidsteer/internal/viz"
)

func newRunner() (*session.Runner, error) {
	ctrl, err := drive.NewFromLimits(cfg.Limits(), drive.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	r := session.New(ctrl, logger)
	for _, m := range metrics.Default() {
		r.AddMetric(m)
	}
	return r, nil
}

func driveInteractive(cmd *cobra.Command, args []string) error {
	keys, err := cfg.Keys()
	if err != nil {
		return err
	}
	runner, err := newRunner()
	if err != nil {
		return err
	}

	model := tui.New(runner, keys, logger)
	model.SetTheme(viz.GetTheme(theme))
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return err
	}

	trace := model.Trace()
	fmt.Printf("%d commands, final motion %s\n", len(trace.Steps), runner.Controller().Motion())
	printMetrics(os.Stdout, trace.Metrics)

	if cfg.Session.Save && len(trace.Steps) > 0 {
		if err := saveTrace(trace); err != nil {
			return err
		}
	}
	return model.Fault()
}

func runSequence(cmd *cobra.Command, args []string) error {
	var symbols []drive.Symbol
	if scriptFile != "" {
		syms, err := readScript(scriptFile)
		if err != nil {
			return err
		}
		symbols = append(symbols, syms...)
	}
	if len(args) > 0 {
		syms, err := session.ParseArgs(args)
		if err != nil {
			return err
		}
		symbols = append(symbols, syms...)
	}
	if len(symbols) == 0 {
		return errors.New("no commands given")
	}

	runner, err := newRunner()
	if err != nil {
		return err
	}

	var renderer *tui.LiveRenderer
	if live {
		renderer = tui.NewLiveRenderer(os.Stdout, cfg.Limits(), time.Duration(delayMs)*time.Millisecond)
		renderer.SetTheme(viz.GetTheme(theme))
		runner.AddObserver(renderer)
	}

	start := time.Now()
	trace, runErr := runner.Run(cmd.Context(), symbols)
	elapsed := time.Since(start)

	if !live {
		printSteps(os.Stdout, trace)
	}
	fmt.Printf("\n%d of %d commands applied in %v\n", len(trace.Steps), len(symbols), elapsed)
	printMetrics(os.Stdout, trace.Metrics)

	if plotRun {
		fmt.Println()
		fmt.Println(viz.PlotSpeeds(trace, cfg.Plot.Height, cfg.Plot.Width))
	}
	if cfg.Session.Save {
		if err := saveTrace(trace); err != nil {
			return err
		}
	}
	return runErr
}

func readScript(path string) ([]drive.Symbol, error) {
	if path == "-" {
		return session.ParseScript(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	syms, err := session.ParseScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return syms, nil
}

func saveTrace(trace *session.Trace) error {
	st := storage.New(cfg.Session.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Session.Name, trace)
	if err != nil {
		return err
	}
	logger.Info("run saved", zap.String("id", runID))
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func printSteps(out io.Writer, trace *session.Trace) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tCOMMAND\tLEFT\tRIGHT\tMOTION")
	for _, s := range trace.Steps {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", s.Index, s.Symbol, s.Left, s.Right, s.Motion)
	}
	w.Flush()
	for _, err := range trace.Errors {
		fmt.Fprintf(out, "skipped: %v\n", err)
	}
}

func printMetrics(out io.Writer, values map[string]float64) {
	if len(values) == 0 {
		return
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.4f\n", name, values[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.Session.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tLIMITS\tSTEPS\tSKIPPED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Limits,
			run.Steps,
			len(run.Errors),
		)
	}
	return w.Flush()
}

func plotSaved(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.Session.DataDir)
	meta, trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n\n", meta.ID, meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println(viz.PlotSpeeds(trace, cfg.Plot.Height, cfg.Plot.Width))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.Session.DataDir)
	meta, trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if svgFile != "" {
		svg := export.TraceToSVG(trace, svgWidth, svgHeight)
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
		return nil
	}
	return storage.ExportJSON(os.Stdout, meta.ID, meta.Name, trace)
}

func verifyLimits(cmd *cobra.Command, args []string) error {
	if gridSweep {
		return verifyGrid()
	}

	limits := cfg.Limits()
	report, err := analysis.Explore(limits.Min, limits.Max, limits.Step)
	if err != nil {
		return err
	}
	printReport(os.Stdout, report)
	if !report.OK() {
		return fmt.Errorf("%d violations for %s", len(report.Violations), limits)
	}
	return nil
}

func verifyGrid() error {
	limits := cfg.Limits()
	results, err := analysis.ExploreGrid(limits.Min, gridSpan, gridStep)
	if err != nil {
		return err
	}
	states := 0
	for _, res := range results {
		states += len(res.Report.States)
	}
	fmt.Printf("%d configurations, %d states checked\n", len(results), states)

	failed := analysis.Failures(results)
	for _, res := range failed {
		fmt.Println()
		printReport(os.Stdout, res.Report)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d configurations with violations", len(failed))
	}
	return nil
}

func printReport(out io.Writer, report *analysis.Report) {
	fmt.Fprintf(out, "%s: %d states, %d transitions\n", report.Limits, len(report.States), report.Transitions)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for m := drive.Invalid; m <= drive.TurningRightBack; m++ {
		if n := report.Motions[m]; n > 0 {
			fmt.Fprintf(w, "  %s\t%d\n", m, n)
		}
	}
	w.Flush()

	const shown = 20
	for i, v := range report.Violations {
		if i == shown {
			fmt.Fprintf(out, "  ... %d more\n", len(report.Violations)-shown)
			break
		}
		fmt.Fprintf(out, "  violation: %s\n", v)
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	limits, err := sc.Limits(cfg.Limits())
	if err != nil {
		return err
	}

	st := storage.New(cfg.Session.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario %s (%s)\n", sc.Name, limits)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	results, err := automation.RunScenario(cmd.Context(), sc, limits, st, logger)
	failed := 0
	for _, r := range results {
		status := "ok"
		if !r.Passed() {
			status = "FAIL"
			failed++
		}
		fmt.Printf("  %-4s %s (%d commands)\n", status, r.Name, len(r.Trace.Steps))
		for _, f := range r.Failures {
			fmt.Printf("       %s\n", f)
		}
	}
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d steps failed", failed, len(results))
	}
	return nil
}

func fuzzCommands(cmd *cobra.Command, args []string) error {
	rc := &automation.RandomConfig{
		Limits: cfg.Limits(),
		Trials: trials,
		Length: walkLength,
		Seed:   seed,
	}
	results, err := automation.RunRandom(cmd.Context(), rc)
	if err != nil {
		return err
	}

	motions := make(map[drive.Motion]int)
	for _, r := range results {
		for m, n := range r.Motions {
			motions[m] += n
		}
	}
	stable, faulted, faults := automation.RandomStats(results)
	fmt.Printf("%s: %d walks of %d commands, %d stable, %d faulted\n", rc.Limits, len(results), rc.Length, stable, faulted)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for m := drive.Invalid; m <= drive.TurningRightBack; m++ {
		if n := motions[m]; n > 0 {
			fmt.Fprintf(w, "  %s\t%d\n", m, n)
		}
	}
	w.Flush()
	return faults
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMIN\tMAX\tSTEP")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", name, p.Min, p.Max, p.Step)
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	if writeTo != "" {
		if err := config.Save(writeTo, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", writeTo)
		return nil
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
