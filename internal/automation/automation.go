package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/skidsteer/internal/config"
	"github.com/san-kum/skidsteer/internal/drive"
	"github.com/san-kum/skidsteer/internal/metrics"
	"github.com/san-kum/skidsteer/internal/session"
)

// Scenario is a scripted drive with expectations. Steps share one
// controller, so each starts where the previous one stopped.
type Scenario struct {
	Name        string                   `yaml:"name"`
	Description string                   `yaml:"description"`
	Preset      string                   `yaml:"preset"`
	Controller  *config.ControllerConfig `yaml:"controller"`
	Steps       []ScenarioStep           `yaml:"steps"`
}

type ScenarioStep struct {
	Name     string       `yaml:"name"`
	Commands string       `yaml:"commands"`
	Expect   *Expectation `yaml:"expect"`
	SaveAs   string       `yaml:"save_as"`
}

// Expectation is checked after a step. Unset fields are not checked.
type Expectation struct {
	Left   *int   `yaml:"left"`
	Right  *int   `yaml:"right"`
	Motion string `yaml:"motion"`
}

type StepResult struct {
	Name     string
	Trace    *session.Trace
	Failures []string
}

func (r StepResult) Passed() bool { return len(r.Failures) == 0 }

// Saver persists a step's trace; storage.Store satisfies it.
type Saver interface {
	Save(name string, trace *session.Trace) (string, error)
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Limits resolves the controller range: an explicit controller section wins
// over a preset, and fallback is used when neither is given.
func (s *Scenario) Limits(fallback drive.Limits) (drive.Limits, error) {
	switch {
	case s.Controller != nil:
		c := s.Controller
		return drive.Limits{Min: c.Min, Max: c.Max, Step: c.Step}, nil
	case s.Preset != "":
		cfg := config.GetPreset(s.Preset)
		if cfg == nil {
			return drive.Limits{}, fmt.Errorf("unknown preset: %s", s.Preset)
		}
		return cfg.Limits(), nil
	}
	return fallback, nil
}

// RunScenario executes all steps. Failed expectations are reported in the
// results; an error is returned for unusable input or a controller fault.
func RunScenario(ctx context.Context, scenario *Scenario, limits drive.Limits, saver Saver, logger *zap.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctrl, err := drive.NewFromLimits(limits, drive.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	runner := session.New(ctrl, logger)
	for _, m := range metrics.Default() {
		runner.AddMetric(m)
	}

	results := make([]StepResult, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		logger.Info("scenario step", zap.String("scenario", scenario.Name), zap.String("step", name))

		syms, err := session.ParseScript(strings.NewReader(step.Commands))
		if err != nil {
			return results, fmt.Errorf("%s: %w", name, err)
		}
		trace, err := runner.Run(ctx, syms)
		if err != nil {
			return results, fmt.Errorf("%s: %w", name, err)
		}

		res := StepResult{Name: name, Trace: trace}
		if step.Expect != nil {
			res.Failures = step.Expect.check(ctrl)
		}
		if step.SaveAs != "" && saver != nil {
			if _, err := saver.Save(step.SaveAs, trace); err != nil {
				return results, fmt.Errorf("%s save: %w", name, err)
			}
		}
		results = append(results, res)
	}
	return results, nil
}

func (e *Expectation) check(ctrl *drive.Controller) []string {
	var failures []string
	left, right := ctrl.Speeds()
	if e.Left != nil && *e.Left != left {
		failures = append(failures, fmt.Sprintf("left: expected %d, got %d", *e.Left, left))
	}
	if e.Right != nil && *e.Right != right {
		failures = append(failures, fmt.Sprintf("right: expected %d, got %d", *e.Right, right))
	}
	if e.Motion != "" && e.Motion != ctrl.Motion().String() {
		failures = append(failures, fmt.Sprintf("motion: expected %s, got %s", e.Motion, ctrl.Motion()))
	}
	return failures
}

// RandomConfig drives a controller with random commands.
type RandomConfig struct {
	Limits drive.Limits
	Trials int
	Length int
	Seed   int64
}

type RandomResult struct {
	Trial   int
	Symbols []drive.Symbol
	Final   [2]int
	Motions map[drive.Motion]int
	Err     error
}

func (r RandomResult) Stable() bool { return r.Err == nil }

// RunRandom applies Trials random sequences of Length commands, each on a
// fresh controller. A zero seed uses the clock.
func RunRandom(ctx context.Context, cfg *RandomConfig) ([]RandomResult, error) {
	if cfg.Trials < 1 || cfg.Length < 1 {
		return nil, fmt.Errorf("%w: trials and length must be >= 1", drive.ErrConfiguration)
	}
	if err := cfg.Limits.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	symbols := drive.Symbols()

	results := make([]RandomResult, 0, cfg.Trials)
	for trial := 0; trial < cfg.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		ctrl, err := drive.NewFromLimits(cfg.Limits)
		if err != nil {
			return nil, err
		}
		res := RandomResult{
			Trial:   trial,
			Symbols: make([]drive.Symbol, 0, cfg.Length),
			Motions: make(map[drive.Motion]int),
		}
		for i := 0; i < cfg.Length; i++ {
			sym := symbols[rng.Intn(len(symbols))]
			res.Symbols = append(res.Symbols, sym)
			if _, _, err := ctrl.Apply(sym); err != nil {
				res.Err = err
				break
			}
			res.Motions[ctrl.Motion()]++
		}
		res.Final[0], res.Final[1] = ctrl.Speeds()
		results = append(results, res)
	}
	return results, nil
}

// RandomStats counts stable and faulted trials and combines their errors.
func RandomStats(results []RandomResult) (stable int, faulted int, err error) {
	for _, r := range results {
		if r.Stable() {
			stable++
			continue
		}
		faulted++
		err = multierr.Append(err, fmt.Errorf("trial %d: %w", r.Trial, r.Err))
	}
	return stable, faulted, err
}
