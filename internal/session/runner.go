package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/san-kum/skidsteer/internal/drive"
)

// Runner feeds commands to a controller and records what happened.
type Runner struct {
	ctrl      *drive.Controller
	metrics   []Metric
	observers []Observer
	logger    *zap.Logger
	steps     []Step
	errs      []error
}

func New(ctrl *drive.Controller, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		ctrl:      ctrl,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    logger,
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Controller() *drive.Controller { return r.ctrl }

// Step applies one command. Rejected inputs are remembered in the trace and
// returned; a consistency fault is returned and nothing is recorded.
func (r *Runner) Step(sym drive.Symbol) (Step, error) {
	left, right, err := r.ctrl.Apply(sym)
	if err != nil {
		if errors.Is(err, drive.ErrInvalidInput) {
			r.errs = append(r.errs, err)
		}
		return Step{}, err
	}

	s := Step{
		Index:  len(r.steps),
		Symbol: sym,
		Left:   left,
		Right:  right,
		Motion: r.ctrl.Motion(),
	}
	r.steps = append(r.steps, s)

	limits := r.ctrl.Limits()
	for _, m := range r.metrics {
		m.Observe(s, limits)
	}
	for _, obs := range r.observers {
		obs.OnStep(s)
	}
	return s, nil
}

// Run applies every symbol in order. Invalid inputs are skipped; a
// consistency fault or a canceled context ends the run early. The trace
// is returned in every case.
func (r *Runner) Run(ctx context.Context, symbols []drive.Symbol) (*Trace, error) {
	for _, m := range r.metrics {
		m.Reset()
	}
	r.steps = make([]Step, 0, len(symbols))
	r.errs = nil

	for _, sym := range symbols {
		select {
		case <-ctx.Done():
			return r.Trace(), ctx.Err()
		default:
		}

		if _, err := r.Step(sym); err != nil {
			if errors.Is(err, drive.ErrInvalidInput) {
				r.logger.Warn("skipping input", zap.Error(err))
				continue
			}
			return r.Trace(), err
		}
	}
	return r.Trace(), nil
}

// Trace snapshots the steps recorded so far with current metric values.
func (r *Runner) Trace() *Trace {
	t := &Trace{
		Limits:  r.ctrl.Limits(),
		Steps:   append([]Step(nil), r.steps...),
		Metrics: make(map[string]float64, len(r.metrics)),
		Errors:  append([]error(nil), r.errs...),
	}
	for _, m := range r.metrics {
		t.Metrics[m.Name()] = m.Value()
	}
	return t
}
