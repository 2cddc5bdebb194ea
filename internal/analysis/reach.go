package analysis

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/san-kum/skidsteer/internal/drive"
)

// Pair is an absolute left/right track reading.
type Pair struct {
	Left  int
	Right int
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d,%d)", p.Left, p.Right)
}

// Violation is a transition that broke an invariant.
type Violation struct {
	From   Pair
	Symbol drive.Symbol
	To     Pair
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s --%s--> %s: %s", v.From, v.Symbol, v.To, v.Reason)
}

type Report struct {
	Limits      drive.Limits
	States      []Pair
	Transitions int
	Violations  []Violation
	// Motions counts reachable states per classification.
	Motions map[drive.Motion]int
}

func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// Explore runs a breadth-first search over the states reachable from stop.
// It returns an error only when the limits themselves are unusable.
func Explore(minValue, maxValue, step int) (*Report, error) {
	ctrl, err := drive.New(minValue, maxValue, step)
	if err != nil {
		return nil, err
	}
	limits := ctrl.Limits()

	start := Pair{Left: limits.Min, Right: limits.Min}
	seen := map[Pair]bool{start: true}
	queue := []Pair{start}
	report := &Report{
		Limits:  limits,
		Motions: make(map[drive.Motion]int),
	}

	for len(queue) > 0 {
		from := queue[0]
		queue = queue[1:]
		report.States = append(report.States, from)

		for _, sym := range drive.Symbols() {
			if err := ctrl.Restore(from.Left, from.Right); err != nil {
				report.Violations = append(report.Violations, Violation{
					From: from, Symbol: sym, To: from, Reason: err.Error(),
				})
				break
			}
			left, right, err := ctrl.Apply(sym)
			to := Pair{Left: left, Right: right}
			report.Transitions++

			if err != nil {
				report.Violations = append(report.Violations, Violation{
					From: from, Symbol: sym, To: to, Reason: err.Error(),
				})
				continue
			}
			for _, reason := range checkTransition(limits, sym, from, to) {
				report.Violations = append(report.Violations, Violation{
					From: from, Symbol: sym, To: to, Reason: reason,
				})
			}
			if !seen[to] {
				seen[to] = true
				queue = append(queue, to)
			}
		}
	}

	for _, p := range report.States {
		report.Motions[drive.Classify(p.Left-limits.Min, p.Right-limits.Min)]++
	}
	sort.Slice(report.States, func(i, j int) bool {
		a, b := report.States[i], report.States[j]
		if a.Left != b.Left {
			return a.Left < b.Left
		}
		return a.Right < b.Right
	})
	return report, nil
}

func checkTransition(limits drive.Limits, sym drive.Symbol, from, to Pair) []string {
	var reasons []string
	l, r := to.Left-limits.Min, to.Right-limits.Min
	span := limits.Span()

	if !jumpAllowed(limits, sym, from, to) &&
		(abs(to.Left-from.Left) > limits.Step || abs(to.Right-from.Right) > limits.Step) {
		reasons = append(reasons, "track moved more than one step")
	}

	if (l == 0) != (r == 0) {
		reasons = append(reasons, "one track stationary")
	}
	if abs(l) > span || abs(r) > span {
		reasons = append(reasons, "track beyond saturation")
	}
	if l%limits.Step != 0 || r%limits.Step != 0 {
		reasons = append(reasons, "track off the step grid")
	}
	if drive.Classify(l, r) == drive.Invalid {
		reasons = append(reasons, "unclassifiable pair")
	}
	if sym == drive.Stop && (l != 0 || r != 0) {
		reasons = append(reasons, "stop did not stop")
	}
	return reasons
}

// jumpAllowed reports whether a transition may move a track by more than one
// step: stopping, a spin interrupted by a move, or straightening an arc onto
// the other track's value.
func jumpAllowed(limits drive.Limits, sym drive.Symbol, from, to Pair) bool {
	if sym == drive.Stop {
		return true
	}
	if sym != drive.MoveForward && sym != drive.MoveBack {
		return false
	}
	switch drive.Classify(from.Left-limits.Min, from.Right-limits.Min) {
	case drive.SpinningLeft, drive.SpinningRight:
		return to.Left == limits.Min && to.Right == limits.Min
	case drive.TurningLeftForward, drive.TurningLeftBack:
		return to.Right == from.Right && to.Left == from.Right
	case drive.TurningRightForward, drive.TurningRightBack:
		return to.Left == from.Left && to.Right == from.Left
	}
	return false
}

// GridResult is one configuration of a sweep.
type GridResult struct {
	Limits drive.Limits
	Report *Report
}

// ExploreGrid explores every max in (minValue, minValue+maxSpan] with every
// step from 1 up to min(maxStep, span). Configurations are reported in order
// of span, then step.
func ExploreGrid(minValue, maxSpan, maxStep int) ([]GridResult, error) {
	if maxSpan < 1 || maxStep < 1 {
		return nil, fmt.Errorf("%w: grid needs span and step >= 1", drive.ErrConfiguration)
	}

	results := make([]GridResult, 0, maxSpan*maxStep)
	var errs error
	for span := 1; span <= maxSpan; span++ {
		for step := 1; step <= maxStep && step <= span; step++ {
			report, err := Explore(minValue, minValue+span, step)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			results = append(results, GridResult{Limits: report.Limits, Report: report})
		}
	}
	return results, errs
}

// Failures filters a sweep down to the configurations with violations.
func Failures(results []GridResult) []GridResult {
	var out []GridResult
	for _, res := range results {
		if !res.Report.OK() {
			out = append(out, res)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
