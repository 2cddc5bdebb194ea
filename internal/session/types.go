package session

import "github.com/san-kum/skidsteer/internal/drive"

// Step is one applied command and the track values it produced.
type Step struct {
	Index  int
	Symbol drive.Symbol
	Left   int
	Right  int
	Motion drive.Motion
}

type Metric interface {
	Name() string
	Observe(s Step, limits drive.Limits)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Step)
}

// Trace is the record of a session.
type Trace struct {
	Limits  drive.Limits
	Steps   []Step
	Metrics map[string]float64
	// Errors holds rejected inputs; they did not change the state.
	Errors []error
}

// Series returns the left and right values, starting at the baseline.
func (t *Trace) Series() ([]float64, []float64) {
	left := make([]float64, 0, len(t.Steps)+1)
	right := make([]float64, 0, len(t.Steps)+1)
	left = append(left, float64(t.Limits.Min))
	right = append(right, float64(t.Limits.Min))
	for _, s := range t.Steps {
		left = append(left, float64(s.Left))
		right = append(right, float64(s.Right))
	}
	return left, right
}

// Symbols returns the applied commands in order.
func (t *Trace) Symbols() []drive.Symbol {
	syms := make([]drive.Symbol, len(t.Steps))
	for i, s := range t.Steps {
		syms[i] = s.Symbol
	}
	return syms
}
