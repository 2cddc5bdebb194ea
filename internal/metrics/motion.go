package metrics

import (
	"github.com/san-kum/skidsteer/internal/drive"
	"github.com/san-kum/skidsteer/internal/session"
)

// MotionFraction is the share of steps whose motion matches a predicate.
type MotionFraction struct {
	name    string
	match   func(drive.Motion) bool
	hits    int
	samples int
}

func NewMotionFraction(name string, match func(drive.Motion) bool) *MotionFraction {
	return &MotionFraction{name: name, match: match}
}

func NewSpinFraction() *MotionFraction {
	return NewMotionFraction("spin_fraction", drive.Motion.Spinning)
}

func NewTurnFraction() *MotionFraction {
	return NewMotionFraction("turn_fraction", drive.Motion.Turning)
}

func (m *MotionFraction) Name() string {
	return m.name
}

func (m *MotionFraction) Observe(step session.Step, limits drive.Limits) {
	m.samples++
	if m.match(step.Motion) {
		m.hits++
	}
}

func (m *MotionFraction) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.hits) / float64(m.samples)
}

func (m *MotionFraction) Reset() {
	m.hits = 0
	m.samples = 0
}

// Default returns the metrics recorded for every session.
func Default() []session.Metric {
	return []session.Metric{
		NewEffort(),
		NewSaturation(),
		NewPeakSpeed(),
		NewSpinFraction(),
		NewTurnFraction(),
	}
}
