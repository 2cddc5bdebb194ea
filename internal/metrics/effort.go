package metrics

import (
	"github.com/san-kum/skidsteer/internal/drive"
	"github.com/san-kum/skidsteer/internal/session"
)

// Effort is the mean combined track displacement per step.
type Effort struct {
	name    string
	sum     float64
	samples int
}

func NewEffort() *Effort {
	return &Effort{
		name: "effort",
	}
}

func (e *Effort) Name() string {
	return e.name
}

func (e *Effort) Observe(s session.Step, limits drive.Limits) {
	e.sum += float64(abs(s.Left-limits.Min) + abs(s.Right-limits.Min))
	e.samples++
}

func (e *Effort) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *Effort) Reset() {
	e.sum = 0
	e.samples = 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
