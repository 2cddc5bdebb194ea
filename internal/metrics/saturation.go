package metrics

import (
	"github.com/san-kum/skidsteer/internal/drive"
	"github.com/san-kum/skidsteer/internal/session"
)

// Saturation is the fraction of steps with at least one track that another
// step in the same direction cannot push further.
type Saturation struct {
	name      string
	saturated int
	samples   int
}

func NewSaturation() *Saturation {
	return &Saturation{
		name: "saturation",
	}
}

func (s *Saturation) Name() string {
	return s.name
}

func (s *Saturation) Observe(step session.Step, limits drive.Limits) {
	s.samples++
	bound := limits.Span() - limits.Step
	if abs(step.Left-limits.Min) > bound || abs(step.Right-limits.Min) > bound {
		s.saturated++
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.saturated) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.saturated = 0
	s.samples = 0
}

// PeakSpeed is the largest track displacement seen.
type PeakSpeed struct {
	peak int
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{}
}

func (p *PeakSpeed) Name() string {
	return "peak_speed"
}

func (p *PeakSpeed) Observe(step session.Step, limits drive.Limits) {
	p.peak = max(p.peak, abs(step.Left-limits.Min), abs(step.Right-limits.Min))
}

func (p *PeakSpeed) Value() float64 {
	return float64(p.peak)
}

func (p *PeakSpeed) Reset() {
	p.peak = 0
}
