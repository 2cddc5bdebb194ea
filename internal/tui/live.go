package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/san-kum/skidsteer/internal/drive"
	"github.com/san-kum/skidsteer/internal/session"
	"github.com/san-kum/skidsteer/internal/viz"
)

// LiveRenderer prints each step of a scripted run as it is applied. With
// a delay set it paces the run so the bars can be followed.
type LiveRenderer struct {
	out    io.Writer
	limits drive.Limits
	theme  viz.Theme
	delay  time.Duration
}

func NewLiveRenderer(out io.Writer, limits drive.Limits, delay time.Duration) *LiveRenderer {
	return &LiveRenderer{
		out:    out,
		limits: limits,
		theme:  viz.ThemeConsole,
		delay:  delay,
	}
}

func (r *LiveRenderer) SetTheme(t viz.Theme) { r.theme = t }

func (r *LiveRenderer) OnStep(s session.Step) {
	span := r.limits.Span()
	line := fmt.Sprintf("%4d %-8s L %s %6d  R %s %6d  %s",
		s.Index,
		s.Symbol,
		r.theme.SpeedBar(s.Left-r.limits.Min, span, 20), s.Left,
		r.theme.SpeedBar(s.Right-r.limits.Min, span, 20), s.Right,
		r.theme.MotionStyle(s.Motion).Render(s.Motion.String()))

	fmt.Fprintln(r.out, line)
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
}
