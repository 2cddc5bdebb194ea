package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/skidsteer/internal/drive"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))
)

// MotionStyle picks the theme color for a motion.
func (t Theme) MotionStyle(m drive.Motion) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch {
	case m == drive.Invalid:
		return style.Foreground(t.Error)
	case m == drive.Stopped:
		return style.Foreground(t.Muted)
	case m.Spinning():
		return style.Foreground(t.Spin)
	case m == drive.Back, m == drive.TurningLeftBack, m == drive.TurningRightBack:
		return style.Foreground(t.Reverse)
	}
	return style.Foreground(t.Forward)
}

// SpeedBar draws a centred bar for a displacement in [-span, span]. The
// left half fills towards the left for reverse, the right half for forward.
func (t Theme) SpeedBar(displacement, span, width int) string {
	half := width / 2
	if half < 1 || span <= 0 {
		return ""
	}
	filled := abs(displacement) * half / span
	filled = min(filled, half)

	left := strings.Repeat("░", half)
	right := strings.Repeat("░", half)
	if displacement < 0 {
		left = strings.Repeat("░", half-filled) + lipgloss.NewStyle().Foreground(t.Reverse).Render(strings.Repeat("█", filled))
	} else if displacement > 0 {
		right = lipgloss.NewStyle().Foreground(t.Forward).Render(strings.Repeat("█", filled)) + strings.Repeat("░", half-filled)
	}
	return left + "│" + right
}

// SparklineChart renders a mini sparkline from values.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	// keep the most recent values
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var result strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		result.WriteRune(chars[idx])
	}
	return result.String()
}

func Separator(width int) string {
	if width < 8 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
