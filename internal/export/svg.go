package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/skidsteer/internal/session"
)

const (
	LeftColor  = "#00a8ff"
	RightColor = "#ff4757"
)

// TraceToSVG draws the left and right track values of a trace as step
// lines, with dashed guides at the baseline and both saturation bounds.
func TraceToSVG(trace *session.Trace, width, height int) string {
	if trace == nil || len(trace.Steps) == 0 || width < 1 || height < 1 {
		return ""
	}
	left, right := trace.Series()
	limits := trace.Limits

	span := float64(limits.Span())
	base := float64(limits.Min)
	// 10% padding above and below the reachable range
	lo := base - span*1.1
	hi := base + span*1.1
	rng := hi - lo

	x := func(i int) float64 {
		return float64(i) / float64(len(left)-1) * float64(width)
	}
	y := func(v float64) float64 {
		return float64(height) - (v-lo)/rng*float64(height)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, v := range []float64{base - span, base, base + span} {
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-dasharray="4 4"/>
`, y(v), width, y(v)))
	}

	for _, series := range []struct {
		values []float64
		color  string
	}{
		{left, LeftColor},
		{right, RightColor},
	} {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M%.1f,%.1f`,
			series.color, x(0), y(series.values[0])))
		for i := 1; i < len(series.values); i++ {
			// hold the previous value until the command lands
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f L%.1f,%.1f",
				x(i), y(series.values[i-1]), x(i), y(series.values[i])))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
