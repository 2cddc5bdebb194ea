package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/skidsteer/internal/session"
)

// PlotSpeeds draws the left and right track values of a trace, starting
// from the baseline. The left track is drawn in blue, the right in red.
func PlotSpeeds(trace *session.Trace, height, width int) string {
	if trace == nil || len(trace.Steps) == 0 {
		return "no steps recorded"
	}
	left, right := trace.Series()

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("left (blue) / right (red), %s", trace.Limits)),
		asciigraph.Precision(0),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.PlotMany([][]float64{left, right}, opts...)
}
