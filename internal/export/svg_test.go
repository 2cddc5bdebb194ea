package export

import (
	"context"
	"strings"
	"testing"

	"github.com/san-kum/skidsteer/internal/drive"
	"github.com/san-kum/skidsteer/internal/session"
)

func TestTraceToSVG(t *testing.T) {
	ctrl, err := drive.New(0, 100, 20)
	if err != nil {
		t.Fatal(err)
	}
	trace, err := session.New(ctrl, nil).Run(context.Background(), []drive.Symbol{
		drive.MoveForward, drive.TurnRight, drive.Stop,
	})
	if err != nil {
		t.Fatal(err)
	}

	svg := TraceToSVG(trace, 300, 200)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document:\n%s", svg)
	}
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("expected two series")
	}
	if strings.Count(svg, "<line") != 3 {
		t.Errorf("expected three guide lines")
	}
	for _, c := range []string{LeftColor, RightColor} {
		if !strings.Contains(svg, c) {
			t.Errorf("missing series color %s", c)
		}
	}
	// baseline sits in the middle of the canvas
	if !strings.Contains(svg, `y1="100.0"`) {
		t.Errorf("expected baseline at y=100")
	}
}

func TestTraceToSVGEmpty(t *testing.T) {
	if TraceToSVG(&session.Trace{}, 100, 100) != "" {
		t.Error("expected empty output for empty trace")
	}
	if TraceToSVG(nil, 100, 100) != "" {
		t.Error("expected empty output for nil trace")
	}
}
