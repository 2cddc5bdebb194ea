package analysis

import (
	"errors"
	"testing"

	"github.com/san-kum/skidsteer/internal/drive"
)

func TestExploreSmallest(t *testing.T) {
	report, err := Explore(0, 10, 10)
	if err != nil {
		t.Fatalf("explore failed: %v", err)
	}
	if !report.OK() {
		t.Fatalf("unexpected violations: %v", report.Violations)
	}
	if len(report.States) != 5 {
		t.Errorf("expected 5 states, got %d: %v", len(report.States), report.States)
	}
	if report.Transitions != 25 {
		t.Errorf("expected 25 transitions, got %d", report.Transitions)
	}
	for _, m := range []drive.Motion{drive.Stopped, drive.Forward, drive.Back, drive.SpinningLeft, drive.SpinningRight} {
		if report.Motions[m] != 1 {
			t.Errorf("expected one %s state, got %d", m, report.Motions[m])
		}
	}
}

func TestExploreDefaultKeypad(t *testing.T) {
	report, err := Explore(0, 100, 20)
	if err != nil {
		t.Fatalf("explore failed: %v", err)
	}
	if !report.OK() {
		t.Fatalf("unexpected violations: %v", report.Violations)
	}

	found := map[Pair]bool{}
	for _, p := range report.States {
		found[p] = true
	}
	for _, p := range []Pair{{0, 0}, {100, 100}, {-100, -100}, {20, 100}, {-100, 100}, {-20, -100}} {
		if !found[p] {
			t.Errorf("expected %s to be reachable", p)
		}
	}
	for _, p := range []Pair{{0, 20}, {120, 120}, {-20, 40}} {
		if found[p] {
			t.Errorf("%s should not be reachable", p)
		}
	}
	if report.Transitions != len(report.States)*len(drive.Symbols()) {
		t.Errorf("expected every state to be expanded by every symbol")
	}
}

func TestExploreOffsetBaseline(t *testing.T) {
	report, err := Explore(1500, 1600, 50)
	if err != nil {
		t.Fatalf("explore failed: %v", err)
	}
	if !report.OK() {
		t.Fatalf("unexpected violations: %v", report.Violations)
	}
	if report.States[0].Left < 1400 {
		t.Errorf("states should stay within the mirrored range, got %s", report.States[0])
	}
}

func TestExploreBadLimits(t *testing.T) {
	if _, err := Explore(10, 10, 1); !errors.Is(err, drive.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestExploreGrid(t *testing.T) {
	results, err := ExploreGrid(0, 12, 4)
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}
	// spans 1..12 with steps up to min(4, span): 1+2+3+4*9
	if len(results) != 42 {
		t.Errorf("expected 42 configurations, got %d", len(results))
	}
	if failed := Failures(results); len(failed) != 0 {
		t.Errorf("expected no failures, got %v", failed[0].Report.Violations)
	}

	if _, err := ExploreGrid(0, 0, 1); !errors.Is(err, drive.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestCheckTransition(t *testing.T) {
	limits := drive.Limits{Min: 0, Max: 30, Step: 10}
	tests := []struct {
		sym     drive.Symbol
		from    Pair
		to      Pair
		reasons int
	}{
		{drive.MoveForward, Pair{0, 0}, Pair{10, 10}, 0},
		{drive.TurnLeft, Pair{0, 0}, Pair{0, 10}, 2},
		{drive.MoveForward, Pair{30, 30}, Pair{40, 40}, 1},
		{drive.MoveForward, Pair{10, 10}, Pair{15, 15}, 1},
		{drive.Stop, Pair{10, 10}, Pair{10, 10}, 1},
		{drive.MoveForward, Pair{0, 0}, Pair{30, 30}, 1},
		{drive.TurnLeft, Pair{0, 0}, Pair{-20, 20}, 1},
		{drive.Stop, Pair{30, 30}, Pair{0, 0}, 0},
		{drive.MoveBack, Pair{-30, 30}, Pair{0, 0}, 0},
		{drive.MoveForward, Pair{10, 30}, Pair{30, 30}, 0},
		{drive.MoveBack, Pair{-10, -30}, Pair{-30, -30}, 0},
		{drive.MoveForward, Pair{30, 10}, Pair{30, 30}, 0},
		{drive.MoveForward, Pair{10, 30}, Pair{30, 10}, 1},
		{drive.TurnRight, Pair{30, 10}, Pair{30, 30}, 1},
	}
	for _, tt := range tests {
		if got := checkTransition(limits, tt.sym, tt.from, tt.to); len(got) != tt.reasons {
			t.Errorf("%s %s -> %s: expected %d reasons, got %v", tt.sym, tt.from, tt.to, tt.reasons, got)
		}
	}
}
