package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/skidsteer/internal/drive"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Controller.Max != 100 || cfg.Controller.Step != 20 {
		t.Errorf("unexpected default range %+v", cfg.Controller)
	}
	if cfg.Session.DataDir == "" {
		t.Error("data dir should not be empty")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skidsteer.yaml")

	cfg := DefaultConfig()
	cfg.Controller = ControllerConfig{Min: 0, Max: 35, Step: 10}
	cfg.Keymap = map[string]string{"k": "forward"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Controller != cfg.Controller {
		t.Errorf("expected %+v, got %+v", cfg.Controller, loaded.Controller)
	}
	if loaded.Keymap["k"] != "forward" {
		t.Errorf("keymap not preserved: %v", loaded.Keymap)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("controller:\n  max: 50\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Controller.Max != 50 {
		t.Errorf("expected max 50, got %d", cfg.Controller.Max)
	}
	if cfg.Controller.Step != DefaultStep {
		t.Errorf("expected default step, got %d", cfg.Controller.Step)
	}
	if cfg.Plot.Width != DefaultPlotWidth {
		t.Errorf("expected default plot width, got %d", cfg.Plot.Width)
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.yaml")
	if err := os.WriteFile(path, []byte("plot:\n  height: 20\nkeymap:\n  k: forward\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("offset")
	base.Keymap = map[string]string{"j": "back"}
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Controller != Presets["offset"] {
		t.Errorf("preset range should survive, got %+v", cfg.Controller)
	}
	if cfg.Plot.Height != 20 {
		t.Errorf("expected height 20, got %d", cfg.Plot.Height)
	}
	if cfg.Keymap["j"] != "back" || cfg.Keymap["k"] != "forward" {
		t.Errorf("expected merged keymap, got %v", cfg.Keymap)
	}
	if _, ok := base.Keymap["k"]; ok {
		t.Error("base keymap should not be modified")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Controller = ControllerConfig{Min: 10, Max: 0, Step: 0}
	cfg.Keymap = map[string]string{"x": "jump"}
	cfg.Session.DataDir = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, drive.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration in %v", err)
	}
	if !errors.Is(err, drive.ErrInvalidInput) {
		t.Errorf("expected keymap error in %v", err)
	}
	if !strings.Contains(err.Error(), "data_dir") {
		t.Errorf("expected data dir error in %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("arc")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Controller.Max != 35 {
		t.Errorf("expected max 35, got %d", cfg.Controller.Max)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SKIDSTEER_MAX", "60")
	t.Setenv("SKIDSTEER_STEP", "15")
	t.Setenv("SKIDSTEER_MIN", "not-a-number")
	t.Setenv("SKIDSTEER_DATA", " /tmp/runs ")
	t.Setenv("SKIDSTEER_SAVE", "true")

	cfg := DefaultConfig()
	cfg.ApplyEnv(nil)

	if cfg.Controller.Max != 60 || cfg.Controller.Step != 15 {
		t.Errorf("env overrides not applied: %+v", cfg.Controller)
	}
	if cfg.Controller.Min != DefaultMin {
		t.Errorf("bad value should keep default, got %d", cfg.Controller.Min)
	}
	if cfg.Session.DataDir != "/tmp/runs" {
		t.Errorf("expected trimmed data dir, got %q", cfg.Session.DataDir)
	}
	if !cfg.Session.Save {
		t.Error("expected save enabled")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("SKIDSTEER_TEST_DOTENV=42\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("SKIDSTEER_TEST_DOTENV") })

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got := os.Getenv("SKIDSTEER_TEST_DOTENV"); got != "42" {
		t.Errorf("expected 42, got %q", got)
	}
}
