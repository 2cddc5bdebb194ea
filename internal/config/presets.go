package config

import "sort"

// Presets are named controller ranges.
var Presets = map[string]ControllerConfig{
	// five key presses from rest to full speed
	"keypad": {Min: 0, Max: 100, Step: 20},
	// fine control for slow crawling
	"crawler": {Min: 0, Max: 100, Step: 5},
	// two spin steps before saturation
	"spin": {Min: 0, Max: 25, Step: 10},
	// three arc steps before the outer track saturates
	"arc": {Min: 0, Max: 35, Step: 10},
	// servo-style drivers whose rest value is not zero
	"offset": {Min: 1500, Max: 2000, Step: 100},
}

// GetPreset returns the default config with the named controller range, or
// nil if there is no such preset.
func GetPreset(name string) *Config {
	ctrl, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Controller = ctrl
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
