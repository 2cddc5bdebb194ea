package config

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/skidsteer/internal/drive"
	"github.com/san-kum/skidsteer/internal/keypad"
)

const (
	DefaultMin         = 0
	DefaultMax         = 100
	DefaultStep        = 20
	DefaultDataDir     = ".skidsteer"
	DefaultSessionName = "session"
	DefaultPlotHeight  = 12
	DefaultPlotWidth   = 60
)

type Config struct {
	Controller ControllerConfig  `yaml:"controller"`
	Keymap     map[string]string `yaml:"keymap,omitempty"`
	Session    SessionConfig     `yaml:"session"`
	Plot       PlotConfig        `yaml:"plot"`
}

type ControllerConfig struct {
	Min  int `yaml:"min"`
	Max  int `yaml:"max"`
	Step int `yaml:"step"`
}

type SessionConfig struct {
	Name    string `yaml:"name"`
	DataDir string `yaml:"data_dir"`
	Save    bool   `yaml:"save"`
}

type PlotConfig struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
}

func DefaultConfig() *Config {
	return &Config{
		Controller: ControllerConfig{
			Min:  DefaultMin,
			Max:  DefaultMax,
			Step: DefaultStep,
		},
		Session: SessionConfig{
			Name:    DefaultSessionName,
			DataDir: DefaultDataDir,
		},
		Plot: PlotConfig{
			Height: DefaultPlotHeight,
			Width:  DefaultPlotWidth,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a config file on top of base. Keys missing from the file
// keep base's values. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	cfg.Keymap = make(map[string]string, len(base.Keymap))
	for k, v := range base.Keymap {
		cfg.Keymap[k] = v
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Limits returns the controller section as drive limits.
func (c *Config) Limits() drive.Limits {
	return drive.Limits{Min: c.Controller.Min, Max: c.Controller.Max, Step: c.Controller.Step}
}

// Keys builds the keypad layout: the defaults overlaid with the keymap section.
func (c *Config) Keys() (keypad.Map, error) {
	return keypad.FromConfig(c.Keymap)
}

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	err := c.Limits().Validate()
	if _, kerr := c.Keys(); kerr != nil {
		err = multierr.Append(err, kerr)
	}
	if c.Session.DataDir == "" {
		err = multierr.Append(err, fmt.Errorf("session.data_dir must not be empty"))
	}
	if c.Plot.Height < 1 || c.Plot.Width < 1 {
		err = multierr.Append(err, fmt.Errorf("plot size %dx%d must be positive", c.Plot.Width, c.Plot.Height))
	}
	return err
}
