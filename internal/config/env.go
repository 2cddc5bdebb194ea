package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const AppEnvBase = "SKIDSTEER_"

// LoadDotEnv reads KEY=value pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv overrides config values from SKIDSTEER_* variables. Values that
// do not parse are logged and skipped.
func (c *Config) ApplyEnv(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.Controller.Min = GetIntEnv(logger, "MIN", c.Controller.Min)
	c.Controller.Max = GetIntEnv(logger, "MAX", c.Controller.Max)
	c.Controller.Step = GetIntEnv(logger, "STEP", c.Controller.Step)
	c.Session.DataDir = GetStringEnv("DATA", c.Session.DataDir)
	c.Session.Name = GetStringEnv("SESSION", c.Session.Name)
	c.Session.Save = GetBoolEnv(logger, "SAVE", c.Session.Save)
}

func GetIntEnv(logger *zap.Logger, env string, defaultValue int) int {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	}
	value, err := strconv.Atoi(strings.TrimSpace(envValue))
	if err != nil {
		logger.Warn("env value not parsed", zap.String("env", AppEnvBase+env), zap.Error(err))
		return defaultValue
	}
	return value
}

func GetBoolEnv(logger *zap.Logger, env string, defaultValue bool) bool {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	}
	value, err := strconv.ParseBool(strings.TrimSpace(envValue))
	if err != nil {
		logger.Warn("env value not parsed", zap.String("env", AppEnvBase+env), zap.Error(err))
		return defaultValue
	}
	return value
}

func GetStringEnv(env string, defaultValue string) string {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	}
	return strings.TrimSpace(envValue)
}
