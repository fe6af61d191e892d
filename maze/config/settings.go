package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/wricardo/mazepath/maze/engine"
)

// Environment variables read by LoadSettings
const (
	EnvPreset   = "MAZE_PRESET"
	EnvMode     = "MAZE_MODE"
	EnvSeed     = "MAZE_SEED"
	EnvLogLevel = "LOG_LEVEL"
)

// Settings holds process-wide defaults taken from the environment
type Settings struct {
	Preset   string            // Preset used when no dimensions are given
	Mode     engine.SearchMode // Default search strategy
	Seed     int64             // Generation seed, 0 means time-based
	LogLevel logrus.Level      // Minimum level for log output
}

// DefaultSettings returns the settings used when the environment is empty
func DefaultSettings() Settings {
	return Settings{
		Preset:   DefaultPreset,
		Mode:     engine.BFS,
		LogLevel: logrus.InfoLevel,
	}
}

// LoadSettings loads .env files (default ".env") into the environment and
// reads the maze settings from it. Missing files are ignored; variables
// already set in the environment win over file values.
func LoadSettings(files ...string) (Settings, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("failed to load env file: %w", err)
	}
	return settingsFromEnv()
}

func settingsFromEnv() (Settings, error) {
	settings := DefaultSettings()

	settings.Preset = getEnvWithDefault(EnvPreset, settings.Preset)

	if value, exists := os.LookupEnv(EnvMode); exists && value != "" {
		mode, err := engine.ParseSearchMode(value)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", EnvMode, err)
		}
		settings.Mode = mode
	}

	if value, exists := os.LookupEnv(EnvSeed); exists && value != "" {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Settings{}, fmt.Errorf("%s must be an integer: %w", EnvSeed, err)
		}
		settings.Seed = seed
	}

	if value, exists := os.LookupEnv(EnvLogLevel); exists && value != "" {
		level, err := logrus.ParseLevel(value)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		settings.LogLevel = level
	}

	return settings, nil
}

// getEnvWithDefault returns the variable's value, or defaultValue when unset or empty
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
