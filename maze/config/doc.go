// Package config provides maze preset management and environment settings.
//
// The config package handles:
//   - Built-in maze presets and their lookup by id
//   - Registering custom presets at runtime
//   - Default preset management
//   - Loading process defaults from .env files and the environment
//
// Available Presets:
//
//   - tiny: 5x5 grid at the default open probability
//   - classic: 10x10 grid with roughly 10% blocked cells
//   - large: 40x40 grid for comparing expansion counts
//   - sparse: 20x20 grid with roughly 30% blocked cells
//
// Built-in presets carry no seed, so every maze generated from them is
// different unless the caller supplies one.
//
// Usage:
//
//	manager := config.NewManager()
//
//	classic, err := manager.LoadPreset("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	settings, err := config.LoadSettings()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Environment:
//
// LoadSettings reads MAZE_PRESET, MAZE_MODE, MAZE_SEED and LOG_LEVEL after
// loading any .env file present in the working directory.
package config
