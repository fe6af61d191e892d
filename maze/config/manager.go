package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/mazepath/maze/engine"
	"github.com/wricardo/mazepath/maze/service"
)

var (
	ErrPresetNotFound = service.ErrPresetNotFound
	ErrInvalidPreset  = service.ErrInvalidPreset
	ErrMazeTooLarge   = errors.New("maze too large")
)

const (
	// DefaultPreset is the preset used when none is requested
	DefaultPreset = "classic"

	// MaxDimension caps each side of preset and command-line mazes
	MaxDimension = 500
)

// CheckSize rejects mazes with a side longer than MaxDimension
func CheckSize(height, width int) error {
	if height > MaxDimension || width > MaxDimension {
		return fmt.Errorf("%w: %dx%d, sides are limited to %d", ErrMazeTooLarge, height, width, MaxDimension)
	}
	return nil
}

// builtinPresets returns fresh copies of the presets every Manager starts with
func builtinPresets() map[string]*engine.MazeConfig {
	return map[string]*engine.MazeConfig{
		"tiny": {
			Name:            "tiny",
			Description:     "5x5 warm-up maze",
			Height:          5,
			Width:           5,
			OpenProbability: engine.DefaultOpenProbability,
		},
		"classic": {
			Name:            "classic",
			Description:     "10x10 maze with 10% blocked cells",
			Height:          engine.DefaultHeight,
			Width:           engine.DefaultWidth,
			OpenProbability: engine.DefaultOpenProbability,
		},
		"large": {
			Name:            "large",
			Description:     "40x40 maze for comparing expansion counts",
			Height:          40,
			Width:           40,
			OpenProbability: engine.DefaultOpenProbability,
		},
		"sparse": {
			Name:            "sparse",
			Description:     "20x20 maze with 30% blocked cells, often unsolvable",
			Height:          20,
			Width:           20,
			OpenProbability: 0.7,
		},
	}
}

// Manager handles preset lookup and caching
type Manager struct {
	defaultName string
	presets     map[string]*engine.MazeConfig
	mu          sync.RWMutex
}

// NewManager creates a preset manager seeded with the built-in presets
func NewManager() *Manager {
	return &Manager{
		defaultName: DefaultPreset,
		presets:     builtinPresets(),
	}
}

// LoadPreset returns a copy of a preset by name. Names are case-insensitive.
func (m *Manager) LoadPreset(name string) (*engine.MazeConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	config, exists := m.presets[normalize(name)]
	if !exists {
		return nil, ErrPresetNotFound
	}
	loaded := *config
	return &loaded, nil
}

// ListPresets returns information about all presets, sorted by id
func (m *Manager) ListPresets() ([]*service.PresetInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	presets := make([]*service.PresetInfo, 0, len(m.presets))
	for id, config := range m.presets {
		presets = append(presets, &service.PresetInfo{
			PresetID:        id,
			Name:            config.Name,
			Description:     config.Description,
			Height:          config.Height,
			Width:           config.Width,
			OpenProbability: config.OpenProbability,
			Seed:            config.Seed,
		})
	}

	sort.Slice(presets, func(i, j int) bool {
		return presets[i].PresetID < presets[j].PresetID
	})
	return presets, nil
}

// GetDefault returns a copy of the default preset
func (m *Manager) GetDefault() *engine.MazeConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if config, exists := m.presets[m.defaultName]; exists {
		loaded := *config
		return &loaded
	}
	fallback := engine.DefaultMazeConfig()
	return &fallback
}

// SetDefault sets the default preset by name
func (m *Manager) SetDefault(name string) error {
	if _, err := m.LoadPreset(name); err != nil {
		return fmt.Errorf("preset '%s': %w", name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultName = normalize(name)
	return nil
}

// SavePreset registers or replaces a preset in memory
func (m *Manager) SavePreset(name string, config *engine.MazeConfig) error {
	id := normalize(name)
	if id == "" {
		return fmt.Errorf("%w: preset id is required", ErrInvalidPreset)
	}
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidPreset)
	}
	if err := engine.ValidateMazeConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	if err := CheckSize(config.Height, config.Width); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}

	saved := *config
	m.mu.Lock()
	m.presets[id] = &saved
	m.mu.Unlock()

	return nil
}

// Reset drops saved presets and restores the built-ins
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.presets = builtinPresets()
	m.defaultName = DefaultPreset
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
