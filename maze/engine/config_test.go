package engine

import (
	"errors"
	"testing"
)

func TestDefaultMazeConfig(t *testing.T) {
	config := DefaultMazeConfig()

	if err := ValidateMazeConfig(&config); err != nil {
		t.Fatalf("Expected default config to be valid, got %v", err)
	}
	if config.OpenProbability != 0.9 {
		t.Errorf("Expected open probability 0.9, got %v", config.OpenProbability)
	}
	if config.Height != DefaultHeight || config.Width != DefaultWidth {
		t.Errorf("Expected %dx%d, got %dx%d", DefaultHeight, DefaultWidth, config.Height, config.Width)
	}
}

func TestValidateMazeConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MazeConfig)
		want   error
	}{
		{"zero height", func(c *MazeConfig) { c.Height = 0 }, ErrInvalidDimensions},
		{"negative width", func(c *MazeConfig) { c.Width = -4 }, ErrInvalidDimensions},
		{"single cell", func(c *MazeConfig) { c.Height, c.Width = 1, 1 }, ErrInvalidDimensions},
		{"zero probability", func(c *MazeConfig) { c.OpenProbability = 0 }, ErrInvalidProbability},
		{"probability above one", func(c *MazeConfig) { c.OpenProbability = 1.01 }, ErrInvalidProbability},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := DefaultMazeConfig()
			test.mutate(&config)
			if err := ValidateMazeConfig(&config); !errors.Is(err, test.want) {
				t.Errorf("Expected %v, got %v", test.want, err)
			}
		})
	}
}

func TestValidateMazeConfig_MissingName(t *testing.T) {
	config := DefaultMazeConfig()
	config.Name = ""

	if err := ValidateMazeConfig(&config); err == nil {
		t.Error("Expected error for missing name")
	}
	if err := ValidateMazeConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestDistancesAndDirection(t *testing.T) {
	a, b := Position{X: 0, Y: 0}, Position{X: 3, Y: 4}

	if got := ManhattanDistance(a, b); got != 7 {
		t.Errorf("Expected Manhattan distance 7, got %d", got)
	}
	if got := EuclideanDistance(a, b); got != 5 {
		t.Errorf("Expected Euclidean distance 5, got %v", got)
	}

	tests := []struct {
		to       Position
		expected string
	}{
		{Position{X: -1, Y: 0}, "left"},
		{Position{X: 1, Y: 0}, "right"},
		{Position{X: 0, Y: 1}, "down"},
		{Position{X: 0, Y: -1}, "up"},
		{Position{X: 0, Y: 0}, "stay"},
	}
	for _, test := range tests {
		if got := Direction(a, test.to); got != test.expected {
			t.Errorf("Direction to %v: expected %s, got %s", test.to, test.expected, got)
		}
	}
}
