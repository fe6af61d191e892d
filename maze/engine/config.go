package engine

import "fmt"

// DefaultMazeConfig returns the generation settings of the original program:
// a 10x10 grid with 90% open cells and a clock seed.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Name:            "default",
		Description:     "10x10 grid, 90% open cells",
		Height:          DefaultHeight,
		Width:           DefaultWidth,
		OpenProbability: DefaultOpenProbability,
	}
}

// ValidateMazeConfig validates a named maze configuration
func ValidateMazeConfig(config *MazeConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if err := validateDimensions(config.Height, config.Width); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if err := validateProbability(config.OpenProbability); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

// validateDimensions rejects grids that cannot hold distinct start and goal cells
func validateDimensions(height, width int) error {
	if height < MinDimension || width < MinDimension {
		return fmt.Errorf("%w: height and width must be positive, got %dx%d", ErrInvalidDimensions, height, width)
	}
	if height*width < 2 {
		return fmt.Errorf("%w: need at least 2 cells for distinct start and goal, got %dx%d", ErrInvalidDimensions, height, width)
	}
	return nil
}

func validateProbability(p float64) error {
	if p <= 0 || p > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidProbability, p)
	}
	return nil
}
