package engine

import "errors"

var (
	// ErrNoPathFound indicates the goal is unreachable under the chosen strategy.
	ErrNoPathFound = errors.New("engine: no path found")
	// ErrInvalidDimensions indicates a non-positive height or width, or a grid
	// too small to hold distinct start and goal cells.
	ErrInvalidDimensions = errors.New("engine: invalid grid dimensions")
	// ErrInvalidProbability indicates an open probability outside (0,1].
	ErrInvalidProbability = errors.New("engine: open probability must be in (0,1]")
	// ErrInvalidLayout indicates a malformed layout fixture.
	ErrInvalidLayout = errors.New("engine: invalid layout")
	// ErrUnknownSearchMode indicates an unrecognised search mode.
	ErrUnknownSearchMode = errors.New("engine: unknown search mode")
)
