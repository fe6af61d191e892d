package service

import (
	"context"
	"time"

	"github.com/wricardo/mazepath/maze/engine"
)

// MazeService defines all maze-related operations
type MazeService interface {
	// Maze management
	CreateMaze(ctx context.Context, presetName string) (*MazeInfo, error)
	CreateMazeFromConfig(ctx context.Context, config engine.MazeConfig) (*MazeInfo, error)
	CreateMazeFromLayout(ctx context.Context, layout []string) (*MazeInfo, error)
	GetMaze(ctx context.Context, mazeID string) (*MazeInfo, error)
	ListMazes(ctx context.Context) ([]*MazeInfo, error)
	DeleteMaze(ctx context.Context, mazeID string) error

	// Search operations
	Solve(ctx context.Context, mazeID string, mode engine.SearchMode, opts SolveOptions) (*SolveResult, error)
	Compare(ctx context.Context, mazeID string) (*CompareResult, error)
	Reset(ctx context.Context, mazeID string) error
	Render(ctx context.Context, mazeID string) ([]string, error)

	// Presets
	ListPresets(ctx context.Context) ([]*PresetInfo, error)
	LoadPreset(ctx context.Context, presetName string) (*engine.MazeConfig, error)
	SavePreset(ctx context.Context, presetName string, config *engine.MazeConfig) error
}

// SessionManager defines maze session storage operations
type SessionManager interface {
	Create(id string, grid *engine.Grid, config *engine.MazeConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// PresetManager handles named maze configurations
type PresetManager interface {
	LoadPreset(name string) (*engine.MazeConfig, error)
	ListPresets() ([]*PresetInfo, error)
	GetDefault() *engine.MazeConfig
	SavePreset(name string, config *engine.MazeConfig) error
}

// Session represents a stored maze
type Session struct {
	ID             string
	Grid           *engine.Grid
	Config         *engine.MazeConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
	Searches       int
}
