package service

import (
	"time"

	"github.com/wricardo/mazepath/maze/engine"
)

// MazeInfo provides information about a stored maze
type MazeInfo struct {
	ID             string          `json:"id"`
	ConfigName     string          `json:"config_name"`
	Height         int             `json:"height"`
	Width          int             `json:"width"`
	Start          engine.Position `json:"start"`
	Goal           engine.Position `json:"goal"`
	Traversable    int             `json:"traversable"`
	Reachable      bool            `json:"reachable"`
	CreatedAt      time.Time       `json:"created_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	Searches       int             `json:"searches"`
	Rows           []string        `json:"rows"`
}

// SolveOptions configures a single search
type SolveOptions struct {
	// PersistVisits keeps visitation state from earlier searches on the maze.
	PersistVisits bool `json:"persist_visits"`
	// EarlyExit stops DFS at the goal instead of exploring everything.
	EarlyExit bool `json:"early_exit"`
	// TraceSteps records every move the search makes.
	TraceSteps bool `json:"trace_steps"`
}

// SolveResult contains the outcome of a search
type SolveResult struct {
	MazeID     string            `json:"maze_id"`
	Mode       string            `json:"mode"`
	Found      bool              `json:"found"`
	Path       []engine.Position `json:"path"`
	PathLength int               `json:"path_length"`
	Expanded   int               `json:"expanded"`
	Steps      []StepInfo        `json:"steps,omitempty"`
	Rows       []string          `json:"rows"`
	Duration   time.Duration     `json:"duration"`
	Message    string            `json:"message"`
}

// StepInfo is a compact record of one search move
type StepInfo struct {
	Idx  int             `json:"idx"`
	From engine.Position `json:"from"`
	To   engine.Position `json:"to"`
	Dir  string          `json:"dir"`
}

// CompareResult runs every strategy on the same maze
type CompareResult struct {
	MazeID    string         `json:"maze_id"`
	Reachable bool           `json:"reachable"`
	Results   []*SolveResult `json:"results"`
	// Agree is true when BFS and DFS report the same path existence.
	Agree bool `json:"agree"`
	// Shortest names the mode with the shortest found path; BFS wins ties.
	Shortest string `json:"shortest,omitempty"`
}

// PresetInfo provides information about a maze preset
type PresetInfo struct {
	PresetID        string  `json:"preset_id"` // The identifier to use for maze creation
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Height          int     `json:"height"`
	Width           int     `json:"width"`
	OpenProbability float64 `json:"open_probability"`
	Seed            int64   `json:"seed,omitempty"`
}
