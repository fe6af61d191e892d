package engine

import (
	"fmt"
	"strings"
)

// SearchMode selects the graph-search strategy used by CalculateShortestPath
type SearchMode int

const (
	BFS SearchMode = iota
	DFS
	Greedy
)

const (
	// Validation constants
	MinDimension           = 1
	DefaultOpenProbability = 0.9
	DefaultHeight          = 10
	DefaultWidth           = 10

	// Traversability costs assigned at generation time
	OpenCost    = 1
	BlockedCost = -1
)

// Rendering glyphs, two characters per cell
const (
	GlyphStart   = "ME"
	GlyphGoal    = "GL"
	GlyphOpen    = "[]"
	GlyphBlocked = "><"
	GlyphPath    = "HI"
)

// Layout characters accepted by NewGridFromLayout
const (
	LayoutStart   = 'S'
	LayoutGoal    = 'G'
	LayoutOpen    = '.'
	LayoutBlocked = '#'
)

// String returns the lowercase name of the mode
func (m SearchMode) String() string {
	switch m {
	case BFS:
		return "bfs"
	case DFS:
		return "dfs"
	case Greedy:
		return "greedy"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// SearchModes lists every supported mode in dispatch order
func SearchModes() []SearchMode {
	return []SearchMode{BFS, DFS, Greedy}
}

// ParseSearchMode maps a user-supplied name to a SearchMode.
// "astar" and "a*" are accepted for Greedy, matching the name the
// strategy historically went by.
func ParseSearchMode(name string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs", "breadth-first":
		return BFS, nil
	case "dfs", "depth-first":
		return DFS, nil
	case "greedy", "astar", "a*", "best-first":
		return Greedy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSearchMode, name)
	}
}

// Position represents x,y coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String formats the position as "(x,y)"
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// MazeConfig describes how a random grid is generated
type MazeConfig struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Height          int     `json:"height"`
	Width           int     `json:"width"`
	OpenProbability float64 `json:"open_probability"`
	// Seed drives the random source; zero means seed from the clock.
	Seed int64 `json:"seed,omitempty"`
}
