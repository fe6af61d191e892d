package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// neighborOffsets is the fixed discovery order used by GetAdjacentTiles:
// (x,y+1), (x,y-1), (x-1,y), (x+1,y).
var neighborOffsets = [4][2]int{{0, 1}, {0, -1}, {-1, 0}, {1, 0}}

// Grid owns a height×width collection of cells plus the start and goal designation
type Grid struct {
	height int
	width  int
	cells  [][]*Cell // cells[y][x]
	start  Position
	goal   Position
}

// NewGrid builds a randomly populated grid with the default open probability
// and a clock seed
func NewGrid(height, width int) (*Grid, error) {
	config := DefaultMazeConfig()
	config.Height = height
	config.Width = width
	return NewGridWithConfig(config)
}

// NewGridWithConfig builds a randomly populated grid. A zero OpenProbability
// falls back to DefaultOpenProbability and a zero Seed to the clock; a fixed
// non-zero seed always produces the same grid.
func NewGridWithConfig(config MazeConfig) (*Grid, error) {
	if err := validateDimensions(config.Height, config.Width); err != nil {
		return nil, err
	}

	p := config.OpenProbability
	if p == 0 {
		p = DefaultOpenProbability
	}
	if err := validateProbability(p); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return generate(config.Height, config.Width, p, rand.New(rand.NewSource(seed))), nil
}

func generate(height, width int, openProbability float64, rng *rand.Rand) *Grid {
	g := &Grid{
		height: height,
		width:  width,
		cells:  make([][]*Cell, height),
	}

	for y := 0; y < height; y++ {
		g.cells[y] = make([]*Cell, width)
		for x := 0; x < width; x++ {
			cost := BlockedCost
			if rng.Float64() < openProbability {
				cost = OpenCost
			}
			g.cells[y][x] = newCell(x, y, cost)
		}
	}

	// Reroll both endpoints until they differ
	for {
		g.goal = Position{X: rng.Intn(width), Y: rng.Intn(height)}
		g.start = Position{X: rng.Intn(width), Y: rng.Intn(height)}
		if g.start != g.goal {
			break
		}
	}

	// Endpoints are always traversable regardless of the draw
	g.cells[g.goal.Y][g.goal.X] = newCell(g.goal.X, g.goal.Y, OpenCost)
	g.cells[g.start.Y][g.start.X] = newCell(g.start.X, g.start.Y, OpenCost)

	return g
}

// NewGridFromLayout builds a deterministic grid from rows of layout characters:
// 'S' start, 'G' goal, '.' open, '#' blocked. Row index is y, column index is x.
func NewGridFromLayout(layout []string) (*Grid, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, fmt.Errorf("%w: layout must have at least one row and one column", ErrInvalidLayout)
	}

	height, width := len(layout), len(layout[0])
	if err := validateDimensions(height, width); err != nil {
		return nil, err
	}

	g := &Grid{
		height: height,
		width:  width,
		cells:  make([][]*Cell, height),
	}

	starts, goals := 0, 0
	for y, row := range layout {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d characters, expected %d", ErrInvalidLayout, y, len(row), width)
		}

		g.cells[y] = make([]*Cell, width)
		for x := 0; x < width; x++ {
			cost := OpenCost
			switch row[x] {
			case LayoutStart:
				g.start = Position{X: x, Y: y}
				starts++
			case LayoutGoal:
				g.goal = Position{X: x, Y: y}
				goals++
			case LayoutOpen:
			case LayoutBlocked:
				cost = BlockedCost
			default:
				return nil, fmt.Errorf("%w: invalid character '%c' at (%d,%d)", ErrInvalidLayout, row[x], x, y)
			}
			g.cells[y][x] = newCell(x, y, cost)
		}
	}

	if starts != 1 || goals != 1 {
		return nil, fmt.Errorf("%w: need exactly one start and one goal, got %d and %d", ErrInvalidLayout, starts, goals)
	}

	return g, nil
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return g.height
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// Start returns the start coordinates
func (g *Grid) Start() Position {
	return g.start
}

// Goal returns the goal coordinates
func (g *Grid) Goal() Position {
	return g.goal
}

// StartCell returns the start cell
func (g *Grid) StartCell() *Cell {
	return g.cells[g.start.Y][g.start.X]
}

// GoalCell returns the goal cell
func (g *Grid) GoalCell() *Cell {
	return g.cells[g.goal.Y][g.goal.X]
}

// InBounds reports whether (x,y) lies within the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// GetTile returns the cell at (x,y), or nil when out of bounds
func (g *Grid) GetTile(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.cells[y][x]
}

// GetAdjacentTiles discovers the orthogonal neighbours of (x,y) that are in
// bounds, traversable and not yet visited. Every returned cell is marked
// visited and gets (x,y) as its parent, so repeated calls on the same cell
// return fewer cells.
func (g *Grid) GetAdjacentTiles(x, y int) []*Cell {
	from := g.GetTile(x, y)
	adjacent := make([]*Cell, 0, len(neighborOffsets))

	for _, d := range neighborOffsets {
		n := g.GetTile(x+d[0], y+d[1])
		if n == nil || !n.IsTraversable() || n.IsVisited() {
			continue
		}
		n.SetVisited(true)
		n.SetParent(from)
		adjacent = append(adjacent, n)
	}

	return adjacent
}

// ResetVisitation clears visited flags and parent links on every cell
func (g *Grid) ResetVisitation() {
	for _, row := range g.cells {
		for _, c := range row {
			c.reset()
		}
	}
}

// Reachable reports whether any 4-connected traversable path joins start and
// goal. It keeps its own bookkeeping and leaves cell state untouched.
func (g *Grid) Reachable() bool {
	seen := make([]bool, g.height*g.width)
	queue := []Position{g.start}
	seen[g.start.Y*g.width+g.start.X] = true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p == g.goal {
			return true
		}
		for _, d := range neighborOffsets {
			nx, ny := p.X+d[0], p.Y+d[1]
			if !g.InBounds(nx, ny) || seen[ny*g.width+nx] || !g.cells[ny][nx].IsTraversable() {
				continue
			}
			seen[ny*g.width+nx] = true
			queue = append(queue, Position{X: nx, Y: ny})
		}
	}

	return false
}

// CountTraversable returns the number of open cells
func (g *Grid) CountTraversable() int {
	count := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c.IsTraversable() {
				count++
			}
		}
	}
	return count
}
