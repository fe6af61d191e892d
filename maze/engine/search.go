package engine

import (
	"fmt"
	"math"
)

// StepFunc observes the search advancing its current cell from one position to another
type StepFunc func(from, to Position)

// SearchOptions tunes a single search call
type SearchOptions struct {
	// PersistVisits keeps visited flags and parent links from earlier
	// searches instead of clearing them first.
	PersistVisits bool
	// EarlyExit stops DFS once the goal is popped instead of exploring the
	// whole reachable component.
	EarlyExit bool
	// OnStep is called every time the search moves to a new current cell.
	OnStep StepFunc
}

// SearchOption is a function that modifies SearchOptions
type SearchOption func(*SearchOptions)

// WithPersistentVisits keeps visitation state across searches on the same grid
func WithPersistentVisits() SearchOption {
	return func(o *SearchOptions) { o.PersistVisits = true }
}

// WithEarlyExit makes DFS stop as soon as the goal is reached
func WithEarlyExit() SearchOption {
	return func(o *SearchOptions) { o.EarlyExit = true }
}

// WithOnStep registers a step observer
func WithOnStep(fn StepFunc) SearchOption {
	return func(o *SearchOptions) { o.OnStep = fn }
}

// SearchResult contains the outcome of a search
type SearchResult struct {
	Mode SearchMode
	// Path holds the cells strictly between start and goal, goal side first.
	Path []*Cell
	// Expanded counts adjacency expansions performed.
	Expanded int
	Found    bool
}

// CalculateShortestPath runs the strategy selected by mode and returns the
// cells strictly between start and goal in goal-to-start order.
// Returns ErrNoPathFound when the strategy cannot reach the goal.
func (g *Grid) CalculateShortestPath(mode SearchMode, opts ...SearchOption) ([]*Cell, error) {
	result, err := g.Search(mode, opts...)
	if err != nil {
		return nil, err
	}
	return result.Path, nil
}

// Search runs the strategy selected by mode and reports path plus statistics.
// On ErrNoPathFound the returned result is still populated with Found=false.
func (g *Grid) Search(mode SearchMode, opts ...SearchOption) (*SearchResult, error) {
	o := SearchOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.OnStep == nil {
		o.OnStep = func(Position, Position) {}
	}

	if !o.PersistVisits {
		g.ResetVisitation()
	}
	// The start is never rediscovered, so its parent stays unset
	g.StartCell().SetVisited(true)

	result := &SearchResult{Mode: mode}

	var goal *Cell
	var err error
	switch mode {
	case BFS:
		goal, err = g.searchBFS(&o, result)
	case DFS:
		goal, err = g.searchDFS(&o, result)
	case Greedy:
		goal, err = g.searchGreedy(&o, result)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownSearchMode, int(mode))
	}
	if err != nil {
		return result, err
	}

	path, err := g.reconstructPath(goal)
	if err != nil {
		return result, err
	}

	result.Path = path
	result.Found = true
	return result, nil
}

// searchBFS expands cells in FIFO order until the goal is dequeued
func (g *Grid) searchBFS(o *SearchOptions, result *SearchResult) (*Cell, error) {
	current := g.StartCell()
	queue := make([]*Cell, 0, g.height*g.width)

	for !current.IsGoal(g.goal.X, g.goal.Y) {
		queue = append(queue, g.GetAdjacentTiles(current.X, current.Y)...)
		result.Expanded++

		if len(queue) == 0 {
			return nil, fmt.Errorf("%w: bfs queue exhausted", ErrNoPathFound)
		}
		current = queue[0]
		queue = queue[1:]
		o.OnStep(current.Parent().Position(), current.Position())
	}

	return current, nil
}

// searchDFS walks the reachable component depth-first with an explicit stack.
// Each cell's neighbours are discovered together and then explored in
// discovery order, which is the order a recursive walk would take.
func (g *Grid) searchDFS(o *SearchOptions, result *SearchResult) (*Cell, error) {
	start := g.StartCell()
	stack := []*Cell{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current != start {
			o.OnStep(current.Parent().Position(), current.Position())
		}
		if o.EarlyExit && current.IsGoal(g.goal.X, g.goal.Y) {
			break
		}

		adjacent := g.GetAdjacentTiles(current.X, current.Y)
		result.Expanded++
		for i := len(adjacent) - 1; i >= 0; i-- {
			stack = append(stack, adjacent[i])
		}
	}

	goal := g.GoalCell()
	if goal.Parent() == nil {
		return nil, fmt.Errorf("%w: dfs never reached goal %s", ErrNoPathFound, g.goal)
	}
	return goal, nil
}

// searchGreedy repeatedly steps to the discovered neighbour nearest the goal.
// It never backtracks, so it fails as soon as a step discovers nothing.
// The start is not rediscovered by GetAdjacentTiles, so the cell right after
// it still offers the start as a candidate. Stepping back onto the start is a
// dead end, since all of its neighbours are already visited.
func (g *Grid) searchGreedy(o *SearchOptions, result *SearchResult) (*Cell, error) {
	start := g.StartCell()
	current := start
	startOffered := false

	for !current.IsGoal(g.goal.X, g.goal.Y) {
		candidates := g.GetAdjacentTiles(current.X, current.Y)
		result.Expanded++

		if current != start && !startOffered && current.Parent() == start {
			candidates = g.withStart(current, candidates)
			startOffered = true
		}

		var next *Cell
		best := math.Inf(1)
		for _, c := range candidates {
			if d := EuclideanDistance(c.Position(), g.goal); d < best {
				best = d
				next = c
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: greedy walk stuck at %s", ErrNoPathFound, current)
		}

		o.OnStep(current.Position(), next.Position())
		if next == start {
			return nil, fmt.Errorf("%w: greedy walk returned to start %s", ErrNoPathFound, start)
		}
		current = next
	}

	return current, nil
}

// withStart slots the start cell into candidates at its place in neighbour
// order around current. Ties on distance go to the earlier neighbour.
func (g *Grid) withStart(current *Cell, candidates []*Cell) []*Cell {
	start := g.StartCell()
	ordered := make([]*Cell, 0, len(candidates)+1)
	i := 0

	for _, d := range neighborOffsets {
		n := g.GetTile(current.X+d[0], current.Y+d[1])
		switch {
		case n == nil:
		case n == start:
			ordered = append(ordered, start)
		case i < len(candidates) && n == candidates[i]:
			ordered = append(ordered, n)
			i++
		}
	}

	return ordered
}

// reconstructPath follows parent links back from goal, collecting every cell
// before the start. The goal and start themselves are excluded.
func (g *Grid) reconstructPath(goal *Cell) ([]*Cell, error) {
	path := make([]*Cell, 0)
	limit := g.height * g.width

	for c := goal.Parent(); ; c = c.Parent() {
		if c == nil || len(path) > limit {
			return nil, fmt.Errorf("%w: broken parent chain from %s", ErrNoPathFound, goal)
		}
		if c.IsGoal(g.start.X, g.start.Y) {
			break
		}
		path = append(path, c)
	}

	return path, nil
}
