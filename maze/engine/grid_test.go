package engine

import (
	"errors"
	"testing"
)

func mustLayout(t *testing.T, layout ...string) *Grid {
	t.Helper()
	g, err := NewGridFromLayout(layout)
	if err != nil {
		t.Fatalf("Failed to build layout: %v", err)
	}
	return g
}

func TestNewGrid_InvalidDimensions(t *testing.T) {
	tests := []struct {
		height, width int
	}{
		{0, 5},
		{5, 0},
		{-1, 3},
		{3, -2},
		{1, 1},
	}

	for _, test := range tests {
		_, err := NewGrid(test.height, test.width)
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("%dx%d: expected ErrInvalidDimensions, got %v", test.height, test.width, err)
		}
	}
}

func TestNewGrid_Dimensions(t *testing.T) {
	g, err := NewGrid(4, 7)
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}

	if g.Height() != 4 {
		t.Errorf("Expected height 4, got %d", g.Height())
	}
	if g.Width() != 7 {
		t.Errorf("Expected width 7, got %d", g.Width())
	}
}

func TestNewGrid_LargeDimensions(t *testing.T) {
	g, err := NewGridWithConfig(MazeConfig{Height: 600, Width: 600, OpenProbability: 1, Seed: 1})
	if err != nil {
		t.Fatalf("Expected 600x600 grid to be accepted, got %v", err)
	}
	if g.Height() != 600 || g.Width() != 600 {
		t.Errorf("Expected 600x600, got %dx%d", g.Height(), g.Width())
	}

	// Iterative depth-first search walks the whole grid without recursion
	if _, err := g.CalculateShortestPath(DFS); err != nil {
		t.Errorf("Expected DFS to cross the open grid, got %v", err)
	}
}

func TestNewGridWithConfig_InvalidProbability(t *testing.T) {
	for _, p := range []float64{-0.1, 1.5} {
		_, err := NewGridWithConfig(MazeConfig{Height: 5, Width: 5, OpenProbability: p, Seed: 1})
		if !errors.Is(err, ErrInvalidProbability) {
			t.Errorf("p=%v: expected ErrInvalidProbability, got %v", p, err)
		}
	}
}

func TestNewGridWithConfig_Deterministic(t *testing.T) {
	config := MazeConfig{Height: 12, Width: 9, Seed: 42}

	a, err := NewGridWithConfig(config)
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}
	b, err := NewGridWithConfig(config)
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}

	if a.Start() != b.Start() || a.Goal() != b.Goal() {
		t.Errorf("Expected identical endpoints, got %v/%v and %v/%v", a.Start(), a.Goal(), b.Start(), b.Goal())
	}
	if a.String() != b.String() {
		t.Errorf("Expected identical grids for the same seed:\n%s\nvs\n%s", a, b)
	}
}

func TestNewGridWithConfig_FullyOpen(t *testing.T) {
	g, err := NewGridWithConfig(MazeConfig{Height: 6, Width: 8, OpenProbability: 1, Seed: 7})
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}

	if got := g.CountTraversable(); got != 48 {
		t.Errorf("Expected all 48 cells traversable, got %d", got)
	}
	if !g.Reachable() {
		t.Error("Expected goal to be reachable on a fully open grid")
	}
}

func TestNewGrid_StartGoalInvariant(t *testing.T) {
	sizes := [][2]int{{1, 2}, {2, 1}, {3, 3}, {10, 10}, {5, 20}}

	for _, size := range sizes {
		for seed := int64(1); seed <= 200; seed++ {
			g, err := NewGridWithConfig(MazeConfig{Height: size[0], Width: size[1], OpenProbability: 0.05, Seed: seed})
			if err != nil {
				t.Fatalf("Failed to create %dx%d grid: %v", size[0], size[1], err)
			}

			if g.Start() == g.Goal() {
				t.Fatalf("seed %d %dx%d: start and goal coincide at %v", seed, size[0], size[1], g.Start())
			}
			if !g.StartCell().IsTraversable() {
				t.Fatalf("seed %d: start %v is blocked", seed, g.Start())
			}
			if !g.GoalCell().IsTraversable() {
				t.Fatalf("seed %d: goal %v is blocked", seed, g.Goal())
			}
			if g.StartCell().Position() != g.Start() || g.GoalCell().Position() != g.Goal() {
				t.Fatalf("seed %d: endpoint cells carry wrong coordinates", seed)
			}
		}
	}
}

func TestNewGridFromLayout(t *testing.T) {
	g := mustLayout(t,
		"S.#",
		"..G",
	)

	if g.Height() != 2 || g.Width() != 3 {
		t.Errorf("Expected 2x3 grid, got %dx%d", g.Height(), g.Width())
	}
	if g.Start() != (Position{X: 0, Y: 0}) {
		t.Errorf("Expected start (0,0), got %v", g.Start())
	}
	if g.Goal() != (Position{X: 2, Y: 1}) {
		t.Errorf("Expected goal (2,1), got %v", g.Goal())
	}
	if g.GetTile(2, 0).IsTraversable() {
		t.Error("Expected (2,0) to be blocked")
	}
	if !g.GetTile(1, 1).IsTraversable() {
		t.Error("Expected (1,1) to be open")
	}
}

func TestNewGridFromLayout_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
		want   error
	}{
		{"empty", nil, ErrInvalidLayout},
		{"empty row", []string{""}, ErrInvalidLayout},
		{"single cell", []string{"S"}, ErrInvalidDimensions},
		{"ragged", []string{"S..", ".G"}, ErrInvalidLayout},
		{"unknown glyph", []string{"S.x", "..G"}, ErrInvalidLayout},
		{"missing goal", []string{"S..", "..."}, ErrInvalidLayout},
		{"two starts", []string{"S.S", "..G"}, ErrInvalidLayout},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewGridFromLayout(test.layout)
			if !errors.Is(err, test.want) {
				t.Errorf("Expected %v, got %v", test.want, err)
			}
		})
	}
}

func TestGrid_GetTile(t *testing.T) {
	g, err := NewGridWithConfig(MazeConfig{Height: 4, Width: 6, Seed: 3})
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}

	for y := -1; y <= g.Height(); y++ {
		for x := -1; x <= g.Width(); x++ {
			c := g.GetTile(x, y)
			inBounds := x >= 0 && x < g.Width() && y >= 0 && y < g.Height()
			if !inBounds {
				if c != nil {
					t.Errorf("Expected nil for (%d,%d), got %v", x, y, c)
				}
				continue
			}
			if c == nil {
				t.Fatalf("Expected cell at (%d,%d), got nil", x, y)
			}
			if c.X != x || c.Y != y {
				t.Errorf("Expected cell (%d,%d), got %v", x, y, c)
			}
		}
	}
}

func TestGrid_GetAdjacentTiles_Order(t *testing.T) {
	g := mustLayout(t,
		"...",
		".S.",
		"..G",
	)

	adjacent := g.GetAdjacentTiles(1, 1)
	expected := []Position{{1, 2}, {1, 0}, {0, 1}, {2, 1}}

	if len(adjacent) != len(expected) {
		t.Fatalf("Expected %d neighbours, got %d", len(expected), len(adjacent))
	}
	for i, c := range adjacent {
		if c.Position() != expected[i] {
			t.Errorf("neighbour %d: expected %v, got %v", i, expected[i], c.Position())
		}
		if !c.IsVisited() {
			t.Errorf("Expected %v to be marked visited", c)
		}
		if c.Parent() != g.GetTile(1, 1) {
			t.Errorf("Expected %v parent (1,1), got %v", c, c.Parent())
		}
	}

	if again := g.GetAdjacentTiles(1, 1); len(again) != 0 {
		t.Errorf("Expected no neighbours on second call, got %v", again)
	}
}

func TestGrid_GetAdjacentTiles_Filters(t *testing.T) {
	g := mustLayout(t,
		".#.",
		"#S.",
		".#G",
	)

	adjacent := g.GetAdjacentTiles(1, 1)
	if len(adjacent) != 1 || adjacent[0].Position() != (Position{X: 2, Y: 1}) {
		t.Errorf("Expected only (2,1), got %v", adjacent)
	}

	corner := g.GetAdjacentTiles(0, 0)
	if len(corner) != 0 {
		t.Errorf("Expected blocked corner to discover nothing, got %v", corner)
	}
}

func TestGrid_GetAdjacentTiles_SkipsVisitedAndBounds(t *testing.T) {
	g := mustLayout(t,
		"S..",
		"...",
		"..G",
	)
	g.GetTile(0, 1).SetVisited(true)

	adjacent := g.GetAdjacentTiles(0, 0)
	if len(adjacent) != 1 || adjacent[0].Position() != (Position{X: 1, Y: 0}) {
		t.Errorf("Expected only (1,0), got %v", adjacent)
	}
	if g.GetTile(0, 1).Parent() != nil {
		t.Error("Expected pre-visited cell to keep its nil parent")
	}
}

func TestGrid_GetAdjacentTiles_RandomInvariants(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g, err := NewGridWithConfig(MazeConfig{Height: 7, Width: 5, OpenProbability: 0.6, Seed: seed})
		if err != nil {
			t.Fatalf("Failed to create grid: %v", err)
		}

		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				for _, c := range g.GetAdjacentTiles(x, y) {
					if !g.InBounds(c.X, c.Y) {
						t.Fatalf("seed %d: out of bounds neighbour %v", seed, c)
					}
					if !c.IsTraversable() {
						t.Fatalf("seed %d: blocked neighbour %v", seed, c)
					}
					if ManhattanDistance(c.Position(), Position{X: x, Y: y}) != 1 {
						t.Fatalf("seed %d: %v is not adjacent to (%d,%d)", seed, c, x, y)
					}
					if !c.IsVisited() || c.Parent() != g.GetTile(x, y) {
						t.Fatalf("seed %d: %v not linked back to (%d,%d)", seed, c, x, y)
					}
				}
			}
		}
	}
}

func TestGrid_ResetVisitation(t *testing.T) {
	g := mustLayout(t,
		"S.",
		".G",
	)
	g.GetAdjacentTiles(0, 0)
	g.ResetVisitation()

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := g.GetTile(x, y)
			if c.IsVisited() || c.Parent() != nil {
				t.Errorf("Expected %v to be reset", c)
			}
		}
	}
}

func TestGrid_Reachable(t *testing.T) {
	open := mustLayout(t,
		"S#.",
		".#.",
		"..G",
	)
	if !open.Reachable() {
		t.Error("Expected goal reachable around the wall")
	}

	closed := mustLayout(t,
		"S#.",
		"##.",
		"..G",
	)
	if closed.Reachable() {
		t.Error("Expected goal unreachable from enclosed start")
	}
	if closed.StartCell().IsVisited() {
		t.Error("Expected Reachable to leave cell state untouched")
	}
}
