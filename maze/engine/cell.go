package engine

import "fmt"

// Cell is a single grid position. Coordinates and cost are fixed at creation;
// the visited flag and parent link are search bookkeeping.
type Cell struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Cost int `json:"cost"`

	visited bool
	parent  *Cell
}

func newCell(x, y, cost int) *Cell {
	return &Cell{X: x, Y: y, Cost: cost}
}

// IsTraversable reports whether the cell can be entered
func (c *Cell) IsTraversable() bool {
	return c.Cost > 0
}

// IsGoal reports whether the cell sits at (gx, gy)
func (c *Cell) IsGoal(gx, gy int) bool {
	return c.X == gx && c.Y == gy
}

// IsVisited reports whether a search has discovered the cell
func (c *Cell) IsVisited() bool {
	return c.visited
}

// SetVisited sets the visitation marker
func (c *Cell) SetVisited(visited bool) {
	c.visited = visited
}

// SetParent records the cell this one was discovered from
func (c *Cell) SetParent(parent *Cell) {
	c.parent = parent
}

// Parent returns the discovering cell, or nil. The start cell never has one.
func (c *Cell) Parent() *Cell {
	return c.parent
}

// Position returns the cell coordinates
func (c *Cell) Position() Position {
	return Position{X: c.X, Y: c.Y}
}

func (c *Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func (c *Cell) reset() {
	c.visited = false
	c.parent = nil
}
