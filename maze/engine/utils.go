package engine

import "math"

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// EuclideanDistance calculates the straight-line distance between two positions
func EuclideanDistance(from, to Position) float64 {
	dx := float64(from.X - to.X)
	dy := float64(from.Y - to.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Direction names a single orthogonal step. Increasing y is "down", matching
// the row order the renderer prints.
func Direction(from, to Position) string {
	switch {
	case to.X < from.X:
		return "left"
	case to.X > from.X:
		return "right"
	case to.Y > from.Y:
		return "down"
	case to.Y < from.Y:
		return "up"
	default:
		return "stay"
	}
}

// PathPositions converts a cell path to positions
func PathPositions(path []*Cell) []Position {
	positions := make([]Position, len(path))
	for i, c := range path {
		positions[i] = c.Position()
	}
	return positions
}
