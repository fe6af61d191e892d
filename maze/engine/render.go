package engine

import "strings"

// Render returns one two-character glyph per cell, rows indexed by y.
// Path cells are drawn as GlyphPath unless they are the start or goal.
// A nil path renders the bare maze.
func Render(g *Grid, path []*Cell) [][]string {
	glyphs := make([][]string, g.height)
	for y := 0; y < g.height; y++ {
		glyphs[y] = make([]string, g.width)
		for x := 0; x < g.width; x++ {
			glyphs[y][x] = cellGlyph(g, g.cells[y][x])
		}
	}

	for _, c := range path {
		if !g.InBounds(c.X, c.Y) {
			continue
		}
		p := c.Position()
		if p == g.start || p == g.goal {
			continue
		}
		glyphs[c.Y][c.X] = GlyphPath
	}

	return glyphs
}

// RenderRows joins each rendered row into a single string
func RenderRows(g *Grid, path []*Cell) []string {
	glyphs := Render(g, path)
	rows := make([]string, len(glyphs))
	for y, row := range glyphs {
		rows[y] = strings.Join(row, "")
	}
	return rows
}

// RenderString renders the grid as newline-terminated rows
func RenderString(g *Grid, path []*Cell) string {
	var b strings.Builder
	for _, row := range RenderRows(g, path) {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the grid without a path
func (g *Grid) String() string {
	return RenderString(g, nil)
}

func cellGlyph(g *Grid, c *Cell) string {
	switch {
	case c.IsGoal(g.start.X, g.start.Y):
		return GlyphStart
	case c.IsGoal(g.goal.X, g.goal.Y):
		return GlyphGoal
	case c.IsTraversable():
		return GlyphOpen
	default:
		return GlyphBlocked
	}
}
