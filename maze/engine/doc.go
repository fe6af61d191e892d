// Package engine provides the maze representation and path-search strategies.
//
// The engine package implements:
//   - Random grid generation with a fixed open-cell probability
//   - Deterministic grids from layout fixtures for tests and demos
//   - Adjacency discovery with visited/parent bookkeeping on each cell
//   - Breadth-first, depth-first and greedy best-first search
//   - Path reconstruction by walking parent links from the goal
//   - Two-character glyph rendering of grids and paths
//
// Core Types:
//
// Grid owns every Cell and the start/goal designation. Cell carries its
// coordinates, a cost whose sign decides traversability, and the visited
// flag plus parent link that searches write while they run.
//
// Usage:
//
//	grid, err := engine.NewGridWithConfig(engine.MazeConfig{
//		Height: 10,
//		Width:  10,
//		Seed:   42,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	path, err := grid.CalculateShortestPath(engine.BFS)
//	if errors.Is(err, engine.ErrNoPathFound) {
//		fmt.Print(grid)
//		return
//	}
//	fmt.Print(engine.RenderString(grid, path))
//
// Search Semantics:
//
// GetAdjacentTiles both queries and discovers: every neighbour it returns is
// marked visited and linked back to the queried cell. Searches reset this
// state before they start unless WithPersistentVisits is given, in which case
// a second search sees the cells the first one already discovered.
//
// The Greedy strategy moves to whichever discovered neighbour is closest to
// the goal in straight-line distance. It never backtracks, so it reports
// ErrNoPathFound whenever it walks into a pocket, even when BFS would
// succeed. DFS explores the full reachable component before reconstructing
// unless WithEarlyExit is given.
//
// Returned paths exclude both endpoints and run from the goal side back
// towards the start.
package engine
