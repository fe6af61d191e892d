// Package service provides the application layer around the maze engine.
//
// The service package implements:
//   - Maze creation from presets, explicit settings or fixed layouts
//   - Solving stored mazes with BFS, DFS or greedy search
//   - Side-by-side comparison of all strategies on one maze
//   - Visitation resets between persistent searches
//   - Search metrics and structured logging
//
// Core Interfaces:
//
// MazeService is the main service interface. SessionManager stores generated
// grids under short ids, and PresetManager resolves named generation
// settings.
//
// Architecture:
//
// The service sits between the CLI and the engine. Every stored maze owns
// its own Grid; the service serialises access to them because searches
// mutate per-cell visitation state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	presetMgr := config.NewManager()
//	mazeService := service.NewMazeService(sessionMgr, presetMgr,
//		service.WithLogger(logrus.New()),
//	)
//
//	info, err := mazeService.CreateMaze(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := mazeService.Solve(ctx, info.ID, engine.BFS, service.SolveOptions{})
//	if err == nil && !result.Found {
//		fmt.Println(result.Message)
//	}
//
// Metrics:
//
// NewMetrics registers search counters and histograms labelled by mode with
// any prometheus.Registerer; without one the service keeps a private
// registry.
package service
