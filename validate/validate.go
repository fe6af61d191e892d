// Command validate checks maze presets and fixed maze layouts. For every
// preset it checks:
//   - The configuration passes engine validation and the size limit
//   - Generated mazes have the configured size for a range of seeds
//   - Start and goal are distinct, in bounds and traversable
//
// Layout rows given as arguments are checked for:
//   - Rows are non-empty and all the same width
//   - Only S, G, '.' and '#' characters are used
//   - Exactly one start (S) and one goal (G)
//   - Dimensions stay within the supported maze size
//   - Connectivity: whether the goal is reachable from the start
//
// An unreachable goal is reported as a warning, since mazes without a path
// are legitimate inputs.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mazepath/maze/config"
	"github.com/wricardo/mazepath/maze/engine"
)

// ValidationResult captures the outcome of validating one preset or layout.
type ValidationResult struct {
	Name     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

// validatePreset checks a preset's configuration and the mazes it generates
// for seeds 1..samples.
func validatePreset(id string, cfg engine.MazeConfig, samples int) ValidationResult {
	result := ValidationResult{Name: id, Valid: true}
	fail := func(format string, args ...any) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}

	if err := engine.ValidateMazeConfig(&cfg); err != nil {
		fail("%v", err)
		return result
	}
	if err := config.CheckSize(cfg.Height, cfg.Width); err != nil {
		fail("%v", err)
		return result
	}

	solvable := 0
	for seed := int64(1); seed <= int64(samples); seed++ {
		cfg.Seed = seed
		grid, err := engine.NewGridWithConfig(cfg)
		if err != nil {
			fail("Seed %d: %v", seed, err)
			continue
		}

		if grid.Height() != cfg.Height || grid.Width() != cfg.Width {
			fail("Seed %d: generated %dx%d, expected %dx%d", seed, grid.Height(), grid.Width(), cfg.Height, cfg.Width)
		}
		if grid.Start() == grid.Goal() {
			fail("Seed %d: start and goal are both %s", seed, grid.Start())
		}
		for _, p := range []engine.Position{grid.Start(), grid.Goal()} {
			cell := grid.GetTile(p.X, p.Y)
			if cell == nil || !cell.IsTraversable() {
				fail("Seed %d: endpoint %s is not a traversable cell", seed, p)
			}
		}
		if grid.Reachable() {
			solvable++
		}
	}

	result.Info = append(result.Info,
		fmt.Sprintf("✓ Grid: %dx%d, open probability %.2f", cfg.Height, cfg.Width, cfg.OpenProbability),
		fmt.Sprintf("✓ Solvable: %d of %d sampled seeds", solvable, samples),
	)
	if solvable == 0 && samples > 0 {
		result.Warnings = append(result.Warnings, "No sampled maze has a path from start to goal")
	}

	return result
}

// validateLayout reports every structural problem in rows, then checks
// connectivity when the layout is well formed.
func validateLayout(rows []string) ValidationResult {
	result := ValidationResult{Valid: true}
	fail := func(format string, args ...any) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}

	if len(rows) == 0 {
		fail("Layout is empty")
		return result
	}

	width := len(rows[0])
	starts, goals, blocked := 0, 0, 0
	for y, row := range rows {
		if len(row) != width {
			fail("Inconsistent row width at row %d: expected %d, got %d", y+1, width, len(row))
		}
		for x, char := range row {
			switch char {
			case engine.LayoutStart:
				starts++
			case engine.LayoutGoal:
				goals++
			case engine.LayoutBlocked:
				blocked++
			case engine.LayoutOpen:
			default:
				fail("Invalid character '%c' at (%d,%d)", char, x, y)
			}
		}
	}

	if err := config.CheckSize(len(rows), width); err != nil {
		fail("Maze is %dx%d, sides are limited to %d", len(rows), width, config.MaxDimension)
	}
	if starts != 1 {
		fail("Must have exactly 1 start (S), found %d", starts)
	}
	if goals != 1 {
		fail("Must have exactly 1 goal (G), found %d", goals)
	}

	if !result.Valid {
		return result
	}

	grid, err := engine.NewGridFromLayout(rows)
	if err != nil {
		fail("%v", err)
		return result
	}

	result.Info = append(result.Info,
		fmt.Sprintf("✓ Grid: %dx%d", grid.Height(), grid.Width()),
		fmt.Sprintf("✓ Open cells: %d, blocked: %d", grid.CountTraversable(), blocked),
		fmt.Sprintf("✓ Start %s, goal %s", grid.Start(), grid.Goal()),
	)

	if !grid.Reachable() {
		result.Warnings = append(result.Warnings, "Goal is not reachable from start")
		return result
	}

	search, err := grid.Search(engine.BFS)
	if err != nil {
		fail("Reachable goal but BFS failed: %v", err)
		return result
	}
	result.Info = append(result.Info, fmt.Sprintf("✓ Connectivity: shortest path has %d cells between start and goal", len(search.Path)))

	return result
}

// report prints results and returns whether all of them are valid.
func report(w io.Writer, results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.Name)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Info {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Fprintln(w, "  ⚠️  "+warning)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ Everything is valid!")
	} else {
		fmt.Fprintln(w, "❌ Some presets or layouts have errors")
	}
	return allValid
}

// run validates every preset, plus the layout formed by rows when given.
func run(w io.Writer, rows []string, samples int) (bool, error) {
	if samples < 1 {
		return false, fmt.Errorf("samples must be at least 1, got %d", samples)
	}

	manager := config.NewManager()
	presets, err := manager.ListPresets()
	if err != nil {
		return false, err
	}

	var results []ValidationResult
	for _, p := range presets {
		cfg, err := manager.LoadPreset(p.PresetID)
		if err != nil {
			return false, err
		}
		results = append(results, validatePreset(p.PresetID, *cfg, samples))
	}
	if len(rows) > 0 {
		layout := validateLayout(rows)
		layout.Name = "layout"
		results = append(results, layout)
	}

	return report(w, results), nil
}

// main validates the presets and any layout rows given as arguments, and
// exits non-zero if anything is invalid.
func main() {
	cmd := &cli.Command{
		Name:      "validate",
		Usage:     "check maze presets and fixed layouts",
		ArgsUsage: "[row...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "samples",
				Value: 50,
				Usage: "seeds generated per preset",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ok, err := run(os.Stdout, cmd.Args().Slice(), int(cmd.Int("samples")))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
