// Command analyze generates mazes for a range of seeds and compares how the
// search strategies do on them. For every preset it reports how many mazes
// are solvable, how often each strategy finds a path, mean path lengths and
// expansion counts, and any maze where the strategies break the expected
// relationships (BFS and DFS agreeing with reachability, BFS never longer).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mazepath/maze/config"
	"github.com/wricardo/mazepath/maze/engine"
)

// ModeStats accumulates the outcome of one strategy over a seed range
type ModeStats struct {
	Mode          engine.SearchMode
	Found         int
	TotalLength   int
	TotalExpanded int
}

// MeanLength is the mean found path length, 0 when nothing was found
func (s ModeStats) MeanLength() float64 {
	if s.Found == 0 {
		return 0
	}
	return float64(s.TotalLength) / float64(s.Found)
}

// Report summarizes one preset over a seed range
type Report struct {
	Config    engine.MazeConfig
	FromSeed  int64
	ToSeed    int64
	Mazes     int
	Reachable int
	Modes     []*ModeStats
	// Disagreements lists seeds where BFS or DFS contradicted reachability.
	Disagreements []int64
	// LongerBFS lists seeds where BFS returned a longer path than another strategy.
	LongerBFS []int64
}

// GreedyMisses counts solvable mazes greedy search could not solve
func (r *Report) GreedyMisses() int {
	for _, s := range r.Modes {
		if s.Mode == engine.Greedy {
			return r.Reachable - s.Found
		}
	}
	return 0
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "compare search strategies over a range of generated mazes",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "preset",
				Usage: "preset to analyze, repeatable (default: all presets)",
			},
			&cli.IntFlag{
				Name:  "from",
				Value: 1,
				Usage: "first seed",
			},
			&cli.IntFlag{
				Name:  "to",
				Value: 100,
				Usage: "last seed",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, os.Stdout, cmd.StringSlice("preset"), cmd.Int("from"), cmd.Int("to"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, presets []string, from, to int64) error {
	if from < 1 || to < from {
		return fmt.Errorf("invalid seed range %d..%d", from, to)
	}

	manager := config.NewManager()
	if len(presets) == 0 {
		infos, err := manager.ListPresets()
		if err != nil {
			return err
		}
		for _, info := range infos {
			presets = append(presets, info.PresetID)
		}
	}

	for _, name := range presets {
		cfg, err := manager.LoadPreset(name)
		if err != nil {
			return fmt.Errorf("preset '%s': %w", name, err)
		}

		report, err := analyzePreset(ctx, *cfg, from, to)
		if err != nil {
			return err
		}
		if err := printReport(w, report); err != nil {
			return err
		}
	}
	return nil
}

// analyzePreset runs every strategy on the maze generated for each seed
func analyzePreset(ctx context.Context, cfg engine.MazeConfig, from, to int64) (*Report, error) {
	report := &Report{Config: cfg, FromSeed: from, ToSeed: to}
	for _, mode := range engine.SearchModes() {
		report.Modes = append(report.Modes, &ModeStats{Mode: mode})
	}

	for seed := from; seed <= to; seed++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cfg.Seed = seed
		grid, err := engine.NewGridWithConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", seed, err)
		}

		report.Mazes++
		reachable := grid.Reachable()
		if reachable {
			report.Reachable++
		}

		lengths := make(map[engine.SearchMode]int)
		for _, stats := range report.Modes {
			result, err := grid.Search(stats.Mode)
			if err != nil && result == nil {
				return nil, fmt.Errorf("seed %d: %w", seed, err)
			}
			stats.TotalExpanded += result.Expanded
			if result.Found {
				stats.Found++
				stats.TotalLength += len(result.Path)
				lengths[stats.Mode] = len(result.Path)
			}
		}

		_, bfsFound := lengths[engine.BFS]
		_, dfsFound := lengths[engine.DFS]
		if bfsFound != reachable || dfsFound != reachable {
			report.Disagreements = append(report.Disagreements, seed)
		}
		if bfsFound {
			for mode, length := range lengths {
				if mode != engine.BFS && length < lengths[engine.BFS] {
					report.LongerBFS = append(report.LongerBFS, seed)
					break
				}
			}
		}
	}

	return report, nil
}

func printReport(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "\n=== %s (%dx%d, p=%.2f) seeds %d..%d ===\n",
		r.Config.Name, r.Config.Height, r.Config.Width, r.Config.OpenProbability, r.FromSeed, r.ToSeed)
	fmt.Fprintf(w, "Solvable: %d/%d\n", r.Reachable, r.Mazes)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tFOUND\tMEAN LENGTH\tMEAN EXPANDED")
	for _, s := range r.Modes {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.1f\n", s.Mode, s.Found, s.MeanLength(), float64(s.TotalExpanded)/float64(r.Mazes))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Disagreements) > 0 {
		fmt.Fprintf(w, "⚠️  BFS or DFS contradicted reachability on seeds %v\n", r.Disagreements)
	} else {
		fmt.Fprintf(w, "✅ BFS and DFS agree with reachability on every maze\n")
	}
	if len(r.LongerBFS) > 0 {
		fmt.Fprintf(w, "⚠️  BFS returned a longer path than another strategy on seeds %v\n", r.LongerBFS)
	} else {
		fmt.Fprintf(w, "✅ BFS paths are never longer than the other strategies\n")
	}

	if r.Reachable > 0 {
		misses := r.GreedyMisses()
		fmt.Fprintf(w, "Greedy misses: %d of %d solvable mazes (%.1f%%)\n",
			misses, r.Reachable, 100*float64(misses)/float64(r.Reachable))
	}
	return nil
}
