// Command mazepath generates random mazes and searches them for a path from
// start to goal.
//
// It supports five commands:
//  1. "solve" runs one search strategy and prints the marked path
//  2. "compare" runs BFS, DFS and greedy search on the same maze
//  3. "render" prints a generated maze without searching it
//  4. "presets" lists the named maze presets
//  5. "shell" keeps mazes and presets in memory and reads commands from stdin
//
// Mazes come from a preset, explicit dimensions, or fixed rows. Defaults
// are read from a .env file and the MAZE_* and LOG_LEVEL variables.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mazepath/maze/config"
	"github.com/wricardo/mazepath/maze/engine"
	"github.com/wricardo/mazepath/maze/service"
	"github.com/wricardo/mazepath/maze/session"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "mazepath"
)

// main loads environment settings and runs the selected command.
func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout, os.Stderr, settings).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the services shared by all commands
type app struct {
	in       io.Reader
	out      io.Writer
	logger   *logrus.Logger
	settings config.Settings
	sessions *session.Manager
	presets  *config.Manager
	service  service.MazeService
}

// newApp builds the command tree. The shell reads from in, output goes to
// out and logs to logOut.
func newApp(in io.Reader, out, logOut io.Writer, settings config.Settings) *cli.Command {
	logger := logrus.New()
	logger.SetOutput(logOut)
	logger.SetLevel(settings.LogLevel)

	a := &app{
		in:       in,
		out:      out,
		logger:   logger,
		settings: settings,
	}

	// Flags hold parse state, so every command gets its own set
	mazeFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:    "preset",
				Aliases: []string{"p"},
				Usage:   "named maze preset (see the presets command), defaults to $" + config.EnvPreset,
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "maze height in rows, overrides the preset",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "maze width in columns, overrides the preset",
			},
			&cli.FloatFlag{
				Name:  "probability",
				Usage: "chance that a generated cell is open, in (0,1]",
			},
			&cli.IntFlag{
				Name:    "seed",
				Value:   settings.Seed,
				Usage:   "generation seed, 0 picks one from the clock",
				Sources: cli.EnvVars(config.EnvSeed),
			},
			&cli.StringSliceFlag{
				Name:  "row",
				Usage: "fixed maze row of S, G, '.' and '#', repeated once per row",
			},
		}
	}

	searchFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Value:   settings.Mode.String(),
			Usage:   "search strategy: bfs, dfs or greedy",
			Sources: cli.EnvVars(config.EnvMode),
		},
		&cli.IntFlag{
			Name:  "runs",
			Value: 1,
			Usage: "search the same maze this many times",
		},
		&cli.BoolFlag{
			Name:  "persist",
			Usage: "keep visitation state between runs instead of resetting it",
		},
		&cli.BoolFlag{
			Name:  "reset-between",
			Usage: "explicitly reset visitation state before every run after the first",
		},
		&cli.BoolFlag{
			Name:  "early-exit",
			Usage: "stop depth-first search as soon as the goal is reached",
		},
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "print every step the search takes",
		},
	}

	solveCmd := &cli.Command{
		Name:   "solve",
		Usage:  "search a maze with one strategy and print the path",
		Flags:  append(mazeFlags(), searchFlags...),
		Action: a.solve,
	}

	return &cli.Command{
		Name:    AppName,
		Usage:   "generate mazes and search them for a path",
		Version: Version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   settings.LogLevel.String(),
				Usage:   "log level: debug, info, warn or error",
				Sources: cli.EnvVars(config.EnvLogLevel),
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			solveCmd,
			{
				Name:   "compare",
				Usage:  "run every strategy on the same maze",
				Flags:  mazeFlags(),
				Action: a.compare,
			},
			{
				Name:   "render",
				Usage:  "print a maze without searching it",
				Flags:  mazeFlags(),
				Action: a.render,
			},
			{
				Name:   "presets",
				Usage:  "list the named maze presets",
				Action: a.listPresets,
			},
			{
				Name:  "shell",
				Usage: "keep mazes in memory and run commands read from standard input",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "idle-timeout",
						Value: 30 * time.Minute,
						Usage: "discard mazes untouched for this long, 0 keeps them",
					},
				},
				Action: a.shell,
			},
		},
	}
}

// before applies the log level and wires the services
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level, err := logrus.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return ctx, fmt.Errorf("invalid log level: %w", err)
	}
	a.logger.SetLevel(level)

	return ctx, a.initializeServices()
}

// initializeServices wires the session and preset managers into the maze
// service and applies the configured default preset.
func (a *app) initializeServices() error {
	a.sessions = session.NewManager()
	a.presets = config.NewManager()
	if a.settings.Preset != "" {
		if err := a.presets.SetDefault(a.settings.Preset); err != nil {
			return fmt.Errorf("%s: %w", config.EnvPreset, err)
		}
	}

	a.service = service.NewMazeService(a.sessions, a.presets,
		service.WithLogger(a.logger),
	)
	return nil
}

// createMaze builds a maze from the row, dimension and preset flags, in that order of precedence
func (a *app) createMaze(ctx context.Context, cmd *cli.Command) (*service.MazeInfo, error) {
	if rows := cmd.StringSlice("row"); len(rows) > 0 {
		return a.createFromRows(ctx, rows)
	}

	seed := cmd.Int("seed")
	probability := cmd.Float("probability")

	if cmd.IsSet("height") || cmd.IsSet("width") {
		height, width := int(cmd.Int("height")), int(cmd.Int("width"))
		if height == 0 {
			height = engine.DefaultHeight
		}
		if width == 0 {
			width = engine.DefaultWidth
		}
		if err := config.CheckSize(height, width); err != nil {
			return nil, err
		}
		return a.service.CreateMazeFromConfig(ctx, engine.MazeConfig{
			Height:          height,
			Width:           width,
			OpenProbability: probability,
			Seed:            seed,
		})
	}

	preset := cmd.String("preset")
	if seed == 0 && probability == 0 {
		return a.service.CreateMaze(ctx, preset)
	}

	base := a.presets.GetDefault()
	if preset != "" {
		loaded, err := a.service.LoadPreset(ctx, preset)
		if err != nil {
			return nil, fmt.Errorf("preset '%s': %w", preset, err)
		}
		base = loaded
	}
	cfg := *base
	if seed != 0 {
		cfg.Seed = seed
	}
	if probability != 0 {
		cfg.OpenProbability = probability
	}
	return a.service.CreateMazeFromConfig(ctx, cfg)
}

// createFromRows stores a fixed maze after checking it fits the size limit
func (a *app) createFromRows(ctx context.Context, rows []string) (*service.MazeInfo, error) {
	if err := config.CheckSize(len(rows), len(rows[0])); err != nil {
		return nil, err
	}
	return a.service.CreateMazeFromLayout(ctx, rows)
}

// solve handles the solve command
func (a *app) solve(ctx context.Context, cmd *cli.Command) error {
	mode, err := engine.ParseSearchMode(cmd.String("mode"))
	if err != nil {
		return err
	}

	info, err := a.createMaze(ctx, cmd)
	if err != nil {
		return err
	}

	runs := int(cmd.Int("runs"))
	if runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", runs)
	}
	opts := service.SolveOptions{
		PersistVisits: cmd.Bool("persist"),
		EarlyExit:     cmd.Bool("early-exit"),
		TraceSteps:    cmd.Bool("trace"),
	}

	results := make([]*service.SolveResult, 0, runs)
	for i := 0; i < runs; i++ {
		if i > 0 && cmd.Bool("reset-between") {
			if err := a.service.Reset(ctx, info.ID); err != nil {
				return err
			}
		}
		result, err := a.service.Solve(ctx, info.ID, mode, opts)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	a.printMaze(info)
	for _, result := range results {
		a.printSolve(result)
	}
	return nil
}

// compare handles the compare command
func (a *app) compare(ctx context.Context, cmd *cli.Command) error {
	info, err := a.createMaze(ctx, cmd)
	if err != nil {
		return err
	}

	result, err := a.service.Compare(ctx, info.ID)
	if err != nil {
		return err
	}

	a.printMaze(info)
	return a.printCompare(result)
}

// render handles the render command
func (a *app) render(ctx context.Context, cmd *cli.Command) error {
	info, err := a.createMaze(ctx, cmd)
	if err != nil {
		return err
	}
	a.printMaze(info)
	return nil
}

// listPresets handles the presets command
func (a *app) listPresets(ctx context.Context, cmd *cli.Command) error {
	return a.printPresets(ctx)
}

func (a *app) printSolve(result *service.SolveResult) {
	for _, step := range result.Steps {
		fmt.Fprintf(a.out, "%4d  %s -> %s  %s\n", step.Idx, step.From, step.To, step.Dir)
	}
	fmt.Fprintf(a.out, "\n%s: %s (expanded %d, %s)\n", result.Mode, result.Message, result.Expanded, result.Duration)
	a.printRows(result.Rows)
}

func (a *app) printCompare(result *service.CompareResult) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tFOUND\tLENGTH\tEXPANDED\tDURATION")
	for _, r := range result.Results {
		length := "-"
		if r.Found {
			length = fmt.Sprint(r.PathLength)
		}
		fmt.Fprintf(tw, "%s\t%t\t%s\t%d\t%s\n", r.Mode, r.Found, length, r.Expanded, r.Duration)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nreachable: %t  bfs/dfs agree: %t", result.Reachable, result.Agree)
	if result.Shortest != "" {
		fmt.Fprintf(a.out, "  shortest: %s", result.Shortest)
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *app) printPresets(ctx context.Context) error {
	presets, err := a.service.ListPresets(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSIZE\tOPEN\tDESCRIPTION")
	for _, p := range presets {
		fmt.Fprintf(tw, "%s\t%dx%d\t%.2f\t%s\n", p.PresetID, p.Height, p.Width, p.OpenProbability, p.Description)
	}
	return tw.Flush()
}

func (a *app) printMaze(info *service.MazeInfo) {
	fmt.Fprintf(a.out, "maze %s (%s, %dx%d) start %s goal %s\n",
		info.ID, info.ConfigName, info.Height, info.Width, info.Start, info.Goal)
	a.printRows(info.Rows)
}

func (a *app) printRows(rows []string) {
	for _, row := range rows {
		fmt.Fprintln(a.out, row)
	}
}
