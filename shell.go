package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mazepath/maze/config"
	"github.com/wricardo/mazepath/maze/engine"
	"github.com/wricardo/mazepath/maze/service"
)

const shellHelp = `commands (ID may be "." for the most recent maze):
  new [PRESET]                               generate a maze from a preset
  gen HEIGHT WIDTH [PROBABILITY [SEED]]      generate a maze from explicit settings
  layout ROW...                              store a fixed maze
  show ID                                    print a stored maze
  list                                       list stored mazes
  solve ID [MODE [persist]]                  search a maze
  compare ID                                 run every strategy on a maze
  reset ID                                   clear visitation left by persistent searches
  delete ID                                  discard a maze
  presets                                    list presets
  save NAME HEIGHT WIDTH PROBABILITY [SEED]  register a preset
  default NAME                               change the default preset
  restore                                    drop saved presets and restore the built-ins
  help                                       show this help
  quit                                       leave the shell
`

var errNoMaze = errors.New("no maze created yet")

// shellState tracks what the shell remembers between lines
type shellState struct {
	*app
	last string
}

// shell handles the shell command. Mazes live until the shell exits or they
// sit idle longer than --idle-timeout.
func (a *app) shell(ctx context.Context, cmd *cli.Command) error {
	idle := cmd.Duration("idle-timeout")
	state := &shellState{app: a}
	scanner := bufio.NewScanner(a.in)

	fmt.Fprint(a.out, "> ")
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if idle > 0 {
			if removed := a.sessions.CleanupExpiredSessions(idle); removed > 0 {
				a.logger.WithField("removed", removed).Info("discarded idle mazes")
			}
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 {
			if fields[0] == "quit" || fields[0] == "exit" {
				break
			}
			if err := state.exec(ctx, fields[0], fields[1:]); err != nil {
				fmt.Fprintf(a.out, "error: %v\n", err)
			}
		}
		fmt.Fprint(a.out, "> ")
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}

	fmt.Fprintln(a.out)
	a.logger.WithField("mazes", a.sessions.Count()).Info("shell closed")
	return nil
}

// exec runs one shell command
func (s *shellState) exec(ctx context.Context, name string, args []string) error {
	switch name {
	case "new":
		preset := ""
		if len(args) > 0 {
			preset = args[0]
		}
		return s.created(s.service.CreateMaze(ctx, preset))

	case "gen":
		if len(args) < 2 {
			return usage("gen HEIGHT WIDTH [PROBABILITY [SEED]]")
		}
		cfg, err := parseMazeConfig("custom", args)
		if err != nil {
			return err
		}
		return s.created(s.service.CreateMazeFromConfig(ctx, *cfg))

	case "layout":
		if len(args) == 0 {
			return usage("layout ROW...")
		}
		return s.created(s.createFromRows(ctx, args))

	case "show":
		id, err := s.mazeID(args, "show ID")
		if err != nil {
			return err
		}
		info, err := s.service.GetMaze(ctx, id)
		if err != nil {
			return err
		}
		s.printMaze(info)
		fmt.Fprintf(s.out, "searches: %d  last used: %s\n", info.Searches, info.LastAccessedAt.Format(time.TimeOnly))

	case "list":
		return s.printMazes(ctx)

	case "solve":
		id, err := s.mazeID(args, "solve ID [MODE [persist]]")
		if err != nil {
			return err
		}
		mode := s.settings.Mode
		if len(args) > 1 {
			if mode, err = engine.ParseSearchMode(args[1]); err != nil {
				return err
			}
		}
		opts := service.SolveOptions{PersistVisits: len(args) > 2 && args[2] == "persist"}
		result, err := s.service.Solve(ctx, id, mode, opts)
		if err != nil {
			return err
		}
		s.printSolve(result)

	case "compare":
		id, err := s.mazeID(args, "compare ID")
		if err != nil {
			return err
		}
		result, err := s.service.Compare(ctx, id)
		if err != nil {
			return err
		}
		return s.printCompare(result)

	case "reset":
		id, err := s.mazeID(args, "reset ID")
		if err != nil {
			return err
		}
		if err := s.service.Reset(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "maze %s reset\n", id)

	case "delete":
		id, err := s.mazeID(args, "delete ID")
		if err != nil {
			return err
		}
		if err := s.service.DeleteMaze(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "maze %s deleted\n", id)

	case "presets":
		return s.printPresets(ctx)

	case "save":
		if len(args) < 4 {
			return usage("save NAME HEIGHT WIDTH PROBABILITY [SEED]")
		}
		cfg, err := parseMazeConfig(args[0], args[1:])
		if err != nil {
			return err
		}
		if err := s.service.SavePreset(ctx, args[0], cfg); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "preset %s saved\n", args[0])

	case "default":
		if len(args) != 1 {
			return usage("default NAME")
		}
		if err := s.presets.SetDefault(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "default preset is %s\n", s.presets.GetDefault().Name)

	case "restore":
		s.presets.Reset()
		fmt.Fprintln(s.out, "presets restored")

	case "help":
		fmt.Fprint(s.out, shellHelp)

	default:
		return fmt.Errorf("unknown command %q, try help", name)
	}
	return nil
}

// created prints a newly stored maze and remembers it as the most recent
func (s *shellState) created(info *service.MazeInfo, err error) error {
	if err != nil {
		return err
	}
	s.last = info.ID
	s.printMaze(info)
	return nil
}

// mazeID resolves the first argument, where "." names the most recent maze
func (s *shellState) mazeID(args []string, form string) (string, error) {
	if len(args) == 0 {
		return "", usage(form)
	}
	if args[0] != "." {
		return args[0], nil
	}
	if s.last == "" {
		return "", errNoMaze
	}
	return s.last, nil
}

func (s *shellState) printMazes(ctx context.Context) error {
	mazes, err := s.service.ListMazes(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCONFIG\tSIZE\tREACHABLE\tSEARCHES")
	for _, m := range mazes {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%t\t%d\n", m.ID, m.ConfigName, m.Height, m.Width, m.Reachable, m.Searches)
	}
	return tw.Flush()
}

// parseMazeConfig reads HEIGHT WIDTH [PROBABILITY [SEED]]
func parseMazeConfig(name string, args []string) (*engine.MazeConfig, error) {
	cfg := &engine.MazeConfig{Name: name, Description: "defined in the shell"}

	var err error
	if cfg.Height, err = strconv.Atoi(args[0]); err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}
	if cfg.Width, err = strconv.Atoi(args[1]); err != nil {
		return nil, fmt.Errorf("width: %w", err)
	}
	if len(args) > 2 {
		if cfg.OpenProbability, err = strconv.ParseFloat(args[2], 64); err != nil {
			return nil, fmt.Errorf("probability: %w", err)
		}
	}
	if len(args) > 3 {
		if cfg.Seed, err = strconv.ParseInt(args[3], 10, 64); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	if err := config.CheckSize(cfg.Height, cfg.Width); err != nil {
		return nil, err
	}
	return cfg, nil
}

func usage(form string) error {
	return fmt.Errorf("usage: %s", form)
}
