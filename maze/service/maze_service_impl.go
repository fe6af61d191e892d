package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/mazepath/maze/engine"
)

// mazeServiceImpl implements the MazeService interface
type mazeServiceImpl struct {
	sessions SessionManager
	presets  PresetManager
	logger   *logrus.Logger
	metrics  *Metrics
	mu       sync.Mutex
}

// Option configures the maze service
type Option func(*mazeServiceImpl)

// WithLogger sets the logger used for search and lifecycle events
func WithLogger(logger *logrus.Logger) Option {
	return func(s *mazeServiceImpl) { s.logger = logger }
}

// WithMetrics sets the Prometheus collectors updated by searches
func WithMetrics(metrics *Metrics) Option {
	return func(s *mazeServiceImpl) { s.metrics = metrics }
}

// NewMazeService creates a new maze service instance
func NewMazeService(sessions SessionManager, presets PresetManager, opts ...Option) MazeService {
	s := &mazeServiceImpl{
		sessions: sessions,
		presets:  presets,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logrus.New()
		s.logger.SetOutput(io.Discard)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}

	return s
}

// CreateMaze generates a maze from a named preset, or the default preset when name is empty
func (s *mazeServiceImpl) CreateMaze(ctx context.Context, presetName string) (*MazeInfo, error) {
	var config *engine.MazeConfig
	if presetName != "" {
		loaded, err := s.presets.LoadPreset(presetName)
		if err != nil {
			if errors.Is(err, ErrPresetNotFound) {
				return nil, s.presetNotFound(presetName, err)
			}
			return nil, fmt.Errorf("failed to load preset %s: %w", presetName, err)
		}
		config = loaded
	} else {
		config = s.presets.GetDefault()
	}

	return s.CreateMazeFromConfig(ctx, *config)
}

// presetNotFound lists the available preset ids alongside the not-found error
func (s *mazeServiceImpl) presetNotFound(name string, err error) error {
	available, listErr := s.presets.ListPresets()
	if listErr != nil || len(available) == 0 {
		return fmt.Errorf("preset '%s': %w", name, err)
	}

	ids := make([]string, 0, len(available))
	for _, p := range available {
		ids = append(ids, p.PresetID)
	}
	return fmt.Errorf("preset '%s': %w. Available presets: %v", name, err, ids)
}

// CreateMazeFromConfig generates a maze from explicit settings
func (s *mazeServiceImpl) CreateMazeFromConfig(ctx context.Context, config engine.MazeConfig) (*MazeInfo, error) {
	if config.Name == "" {
		config.Name = "custom"
	}
	if config.OpenProbability == 0 {
		config.OpenProbability = engine.DefaultOpenProbability
	}
	if err := engine.ValidateMazeConfig(&config); err != nil {
		return nil, err
	}

	grid, err := engine.NewGridWithConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate maze: %w", err)
	}

	return s.store(grid, &config)
}

// CreateMazeFromLayout stores a fixed maze described by layout rows
func (s *mazeServiceImpl) CreateMazeFromLayout(ctx context.Context, layout []string) (*MazeInfo, error) {
	grid, err := engine.NewGridFromLayout(layout)
	if err != nil {
		return nil, err
	}

	config := &engine.MazeConfig{
		Name:            "layout",
		Description:     "fixed layout",
		Height:          grid.Height(),
		Width:           grid.Width(),
		OpenProbability: float64(grid.CountTraversable()) / float64(grid.Height()*grid.Width()),
	}
	return s.store(grid, config)
}

func (s *mazeServiceImpl) store(grid *engine.Grid, config *engine.MazeConfig) (*MazeInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Create("", grid, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create maze: %w", err)
	}
	s.metrics.mazesCreated.Inc()

	s.logger.WithFields(logrus.Fields{
		"maze_id": session.ID,
		"config":  config.Name,
		"height":  grid.Height(),
		"width":   grid.Width(),
		"start":   grid.Start().String(),
		"goal":    grid.Goal().String(),
	}).Info("maze created")

	return newMazeInfo(session), nil
}

// GetMaze retrieves maze information
func (s *mazeServiceImpl) GetMaze(ctx context.Context, mazeID string) (*MazeInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(mazeID)
	if err != nil {
		return nil, err
	}
	return newMazeInfo(session), nil
}

// ListMazes returns all stored mazes, oldest first
func (s *mazeServiceImpl) ListMazes(ctx context.Context) ([]*MazeInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	result := make([]*MazeInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, newMazeInfo(sess))
	}
	return result, nil
}

// DeleteMaze removes a maze
func (s *mazeServiceImpl) DeleteMaze(ctx context.Context, mazeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(mazeID); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMazeNotFound, mazeID, err)
	}
	s.logger.WithField("maze_id", mazeID).Info("maze deleted")
	return nil
}

// Solve runs one strategy on a stored maze. An unreachable goal is reported
// through SolveResult.Found, not as an error.
func (s *mazeServiceImpl) Solve(ctx context.Context, mazeID string, mode engine.SearchMode, opts SolveOptions) (*SolveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(mazeID)
	if err != nil {
		return nil, err
	}
	return s.solve(session, mode, opts)
}

// Compare runs every strategy on the same maze, each from a clean visitation state
func (s *mazeServiceImpl) Compare(ctx context.Context, mazeID string) (*CompareResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(mazeID)
	if err != nil {
		return nil, err
	}

	compare := &CompareResult{
		MazeID:    session.ID,
		Reachable: session.Grid.Reachable(),
	}

	found := make(map[engine.SearchMode]bool)
	bestLength := -1
	for _, mode := range engine.SearchModes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := s.solve(session, mode, SolveOptions{})
		if err != nil {
			return nil, err
		}
		compare.Results = append(compare.Results, result)
		found[mode] = result.Found

		if result.Found && (bestLength == -1 || result.PathLength < bestLength) {
			bestLength = result.PathLength
			compare.Shortest = result.Mode
		}
	}
	compare.Agree = found[engine.BFS] == found[engine.DFS]

	if !compare.Agree {
		s.logger.WithField("maze_id", session.ID).Warn("bfs and dfs disagree on path existence")
	}

	return compare, nil
}

// Reset clears visitation state left by persistent searches
func (s *mazeServiceImpl) Reset(ctx context.Context, mazeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(mazeID)
	if err != nil {
		return err
	}
	session.Grid.ResetVisitation()
	s.logger.WithField("maze_id", session.ID).Debug("visitation reset")
	return nil
}

// Render returns the maze rows without a path
func (s *mazeServiceImpl) Render(ctx context.Context, mazeID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(mazeID)
	if err != nil {
		return nil, err
	}
	return engine.RenderRows(session.Grid, nil), nil
}

// ListPresets returns the available presets
func (s *mazeServiceImpl) ListPresets(ctx context.Context) ([]*PresetInfo, error) {
	return s.presets.ListPresets()
}

// LoadPreset returns a preset configuration by name
func (s *mazeServiceImpl) LoadPreset(ctx context.Context, presetName string) (*engine.MazeConfig, error) {
	return s.presets.LoadPreset(presetName)
}

// SavePreset registers or replaces a preset
func (s *mazeServiceImpl) SavePreset(ctx context.Context, presetName string, config *engine.MazeConfig) error {
	return s.presets.SavePreset(presetName, config)
}

// session fetches a session and bumps its access time. Callers hold s.mu.
func (s *mazeServiceImpl) session(mazeID string) (*Session, error) {
	session, err := s.sessions.Get(mazeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMazeNotFound, mazeID, err)
	}
	if err := s.sessions.UpdateLastAccessed(mazeID); err != nil {
		s.logger.WithError(err).WithField("maze_id", mazeID).Debug("failed to update last access")
	}
	return session, nil
}

// solve runs a search and converts the outcome. Callers hold s.mu.
func (s *mazeServiceImpl) solve(session *Session, mode engine.SearchMode, opts SolveOptions) (*SolveResult, error) {
	entry := s.logger.WithFields(logrus.Fields{
		"maze_id": session.ID,
		"mode":    mode.String(),
	})

	var steps []StepInfo
	searchOpts := []engine.SearchOption{
		engine.WithOnStep(func(from, to engine.Position) {
			dir := engine.Direction(from, to)
			if opts.TraceSteps {
				steps = append(steps, StepInfo{Idx: len(steps) + 1, From: from, To: to, Dir: dir})
			}
			if mode == engine.Greedy {
				entry.WithField("to", to.String()).Debugf("going %s", dir)
			}
		}),
	}
	if opts.PersistVisits {
		searchOpts = append(searchOpts, engine.WithPersistentVisits())
	}
	if opts.EarlyExit {
		searchOpts = append(searchOpts, engine.WithEarlyExit())
	}

	started := time.Now()
	search, err := session.Grid.Search(mode, searchOpts...)
	elapsed := time.Since(started)
	session.Searches++

	result := &SolveResult{
		MazeID:   session.ID,
		Mode:     mode.String(),
		Steps:    steps,
		Duration: elapsed,
	}

	switch {
	case errors.Is(err, engine.ErrNoPathFound):
		result.Expanded = search.Expanded
		result.Rows = engine.RenderRows(session.Grid, nil)
		result.Message = "no path found"
		s.metrics.observeSearch(result.Mode, ResultNotFound, elapsed.Seconds(), result.Expanded, 0)
		entry.WithFields(logrus.Fields{
			"expanded": result.Expanded,
			"duration": elapsed,
		}).Info("no path found")
		return result, nil

	case err != nil:
		s.metrics.observeSearch(result.Mode, ResultError, elapsed.Seconds(), 0, 0)
		entry.WithError(err).Error("search failed")
		return nil, err
	}

	result.Found = true
	result.Path = engine.PathPositions(search.Path)
	result.PathLength = len(search.Path)
	result.Expanded = search.Expanded
	result.Rows = engine.RenderRows(session.Grid, search.Path)
	result.Message = fmt.Sprintf("path found: %d cells between start and goal", result.PathLength)
	s.metrics.observeSearch(result.Mode, ResultFound, elapsed.Seconds(), result.Expanded, result.PathLength)

	entry.WithFields(logrus.Fields{
		"path_length": result.PathLength,
		"expanded":    result.Expanded,
		"duration":    elapsed,
	}).Info("path found")

	return result, nil
}

func newMazeInfo(session *Session) *MazeInfo {
	grid := session.Grid
	configName := ""
	if session.Config != nil {
		configName = session.Config.Name
	}

	return &MazeInfo{
		ID:             session.ID,
		ConfigName:     configName,
		Height:         grid.Height(),
		Width:          grid.Width(),
		Start:          grid.Start(),
		Goal:           grid.Goal(),
		Traversable:    grid.CountTraversable(),
		Reachable:      grid.Reachable(),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Searches:       session.Searches,
		Rows:           engine.RenderRows(grid, nil),
	}
}
