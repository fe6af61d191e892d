package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mazepath/maze/engine"
	"github.com/wricardo/mazepath/maze/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	created  int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, grid *engine.Grid, config *engine.MazeConfig) (*service.Session, error) {
	m.created++
	if id == "" {
		id = fmt.Sprintf("test_%d", m.created)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	session := &service.Session{
		ID:             id,
		Grid:           grid,
		Config:         config,
		CreatedAt:      time.Now().Add(time.Duration(m.created) * time.Millisecond),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

// MockPresetManager implements service.PresetManager for testing
type MockPresetManager struct {
	presets map[string]*engine.MazeConfig
}

func NewMockPresetManager() *MockPresetManager {
	return &MockPresetManager{
		presets: map[string]*engine.MazeConfig{
			"default": {Name: "default", Description: "test default", Height: 6, Width: 6, OpenProbability: 1, Seed: 11},
			"small":   {Name: "small", Description: "test small", Height: 3, Width: 4, OpenProbability: 0.9, Seed: 5},
		},
	}
}

func (m *MockPresetManager) LoadPreset(name string) (*engine.MazeConfig, error) {
	config, exists := m.presets[name]
	if !exists {
		return nil, service.ErrPresetNotFound
	}
	return config, nil
}

func (m *MockPresetManager) ListPresets() ([]*service.PresetInfo, error) {
	var result []*service.PresetInfo
	for id, config := range m.presets {
		result = append(result, &service.PresetInfo{PresetID: id, Name: config.Name, Height: config.Height, Width: config.Width})
	}
	return result, nil
}

func (m *MockPresetManager) GetDefault() *engine.MazeConfig {
	return m.presets["default"]
}

func (m *MockPresetManager) SavePreset(name string, config *engine.MazeConfig) error {
	if err := engine.ValidateMazeConfig(config); err != nil {
		return err
	}
	m.presets[name] = config
	return nil
}

func newTestService(t *testing.T, opts ...service.Option) service.MazeService {
	t.Helper()
	return service.NewMazeService(NewMockSessionManager(), NewMockPresetManager(), opts...)
}

func TestCreateMaze_DefaultPreset(t *testing.T) {
	svc := newTestService(t)

	info, err := svc.CreateMaze(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "default", info.ConfigName)
	assert.Equal(t, 6, info.Height)
	assert.Equal(t, 6, info.Width)
	assert.Equal(t, 36, info.Traversable)
	assert.True(t, info.Reachable)
	assert.NotEqual(t, info.Start, info.Goal)
	assert.Len(t, info.Rows, 6)
}

func TestCreateMaze_NamedPreset(t *testing.T) {
	svc := newTestService(t)

	info, err := svc.CreateMaze(context.Background(), "small")
	require.NoError(t, err)
	assert.Equal(t, "small", info.ConfigName)
	assert.Equal(t, 3, info.Height)
	assert.Equal(t, 4, info.Width)
}

func TestCreateMaze_UnknownPreset(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateMaze(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrPresetNotFound)
	assert.Contains(t, err.Error(), "Available presets")
}

func TestCreateMazeFromConfig(t *testing.T) {
	svc := newTestService(t)

	info, err := svc.CreateMazeFromConfig(context.Background(), engine.MazeConfig{Height: 5, Width: 7, Seed: 9})
	require.NoError(t, err)
	assert.Equal(t, "custom", info.ConfigName)
	assert.Equal(t, 5, info.Height)
	assert.Equal(t, 7, info.Width)

	_, err = svc.CreateMazeFromConfig(context.Background(), engine.MazeConfig{Height: 0, Width: 7})
	assert.ErrorIs(t, err, engine.ErrInvalidDimensions)
}

func TestCreateMazeFromLayout(t *testing.T) {
	svc := newTestService(t)

	info, err := svc.CreateMazeFromLayout(context.Background(), []string{
		"S.#",
		"..G",
	})
	require.NoError(t, err)
	assert.Equal(t, "layout", info.ConfigName)
	assert.Equal(t, engine.Position{X: 0, Y: 0}, info.Start)
	assert.Equal(t, engine.Position{X: 2, Y: 1}, info.Goal)
	assert.Equal(t, []string{"ME[]><", "[][]GL"}, info.Rows)

	_, err = svc.CreateMazeFromLayout(context.Background(), []string{"S..", "..."})
	assert.ErrorIs(t, err, engine.ErrInvalidLayout)
}

func TestSolve_FoundAndRendered(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	info, err := svc.CreateMazeFromLayout(ctx, []string{
		"S..#",
		"##.#",
		"##.G",
	})
	require.NoError(t, err)

	result, err := svc.Solve(ctx, info.ID, engine.BFS, service.SolveOptions{TraceSteps: true})
	require.NoError(t, err)

	assert.True(t, result.Found)
	assert.Equal(t, "bfs", result.Mode)
	assert.Equal(t, 4, result.PathLength)
	assert.Equal(t, []engine.Position{{X: 2, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 0}, {X: 1, Y: 0}}, result.Path)
	assert.Equal(t, []string{"MEHIHI><", "><><HI><", "><><HIGL"}, result.Rows)
	require.NotEmpty(t, result.Steps)
	assert.Equal(t, 1, result.Steps[0].Idx)
	assert.Equal(t, "right", result.Steps[0].Dir)
}

func TestSolve_NoPathIsNotAnError(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	info, err := svc.CreateMazeFromLayout(ctx, []string{
		"S#.",
		"##.",
		"..G",
	})
	require.NoError(t, err)
	assert.False(t, info.Reachable)

	for _, mode := range engine.SearchModes() {
		result, err := svc.Solve(ctx, info.ID, mode, service.SolveOptions{})
		require.NoError(t, err, mode.String())
		assert.False(t, result.Found, mode.String())
		assert.Empty(t, result.Path, mode.String())
		assert.Equal(t, "no path found", result.Message)
		assert.Equal(t, []string{"ME><[]", "><><[]", "[][]GL"}, result.Rows)
	}
}

func TestSolve_UnknownMaze(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Solve(context.Background(), "missing", engine.BFS, service.SolveOptions{})
	assert.ErrorIs(t, err, service.ErrMazeNotFound)
}

func TestSolve_PersistentVisitsAndReset(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	info, err := svc.CreateMazeFromLayout(ctx, []string{
		"S..",
		"...",
		"..G",
	})
	require.NoError(t, err)

	first, err := svc.Solve(ctx, info.ID, engine.BFS, service.SolveOptions{})
	require.NoError(t, err)
	require.True(t, first.Found)

	second, err := svc.Solve(ctx, info.ID, engine.BFS, service.SolveOptions{PersistVisits: true})
	require.NoError(t, err)
	assert.False(t, second.Found, "carried-over visits should block the second search")

	require.NoError(t, svc.Reset(ctx, info.ID))

	third, err := svc.Solve(ctx, info.ID, engine.BFS, service.SolveOptions{PersistVisits: true})
	require.NoError(t, err)
	assert.True(t, third.Found)
	assert.Equal(t, first.Path, third.Path)

	got, err := svc.GetMaze(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Searches)
}

func TestCompare_GreedyDeadEnd(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	info, err := svc.CreateMazeFromLayout(ctx, []string{
		"S.#G",
		".##.",
		"....",
	})
	require.NoError(t, err)

	compare, err := svc.Compare(ctx, info.ID)
	require.NoError(t, err)

	assert.True(t, compare.Reachable)
	assert.True(t, compare.Agree)
	require.Len(t, compare.Results, 3)
	assert.True(t, compare.Results[0].Found)
	assert.True(t, compare.Results[1].Found)
	assert.False(t, compare.Results[2].Found)
	assert.Equal(t, "bfs", compare.Shortest)
}

func TestCompare_CancelledContext(t *testing.T) {
	svc := newTestService(t)
	info, err := svc.CreateMaze(context.Background(), "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.Compare(ctx, info.ID)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListAndDeleteMazes(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.CreateMaze(ctx, "small")
	require.NoError(t, err)
	second, err := svc.CreateMaze(ctx, "default")
	require.NoError(t, err)

	mazes, err := svc.ListMazes(ctx)
	require.NoError(t, err)
	require.Len(t, mazes, 2)
	assert.Equal(t, first.ID, mazes[0].ID)
	assert.Equal(t, second.ID, mazes[1].ID)

	require.NoError(t, svc.DeleteMaze(ctx, first.ID))
	assert.ErrorIs(t, svc.DeleteMaze(ctx, first.ID), service.ErrMazeNotFound)

	_, err = svc.GetMaze(ctx, first.ID)
	assert.ErrorIs(t, err, service.ErrMazeNotFound)

	rows, err := svc.Render(ctx, second.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 6)
}

func TestPresetsPassThrough(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	err := svc.SavePreset(ctx, "wide", &engine.MazeConfig{Name: "wide", Height: 3, Width: 30, OpenProbability: 0.8})
	require.NoError(t, err)

	config, err := svc.LoadPreset(ctx, "wide")
	require.NoError(t, err)
	assert.Equal(t, 30, config.Width)

	presets, err := svc.ListPresets(ctx)
	require.NoError(t, err)
	assert.Len(t, presets, 3)
}

func TestMetricsAndLogging(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	registry := prometheus.NewRegistry()
	metrics := service.NewMetrics(registry)
	svc := newTestService(t, service.WithLogger(logger), service.WithMetrics(metrics))

	info, err := svc.CreateMazeFromLayout(ctx, []string{
		"S.#G",
		".##.",
		"....",
	})
	require.NoError(t, err)

	_, err = svc.Compare(ctx, info.ID)
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "maze created")
	assert.Contains(t, out, "path found")
	assert.Contains(t, out, "no path found")
	assert.Contains(t, out, "going right")
	assert.True(t, strings.Contains(out, "mode=greedy"))

	expected := `
# HELP mazepath_search_total Total searches by mode and result
# TYPE mazepath_search_total counter
mazepath_search_total{mode="bfs",result="found"} 1
mazepath_search_total{mode="dfs",result="found"} 1
mazepath_search_total{mode="greedy",result="not_found"} 1
`
	err = testutil.GatherAndCompare(registry, strings.NewReader(expected), "mazepath_search_total")
	assert.NoError(t, err)

	count, err := testutil.GatherAndCount(registry, "mazepath_mazes_created_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// staleSessionManager fails every access-time update
type staleSessionManager struct {
	*MockSessionManager
}

func (staleSessionManager) UpdateLastAccessed(id string) error {
	return errors.New("clock unavailable")
}

func TestSolve_LastAccessFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)
	logger.SetLevel(logrus.DebugLevel)

	svc := service.NewMazeService(staleSessionManager{NewMockSessionManager()}, NewMockPresetManager(),
		service.WithLogger(logger))

	info, err := svc.CreateMazeFromLayout(ctx, []string{"S.G"})
	require.NoError(t, err)

	result, err := svc.Solve(ctx, info.ID, engine.BFS, service.SolveOptions{})
	require.NoError(t, err)
	assert.True(t, result.Found)

	out := logs.String()
	assert.Contains(t, out, "failed to update last access")
	assert.Contains(t, out, "clock unavailable")
}
