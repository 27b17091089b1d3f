package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
strength: 3
time_limit: 250ms
workers: 2
min_parallel_slack: 10ms
max_depth: 12
tt_size_mb: 4
stable_depth: 6
eval_pause: 5ms
`))
	require.NoError(t, err)
	assert.Equal(t, Config{
		Strength:         3,
		TimeLimit:        250 * time.Millisecond,
		Workers:          2,
		MinParallelSlack: 10 * time.Millisecond,
		MaxDepth:         12,
		TTSizeMB:         4,
		StableDepth:      6,
		EvalPause:        5 * time.Millisecond,
	}, cfg)
}

func TestParseConfigKeepsDefaultsAndClamps(t *testing.T) {
	cfg, err := ParseConfig([]byte("strength: 11\nmax_depth: 200\n"))
	require.NoError(t, err)
	def := DefaultConfig()
	assert.Equal(t, MaxStrength, cfg.Strength)
	assert.Equal(t, MaxSearchDepth, cfg.MaxDepth)
	assert.Equal(t, def.TimeLimit, cfg.TimeLimit)
	assert.Equal(t, def.StableDepth, cfg.StableDepth)
}

func TestParseConfigRejectsGarbage(t *testing.T) {
	_, err := ParseConfig([]byte("time_limit: soon\n"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strength: 2\nworkers: 3\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Strength)
	assert.Equal(t, 3, cfg.Workers)

	t.Setenv("OTHELLO_STRENGTH", "1")
	t.Setenv("OTHELLO_TIME_LIMIT", "2s")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Strength)
	assert.Equal(t, 2*time.Second, cfg.TimeLimit)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("OTHELLO_WORKERS", "many")
	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestNewEngineAppliesOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 3
	e := NewEngine(0, 0, 0, WithConfig(cfg), WithMaxDepth(7))
	got := e.Config()
	assert.Equal(t, 3, got.Workers)
	assert.Equal(t, 7, got.MaxDepth)

	e2 := NewEngine(0, 9, -time.Second)
	assert.Equal(t, MaxStrength, e2.Config().Strength)
	assert.Equal(t, DefaultConfig().TimeLimit, e2.Config().TimeLimit)

	e2.SetStrength(2)
	assert.Equal(t, 2, e2.Evaluator().Strength)
	e2.SetTimeLimit(time.Second)
	assert.Equal(t, time.Second, e2.Config().TimeLimit)
}
