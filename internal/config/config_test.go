package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"LINGO_STORE", "LINGO_DB", "LINGO_REDIS_URL", "LINGO_REDIS_KEY", "LINGO_LOG",
	"LINGO_COURSE", "LINGO_DAILY_GOAL", "LINGO_MAX_HEARTS",
	"LINGO_SIMILARITY_THRESHOLD", "LINGO_MIN_STROKE_POINTS", "LINGO_AUDIO_CLIP_LENGTH",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Engine.MaxHearts)
	assert.Equal(t, 0.7, cfg.Engine.SimilarityThreshold)
	assert.Equal(t, 10, cfg.Rewards.XP)
	assert.Equal(t, 5, cfg.Rewards.Words)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
}

func TestLoadWithoutFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "lingo.yaml", `
engine:
  similarity_threshold: 0.5
  mismatch_clear_delay: 750ms
rewards:
  xp: 20
daily_goal: 50
store:
  db_path: /tmp/lingo-test.db
log:
  mode: dev
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Engine.SimilarityThreshold)
	assert.Equal(t, 750*time.Millisecond, cfg.Engine.MismatchClearDelay)
	assert.Equal(t, 20, cfg.Rewards.XP)
	assert.Equal(t, 50, cfg.DailyGoal)
	assert.Equal(t, "/tmp/lingo-test.db", cfg.Store.DBPath)
	assert.Equal(t, "dev", cfg.Log.Mode)

	// Untouched fields keep their defaults.
	assert.Equal(t, 5, cfg.Engine.MaxHearts)
	assert.Equal(t, 5, cfg.Rewards.Words)
	assert.Equal(t, 2*time.Second, cfg.Engine.HintHideDelay)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "lingo.yaml", "daily_goal: 50\nstore:\n  backend: sqlite\n")
	t.Setenv("LINGO_DAILY_GOAL", "70")
	t.Setenv("LINGO_STORE", "redis")
	t.Setenv("LINGO_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LINGO_MAX_HEARTS", "3")
	t.Setenv("LINGO_SIMILARITY_THRESHOLD", "0.25")
	t.Setenv("LINGO_MIN_STROKE_POINTS", "8")
	t.Setenv("LINGO_AUDIO_CLIP_LENGTH", "5s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 70, cfg.DailyGoal)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Store.RedisURL)
	assert.Equal(t, 3, cfg.Engine.MaxHearts)
	assert.Equal(t, 0.25, cfg.Engine.SimilarityThreshold)
	assert.Equal(t, 8, cfg.Engine.MinStrokePoints)
	assert.Equal(t, 5*time.Second, cfg.Audio.ClipLength)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr string
	}{
		{"bad yaml", "engine: [", nil, "parse config"},
		{"bad threshold", "engine:\n  similarity_threshold: 1.5\n", nil, "similarity_threshold"},
		{"zero hearts", "engine:\n  max_hearts: 0\n", nil, "max_hearts"},
		{"unknown backend", "store:\n  backend: mongo\n", nil, "unknown store backend"},
		{"redis without url", "store:\n  backend: redis\n", nil, "LINGO_REDIS_URL"},
		{"unknown log mode", "log:\n  mode: loud\n", nil, "unknown log mode"},
		{"negative rewards", "rewards:\n  xp: -1\n", nil, "rewards"},
		{"zero xp reward", "rewards:\n  xp: 0\n  words: 0\n", nil, "rewards xp must be positive"},
		{"negative word reward", "rewards:\n  words: -2\n", nil, "rewards words"},
		{"zero min stroke points", "", map[string]string{"LINGO_MIN_STROKE_POINTS": "0"}, "min_stroke_points"},
		{"bad env min stroke points", "", map[string]string{"LINGO_MIN_STROKE_POINTS": "few"}, "LINGO_MIN_STROKE_POINTS"},
		{"bad env int", "", map[string]string{"LINGO_DAILY_GOAL": "lots"}, "LINGO_DAILY_GOAL"},
		{"bad env duration", "", map[string]string{"LINGO_AUDIO_CLIP_LENGTH": "long"}, "LINGO_AUDIO_CLIP_LENGTH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeFile(t, "lingo.yaml", tt.yaml)
			}
			_, err := Load(path)
			require.Error(t, err)
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, ".env", "LINGO_LOG=prod\nLINGO_DAILY_GOAL=40\n")
	os.Unsetenv("LINGO_DAILY_GOAL")
	os.Unsetenv("LINGO_LOG")

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Log.Mode)
	assert.Equal(t, 40, cfg.DailyGoal)
}
