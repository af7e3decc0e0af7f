// Package config assembles lingo's runtime configuration from defaults, an
// optional YAML file and LINGO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/lingo/internal/audio"
	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/logging"
	"github.com/abhisek/lingo/internal/progress"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds all lingo configuration.
type Config struct {
	Engine    engine.Config    `yaml:"engine"`
	Rewards   progress.Rewards `yaml:"rewards"`
	DailyGoal int              `yaml:"daily_goal"`

	// CoursePath points at a course file; empty uses the built-in course.
	CoursePath string `yaml:"course"`

	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
	Audio AudioConfig `yaml:"audio"`
}

// StoreConfig selects and locates the progress backend.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	// DBPath is the sqlite file. Empty resolves to the XDG data dir.
	DBPath   string `yaml:"db_path"`
	RedisURL string `yaml:"redis_url"`
	RedisKey string `yaml:"redis_key"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Mode string `yaml:"mode"`
}

// AudioConfig configures the simulated player.
type AudioConfig struct {
	ClipLength time.Duration `yaml:"clip_length"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Engine:    engine.DefaultConfig(),
		Rewards:   progress.DefaultRewards(),
		DailyGoal: progress.DefaultDailyXPGoal,
		Store: StoreConfig{
			Backend: BackendSQLite,
		},
		Log: LogConfig{
			Mode: logging.ModeOff,
		},
		Audio: AudioConfig{
			ClipLength: audio.DefaultClipLength,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding what is already set. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if c.Rewards.XP <= 0 {
		return fmt.Errorf("rewards xp must be positive, got %d", c.Rewards.XP)
	}
	if c.Rewards.Words < 0 {
		return fmt.Errorf("rewards words must not be negative, got %d", c.Rewards.Words)
	}
	if c.DailyGoal <= 0 {
		return fmt.Errorf("daily_goal must be positive, got %d", c.DailyGoal)
	}
	switch c.Store.Backend {
	case BackendSQLite:
	case BackendRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("LINGO_REDIS_URL is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown store backend: %q", c.Store.Backend)
	}
	switch c.Log.Mode {
	case logging.ModeOff, logging.ModeDev, logging.ModeProd:
	default:
		return fmt.Errorf("unknown log mode: %q", c.Log.Mode)
	}
	if c.Audio.ClipLength <= 0 {
		return fmt.Errorf("audio clip_length must be positive")
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Store.Backend = getEnv("LINGO_STORE", c.Store.Backend)
	c.Store.DBPath = getEnv("LINGO_DB", c.Store.DBPath)
	c.Store.RedisURL = getEnv("LINGO_REDIS_URL", c.Store.RedisURL)
	c.Store.RedisKey = getEnv("LINGO_REDIS_KEY", c.Store.RedisKey)
	c.Log.Mode = getEnv("LINGO_LOG", c.Log.Mode)
	c.CoursePath = getEnv("LINGO_COURSE", c.CoursePath)

	var err error
	if c.DailyGoal, err = getEnvAsInt("LINGO_DAILY_GOAL", c.DailyGoal); err != nil {
		return err
	}
	if c.Engine.MaxHearts, err = getEnvAsInt("LINGO_MAX_HEARTS", c.Engine.MaxHearts); err != nil {
		return err
	}
	if c.Engine.SimilarityThreshold, err = getEnvAsFloat("LINGO_SIMILARITY_THRESHOLD", c.Engine.SimilarityThreshold); err != nil {
		return err
	}
	if c.Engine.MinStrokePoints, err = getEnvAsInt("LINGO_MIN_STROKE_POINTS", c.Engine.MinStrokePoints); err != nil {
		return err
	}
	if c.Audio.ClipLength, err = getEnvAsDuration("LINGO_AUDIO_CLIP_LENGTH", c.Audio.ClipLength); err != nil {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
