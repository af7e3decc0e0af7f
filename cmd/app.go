package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lingo/internal/config"
	"github.com/abhisek/lingo/internal/content"
	"github.com/abhisek/lingo/internal/logging"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/store"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// deps is everything a command needs to work with the learner's data.
type deps struct {
	cfg      config.Config
	log      *zap.Logger
	progress progress.Gateway
	// events is nil for backends without answer history.
	events store.EventRepo
	close  func()
}

// openDeps loads the configuration and opens the configured backend.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log.Mode)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg, log: log}
	switch cfg.Store.Backend {
	case config.BackendRedis:
		client, err := store.OpenRedis(cmd.Context(), cfg.Store.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis: %w", err)
		}
		d.progress = store.NewRedisGateway(client, cfg.Store.RedisKey)
		d.close = func() { client.Close() }
	default:
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		log.Debug("store opened", zap.String("path", dbPath))
		d.progress = st.ProgressGateway()
		d.events = st.EventRepo()
		d.close = func() { st.Close() }
	}
	return d, nil
}

func (d *deps) Close() {
	if d.close != nil {
		d.close()
	}
	_ = d.log.Sync()
}

// controller builds a session controller over the opened backend.
func (d *deps) controller(ctx context.Context, opts session.Options) (*session.Controller, error) {
	opts.Progress = d.progress
	if d.events != nil {
		opts.Events = d.events
	}
	opts.Logger = d.log.Named("session")
	opts.Engine = d.cfg.Engine
	opts.Rewards = d.cfg.Rewards
	opts.DailyGoal = d.cfg.DailyGoal
	return session.New(ctx, opts)
}

// resolveDBPath returns the database path from configuration (the --db
// flag or LINGO_DB), falling back to the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if p := cfg.Store.DBPath; p != "" {
		return p, os.MkdirAll(filepath.Dir(p), 0o755)
	}
	return store.DefaultDBPath()
}

// loadCourses returns the configured course file, or the built-in course.
func loadCourses(cfg config.Config) ([]content.Course, error) {
	if cfg.CoursePath != "" {
		return content.LoadFile(cfg.CoursePath)
	}
	return content.Builtin()
}

// painter styles output unless --plain is set or stdout is not a terminal.
func painter(cmd *cobra.Command) theme.Painter {
	plain, _ := cmd.Flags().GetBool("plain")
	if f, ok := cmd.OutOrStdout().(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		plain = true
	}
	return theme.Painter{Plain: plain}
}
