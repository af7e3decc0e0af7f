package engine

import (
	"fmt"
	"time"
)

// Config holds the scoring and timing parameters shared by all engines.
type Config struct {
	MaxHearts    int     `yaml:"max_hearts"`
	ProgressStep float64 `yaml:"progress_step"`

	// SimilarityThreshold is the minimum stroke similarity that is accepted.
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	// MinStrokePoints is the shortest gesture that is evaluated at all.
	MinStrokePoints int `yaml:"min_stroke_points"`

	MismatchClearDelay    time.Duration `yaml:"mismatch_clear_delay"`
	HintHideDelay         time.Duration `yaml:"hint_hide_delay"`
	FeedbackHideDelay     time.Duration `yaml:"feedback_hide_delay"`
	CharacterAdvanceDelay time.Duration `yaml:"character_advance_delay"`
}

// DefaultConfig returns the standard engine tuning.
func DefaultConfig() Config {
	return Config{
		MaxHearts:             5,
		ProgressStep:          0.1,
		SimilarityThreshold:   0.7,
		MinStrokePoints:       5,
		MismatchClearDelay:    500 * time.Millisecond,
		HintHideDelay:         2 * time.Second,
		FeedbackHideDelay:     1500 * time.Millisecond,
		CharacterAdvanceDelay: 1500 * time.Millisecond,
	}
}

// Validate checks that every parameter is usable.
func (c Config) Validate() error {
	switch {
	case c.MaxHearts <= 0:
		return fmt.Errorf("max_hearts must be positive, got %d", c.MaxHearts)
	case c.ProgressStep <= 0 || c.ProgressStep > 1:
		return fmt.Errorf("progress_step must be in (0,1], got %v", c.ProgressStep)
	case c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1:
		return fmt.Errorf("similarity_threshold must be in [0,1], got %v", c.SimilarityThreshold)
	case c.MinStrokePoints < 1:
		return fmt.Errorf("min_stroke_points must be at least 1, got %d", c.MinStrokePoints)
	case c.MismatchClearDelay < 0 || c.HintHideDelay < 0 || c.FeedbackHideDelay < 0 || c.CharacterAdvanceDelay < 0:
		return fmt.Errorf("delays must not be negative")
	}
	return nil
}
