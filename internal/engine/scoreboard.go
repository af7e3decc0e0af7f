package engine

import "math"

// Scoreboard holds the per-session hearts, streak and progress fraction.
// One scoreboard is shared by every engine in a session.
type Scoreboard struct {
	Hearts     int
	MaxHearts  int
	Streak     int
	BestStreak int
	Progress   float64

	step float64
}

// NewScoreboard returns a full-hearts scoreboard.
func NewScoreboard(cfg Config) *Scoreboard {
	return &Scoreboard{
		Hearts:    cfg.MaxHearts,
		MaxHearts: cfg.MaxHearts,
		step:      cfg.ProgressStep,
	}
}

// RecordCorrect extends the streak and advances progress, capped at 1. It
// reports whether the new streak hit a milestone.
func (s *Scoreboard) RecordCorrect() (milestone bool) {
	next := NextStreakMilestone(s.Streak)
	s.Streak++
	if s.Streak > s.BestStreak {
		s.BestStreak = s.Streak
	}
	// Rounded so that ten steps of 0.1 land exactly on 1.
	s.Progress = math.Min(1, math.Round((s.Progress+s.step)*1e9)/1e9)
	return s.Streak == next
}

// RecordIncorrect breaks the streak and costs a heart, floored at zero.
// Running out of hearts does not end the session.
func (s *Scoreboard) RecordIncorrect() {
	s.Streak = 0
	if s.Hearts > 0 {
		s.Hearts--
	}
}

// OutOfHearts reports whether the heart budget is spent.
func (s *Scoreboard) OutOfHearts() bool { return s.Hearts == 0 }

// NextStreakMilestone returns the next streak milestone above current.
func NextStreakMilestone(current int) int {
	thresholds := []int{3, 5, 10, 15, 20}
	for _, t := range thresholds {
		if t > current {
			return t
		}
	}
	// Beyond 20, every 5.
	return ((current / 5) + 1) * 5
}
