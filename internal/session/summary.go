package session

import (
	"time"

	"github.com/abhisek/lingo/internal/content"
)

// Summary holds the data displayed when a lesson ends.
type Summary struct {
	SessionID   string
	LessonID    string
	Duration    time.Duration
	Answered    int
	Correct     int
	Accuracy    float64
	HeartsLeft  int
	BestStreak  int
	KindResults []KindResult

	// Awarded is true when this completion earned XP for the first time.
	Awarded bool
}

// BuildSummary creates a Summary from the current session state.
func BuildSummary(state *State, now time.Time) *Summary {
	var results []KindResult
	for _, k := range content.AllKinds() {
		if r, ok := state.PerKind[k]; ok {
			results = append(results, *r)
		}
	}

	var accuracy float64
	if state.Answered > 0 {
		accuracy = float64(state.Correct) / float64(state.Answered)
	}

	score := state.Score()
	return &Summary{
		SessionID:   state.SessionID,
		LessonID:    state.Lesson.ID,
		Duration:    now.Sub(state.StartTime),
		Answered:    state.Answered,
		Correct:     state.Correct,
		Accuracy:    accuracy,
		HeartsLeft:  score.Hearts,
		BestStreak:  score.BestStreak,
		KindResults: results,
	}
}
