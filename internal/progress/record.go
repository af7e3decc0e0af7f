package progress

import (
	"sort"
	"time"
)

// DefaultDailyXPGoal is the daily XP target for a fresh learner.
const DefaultDailyXPGoal = 30

// Rewards is what a first-time lesson completion awards.
type Rewards struct {
	XP    int `yaml:"xp"`
	Words int `yaml:"words"`
}

// DefaultRewards returns the standard lesson completion rewards.
func DefaultRewards() Rewards {
	return Rewards{XP: 10, Words: 5}
}

// Record is the persisted learner state.
type Record struct {
	CurrentStreak    int             `json:"current_streak"`
	WordsLearned     int             `json:"words_learned"`
	XPPoints         int             `json:"xp_points"`
	CompletedLessons map[string]bool `json:"completed_lessons"`
	DailyXPGoal      int             `json:"daily_xp_goal"`
	DailyXPEarned    int             `json:"daily_xp_earned"`
	// LastActivity is zero for a learner who has never earned XP.
	LastActivity time.Time `json:"last_activity"`
}

// New returns a fresh record. A non-positive goal falls back to the default.
func New(dailyGoal int) *Record {
	if dailyGoal <= 0 {
		dailyGoal = DefaultDailyXPGoal
	}
	return &Record{
		CompletedLessons: make(map[string]bool),
		DailyXPGoal:      dailyGoal,
	}
}

// HasCompleted reports whether the lesson id is in the completed set.
func (r *Record) HasCompleted(lessonID string) bool {
	return r.CompletedLessons[lessonID]
}

// MarkCompleted inserts the lesson id. It returns false if it was already present.
func (r *Record) MarkCompleted(lessonID string) bool {
	if r.CompletedLessons == nil {
		r.CompletedLessons = make(map[string]bool)
	}
	if r.CompletedLessons[lessonID] {
		return false
	}
	r.CompletedLessons[lessonID] = true
	return true
}

// Award adds XP and learned words, applying the day-rollover rule: the first
// award on a new calendar day (in now's location) restarts the daily counter
// at xp and extends the streak by one. Later awards on the same day only
// accumulate.
func (r *Record) Award(now time.Time, xp, words int) {
	r.XPPoints += xp
	r.WordsLearned += words

	if SameDay(r.LastActivity, now) {
		r.DailyXPEarned += xp
		return
	}
	r.DailyXPEarned = xp
	r.LastActivity = now
	r.CurrentStreak++
}

// DailyGoalFraction returns today's progress toward the daily goal in [0,1].
func (r *Record) DailyGoalFraction(now time.Time) float64 {
	if r.DailyXPGoal <= 0 || !SameDay(r.LastActivity, now) {
		return 0
	}
	f := float64(r.DailyXPEarned) / float64(r.DailyXPGoal)
	if f > 1 {
		return 1
	}
	return f
}

// CompletedIDs returns the completed lesson ids in sorted order.
func (r *Record) CompletedIDs() []string {
	ids := make([]string, 0, len(r.CompletedLessons))
	for id := range r.CompletedLessons {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	c := *r
	c.CompletedLessons = make(map[string]bool, len(r.CompletedLessons))
	for id := range r.CompletedLessons {
		c.CompletedLessons[id] = true
	}
	return &c
}

// SameDay reports whether a and b fall on the same calendar day in b's
// location. A zero a is never the same day.
func SameDay(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
