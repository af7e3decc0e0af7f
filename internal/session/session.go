// Package session drives a learner through the exercises of a lesson and
// owns the persisted progress record.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/lingo/internal/audio"
	"github.com/abhisek/lingo/internal/content"
	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/schedule"
	"github.com/abhisek/lingo/internal/store"
)

var (
	ErrNoActiveLesson = errors.New("no active lesson")
	ErrEmptyLesson    = errors.New("lesson has no exercises")
	ErrNoScheduler    = errors.New("scheduler is required")
	ErrNotFinished    = errors.New("exercise not finished")
)

// EventRecorder appends session history. store.EventRepo satisfies it.
type EventRecorder interface {
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
}

// Options configures a Controller. Scheduler is required; everything else
// has a default. A zero Engine or Rewards means the package defaults.
type Options struct {
	Progress  progress.Gateway
	Events    EventRecorder
	Scheduler schedule.Scheduler
	Audio     audio.Player
	Rand      *rand.Rand
	Now       func() time.Time
	Logger    *zap.Logger

	Engine    engine.Config
	Rewards   progress.Rewards
	DailyGoal int
}

// Controller owns the progress record and the state of the active lesson.
// Like the engines it drives, it is used from a single goroutine.
type Controller struct {
	opts   Options
	log    *zap.Logger
	record *progress.Record
	state  *State
	last   *Summary
}

// New creates a Controller and loads the learner's progress. A missing or
// unreadable record falls back to a fresh one.
func New(ctx context.Context, opts Options) (*Controller, error) {
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Engine == (engine.Config{}) {
		opts.Engine = engine.DefaultConfig()
	}
	if opts.Rewards == (progress.Rewards{}) {
		opts.Rewards = progress.DefaultRewards()
	}

	c := &Controller{opts: opts, log: opts.Logger}
	c.record = c.loadProgress(ctx)
	return c, nil
}

func (c *Controller) loadProgress(ctx context.Context) *progress.Record {
	if c.opts.Progress == nil {
		return progress.New(c.opts.DailyGoal)
	}
	rec, err := c.opts.Progress.Load(ctx)
	if err != nil {
		c.log.Warn("load progress, starting fresh", zap.Error(err))
		return progress.New(c.opts.DailyGoal)
	}
	if rec == nil {
		return progress.New(c.opts.DailyGoal)
	}
	if rec.CompletedLessons == nil {
		rec.CompletedLessons = make(map[string]bool)
	}
	if rec.DailyXPGoal <= 0 {
		rec.DailyXPGoal = progress.New(c.opts.DailyGoal).DailyXPGoal
	}
	return rec
}

// Progress returns a copy of the learner's progress record.
func (c *Controller) Progress() *progress.Record { return c.record.Clone() }

// Active reports whether a lesson is being played.
func (c *Controller) Active() bool { return c.state != nil }

// State returns the active lesson's state, or nil.
func (c *Controller) State() *State { return c.state }

// Engine returns the engine bound to the current exercise, or nil.
func (c *Controller) Engine() engine.Engine {
	if c.state == nil {
		return nil
	}
	return c.state.current
}

// LastSummary returns the summary of the most recently completed lesson,
// or nil if none has completed since the last StartLesson.
func (c *Controller) LastSummary() *Summary { return c.last }

// StartLesson begins lesson at its first exercise with a fresh scoreboard.
// Any active lesson is exited first.
func (c *Controller) StartLesson(ctx context.Context, lesson *content.Lesson) error {
	if lesson == nil || len(lesson.Exercises) == 0 {
		return ErrEmptyLesson
	}
	c.ExitLesson(ctx)

	env := engine.NewEnv(c.opts.Engine, c.opts.Scheduler, c.opts.Rand, c.log.Named("engine"))
	st := newState(ctx, lesson, env, uuid.NewString(), c.opts.Now())
	st.unsubscribe = env.Bus.Subscribe(c.observe)
	c.state = st
	c.last = nil

	c.log.Info("lesson started",
		zap.String("lesson_id", lesson.ID),
		zap.String("session_id", st.SessionID),
		zap.Int("exercises", len(lesson.Exercises)))
	c.appendSession(ctx, store.ActionStart)

	return c.loadCurrent()
}

// CompleteCurrentExercise advances to the next exercise, or completes the
// lesson after the last one. An index past the end counts as completion.
func (c *Controller) CompleteCurrentExercise(ctx context.Context) error {
	st := c.state
	if st == nil {
		return ErrNoActiveLesson
	}
	if st.Index+1 < len(st.Lesson.Exercises) {
		st.Index++
		return c.loadCurrent()
	}
	c.CompleteLesson(ctx, st.Lesson)
	return nil
}

// Continue moves on from a finished exercise, or resets a wrongly answered
// one for another attempt. It reports ErrNotFinished while the exercise is
// still in progress.
func (c *Controller) Continue(ctx context.Context) error {
	st := c.state
	if st == nil || st.current == nil {
		return ErrNoActiveLesson
	}
	eng := st.current
	switch {
	case eng.Done():
		return c.CompleteCurrentExercise(ctx)
	case eng.State() == engine.StateAnswered && !eng.IsCorrect():
		eng.Reset()
		return nil
	}
	return ErrNotFinished
}

// CompleteLesson marks lesson complete. The first completion awards the
// configured XP and words and persists the record; repeats award nothing.
// Either way the active lesson is cleared. It reports whether XP was
// awarded.
func (c *Controller) CompleteLesson(ctx context.Context, lesson *content.Lesson) bool {
	awarded := false
	if lesson != nil && c.record.MarkCompleted(lesson.ID) {
		c.record.Award(c.opts.Now(), c.opts.Rewards.XP, c.opts.Rewards.Words)
		awarded = true
		c.log.Info("lesson completed",
			zap.String("lesson_id", lesson.ID),
			zap.Int("xp", c.record.XPPoints),
			zap.Int("streak", c.record.CurrentStreak))
		c.save(ctx)
	}

	if st := c.state; st != nil {
		c.last = BuildSummary(st, c.opts.Now())
		c.last.Awarded = awarded
		c.appendSession(ctx, store.ActionComplete)
		c.teardown()
	}
	return awarded
}

// ExitLesson discards the active lesson, cancelling its pending tasks.
func (c *Controller) ExitLesson(ctx context.Context) {
	if c.state == nil {
		return
	}
	c.appendSession(ctx, store.ActionExit)
	c.teardown()
}

// ResetProgress replaces the record with a fresh one and persists it.
func (c *Controller) ResetProgress(ctx context.Context) error {
	c.record = progress.New(c.record.DailyXPGoal)
	if c.opts.Progress == nil {
		return nil
	}
	if err := c.opts.Progress.Save(ctx, c.record); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (c *Controller) loadCurrent() error {
	st := c.state
	ex, ok := st.Exercise()
	if !ok {
		return fmt.Errorf("exercise %d: %w", st.Index, engine.ErrOutOfRange)
	}
	eng, err := st.engineFor(ex.Kind(), c.opts.Audio)
	if err != nil {
		return fmt.Errorf("exercise %q: %w", ex.ID, err)
	}
	if st.current != nil && st.current != eng {
		st.current.Unload()
	}
	st.current = eng
	if err := eng.Load(ex); err != nil {
		return fmt.Errorf("load exercise %q: %w", ex.ID, err)
	}
	return nil
}

func (c *Controller) teardown() {
	st := c.state
	for _, e := range st.engines {
		e.Unload()
	}
	if st.unsubscribe != nil {
		st.unsubscribe()
	}
	c.state = nil
}

// save persists the record. Failures are logged and dropped; the next
// save carries the change.
func (c *Controller) save(ctx context.Context) {
	if c.opts.Progress == nil {
		return
	}
	if err := c.opts.Progress.Save(ctx, c.record); err != nil {
		c.log.Warn("save progress", zap.Error(err))
	}
}

// observe counts graded attempts and appends them to the event log.
func (c *Controller) observe(e engine.Event) {
	st := c.state
	if st == nil {
		return
	}
	correct, ok := gradedAttempt(e)
	if !ok {
		return
	}
	st.record(e.Kind, correct)

	if c.opts.Events == nil {
		return
	}
	err := c.opts.Events.AppendAnswerEvent(st.ctx, store.AnswerEventData{
		SessionID:  st.SessionID,
		LessonID:   st.Lesson.ID,
		ExerciseID: e.ExerciseID,
		Kind:       string(e.Kind),
		Correct:    correct,
		Detail:     string(e.Type),
	})
	if err != nil {
		c.log.Warn("append answer event", zap.String("exercise_id", e.ExerciseID), zap.Error(err))
	}
}

func (c *Controller) appendSession(ctx context.Context, action string) {
	st := c.state
	if c.opts.Events == nil || st == nil {
		return
	}
	err := c.opts.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:    st.SessionID,
		LessonID:     st.Lesson.ID,
		Action:       action,
		Answered:     st.Answered,
		Correct:      st.Correct,
		DurationSecs: int(c.opts.Now().Sub(st.StartTime).Seconds()),
	})
	if err != nil {
		c.log.Warn("append session event", zap.String("action", action), zap.Error(err))
	}
}

// gradedAttempt reports whether e moved the scoreboard, and in which
// direction. The final pair of a matching exercise publishes both an
// answer and a pair match; only the answer counts.
func gradedAttempt(e engine.Event) (correct, ok bool) {
	switch e.Type {
	case engine.EventAnswered:
		return e.Correct, true
	case engine.EventPairMatched:
		return true, e.State != engine.StateAnswered
	case engine.EventPairMismatched, engine.EventStrokeRejected:
		return false, true
	}
	return false, false
}
