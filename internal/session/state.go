package session

import (
	"context"
	"time"

	"github.com/abhisek/lingo/internal/audio"
	"github.com/abhisek/lingo/internal/content"
	"github.com/abhisek/lingo/internal/engine"
)

// State tracks the runtime state of the lesson being played. It is created
// by StartLesson and discarded when the lesson completes or is exited.
type State struct {
	// SessionID is the UUID for this session.
	SessionID string

	// Lesson is the lesson being played.
	Lesson *content.Lesson

	// Index is the position of the current exercise in Lesson.Exercises.
	Index int

	// Env holds the scoreboard, event bus and scheduler shared by the
	// lesson's engines.
	Env *engine.Env

	// StartTime is when the session began.
	StartTime time.Time

	// Answered is the count of graded attempts so far.
	Answered int

	// Correct is the count of correct attempts so far.
	Correct int

	// PerKind tracks per-kind results for the summary.
	PerKind map[content.Kind]*KindResult

	// ctx is the StartLesson context. Writes triggered by engine events
	// run under it.
	ctx context.Context

	engines     map[content.Kind]engine.Engine
	current     engine.Engine
	unsubscribe func()
}

func newState(ctx context.Context, lesson *content.Lesson, env *engine.Env, sessionID string, now time.Time) *State {
	return &State{
		ctx:       ctx,
		SessionID: sessionID,
		Lesson:    lesson,
		Env:       env,
		StartTime: now,
		PerKind:   make(map[content.Kind]*KindResult),
		engines:   make(map[content.Kind]engine.Engine),
	}
}

// Score returns a copy of the session scoreboard.
func (s *State) Score() engine.Scoreboard { return *s.Env.Score }

// Exercise returns the current exercise. ok is false once the index has
// run past the end of the lesson.
func (s *State) Exercise() (ex content.Exercise, ok bool) {
	if s.Index < 0 || s.Index >= len(s.Lesson.Exercises) {
		return content.Exercise{}, false
	}
	return s.Lesson.Exercises[s.Index], true
}

// engineFor returns the lesson's engine for kind, creating it on first use.
func (s *State) engineFor(kind content.Kind, player audio.Player) (engine.Engine, error) {
	if e, ok := s.engines[kind]; ok {
		return e, nil
	}
	e, err := engine.New(kind, s.Env, player)
	if err != nil {
		return nil, err
	}
	s.engines[kind] = e
	return e, nil
}

func (s *State) record(kind content.Kind, correct bool) {
	s.Answered++
	if correct {
		s.Correct++
	}
	r := s.PerKind[kind]
	if r == nil {
		r = &KindResult{Kind: kind}
		s.PerKind[kind] = r
	}
	r.Record(correct)
}
