// Package engine implements one answer-evaluation state machine per exercise
// kind. Engines are single-goroutine: every method, and every scheduled
// task they create, must run on the owner's goroutine.
package engine

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/lingo/internal/audio"
	"github.com/abhisek/lingo/internal/content"
	"github.com/abhisek/lingo/internal/schedule"
)

// State is the lifecycle state of an engine.
type State int

const (
	StateNotLoaded  State = iota // No exercise bound
	StateUnanswered              // Accepting input
	StateAnswered                // Answer checked; Reset to retry
)

func (s State) String() string {
	switch s {
	case StateUnanswered:
		return "unanswered"
	case StateAnswered:
		return "answered"
	default:
		return "not-loaded"
	}
}

// Engine is the contract shared by all exercise kinds. Kind-specific input
// methods live on the concrete types.
type Engine interface {
	Kind() content.Kind

	// Load binds ex. A kind mismatch returns *ContentMismatchError and
	// leaves the engine not loaded.
	Load(ex content.Exercise) error

	// Reset returns to unanswered, clearing selections and cancelling
	// pending tasks.
	Reset()

	// Unload cancels pending tasks and releases the exercise.
	Unload()

	State() State
	IsCorrect() bool

	// Done reports whether the exercise is finished and the session may
	// move on.
	Done() bool

	Exercise() content.Exercise
}

// Env is what every engine in a session shares.
type Env struct {
	Config    Config
	Score     *Scoreboard
	Bus       *Bus
	Scheduler schedule.Scheduler
	Rand      *rand.Rand
	Log       *zap.Logger
}

// NewEnv returns an environment with a fresh scoreboard and bus. A nil rng
// is seeded from the clock; a nil logger discards output.
func NewEnv(cfg Config, s schedule.Scheduler, rng *rand.Rand, log *zap.Logger) *Env {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Env{
		Config:    cfg,
		Score:     NewScoreboard(cfg),
		Bus:       NewBus(),
		Scheduler: s,
		Rand:      rng,
		Log:       log,
	}
}

// New returns the engine for kind. player is only used by listening
// exercises and may be nil otherwise.
func New(kind content.Kind, env *Env, player audio.Player) (Engine, error) {
	switch kind {
	case content.KindTranslation:
		return NewTranslation(env), nil
	case content.KindListening:
		return NewListening(env, player), nil
	case content.KindImageSelection:
		return NewImageSelection(env), nil
	case content.KindMatching:
		return NewMatching(env), nil
	case content.KindStrokeDrawing:
		return NewStrokeDrawing(env), nil
	default:
		return nil, ErrUnknownKind
	}
}

// base carries the lifecycle bookkeeping every engine shares.
type base struct {
	kind  content.Kind
	env   *Env
	tasks *schedule.Group

	ex      content.Exercise
	state   State
	correct bool
}

func newBase(kind content.Kind, env *Env) base {
	return base{kind: kind, env: env, tasks: schedule.NewGroup(env.Scheduler)}
}

func (b *base) Kind() content.Kind         { return b.kind }
func (b *base) State() State               { return b.state }
func (b *base) IsCorrect() bool            { return b.correct }
func (b *base) Exercise() content.Exercise { return b.ex }

// bind cancels any pending work and binds ex if its kind matches.
func (b *base) bind(ex content.Exercise) error {
	b.tasks.CancelAll()
	b.correct = false
	if ex.Kind() != b.kind {
		b.ex = content.Exercise{}
		b.state = StateNotLoaded
		err := &ContentMismatchError{Want: b.kind, Got: ex.Kind(), ExerciseID: ex.ID}
		b.env.Log.Warn("load exercise", zap.Error(err))
		return err
	}
	b.ex = ex
	b.state = StateUnanswered
	return nil
}

// rewind is the shared half of Reset. It reports false when nothing is loaded.
func (b *base) rewind() bool {
	b.tasks.CancelAll()
	if b.state == StateNotLoaded {
		return false
	}
	b.state = StateUnanswered
	b.correct = false
	return true
}

func (b *base) release() {
	b.tasks.CancelAll()
	wasLoaded := b.state != StateNotLoaded
	b.state = StateNotLoaded
	b.correct = false
	if wasLoaded {
		b.publish(EventUnloaded, "")
	}
	b.ex = content.Exercise{}
}

// acceptingInput returns an error unless the engine is waiting for an answer.
func (b *base) acceptingInput() error {
	switch b.state {
	case StateNotLoaded:
		return ErrNotLoaded
	case StateAnswered:
		return ErrAlreadyAnswered
	}
	return nil
}

// answer records a checked answer and applies its scoring side effects.
func (b *base) answer(correct bool) {
	b.state = StateAnswered
	b.correct = correct
	b.score(correct)
	b.publish(EventAnswered, "")
}

func (b *base) score(correct bool) {
	if !correct {
		b.env.Score.RecordIncorrect()
		return
	}
	if b.env.Score.RecordCorrect() {
		b.publish(EventStreakMilestone, "")
	}
}

func (b *base) publish(t EventType, detail string) {
	b.env.Bus.Publish(Event{
		Type:       t,
		Kind:       b.kind,
		ExerciseID: b.ex.ID,
		State:      b.state,
		Correct:    b.correct,
		Score:      *b.env.Score,
		Detail:     detail,
	})
}

func (b *base) after(d time.Duration, label string, fn func()) *schedule.Task {
	return b.tasks.After(d, b.ex.ID+"/"+label, fn)
}
