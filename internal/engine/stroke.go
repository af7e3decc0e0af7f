package engine

import (
	"fmt"
	"time"

	"github.com/abhisek/lingo/internal/content"
	"github.com/abhisek/lingo/internal/geometry"
	"github.com/abhisek/lingo/internal/schedule"
)

// StrokeOutcome is the result of finishing a gesture.
type StrokeOutcome int

const (
	StrokeDiscarded StrokeOutcome = iota // Too short to evaluate
	StrokeAccepted
	StrokeRejected
)

func (o StrokeOutcome) String() string {
	switch o {
	case StrokeAccepted:
		return "accepted"
	case StrokeRejected:
		return "rejected"
	default:
		return "discarded"
	}
}

// Feedback messages shown after a gesture.
const (
	FeedbackAccepted = "Good job!"
	FeedbackRejected = "Try again"
	FeedbackComplete = "Character complete!"
)

// StrokeDrawing traces characters stroke by stroke. Each character is
// answered when its last stroke is accepted; the next character is
// presented after a delay.
type StrokeDrawing struct {
	base
	payload content.StrokeDrawing

	charIndex   int
	strokeIndex int
	userStrokes [][]geometry.Point
	gesture     []geometry.Point

	lastSimilarity float64

	hint         bool
	hintTask     *schedule.Task
	feedback     string
	positive     bool
	feedbackTask *schedule.Task
	animating    bool
}

// NewStrokeDrawing returns an unloaded stroke-drawing engine.
func NewStrokeDrawing(env *Env) *StrokeDrawing {
	return &StrokeDrawing{base: newBase(content.KindStrokeDrawing, env)}
}

func (e *StrokeDrawing) Load(ex content.Exercise) error {
	e.clear()
	if err := e.bind(ex); err != nil {
		e.payload = content.StrokeDrawing{}
		return err
	}
	e.payload = ex.Payload.(content.StrokeDrawing)
	e.publish(EventLoaded, "")
	return nil
}

// Prompt returns the text shown above the canvas.
func (e *StrokeDrawing) Prompt() content.Prompt { return e.payload.Prompt }

// Characters returns every character in the exercise.
func (e *StrokeDrawing) Characters() []content.StrokeCharacter { return e.payload.StrokeCharacters }

// CharacterIndex returns the index of the character being traced.
func (e *StrokeDrawing) CharacterIndex() int { return e.charIndex }

// StrokeIndex returns the index of the next stroke to trace.
func (e *StrokeDrawing) StrokeIndex() int { return e.strokeIndex }

// CurrentCharacter returns the character being traced, or nil.
func (e *StrokeDrawing) CurrentCharacter() *content.StrokeCharacter {
	if e.state == StateNotLoaded || e.charIndex >= len(e.payload.StrokeCharacters) {
		return nil
	}
	return &e.payload.StrokeCharacters[e.charIndex]
}

// TargetStroke returns the stroke expected next, or nil once all are traced.
func (e *StrokeDrawing) TargetStroke() *content.StrokePath {
	ch := e.CurrentCharacter()
	if ch == nil || e.strokeIndex >= len(ch.StrokeOrder) {
		return nil
	}
	return &ch.StrokeOrder[e.strokeIndex]
}

// CompletedPaths returns the target strokes already traced.
func (e *StrokeDrawing) CompletedPaths() []content.StrokePath {
	ch := e.CurrentCharacter()
	if ch == nil {
		return nil
	}
	return ch.StrokeOrder[:min(e.strokeIndex, len(ch.StrokeOrder))]
}

// RemainingPaths returns the target strokes still to trace.
func (e *StrokeDrawing) RemainingPaths() []content.StrokePath {
	ch := e.CurrentCharacter()
	if ch == nil || e.strokeIndex >= len(ch.StrokeOrder) {
		return nil
	}
	return ch.StrokeOrder[e.strokeIndex:]
}

// UserStrokes returns the accepted gestures for the current character.
func (e *StrokeDrawing) UserStrokes() [][]geometry.Point { return e.userStrokes }

// LastSimilarity returns the score of the most recently evaluated gesture.
func (e *StrokeDrawing) LastSimilarity() float64 { return e.lastSimilarity }

// HintVisible reports whether the stroke hint is showing.
func (e *StrokeDrawing) HintVisible() bool { return e.hint }

// Feedback returns the visible feedback message, or "" when hidden.
func (e *StrokeDrawing) Feedback() (message string, positive bool) {
	return e.feedback, e.positive
}

// Animating reports whether the stroke-order animation is playing.
func (e *StrokeDrawing) Animating() bool { return e.animating }

// BeginStroke starts a new gesture at p, dropping any unfinished one.
func (e *StrokeDrawing) BeginStroke(p geometry.Point) error {
	if err := e.acceptingInput(); err != nil {
		return err
	}
	e.gesture = []geometry.Point{p}
	return nil
}

// ExtendStroke adds p to the gesture in progress.
func (e *StrokeDrawing) ExtendStroke(p geometry.Point) error {
	if err := e.acceptingInput(); err != nil {
		return err
	}
	e.gesture = append(e.gesture, p)
	return nil
}

// EndStroke finishes the gesture and evaluates it against the target stroke.
func (e *StrokeDrawing) EndStroke() (StrokeOutcome, error) {
	if err := e.acceptingInput(); err != nil {
		e.gesture = nil
		return StrokeDiscarded, err
	}
	gesture := e.gesture
	e.gesture = nil

	target := e.TargetStroke()
	if target == nil || len(gesture) < e.env.Config.MinStrokePoints {
		e.publish(EventStrokeDiscarded, fmt.Sprintf("%d points", len(gesture)))
		return StrokeDiscarded, nil
	}

	e.lastSimilarity = geometry.StrokeSimilarity(gesture, target.Points)
	detail := fmt.Sprintf("similarity %.2f", e.lastSimilarity)

	if e.lastSimilarity < e.env.Config.SimilarityThreshold {
		e.score(false)
		e.showHint()
		e.showFeedback(FeedbackRejected, false)
		e.publish(EventStrokeRejected, detail)
		return StrokeRejected, nil
	}

	e.userStrokes = append(e.userStrokes, gesture)
	e.strokeIndex++
	e.showFeedback(FeedbackAccepted, true)
	e.publish(EventStrokeAccepted, detail)

	if e.strokeIndex >= len(e.CurrentCharacter().StrokeOrder) {
		e.completeCharacter()
	}
	return StrokeAccepted, nil
}

// Trace runs a whole gesture through BeginStroke, ExtendStroke and EndStroke.
func (e *StrokeDrawing) Trace(points []geometry.Point) (StrokeOutcome, error) {
	if len(points) == 0 {
		return e.EndStroke()
	}
	if err := e.BeginStroke(points[0]); err != nil {
		return StrokeDiscarded, err
	}
	for _, p := range points[1:] {
		if err := e.ExtendStroke(p); err != nil {
			return StrokeDiscarded, err
		}
	}
	return e.EndStroke()
}

// PlayAnimation shows the stroke-order animation for the current
// character's animation speed. It does nothing if already playing.
func (e *StrokeDrawing) PlayAnimation() error {
	ch := e.CurrentCharacter()
	if ch == nil {
		return ErrNotLoaded
	}
	if e.animating {
		return nil
	}
	e.animating = true
	e.publish(EventAnimationChanged, "playing")
	e.after(seconds(ch.AnimationSpeed), "animation", func() {
		e.animating = false
		e.publish(EventAnimationChanged, "stopped")
	})
	return nil
}

// Done reports whether the last character has been completed.
func (e *StrokeDrawing) Done() bool {
	return e.state == StateAnswered && e.correct &&
		e.charIndex == len(e.payload.StrokeCharacters)-1
}

func (e *StrokeDrawing) Reset() {
	e.clear()
	if !e.rewind() {
		return
	}
	e.publish(EventReset, "")
}

func (e *StrokeDrawing) Unload() {
	e.clear()
	e.release()
	e.payload = content.StrokeDrawing{}
}

func (e *StrokeDrawing) completeCharacter() {
	e.answer(true)
	e.showFeedback(FeedbackComplete, true)
	e.publish(EventCharacterCompleted, e.CurrentCharacter().Character)

	if e.charIndex < len(e.payload.StrokeCharacters)-1 {
		e.after(e.env.Config.CharacterAdvanceDelay, "next-character", e.nextCharacter)
	}
}

func (e *StrokeDrawing) nextCharacter() {
	e.charIndex++
	e.strokeIndex = 0
	e.userStrokes = nil
	e.state = StateUnanswered
	e.correct = false
	e.hideFeedback()
	e.publish(EventCharacterAdvanced, e.CurrentCharacter().Character)
}

func (e *StrokeDrawing) showHint() {
	if e.hintTask != nil {
		e.hintTask.Cancel()
	}
	e.hint = true
	e.publish(EventHintChanged, "shown")
	e.hintTask = e.after(e.env.Config.HintHideDelay, "hide-hint", func() {
		e.hint = false
		e.publish(EventHintChanged, "hidden")
	})
}

func (e *StrokeDrawing) showFeedback(msg string, positive bool) {
	if e.feedbackTask != nil {
		e.feedbackTask.Cancel()
	}
	e.feedback = msg
	e.positive = positive
	e.publish(EventFeedbackChanged, msg)
	e.feedbackTask = e.after(e.env.Config.FeedbackHideDelay, "hide-feedback", e.hideFeedback)
}

func (e *StrokeDrawing) hideFeedback() {
	if e.feedbackTask != nil {
		e.feedbackTask.Cancel()
		e.feedbackTask = nil
	}
	if e.feedback == "" {
		return
	}
	e.feedback = ""
	e.publish(EventFeedbackChanged, "")
}

// clear drops all per-attempt state. Pending tasks are cancelled by the
// caller through bind, rewind or release.
func (e *StrokeDrawing) clear() {
	e.charIndex = 0
	e.strokeIndex = 0
	e.userStrokes = nil
	e.gesture = nil
	e.lastSimilarity = 0
	e.hint = false
	e.hintTask = nil
	e.feedback = ""
	e.positive = false
	e.feedbackTask = nil
	e.animating = false
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
