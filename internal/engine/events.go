package engine

import "github.com/abhisek/lingo/internal/content"

// EventType names a state change.
type EventType string

const (
	EventLoaded           EventType = "loaded"
	EventUnloaded         EventType = "unloaded"
	EventReset            EventType = "reset"
	EventSelectionChanged EventType = "selection_changed"
	EventAnswered         EventType = "answered"
	EventStreakMilestone  EventType = "streak_milestone"

	EventPairMatched      EventType = "pair_matched"
	EventPairMismatched   EventType = "pair_mismatched"
	EventSelectionCleared EventType = "selection_cleared"

	EventStrokeDiscarded    EventType = "stroke_discarded"
	EventStrokeAccepted     EventType = "stroke_accepted"
	EventStrokeRejected     EventType = "stroke_rejected"
	EventCharacterCompleted EventType = "character_completed"
	EventCharacterAdvanced  EventType = "character_advanced"
	EventHintChanged        EventType = "hint_changed"
	EventFeedbackChanged    EventType = "feedback_changed"
	EventAnimationChanged   EventType = "animation_changed"

	EventPlaybackChanged  EventType = "playback_changed"
	EventPlaybackProgress EventType = "playback_progress"
)

// Event is published after every engine state change.
type Event struct {
	Type       EventType
	Kind       content.Kind
	ExerciseID string
	State      State
	Correct    bool
	// Score is a copy of the scoreboard after the change.
	Score  Scoreboard
	Detail string
}

// Bus fans events out to subscribers in subscription order. Like the
// engines it serves, it is used from a single goroutine.
type Bus struct {
	next int
	subs []subscriber
}

type subscriber struct {
	id int
	fn func(Event)
}

// NewBus returns an empty bus.
func NewBus() *Bus { return &Bus{} }

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.next++
	id := b.next
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to every current subscriber.
func (b *Bus) Publish(e Event) {
	subs := b.subs
	for _, s := range subs {
		s.fn(e)
	}
}
