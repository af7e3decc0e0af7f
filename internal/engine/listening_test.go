package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/lingo/internal/audio"
)

func newListening(t *testing.T) (*harness, *Listening, *audio.Simulated) {
	t.Helper()
	h := newHarness(t)
	player := audio.NewSimulated(h.clock)
	e := NewListening(h.env, player)
	if err := e.Load(listeningExercise()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return h, e, player
}

func TestListeningPlayRates(t *testing.T) {
	_, e, player := newListening(t)

	if err := e.Play(false); err != nil {
		t.Fatalf("play: %v", err)
	}
	if player.Rate() != audio.RateNormal || !player.Playing() {
		t.Errorf("rate = %v playing = %v, want 1.0 and true", player.Rate(), player.Playing())
	}

	// Play while playing pauses.
	if err := e.Play(false); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if playing, _ := e.Playing(); playing || player.Playing() {
		t.Error("second Play did not pause")
	}

	if err := e.Play(true); err != nil {
		t.Fatalf("slow play: %v", err)
	}
	if player.Rate() != audio.RateSlow {
		t.Errorf("slow rate = %v, want %v", player.Rate(), audio.RateSlow)
	}
	if _, slow := e.Playing(); !slow {
		t.Error("Playing reports slow = false")
	}
}

func TestListeningPlaybackProgress(t *testing.T) {
	h, e, _ := newListening(t)
	e.Play(false)

	h.clock.Advance(1500 * time.Millisecond)
	if got := e.Playback(); got != 0.5 {
		t.Errorf("Playback after 1.5s = %v, want 0.5", got)
	}

	h.clock.Advance(2 * time.Second)
	if playing, _ := e.Playing(); playing {
		t.Error("still playing after clip end")
	}
	if got := e.Playback(); got != 0 {
		t.Errorf("Playback after end = %v, want 0", got)
	}
	if h.count(EventPlaybackProgress) == 0 {
		t.Error("no playback progress events published")
	}
}

func TestListeningWordsAndTypedFallback(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		typed string
		want  bool
	}{
		{"picked words", []string{"See", "you", "again"}, "", true},
		{"typed only", nil, "  goodbye ", true},
		{"picked words win over typed", []string{"Hello"}, "Goodbye", false},
		{"typed wrong", nil, "hello", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, e, _ := newListening(t)
			for _, w := range tt.words {
				if err := e.PickWord(w); err != nil {
					t.Fatalf("pick %q: %v", w, err)
				}
			}
			if tt.typed != "" {
				e.SetText(tt.typed)
			}
			if err := e.Submit(); err != nil {
				t.Fatalf("submit: %v", err)
			}
			if e.IsCorrect() != tt.want {
				t.Errorf("IsCorrect = %v, want %v", e.IsCorrect(), tt.want)
			}
		})
	}
}

func TestListeningEmptySubmit(t *testing.T) {
	h, e, _ := newListening(t)
	e.SetText("   ")
	if err := e.Submit(); !errors.Is(err, ErrEmptyAnswer) {
		t.Errorf("Submit = %v, want ErrEmptyAnswer", err)
	}
	if h.env.Score.Hearts != 5 {
		t.Errorf("Hearts = %d, want 5", h.env.Score.Hearts)
	}
}

func TestListeningResetStopsAudio(t *testing.T) {
	h, e, player := newListening(t)
	e.Play(false)
	e.PickWord("Goodbye")
	e.Submit()

	e.Reset()
	if player.Playing() {
		t.Error("audio still playing after reset")
	}
	if e.State() != StateUnanswered || len(e.Selected()) != 0 || e.Text() != "" {
		t.Errorf("reset left state=%v selected=%v text=%q", e.State(), e.Selected(), e.Text())
	}
	if pending := h.clock.Pending(); len(pending) != 0 {
		t.Errorf("pending tasks after reset: %v", pending)
	}
}

func TestListeningWithoutPlayer(t *testing.T) {
	h := newHarness(t)
	e := NewListening(h.env, nil)
	e.Load(listeningExercise())
	if err := e.Play(false); err == nil {
		t.Error("Play without a player succeeded")
	}
	if err := e.SubmitText("Goodbye"); err != nil || !e.IsCorrect() {
		t.Errorf("SubmitText without player: err=%v correct=%v", err, e.IsCorrect())
	}
}
