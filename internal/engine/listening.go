package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/lingo/internal/audio"
	"github.com/abhisek/lingo/internal/content"
)

// Listening transcribes an audio clip, either from the word bank or as
// typed text when no words are picked.
type Listening struct {
	wordSelection
	player audio.Player

	url      string
	typed    string
	playing  bool
	slow     bool
	elapsed  time.Duration
	duration time.Duration
}

// NewListening returns an unloaded listening engine. A nil player disables
// playback but not answering.
func NewListening(env *Env, player audio.Player) *Listening {
	e := &Listening{
		wordSelection: wordSelection{base: newBase(content.KindListening, env)},
		player:        player,
	}
	if player != nil {
		player.OnProgress(e.onProgress)
	}
	return e
}

func (e *Listening) Load(ex content.Exercise) error {
	e.stopAudio()
	if err := e.bind(ex); err != nil {
		e.bank = nil
		return err
	}
	p := ex.Payload.(content.Listening)
	e.bindWords(p.Prompt, p.CorrectAnswers, p.WordBank)
	e.url = p.AudioURL
	e.typed = ""
	if e.player != nil {
		if err := e.player.Load(e.url); err != nil {
			// Answering works without audio.
			e.env.Log.Warn("load audio", zap.String("exercise_id", ex.ID), zap.Error(err))
		}
	}
	e.publish(EventLoaded, "")
	return nil
}

// Play starts playback at normal or slow rate, or pauses if already playing.
func (e *Listening) Play(slow bool) error {
	if e.state == StateNotLoaded {
		return ErrNotLoaded
	}
	if e.player == nil {
		return fmt.Errorf("play %s: no audio player", e.url)
	}

	if e.playing {
		if err := e.player.Pause(); err != nil {
			return fmt.Errorf("pause %s: %w", e.url, err)
		}
		e.playing = false
		e.publish(EventPlaybackChanged, "paused")
		return nil
	}

	rate := audio.RateNormal
	if slow {
		rate = audio.RateSlow
	}
	if err := e.player.Play(rate); err != nil {
		return fmt.Errorf("play %s: %w", e.url, err)
	}
	e.playing = true
	e.slow = slow
	e.publish(EventPlaybackChanged, fmt.Sprintf("playing x%.1f", rate))
	return nil
}

// Playing reports whether audio is playing, and whether at the slow rate.
func (e *Listening) Playing() (playing, slow bool) { return e.playing, e.slow && e.playing }

// Playback returns the fraction of the clip played so far.
func (e *Listening) Playback() float64 {
	if e.duration <= 0 {
		return 0
	}
	return float64(e.elapsed) / float64(e.duration)
}

// SetText stores typed input, used when no words are picked.
func (e *Listening) SetText(text string) error {
	if err := e.acceptingInput(); err != nil {
		return err
	}
	e.typed = text
	e.publish(EventSelectionChanged, text)
	return nil
}

// Text returns the typed input.
func (e *Listening) Text() string { return e.typed }

// Submit checks the picked words, falling back to the typed text.
func (e *Listening) Submit() error {
	if words := e.Selected(); len(words) > 0 {
		return e.SubmitWords(words)
	}
	return e.SubmitText(e.typed)
}

// SubmitText checks text as the answer.
func (e *Listening) SubmitText(text string) error {
	if err := e.acceptingInput(); err != nil {
		return err
	}
	if normalizeAnswer(text) == "" {
		return ErrEmptyAnswer
	}
	e.typed = text
	e.answer(MatchesAnswer(text, e.answers))
	return nil
}

func (e *Listening) Reset() {
	e.stopAudio()
	if !e.rewind() {
		return
	}
	e.typed = ""
	e.resetWords()
	e.publish(EventReset, "")
}

func (e *Listening) Unload() {
	e.stopAudio()
	e.release()
	e.bank = nil
	e.url = ""
	e.typed = ""
}

func (e *Listening) stopAudio() {
	if e.player != nil {
		e.player.Stop()
	}
	e.playing = false
	e.slow = false
	e.elapsed = 0
}

func (e *Listening) onProgress(elapsed, duration time.Duration) {
	if e.state == StateNotLoaded {
		return
	}
	e.elapsed = elapsed
	e.duration = duration
	if elapsed >= duration {
		e.playing = false
		e.slow = false
		e.elapsed = 0
		e.publish(EventPlaybackChanged, "finished")
		return
	}
	e.publish(EventPlaybackProgress, "")
}
