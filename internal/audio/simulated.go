package audio

import (
	"fmt"
	"time"

	"github.com/abhisek/lingo/internal/schedule"
)

// DefaultClipLength is the length reported for every simulated clip.
const DefaultClipLength = 3 * time.Second

// tickInterval is how often the simulated player reports progress.
const tickInterval = 250 * time.Millisecond

// Simulated pretends to play a clip, advancing position on the scheduler.
// It never produces sound.
type Simulated struct {
	ClipLength time.Duration

	tasks    *schedule.Group
	url      string
	rate     float64
	elapsed  time.Duration
	playing  bool
	progress ProgressFunc
}

// NewSimulated returns a player whose clock runs on s.
func NewSimulated(s schedule.Scheduler) *Simulated {
	return &Simulated{
		ClipLength: DefaultClipLength,
		tasks:      schedule.NewGroup(s),
	}
}

func (p *Simulated) Load(url string) error {
	if url == "" {
		return fmt.Errorf("load clip: empty url")
	}
	p.Stop()
	p.url = url
	return nil
}

func (p *Simulated) Play(rate float64) error {
	if p.url == "" {
		return ErrNotLoaded
	}
	if rate <= 0 {
		return fmt.Errorf("play %s: invalid rate %v", p.url, rate)
	}
	if p.elapsed >= p.ClipLength {
		p.elapsed = 0
	}
	p.tasks.CancelAll()
	p.rate = rate
	p.playing = true
	p.scheduleTick()
	return nil
}

func (p *Simulated) Pause() error {
	if p.url == "" {
		return ErrNotLoaded
	}
	p.tasks.CancelAll()
	p.playing = false
	return nil
}

func (p *Simulated) Stop() {
	p.tasks.CancelAll()
	p.playing = false
	p.elapsed = 0
}

func (p *Simulated) OnProgress(fn ProgressFunc) { p.progress = fn }

// Playing reports whether the clip is currently advancing.
func (p *Simulated) Playing() bool { return p.playing }

// Rate returns the rate of the most recent Play call.
func (p *Simulated) Rate() float64 { return p.rate }

// URL returns the loaded clip.
func (p *Simulated) URL() string { return p.url }

func (p *Simulated) scheduleTick() {
	p.tasks.After(tickInterval, "audio-tick", func() {
		p.elapsed += time.Duration(float64(tickInterval) * p.rate)
		if p.elapsed >= p.ClipLength {
			p.elapsed = p.ClipLength
			p.playing = false
		}
		if p.progress != nil {
			p.progress(p.elapsed, p.ClipLength)
		}
		if p.playing {
			p.scheduleTick()
		}
	})
}
