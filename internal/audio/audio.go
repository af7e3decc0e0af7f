// Package audio defines the playback collaborator used by listening
// exercises, plus a simulated player for terminals and tests.
package audio

import (
	"errors"
	"time"
)

// Playback rates.
const (
	RateNormal = 1.0
	RateSlow   = 0.5
)

// ErrNotLoaded is returned when Play is called before Load.
var ErrNotLoaded = errors.New("audio: no clip loaded")

// ProgressFunc receives playback position updates.
type ProgressFunc func(elapsed, duration time.Duration)

// Player plays a single clip at a time.
type Player interface {
	Load(url string) error
	Play(rate float64) error
	Pause() error
	Stop()
	OnProgress(fn ProgressFunc)
}
