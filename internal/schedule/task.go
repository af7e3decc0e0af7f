// Package schedule models delayed state transitions as cancellable tasks so
// that timer-driven behaviour can be driven by virtual time in tests.
package schedule

import (
	"sync"
	"time"
)

// Scheduler creates delayed tasks. Callbacks run on the owner's goroutine:
// Manual runs them inside Advance, Loop hands them back over a channel.
type Scheduler interface {
	After(d time.Duration, label string, fn func()) *Task
}

// Task is a single delayed callback. It fires at most once and never after
// Cancel has returned.
type Task struct {
	label string
	fn    func()

	mu        sync.Mutex
	cancelled bool
	fired     bool
	stop      func()
}

func newTask(label string, fn func()) *Task {
	return &Task{label: label, fn: fn}
}

// Label names the task for logs and debugging.
func (t *Task) Label() string { return t.label }

// Cancel prevents the callback from running. It reports whether the task
// was still pending.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	if t.cancelled || t.fired {
		t.mu.Unlock()
		return false
	}
	t.cancelled = true
	stop := t.stop
	t.mu.Unlock()

	if stop != nil {
		stop()
	}
	return true
}

// Fire runs the callback if the task is still pending and reports whether
// it ran.
func (t *Task) Fire() bool {
	t.mu.Lock()
	if t.cancelled || t.fired {
		t.mu.Unlock()
		return false
	}
	t.fired = true
	t.mu.Unlock()

	t.fn()
	return true
}

// Pending reports whether the task has neither fired nor been cancelled.
func (t *Task) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.cancelled && !t.fired
}
