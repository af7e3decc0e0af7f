package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Loop schedules tasks on real timers backed by gocron. Fired tasks are not
// run on the timer goroutine; they are delivered on C so the owning loop
// can run them alongside user input.
type Loop struct {
	scheduler *gocron.Scheduler
	fired     chan *Task
	done      chan struct{}
	log       *zap.Logger
	stopOnce  sync.Once
}

// NewLoop creates and starts a real-time scheduler.
func NewLoop(log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	s := gocron.NewScheduler(time.Local)
	s.StartAsync()
	return &Loop{
		scheduler: s,
		fired:     make(chan *Task, 16),
		done:      make(chan struct{}),
		log:       log,
	}
}

// C delivers tasks whose delay has elapsed. The receiver calls Fire.
func (l *Loop) C() <-chan *Task { return l.fired }

func (l *Loop) After(d time.Duration, label string, fn func()) *Task {
	t := newTask(label, fn)
	if d <= 0 {
		d = time.Millisecond
	}

	job, err := l.scheduler.Every(d).WaitForSchedule().LimitRunsTo(1).Do(func() {
		select {
		case l.fired <- t:
		case <-l.done:
		}
	})
	if err != nil {
		// The task can still be fired by hand; it just never fires on its own.
		l.log.Warn("schedule task", zap.String("task", label), zap.Error(fmt.Errorf("gocron: %w", err)))
		return t
	}

	t.mu.Lock()
	t.stop = func() { l.scheduler.RemoveByReference(job) }
	t.mu.Unlock()
	return t
}

// Stop halts the timers. Pending tasks never fire afterwards.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
		l.scheduler.Stop()
	})
}
