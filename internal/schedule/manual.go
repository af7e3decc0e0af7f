package schedule

import (
	"sort"
	"time"
)

// Manual is a virtual-time scheduler. Nothing fires until Advance is called.
type Manual struct {
	now   time.Time
	seq   int
	queue []*entry
}

type entry struct {
	due  time.Time
	seq  int
	task *Task
}

// NewManual returns a scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Time { return m.now }

func (m *Manual) After(d time.Duration, label string, fn func()) *Task {
	t := newTask(label, fn)
	m.seq++
	m.queue = append(m.queue, &entry{due: m.now.Add(d), seq: m.seq, task: t})
	return t
}

// Advance moves the clock forward by d, firing every task that falls due in
// order of due time. Tasks scheduled by a callback fire too if they fall due
// inside the window. It returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now.Add(d)
	fired := 0
	for {
		next := m.popDue(target)
		if next == nil {
			break
		}
		m.now = next.due
		if next.task.Fire() {
			fired++
		}
	}
	m.now = target
	return fired
}

// Pending returns the labels of tasks still waiting to fire, earliest first.
func (m *Manual) Pending() []string {
	m.compact()
	labels := make([]string, 0, len(m.queue))
	for _, e := range m.queue {
		labels = append(labels, e.task.Label())
	}
	return labels
}

func (m *Manual) popDue(target time.Time) *entry {
	m.compact()
	if len(m.queue) == 0 || m.queue[0].due.After(target) {
		return nil
	}
	e := m.queue[0]
	m.queue = m.queue[1:]
	return e
}

// compact drops finished tasks and keeps the queue ordered by due time.
func (m *Manual) compact() {
	live := m.queue[:0]
	for _, e := range m.queue {
		if e.task.Pending() {
			live = append(live, e)
		}
	}
	m.queue = live
	sort.SliceStable(m.queue, func(i, j int) bool {
		if m.queue[i].due.Equal(m.queue[j].due) {
			return m.queue[i].seq < m.queue[j].seq
		}
		return m.queue[i].due.Before(m.queue[j].due)
	})
}
