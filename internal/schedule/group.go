package schedule

import "time"

// Group tracks the tasks one owner has scheduled so they can be cancelled
// together. A Group is itself a Scheduler.
type Group struct {
	sched Scheduler
	tasks []*Task
}

// NewGroup returns a group scheduling on s.
func NewGroup(s Scheduler) *Group {
	return &Group{sched: s}
}

func (g *Group) After(d time.Duration, label string, fn func()) *Task {
	g.prune()
	t := g.sched.After(d, label, fn)
	g.tasks = append(g.tasks, t)
	return t
}

// CancelAll cancels every pending task and returns how many were pending.
func (g *Group) CancelAll() int {
	n := 0
	for _, t := range g.tasks {
		if t.Cancel() {
			n++
		}
	}
	g.tasks = g.tasks[:0]
	return n
}

// Pending returns the number of tasks that have not fired or been cancelled.
func (g *Group) Pending() int {
	g.prune()
	return len(g.tasks)
}

func (g *Group) prune() {
	live := g.tasks[:0]
	for _, t := range g.tasks {
		if t.Pending() {
			live = append(live, t)
		}
	}
	g.tasks = live
}
