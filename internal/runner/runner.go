// Package runner plays a lesson in a terminal: it reads one command per
// line, drives the session controller and prints the exercise after every
// change. Timer callbacks run on the same goroutine as input handling.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/lingo/internal/content"
	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/schedule"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// DefaultWidth is the width of the status line.
const DefaultWidth = 40

// Options configures a Runner.
type Options struct {
	In  io.Reader
	Out io.Writer

	// Fired delivers due tasks from a real-time scheduler. Leave nil when
	// tasks are driven through Advance.
	Fired <-chan *schedule.Task
	// Advance moves virtual time for the wait command. Nil waits in real
	// time while servicing Fired.
	Advance func(time.Duration) int

	Painter theme.Painter
	Width   int
	Logger  *zap.Logger
}

// Runner plays lessons on a session controller.
type Runner struct {
	ctl  *session.Controller
	opts Options
	out  io.Writer
	pt   theme.Painter
	log  *zap.Logger

	lesson *content.Lesson
}

// New returns a runner driving ctl.
func New(ctl *session.Controller, opts Options) *Runner {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Runner{
		ctl:  ctl,
		opts: opts,
		out:  opts.Out,
		pt:   opts.Painter,
		log:  opts.Logger,
	}
}

// Play runs lesson until it is completed, the learner quits, input ends or
// ctx is cancelled. The summary is returned only when the lesson was
// completed.
func (r *Runner) Play(ctx context.Context, lesson *content.Lesson) (*session.Summary, error) {
	if err := r.ctl.StartLesson(ctx, lesson); err != nil {
		return nil, fmt.Errorf("start lesson: %w", err)
	}
	r.lesson = lesson
	unsubscribe := r.ctl.State().Env.Bus.Subscribe(r.onEvent)
	defer unsubscribe()

	done := make(chan struct{})
	defer close(done)
	lines := readLines(r.opts.In, done)

	r.println(r.pt.Paint(theme.Hint, "Type 'help' for commands."))
	r.render()

	for r.ctl.Active() {
		select {
		case <-ctx.Done():
			r.ctl.ExitLesson(context.WithoutCancel(ctx))
			return nil, ctx.Err()
		case t := <-r.opts.Fired:
			t.Fire()
		case line, ok := <-lines:
			if !ok {
				r.log.Debug("input closed", zap.String("lesson_id", lesson.ID))
				r.ctl.ExitLesson(ctx)
				return nil, nil
			}
			quit, err := r.exec(ctx, line)
			if err != nil {
				r.println(r.pt.Paint(theme.Incorrect, "! "+err.Error()))
			}
			if quit {
				r.ctl.ExitLesson(ctx)
				r.println(r.pt.Paint(theme.Subtitle, "Lesson exited."))
				return nil, nil
			}
		}
	}

	sum := r.ctl.LastSummary()
	r.printSummary(sum)
	return sum, nil
}

// wait lets d pass, running tasks that fall due meanwhile.
func (r *Runner) wait(ctx context.Context, d time.Duration) {
	if r.opts.Advance != nil {
		r.opts.Advance(d)
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			return
		case t := <-r.opts.Fired:
			t.Fire()
		}
	}
}

func (r *Runner) println(s string) {
	fmt.Fprintln(r.out, s)
}

// engine returns the engine of the current exercise, or nil.
func (r *Runner) engine() engine.Engine {
	return r.ctl.Engine()
}

func readLines(in io.Reader, done <-chan struct{}) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		if in == nil {
			return
		}
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-done:
				return
			}
		}
	}()
	return ch
}
