package runner

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/geometry"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// ErrUnknownCommand is returned for input the current exercise does not accept.
var ErrUnknownCommand = errors.New("unknown command")

// strokeSamples is how many points a straight "stroke" command is split into.
const strokeSamples = 12

const helpText = `Commands:
  pick N|WORD       add a word from the bank to your answer
  unpick N          return the Nth answer word to the bank
  type TEXT         type a listening answer instead of picking words
  play / slow       play or pause the audio at normal or half speed
  select N|ID       choose an image option
  check             submit your answer
  left N|TEXT       select an item in the left column
  right N|TEXT      select an item in the right column
  stroke X1 Y1 X2 Y2  draw a straight stroke on the 300x300 canvas
  draw X,Y X,Y ...  draw a stroke through the given points
  animate           play the stroke-order animation
  retry             start the exercise over
  next              continue after answering
  wait DURATION     let time pass (e.g. 2s)
  show              print the exercise again
  quit              leave the lesson`

// exec runs one input line. It reports true when the learner quits.
func (r *Runner) exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		r.println(helpText)
		return false, nil
	case "show":
		r.render()
		return false, nil
	case "retry":
		eng := r.engine()
		if eng == nil {
			return false, session.ErrNoActiveLesson
		}
		eng.Reset()
		r.render()
		return false, nil
	case "next":
		return false, r.next(ctx)
	case "wait":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: wait DURATION")
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return false, fmt.Errorf("wait: %w", err)
		}
		r.wait(ctx, d)
		return false, nil
	}

	if err := r.input(cmd, args); err != nil {
		return false, err
	}
	r.render()
	return false, nil
}

func (r *Runner) next(ctx context.Context) error {
	err := r.ctl.Continue(ctx)
	if errors.Is(err, session.ErrNotFinished) {
		return fmt.Errorf("finish the exercise first")
	}
	if err != nil {
		return err
	}
	if r.ctl.Active() {
		r.render()
	}
	return nil
}

// input dispatches an exercise command to the current engine.
func (r *Runner) input(cmd string, args []string) error {
	switch e := r.engine().(type) {
	case *engine.Translation:
		return r.wordInput(e, cmd, args, e.Submit)
	case *engine.Listening:
		switch cmd {
		case "play":
			return e.Play(false)
		case "slow":
			return e.Play(true)
		case "type":
			if len(args) == 0 {
				return fmt.Errorf("usage: type TEXT")
			}
			return e.SetText(strings.Join(args, " "))
		}
		return r.wordInput(e, cmd, args, e.Submit)
	case *engine.ImageSelection:
		return r.imageInput(e, cmd, args)
	case *engine.Matching:
		return r.matchingInput(e, cmd, args)
	case *engine.StrokeDrawing:
		return r.strokeInput(e, cmd, args)
	case nil:
		return session.ErrNoActiveLesson
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

type wordPicker interface {
	Pick(pos int) error
	PickWord(word string) error
	Unpick(pos int) error
}

func (r *Runner) wordInput(e wordPicker, cmd string, args []string, submit func() error) error {
	switch cmd {
	case "pick", "p":
		if len(args) == 0 {
			return fmt.Errorf("usage: pick N|WORD")
		}
		for _, a := range args {
			var err error
			if n, ok := position(a); ok {
				err = e.Pick(n)
			} else {
				err = e.PickWord(a)
			}
			if err != nil {
				return err
			}
		}
		return nil
	case "unpick", "u":
		n, err := positionArg(args, "unpick N")
		if err != nil {
			return err
		}
		return e.Unpick(n)
	case "check", "c":
		return submit()
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

func (r *Runner) imageInput(e *engine.ImageSelection, cmd string, args []string) error {
	switch cmd {
	case "select", "s":
		if len(args) != 1 {
			return fmt.Errorf("usage: select N|ID")
		}
		if n, ok := position(args[0]); ok {
			return e.SelectAt(n)
		}
		for _, opt := range e.Options() {
			if strings.EqualFold(opt.Label, args[0]) {
				return e.Select(opt.ID)
			}
		}
		return e.Select(args[0])
	case "check", "c":
		return e.Submit()
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

func (r *Runner) matchingInput(e *engine.Matching, cmd string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s N|TEXT", cmd)
	}
	switch cmd {
	case "left", "l":
		n, ok := position(args[0])
		if !ok {
			n = indexOf(e.LeftItems(), args[0])
		}
		return e.SelectLeft(n)
	case "right", "r":
		n, ok := position(args[0])
		if !ok {
			items, _ := e.RightItems()
			n = indexOf(items, args[0])
		}
		return e.SelectRight(n)
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

func (r *Runner) strokeInput(e *engine.StrokeDrawing, cmd string, args []string) error {
	switch cmd {
	case "animate", "a":
		return e.PlayAnimation()
	case "stroke":
		if len(args) != 4 {
			return fmt.Errorf("usage: stroke X1 Y1 X2 Y2")
		}
		var v [4]float64
		for i, a := range args {
			f, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("stroke: %w", err)
			}
			v[i] = f
		}
		n := strokeSamples
		if minPoints := r.ctl.State().Env.Config.MinStrokePoints; minPoints > n {
			n = minPoints
		}
		return r.trace(e, line(geometry.Pt(v[0], v[1]), geometry.Pt(v[2], v[3]), n))
	case "draw", "d":
		if len(args) == 0 {
			return fmt.Errorf("usage: draw X,Y X,Y ...")
		}
		pts := make([]geometry.Point, 0, len(args))
		for _, a := range args {
			p, err := parsePoint(a)
			if err != nil {
				return err
			}
			pts = append(pts, p)
		}
		return r.trace(e, pts)
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

func (r *Runner) trace(e *engine.StrokeDrawing, pts []geometry.Point) error {
	outcome, err := e.Trace(pts)
	if err != nil {
		return err
	}
	if outcome != engine.StrokeDiscarded {
		r.println(r.pt.Paint(theme.Subtitle, fmt.Sprintf("similarity %.2f", e.LastSimilarity())))
	}
	return nil
}

// position parses a 1-based position as a 0-based index.
func position(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n - 1, true
}

func positionArg(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	n, ok := position(args[0])
	if !ok {
		return 0, fmt.Errorf("%q is not a number", args[0])
	}
	return n, nil
}

// indexOf returns the index of item in items, ignoring case, or -1.
func indexOf(items []string, item string) int {
	for i, it := range items {
		if strings.EqualFold(it, item) {
			return i
		}
	}
	return -1
}

func parsePoint(s string) (geometry.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geometry.Point{}, fmt.Errorf("point %q: want X,Y", s)
	}
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return geometry.Pt(x, y), nil
}

// line samples n evenly spaced points from a to b.
func line(a, b geometry.Point, n int) []geometry.Point {
	if n < 2 {
		n = 2
	}
	pts := make([]geometry.Point, n)
	for i := range pts {
		t := float64(i) / float64(n-1)
		pts[i] = geometry.Pt(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t)
	}
	return pts
}
