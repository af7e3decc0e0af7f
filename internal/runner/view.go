package runner

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lingo/internal/content"
	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/session"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// render prints the current exercise.
func (r *Runner) render() {
	st := r.ctl.State()
	if st == nil {
		return
	}
	ex, _ := st.Exercise()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(r.pt.Paint(theme.Title, st.Lesson.Title))
	b.WriteString("  ")
	b.WriteString(r.pt.Paint(theme.Subtitle, fmt.Sprintf("%d/%d %s",
		st.Index+1, len(st.Lesson.Exercises), ex.Kind().DisplayName())))
	b.WriteString("\n")
	b.WriteString(components.StatusLine(r.pt, st.Score(), r.opts.Width))
	b.WriteString("\n")

	switch e := r.engine().(type) {
	case *engine.Translation:
		r.writePrompt(&b, e.Prompt())
		r.writeWords(&b, e.Selected(), e.Available())
	case *engine.Listening:
		r.writePrompt(&b, e.Prompt())
		r.writeAudio(&b, e)
		r.writeWords(&b, e.Selected(), e.Available())
		if t := e.Text(); t != "" {
			fmt.Fprintf(&b, "Typed: %s\n", t)
		}
	case *engine.ImageSelection:
		r.writePrompt(&b, e.Prompt())
		r.writeImages(&b, e)
	case *engine.Matching:
		r.writePrompt(&b, e.Prompt())
		r.writeMatching(&b, e)
	case *engine.StrokeDrawing:
		r.writePrompt(&b, e.Prompt())
		r.writeStroke(&b, e)
	}

	fmt.Fprint(r.out, b.String())
}

func (r *Runner) writePrompt(b *strings.Builder, p content.Prompt) {
	if p.Title != "" {
		b.WriteString(r.pt.Paint(theme.Body, p.Title))
		b.WriteString("\n")
	}
	if p.Characters != "" {
		b.WriteString("  ")
		b.WriteString(r.pt.Paint(theme.Characters, p.Characters))
		if p.Pinyin != "" {
			b.WriteString("  ")
			b.WriteString(r.pt.Paint(theme.Hint, p.Pinyin))
		}
		b.WriteString("\n")
	}
}

func (r *Runner) writeWords(b *strings.Builder, selected, available []string) {
	answer := engine.JoinWords(selected)
	if answer == "" {
		answer = r.pt.Paint(theme.Hint, "(empty)")
	}
	fmt.Fprintf(b, "Answer: %s\n", answer)
	if len(available) > 0 {
		b.WriteString(components.NewChoices("Words:", available).View(r.pt))
	}
}

func (r *Runner) writeAudio(b *strings.Builder, e *engine.Listening) {
	playing, slow := e.Playing()
	status := "stopped"
	switch {
	case playing && slow:
		status = "playing (slow)"
	case playing:
		status = "playing"
	}
	bar := components.NewProgressBar("Audio", e.Playback(), false, r.opts.Width).View(r.pt)
	fmt.Fprintf(b, "%s %s\n", bar, r.pt.Paint(theme.Subtitle, status))
}

func (r *Runner) writeImages(b *strings.Builder, e *engine.ImageSelection) {
	opts := e.Options()
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
		if labels[i] == "" {
			labels[i] = o.ImageName
		}
	}
	list := components.NewChoices("Options:", labels)
	for i, o := range opts {
		if o.ID != e.Selected() {
			continue
		}
		switch {
		case e.State() != engine.StateAnswered:
			list.Set(i, components.ChoiceSelected)
		case e.IsCorrect():
			list.Set(i, components.ChoiceCorrect)
		default:
			list.Set(i, components.ChoiceIncorrect)
		}
	}
	b.WriteString(list.View(r.pt))
}

func (r *Runner) writeMatching(b *strings.Builder, e *engine.Matching) {
	selLeft, selRight := e.Selection()

	left := components.NewChoices("Left:", e.LeftItems())
	for i := range e.LeftItems() {
		if e.IsLeftMatched(i) {
			left.Set(i, components.ChoiceDone)
		}
	}
	left.Set(selLeft, components.ChoiceSelected)

	items, pinyin := e.RightItems()
	labels := make([]string, len(items))
	for i := range items {
		labels[i] = items[i]
		if pinyin[i] != "" {
			labels[i] += " (" + pinyin[i] + ")"
		}
	}
	right := components.NewChoices("Right:", labels)
	for i := range items {
		if e.IsRightMatched(i) {
			right.Set(i, components.ChoiceDone)
		}
	}
	right.Set(selRight, components.ChoiceSelected)
	if e.Locked() {
		left.Set(selLeft, components.ChoiceIncorrect)
		right.Set(selRight, components.ChoiceIncorrect)
	}

	b.WriteString(left.View(r.pt))
	b.WriteString(right.View(r.pt))
	fmt.Fprintf(b, "Matched %d/%d\n", len(e.Matched()), e.Pairs())
}

func (r *Runner) writeStroke(b *strings.Builder, e *engine.StrokeDrawing) {
	ch := e.CurrentCharacter()
	if ch == nil {
		return
	}
	fmt.Fprintf(b, "Character %d/%d: %s  %s  %s\n",
		e.CharacterIndex()+1, len(e.Characters()),
		r.pt.Paint(theme.Characters, ch.Character),
		r.pt.Paint(theme.Hint, ch.Pinyin), ch.Meaning)
	fmt.Fprintf(b, "Stroke %d/%d\n", min(e.StrokeIndex()+1, len(ch.StrokeOrder)), len(ch.StrokeOrder))
	if e.HintVisible() {
		b.WriteString(r.hint(e))
		b.WriteString("\n")
	}
	if e.Animating() {
		b.WriteString(r.pt.Paint(theme.Hint, "Animating stroke order"))
		b.WriteString("\n")
	}
}

func (r *Runner) hint(e *engine.StrokeDrawing) string {
	target := e.TargetStroke()
	if target == nil || len(target.Points) == 0 {
		return ""
	}
	start, end := target.Points[0], target.Points[len(target.Points)-1]
	return r.pt.Paint(theme.Hint, fmt.Sprintf("Hint: from (%.0f, %.0f) to (%.0f, %.0f)",
		start.X, start.Y, end.X, end.Y))
}

// onEvent prints transient feedback. Synchronous changes are covered by
// the render that follows each command.
func (r *Runner) onEvent(ev engine.Event) {
	switch ev.Type {
	case engine.EventAnswered:
		if ev.Kind == content.KindStrokeDrawing {
			return
		}
		if ev.Correct {
			r.println(r.pt.Paint(theme.Correct, "✓ Correct!"))
		} else {
			r.println(r.pt.Paint(theme.Incorrect, "✗ Not quite. Type 'next' to try again."))
		}
	case engine.EventStreakMilestone:
		r.println(r.pt.Paint(theme.Streak, fmt.Sprintf("%d in a row!", ev.Score.Streak)))
	case engine.EventPairMatched:
		r.println(r.pt.Paint(theme.Correct, "✓ Match"))
	case engine.EventPairMismatched:
		r.println(r.pt.Paint(theme.Incorrect, "✗ Not a pair"))
	case engine.EventSelectionCleared:
		r.println(r.pt.Paint(theme.Subtitle, "Selection cleared"))
	case engine.EventStrokeDiscarded:
		r.println(r.pt.Paint(theme.Subtitle, "Stroke too short, ignored"))
	case engine.EventFeedbackChanged:
		if ev.Detail == "" {
			return
		}
		style := theme.Incorrect
		if e, ok := r.engine().(*engine.StrokeDrawing); ok {
			if _, positive := e.Feedback(); positive {
				style = theme.Correct
			}
		}
		r.println(r.pt.Paint(style, ev.Detail))
	case engine.EventCharacterAdvanced:
		r.println(r.pt.Paint(theme.Subtitle, "Next character: "+ev.Detail))
		r.render()
	case engine.EventAnimationChanged:
		if ev.Detail == "stopped" {
			r.println(r.pt.Paint(theme.Subtitle, "Animation finished"))
		}
	case engine.EventPlaybackChanged:
		if ev.Detail == "finished" {
			r.println(r.pt.Paint(theme.Subtitle, "Audio finished"))
		}
	}
}

func (r *Runner) printSummary(sum *session.Summary) {
	if sum == nil {
		return
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(r.pt.Paint(theme.Title, "Lesson complete: "+r.lesson.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Answered %d, correct %d (%d%%)\n",
		sum.Answered, sum.Correct, int(sum.Accuracy*100+0.5))
	fmt.Fprintf(&b, "Hearts left %d, best streak %d\n", sum.HeartsLeft, sum.BestStreak)
	for _, k := range sum.KindResults {
		fmt.Fprintf(&b, "  %-16s %d/%d\n", k.Kind.DisplayName(), k.Correct, k.Attempted)
	}
	fmt.Fprintf(&b, "Time %s\n", sum.Duration.Round(time.Second))
	if sum.Awarded {
		rec := r.ctl.Progress()
		b.WriteString(r.pt.Paint(theme.Streak, fmt.Sprintf("Reward earned: %d XP total, %d day streak", rec.XPPoints, rec.CurrentStreak)))
		b.WriteString("\n")
	}
	fmt.Fprint(r.out, b.String())
}
