package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/lingo/internal/ui/theme"
)

// ChoiceState is how one entry of a Choices list is drawn.
type ChoiceState int

const (
	ChoiceIdle ChoiceState = iota
	ChoiceSelected
	ChoiceCorrect
	ChoiceIncorrect
	ChoiceDone
)

// Choices is a numbered list of options.
type Choices struct {
	Title   string
	Options []string
	States  []ChoiceState
}

// NewChoices creates a list with every option idle.
func NewChoices(title string, options []string) Choices {
	return Choices{
		Title:   title,
		Options: options,
		States:  make([]ChoiceState, len(options)),
	}
}

// Set changes the state of option i. Out-of-range indices are ignored.
func (c Choices) Set(i int, s ChoiceState) {
	if i >= 0 && i < len(c.States) {
		c.States[i] = s
	}
}

// View renders the list, one option per line.
func (c Choices) View(pt theme.Painter) string {
	var b strings.Builder
	if c.Title != "" {
		b.WriteString(pt.Paint(theme.Subtitle, c.Title))
		b.WriteString("\n")
	}
	for i, opt := range c.Options {
		prefix := "  "
		style := theme.Unselected
		switch c.States[i] {
		case ChoiceSelected:
			prefix = "▸ "
			style = theme.Selected
		case ChoiceCorrect:
			prefix = "✓ "
			style = theme.Correct
		case ChoiceIncorrect:
			prefix = "✗ "
			style = theme.Incorrect
		case ChoiceDone:
			prefix = "✓ "
			style = theme.Matched
		}
		b.WriteString(pt.Paint(style, fmt.Sprintf("%s%d) %s", prefix, i+1, opt)))
		b.WriteString("\n")
	}
	return b.String()
}
