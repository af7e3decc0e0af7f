package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// Hearts renders remaining hearts as filled and spent ones as hollow.
func Hearts(pt theme.Painter, hearts, maxHearts int) string {
	if hearts < 0 {
		hearts = 0
	}
	spent := maxHearts - hearts
	if spent < 0 {
		spent = 0
	}
	return pt.Paint(theme.Hearts, strings.Repeat("♥", hearts)) +
		pt.Paint(theme.Subtitle, strings.Repeat("♡", spent))
}

// StatusLine renders hearts, streak and lesson progress on one line.
func StatusLine(pt theme.Painter, s engine.Scoreboard, width int) string {
	bar := NewProgressBar("", s.Progress, true, width).View(pt)
	streak := pt.Paint(theme.Streak, fmt.Sprintf("streak %d", s.Streak))
	return Hearts(pt, s.Hearts, s.MaxHearts) + "  " + streak + "  " + bar
}
