package engine

import (
	"fmt"
	"slices"
	"sort"

	"github.com/abhisek/lingo/internal/content"
)

// noSelection marks an empty slot in the selection buffer.
const noSelection = -1

// Matching pairs left items with right items. The right column is shown in
// a shuffled order; RightIndices maps a displayed right position to the
// original pair index.
type Matching struct {
	base
	payload content.Matching

	rightIndices []int
	matched      map[int]bool

	// Selection buffer: a left pair index and a displayed right position.
	left  int
	right int
	// locked while a mismatched pair waits to be cleared.
	locked bool
}

// NewMatching returns an unloaded matching engine.
func NewMatching(env *Env) *Matching {
	return &Matching{
		base:  newBase(content.KindMatching, env),
		left:  noSelection,
		right: noSelection,
	}
}

func (e *Matching) Load(ex content.Exercise) error {
	e.clearSelection()
	if err := e.bind(ex); err != nil {
		e.payload = content.Matching{}
		e.rightIndices = nil
		e.matched = nil
		return err
	}
	e.payload = ex.Payload.(content.Matching)
	e.matched = make(map[int]bool)
	e.shuffle()
	e.publish(EventLoaded, "")
	return nil
}

// Prompt returns the text shown above the columns.
func (e *Matching) Prompt() content.Prompt { return e.payload.Prompt }

// Pairs returns the number of pairs to match.
func (e *Matching) Pairs() int { return len(e.payload.LeftItems) }

// LeftItems returns the left column in display order, which is the original order.
func (e *Matching) LeftItems() []string { return e.payload.LeftItems }

// RightItems returns the right column and its pinyin in display order.
func (e *Matching) RightItems() (items, pinyin []string) {
	items = make([]string, len(e.rightIndices))
	pinyin = make([]string, len(e.rightIndices))
	for pos, idx := range e.rightIndices {
		items[pos] = e.payload.RightItems[idx]
		pinyin[pos] = e.payload.RightItemsPinyin[idx]
	}
	return items, pinyin
}

// RightIndices returns a copy of the display-to-pair permutation.
func (e *Matching) RightIndices() []int { return slices.Clone(e.rightIndices) }

// SetRightIndices replaces the display permutation. It must be a
// permutation of the pair indices; the selection buffer is cleared.
func (e *Matching) SetRightIndices(perm []int) error {
	if e.state == StateNotLoaded {
		return ErrNotLoaded
	}
	n := e.Pairs()
	if len(perm) != n {
		return fmt.Errorf("%w: permutation has %d entries, want %d", ErrOutOfRange, len(perm), n)
	}
	seen := make([]bool, n)
	for _, idx := range perm {
		if idx < 0 || idx >= n || seen[idx] {
			return fmt.Errorf("%w: %v is not a permutation of 0..%d", ErrOutOfRange, perm, n-1)
		}
		seen[idx] = true
	}
	e.rightIndices = slices.Clone(perm)
	e.clearSelection()
	return nil
}

// Matched returns the matched pair indices in ascending order.
func (e *Matching) Matched() []int {
	out := make([]int, 0, len(e.matched))
	for idx := range e.matched {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// IsLeftMatched reports whether the left item at i is already matched.
func (e *Matching) IsLeftMatched(i int) bool { return e.matched[i] }

// IsRightMatched reports whether the right item displayed at pos is already matched.
func (e *Matching) IsRightMatched(pos int) bool {
	if pos < 0 || pos >= len(e.rightIndices) {
		return false
	}
	return e.matched[e.rightIndices[pos]]
}

// Selection returns the buffered left index and right display position,
// each -1 when empty.
func (e *Matching) Selection() (left, right int) { return e.left, e.right }

// Locked reports whether a mismatch is waiting to be cleared.
func (e *Matching) Locked() bool { return e.locked }

// SelectLeft puts left item i in the buffer, replacing any left selection.
// Matched items and selections made while a mismatch is pending are ignored.
func (e *Matching) SelectLeft(i int) error {
	if err := e.acceptingInput(); err != nil {
		return err
	}
	if i < 0 || i >= e.Pairs() {
		return outOfRange("left item", i, e.Pairs())
	}
	if e.locked || e.matched[i] {
		return nil
	}
	e.left = i
	e.publish(EventSelectionChanged, fmt.Sprintf("left %d", i))
	e.checkMatch()
	return nil
}

// SelectRight puts the right item displayed at pos in the buffer,
// replacing any right selection.
func (e *Matching) SelectRight(pos int) error {
	if err := e.acceptingInput(); err != nil {
		return err
	}
	if pos < 0 || pos >= len(e.rightIndices) {
		return outOfRange("right item", pos, len(e.rightIndices))
	}
	if e.locked || e.matched[e.rightIndices[pos]] {
		return nil
	}
	e.right = pos
	e.publish(EventSelectionChanged, fmt.Sprintf("right %d", pos))
	e.checkMatch()
	return nil
}

func (e *Matching) checkMatch() {
	if e.left == noSelection || e.right == noSelection {
		return
	}
	pair := e.rightIndices[e.right]

	if e.left != pair {
		e.score(false)
		e.locked = true
		e.publish(EventPairMismatched, fmt.Sprintf("%d/%d", e.left, pair))
		e.after(e.env.Config.MismatchClearDelay, "clear-mismatch", func() {
			e.clearSelection()
			e.publish(EventSelectionCleared, "")
		})
		return
	}

	e.matched[pair] = true
	e.clearSelection()
	if len(e.matched) == e.Pairs() {
		e.answer(true)
	} else {
		e.score(true)
	}
	e.publish(EventPairMatched, fmt.Sprintf("%d", pair))
}

// Done reports whether every pair has been matched.
func (e *Matching) Done() bool {
	return e.state != StateNotLoaded && len(e.matched) == e.Pairs()
}

func (e *Matching) Reset() {
	e.clearSelection()
	if !e.rewind() {
		return
	}
	e.matched = make(map[int]bool)
	e.shuffle()
	e.publish(EventReset, "")
}

func (e *Matching) Unload() {
	e.clearSelection()
	e.release()
	e.payload = content.Matching{}
	e.rightIndices = nil
	e.matched = nil
}

func (e *Matching) clearSelection() {
	e.left = noSelection
	e.right = noSelection
	e.locked = false
}

func (e *Matching) shuffle() {
	e.rightIndices = e.env.Rand.Perm(e.Pairs())
}
