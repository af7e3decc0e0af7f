package engine

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// WordBank splits a fixed set of words into an ordered selection and the
// words still available to pick.
type WordBank struct {
	words     []string
	available []string
	selected  []string
}

// NewWordBank returns a bank with every word available in the given order.
func NewWordBank(words []string) *WordBank {
	return &WordBank{
		words:     slices.Clone(words),
		available: slices.Clone(words),
	}
}

// Pick moves the available word at pos to the end of the selection.
func (b *WordBank) Pick(pos int) (string, error) {
	if pos < 0 || pos >= len(b.available) {
		return "", outOfRange("word", pos, len(b.available))
	}
	w := b.available[pos]
	b.available = slices.Delete(b.available, pos, pos+1)
	b.selected = append(b.selected, w)
	return w, nil
}

// PickWord picks the first available occurrence of word.
func (b *WordBank) PickWord(word string) error {
	i := slices.Index(b.available, word)
	if i < 0 {
		return fmt.Errorf("%w: word %q not available", ErrOutOfRange, word)
	}
	_, err := b.Pick(i)
	return err
}

// Unpick returns the selected word at pos to the end of the available words.
func (b *WordBank) Unpick(pos int) (string, error) {
	if pos < 0 || pos >= len(b.selected) {
		return "", outOfRange("selected word", pos, len(b.selected))
	}
	w := b.selected[pos]
	b.selected = slices.Delete(b.selected, pos, pos+1)
	b.available = append(b.available, w)
	return w, nil
}

// Selected returns a copy of the selection in pick order.
func (b *WordBank) Selected() []string { return slices.Clone(b.selected) }

// Available returns a copy of the unpicked words in display order.
func (b *WordBank) Available() []string { return slices.Clone(b.available) }

// Reset clears the selection and reshuffles every word with rng. A nil rng
// restores the original order.
func (b *WordBank) Reset(rng *rand.Rand) {
	b.selected = nil
	b.available = slices.Clone(b.words)
	if rng != nil {
		rng.Shuffle(len(b.available), func(i, j int) {
			b.available[i], b.available[j] = b.available[j], b.available[i]
		})
	}
}
