package engine

import (
	"fmt"

	"github.com/abhisek/lingo/internal/content"
)

// ImageSelection asks for exactly one picture.
type ImageSelection struct {
	base
	payload  content.ImageSelection
	selected string
}

// NewImageSelection returns an unloaded image-selection engine.
func NewImageSelection(env *Env) *ImageSelection {
	return &ImageSelection{base: newBase(content.KindImageSelection, env)}
}

func (e *ImageSelection) Load(ex content.Exercise) error {
	e.selected = ""
	if err := e.bind(ex); err != nil {
		e.payload = content.ImageSelection{}
		return err
	}
	e.payload = ex.Payload.(content.ImageSelection)
	e.publish(EventLoaded, "")
	return nil
}

// Prompt returns the text shown above the pictures.
func (e *ImageSelection) Prompt() content.Prompt { return e.payload.Prompt }

// Options returns the pictures on offer.
func (e *ImageSelection) Options() []content.ImageOption { return e.payload.Options }

// Select makes id the selection, replacing any earlier choice.
func (e *ImageSelection) Select(id string) error {
	if err := e.acceptingInput(); err != nil {
		return err
	}
	if _, ok := e.option(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, id)
	}
	e.selected = id
	e.publish(EventSelectionChanged, id)
	return nil
}

// SelectAt selects the option at display position pos.
func (e *ImageSelection) SelectAt(pos int) error {
	if pos < 0 || pos >= len(e.payload.Options) {
		if e.state == StateNotLoaded {
			return ErrNotLoaded
		}
		return outOfRange("option", pos, len(e.payload.Options))
	}
	return e.Select(e.payload.Options[pos].ID)
}

// Selected returns the selected option id, or "".
func (e *ImageSelection) Selected() string { return e.selected }

// Submit checks the selected option.
func (e *ImageSelection) Submit() error {
	if err := e.acceptingInput(); err != nil {
		return err
	}
	opt, ok := e.option(e.selected)
	if !ok {
		return ErrEmptyAnswer
	}
	e.answer(opt.IsCorrect)
	return nil
}

func (e *ImageSelection) Done() bool { return e.state == StateAnswered && e.correct }

func (e *ImageSelection) Reset() {
	e.selected = ""
	if !e.rewind() {
		return
	}
	e.publish(EventReset, "")
}

func (e *ImageSelection) Unload() {
	e.selected = ""
	e.release()
	e.payload = content.ImageSelection{}
}

func (e *ImageSelection) option(id string) (content.ImageOption, bool) {
	if id == "" {
		return content.ImageOption{}, false
	}
	for _, o := range e.payload.Options {
		if o.ID == id {
			return o, true
		}
	}
	return content.ImageOption{}, false
}
