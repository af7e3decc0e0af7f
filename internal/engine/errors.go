package engine

import (
	"errors"
	"fmt"

	"github.com/abhisek/lingo/internal/content"
)

var (
	// ErrNotLoaded is returned by operations that need a bound exercise.
	ErrNotLoaded = errors.New("engine: no exercise loaded")

	// ErrAlreadyAnswered is returned when input arrives after the answer was
	// checked. Reset first to retry.
	ErrAlreadyAnswered = errors.New("engine: exercise already answered")

	// ErrEmptyAnswer is returned when an answer is submitted with nothing selected.
	ErrEmptyAnswer = errors.New("engine: nothing selected")

	// ErrOutOfRange is returned for positions outside the presented items.
	ErrOutOfRange = errors.New("engine: position out of range")

	// ErrUnknownOption is returned when an image option id is not offered.
	ErrUnknownOption = errors.New("engine: unknown option")

	// ErrUnknownKind is returned by New for kinds without an engine.
	ErrUnknownKind = errors.New("engine: unknown exercise kind")
)

// ContentMismatchError reports an exercise bound to an engine of another kind.
type ContentMismatchError struct {
	Want       content.Kind
	Got        content.Kind
	ExerciseID string
}

func (e *ContentMismatchError) Error() string {
	return fmt.Sprintf("exercise %q is %s, engine handles %s", e.ExerciseID, e.Got, e.Want)
}

func outOfRange(what string, pos, n int) error {
	return fmt.Errorf("%w: %s %d not in [0,%d)", ErrOutOfRange, what, pos, n)
}
