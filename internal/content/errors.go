package content

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned when a course file extension is not recognised.
var ErrUnknownFormat = errors.New("unknown content format")

// ValidationError reports malformed course content. Path locates the
// offending node, e.g. `course "zh-1" > lesson "greetings" > exercise "ex-3"`.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid content: %v", e.Err)
	}
	return fmt.Sprintf("invalid content at %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(path, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Err: fmt.Errorf(format, args...)}
}
