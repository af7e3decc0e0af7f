package content

import (
	"bytes"
	_ "embed"
	"fmt"
)

//go:embed data/courses.json
var builtinCourses []byte

// Builtin returns the demo course list compiled into the binary.
func Builtin() ([]Course, error) {
	courses, err := Decode(bytes.NewReader(builtinCourses), FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("builtin courses: %w", err)
	}
	return courses, nil
}
