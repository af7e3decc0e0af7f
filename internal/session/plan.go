package session

import (
	"github.com/abhisek/lingo/internal/content"
	"github.com/abhisek/lingo/internal/progress"
)

// NextLesson picks the lesson to play: the first unlocked lesson the
// learner has not completed, in course order. When every unlocked lesson
// is complete it returns the first unlocked lesson. It returns nil if no
// lesson is playable.
func NextLesson(courses []content.Course, rec *progress.Record) *content.Lesson {
	var first *content.Lesson
	for _, c := range courses {
		for _, l := range c.Lessons {
			if l.Locked || len(l.Exercises) == 0 {
				continue
			}
			if first == nil {
				first = l
			}
			if rec == nil || !rec.HasCompleted(l.ID) {
				return l
			}
		}
	}
	return first
}
