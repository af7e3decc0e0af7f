package session

import "github.com/abhisek/lingo/internal/content"

// KindResult tracks graded attempts for one exercise kind within a session.
type KindResult struct {
	Kind      content.Kind
	Attempted int
	Correct   int
	Accuracy  float64 // Correct / Attempted (computed)
}

// Record adds a graded attempt.
func (r *KindResult) Record(correct bool) {
	r.Attempted++
	if correct {
		r.Correct++
	}
	r.Accuracy = float64(r.Correct) / float64(r.Attempted)
}
