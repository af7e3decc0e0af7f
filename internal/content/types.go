package content

import "github.com/abhisek/lingo/internal/geometry"

// Kind identifies the exercise variant.
type Kind string

const (
	KindTranslation    Kind = "translation"
	KindMatching       Kind = "matching"
	KindImageSelection Kind = "imageSelection"
	KindListening      Kind = "listening"
	KindStrokeDrawing  Kind = "strokeDrawing"
)

// AllKinds returns every exercise kind in display order.
func AllKinds() []Kind {
	return []Kind{KindTranslation, KindMatching, KindImageSelection, KindListening, KindStrokeDrawing}
}

// Valid reports whether k is a known exercise kind.
func (k Kind) Valid() bool {
	for _, known := range AllKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindTranslation:
		return "Translation"
	case KindMatching:
		return "Matching"
	case KindImageSelection:
		return "Image selection"
	case KindListening:
		return "Listening"
	case KindStrokeDrawing:
		return "Stroke drawing"
	default:
		return string(k)
	}
}

// Course is an ordered collection of lessons. Immutable after load.
type Course struct {
	ID       string
	Title    string
	Subtitle string
	Lessons  []*Lesson
}

// Lesson is an ordered sequence of exercises. Two lessons are the same
// lesson when their IDs match.
type Lesson struct {
	ID         string
	Title      string
	Icon       string
	Type       string
	RequiredXP int // unlock threshold, informational only
	Locked     bool
	Exercises  []Exercise
}

// Is reports whether l and other identify the same lesson.
func (l *Lesson) Is(other *Lesson) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.ID == other.ID
}

// Exercise is a single task inside a lesson. The payload carries only the
// fields that belong to its kind.
type Exercise struct {
	ID      string
	Payload Payload
}

// Kind returns the exercise kind derived from its payload.
func (e Exercise) Kind() Kind {
	if e.Payload == nil {
		return ""
	}
	return e.Payload.Kind()
}

// Payload is implemented by exactly one struct per exercise kind.
type Payload interface {
	Kind() Kind
	payload()
}

// Prompt is the text shown above an exercise.
type Prompt struct {
	Title      string
	Pinyin     string
	Characters string
}

// Translation asks the learner to build a sentence from a word bank.
type Translation struct {
	Prompt
	CorrectAnswers []string
	WordBank       []string
}

// Listening asks the learner to transcribe an audio clip using a word bank
// or typed text.
type Listening struct {
	Prompt
	CorrectAnswers []string
	WordBank       []string
	AudioURL       string
}

// Matching pairs LeftItems[i] with RightItems[i] (annotated by
// RightItemsPinyin[i]).
type Matching struct {
	Prompt
	LeftItems        []string
	RightItems       []string
	RightItemsPinyin []string
}

// ImageSelection asks the learner to pick the picture matching the prompt.
type ImageSelection struct {
	Prompt
	Options []ImageOption
}

// ImageOption is one selectable picture.
type ImageOption struct {
	ID        string
	ImageName string
	IsCorrect bool
	Label     string
}

// StrokeDrawing asks the learner to trace characters stroke by stroke.
type StrokeDrawing struct {
	Prompt
	StrokeCharacters []StrokeCharacter
}

// StrokeCharacter is a glyph together with its expected stroke order.
type StrokeCharacter struct {
	ID          string
	Character   string
	Pinyin      string
	Meaning     string
	StrokeCount int
	StrokeOrder []StrokePath
	// AnimationSpeed is the stroke-order animation length in seconds.
	AnimationSpeed float64
}

// StrokePath is one target stroke on the drawing canvas.
type StrokePath struct {
	Points []geometry.Point
	Width  float64
}

func (Translation) Kind() Kind    { return KindTranslation }
func (Listening) Kind() Kind      { return KindListening }
func (Matching) Kind() Kind       { return KindMatching }
func (ImageSelection) Kind() Kind { return KindImageSelection }
func (StrokeDrawing) Kind() Kind  { return KindStrokeDrawing }

func (Translation) payload()    {}
func (Listening) payload()      {}
func (Matching) payload()       {}
func (ImageSelection) payload() {}
func (StrokeDrawing) payload()  {}

// FindLesson returns the lesson with the given ID across all courses, or nil.
func FindLesson(courses []Course, id string) *Lesson {
	for _, c := range courses {
		for _, l := range c.Lessons {
			if l.ID == id {
				return l
			}
		}
	}
	return nil
}

// FindCharacter returns the first stroke character whose glyph matches, or nil.
func FindCharacter(courses []Course, glyph string) *StrokeCharacter {
	for _, c := range courses {
		for _, l := range c.Lessons {
			for _, ex := range l.Exercises {
				sd, ok := ex.Payload.(StrokeDrawing)
				if !ok {
					continue
				}
				for i := range sd.StrokeCharacters {
					if sd.StrokeCharacters[i].Character == glyph {
						ch := sd.StrokeCharacters[i]
						return &ch
					}
				}
			}
		}
	}
	return nil
}
