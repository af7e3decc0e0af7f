package engine

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/lingo/internal/content"
	"github.com/abhisek/lingo/internal/geometry"
	"github.com/abhisek/lingo/internal/schedule"
)

type harness struct {
	env    *Env
	clock  *schedule.Manual
	events []Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := schedule.NewManual(time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC))
	h := &harness{clock: clock}
	h.env = NewEnv(DefaultConfig(), clock, rand.New(rand.NewPCG(1, 2)), nil)
	h.env.Bus.Subscribe(func(e Event) { h.events = append(h.events, e) })
	return h
}

func (h *harness) count(t EventType) int {
	n := 0
	for _, e := range h.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func translationExercise() content.Exercise {
	return content.Exercise{ID: "tr-1", Payload: content.Translation{
		Prompt:         content.Prompt{Title: "Translate", Characters: "你好"},
		CorrectAnswers: []string{"Hello", "Hi"},
		WordBank:       []string{"Hello", "Goodbye", "Hi", "Bye", "Thanks"},
	}}
}

func sentenceExercise() content.Exercise {
	return content.Exercise{ID: "tr-2", Payload: content.Translation{
		CorrectAnswers: []string{"I have a dog"},
		WordBank:       []string{"I", "have", "a", "dog", "cat", "you"},
	}}
}

func listeningExercise() content.Exercise {
	return content.Exercise{ID: "ls-1", Payload: content.Listening{
		CorrectAnswers: []string{"Goodbye", "See you again"},
		WordBank:       []string{"See", "you", "again", "Goodbye", "Hello"},
		AudioURL:       "mock",
	}}
}

func imageExercise() content.Exercise {
	return content.Exercise{ID: "img-1", Payload: content.ImageSelection{
		Prompt: content.Prompt{Characters: "狗"},
		Options: []content.ImageOption{
			{ID: "dog", Label: "Dog", IsCorrect: true},
			{ID: "cat", Label: "Cat"},
			{ID: "bird", Label: "Bird"},
		},
	}}
}

func matchingExercise(n int) content.Exercise {
	left := []string{"Hello", "Goodbye", "Thanks", "Sorry", "Dog"}[:n]
	right := []string{"你好", "再见", "谢谢", "对不起", "狗"}[:n]
	pinyin := []string{"nǐ hǎo", "zài jiàn", "xiè xie", "duì bu qǐ", "gǒu"}[:n]
	return content.Exercise{ID: "match-1", Payload: content.Matching{
		LeftItems: left, RightItems: right, RightItemsPinyin: pinyin,
	}}
}

// horizontal returns a stroke from (x1,y) to (x2,y).
func horizontal(x1, x2, y float64) content.StrokePath {
	return content.StrokePath{Points: []geometry.Point{geometry.Pt(x1, y), geometry.Pt(x2, y)}, Width: 8}
}

func vertical(x, y1, y2 float64) content.StrokePath {
	return content.StrokePath{Points: []geometry.Point{geometry.Pt(x, y1), geometry.Pt(x, y2)}, Width: 8}
}

func strokeExercise() content.Exercise {
	return content.Exercise{ID: "write-1", Payload: content.StrokeDrawing{
		StrokeCharacters: []content.StrokeCharacter{
			{Character: "一", StrokeCount: 1, AnimationSpeed: 1, StrokeOrder: []content.StrokePath{
				horizontal(75, 225, 150),
			}},
			{Character: "二", StrokeCount: 2, AnimationSpeed: 1.2, StrokeOrder: []content.StrokePath{
				horizontal(100, 200, 110),
				horizontal(75, 225, 190),
			}},
		},
	}}
}

// gesture samples n points along a target path's endpoints.
func gesture(p content.StrokePath, n int) []geometry.Point {
	return geometry.Interpolate(p.Points[0], p.Points[len(p.Points)-1], n)
}

// wrongGesture runs perpendicular to the target, far from its endpoints.
func wrongGesture(p content.StrokePath) []geometry.Point {
	a := p.Points[0]
	return geometry.Interpolate(geometry.Pt(a.X, 0), geometry.Pt(a.X, 300), 6)
}
