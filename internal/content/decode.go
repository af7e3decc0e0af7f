package content

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/lingo/internal/geometry"
)

// Format is the serialization of a course file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultStrokeWidth is used for stroke paths that omit a width.
const DefaultStrokeWidth = 8.0

// DefaultAnimationSpeed is used for stroke characters that omit one.
const DefaultAnimationSpeed = 1.0

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// LoadFile reads and validates a course list from a JSON or YAML file.
func LoadFile(path string) ([]Course, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open course file: %w", err)
	}
	defer f.Close()

	courses, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return courses, nil
}

// Decode reads a course list, validates it against the course schema and
// the content invariants, and converts it to the typed model.
func Decode(r io.Reader, format Format) ([]Course, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	switch format {
	case FormatJSON:
	case FormatYAML:
		raw, err = yamlToJSON(raw)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var wire []wireCourse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("decode courses: %w", err)}
	}
	return convertCourses(wire)
}

// yamlToJSON re-encodes a YAML document as JSON so both formats share one
// validation path.
func yamlToJSON(raw []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("invalid YAML: %w", err)}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("convert YAML: %w", err)}
	}
	return b, nil
}

// Wire shapes mirror the course JSON field names.

type wireCourse struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Lessons  []wireLesson `json:"lessons"`
}

type wireLesson struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Icon       string         `json:"icon"`
	Type       string         `json:"type"`
	RequiredXP int            `json:"requiredXP"`
	IsLocked   bool           `json:"isLocked"`
	Exercises  []wireExercise `json:"exercises"`
}

type wireExercise struct {
	ID               string                `json:"id"`
	Type             Kind                  `json:"type"`
	PromptTitle      string                `json:"promptTitle"`
	Pinyin           string                `json:"pinyin"`
	Characters       string                `json:"characters"`
	CorrectAnswer    []string              `json:"correctAnswer"`
	AvailableWords   []string              `json:"availableWords"`
	LeftItems        []string              `json:"leftItems"`
	RightItems       []string              `json:"rightItems"`
	RightItemsPinyin []string              `json:"rightItemsPinyin"`
	ImageOptions     []wireImageOption     `json:"imageOptions"`
	AudioURL         string                `json:"audioURL"`
	StrokeCharacters []wireStrokeCharacter `json:"strokeCharacters"`
}

type wireImageOption struct {
	ID              string `json:"id"`
	SystemImageName string `json:"systemImageName"`
	IsCorrect       bool   `json:"isCorrect"`
	EnglishText     string `json:"englishText"`
}

type wireStrokeCharacter struct {
	ID             string           `json:"id"`
	Character      string           `json:"character"`
	Pinyin         string           `json:"pinyin"`
	Meaning        string           `json:"meaning"`
	StrokeCount    int              `json:"strokeCount"`
	StrokeOrder    []wireStrokePath `json:"strokeOrder"`
	AnimationSpeed float64          `json:"animationSpeed"`
}

type wireStrokePath struct {
	Points []geometry.Point `json:"points"`
	Width  float64          `json:"width"`
}

func convertCourses(wire []wireCourse) ([]Course, error) {
	courses := make([]Course, 0, len(wire))
	seen := make(map[string]bool)
	lessonIDs := make(map[string]bool)

	for _, wc := range wire {
		path := fmt.Sprintf("course %q", wc.ID)
		if seen[wc.ID] {
			return nil, invalid(path, "duplicate course id")
		}
		seen[wc.ID] = true

		course := Course{ID: wc.ID, Title: wc.Title, Subtitle: wc.Subtitle}
		for _, wl := range wc.Lessons {
			lpath := fmt.Sprintf("%s > lesson %q", path, wl.ID)
			if lessonIDs[wl.ID] {
				return nil, invalid(lpath, "duplicate lesson id")
			}
			lessonIDs[wl.ID] = true

			lesson, err := convertLesson(lpath, wl)
			if err != nil {
				return nil, err
			}
			course.Lessons = append(course.Lessons, lesson)
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func convertLesson(path string, wl wireLesson) (*Lesson, error) {
	lesson := &Lesson{
		ID:         wl.ID,
		Title:      wl.Title,
		Icon:       wl.Icon,
		Type:       wl.Type,
		RequiredXP: wl.RequiredXP,
		Locked:     wl.IsLocked,
	}
	seen := make(map[string]bool)
	for _, we := range wl.Exercises {
		epath := fmt.Sprintf("%s > exercise %q", path, we.ID)
		if seen[we.ID] {
			return nil, invalid(epath, "duplicate exercise id")
		}
		seen[we.ID] = true

		payload, err := convertPayload(epath, we)
		if err != nil {
			return nil, err
		}
		lesson.Exercises = append(lesson.Exercises, Exercise{ID: we.ID, Payload: payload})
	}
	return lesson, nil
}

// payloadFields lists the kind-specific fields each exercise kind may carry.
// Prompt fields are shared by every kind.
var payloadFields = map[Kind][]string{
	KindTranslation:    {"correctAnswer", "availableWords"},
	KindListening:      {"correctAnswer", "availableWords", "audioURL"},
	KindMatching:       {"leftItems", "rightItems", "rightItemsPinyin"},
	KindImageSelection: {"imageOptions"},
	KindStrokeDrawing:  {"strokeCharacters"},
}

// presentFields returns the kind-specific fields set on we, in wire order.
func (we wireExercise) presentFields() []string {
	var fields []string
	add := func(name string, set bool) {
		if set {
			fields = append(fields, name)
		}
	}
	add("correctAnswer", we.CorrectAnswer != nil)
	add("availableWords", we.AvailableWords != nil)
	add("leftItems", we.LeftItems != nil)
	add("rightItems", we.RightItems != nil)
	add("rightItemsPinyin", we.RightItemsPinyin != nil)
	add("imageOptions", we.ImageOptions != nil)
	add("audioURL", we.AudioURL != "")
	add("strokeCharacters", we.StrokeCharacters != nil)
	return fields
}

// convertPayload builds the kind-specific payload and enforces the
// invariants the schema cannot express.
func convertPayload(path string, we wireExercise) (Payload, error) {
	prompt := Prompt{Title: we.PromptTitle, Pinyin: we.Pinyin, Characters: we.Characters}

	if allowed, ok := payloadFields[we.Type]; ok {
		for _, f := range we.presentFields() {
			if !slices.Contains(allowed, f) {
				return nil, invalid(path, "field %q does not belong to a %s exercise", f, we.Type)
			}
		}
	}

	switch we.Type {
	case KindTranslation, KindListening:
		if len(we.CorrectAnswer) == 0 {
			return nil, invalid(path, "%s exercise requires correctAnswer", we.Type)
		}
		if len(we.AvailableWords) == 0 {
			return nil, invalid(path, "%s exercise requires availableWords", we.Type)
		}
		if we.Type == KindTranslation {
			return Translation{
				Prompt:         prompt,
				CorrectAnswers: we.CorrectAnswer,
				WordBank:       we.AvailableWords,
			}, nil
		}
		if we.AudioURL == "" {
			return nil, invalid(path, "listening exercise requires audioURL")
		}
		return Listening{
			Prompt:         prompt,
			CorrectAnswers: we.CorrectAnswer,
			WordBank:       we.AvailableWords,
			AudioURL:       we.AudioURL,
		}, nil

	case KindMatching:
		n := len(we.LeftItems)
		if n == 0 {
			return nil, invalid(path, "matching exercise requires leftItems")
		}
		if len(we.RightItems) != n || len(we.RightItemsPinyin) != n {
			return nil, invalid(path, "matching columns differ in length: left=%d right=%d pinyin=%d",
				n, len(we.RightItems), len(we.RightItemsPinyin))
		}
		return Matching{
			Prompt:           prompt,
			LeftItems:        we.LeftItems,
			RightItems:       we.RightItems,
			RightItemsPinyin: we.RightItemsPinyin,
		}, nil

	case KindImageSelection:
		if len(we.ImageOptions) == 0 {
			return nil, invalid(path, "imageSelection exercise requires imageOptions")
		}
		options := make([]ImageOption, 0, len(we.ImageOptions))
		ids := make(map[string]bool)
		anyCorrect := false
		for _, o := range we.ImageOptions {
			if ids[o.ID] {
				return nil, invalid(path, "duplicate image option id %q", o.ID)
			}
			ids[o.ID] = true
			anyCorrect = anyCorrect || o.IsCorrect
			options = append(options, ImageOption{
				ID:        o.ID,
				ImageName: o.SystemImageName,
				IsCorrect: o.IsCorrect,
				Label:     o.EnglishText,
			})
		}
		if !anyCorrect {
			return nil, invalid(path, "imageSelection exercise has no correct option")
		}
		return ImageSelection{Prompt: prompt, Options: options}, nil

	case KindStrokeDrawing:
		if len(we.StrokeCharacters) == 0 {
			return nil, invalid(path, "strokeDrawing exercise requires strokeCharacters")
		}
		chars := make([]StrokeCharacter, 0, len(we.StrokeCharacters))
		for _, wc := range we.StrokeCharacters {
			if wc.StrokeCount != len(wc.StrokeOrder) {
				return nil, invalid(path, "character %q: strokeCount %d does not match %d strokes",
					wc.Character, wc.StrokeCount, len(wc.StrokeOrder))
			}
			ch := StrokeCharacter{
				ID:             wc.ID,
				Character:      wc.Character,
				Pinyin:         wc.Pinyin,
				Meaning:        wc.Meaning,
				StrokeCount:    wc.StrokeCount,
				AnimationSpeed: wc.AnimationSpeed,
			}
			if ch.AnimationSpeed == 0 {
				ch.AnimationSpeed = DefaultAnimationSpeed
			}
			for i, sp := range wc.StrokeOrder {
				if len(sp.Points) == 0 {
					return nil, invalid(path, "character %q: stroke %d has no points", wc.Character, i)
				}
				width := sp.Width
				if width == 0 {
					width = DefaultStrokeWidth
				}
				ch.StrokeOrder = append(ch.StrokeOrder, StrokePath{Points: sp.Points, Width: width})
			}
			chars = append(chars, ch)
		}
		return StrokeDrawing{Prompt: prompt, StrokeCharacters: chars}, nil

	default:
		return nil, invalid(path, "unknown exercise type %q", we.Type)
	}
}
