package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	courses, err := Builtin()
	require.NoError(t, err)
	require.Len(t, courses, 1)

	kinds := map[Kind]int{}
	for _, l := range courses[0].Lessons {
		for _, ex := range l.Exercises {
			kinds[ex.Kind()]++
		}
	}
	for _, k := range AllKinds() {
		assert.Positive(t, kinds[k], "builtin course has no %s exercise", k)
	}

	greetings := FindLesson(courses, "greetings")
	require.NotNil(t, greetings)
	tr, ok := greetings.Exercises[0].Payload.(Translation)
	require.True(t, ok, "first greetings exercise should be a translation")
	assert.Equal(t, []string{"Hello", "Hi"}, tr.CorrectAnswers)
}

func TestBuiltin_StrokeCharacters(t *testing.T) {
	courses, err := Builtin()
	require.NoError(t, err)

	for _, glyph := range []string{"一", "二", "三", "口", "日", "木", "山"} {
		ch := FindCharacter(courses, glyph)
		require.NotNil(t, ch, "missing character %s", glyph)
		assert.Equal(t, ch.StrokeCount, len(ch.StrokeOrder))
		for _, sp := range ch.StrokeOrder {
			assert.Equal(t, DefaultStrokeWidth, sp.Width)
		}
	}

	shan := FindCharacter(courses, "山")
	assert.Equal(t, 1.2, shan.AnimationSpeed)
	assert.Nil(t, FindCharacter(courses, "龍"))
}

const validCourse = `[{"id":"c","title":"C","lessons":[{"id":"l","title":"L","exercises":[%s]}]}]`

func decodeExercise(t *testing.T, exercise string) ([]Course, error) {
	t.Helper()
	doc := strings.Replace(validCourse, "%s", exercise, 1)
	return Decode(strings.NewReader(doc), FormatJSON)
}

func TestDecode_Invariants(t *testing.T) {
	tests := []struct {
		name     string
		exercise string
		wantErr  string
	}{
		{
			name:     "matching length mismatch",
			exercise: `{"id":"e","type":"matching","leftItems":["a","b"],"rightItems":["x"],"rightItemsPinyin":["x","y"]}`,
			wantErr:  "matching columns differ",
		},
		{
			name:     "stroke count mismatch",
			exercise: `{"id":"e","type":"strokeDrawing","strokeCharacters":[{"character":"一","strokeCount":2,"strokeOrder":[{"points":[{"x":1,"y":1}]}]}]}`,
			wantErr:  "strokeCount 2 does not match 1 strokes",
		},
		{
			name:     "translation without answers",
			exercise: `{"id":"e","type":"translation","availableWords":["a"]}`,
			wantErr:  "requires correctAnswer",
		},
		{
			name:     "listening without audio",
			exercise: `{"id":"e","type":"listening","correctAnswer":["a"],"availableWords":["a"]}`,
			wantErr:  "requires audioURL",
		},
		{
			name:     "image selection without correct option",
			exercise: `{"id":"e","type":"imageSelection","imageOptions":[{"id":"a","isCorrect":false,"englishText":"A"}]}`,
			wantErr:  "no correct option",
		},
		{
			name:     "duplicate image option",
			exercise: `{"id":"e","type":"imageSelection","imageOptions":[{"id":"a","isCorrect":true,"englishText":"A"},{"id":"a","isCorrect":false,"englishText":"B"}]}`,
			wantErr:  "duplicate image option",
		},
		{
			name:     "foreign payload field",
			exercise: `{"id":"e","type":"translation","correctAnswer":["Hi"],"availableWords":["Hi"],"leftItems":["a","b"],"rightItems":["x"]}`,
			wantErr:  `field "leftItems" does not belong to a translation exercise`,
		},
		{
			name:     "audio on a translation",
			exercise: `{"id":"e","type":"translation","correctAnswer":["Hi"],"availableWords":["Hi"],"audioURL":"clip.mp3"}`,
			wantErr:  `field "audioURL" does not belong`,
		},
		{
			name:     "stroke characters on a matching exercise",
			exercise: `{"id":"e","type":"matching","leftItems":["a"],"rightItems":["x"],"rightItemsPinyin":["x"],"strokeCharacters":[]}`,
			wantErr:  `field "strokeCharacters" does not belong to a matching exercise`,
		},
		{
			name:     "unknown kind rejected by schema",
			exercise: `{"id":"e","type":"speaking"}`,
			wantErr:  "schema validation failed",
		},
		{
			name:     "missing id rejected by schema",
			exercise: `{"type":"translation","correctAnswer":["a"],"availableWords":["a"]}`,
			wantErr:  "schema validation failed",
		},
		{
			name:     "unknown field rejected by schema",
			exercise: `{"id":"e","type":"translation","correctAnswer":["a"],"availableWords":["a"],"colour":"red"}`,
			wantErr:  "schema validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeExercise(t, tt.exercise)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want *ValidationError, got %T", err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecode_ErrorPath(t *testing.T) {
	_, err := decodeExercise(t, `{"id":"bad","type":"matching","leftItems":["a"],"rightItems":[],"rightItemsPinyin":[]}`)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, `course "c" > lesson "l" > exercise "bad"`, verr.Path)
}

func TestDecode_DuplicateExercise(t *testing.T) {
	ex := `{"id":"e","type":"translation","correctAnswer":["a"],"availableWords":["a"]}`
	_, err := decodeExercise(t, ex+","+ex)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate exercise id")
}

func TestDecode_YAML(t *testing.T) {
	doc := `
- id: c
  title: C
  lessons:
    - id: l
      title: L
      exercises:
        - id: e
          type: matching
          leftItems: [Dog, Cat]
          rightItems: [狗, 猫]
          rightItemsPinyin: [gǒu, māo]
        - id: s
          type: strokeDrawing
          strokeCharacters:
            - character: 一
              strokeCount: 1
              strokeOrder:
                - points: [{x: 75, y: 150}, {x: 225, y: 150}]
                  width: 12
`
	courses, err := Decode(strings.NewReader(doc), FormatYAML)
	require.NoError(t, err)

	lesson := FindLesson(courses, "l")
	require.NotNil(t, lesson)
	require.Len(t, lesson.Exercises, 2)

	m, ok := lesson.Exercises[0].Payload.(Matching)
	require.True(t, ok)
	assert.Equal(t, []string{"狗", "猫"}, m.RightItems)

	sd, ok := lesson.Exercises[1].Payload.(StrokeDrawing)
	require.True(t, ok)
	assert.Equal(t, 12.0, sd.StrokeCharacters[0].StrokeOrder[0].Width)
	assert.Equal(t, DefaultAnimationSpeed, sd.StrokeCharacters[0].AnimationSpeed)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{not json`), FormatJSON)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	_, err = Decode(strings.NewReader(`[]`), Format("toml"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "course.json")
	doc := strings.Replace(validCourse, "%s", `{"id":"e","type":"translation","correctAnswer":["a"],"availableWords":["a"]}`, 1)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	courses, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "c", courses[0].ID)

	_, err = LoadFile(filepath.Join(dir, "course.txt"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestLessonIs(t *testing.T) {
	a := &Lesson{ID: "x", Title: "one"}
	b := &Lesson{ID: "x", Title: "two"}
	c := &Lesson{ID: "y"}

	assert.True(t, a.Is(b))
	assert.False(t, a.Is(c))
	assert.False(t, a.Is(nil))
}

func TestKind(t *testing.T) {
	assert.True(t, KindStrokeDrawing.Valid())
	assert.False(t, Kind("speaking").Valid())
	assert.Equal(t, "Image selection", KindImageSelection.DisplayName())
	assert.Equal(t, Kind(""), Exercise{}.Kind())
}
