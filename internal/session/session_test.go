package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/content"
	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/schedule"
	"github.com/abhisek/lingo/internal/store"
)

var errBackend = errors.New("backend down")

// failingGateway fails every call.
type failingGateway struct{ saves int }

func (g *failingGateway) Load(context.Context) (*progress.Record, error) { return nil, errBackend }
func (g *failingGateway) Save(context.Context, *progress.Record) error {
	g.saves++
	return errBackend
}

type recorder struct {
	answers    []store.AnswerEventData
	answerCtxs []context.Context
	sessions   []store.SessionEventData
	err        error
}

func (r *recorder) AppendAnswerEvent(ctx context.Context, d store.AnswerEventData) error {
	r.answers = append(r.answers, d)
	r.answerCtxs = append(r.answerCtxs, ctx)
	return r.err
}

func (r *recorder) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	r.sessions = append(r.sessions, d)
	return r.err
}

func translationExercise(id string) content.Exercise {
	return content.Exercise{ID: id, Payload: content.Translation{
		CorrectAnswers: []string{"Hello", "Hi"},
		WordBank:       []string{"Hello", "Goodbye", "Hi", "Bye"},
	}}
}

func matchingExercise(id string) content.Exercise {
	return content.Exercise{ID: id, Payload: content.Matching{
		LeftItems:        []string{"Hello", "Goodbye"},
		RightItems:       []string{"你好", "再见"},
		RightItemsPinyin: []string{"nǐ hǎo", "zài jiàn"},
	}}
}

func testLesson() *content.Lesson {
	return &content.Lesson{ID: "greetings", Title: "Greetings", Exercises: []content.Exercise{
		translationExercise("tr-1"),
		matchingExercise("m-1"),
	}}
}

type fixture struct {
	ctl    *Controller
	clock  *schedule.Manual
	gw     *progress.MemoryGateway
	events *recorder
	now    time.Time
}

func newFixture(t *testing.T, seed *progress.Record) *fixture {
	t.Helper()
	f := &fixture{
		clock:  schedule.NewManual(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		gw:     &progress.MemoryGateway{},
		events: &recorder{},
		now:    time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC),
	}
	if seed != nil {
		require.NoError(t, f.gw.Save(context.Background(), seed))
		f.gw.Saves = 0
	}
	ctl, err := New(context.Background(), Options{
		Progress:  f.gw,
		Events:    f.events,
		Scheduler: f.clock,
		Rand:      rand.New(rand.NewPCG(7, 8)),
		Now:       func() time.Time { return f.now },
	})
	require.NoError(t, err)
	f.ctl = ctl
	return f
}

// playLesson answers every exercise of testLesson correctly.
func (f *fixture) playLesson(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.ctl.StartLesson(ctx, testLesson()))

	tr := f.ctl.Engine().(*engine.Translation)
	require.NoError(t, tr.PickWord("Hi"))
	require.NoError(t, tr.Submit())
	require.NoError(t, f.ctl.Continue(ctx))

	m := f.ctl.Engine().(*engine.Matching)
	require.NoError(t, m.SetRightIndices([]int{1, 0}))
	require.NoError(t, m.SelectLeft(0))
	require.NoError(t, m.SelectRight(1))
	require.NoError(t, m.SelectLeft(1))
	require.NoError(t, m.SelectRight(0))
	require.NoError(t, f.ctl.Continue(ctx))
}

func TestNewRequiresScheduler(t *testing.T) {
	if _, err := New(context.Background(), Options{}); !errors.Is(err, ErrNoScheduler) {
		t.Errorf("New without scheduler = %v, want ErrNoScheduler", err)
	}
}

func TestNewFallsBackToFreshRecord(t *testing.T) {
	clock := schedule.NewManual(time.Now())

	ctl, err := New(context.Background(), Options{Progress: &failingGateway{}, Scheduler: clock, DailyGoal: 50})
	require.NoError(t, err)
	rec := ctl.Progress()
	if rec.DailyXPGoal != 50 || rec.XPPoints != 0 || len(rec.CompletedLessons) != 0 {
		t.Errorf("fallback record = %+v, want fresh with goal 50", rec)
	}

	ctl, err = New(context.Background(), Options{Progress: &progress.MemoryGateway{}, Scheduler: clock})
	require.NoError(t, err)
	if ctl.Progress().DailyXPGoal != progress.DefaultDailyXPGoal {
		t.Errorf("DailyXPGoal = %d, want %d", ctl.Progress().DailyXPGoal, progress.DefaultDailyXPGoal)
	}
}

func TestPlayLessonEndToEnd(t *testing.T) {
	f := newFixture(t, nil)
	f.playLesson(t)

	if f.ctl.Active() {
		t.Fatal("lesson still active after the last exercise")
	}
	rec := f.ctl.Progress()
	if rec.XPPoints != 10 || rec.WordsLearned != 5 || rec.DailyXPEarned != 10 || rec.CurrentStreak != 1 {
		t.Errorf("record = %+v, want xp 10 words 5 daily 10 streak 1", rec)
	}
	if !rec.HasCompleted("greetings") {
		t.Error("lesson not marked completed")
	}
	if f.gw.Saves != 1 {
		t.Errorf("Saves = %d, want 1", f.gw.Saves)
	}

	sum := f.ctl.LastSummary()
	if sum == nil {
		t.Fatal("no summary")
	}
	// Translation answer, first pair, final pair.
	if sum.Answered != 3 || sum.Correct != 3 || sum.Accuracy != 1 {
		t.Errorf("summary answered=%d correct=%d accuracy=%v", sum.Answered, sum.Correct, sum.Accuracy)
	}
	if sum.HeartsLeft != 5 || !sum.Awarded {
		t.Errorf("summary hearts=%d awarded=%v", sum.HeartsLeft, sum.Awarded)
	}
	if len(sum.KindResults) != 2 || sum.KindResults[0].Kind != content.KindTranslation {
		t.Errorf("KindResults = %+v", sum.KindResults)
	}
}

func TestContinueResetsUnfinishedExercise(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.ctl.StartLesson(ctx, testLesson()))

	tr := f.ctl.Engine().(*engine.Translation)
	tr.PickWord("Bye")
	tr.Submit()
	require.NoError(t, f.ctl.Continue(ctx))

	st := f.ctl.State()
	if st.Index != 0 {
		t.Errorf("Index = %d, want 0 after a wrong answer", st.Index)
	}
	if tr.State() != engine.StateUnanswered || len(tr.Selected()) != 0 {
		t.Errorf("exercise not reset: state=%v selected=%v", tr.State(), tr.Selected())
	}
	if st.Score().Hearts != 4 {
		t.Errorf("Hearts = %d, want 4", st.Score().Hearts)
	}
}

func TestContinueBeforeAnswering(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.ctl.StartLesson(ctx, testLesson()))

	tr := f.ctl.Engine().(*engine.Translation)
	require.NoError(t, tr.PickWord("Hi"))
	if err := f.ctl.Continue(ctx); !errors.Is(err, ErrNotFinished) {
		t.Fatalf("Continue = %v, want ErrNotFinished", err)
	}
	if got := tr.Selected(); len(got) != 1 {
		t.Errorf("Selected = %v, want the pick kept", got)
	}
	if f.ctl.State().Index != 0 {
		t.Errorf("Index = %d, want 0", f.ctl.State().Index)
	}
}

func TestCompleteLessonIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	lesson := testLesson()

	if !f.ctl.CompleteLesson(ctx, lesson) {
		t.Error("first completion did not award")
	}
	if f.ctl.CompleteLesson(ctx, lesson) {
		t.Error("second completion awarded again")
	}
	rec := f.ctl.Progress()
	if rec.XPPoints != 10 || rec.WordsLearned != 5 {
		t.Errorf("xp=%d words=%d, want 10 and 5", rec.XPPoints, rec.WordsLearned)
	}
	if f.gw.Saves != 1 {
		t.Errorf("Saves = %d, want 1", f.gw.Saves)
	}

	require.NoError(t, f.ctl.StartLesson(ctx, lesson))
	f.ctl.CompleteLesson(ctx, lesson)
	if f.ctl.Active() {
		t.Error("repeat completion left the lesson active")
	}
	if sum := f.ctl.LastSummary(); sum == nil || sum.Awarded {
		t.Errorf("repeat summary = %+v, want Awarded false", sum)
	}
}

func TestCompleteLessonDayRollover(t *testing.T) {
	tests := []struct {
		name       string
		last       time.Time
		daily      int
		wantDaily  int
		wantStreak int
	}{
		{"yesterday", time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC), 25, 10, 4},
		{"earlier today", time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC), 20, 30, 3},
		{"never", time.Time{}, 0, 10, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := progress.New(0)
			seed.CurrentStreak = 3
			seed.XPPoints = 100
			seed.DailyXPEarned = tt.daily
			seed.LastActivity = tt.last
			f := newFixture(t, seed)

			f.ctl.CompleteLesson(context.Background(), testLesson())

			rec := f.ctl.Progress()
			if rec.DailyXPEarned != tt.wantDaily {
				t.Errorf("DailyXPEarned = %d, want %d", rec.DailyXPEarned, tt.wantDaily)
			}
			if rec.CurrentStreak != tt.wantStreak {
				t.Errorf("CurrentStreak = %d, want %d", rec.CurrentStreak, tt.wantStreak)
			}
			if rec.XPPoints != 110 {
				t.Errorf("XPPoints = %d, want 110", rec.XPPoints)
			}
		})
	}
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	gw := &failingGateway{}
	ctl, err := New(context.Background(), Options{Progress: gw, Scheduler: schedule.NewManual(time.Now())})
	require.NoError(t, err)

	if !ctl.CompleteLesson(context.Background(), testLesson()) {
		t.Error("completion did not award")
	}
	if gw.saves != 1 {
		t.Errorf("save attempts = %d, want 1", gw.saves)
	}
	if ctl.Progress().XPPoints != 10 {
		t.Errorf("XPPoints = %d, want 10 despite failed save", ctl.Progress().XPPoints)
	}
}

func TestExitLessonCancelsPendingTasks(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	lesson := &content.Lesson{ID: "match", Exercises: []content.Exercise{matchingExercise("m-1")}}
	require.NoError(t, f.ctl.StartLesson(ctx, lesson))

	m := f.ctl.Engine().(*engine.Matching)
	m.SetRightIndices([]int{0, 1})
	m.SelectLeft(0)
	m.SelectRight(1)
	if len(f.clock.Pending()) != 1 {
		t.Fatalf("pending = %v, want the mismatch clear", f.clock.Pending())
	}

	f.ctl.ExitLesson(ctx)
	if f.ctl.Active() || f.ctl.Engine() != nil {
		t.Error("lesson still active after exit")
	}
	if len(f.clock.Pending()) != 0 {
		t.Errorf("pending after exit = %v", f.clock.Pending())
	}
	if f.gw.Saves != 0 || f.ctl.Progress().XPPoints != 0 {
		t.Error("exit changed progress")
	}
	if got := f.events.sessions[len(f.events.sessions)-1]; got.Action != store.ActionExit || got.Answered != 1 {
		t.Errorf("last session event = %+v, want exit with 1 answered", got)
	}
}

func TestOutOfRangeIndexCompletesLesson(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.ctl.StartLesson(ctx, testLesson()))

	f.ctl.State().Index = 99
	require.NoError(t, f.ctl.CompleteCurrentExercise(ctx))

	if f.ctl.Active() || !f.ctl.Progress().HasCompleted("greetings") {
		t.Error("overflowing index did not complete the lesson")
	}
}

func TestNoActiveLesson(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	if err := f.ctl.Continue(ctx); !errors.Is(err, ErrNoActiveLesson) {
		t.Errorf("Continue = %v, want ErrNoActiveLesson", err)
	}
	if err := f.ctl.CompleteCurrentExercise(ctx); !errors.Is(err, ErrNoActiveLesson) {
		t.Errorf("CompleteCurrentExercise = %v, want ErrNoActiveLesson", err)
	}
	if err := f.ctl.StartLesson(ctx, &content.Lesson{ID: "empty"}); !errors.Is(err, ErrEmptyLesson) {
		t.Errorf("StartLesson(empty) = %v, want ErrEmptyLesson", err)
	}
	f.ctl.ExitLesson(ctx)
}

func TestStartLessonReplacesActiveLesson(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.ctl.StartLesson(ctx, testLesson()))
	first := f.ctl.State()
	first.Env.Score.RecordIncorrect()

	require.NoError(t, f.ctl.StartLesson(ctx, testLesson()))
	st := f.ctl.State()
	if st.SessionID == first.SessionID {
		t.Error("session id reused")
	}
	if st.Score().Hearts != 5 || st.Index != 0 {
		t.Errorf("new session hearts=%d index=%d, want 5 and 0", st.Score().Hearts, st.Index)
	}

	actions := make([]string, 0, len(f.events.sessions))
	for _, e := range f.events.sessions {
		actions = append(actions, e.Action)
	}
	want := []string{store.ActionStart, store.ActionExit, store.ActionStart}
	require.Equal(t, want, actions)
}

func TestAnswerEventsRecorded(t *testing.T) {
	f := newFixture(t, nil)
	f.events.err = errBackend
	f.playLesson(t)

	if len(f.events.answers) != 3 {
		t.Fatalf("answer events = %d, want 3", len(f.events.answers))
	}
	first := f.events.answers[0]
	if first.Kind != string(content.KindTranslation) || !first.Correct || first.ExerciseID != "tr-1" || first.LessonID != "greetings" {
		t.Errorf("first answer event = %+v", first)
	}
	if first.SessionID == "" {
		t.Error("answer event missing session id")
	}
	for _, a := range f.events.answers[1:] {
		if a.Kind != string(content.KindMatching) {
			t.Errorf("answer event kind = %s, want matching", a.Kind)
		}
	}
	last := f.events.sessions[len(f.events.sessions)-1]
	if last.Action != store.ActionComplete || last.Correct != 3 {
		t.Errorf("last session event = %+v", last)
	}
	if f.ctl.Progress().XPPoints != 10 {
		t.Error("recorder failure affected progress")
	}
}

func TestAnswerEventsUseLessonContext(t *testing.T) {
	f := newFixture(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, f.ctl.StartLesson(ctx, testLesson()))
	cancel()

	tr := f.ctl.Engine().(*engine.Translation)
	require.NoError(t, tr.PickWord("Goodbye"))
	require.NoError(t, tr.Submit())

	require.Len(t, f.events.answerCtxs, 1)
	if err := f.events.answerCtxs[0].Err(); !errors.Is(err, context.Canceled) {
		t.Errorf("answer event context err = %v, want context.Canceled", err)
	}
}

func TestExplicitRewards(t *testing.T) {
	ctl, err := New(context.Background(), Options{
		Progress:  &progress.MemoryGateway{},
		Scheduler: schedule.NewManual(time.Now()),
		Rewards:   progress.Rewards{XP: 25},
	})
	require.NoError(t, err)

	require.True(t, ctl.CompleteLesson(context.Background(), testLesson()))
	rec := ctl.Progress()
	if rec.XPPoints != 25 || rec.WordsLearned != 0 {
		t.Errorf("after completion XP=%d words=%d, want 25 and 0", rec.XPPoints, rec.WordsLearned)
	}
}

func TestResetProgress(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.ctl.CompleteLesson(ctx, testLesson())

	require.NoError(t, f.ctl.ResetProgress(ctx))
	stored, err := f.gw.Load(ctx)
	require.NoError(t, err)
	if stored.XPPoints != 0 || len(stored.CompletedLessons) != 0 {
		t.Errorf("stored after reset = %+v", stored)
	}
	if f.ctl.Progress().HasCompleted("greetings") {
		t.Error("reset kept completed lessons")
	}
}
