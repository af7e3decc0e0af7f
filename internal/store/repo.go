package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// AnswerEventData captures one graded attempt within a lesson session.
type AnswerEventData struct {
	SessionID  string
	LessonID   string
	ExerciseID string
	Kind       string
	Correct    bool
	// Detail names the engine event that produced the attempt.
	Detail string
}

// AnswerEvent is a stored AnswerEventData.
type AnswerEvent struct {
	AnswerEventData
	Sequence  int64
	Timestamp time.Time
}

// SessionEventData captures a lesson session lifecycle transition.
type SessionEventData struct {
	SessionID    string
	LessonID     string
	Action       string // "start", "complete", "exit"
	Answered     int
	Correct      int
	DurationSecs int
}

// KindAccuracy aggregates answer events for one exercise kind.
type KindAccuracy struct {
	Kind     string
	Attempts int
	Correct  int
	Accuracy float64
}

// EventRepo provides append and query access to session history.
type EventRepo interface {
	// AppendAnswerEvent records a graded attempt.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records a session start, completion or exit.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QueryAnswerEvents returns answer events in sequence order.
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error)

	// KindAccuracy returns per-kind accuracy over all answer events,
	// ordered by kind.
	KindAccuracy(ctx context.Context) ([]KindAccuracy, error)

	// CompletedSessions returns the number of completed lesson sessions.
	CompletedSessions(ctx context.Context) (int, error)
}
