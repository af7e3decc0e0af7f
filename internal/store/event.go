package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Session event actions.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionExit     = "exit"
)

// sequenceCounter manages the global monotonic sequence number shared across
// all event tables and snapshots. Per-table auto-increment IDs can't order
// an answer against the session that contains it or the snapshot taken
// after it; the shared counter can.
//
// Uses raw SQL because the counter is a database-level atomic increment.
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo with the ent SQL builder.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(AnswerEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "lesson_id", "exercise_id", "kind", "correct", "detail").
		Values(seqNum, r.now().UTC(), data.SessionID, data.LessonID, data.ExerciseID, data.Kind, data.Correct, data.Detail).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(SessionEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "lesson_id", "action", "answered", "correct", "duration_secs").
		Values(seqNum, r.now().UTC(), data.SessionID, data.LessonID, data.Action, data.Answered, data.Correct, data.DurationSecs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	sel := builder().Select("sequence", "timestamp", "session_id", "lesson_id", "exercise_id", "kind", "correct", "detail").
		From(entsql.Table(AnswerEventsTable.Name)).
		OrderBy(entsql.Asc("sequence"))
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var events []AnswerEvent
	for rows.Next() {
		var e AnswerEvent
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.SessionID, &e.LessonID,
			&e.ExerciseID, &e.Kind, &e.Correct, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) KindAccuracy(ctx context.Context) ([]KindAccuracy, error) {
	query, args := builder().Select("kind", entsql.Count("*"), entsql.Sum("correct")).
		From(entsql.Table(AnswerEventsTable.Name)).
		GroupBy("kind").
		OrderBy("kind").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query kind accuracy: %w", err)
	}
	defer rows.Close()

	var stats []KindAccuracy
	for rows.Next() {
		var ka KindAccuracy
		if err := rows.Scan(&ka.Kind, &ka.Attempts, &ka.Correct); err != nil {
			return nil, fmt.Errorf("scan kind accuracy: %w", err)
		}
		if ka.Attempts > 0 {
			ka.Accuracy = float64(ka.Correct) / float64(ka.Attempts)
		}
		stats = append(stats, ka)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kind accuracy: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) CompletedSessions(ctx context.Context) (int, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(entsql.Table(SessionEventsTable.Name)).
		Where(entsql.EQ("action", ActionComplete)).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count completed sessions: %w", err)
	}
	return n, nil
}
