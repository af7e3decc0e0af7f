package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/lingo/internal/progress"
)

// ErrPersistenceUnavailable wraps every backend failure surfaced by a
// progress gateway.
var ErrPersistenceUnavailable = errors.New("persistence unavailable")

// DefaultSnapshotsKept is how many progress snapshots survive a save.
const DefaultSnapshotsKept = 10

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistenceUnavailable, op, err)
}

// ProgressGateway persists the progress record as snapshots: every save
// writes a new snapshot stamped with the global sequence and prunes old
// ones, and load reads the latest.
type ProgressGateway struct {
	snapshots SnapshotRepo
	seq       *sequenceCounter
	now       func() time.Time
	keep      int
}

var _ progress.Gateway = (*ProgressGateway)(nil)

// Load returns the most recently saved record, or nil if none exists.
func (g *ProgressGateway) Load(ctx context.Context) (*progress.Record, error) {
	snap, err := g.snapshots.Latest(ctx)
	if err != nil {
		return nil, unavailable("load progress", err)
	}
	if snap == nil {
		return nil, nil
	}
	rec := snap.Data.Progress
	return rec.Clone(), nil
}

// Save writes rec as a new snapshot.
func (g *ProgressGateway) Save(ctx context.Context, rec *progress.Record) error {
	seqNum, err := g.seq.Next(ctx)
	if err != nil {
		return unavailable("save progress", err)
	}
	err = g.snapshots.Save(ctx, &Snapshot{
		Sequence:  seqNum,
		Timestamp: g.now().UTC(),
		Data:      SnapshotData{Version: snapshotVersion, Progress: *rec.Clone()},
	})
	if err != nil {
		return unavailable("save progress", err)
	}
	if err := g.snapshots.Prune(ctx, g.keep); err != nil {
		return unavailable("prune progress", err)
	}
	return nil
}
