package progress

import (
	"context"
	"sync"
)

// Gateway loads and saves the learner's progress record.
type Gateway interface {
	// Load returns the stored record, or nil if none has been saved.
	Load(ctx context.Context) (*Record, error)

	// Save replaces the stored record.
	Save(ctx context.Context, rec *Record) error
}

// MemoryGateway keeps the record in process memory.
type MemoryGateway struct {
	mu  sync.Mutex
	rec *Record

	// Saves counts successful Save calls.
	Saves int
}

func (g *MemoryGateway) Load(_ context.Context) (*Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.rec == nil {
		return nil, nil
	}
	return g.rec.Clone(), nil
}

func (g *MemoryGateway) Save(_ context.Context, rec *Record) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rec = rec.Clone()
	g.Saves++
	return nil
}
