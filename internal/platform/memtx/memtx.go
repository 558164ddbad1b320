// Package memtx gives the in-memory adapters the same all-or-nothing behaviour
// the PostgreSQL adapters get from a database transaction. Mutations made inside
// WithinTransaction register undo actions that run, newest first, when the
// callback fails.
package memtx

import (
	"context"
	"sync"
)

type journalKey struct{}

type journal struct {
	mu   sync.Mutex
	undo []func()
}

func (j *journal) push(fn func()) {
	j.mu.Lock()
	j.undo = append(j.undo, fn)
	j.mu.Unlock()
}

func (j *journal) rollback() {
	j.mu.Lock()
	undo := j.undo
	j.undo = nil
	j.mu.Unlock()
	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
}

// Transactor serialises units of work over the in-memory stores.
type Transactor struct {
	mu sync.Mutex
}

// NewTransactor constructs an in-memory transactor.
func NewTransactor() *Transactor {
	return &Transactor{}
}

// WithinTransaction runs fn as one unit. Nested calls join the outer unit.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		return fn(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	j := &journal{}
	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		j.rollback()
		return err
	}
	return nil
}

// OnRollback registers a compensating action for the unit bound to ctx.
// Outside a unit of work the mutation is final and undo is dropped.
func OnRollback(ctx context.Context, undo func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok && undo != nil {
		j.push(undo)
	}
}

// InTransaction reports whether ctx carries an active unit of work.
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(journalKey{}).(*journal)
	return ok
}
