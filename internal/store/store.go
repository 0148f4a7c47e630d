// Package store defines the persistence port of the tracker: the whole
// state is loaded and rewritten as one document around every mutation.
// Handle serializes those load-mutate-save cycles behind a mutex so
// concurrent commands cannot lose each other's updates.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"financeiro/internal/core"
)

// ErrWrite marks a failed durable write. It is the only storage condition
// that aborts an operation instead of turning into a re-prompt.
var ErrWrite = errors.New("storage write failed")

// Store loads and saves the whole document. Load returns an empty state
// when nothing was persisted yet; it never fails on "not found".
type Store interface {
	Load(ctx context.Context) (core.State, error)
	Save(ctx context.Context, st core.State) error
}

// Handle wraps a Store with single-writer semantics. All mutations of a
// deployment go through one Handle.
type Handle struct {
	mu      sync.Mutex
	backend Store
}

func NewHandle(backend Store) *Handle {
	return &Handle{backend: backend}
}

// Update runs fn on the freshly loaded state and persists the result.
// When fn fails nothing is saved and its error is returned as-is, so
// validation errors keep their identity for the chat layer.
func (h *Handle) Update(ctx context.Context, fn func(*core.State) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	st, err := h.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if err := fn(&st); err != nil {
		return err
	}
	if err := h.backend.Save(ctx, st); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// View runs fn on the freshly loaded state without persisting anything.
func (h *Handle) View(ctx context.Context, fn func(core.State) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	st, err := h.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	return fn(st)
}
