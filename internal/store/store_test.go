package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"financeiro/internal/core"
)

func TestHandleUpdatePersists(t *testing.T) {
	h := NewHandle(NewMemoryStore())
	ctx := context.Background()

	err := h.Update(ctx, func(st *core.State) error {
		st.Profile = core.Solo
		st.Participants = []string{"Ana"}
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	var got core.State
	if err := h.View(ctx, func(st core.State) error { got = st; return nil }); err != nil {
		t.Fatalf("view: %v", err)
	}
	if got.Profile != core.Solo || !got.HasParticipant("Ana") {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestHandleUpdateErrorSkipsSave(t *testing.T) {
	h := NewHandle(NewMemoryStore())
	ctx := context.Background()

	wantErr := errors.New("nope")
	err := h.Update(ctx, func(st *core.State) error {
		st.Profile = core.Solo
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fn error, got %v", err)
	}

	if err := h.View(ctx, func(st core.State) error {
		if st.IsOnboarded() {
			t.Fatal("failed update must not persist")
		}
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
}

type failingSaveStore struct{}

func (failingSaveStore) Load(context.Context) (core.State, error) { return core.State{}, nil }
func (failingSaveStore) Save(context.Context, core.State) error {
	return errors.New("disk full")
}

func TestHandleUpdateWrapsWriteFailure(t *testing.T) {
	h := NewHandle(failingSaveStore{})
	err := h.Update(context.Background(), func(*core.State) error { return nil })
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
}

// Concurrent updates through one handle must all survive; this is the
// lost-update scenario the single-writer wrapper exists for.
func TestHandleSerializesUpdates(t *testing.T) {
	h := NewHandle(NewMemoryStore())
	ctx := context.Background()

	if err := h.Update(ctx, func(st *core.State) error {
		st.Profile = core.Solo
		st.Participants = []string{"Ana"}
		return nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	const n = 20
	var wg sync.WaitGroup
	day := core.NewDate(2025, 6, 10)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.Update(ctx, func(st *core.State) error {
				st.Expenses = ensureDay(st.Expenses, day)
				st.Expenses[day]["Ana"] = append(st.Expenses[day]["Ana"],
					core.Entry{Category: "Café", Amount: core.Money{Cents: 100}})
				return nil
			})
		}()
	}
	wg.Wait()

	if err := h.View(ctx, func(st core.State) error {
		if got := len(st.Expenses[day]["Ana"]); got != n {
			t.Fatalf("expected %d entries, got %d", n, got)
		}
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
}

func ensureDay(l core.Ledger, day core.Date) core.Ledger {
	if l == nil {
		l = make(core.Ledger)
	}
	if l[day] == nil {
		l[day] = make(map[string][]core.Entry)
	}
	return l
}
