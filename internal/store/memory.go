package store

import (
	"context"
	"sync"

	"financeiro/internal/core"
)

// MemoryStore keeps the state in memory. Used by tests and throwaway runs.
type MemoryStore struct {
	mu sync.Mutex
	st core.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (core.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneState(m.st), nil
}

func (m *MemoryStore) Save(_ context.Context, st core.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st = cloneState(st)
	return nil
}

// cloneState deep-copies the state so callers never share ledger maps.
func cloneState(st core.State) core.State {
	out := st
	out.Participants = append([]string(nil), st.Participants...)
	if st.Incomes != nil {
		out.Incomes = make(map[string]core.Money, len(st.Incomes))
		for k, v := range st.Incomes {
			out.Incomes[k] = v
		}
	}
	if st.FixedCosts != nil {
		out.FixedCosts = make(map[string]core.FixedCost, len(st.FixedCosts))
		for k, v := range st.FixedCosts {
			v.Items = append([]core.FixedCostItem(nil), v.Items...)
			out.FixedCosts[k] = v
		}
	}
	if st.Expenses != nil {
		out.Expenses = make(core.Ledger, len(st.Expenses))
		for day, byName := range st.Expenses {
			copied := make(map[string][]core.Entry, len(byName))
			for name, entries := range byName {
				copied[name] = append([]core.Entry(nil), entries...)
			}
			out.Expenses[day] = copied
		}
	}
	return out
}
