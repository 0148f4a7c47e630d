package storage

import (
	"context"
	"path/filepath"
	"testing"

	"financeiro/internal/core"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "financeiro.db"))
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteLoadEmpty(t *testing.T) {
	s := newTestStore(t)
	st, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.IsOnboarded() || len(st.Participants) != 0 {
		t.Fatalf("expected empty state, got %+v", st)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	day := core.NewDate(2025, 6, 10)
	st := core.State{
		Profile:      core.Casal,
		Nickname:     "Nós",
		Participants: []string{"Bruno", "Camila"},
		Incomes: map[string]core.Money{
			"Camila": {Cents: 420000},
		},
		FixedCosts: map[string]core.FixedCost{
			"Aluguel": {Amount: core.Money{Cents: 120000}},
			"Streaming": {Items: []core.FixedCostItem{
				{Name: "Netflix", Amount: core.Money{Cents: 3990}},
			}},
		},
		Expenses: core.Ledger{
			day: {
				"Bruno": {
					{Category: "Mercado", Amount: core.Money{Cents: 3000}},
					{Category: "", Amount: core.Money{Cents: 500}},
				},
			},
		},
	}

	if err := s.Save(ctx, st); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.Profile != core.Casal || got.Nickname != "Nós" {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if len(got.Participants) != 2 || got.Participants[0] != "Bruno" {
		t.Fatalf("participant order lost: %v", got.Participants)
	}
	if got.Incomes["Camila"].Cents != 420000 {
		t.Fatalf("unexpected incomes: %+v", got.Incomes)
	}
	if _, ok := got.Incomes["Bruno"]; ok {
		t.Fatal("Bruno has no income on record")
	}
	if got.FixedCosts["Aluguel"].IsGroup() {
		t.Fatalf("Aluguel must be flat: %+v", got.FixedCosts["Aluguel"])
	}
	if !got.FixedCosts["Streaming"].IsGroup() {
		t.Fatalf("Streaming must be a group: %+v", got.FixedCosts["Streaming"])
	}
	entries := got.Expenses[day]["Bruno"]
	if len(entries) != 2 || entries[0].Category != "Mercado" || entries[1].Category != "" {
		t.Fatalf("entry order or content lost: %+v", entries)
	}
}

func TestSQLiteSaveOverwritesWholesale(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := core.State{Profile: core.Solo, Participants: []string{"Ana"}}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	second := core.State{Profile: core.Casal, Nickname: "Nós", Participants: []string{"Bruno", "Camila"}}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Profile != core.Casal || got.HasParticipant("Ana") {
		t.Fatalf("re-onboarding must replace state wholesale, got %+v", got)
	}
}
