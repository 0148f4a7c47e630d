package core

import (
	"errors"
	"testing"
)

func TestParseProfileKind(t *testing.T) {
	cases := []struct {
		in   string
		kind ProfileKind
		ok   bool
	}{
		{"Solo", Solo, true},
		{"solo", Solo, true},
		{"SOLO", Solo, true},
		{"Casal", Casal, true},
		{" casal ", Casal, true},
		{"Família", Familia, true},
		{"familia", Familia, true},
		{"FAMÍLIA", Familia, true},
		{"dupla", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		kind, err := ParseProfileKind(tc.in)
		if tc.ok {
			if err != nil || kind != tc.kind {
				t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.kind, kind, err)
			}
		} else if !errors.Is(err, ErrInvalidProfileKind) {
			t.Fatalf("%q expected ErrInvalidProfileKind, got %v", tc.in, err)
		}
	}
}

func TestParseParticipants(t *testing.T) {
	names, err := ParseParticipants(" bruno , CAMILA ,, ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Bruno", "Camila"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}

	if _, err := ParseParticipants(" , ,"); !errors.Is(err, ErrEmptyParticipantList) {
		t.Fatalf("expected ErrEmptyParticipantList, got %v", err)
	}
}

func TestSetIncome(t *testing.T) {
	st := State{Participants: []string{"Ana"}}

	if err := st.SetIncome("Ana", "2500,00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Incomes["Ana"].Cents != 250000 {
		t.Fatalf("expected 250000 cents, got %d", st.Incomes["Ana"].Cents)
	}

	if err := st.SetIncome("Zeca", "100"); !errors.Is(err, ErrUnknownParticipant) {
		t.Fatalf("expected ErrUnknownParticipant, got %v", err)
	}
	if _, ok := st.Incomes["Zeca"]; ok {
		t.Fatal("income mapping mutated on failed set")
	}

	if err := st.SetIncome("Ana", "abc"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestIsOnboarded(t *testing.T) {
	if (State{}).IsOnboarded() {
		t.Fatal("empty state must not be onboarded")
	}
	for _, k := range []ProfileKind{Solo, Casal, Familia} {
		if !(State{Profile: k}).IsOnboarded() {
			t.Fatalf("%q expected onboarded", k)
		}
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"mercado":  "Mercado",
		"UBER":     "Uber",
		"café":     "Café",
		"":         "",
		"josé":     "José",
		"ana maria": "Ana maria",
	}
	for in, want := range cases {
		if got := Capitalize(in); got != want {
			t.Fatalf("%q expected %q, got %q", in, want, got)
		}
	}
}
