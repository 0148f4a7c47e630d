package core

import "testing"

func TestStartOfWeek(t *testing.T) {
	cases := []struct {
		day  Date
		want Date
	}{
		{NewDate(2025, 6, 9), NewDate(2025, 6, 9)},  // Monday
		{NewDate(2025, 6, 11), NewDate(2025, 6, 9)}, // Wednesday
		{NewDate(2025, 6, 15), NewDate(2025, 6, 9)}, // Sunday
	}
	for _, tc := range cases {
		if got := tc.day.StartOfWeek(); got != tc.want {
			t.Fatalf("%s expected %s, got %s", tc.day, tc.want, got)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	days := NewDate(2025, 6, 9).DaysUntil(NewDate(2025, 6, 11))
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if days[0] != NewDate(2025, 6, 9) || days[2] != NewDate(2025, 6, 11) {
		t.Fatalf("unexpected range: %v", days)
	}

	if got := NewDate(2025, 6, 11).DaysUntil(NewDate(2025, 6, 9)); len(got) != 0 {
		t.Fatalf("inverted range expected empty, got %v", got)
	}
}

func TestDateWireRoundTrip(t *testing.T) {
	d := NewDate(2025, 1, 31)
	parsed, err := ParseDate(d.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != d {
		t.Fatalf("expected %s, got %s", d, parsed)
	}
}
