package core

import "testing"

func TestParseFixedCosts(t *testing.T) {
	text := "Aluguel: 1200\n" +
		"internet: 99,90\n" +
		"linha sem separador\n" +
		"Luz: abc\n" +
		"streaming: Netflix (39,90), Spotify (21,90)\n"

	costs := ParseFixedCosts(text)

	if got := costs["Aluguel"].Amount.Cents; got != 120000 {
		t.Fatalf("Aluguel expected 120000, got %d", got)
	}
	if got := costs["Internet"].Amount.Cents; got != 9990 {
		t.Fatalf("Internet expected 9990, got %d", got)
	}
	if _, ok := costs["Luz"]; ok {
		t.Fatal("malformed amount line must be skipped")
	}

	streaming, ok := costs["Streaming"]
	if !ok || !streaming.IsGroup() {
		t.Fatalf("expected Streaming group, got %+v", streaming)
	}
	if len(streaming.Items) != 2 {
		t.Fatalf("expected 2 streaming items, got %d", len(streaming.Items))
	}
	if streaming.Items[0].Name != "Netflix" || streaming.Items[0].Amount.Cents != 3990 {
		t.Fatalf("unexpected first item: %+v", streaming.Items[0])
	}
	if streaming.Items[1].Name != "Spotify" || streaming.Items[1].Amount.Cents != 2190 {
		t.Fatalf("unexpected second item: %+v", streaming.Items[1])
	}
}

func TestParseFixedCostsAllMalformed(t *testing.T) {
	costs := ParseFixedCosts("nada aqui\n\n???\n")
	if len(costs) != 0 {
		t.Fatalf("expected empty map, got %v", costs)
	}
}
