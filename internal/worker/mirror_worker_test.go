package worker

import (
	"context"
	"errors"
	"testing"

	"financeiro/internal/amqp"
	"financeiro/internal/sheets/memory"
)

func TestHandleExpenseRecordedAppendsRow(t *testing.T) {
	appender := memory.New()
	w := NewMirrorWorker(appender)

	msg := amqp.NewExpenseRecordedMessage("2025-06-10", "Bruno", "Mercado", 3050)
	if err := w.HandleExpenseRecorded(context.Background(), msg); err != nil {
		t.Fatalf("HandleExpenseRecorded: %v", err)
	}

	rows := appender.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Participant != "Bruno" || rows[0].Cents != 3050 {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

type failingAppender struct{}

func (failingAppender) Append(context.Context, *amqp.ExpenseRecordedMessage) (string, error) {
	return "", errors.New("quota exceeded")
}

func TestHandleExpenseRecordedPropagatesAppendError(t *testing.T) {
	w := NewMirrorWorker(failingAppender{})

	msg := amqp.NewExpenseRecordedMessage("2025-06-10", "Bruno", "Mercado", 3050)
	if err := w.HandleExpenseRecorded(context.Background(), msg); err == nil {
		t.Fatal("expected an error so the message gets requeued")
	}
}
