package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"financeiro/internal/amqp"
	"financeiro/internal/core"
	"financeiro/internal/ledger"
	"financeiro/internal/store"
)

type capturePublisher struct {
	msgs []*amqp.ExpenseRecordedMessage
	err  error
}

func (p *capturePublisher) PublishExpenseRecorded(_ context.Context, msg *amqp.ExpenseRecordedMessage) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 10, 15, 4, 5, 0, time.UTC)
}

func onboardedHandle(t *testing.T) *store.Handle {
	t.Helper()
	h := store.NewHandle(store.NewMemoryStore())
	err := h.Update(context.Background(), func(st *core.State) error {
		st.Profile = core.Solo
		st.Participants = []string{"Ana"}
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return h
}

func TestRecordExpensePersistsAndPublishes(t *testing.T) {
	h := onboardedHandle(t)
	pub := &capturePublisher{}
	svc := NewExpenseService(h, pub, fixedNow)

	entry, day, err := svc.RecordExpense(context.Background(), "Ana", "10,50", "café")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if entry.Category != "Café" || entry.Amount.Cents != 1050 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if day != core.NewDate(2025, 6, 10) {
		t.Fatalf("unexpected day: %s", day)
	}

	if len(pub.msgs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.msgs))
	}
	msg := pub.msgs[0]
	if msg.Day != "2025-06-10" || msg.Participant != "Ana" || msg.Cents != 1050 {
		t.Fatalf("unexpected event: %+v", msg)
	}

	if err := h.View(context.Background(), func(st core.State) error {
		entries := st.Expenses[day]["Ana"]
		if len(entries) != 1 {
			t.Fatalf("expected 1 persisted entry, got %d", len(entries))
		}
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestRecordExpensePublishFailureIsNotFatal(t *testing.T) {
	h := onboardedHandle(t)
	pub := &capturePublisher{err: errors.New("broker down")}
	svc := NewExpenseService(h, pub, fixedNow)

	if _, _, err := svc.RecordExpense(context.Background(), "Ana", "5", "Café"); err != nil {
		t.Fatalf("publish failure must not fail the record: %v", err)
	}
}

func TestRecordExpenseNilPublisher(t *testing.T) {
	svc := NewExpenseService(onboardedHandle(t), nil, fixedNow)
	if _, _, err := svc.RecordExpense(context.Background(), "Ana", "5", "Café"); err != nil {
		t.Fatalf("record without publisher: %v", err)
	}
}

func TestRecordExpenseValidationKeepsIdentity(t *testing.T) {
	pub := &capturePublisher{}
	svc := NewExpenseService(onboardedHandle(t), pub, fixedNow)

	if _, _, err := svc.RecordExpense(context.Background(), "Zeca", "5", "Café"); !errors.Is(err, core.ErrUnknownParticipant) {
		t.Fatalf("expected ErrUnknownParticipant, got %v", err)
	}
	if _, _, err := svc.RecordExpense(context.Background(), "Ana", "dez", "Café"); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if len(pub.msgs) != 0 {
		t.Fatalf("failed records must not publish, got %d events", len(pub.msgs))
	}
}

func TestReport(t *testing.T) {
	h := onboardedHandle(t)
	svc := NewExpenseService(h, nil, fixedNow)

	if _, _, err := svc.RecordExpense(context.Background(), "Ana", "10,50", "Café"); err != nil {
		t.Fatalf("record: %v", err)
	}
	text, err := svc.Report(context.Background(), ledger.Daily)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	want := "🧾 Relatório do dia – 2025-06-10\n\n" +
		"Você gastou R$ 10,50 hoje.\n" +
		"Aqui está o resumo detalhado:\n" +
		"- Café: R$ 10,50"
	if text != want {
		t.Fatalf("unexpected report:\n%q\nwant:\n%q", text, want)
	}
}
