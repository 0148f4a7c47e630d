// Package services orchestrates ledger operations across the store handle
// and the optional event publisher.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"financeiro/internal/amqp"
	"financeiro/internal/core"
	"financeiro/internal/ledger"
	"financeiro/internal/report"
	"financeiro/internal/store"
)

// EventPublisher pushes expense-recorded events downstream. *amqp.Client
// implements it; a nil publisher disables mirroring.
type EventPublisher interface {
	PublishExpenseRecorded(ctx context.Context, msg *amqp.ExpenseRecordedMessage) error
}

// ExpenseService runs every mutation through the single-writer store
// handle and publishes an event after a durable record.
type ExpenseService struct {
	store  *store.Handle
	events EventPublisher
	now    func() time.Time
}

func NewExpenseService(h *store.Handle, events EventPublisher, now func() time.Time) *ExpenseService {
	if now == nil {
		now = time.Now
	}
	return &ExpenseService{store: h, events: events, now: now}
}

// RecordExpense records an expense for today and persists the whole state.
// Validation failures (unknown participant, bad amount) come back with
// their sentinel identity; a write failure wraps store.ErrWrite.
func (s *ExpenseService) RecordExpense(ctx context.Context, participant, amountText, category string) (core.Entry, core.Date, error) {
	day := core.DateOf(s.now())

	var entry core.Entry
	err := s.store.Update(ctx, func(st *core.State) error {
		var err error
		entry, err = ledger.Record(st, participant, amountText, category, day)
		return err
	})
	if err != nil {
		return core.Entry{}, core.Date{}, err
	}

	// The expense is durable; a failed publish only loses the mirror copy.
	if err := s.publishRecorded(ctx, day, participant, entry); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense recorded event",
			"participant", participant, "day", day.String(), "error", err)
	}

	return entry, day, nil
}

// Report renders the requested window against the current state.
func (s *ExpenseService) Report(ctx context.Context, w ledger.Window) (string, error) {
	today := core.DateOf(s.now())
	var text string
	err := s.store.View(ctx, func(st core.State) error {
		text = report.Render(st, w, today)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return text, nil
}

func (s *ExpenseService) publishRecorded(ctx context.Context, day core.Date, participant string, e core.Entry) error {
	if s.events == nil {
		slog.DebugContext(ctx, "No event publisher configured, skipping expense recorded event")
		return nil
	}
	msg := amqp.NewExpenseRecordedMessage(day.String(), participant, e.Category, e.Amount.Cents)
	return s.events.PublishExpenseRecorded(ctx, msg)
}
