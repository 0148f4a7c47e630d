// Package worker consumes expense-recorded events and mirrors them into
// a spreadsheet. It is a pure consumer: the event carries everything the
// row needs, so the worker never touches the state store.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"financeiro/internal/amqp"
	"financeiro/internal/sheets"
)

type MirrorWorker struct {
	appender sheets.EntryAppender
}

func NewMirrorWorker(appender sheets.EntryAppender) *MirrorWorker {
	return &MirrorWorker{appender: appender}
}

// HandleExpenseRecorded appends one mirrored row. Returning an error
// makes the consumer nack and requeue the message.
func (w *MirrorWorker) HandleExpenseRecorded(ctx context.Context, msg *amqp.ExpenseRecordedMessage) error {
	slog.InfoContext(ctx, "Processing expense recorded event",
		"day", msg.Day,
		"participant", msg.Participant,
		"category", msg.Category)

	ref, err := w.appender.Append(ctx, msg)
	if err != nil {
		return fmt.Errorf("append mirrored row: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored expense to spreadsheet",
		"row_ref", ref,
		"participant", msg.Participant,
		"cents", msg.Cents)
	return nil
}
