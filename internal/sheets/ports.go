package sheets

import (
	"context"

	"financeiro/internal/amqp"
)

// EntryAppender mirrors one recorded expense into a spreadsheet row.
type EntryAppender interface {
	Append(ctx context.Context, msg *amqp.ExpenseRecordedMessage) (rowRef string, err error)
}
