// Package memory is an in-memory EntryAppender used by tests and local
// runs without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"financeiro/internal/amqp"
	ports "financeiro/internal/sheets"
)

type Appender struct {
	mu   sync.Mutex
	rows []*amqp.ExpenseRecordedMessage
}

var _ ports.EntryAppender = (*Appender)(nil)

func New() *Appender {
	return &Appender{}
}

func (a *Appender) Append(_ context.Context, msg *amqp.ExpenseRecordedMessage) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	copied := *msg
	a.rows = append(a.rows, &copied)
	return fmt.Sprintf("row-%d", len(a.rows)), nil
}

// Rows returns the appended rows in order.
func (a *Appender) Rows() []*amqp.ExpenseRecordedMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*amqp.ExpenseRecordedMessage(nil), a.rows...)
}
