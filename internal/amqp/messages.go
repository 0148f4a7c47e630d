package amqp

import (
	"encoding/json"
	"time"
)

// ExpenseRecordedMessage carries everything the mirror worker needs to
// append one row downstream, so the worker never reads the store.
type ExpenseRecordedMessage struct {
	Day         string    `json:"day"`
	Participant string    `json:"participant"`
	Category    string    `json:"category"`
	Cents       int64     `json:"cents"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewExpenseRecordedMessage(day, participant, category string, cents int64) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		Day:         day,
		Participant: participant,
		Category:    category,
		Cents:       cents,
		Timestamp:   time.Now(),
	}
}

func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
