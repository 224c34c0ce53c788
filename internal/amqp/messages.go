package amqp

import (
	"encoding/json"
	"time"
)

const (
	OpAppend = "append"
	OpDelete = "delete"
)

// MirrorMessage describes one per-ledger mutation that already happened
// against the primary store and must be replayed onto the spreadsheet.
// Routing was resolved before publishing: Person is the concrete target
// ledger, so the worker applies the row verbatim without re-classifying.
type MirrorMessage struct {
	Op        string    `json:"op"` // append | delete
	Person    string    `json:"person"`
	Date      string    `json:"date"` // ISO YYYY-MM-DD
	Kind      string    `json:"kind,omitempty"`
	Category  string    `json:"category,omitempty"`
	Memo      string    `json:"memo"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

func (m *MirrorMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MirrorMessageFromJSON(data []byte) (*MirrorMessage, error) {
	var msg MirrorMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
