package amqp

import (
	"encoding/json"
	"time"
)

// LedgerEventMessage is the audit record published after every successful
// mutation. It carries what happened, not the row contents; the spreadsheet
// remains the source of truth for state.
type LedgerEventMessage struct {
	Action    string    `json:"action"`
	Key       string    `json:"key,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEvent creates an event for a completed action. Key identifies the
// affected record (member id, transaction id, or payment key).
func NewLedgerEvent(action, key, detail string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Action:    action,
		Key:       key,
		Detail:    detail,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventFromJSON creates a message from JSON bytes
func LedgerEventFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
