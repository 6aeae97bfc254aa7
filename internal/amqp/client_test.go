package amqp

import (
	"strings"
	"testing"
	"time"
)

func TestLedgerEventRoundTrip(t *testing.T) {
	event := NewLedgerEvent("TOGGLE_PAYMENT", "3-5", "payment recorded")

	data, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := LedgerEventFromJSON(data)
	if err != nil {
		t.Fatalf("LedgerEventFromJSON: %v", err)
	}
	if decoded.Action != "TOGGLE_PAYMENT" {
		t.Errorf("action = %q, want TOGGLE_PAYMENT", decoded.Action)
	}
	if decoded.Key != "3-5" {
		t.Errorf("key = %q, want 3-5", decoded.Key)
	}
	if decoded.Detail != "payment recorded" {
		t.Errorf("detail = %q, want 'payment recorded'", decoded.Detail)
	}
	if !decoded.Timestamp.Equal(event.Timestamp) {
		t.Errorf("timestamp changed across the wire: %v != %v", decoded.Timestamp, event.Timestamp)
	}
}

func TestNewLedgerEventStampsNow(t *testing.T) {
	before := time.Now()
	event := NewLedgerEvent("ADD_MEMBER", "69", "")
	after := time.Now()

	if event.Timestamp.Before(before) || event.Timestamp.After(after) {
		t.Errorf("timestamp %v not in [%v, %v]", event.Timestamp, before, after)
	}
}

func TestLedgerEventOmitsEmptyFields(t *testing.T) {
	event := NewLedgerEvent("ADD_TRANSACTION", "", "")
	data, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	for _, field := range []string{`"key"`, `"detail"`} {
		if strings.Contains(string(data), field) {
			t.Errorf("empty field %s serialized: %s", field, data)
		}
	}
}

func TestLedgerEventFromJSONRejectsGarbage(t *testing.T) {
	if _, err := LedgerEventFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}
