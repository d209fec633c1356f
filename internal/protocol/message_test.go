package protocol

import (
	"encoding/json"
	"testing"
)

func TestNewMessageEnvelope(t *testing.T) {
	msgBytes, err := NewMessage("table_created", TableCreatedPayload{TableCode: "AB12C"})
	if err != nil {
		t.Fatalf("NewMessage error: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(msgBytes, &msg); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if msg.Type != "table_created" {
		t.Fatalf("type = %s, want table_created", msg.Type)
	}

	var payload TableCreatedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.TableCode != "AB12C" {
		t.Fatalf("table code = %s", payload.TableCode)
	}
}

func TestNewMessageNilPayload(t *testing.T) {
	msgBytes, err := NewMessage("pong", nil)
	if err != nil {
		t.Fatalf("NewMessage error: %v", err)
	}
	if string(msgBytes) != `{"type":"pong"}` {
		t.Fatalf("envelope = %s", msgBytes)
	}
}
