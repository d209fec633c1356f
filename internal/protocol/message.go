// Package protocol defines the JSON envelope spoken over the dev server's
// WebSocket transport. Game events reuse the app layer's payload structs;
// their message type is the event kind.
package protocol

import (
	"encoding/json"

	"cardroom/internal/domain"
)

// Message is the generic WebSocket envelope.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client -> Server payloads.

type CreateTablePayload struct {
	Name string `json:"name"`
	Game string `json:"game"` // "president" or "euchre"
	Size int    `json:"size,omitempty"`
}

type JoinTablePayload struct {
	Name      string `json:"name"`
	TableCode string `json:"table_code"`
}

type PlayCardsPayload struct {
	Cards []domain.Card `json:"cards"`
}

type BidPayload struct {
	Action string      `json:"action"` // "pass", "order_up" or "call"
	Suit   domain.Suit `json:"suit,omitempty"`
	Alone  bool        `json:"alone,omitempty"`
}

type DiscardPayload struct {
	Card domain.Card `json:"card"`
}

type ExchangePayload struct {
	Cards []domain.Card `json:"cards"`
}

// Server -> Client payloads.

type TableCreatedPayload struct {
	TableCode string `json:"table_code"`
}

type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seat int    `json:"seat"`
}

type LobbyUpdatePayload struct {
	TableCode string       `json:"table_code"`
	Game      string       `json:"game"`
	Size      int          `json:"size"`
	Players   []PlayerInfo `json:"players"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type JoinErrorPayload struct {
	Message string `json:"message"`
}

// NewMessage builds a JSON envelope around the given payload.
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	if payload == nil {
		return json.Marshal(Message{Type: msgType})
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: msgType, Payload: payloadBytes})
}
