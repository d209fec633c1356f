package nakama

import (
	"encoding/json"

	"cardroom/internal/app"
	"cardroom/internal/domain"
)

// Client request payloads. Cards travel as {"suit":"hearts","rank":"A"}.

type StartGameRequest struct {
	Game string `json:"game,omitempty"`
}

type PlayCardsRequest struct {
	Cards []domain.Card `json:"cards"`
}

type BidRequest struct {
	Action string      `json:"action"` // "pass", "order_up" or "call"
	Suit   domain.Suit `json:"suit,omitempty"`
	Alone  bool        `json:"alone,omitempty"`
}

type DiscardRequest struct {
	Card domain.Card `json:"card"`
}

type ExchangeRequest struct {
	Cards []domain.Card `json:"cards"`
}

// GameErrorEvent is sent privately to the offending client.
type GameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlayerState is one seat in the match snapshot.
type PlayerState struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	IsOwner        bool   `json:"is_owner"`
	IsBot          bool   `json:"is_bot"`
	DisplayName    string `json:"display_name"`
	CardsRemaining int    `json:"cards_remaining"`
}

// MatchStateSnapshot is broadcast whenever the seating changes.
type MatchStateSnapshot struct {
	Seats     []string      `json:"seats"`
	OwnerSeat int           `json:"owner_seat"`
	Tick      int64         `json:"tick"`
	Players   []PlayerState `json:"players"`
}

// matchLabel is the JSON label Nakama indexes for quick-match queries.
type matchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

func (l matchLabel) encode() string {
	b, _ := json.Marshal(l)
	return string(b)
}

// eventOpCode maps app event kinds onto wire op codes.
func eventOpCode(kind app.EventKind) (int64, bool) {
	switch kind {
	case app.EventPlayerJoined:
		return OpPlayerJoined, true
	case app.EventPlayerLeft:
		return OpPlayerLeft, true
	case app.EventGameStarted:
		return OpGameStarted, true
	case app.EventHandDealt:
		return OpHandDealt, true
	case app.EventCardsPlayed:
		return OpCardsPlayed, true
	case app.EventTurnPassed:
		return OpTurnPassed, true
	case app.EventPileCleared:
		return OpPileCleared, true
	case app.EventTrumpSet:
		return OpTrumpSet, true
	case app.EventBidPassed:
		return OpBidPassed, true
	case app.EventTrickWon:
		return OpTrickWon, true
	case app.EventRoundEnded:
		return OpRoundEnded, true
	case app.EventGameEnded:
		return OpGameEnded, true
	default:
		return 0, false
	}
}
