package app

import (
	"cardroom/internal/domain"
	"cardroom/internal/euchre"
	"cardroom/internal/president"
)

// EventKind identifies emitted domain events for transport dispatch.
type EventKind string

const (
	EventPlayerJoined EventKind = "player_joined"
	EventPlayerLeft   EventKind = "player_left"
	EventGameStarted  EventKind = "game_started"
	EventHandDealt    EventKind = "hand_dealt"
	EventCardsPlayed  EventKind = "cards_played"
	EventTurnPassed   EventKind = "turn_passed"
	EventPileCleared  EventKind = "pile_cleared"
	EventTrumpSet     EventKind = "trump_set"
	EventBidPassed    EventKind = "bid_passed"
	EventTrickWon     EventKind = "trick_won"
	EventRoundEnded   EventKind = "round_ended"
	EventGameEnded    EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients. Empty
// recipients means broadcast.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string
}

type PlayerJoinedPayload struct {
	UserID string `json:"user_id"`
	Seat   int    `json:"seat"`
	Owner  bool   `json:"owner"`
}

type PlayerLeftPayload struct {
	UserID string `json:"user_id"`
}

type GameStartedPayload struct {
	Game          string `json:"game"`
	FirstTurnSeat int    `json:"first_turn_seat"`
}

type HandDealtPayload struct {
	UserID string        `json:"user_id"`
	Seat   int           `json:"seat"`
	Hand   []domain.Card `json:"hand"`
}

type CardsPlayedPayload struct {
	UserID       string        `json:"user_id"`
	Seat         int           `json:"seat"`
	Cards        []domain.Card `json:"cards"`
	NextTurnSeat int           `json:"next_turn_seat"`
}

type TurnPassedPayload struct {
	UserID       string `json:"user_id"`
	Seat         int    `json:"seat"`
	NextTurnSeat int    `json:"next_turn_seat"`
}

type PileClearedPayload struct {
	LeaderSeat int `json:"leader_seat"`
}

type TrumpSetPayload struct {
	Suit       domain.Suit `json:"suit"`
	CalledBy   int         `json:"called_by"`
	GoingAlone bool        `json:"going_alone"`
	PickedUp   bool        `json:"picked_up"`
}

type BidPassedPayload struct {
	Seat         int          `json:"seat"`
	NextTurnSeat int          `json:"next_turn_seat"`
	NextPhase    euchre.Phase `json:"next_phase"`
}

type TrickWonPayload struct {
	WinnerSeat  int    `json:"winner_seat"`
	TrickCounts [2]int `json:"trick_counts"`
}

type PresidentRoundEndedPayload struct {
	FinishOrder []int                   `json:"finish_order"`
	Titles      map[int]president.Title `json:"titles"`
	Points      map[int]int             `json:"points"`
}

type EuchreRoundEndedPayload struct {
	Result euchre.RoundResult `json:"result"`
	Scores [2]int             `json:"scores"`
}

type GameEndedPayload struct {
	Winner int `json:"winner"`
}
