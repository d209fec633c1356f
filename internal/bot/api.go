package bot

import (
	"cardroom/internal/domain"
	"cardroom/internal/euchre"
	"cardroom/internal/president"
)

// Move represents a shedding-game decision made by the AI.
type Move struct {
	Pass  bool
	Cards []domain.Card
}

// BidAction enumerates the euchre bidding decisions.
type BidAction int

const (
	BidPass BidAction = iota
	BidOrderUp
	BidCallTrump
)

// Bid is a euchre bidding decision.
type Bid struct {
	Action BidAction
	Suit   domain.Suit
	Alone  bool
}

// PresidentBrain decides president moves. Implementations consume the same
// legal-move queries the UI does.
type PresidentBrain interface {
	CalculateMove(g *president.Game, seat int, tracker *Tracker) (Move, error)
}

// EuchreBrain decides euchre bids, plays and the dealer discard.
type EuchreBrain interface {
	CalculateBid(r *euchre.Round, seat int, stickTheDealer bool) (Bid, error)
	CalculatePlay(r *euchre.Round, seat int) (domain.Card, error)
	ChooseDiscard(r *euchre.Round) (domain.Card, error)
}
