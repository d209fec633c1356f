package euchre

import "cardroom/internal/domain"

// NumPlayers is fixed for euchre: two teams of two.
const NumPlayers = 4

// HandSize is the number of cards dealt to each seat.
const HandSize = 5

// Phase represents the lifecycle stage of a euchre round.
type Phase string

const (
	// PhaseBiddingRound1 lets each seat order up the turned card or pass.
	PhaseBiddingRound1 Phase = "bidding_round1"
	// PhaseBiddingRound2 lets each seat call a suit other than the turned one.
	PhaseBiddingRound2 Phase = "bidding_round2"
	// PhaseDealerDiscard waits for the dealer to discard after picking up.
	PhaseDealerDiscard Phase = "dealer_discard"
	// PhasePlaying is active trick play.
	PhasePlaying Phase = "playing"
	// PhaseRoundComplete is reached after the fifth trick or a thrown-in deal.
	PhaseRoundComplete Phase = "round_complete"
)

// Trump records the called trump for a round. Set exactly once and immutable
// for the rest of the round.
type Trump struct {
	Suit       domain.Suit
	CalledBy   int
	GoingAlone bool
}

// PlayedCard is a card on the table together with the seat that played it.
type PlayedCard struct {
	Card domain.Card
	Seat int
}

// Trick holds the cards played to a single trick. Winner is -1 until the
// trick completes.
type Trick struct {
	Cards       []PlayedCard
	LeadingSuit domain.Suit
	Winner      int
}

// NewTrick returns an empty trick.
func NewTrick() *Trick {
	return &Trick{Winner: -1}
}

// Rules captures the table rule variants for a game.
type Rules struct {
	// StickTheDealer forces the dealer to call trump when round two comes
	// back around with no caller.
	StickTheDealer bool
	// TargetScore ends the game once a team reaches it. Defaults to 10.
	TargetScore int
}

// Round is the state of a single deal, from bidding through the last trick.
type Round struct {
	Dealer  int
	Phase   Phase
	Current int

	Hands  [NumPlayers][]domain.Card
	Kitty  []domain.Card
	Turned domain.Card

	Trump  *Trump
	passes int

	Trick       *Trick
	Completed   []Trick
	TrickCounts [2]int

	// Misdeal is set when every seat passed twice and the dealer was not
	// forced to call; the deal is thrown in unscored.
	Misdeal bool
}

// RoundResult is the scoring outcome of a completed round.
type RoundResult struct {
	CallingTeam int
	Points      [2]int
	March       bool
	Euchred     bool
	Alone       bool
}

// Game accumulates scores across rounds until a team reaches the target.
type Game struct {
	Rules  Rules
	Scores [2]int
	Dealer int
	Round  *Round

	Over   bool
	Winner int
}
