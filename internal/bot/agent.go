package bot

import (
	"cardroom/internal/domain"
	"cardroom/internal/euchre"
	"cardroom/internal/president"
)

// Agent represents an autonomous bot player. Each agent owns its own card
// tracker, so nothing leaks between concurrently running games.
type Agent struct {
	ID        string
	Name      string
	President PresidentBrain
	Euchre    EuchreBrain

	tracker *Tracker
}

// PlayPresident asks the agent for its president move.
func (a *Agent) PlayPresident(g *president.Game, seat int) (Move, error) {
	move, err := a.President.CalculateMove(g, seat, a.tracker)
	if err != nil {
		return Move{Pass: true}, err
	}
	return move, nil
}

// BidEuchre asks the agent for its bidding decision.
func (a *Agent) BidEuchre(r *euchre.Round, seat int, stickTheDealer bool) (Bid, error) {
	return a.Euchre.CalculateBid(r, seat, stickTheDealer)
}

// PlayEuchre asks the agent for a card to play.
func (a *Agent) PlayEuchre(r *euchre.Round, seat int) (domain.Card, error) {
	return a.Euchre.CalculatePlay(r, seat)
}

// DiscardEuchre asks the agent, as dealer, which card to bury.
func (a *Agent) DiscardEuchre(r *euchre.Round) (domain.Card, error) {
	return a.Euchre.ChooseDiscard(r)
}

// ObserveCards feeds played cards into the agent's round memory.
func (a *Agent) ObserveCards(cards []domain.Card) {
	a.tracker.Observe(cards)
}

// NewRound resets the agent's round memory.
func (a *Agent) NewRound() {
	a.tracker.Reset()
}
