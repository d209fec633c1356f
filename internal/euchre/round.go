package euchre

import (
	"math/rand"

	"cardroom/internal/domain"
)

// NewRound deals a fresh 24-card deck: five cards to each seat, four to the
// kitty with its top card turned up. Bidding starts left of the dealer.
func NewRound(rng *rand.Rand, dealer int) *Round {
	deck := domain.Shuffle(rng, domain.NewEuchreDeck())
	hands, kitty := domain.Deal(deck, NumPlayers, HandSize)

	r := &Round{
		Dealer:  dealer,
		Phase:   PhaseBiddingRound1,
		Current: nextSeat(dealer),
		Kitty:   kitty,
		Turned:  kitty[0],
	}
	for i := range r.Hands {
		r.Hands[i] = hands[i]
	}
	return r
}

func nextSeat(seat int) int {
	return (seat + 1) % NumPlayers
}

func partnerSeat(seat int) int {
	return (seat + 2) % NumPlayers
}

// IsSittingOut reports whether the seat sits out because its partner is
// going alone.
func (r *Round) IsSittingOut(seat int) bool {
	return r.Trump != nil && r.Trump.GoingAlone && seat == partnerSeat(r.Trump.CalledBy)
}

// trickSize is 4, or 3 when a lone hand sidelines one seat.
func (r *Round) trickSize() int {
	if r.Trump != nil && r.Trump.GoingAlone {
		return NumPlayers - 1
	}
	return NumPlayers
}

// nextActiveSeat steps clockwise, skipping a sitting-out partner.
func (r *Round) nextActiveSeat(seat int) int {
	s := nextSeat(seat)
	for r.IsSittingOut(s) {
		s = nextSeat(s)
	}
	return s
}

// startPlay transitions into trick play with the seat left of the dealer
// (or its partner, during a lone hand) leading the first trick.
func (r *Round) startPlay() {
	r.Phase = PhasePlaying
	r.Trick = NewTrick()
	lead := nextSeat(r.Dealer)
	if r.IsSittingOut(lead) {
		lead = r.nextActiveSeat(lead)
	}
	r.Current = lead
}

// PlayCard plays a card from the seat's hand to the current trick. Rejected
// plays leave the round unchanged.
func (r *Round) PlayCard(seat int, card domain.Card) error {
	if r.Phase != PhasePlaying {
		return PhaseError("round is not in the playing phase")
	}
	if r.IsSittingOut(seat) {
		return ErrSittingOut
	}
	if seat != r.Current {
		return ErrNotYourTurn
	}
	hand := r.Hands[seat]
	if !domain.ContainsCard(hand, card) {
		return ErrCardNotInHand
	}
	if !domain.ContainsCard(LegalPlays(hand, r.Trick, r.Trump.Suit), card) {
		return ErrIllegalPlay
	}

	r.Hands[seat] = domain.RemoveCards(hand, []domain.Card{card})
	r.Trick.AddCard(card, seat, r.Trump.Suit)

	if len(r.Trick.Cards) < r.trickSize() {
		r.Current = r.nextActiveSeat(seat)
		return nil
	}

	winner := TrickWinner(r.Trick, r.Trump.Suit)
	r.Trick.Winner = winner
	r.TrickCounts[domain.TeamForSeat(winner)]++
	r.Completed = append(r.Completed, *r.Trick)

	if len(r.Completed) == HandSize {
		r.Phase = PhaseRoundComplete
		r.Trick = nil
		return nil
	}

	r.Trick = NewTrick()
	r.Current = winner
	return nil
}
