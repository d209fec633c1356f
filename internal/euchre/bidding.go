package euchre

import "cardroom/internal/domain"

// OrderUp accepts the turned card as trump. Non-dealer seats order the
// dealer up; the dealer picks the card up voluntarily. Either way the dealer
// adds the turned card to their hand and must discard before play begins.
func (r *Round) OrderUp(seat int, alone bool) error {
	if r.Phase != PhaseBiddingRound1 {
		return PhaseError("round is not in the first bidding round")
	}
	if seat != r.Current {
		return ErrNotYourTurn
	}

	r.Trump = &Trump{Suit: r.Turned.Suit, CalledBy: seat, GoingAlone: alone}
	r.Hands[r.Dealer] = append(r.Hands[r.Dealer], r.Turned)
	r.Kitty = r.Kitty[1:]
	r.Phase = PhaseDealerDiscard
	r.Current = r.Dealer
	return nil
}

// CallTrump names trump in the second bidding round. The turned-up suit is
// excluded; calling it is rejected without changing state.
func (r *Round) CallTrump(seat int, suit domain.Suit, alone bool) error {
	if r.Phase != PhaseBiddingRound2 {
		return PhaseError("round is not in the second bidding round")
	}
	if seat != r.Current {
		return ErrNotYourTurn
	}
	if suit == r.Turned.Suit {
		return ErrSuitExcluded
	}
	valid := false
	for _, s := range domain.AllSuits() {
		if s == suit {
			valid = true
			break
		}
	}
	if !valid {
		return ErrSuitExcluded
	}

	r.Trump = &Trump{Suit: suit, CalledBy: seat, GoingAlone: alone}
	r.startPlay()
	return nil
}

// PassBid passes the current bidding action. Four passes end round one and
// open round two; four more either throw the deal in or, under stick the
// dealer, refuse the dealer's pass.
func (r *Round) PassBid(seat int, stickTheDealer bool) error {
	if r.Phase != PhaseBiddingRound1 && r.Phase != PhaseBiddingRound2 {
		return PhaseError("round is not in a bidding phase")
	}
	if seat != r.Current {
		return ErrNotYourTurn
	}
	if r.Phase == PhaseBiddingRound2 && stickTheDealer && seat == r.Dealer {
		return ErrMustCallTrump
	}

	r.passes++
	if r.passes < NumPlayers {
		r.Current = nextSeat(seat)
		return nil
	}

	if r.Phase == PhaseBiddingRound1 {
		r.Phase = PhaseBiddingRound2
		r.Current = nextSeat(r.Dealer)
		r.passes = 0
		return nil
	}

	// All eight passes: the deal is thrown in and redealt unscored.
	r.Misdeal = true
	r.Phase = PhaseRoundComplete
	return nil
}

// DealerDiscard removes one card from the dealer's six-card hand after a
// pickup and starts play.
func (r *Round) DealerDiscard(card domain.Card) error {
	if r.Phase != PhaseDealerDiscard {
		return PhaseError("round is not waiting for a dealer discard")
	}
	if !domain.ContainsCard(r.Hands[r.Dealer], card) {
		return ErrCardNotInHand
	}

	r.Hands[r.Dealer] = domain.RemoveCards(r.Hands[r.Dealer], []domain.Card{card})
	r.Kitty = append(r.Kitty, card)
	r.startPlay()
	return nil
}
