package president

import "cardroom/internal/domain"

// exchangeGiveCount maps a title to the number of cards owed to its
// counterpart.
func exchangeGiveCount(t Title) int {
	switch t {
	case TitlePresident:
		return 2
	case TitleVicePresident:
		return 1
	default:
		return 0
	}
}

// counterpartTitle pairs president with scum and vice president with vice
// scum.
func counterpartTitle(t Title) Title {
	switch t {
	case TitlePresident:
		return TitleScum
	case TitleVicePresident:
		return TitleViceScum
	default:
		return TitleNeutral
	}
}

// newExchange records the outstanding give selections for every titled
// seat. Only the winning side selects; the losing side's best cards are
// surrendered automatically on submission.
func (g *Game) newExchange() *ExchangeState {
	ex := &ExchangeState{Pending: make(map[int]int)}
	for seat, title := range g.Titles {
		if n := exchangeGiveCount(title); n > 0 {
			if g.seatWithTitle(counterpartTitle(title)) >= 0 {
				ex.Pending[seat] = n
			}
		}
	}
	return ex
}

// SubmitExchange performs the two-way transfer for one title pair: the
// submitting seat's chosen cards go down, the counterpart's highest cards
// come back in the same call. When the last pending selection lands, play
// opens with the scum leading.
func (g *Game) SubmitExchange(seat int, give []domain.Card) error {
	if g.Phase != PhaseExchanging {
		return PhaseError("game is not in the exchange phase")
	}
	owed, ok := g.Exchange.Pending[seat]
	if !ok {
		return ErrNotExchanging
	}
	if len(give) != owed {
		return ErrWrongGiveCount
	}
	if domain.HasDuplicateCards(give) {
		return ErrCardNotInHand
	}
	giver := g.Players[seat]
	for _, c := range give {
		if !domain.ContainsCard(giver.Hand, c) {
			return ErrCardNotInHand
		}
	}

	counterpart := g.Players[g.seatWithTitle(counterpartTitle(g.Titles[seat]))]

	// Counterpart surrenders their highest cards automatically.
	SortHand(counterpart.Hand)
	back := append([]domain.Card{}, counterpart.Hand[len(counterpart.Hand)-owed:]...)

	giver.Hand = domain.RemoveCards(giver.Hand, give)
	counterpart.Hand = domain.RemoveCards(counterpart.Hand, back)
	giver.Hand = append(giver.Hand, back...)
	counterpart.Hand = append(counterpart.Hand, give...)
	SortHand(giver.Hand)
	SortHand(counterpart.Hand)

	delete(g.Exchange.Pending, seat)
	if len(g.Exchange.Pending) == 0 {
		g.Exchange = nil
		g.Phase = PhasePlaying
		g.Current = g.seatWithTitle(TitleScum)
	}
	return nil
}
