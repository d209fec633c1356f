package bot

import (
	"errors"

	"cardroom/internal/domain"
	"cardroom/internal/euchre"
)

// trumpStrength counts the cards that would act as trump if the suit were
// called, weighting bowers above natural trump.
func trumpStrength(hand []domain.Card, trump domain.Suit) int {
	strength := 0
	for _, c := range hand {
		switch {
		case euchre.IsRightBower(c, trump):
			strength += 3
		case euchre.IsLeftBower(c, trump):
			strength += 2
		case c.Suit == trump:
			strength++
		}
	}
	return strength
}

// StandardEuchreBot bids on raw trump strength and plays the cheapest card
// that still takes the trick.
type StandardEuchreBot struct{}

const (
	callThreshold  = 3
	aloneThreshold = 6
)

func (b *StandardEuchreBot) CalculateBid(r *euchre.Round, seat int, stickTheDealer bool) (Bid, error) {
	hand := r.Hands[seat]

	if r.Phase == euchre.PhaseBiddingRound1 {
		strength := trumpStrength(hand, r.Turned.Suit)
		if seat == r.Dealer {
			// The dealer would pick the turned card up as well.
			strength += trumpStrength([]domain.Card{r.Turned}, r.Turned.Suit)
		}
		if strength >= callThreshold {
			return Bid{Action: BidOrderUp, Suit: r.Turned.Suit, Alone: strength >= aloneThreshold}, nil
		}
		return Bid{Action: BidPass}, nil
	}

	bestSuit := domain.Suit("")
	bestStrength := 0
	for _, s := range domain.AllSuits() {
		if s == r.Turned.Suit {
			continue
		}
		if strength := trumpStrength(hand, s); strength > bestStrength {
			bestSuit, bestStrength = s, strength
		}
	}

	forced := stickTheDealer && seat == r.Dealer
	if bestSuit == "" {
		for _, s := range domain.AllSuits() {
			if s != r.Turned.Suit {
				bestSuit = s
				break
			}
		}
	}
	if bestStrength >= callThreshold || forced {
		return Bid{Action: BidCallTrump, Suit: bestSuit, Alone: bestStrength >= aloneThreshold}, nil
	}
	return Bid{Action: BidPass}, nil
}

func (b *StandardEuchreBot) CalculatePlay(r *euchre.Round, seat int) (domain.Card, error) {
	hand := r.Hands[seat]
	legal := euchre.LegalPlays(hand, r.Trick, r.Trump.Suit)
	if len(legal) == 0 {
		return domain.Card{}, errors.New("no legal plays for a non-empty hand")
	}

	if r.Trick == nil || len(r.Trick.Cards) == 0 {
		// Lead the strongest card to force the trick.
		return strongest(legal, r.Trump.Suit, ""), nil
	}

	// Cheapest card that would currently win the trick, otherwise dump the
	// weakest legal card.
	var winning []domain.Card
	for _, c := range legal {
		if wouldWin(r.Trick, c, seat, r.Trump.Suit) {
			winning = append(winning, c)
		}
	}
	if len(winning) > 0 {
		return weakest(winning, r.Trump.Suit, r.Trick.LeadingSuit), nil
	}
	return weakest(legal, r.Trump.Suit, r.Trick.LeadingSuit), nil
}

func (b *StandardEuchreBot) ChooseDiscard(r *euchre.Round) (domain.Card, error) {
	hand := r.Hands[r.Dealer]
	if len(hand) == 0 {
		return domain.Card{}, errors.New("dealer hand is empty")
	}

	// Drop the weakest off-trump card; with an all-trump hand drop the
	// lowest trump.
	var offTrump []domain.Card
	for _, c := range hand {
		if euchre.EffectiveSuit(c, r.Trump.Suit) != r.Trump.Suit {
			offTrump = append(offTrump, c)
		}
	}
	if len(offTrump) > 0 {
		return weakest(offTrump, r.Trump.Suit, ""), nil
	}
	return weakest(hand, r.Trump.Suit, ""), nil
}

// wouldWin simulates adding the card to a copy of the trick.
func wouldWin(t *euchre.Trick, c domain.Card, seat int, trump domain.Suit) bool {
	sim := euchre.Trick{
		Cards:       append([]euchre.PlayedCard{}, t.Cards...),
		LeadingSuit: t.LeadingSuit,
		Winner:      -1,
	}
	sim.AddCard(c, seat, trump)
	return euchre.TrickWinner(&sim, trump) == seat
}

// playValue orders cards within a hand for pick-the-cheapest decisions.
func playValue(c domain.Card, trump, lead domain.Suit) int {
	switch {
	case euchre.IsRightBower(c, trump):
		return 52
	case euchre.IsLeftBower(c, trump):
		return 51
	case c.Suit == trump:
		return 40 + euchreRankIndex(c.Rank)
	case lead != "" && c.Suit == lead:
		return 20 + euchreRankIndex(c.Rank)
	default:
		return euchreRankIndex(c.Rank)
	}
}

func euchreRankIndex(r domain.Rank) int {
	switch r {
	case domain.Nine:
		return 0
	case domain.Ten:
		return 1
	case domain.Jack:
		return 2
	case domain.Queen:
		return 3
	case domain.King:
		return 4
	default:
		return 5
	}
}

func weakest(cards []domain.Card, trump, lead domain.Suit) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if playValue(c, trump, lead) < playValue(best, trump, lead) {
			best = c
		}
	}
	return best
}

func strongest(cards []domain.Card, trump, lead domain.Suit) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if playValue(c, trump, lead) > playValue(best, trump, lead) {
			best = c
		}
	}
	return best
}
