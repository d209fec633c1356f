package euchre

import "cardroom/internal/domain"

var rankOrder = map[domain.Rank]int{
	domain.Nine:  0,
	domain.Ten:   1,
	domain.Jack:  2,
	domain.Queen: 3,
	domain.King:  4,
	domain.Ace:   5,
}

// IsRightBower reports whether the card is the jack of trump.
func IsRightBower(c domain.Card, trump domain.Suit) bool {
	return c.Rank == domain.Jack && c.Suit == trump
}

// IsLeftBower reports whether the card is the jack of the same-colour suit.
func IsLeftBower(c domain.Card, trump domain.Suit) bool {
	return c.Rank == domain.Jack && c.Suit == domain.OffSuit(trump)
}

// EffectiveSuit returns the suit a card counts as for following purposes.
// Identical to the nominal suit except the left bower, which counts as trump.
func EffectiveSuit(c domain.Card, trump domain.Suit) domain.Suit {
	if IsLeftBower(c, trump) {
		return trump
	}
	return c.Suit
}

// cardValue ranks a played card for winner comparison. Trump beats the led
// suit, the led suit beats everything else, bowers top the trump band.
func cardValue(c domain.Card, trump, lead domain.Suit) int {
	switch {
	case IsRightBower(c, trump):
		return 52
	case IsLeftBower(c, trump):
		return 51
	case c.Suit == trump:
		return 40 + rankOrder[c.Rank]
	case c.Suit == lead:
		return 20 + rankOrder[c.Rank]
	default:
		return rankOrder[c.Rank]
	}
}

// LegalPlays filters a hand down to the cards that may be played to the
// trick. Leading allows anything; otherwise the led effective suit must be
// followed when possible. A void hand may play anything, so the result is
// never empty for a non-empty hand.
func LegalPlays(hand []domain.Card, t *Trick, trump domain.Suit) []domain.Card {
	if t == nil || len(t.Cards) == 0 {
		return append([]domain.Card{}, hand...)
	}

	lead := t.LeadingSuit
	follow := make([]domain.Card, 0, len(hand))
	for _, c := range hand {
		if EffectiveSuit(c, trump) == lead {
			follow = append(follow, c)
		}
	}
	if len(follow) > 0 {
		return follow
	}
	return append([]domain.Card{}, hand...)
}

// AddCard appends a card to the trick, fixing the leading suit on the first
// play.
func (t *Trick) AddCard(c domain.Card, seat int, trump domain.Suit) {
	if len(t.Cards) == 0 {
		t.LeadingSuit = EffectiveSuit(c, trump)
	}
	t.Cards = append(t.Cards, PlayedCard{Card: c, Seat: seat})
}

// TrickWinner folds over the played cards and returns the winning seat. The
// first card seeds the fold; later cards take over only on a strictly
// greater value, so evaluation order cannot change the result.
func TrickWinner(t *Trick, trump domain.Suit) int {
	if t == nil || len(t.Cards) == 0 {
		panic("euchre: cannot determine winner of an empty trick")
	}

	lead := t.LeadingSuit
	winner := t.Cards[0].Seat
	best := cardValue(t.Cards[0].Card, trump, lead)
	for _, pc := range t.Cards[1:] {
		if v := cardValue(pc.Card, trump, lead); v > best {
			best = v
			winner = pc.Seat
		}
	}
	return winner
}
