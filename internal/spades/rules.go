// Package spades implements the trick legality rules that differ from
// euchre: spades are permanently trump and may not be led until broken.
package spades

import "cardroom/internal/domain"

var rankOrder = map[domain.Rank]int{
	domain.Two:   0,
	domain.Three: 1,
	domain.Four:  2,
	domain.Five:  3,
	domain.Six:   4,
	domain.Seven: 5,
	domain.Eight: 6,
	domain.Nine:  7,
	domain.Ten:   8,
	domain.Jack:  9,
	domain.Queen: 10,
	domain.King:  11,
	domain.Ace:   12,
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

// AddCard appends a card to the trick, fixing the leading suit on the
// first play.
func (t *Trick) AddCard(c domain.Card, seat int) {
	if len(t.Cards) == 0 {
		t.LeadingSuit = c.Suit
	}
	t.Cards = append(t.Cards, PlayedCard{Card: c, Seat: seat})
}

// onlySpades reports whether a hand holds no off-suit cards at all.
func onlySpades(hand []domain.Card) bool {
	for _, c := range hand {
		if c.Suit != domain.Spades {
			return false
		}
	}
	return len(hand) > 0
}

// CanLead reports whether the card may open a trick. Spades stay barred
// until broken, unless the hand holds nothing else.
func CanLead(c domain.Card, hand []domain.Card, spadesBroken bool) bool {
	if c.Suit != domain.Spades {
		return true
	}
	return spadesBroken || onlySpades(hand)
}

// LegalPlays filters a hand down to the cards playable to the trick. On a
// lead this applies the broken-spades rule; otherwise the led suit must be
// followed when possible, and a void hand may play anything. Never empty
// for a non-empty hand.
func LegalPlays(hand []domain.Card, t *Trick, spadesBroken bool) []domain.Card {
	if t == nil || len(t.Cards) == 0 {
		leads := make([]domain.Card, 0, len(hand))
		for _, c := range hand {
			if CanLead(c, hand, spadesBroken) {
				leads = append(leads, c)
			}
		}
		return leads
	}

	follow := make([]domain.Card, 0, len(hand))
	for _, c := range hand {
		if c.Suit == t.LeadingSuit {
			follow = append(follow, c)
		}
	}
	if len(follow) > 0 {
		return follow
	}
	return append([]domain.Card{}, hand...)
}

// BreaksSpades reports whether playing the card to the trick breaks
// spades: a spade landing on a trick that was not led with spades.
func BreaksSpades(c domain.Card, t *Trick) bool {
	return c.Suit == domain.Spades && t != nil && len(t.Cards) > 0 && t.LeadingSuit != domain.Spades
}

func cardValue(c domain.Card, lead domain.Suit) int {
	switch {
	case c.Suit == domain.Spades:
		return 40 + rankOrder[c.Rank]
	case c.Suit == lead:
		return 20 + rankOrder[c.Rank]
	default:
		return rankOrder[c.Rank]
	}
}

// TrickWinner folds over the played cards: any spade beats the led suit,
// the led suit beats everything else, strict greater-than replacement.
func TrickWinner(t *Trick) int {
	if t == nil || len(t.Cards) == 0 {
		panic("spades: cannot determine winner of an empty trick")
	}

	winner := t.Cards[0].Seat
	best := cardValue(t.Cards[0].Card, t.LeadingSuit)
	for _, pc := range t.Cards[1:] {
		if v := cardValue(pc.Card, t.LeadingSuit); v > best {
			best = v
			winner = pc.Seat
		}
	}
	return winner
}
