package domain

// Suit identifies a card suit. Jokers carry a colour pseudo-suit so that the
// two jokers in a deck keep distinct identities.
type Suit string

const (
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"

	RedJoker   Suit = "red"
	BlackJoker Suit = "black"
)

// Rank identifies a card rank as it is displayed.
type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"

	Joker Rank = "joker"
)

// Card is a single playing card. Cards are immutable values; identity is
// derived from suit and rank and never stored separately.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// ID returns the stable identifier for a card, e.g. "hearts-A".
func (c Card) ID() string {
	return string(c.Suit) + "-" + string(c.Rank)
}

// IsJoker reports whether the card is one of the two jokers.
func (c Card) IsJoker() bool {
	return c.Rank == Joker
}

// IsRed reports whether the card is a red suit. Used by solitaire tableau
// rules; jokers are never dealt there.
func (c Card) IsRed() bool {
	return c.Suit == Hearts || c.Suit == Diamonds
}

// SameColor reports whether two cards share a colour.
func SameColor(a, b Card) bool {
	return a.IsRed() == b.IsRed()
}

// OffSuit returns the other suit of the same colour:
// spades <-> clubs, hearts <-> diamonds.
func OffSuit(s Suit) Suit {
	switch s {
	case Spades:
		return Clubs
	case Clubs:
		return Spades
	case Hearts:
		return Diamonds
	case Diamonds:
		return Hearts
	default:
		return s
	}
}

// AllSuits returns the four natural suits in a stable order.
func AllSuits() []Suit {
	return []Suit{Spades, Hearts, Diamonds, Clubs}
}

// ContainsCard reports whether the hand holds the exact card.
func ContainsCard(hand []Card, c Card) bool {
	for _, h := range hand {
		if h == c {
			return true
		}
	}
	return false
}

// HasDuplicateCards reports whether any card appears more than once in the
// slice. A physical deck holds one copy of each card, so a duplicate in a
// submitted selection can never be satisfied by a hand.
func HasDuplicateCards(cards []Card) bool {
	seen := make(map[Card]struct{}, len(cards))
	for _, c := range cards {
		if _, ok := seen[c]; ok {
			return true
		}
		seen[c] = struct{}{}
	}
	return false
}

// RemoveCards removes the given cards from a hand and returns the updated
// hand. Cards not present are ignored; each requested card is removed once.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, card := range toRemove {
		removeCounts[card]++
	}

	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if count, ok := removeCounts[card]; ok && count > 0 {
			removeCounts[card] = count - 1
			continue
		}
		updated = append(updated, card)
	}

	return updated
}
