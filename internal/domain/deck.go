package domain

import "math/rand"

var fullRanks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var euchreRanks = []Rank{Nine, Ten, Jack, Queen, King, Ace}

// NewStandardDeck returns an ordered 52-card deck.
func NewStandardDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range AllSuits() {
		for _, r := range fullRanks {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// NewStandardDeckWithJokers returns an ordered 54-card deck including the
// red and black jokers.
func NewStandardDeckWithJokers() []Card {
	deck := NewStandardDeck()
	return append(deck, Card{Suit: RedJoker, Rank: Joker}, Card{Suit: BlackJoker, Rank: Joker})
}

// NewEuchreDeck returns the reduced 24-card deck (nine through ace).
func NewEuchreDeck() []Card {
	deck := make([]Card, 0, 24)
	for _, s := range AllSuits() {
		for _, r := range euchreRanks {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle returns a shuffled copy of the given deck using a Fisher-Yates
// walk over the provided source. The input deck is not modified.
func Shuffle(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Deal partitions the front of a deck into numHands hands of handSize cards
// each and returns the hands plus the undealt remainder. The caller
// guarantees the deck is large enough; this is enforced by the fixed deck
// and player-count bounds checked at game construction.
func Deal(deck []Card, numHands, handSize int) ([][]Card, []Card) {
	hands := make([][]Card, numHands)
	idx := 0
	for i := 0; i < numHands; i++ {
		hand := make([]Card, handSize)
		copy(hand, deck[idx:idx+handSize])
		hands[i] = hand
		idx += handSize
	}
	rest := make([]Card, len(deck)-idx)
	copy(rest, deck[idx:])
	return hands, rest
}

// DealAll distributes the whole deck round-robin across numHands hands.
// When the deck does not divide evenly, earlier hands receive one extra card.
func DealAll(deck []Card, numHands int) [][]Card {
	hands := make([][]Card, numHands)
	for i := range hands {
		hands[i] = make([]Card, 0, len(deck)/numHands+1)
	}
	for i, c := range deck {
		hands[i%numHands] = append(hands[i%numHands], c)
	}
	return hands
}
