package bot

import (
	"cardroom/internal/domain"
	"cardroom/internal/president"
)

// Tracker remembers the cards an agent has seen leave play during one
// round. Each agent owns its own instance, so concurrently running games
// never share memory.
type Tracker struct {
	seen map[string]bool
}

// NewTracker returns an empty per-round card memory.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]bool)}
}

// Observe records played cards.
func (t *Tracker) Observe(cards []domain.Card) {
	for _, c := range cards {
		t.seen[c.ID()] = true
	}
}

// Reset clears the memory for a new round.
func (t *Tracker) Reset() {
	t.seen = make(map[string]bool)
}

// Seen reports whether a card has already been played.
func (t *Tracker) Seen(c domain.Card) bool {
	return t.seen[c.ID()]
}

// RemainingAbove counts unseen cards that outrank the given president rank.
// The caller's own hand is excluded.
func (t *Tracker) RemainingAbove(rank domain.Rank, deck, hand []domain.Card) int {
	inHand := make(map[string]bool, len(hand))
	for _, c := range hand {
		inHand[c.ID()] = true
	}
	count := 0
	for _, c := range deck {
		if president.RankValue(c.Rank) <= president.RankValue(rank) {
			continue
		}
		if t.seen[c.ID()] || inHand[c.ID()] {
			continue
		}
		count++
	}
	return count
}
