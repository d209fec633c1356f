package bot

import (
	"cardroom/internal/domain"
	"cardroom/internal/president"
)

// isSuperPlay reports whether a move would spend 2s or jokers under the
// super-card ruleset.
func isSuperPlay(g *president.Game, cards []domain.Card) bool {
	if !g.Rules.SuperTwos || len(cards) == 0 {
		return false
	}
	return cards[0].Rank == domain.Two || cards[0].Rank == domain.Joker
}

// StandardPresidentBot sheds from the bottom: the lowest-ranked valid play,
// preferring to empty whole rank groups, and holds super cards back unless
// nothing else is legal.
type StandardPresidentBot struct{}

func (b *StandardPresidentBot) CalculateMove(g *president.Game, seat int, tracker *Tracker) (Move, error) {
	hand := g.Players[seat].Hand
	moves := g.FindValidPlays(hand)
	if len(moves) == 0 {
		return Move{Pass: true}, nil
	}

	best := pickLowest(g, moves, false)
	if best == nil {
		// Only super-card plays remain; lead with them rather than pass
		// a fresh pile, pass otherwise.
		if g.Pile.Empty() {
			best = pickLowest(g, moves, true)
		} else {
			return Move{Pass: true}, nil
		}
	}
	return Move{Cards: best}, nil
}

// SmartPresidentBot plays like the standard bot until an opponent is close
// to going out, then spends its strongest plays, super cards included, to
// keep control of the pile.
type SmartPresidentBot struct {
	// ThreatThreshold is the opponent hand size that triggers endgame
	// play. Zero disables threat detection.
	ThreatThreshold int
}

func (b *SmartPresidentBot) CalculateMove(g *president.Game, seat int, tracker *Tracker) (Move, error) {
	hand := g.Players[seat].Hand
	moves := g.FindValidPlays(hand)
	if len(moves) == 0 {
		return Move{Pass: true}, nil
	}

	threshold := b.ThreatThreshold
	if threshold == 0 {
		threshold = 2
	}
	threat := false
	for _, p := range g.Players {
		if p.Seat == seat || p.Finished {
			continue
		}
		if len(p.Hand) > 0 && len(p.Hand) <= threshold {
			threat = true
			break
		}
	}

	if threat {
		if best := pickHighest(g, moves, tracker, hand); best != nil {
			return Move{Cards: best}, nil
		}
	}

	standard := StandardPresidentBot{}
	return standard.CalculateMove(g, seat, tracker)
}

// pickLowest returns the cheapest move: lowest rank first, larger groups
// preferred so rank groups leave the hand whole. Super plays are skipped
// unless includeSuper is set.
func pickLowest(g *president.Game, moves [][]domain.Card, includeSuper bool) []domain.Card {
	var best []domain.Card
	for _, m := range moves {
		if !includeSuper && isSuperPlay(g, m) {
			continue
		}
		if best == nil {
			best = m
			continue
		}
		br, mr := president.RankValue(best[0].Rank), president.RankValue(m[0].Rank)
		if mr < br || (mr == br && len(m) > len(best)) {
			best = m
		}
	}
	return best
}

// pickHighest returns the strongest available move, preferring plays no
// live card can answer.
func pickHighest(g *president.Game, moves [][]domain.Card, tracker *Tracker, hand []domain.Card) []domain.Card {
	deck := domain.NewStandardDeck()
	if g.Rules.WithJokers {
		deck = domain.NewStandardDeckWithJokers()
	}

	var best []domain.Card
	bestRank := -1
	for _, m := range moves {
		r := president.RankValue(m[0].Rank)
		if tracker != nil && tracker.RemainingAbove(m[0].Rank, deck, hand) == 0 {
			// Unanswerable: take it immediately.
			return m
		}
		if r > bestRank {
			best, bestRank = m, r
		}
	}
	return best
}
