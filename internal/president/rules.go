package president

import (
	"sort"

	"cardroom/internal/domain"
)

// rankOrder is the president ordering: 3 lowest through ace, then 2, with
// jokers above everything.
var rankOrder = map[domain.Rank]int{
	domain.Three: 0,
	domain.Four:  1,
	domain.Five:  2,
	domain.Six:   3,
	domain.Seven: 4,
	domain.Eight: 5,
	domain.Nine:  6,
	domain.Ten:   7,
	domain.Jack:  8,
	domain.Queen: 9,
	domain.King:  10,
	domain.Ace:   11,
	domain.Two:   12,
	domain.Joker: 13,
}

// RankValue exposes the president rank ordering for strategy code.
func RankValue(r domain.Rank) int {
	return rankOrder[r]
}

// SortHand orders cards by ascending president rank, suit breaking ties.
func SortHand(cards []domain.Card) {
	sort.Slice(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if rankOrder[a.Rank] != rankOrder[b.Rank] {
			return rankOrder[a.Rank] < rankOrder[b.Rank]
		}
		return a.Suit < b.Suit
	})
}

// category classifies a rank for the super-card decision table.
type category int

const (
	catNormal category = iota
	catTwo
	catJoker
)

func (g *Game) categoryOf(r domain.Rank) category {
	if !g.Rules.SuperTwos {
		return catNormal
	}
	switch r {
	case domain.Joker:
		return catJoker
	case domain.Two:
		return catTwo
	default:
		return catNormal
	}
}

// beatRule is one row of the decision table: how a play of the row's
// category may beat a pile of the column's category.
type beatRule struct {
	allowed bool
	// count derives the required card count from the pile's card count.
	count func(pileCount int) int
	// exact requires the count to match exactly rather than be a minimum.
	exact bool
	// compareRank additionally requires a strictly higher rank.
	compareRank bool
}

func sameCount(n int) int { return n }
func oneFewer(n int) int {
	if n <= 1 {
		return 1
	}
	return n - 1
}
func single(int) int      { return 1 }
func exceeding(n int) int { return n + 1 }

// beatTable is the single source of truth for pile-beat decisions, shared
// by ValidPlay and FindValidPlays. Indexed [play category][pile category].
var beatTable = map[category]map[category]beatRule{
	catNormal: {
		catNormal: {allowed: true, count: sameCount, exact: true, compareRank: true},
		catTwo:    {allowed: false},
		catJoker:  {allowed: false},
	},
	catTwo: {
		catNormal: {allowed: true, count: oneFewer},
		catTwo:    {allowed: false},
		catJoker:  {allowed: false},
	},
	catJoker: {
		catNormal: {allowed: true, count: single},
		catTwo:    {allowed: true, count: single},
		catJoker:  {allowed: true, count: exceeding},
	},
}

// groupRank returns the shared rank of a 1-4 card same-rank group, or false
// for any other shape.
func groupRank(cards []domain.Card) (domain.Rank, bool) {
	if len(cards) == 0 || len(cards) > 4 {
		return "", false
	}
	r := cards[0].Rank
	for _, c := range cards[1:] {
		if c.Rank != r {
			return "", false
		}
	}
	return r, true
}

// ValidPlay reports whether the cards form a legal play against the current
// pile. An empty pile accepts any same-rank group of one to four cards.
func (g *Game) ValidPlay(cards []domain.Card) bool {
	rank, ok := groupRank(cards)
	if !ok {
		return false
	}
	if g.Pile.Empty() {
		return true
	}

	rule := beatTable[g.categoryOf(rank)][g.categoryOf(g.Pile.Rank)]
	if !rule.allowed {
		return false
	}
	need := rule.count(g.Pile.Count)
	if rule.exact {
		if len(cards) != need {
			return false
		}
	} else if len(cards) < need {
		return false
	}
	if rule.compareRank && rankOrder[rank] <= rankOrder[g.Pile.Rank] {
		return false
	}
	return true
}

// FindValidPlays enumerates every legal same-rank subset of the hand given
// the pile state. Every returned combination satisfies ValidPlay, and no
// valid combination is omitted; both guarantees follow from sharing the
// beat table above.
func (g *Game) FindValidPlays(hand []domain.Card) [][]domain.Card {
	byRank := make(map[domain.Rank][]domain.Card)
	ranks := make([]domain.Rank, 0, len(hand))
	for _, c := range hand {
		if _, seen := byRank[c.Rank]; !seen {
			ranks = append(ranks, c.Rank)
		}
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	sort.Slice(ranks, func(i, j int) bool { return rankOrder[ranks[i]] < rankOrder[ranks[j]] })

	var plays [][]domain.Card
	for _, r := range ranks {
		group := byRank[r]
		for _, subset := range rankSubsets(group) {
			if g.ValidPlay(subset) {
				plays = append(plays, subset)
			}
		}
	}
	return plays
}

// rankSubsets returns every non-empty subset of a same-rank group. Groups
// never exceed four cards.
func rankSubsets(group []domain.Card) [][]domain.Card {
	var out [][]domain.Card
	n := len(group)
	for mask := 1; mask < 1<<n; mask++ {
		subset := make([]domain.Card, 0, n)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, group[i])
			}
		}
		out = append(out, subset)
	}
	return out
}

// playTypeFor maps a card count to its play type.
func playTypeFor(count int) PlayType {
	switch count {
	case 1:
		return PlaySingle
	case 2:
		return PlayPair
	case 3:
		return PlayTriple
	case 4:
		return PlayQuad
	default:
		return PlayInvalid
	}
}
