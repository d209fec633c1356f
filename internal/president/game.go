package president

import (
	"math/rand"

	"cardroom/internal/domain"
)

// NewGame deals the first round for the given number of seats. The first
// round has no standings, so play starts immediately with seat 0 leading.
func NewGame(rng *rand.Rand, numPlayers int, rules Rules) (*Game, error) {
	if numPlayers < MinPlayers || numPlayers > MaxPlayers {
		return nil, ErrPlayerCount
	}

	g := &Game{
		Rules:        rules,
		Players:      make([]*domain.Player, numPlayers),
		Phase:        PhasePlaying,
		LastPlaySeat: -1,
		Titles:       make(map[int]Title),
		Points:       make(map[int]int),
		Winner:       -1,
	}
	for i := range g.Players {
		g.Players[i] = &domain.Player{Seat: i}
	}
	g.deal(rng)
	return g, nil
}

// deal shuffles a fresh deck and distributes every card round-robin. Some
// seats may receive one card more than others.
func (g *Game) deal(rng *rand.Rand) {
	deck := domain.NewStandardDeck()
	if g.Rules.WithJokers {
		deck = domain.NewStandardDeckWithJokers()
	}
	hands := domain.DealAll(domain.Shuffle(rng, deck), len(g.Players))
	for i, p := range g.Players {
		p.Hand = hands[i]
		p.Finished = false
		SortHand(p.Hand)
	}
	g.Pile = Pile{}
	g.ConsecutivePasses = 0
	g.LastPlaySeat = -1
	g.FinishOrder = nil
}

// activeCount is the number of seats still holding cards.
func (g *Game) activeCount() int {
	return domain.CountPlayersWithCards(g.Players)
}

// nextActiveSeat steps clockwise to the next unfinished seat.
func (g *Game) nextActiveSeat(seat int) int {
	n := len(g.Players)
	s := (seat + 1) % n
	for g.Players[s].Finished {
		s = (s + 1) % n
	}
	return s
}

// seatWithTitle returns the seat holding the given title, or -1.
func (g *Game) seatWithTitle(title Title) int {
	for seat, t := range g.Titles {
		if t == title {
			return seat
		}
	}
	return -1
}

// Play lays a same-rank group on the pile. Rejected plays leave the game
// unchanged.
func (g *Game) Play(seat int, cards []domain.Card) error {
	if g.Phase != PhasePlaying {
		return PhaseError("game is not in the playing phase")
	}
	if seat != g.Current {
		return ErrNotYourTurn
	}
	player := g.Players[seat]
	if player.Finished {
		return ErrPlayerFinished
	}
	if domain.HasDuplicateCards(cards) {
		return ErrInvalidPlay
	}
	for _, c := range cards {
		if !domain.ContainsCard(player.Hand, c) {
			return ErrCardNotInHand
		}
	}
	if !g.ValidPlay(cards) {
		return ErrInvalidPlay
	}

	rank, _ := groupRank(cards)
	player.Hand = domain.RemoveCards(player.Hand, cards)
	g.Pile.Plays = append(g.Pile.Plays, Play{
		Cards: append([]domain.Card{}, cards...),
		Seat:  seat,
		Type:  playTypeFor(len(cards)),
		Rank:  rank,
	})
	g.Pile.Type = playTypeFor(len(cards))
	g.Pile.Rank = rank
	g.Pile.Count = len(cards)
	g.ConsecutivePasses = 0
	g.LastPlaySeat = seat

	if len(player.Hand) == 0 {
		player.Finished = true
		g.FinishOrder = append(g.FinishOrder, seat)
		if g.activeCount() == 1 {
			// Forced last place for the only seat left holding cards.
			last := g.nextActiveSeat(seat)
			g.Players[last].Finished = true
			g.FinishOrder = append(g.FinishOrder, last)
			g.completeRound()
			return nil
		}
	}

	g.Current = g.nextActiveSeat(seat)
	return nil
}

// Pass declines to beat the pile. Once every other active seat has passed
// since the last play, the pile clears exactly once and leadership returns
// to the last successful player (or the next active seat if that player
// finished on the play).
func (g *Game) Pass(seat int) error {
	if g.Phase != PhasePlaying {
		return PhaseError("game is not in the playing phase")
	}
	if seat != g.Current {
		return ErrNotYourTurn
	}
	if g.Players[seat].Finished {
		return ErrPlayerFinished
	}
	if g.Pile.Empty() {
		return ErrMustLead
	}

	g.ConsecutivePasses++

	needed := g.activeCount()
	if !g.Players[g.LastPlaySeat].Finished {
		needed--
	}
	if g.ConsecutivePasses >= needed {
		g.clearPile()
		return nil
	}

	g.Current = g.nextActiveSeat(seat)
	return nil
}

func (g *Game) clearPile() {
	leader := g.LastPlaySeat
	if g.Players[leader].Finished {
		leader = g.nextActiveSeat(leader)
	}
	g.Pile = Pile{}
	g.ConsecutivePasses = 0
	g.LastPlaySeat = -1
	g.Current = leader
}

// completeRound assigns titles and points from the finish order and either
// pauses at round complete or ends the game.
func (g *Game) completeRound() {
	g.Titles = make(map[int]Title)
	n := len(g.FinishOrder)
	for pos, seat := range g.FinishOrder {
		g.Titles[seat] = TitleNeutral
		switch {
		case pos == 0:
			g.Titles[seat] = TitlePresident
			g.Points[seat] += 2
		case pos == 1 && n >= 5:
			g.Titles[seat] = TitleVicePresident
			g.Points[seat]++
		case pos == n-1:
			g.Titles[seat] = TitleScum
		case pos == n-2 && n >= 5:
			g.Titles[seat] = TitleViceScum
		}
	}

	g.RoundsPlayed++
	if g.Rules.TargetRounds > 0 && g.RoundsPlayed >= g.Rules.TargetRounds {
		g.Phase = PhaseGameOver
		g.Winner = g.bestSeat()
		return
	}
	g.Phase = PhaseRoundComplete
}

// bestSeat returns the seat with the most cumulative points, lowest seat
// winning ties.
func (g *Game) bestSeat() int {
	best, bestPoints := 0, -1
	for seat := range g.Players {
		if g.Points[seat] > bestPoints {
			best, bestPoints = seat, g.Points[seat]
		}
	}
	return best
}

// StartNextRound redeals and opens the exchange phase. The scum leads once
// the exchange settles.
func (g *Game) StartNextRound(rng *rand.Rand) error {
	if g.Phase != PhaseRoundComplete {
		return PhaseError("round is not complete")
	}

	g.deal(rng)
	g.Exchange = g.newExchange()
	if len(g.Exchange.Pending) == 0 {
		g.Exchange = nil
		g.Phase = PhasePlaying
		g.Current = g.seatWithTitle(TitleScum)
		return nil
	}
	g.Phase = PhaseExchanging
	g.Current = g.seatWithTitle(TitleScum)
	return nil
}
