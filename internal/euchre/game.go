package euchre

import "math/rand"

const defaultTargetScore = 10

// NewGame starts a euchre game and deals the first round. Seat 0 deals
// first; seats 0/2 and 1/3 are partners.
func NewGame(rng *rand.Rand, rules Rules) *Game {
	if rules.TargetScore == 0 {
		rules.TargetScore = defaultTargetScore
	}
	g := &Game{
		Rules:  rules,
		Winner: -1,
	}
	g.Round = NewRound(rng, g.Dealer)
	return g
}

// AdvanceRound scores the completed round, rotates the deal and either
// starts the next round or ends the game. Team 0 is checked first when both
// teams cross the target in the same round.
func (g *Game) AdvanceRound(rng *rand.Rand) (RoundResult, error) {
	if g.Over {
		return RoundResult{}, PhaseError("game is over")
	}
	if g.Round == nil || g.Round.Phase != PhaseRoundComplete {
		return RoundResult{}, PhaseError("round is not complete")
	}

	result := ScoreRound(g.Round)
	g.Scores[0] += result.Points[0]
	g.Scores[1] += result.Points[1]

	for team := 0; team < 2; team++ {
		if g.Scores[team] >= g.Rules.TargetScore {
			g.Over = true
			g.Winner = team
			g.Round = nil
			return result, nil
		}
	}

	g.Dealer = nextSeat(g.Dealer)
	g.Round = NewRound(rng, g.Dealer)
	return result, nil
}
