package euchre

import "cardroom/internal/domain"

// ScoreRound computes the points for a completed round. A thrown-in deal
// scores nothing.
func ScoreRound(r *Round) RoundResult {
	if r.Phase != PhaseRoundComplete {
		panic("euchre: scoring an unfinished round")
	}
	if r.Misdeal {
		return RoundResult{CallingTeam: -1}
	}

	callingTeam := domain.TeamForSeat(r.Trump.CalledBy)
	defendingTeam := 1 - callingTeam
	tricks := r.TrickCounts[callingTeam]

	result := RoundResult{CallingTeam: callingTeam, Alone: r.Trump.GoingAlone}
	switch {
	case tricks == HandSize && r.Trump.GoingAlone:
		result.March = true
		result.Points[callingTeam] = 4
	case tricks == HandSize:
		result.March = true
		result.Points[callingTeam] = 2
	case tricks >= 3:
		result.Points[callingTeam] = 1
	default:
		result.Euchred = true
		result.Points[defendingTeam] = 2
	}
	return result
}
