package domain

// Player holds seat-level state shared by every game family. Hands are
// mutated only by dealing, playing and discard operations.
type Player struct {
	UserID   string
	Seat     int
	Hand     []Card
	Finished bool
}

// TeamForSeat returns the team index for partner games: seats 0 and 2
// against seats 1 and 3.
func TeamForSeat(seat int) int {
	return seat % 2
}

// CountPlayersWithCards returns the number of unfinished players still
// holding cards.
func CountPlayersWithCards(players []*Player) int {
	count := 0
	for _, p := range players {
		if p != nil && !p.Finished && len(p.Hand) > 0 {
			count++
		}
	}
	return count
}
