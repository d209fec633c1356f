package database

// GameResult is one finished match as persisted by the results store.
// Players holds the seat-ordered user ids encoded as JSON.
type GameResult struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	Game       string `json:"game"`
	Players    string `json:"players"`
	WinnerSeat int    `json:"winner_seat"`
	Team1Score int    `json:"team1_score"`
	Team2Score int    `json:"team2_score"`
	Rounds     int    `json:"rounds"`
}
