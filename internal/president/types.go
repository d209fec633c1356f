package president

import "cardroom/internal/domain"

// Player-count bounds enforced at game construction.
const (
	MinPlayers = 4
	MaxPlayers = 8
)

// Phase represents the lifecycle stage of a president game.
type Phase string

const (
	// PhaseExchanging is the pre-play card exchange of every round after
	// the first.
	PhaseExchanging Phase = "exchanging"
	// PhasePlaying is active pile play.
	PhasePlaying Phase = "playing"
	// PhaseRoundComplete is reached once every seat has finished.
	PhaseRoundComplete Phase = "round_complete"
	// PhaseGameOver is terminal.
	PhaseGameOver Phase = "game_over"
)

// PlayType is the cardinality class of a same-rank play.
type PlayType int

const (
	PlayInvalid PlayType = iota
	PlaySingle
	PlayPair
	PlayTriple
	PlayQuad
)

func (p PlayType) String() string {
	switch p {
	case PlaySingle:
		return "single"
	case PlayPair:
		return "pair"
	case PlayTriple:
		return "triple"
	case PlayQuad:
		return "quad"
	default:
		return "invalid"
	}
}

// Play is a same-rank group of 1-4 cards laid on the pile by one seat.
type Play struct {
	Cards []domain.Card
	Seat  int
	Type  PlayType
	Rank  domain.Rank
}

// Pile is the shared discard pile for the current cycle. Rank and Count are
// zero values only while the pile is empty.
type Pile struct {
	Plays []Play
	Type  PlayType
	Rank  domain.Rank
	Count int
}

// Empty reports whether a fresh lead is expected.
func (p *Pile) Empty() bool {
	return len(p.Plays) == 0
}

// Title is the seat standing earned by finish order.
type Title string

const (
	TitlePresident     Title = "president"
	TitleVicePresident Title = "vice_president"
	TitleNeutral       Title = "neutral"
	TitleViceScum      Title = "vice_scum"
	TitleScum          Title = "scum"
)

// Rules captures the table rule variants for a game.
type Rules struct {
	// SuperTwos enables the 2/joker override beat rules.
	SuperTwos bool
	// WithJokers adds the two jokers to the deck.
	WithJokers bool
	// TargetRounds ends the game after this many completed rounds.
	// Zero plays on indefinitely.
	TargetRounds int
}

// ExchangeState tracks the outstanding give selections of the pre-round
// card exchange. Keys are seats that owe cards; values are how many.
type ExchangeState struct {
	Pending map[int]int
}

// Game is the authoritative state for a president game across rounds.
type Game struct {
	Rules   Rules
	Players []*domain.Player

	Phase   Phase
	Current int
	Pile    Pile

	ConsecutivePasses int
	LastPlaySeat      int

	FinishOrder []int
	Titles      map[int]Title
	Points      map[int]int

	RoundsPlayed int
	Winner       int

	Exchange *ExchangeState
}
