package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a
	// lobby-capable match for a given game kind.
	RpcQuickMatch = "quick_match"

	// MatchNamePresident is the authoritative president match handler name.
	MatchNamePresident = "president_match"
	// MatchNameEuchre is the authoritative euchre match handler name.
	MatchNameEuchre = "euchre_match"
)

// Match label keys used by the quick-match query.
const (
	MatchLabelKeyOpenSeats = "open"
	MatchLabelKeyGame      = "game"
	MatchLabelKeyPhase     = "phase"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame      int64 = 1
	OpPlayCards      int64 = 2
	OpPassTurn       int64 = 3
	OpBid            int64 = 4
	OpDealerDiscard  int64 = 5
	OpExchangeCards  int64 = 6
	OpRequestNewGame int64 = 7

	// Server -> Client events
	OpPlayerJoined int64 = 101
	OpPlayerLeft   int64 = 102
	OpGameStarted  int64 = 103
	OpHandDealt    int64 = 104 // send privately
	OpCardsPlayed  int64 = 105
	OpTurnPassed   int64 = 106
	OpPileCleared  int64 = 107
	OpTrumpSet     int64 = 108
	OpBidPassed    int64 = 109
	OpTrickWon     int64 = 110
	OpRoundEnded   int64 = 111
	OpGameEnded    int64 = 112
	OpGameError    int64 = 120
)
