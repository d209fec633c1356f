package president

import "errors"

// PhaseError rejects an action attempted outside its phase. Game state is
// guaranteed unchanged whenever an error is returned.
type PhaseError string

func (e PhaseError) Error() string { return string(e) }

var (
	ErrPlayerCount    = errors.New("president needs between 4 and 8 players")
	ErrNotYourTurn    = errors.New("not this seat's turn")
	ErrPlayerFinished = errors.New("seat has already finished")
	ErrCardNotInHand  = errors.New("card not in hand")
	ErrInvalidPlay    = errors.New("cards do not beat the pile")
	ErrMustLead       = errors.New("cannot pass when leading an empty pile")
	ErrNotExchanging  = errors.New("seat owes no exchange cards")
	ErrWrongGiveCount = errors.New("wrong number of exchange cards")
)
