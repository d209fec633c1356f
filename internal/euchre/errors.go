package euchre

import "errors"

// PhaseError rejects an action attempted outside its phase. The round state
// is guaranteed unchanged whenever an error is returned.
type PhaseError string

func (e PhaseError) Error() string { return string(e) }

var (
	ErrNotYourTurn   = errors.New("not this seat's turn")
	ErrCardNotInHand = errors.New("card not in hand")
	ErrIllegalPlay   = errors.New("card does not follow the led suit")
	ErrSuitExcluded  = errors.New("turned-up suit cannot be called in round two")
	ErrMustCallTrump = errors.New("dealer must call trump")
	ErrSittingOut    = errors.New("seat is sitting out this round")
)
