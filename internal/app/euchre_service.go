package app

import (
	"cardroom/internal/domain"
	"cardroom/internal/euchre"
)

// EuchreSeats is the fixed seat count for euchre games.
const EuchreSeats = euchre.NumPlayers

// EuchreMatch couples the engine state with the user ids seated around it.
type EuchreMatch struct {
	Game    *euchre.Game
	UserIDs [EuchreSeats]string
}

// StartEuchre creates a euchre game for exactly four user ids.
func (s *Service) StartEuchre(userIDs [EuchreSeats]string, rules euchre.Rules) (*EuchreMatch, []Event, error) {
	for _, id := range userIDs {
		if id == "" {
			return nil, nil, ErrTooFewPlayers
		}
	}

	match := &EuchreMatch{
		Game:    euchre.NewGame(s.rng, rules),
		UserIDs: userIDs,
	}
	events := s.euchreHandEvents(match)
	events = append(events, Event{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Game: "euchre", FirstTurnSeat: match.Game.Round.Current},
	})
	return match, events, nil
}

// OrderUp accepts the turned card as trump for the acting seat.
func (s *Service) OrderUp(match *EuchreMatch, seat int, alone bool) ([]Event, error) {
	round := match.Game.Round
	if err := round.OrderUp(seat, alone); err != nil {
		return nil, err
	}
	return []Event{{
		Kind: EventTrumpSet,
		Payload: TrumpSetPayload{
			Suit:       round.Trump.Suit,
			CalledBy:   seat,
			GoingAlone: alone,
			PickedUp:   true,
		},
	}}, nil
}

// CallTrump names trump in the second bidding round.
func (s *Service) CallTrump(match *EuchreMatch, seat int, suit domain.Suit, alone bool) ([]Event, error) {
	round := match.Game.Round
	if err := round.CallTrump(seat, suit, alone); err != nil {
		return nil, err
	}
	return []Event{{
		Kind: EventTrumpSet,
		Payload: TrumpSetPayload{
			Suit:       suit,
			CalledBy:   seat,
			GoingAlone: alone,
		},
	}}, nil
}

// PassEuchreBid passes the bidding action for the acting seat.
func (s *Service) PassEuchreBid(match *EuchreMatch, seat int) ([]Event, error) {
	round := match.Game.Round
	if err := round.PassBid(seat, match.Game.Rules.StickTheDealer); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventBidPassed,
		Payload: BidPassedPayload{
			Seat:         seat,
			NextTurnSeat: round.Current,
			NextPhase:    round.Phase,
		},
	}}
	if round.Phase == euchre.PhaseRoundComplete {
		// Thrown-in deal: score (a no-op) and redeal immediately.
		return append(events, s.advanceEuchreRound(match)...), nil
	}
	return events, nil
}

// DiscardEuchre performs the dealer discard after a pickup.
func (s *Service) DiscardEuchre(match *EuchreMatch, card domain.Card) ([]Event, error) {
	round := match.Game.Round
	if err := round.DealerDiscard(card); err != nil {
		return nil, err
	}
	return []Event{{
		Kind:       EventHandDealt,
		Payload:    HandDealtPayload{UserID: match.UserIDs[round.Dealer], Seat: round.Dealer, Hand: round.Hands[round.Dealer]},
		Recipients: []string{match.UserIDs[round.Dealer]},
	}}, nil
}

// PlayEuchreCard plays a card and emits trick/round lifecycle events.
func (s *Service) PlayEuchreCard(match *EuchreMatch, seat int, card domain.Card) ([]Event, error) {
	round := match.Game.Round
	tricksBefore := len(round.Completed)
	if err := round.PlayCard(seat, card); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventCardsPlayed,
		Payload: CardsPlayedPayload{
			UserID:       match.UserIDs[seat],
			Seat:         seat,
			Cards:        []domain.Card{card},
			NextTurnSeat: round.Current,
		},
	}}

	if len(round.Completed) > tricksBefore {
		trick := round.Completed[len(round.Completed)-1]
		events = append(events, Event{
			Kind:    EventTrickWon,
			Payload: TrickWonPayload{WinnerSeat: trick.Winner, TrickCounts: round.TrickCounts},
		})
	}
	if round.Phase == euchre.PhaseRoundComplete {
		events = append(events, s.advanceEuchreRound(match)...)
	}
	return events, nil
}

// advanceEuchreRound scores the finished round, then either redeals or
// declares the game over.
func (s *Service) advanceEuchreRound(match *EuchreMatch) []Event {
	result, err := match.Game.AdvanceRound(s.rng)
	if err != nil {
		// Round completion was just observed by the caller.
		panic(err)
	}

	events := []Event{{
		Kind:    EventRoundEnded,
		Payload: EuchreRoundEndedPayload{Result: result, Scores: match.Game.Scores},
	}}
	if match.Game.Over {
		return append(events, Event{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{Winner: match.Game.Winner},
		})
	}
	return append(events, s.euchreHandEvents(match)...)
}

// euchreHandEvents emits one targeted hand event per seat.
func (s *Service) euchreHandEvents(match *EuchreMatch) []Event {
	round := match.Game.Round
	events := make([]Event, 0, EuchreSeats)
	for seat := 0; seat < EuchreSeats; seat++ {
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{UserID: match.UserIDs[seat], Seat: seat, Hand: round.Hands[seat]},
			Recipients: []string{match.UserIDs[seat]},
		})
	}
	return events
}
