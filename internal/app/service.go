// Package app contains the use-cases that sit between the transports and
// the game engines. Services validate intent, drive the engines and emit
// events for the transport layer to fan out.
package app

import (
	"errors"
	"math/rand"
	"time"

	"cardroom/internal/domain"
	"cardroom/internal/president"
)

// Service contains game use-cases operating on engine state.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotPlaying     = errors.New("game not in playing phase")
	ErrUnknownSeat    = errors.New("seat not found")
	ErrTooFewPlayers  = errors.New("not enough players to start")
	ErrGameInProgress = errors.New("game already in progress")
)

// StartPresident creates a president game for the given user ids in seat
// order and emits targeted hand events.
func (s *Service) StartPresident(userIDs []string, rules president.Rules) (*president.Game, []Event, error) {
	game, err := president.NewGame(s.rng, len(userIDs), rules)
	if err != nil {
		return nil, nil, err
	}
	for seat, userID := range userIDs {
		game.Players[seat].UserID = userID
	}

	events := handDealtEvents(game.Players)
	events = append(events, Event{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Game: "president", FirstTurnSeat: game.Current},
	})
	return game, events, nil
}

// PlayPresidentCards processes a play action and emits resulting events.
func (s *Service) PlayPresidentCards(game *president.Game, seat int, cards []domain.Card) ([]Event, error) {
	if seat < 0 || seat >= len(game.Players) {
		return nil, ErrUnknownSeat
	}
	if err := game.Play(seat, cards); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventCardsPlayed,
		Payload: CardsPlayedPayload{
			UserID:       game.Players[seat].UserID,
			Seat:         seat,
			Cards:        cards,
			NextTurnSeat: game.Current,
		},
	}}
	return append(events, presidentLifecycleEvents(game)...), nil
}

// PassPresidentTurn processes a pass action and emits resulting events.
func (s *Service) PassPresidentTurn(game *president.Game, seat int) ([]Event, error) {
	if seat < 0 || seat >= len(game.Players) {
		return nil, ErrUnknownSeat
	}
	pileWasLive := !game.Pile.Empty()
	if err := game.Pass(seat); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventTurnPassed,
		Payload: TurnPassedPayload{
			UserID:       game.Players[seat].UserID,
			Seat:         seat,
			NextTurnSeat: game.Current,
		},
	}}
	if pileWasLive && game.Pile.Empty() {
		events = append(events, Event{
			Kind:    EventPileCleared,
			Payload: PileClearedPayload{LeaderSeat: game.Current},
		})
	}
	return events, nil
}

// StartNextPresidentRound redeals, opens the exchange and emits fresh hand
// events.
func (s *Service) StartNextPresidentRound(game *president.Game) ([]Event, error) {
	if err := game.StartNextRound(s.rng); err != nil {
		return nil, err
	}
	return handDealtEvents(game.Players), nil
}

// SubmitPresidentExchange forwards an exchange selection and emits the
// refreshed hands of both sides once it lands.
func (s *Service) SubmitPresidentExchange(game *president.Game, seat int, give []domain.Card) ([]Event, error) {
	if seat < 0 || seat >= len(game.Players) {
		return nil, ErrUnknownSeat
	}
	if err := game.SubmitExchange(seat, give); err != nil {
		return nil, err
	}

	events := handDealtEvents(game.Players)
	if game.Phase == president.PhasePlaying {
		events = append(events, Event{
			Kind:    EventGameStarted,
			Payload: GameStartedPayload{Game: "president", FirstTurnSeat: game.Current},
		})
	}
	return events, nil
}

// presidentLifecycleEvents appends round/game end events after a play.
func presidentLifecycleEvents(game *president.Game) []Event {
	var events []Event
	switch game.Phase {
	case president.PhaseRoundComplete:
		events = append(events, Event{
			Kind: EventRoundEnded,
			Payload: PresidentRoundEndedPayload{
				FinishOrder: game.FinishOrder,
				Titles:      game.Titles,
				Points:      game.Points,
			},
		})
	case president.PhaseGameOver:
		events = append(events,
			Event{
				Kind: EventRoundEnded,
				Payload: PresidentRoundEndedPayload{
					FinishOrder: game.FinishOrder,
					Titles:      game.Titles,
					Points:      game.Points,
				},
			},
			Event{Kind: EventGameEnded, Payload: GameEndedPayload{Winner: game.Winner}},
		)
	}
	return events
}

// handDealtEvents emits one targeted event per seated human or bot.
func handDealtEvents(players []*domain.Player) []Event {
	events := make([]Event, 0, len(players))
	for _, p := range players {
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{UserID: p.UserID, Seat: p.Seat, Hand: p.Hand},
			Recipients: []string{p.UserID},
		})
	}
	return events
}
