package app

import (
	"math/rand"
	"testing"

	"cardroom/internal/domain"
	"cardroom/internal/president"
)

func TestStartPresidentDealsHands(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	svc := NewService(rng)

	game, evs, err := svc.StartPresident([]string{"u1", "u2", "u3", "u4"}, president.Rules{})
	if err != nil {
		t.Fatalf("start president error: %v", err)
	}
	if game.Phase != president.PhasePlaying {
		t.Fatalf("phase = %s, want playing", game.Phase)
	}

	handEvents := 0
	for _, ev := range evs {
		if ev.Kind == EventHandDealt {
			handEvents++
			payload := ev.Payload.(HandDealtPayload)
			if len(payload.Hand) != 13 {
				t.Fatalf("hand size = %d, want 13", len(payload.Hand))
			}
			if len(ev.Recipients) != 1 || ev.Recipients[0] != payload.UserID {
				t.Fatalf("hand event not targeted at its owner: %v", ev.Recipients)
			}
		}
	}
	if handEvents != 4 {
		t.Fatalf("hand events = %d, want 4", handEvents)
	}

	last := evs[len(evs)-1]
	if last.Kind != EventGameStarted {
		t.Fatalf("last event = %s, want game_started", last.Kind)
	}
	if last.Payload.(GameStartedPayload).FirstTurnSeat != game.Current {
		t.Fatalf("first turn seat mismatch")
	}
}

func TestStartPresidentRejectsBadCount(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	if _, _, err := svc.StartPresident([]string{"u1", "u2"}, president.Rules{}); err == nil {
		t.Fatalf("expected error for two players")
	}
}

func TestPassCycleEmitsPileCleared(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	svc := NewService(rng)

	game, _, err := svc.StartPresident([]string{"u1", "u2", "u3", "u4"}, president.Rules{})
	if err != nil {
		t.Fatalf("start president error: %v", err)
	}

	leader := game.Current
	lead := []domain.Card{game.Players[leader].Hand[0]}
	evs, err := svc.PlayPresidentCards(game, leader, lead)
	if err != nil {
		t.Fatalf("lead error: %v", err)
	}
	if evs[0].Kind != EventCardsPlayed {
		t.Fatalf("first event = %s, want cards_played", evs[0].Kind)
	}

	// The other three seats pass; the last pass hands the lead back.
	var lastEvents []Event
	for i := 0; i < 3; i++ {
		lastEvents, err = svc.PassPresidentTurn(game, game.Current)
		if err != nil {
			t.Fatalf("pass %d error: %v", i, err)
		}
	}

	cleared := false
	for _, ev := range lastEvents {
		if ev.Kind == EventPileCleared {
			cleared = true
			if ev.Payload.(PileClearedPayload).LeaderSeat != leader {
				t.Fatalf("leader = %d, want %d", ev.Payload.(PileClearedPayload).LeaderSeat, leader)
			}
		}
	}
	if !cleared {
		t.Fatalf("expected pile_cleared after full pass cycle")
	}
	if game.Current != leader {
		t.Fatalf("turn = %d, want leader %d", game.Current, leader)
	}
}

func TestPlayRejectionsLeaveStateAlone(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	svc := NewService(rng)

	game, _, err := svc.StartPresident([]string{"u1", "u2", "u3", "u4"}, president.Rules{})
	if err != nil {
		t.Fatalf("start president error: %v", err)
	}

	if _, err := svc.PlayPresidentCards(game, 9, nil); err != ErrUnknownSeat {
		t.Fatalf("err = %v, want ErrUnknownSeat", err)
	}

	wrong := (game.Current + 1) % 4
	if _, err := svc.PlayPresidentCards(game, wrong, []domain.Card{game.Players[wrong].Hand[0]}); err == nil {
		t.Fatalf("expected out-of-turn rejection")
	}
	if len(game.Players[wrong].Hand) != 13 {
		t.Fatalf("rejected play mutated the hand")
	}
}
