package euchre

import (
	"errors"
	"math/rand"
	"testing"

	"cardroom/internal/domain"
)

// playingRound builds a round mid-play with fixed hands so card-level
// assertions stay deterministic.
func playingRound(trump domain.Suit, alone bool, calledBy int) *Round {
	r := &Round{
		Dealer: 0,
		Phase:  PhasePlaying,
		Trump:  &Trump{Suit: trump, CalledBy: calledBy, GoingAlone: alone},
		Trick:  NewTrick(),
	}
	r.Hands[0] = []domain.Card{{Suit: domain.Spades, Rank: domain.Nine}, {Suit: domain.Hearts, Rank: domain.Ace}}
	r.Hands[1] = []domain.Card{{Suit: domain.Clubs, Rank: domain.Jack}, {Suit: domain.Hearts, Rank: domain.King}}
	r.Hands[2] = []domain.Card{{Suit: domain.Spades, Rank: domain.Ace}, {Suit: domain.Hearts, Rank: domain.Queen}}
	r.Hands[3] = []domain.Card{{Suit: domain.Spades, Rank: domain.King}, {Suit: domain.Hearts, Rank: domain.Ten}}
	r.Current = 0
	return r
}

func TestPlayCardTrickResolution(t *testing.T) {
	r := playingRound(domain.Spades, false, 0)

	plays := []struct {
		seat int
		card domain.Card
	}{
		{0, domain.Card{Suit: domain.Spades, Rank: domain.Nine}},
		{1, domain.Card{Suit: domain.Clubs, Rank: domain.Jack}},
		{2, domain.Card{Suit: domain.Spades, Rank: domain.Ace}},
		{3, domain.Card{Suit: domain.Spades, Rank: domain.King}},
	}
	for _, p := range plays {
		if err := r.PlayCard(p.seat, p.card); err != nil {
			t.Fatalf("seat %d playing %s: %v", p.seat, p.card.ID(), err)
		}
	}

	if len(r.Completed) != 1 {
		t.Fatalf("expected one completed trick, got %d", len(r.Completed))
	}
	if r.Completed[0].Winner != 1 {
		t.Errorf("left bower should win the trick, winner was %d", r.Completed[0].Winner)
	}
	if r.TrickCounts[1] != 1 {
		t.Errorf("team 1 should hold the trick, counts %v", r.TrickCounts)
	}
	if r.Current != 1 {
		t.Errorf("trick winner leads next, got seat %d", r.Current)
	}
}

func TestPlayCardRejections(t *testing.T) {
	r := playingRound(domain.Spades, false, 0)

	t.Run("wrong turn", func(t *testing.T) {
		err := r.PlayCard(2, domain.Card{Suit: domain.Spades, Rank: domain.Ace})
		if !errors.Is(err, ErrNotYourTurn) {
			t.Fatalf("expected ErrNotYourTurn, got %v", err)
		}
	})

	t.Run("card not in hand", func(t *testing.T) {
		err := r.PlayCard(0, domain.Card{Suit: domain.Diamonds, Rank: domain.Nine})
		if !errors.Is(err, ErrCardNotInHand) {
			t.Fatalf("expected ErrCardNotInHand, got %v", err)
		}
	})

	t.Run("must follow suit", func(t *testing.T) {
		if err := r.PlayCard(0, domain.Card{Suit: domain.Spades, Rank: domain.Nine}); err != nil {
			t.Fatalf("lead: %v", err)
		}
		// Seat 1 holds the left bower, so hearts cannot follow spades.
		err := r.PlayCard(1, domain.Card{Suit: domain.Hearts, Rank: domain.King})
		if !errors.Is(err, ErrIllegalPlay) {
			t.Fatalf("expected ErrIllegalPlay, got %v", err)
		}
		if len(r.Hands[1]) != 2 {
			t.Error("rejected play must not remove the card")
		}
	})
}

func TestLoneHandSkipsPartner(t *testing.T) {
	r := playingRound(domain.Spades, true, 0)

	if !r.IsSittingOut(2) {
		t.Fatal("seat 2 should sit out when seat 0 goes alone")
	}
	if err := r.PlayCard(2, domain.Card{Suit: domain.Spades, Rank: domain.Ace}); !errors.Is(err, ErrSittingOut) {
		t.Fatalf("expected ErrSittingOut, got %v", err)
	}

	plays := []struct {
		seat int
		card domain.Card
	}{
		{0, domain.Card{Suit: domain.Spades, Rank: domain.Nine}},
		{1, domain.Card{Suit: domain.Clubs, Rank: domain.Jack}},
		{3, domain.Card{Suit: domain.Spades, Rank: domain.King}},
	}
	for _, p := range plays {
		if err := r.PlayCard(p.seat, p.card); err != nil {
			t.Fatalf("seat %d: %v", p.seat, err)
		}
	}

	if len(r.Completed) != 1 {
		t.Fatal("three cards should complete a lone-hand trick")
	}
	if r.Completed[0].Winner != 1 {
		t.Errorf("expected seat 1 to win, got %d", r.Completed[0].Winner)
	}
}

func TestGameLifecycle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := NewGame(rng, Rules{TargetScore: 2})

	if g.Round == nil || g.Round.Phase != PhaseBiddingRound1 {
		t.Fatal("new game should open with a bidding round")
	}

	// Force a completed round and verify score accumulation and rotation.
	g.Round = completedRound(0, false, 5)
	result, err := g.AdvanceRound(rng)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !result.March {
		t.Error("expected a march")
	}
	if !g.Over || g.Winner != 0 {
		t.Fatalf("team 0 should win at target 2, over=%v winner=%d", g.Over, g.Winner)
	}

	if _, err := g.AdvanceRound(rng); err == nil {
		t.Error("advancing a finished game must fail")
	}
}

func TestGameDealerRotates(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := NewGame(rng, Rules{})

	g.Round = completedRound(0, false, 3)
	if _, err := g.AdvanceRound(rng); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if g.Over {
		t.Fatal("game should continue below the target score")
	}
	if g.Dealer != 1 || g.Round.Dealer != 1 {
		t.Errorf("deal should rotate to seat 1, got %d", g.Dealer)
	}
	if g.Scores != [2]int{1, 0} {
		t.Errorf("unexpected scores %v", g.Scores)
	}
}
