package euchre

import (
	"errors"
	"math/rand"
	"testing"

	"cardroom/internal/domain"
)

func newTestRound(t *testing.T, dealer int) *Round {
	t.Helper()
	return NewRound(rand.New(rand.NewSource(42)), dealer)
}

func TestNewRoundDealCompleteness(t *testing.T) {
	r := newTestRound(t, 0)

	seen := make(map[string]bool)
	total := 0
	for seat := 0; seat < NumPlayers; seat++ {
		if len(r.Hands[seat]) != HandSize {
			t.Fatalf("seat %d dealt %d cards", seat, len(r.Hands[seat]))
		}
		for _, c := range r.Hands[seat] {
			if seen[c.ID()] {
				t.Fatalf("duplicate card %s", c.ID())
			}
			seen[c.ID()] = true
			total++
		}
	}
	for _, c := range r.Kitty {
		if seen[c.ID()] {
			t.Fatalf("duplicate card %s in kitty", c.ID())
		}
		seen[c.ID()] = true
		total++
	}
	if total != 24 {
		t.Fatalf("expected 24 cards accounted for, got %d", total)
	}
	if r.Turned != r.Kitty[0] {
		t.Error("turned card should be the top of the kitty")
	}
	if r.Current != 1 {
		t.Errorf("bidding should start left of the dealer, got seat %d", r.Current)
	}
}

func TestOrderUpSetsTrumpAndDealerDiscards(t *testing.T) {
	r := newTestRound(t, 0)
	turned := r.Turned

	if err := r.OrderUp(1, false); err != nil {
		t.Fatalf("order up: %v", err)
	}
	if r.Trump == nil || r.Trump.Suit != turned.Suit || r.Trump.CalledBy != 1 {
		t.Fatalf("unexpected trump %+v", r.Trump)
	}
	if r.Phase != PhaseDealerDiscard {
		t.Fatalf("expected dealer discard phase, got %s", r.Phase)
	}
	if len(r.Hands[0]) != HandSize+1 {
		t.Fatalf("dealer should hold six cards, has %d", len(r.Hands[0]))
	}
	if !domain.ContainsCard(r.Hands[0], turned) {
		t.Fatal("dealer did not pick up the turned card")
	}

	discard := r.Hands[0][0]
	if err := r.DealerDiscard(discard); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if r.Phase != PhasePlaying {
		t.Fatalf("expected playing phase, got %s", r.Phase)
	}
	if len(r.Hands[0]) != HandSize {
		t.Fatalf("dealer should be back to five cards, has %d", len(r.Hands[0]))
	}
	if r.Current != 1 {
		t.Errorf("seat left of the dealer should lead, got %d", r.Current)
	}
}

func TestBiddingTurnOrderEnforced(t *testing.T) {
	r := newTestRound(t, 0)

	if err := r.OrderUp(2, false); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if r.Trump != nil || r.Phase != PhaseBiddingRound1 {
		t.Fatal("rejected bid must not change state")
	}
}

func TestFourPassesOpenRoundTwo(t *testing.T) {
	r := newTestRound(t, 0)

	for seat := 1; ; seat = nextSeat(seat) {
		if err := r.PassBid(seat, false); err != nil {
			t.Fatalf("pass seat %d: %v", seat, err)
		}
		if seat == 0 {
			break
		}
	}

	if r.Phase != PhaseBiddingRound2 {
		t.Fatalf("expected second bidding round, got %s", r.Phase)
	}
	if r.Current != 1 {
		t.Errorf("round two should start left of the dealer, got seat %d", r.Current)
	}
}

func TestCallTrumpExcludesTurnedSuit(t *testing.T) {
	r := newTestRound(t, 0)
	passAll(t, r)

	if err := r.CallTrump(1, r.Turned.Suit, false); !errors.Is(err, ErrSuitExcluded) {
		t.Fatalf("expected ErrSuitExcluded, got %v", err)
	}
	if r.Trump != nil || r.Phase != PhaseBiddingRound2 {
		t.Fatal("rejected call must not change state")
	}

	suit := domain.OffSuit(r.Turned.Suit)
	if err := r.CallTrump(1, suit, true); err != nil {
		t.Fatalf("call trump: %v", err)
	}
	if r.Trump.Suit != suit || !r.Trump.GoingAlone {
		t.Fatalf("unexpected trump %+v", r.Trump)
	}
	if r.Phase != PhasePlaying {
		t.Fatalf("expected playing phase, got %s", r.Phase)
	}
	if !r.IsSittingOut(3) {
		t.Error("partner of the lone caller should sit out")
	}
}

func TestStickTheDealerRefusesDealerPass(t *testing.T) {
	r := newTestRound(t, 0)
	passAll(t, r)

	for _, seat := range []int{1, 2, 3} {
		if err := r.PassBid(seat, true); err != nil {
			t.Fatalf("pass seat %d: %v", seat, err)
		}
	}
	if err := r.PassBid(0, true); !errors.Is(err, ErrMustCallTrump) {
		t.Fatalf("expected ErrMustCallTrump, got %v", err)
	}
	if r.Phase != PhaseBiddingRound2 {
		t.Fatal("dealer pass must not change state under stick the dealer")
	}
}

func TestAllPassesThrowInTheDeal(t *testing.T) {
	r := newTestRound(t, 0)
	passAll(t, r)
	for _, seat := range []int{1, 2, 3, 0} {
		if err := r.PassBid(seat, false); err != nil {
			t.Fatalf("pass seat %d: %v", seat, err)
		}
	}

	if r.Phase != PhaseRoundComplete || !r.Misdeal {
		t.Fatalf("expected a thrown-in deal, got phase %s misdeal %v", r.Phase, r.Misdeal)
	}
}

// passAll walks the first bidding round with four passes.
func passAll(t *testing.T, r *Round) {
	t.Helper()
	for _, seat := range []int{1, 2, 3, 0} {
		if err := r.PassBid(seat, false); err != nil {
			t.Fatalf("pass seat %d: %v", seat, err)
		}
	}
}
