package euchre

import (
	"testing"

	"cardroom/internal/domain"
)

func TestEffectiveSuit(t *testing.T) {
	tests := []struct {
		name     string
		card     domain.Card
		trump    domain.Suit
		expected domain.Suit
	}{
		{
			name:     "left bower counts as trump",
			card:     domain.Card{Suit: domain.Clubs, Rank: domain.Jack},
			trump:    domain.Spades,
			expected: domain.Spades,
		},
		{
			name:     "right bower keeps its suit",
			card:     domain.Card{Suit: domain.Spades, Rank: domain.Jack},
			trump:    domain.Spades,
			expected: domain.Spades,
		},
		{
			name:     "off-colour jack keeps its suit",
			card:     domain.Card{Suit: domain.Hearts, Rank: domain.Jack},
			trump:    domain.Spades,
			expected: domain.Hearts,
		},
		{
			name:     "plain card keeps its suit",
			card:     domain.Card{Suit: domain.Diamonds, Rank: domain.Ace},
			trump:    domain.Spades,
			expected: domain.Diamonds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveSuit(tt.card, tt.trump); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTrickWinnerLeftBowerBeatsAceOfTrump(t *testing.T) {
	// Trump spades, led with the nine of spades. The left bower (jack of
	// clubs) outranks the ace and king of trump when the right bower is
	// absent.
	trick := NewTrick()
	trick.AddCard(domain.Card{Suit: domain.Spades, Rank: domain.Nine}, 0, domain.Spades)
	trick.AddCard(domain.Card{Suit: domain.Clubs, Rank: domain.Jack}, 1, domain.Spades)
	trick.AddCard(domain.Card{Suit: domain.Spades, Rank: domain.Ace}, 2, domain.Spades)
	trick.AddCard(domain.Card{Suit: domain.Spades, Rank: domain.King}, 3, domain.Spades)

	if winner := TrickWinner(trick, domain.Spades); winner != 1 {
		t.Fatalf("expected seat 1 to win with the left bower, got %d", winner)
	}
}

func TestTrickWinner(t *testing.T) {
	tests := []struct {
		name   string
		trump  domain.Suit
		cards  []domain.Card
		winner int
	}{
		{
			name:  "right bower beats left bower",
			trump: domain.Hearts,
			cards: []domain.Card{
				{Suit: domain.Hearts, Rank: domain.Ace},
				{Suit: domain.Diamonds, Rank: domain.Jack},
				{Suit: domain.Hearts, Rank: domain.Jack},
				{Suit: domain.Hearts, Rank: domain.King},
			},
			winner: 2,
		},
		{
			name:  "any trump beats the led suit",
			trump: domain.Clubs,
			cards: []domain.Card{
				{Suit: domain.Diamonds, Rank: domain.Ace},
				{Suit: domain.Diamonds, Rank: domain.King},
				{Suit: domain.Clubs, Rank: domain.Nine},
				{Suit: domain.Diamonds, Rank: domain.Queen},
			},
			winner: 2,
		},
		{
			name:  "highest of the led suit wins without trump",
			trump: domain.Spades,
			cards: []domain.Card{
				{Suit: domain.Hearts, Rank: domain.Ten},
				{Suit: domain.Hearts, Rank: domain.Queen},
				{Suit: domain.Diamonds, Rank: domain.Ace},
				{Suit: domain.Hearts, Rank: domain.Nine},
			},
			winner: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trick := NewTrick()
			for seat, c := range tt.cards {
				trick.AddCard(c, seat, tt.trump)
			}
			if got := TrickWinner(trick, tt.trump); got != tt.winner {
				t.Errorf("expected seat %d, got %d", tt.winner, got)
			}
		})
	}
}

func TestTrickWinnerEmptyTrickPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for empty trick")
		}
	}()
	TrickWinner(NewTrick(), domain.Spades)
}

func TestLegalPlays(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.Hearts, Rank: domain.Nine},
		{Suit: domain.Clubs, Rank: domain.Jack},
		{Suit: domain.Diamonds, Rank: domain.Ace},
	}

	t.Run("leading allows the whole hand", func(t *testing.T) {
		if got := LegalPlays(hand, NewTrick(), domain.Spades); len(got) != len(hand) {
			t.Errorf("expected %d legal plays, got %d", len(hand), len(got))
		}
	})

	t.Run("must follow with the left bower", func(t *testing.T) {
		trick := NewTrick()
		trick.AddCard(domain.Card{Suit: domain.Spades, Rank: domain.Nine}, 0, domain.Spades)

		got := LegalPlays(hand, trick, domain.Spades)
		if len(got) != 1 {
			t.Fatalf("expected exactly one legal play, got %d", len(got))
		}
		if got[0] != (domain.Card{Suit: domain.Clubs, Rank: domain.Jack}) {
			t.Errorf("expected the left bower, got %v", got[0])
		}
	})

	t.Run("void hand may play anything", func(t *testing.T) {
		trick := NewTrick()
		trick.AddCard(domain.Card{Suit: domain.Spades, Rank: domain.King}, 0, domain.Hearts)

		got := LegalPlays(hand, trick, domain.Hearts)
		if len(got) != len(hand) {
			t.Errorf("expected the whole hand, got %d cards", len(got))
		}
	})

	t.Run("never empty for a non-empty hand", func(t *testing.T) {
		for _, trump := range domain.AllSuits() {
			for _, lead := range domain.NewEuchreDeck() {
				trick := NewTrick()
				trick.AddCard(lead, 0, trump)
				if len(LegalPlays(hand, trick, trump)) == 0 {
					t.Fatalf("no legal plays for trump %v lead %v", trump, lead)
				}
			}
		}
	})
}
