// Package klondike implements solitaire move validation and the draw/waste
// cycle.
package klondike

import (
	"math/rand"

	"cardroom/internal/domain"
)

const numColumns = 7

var rankOrder = map[domain.Rank]int{
	domain.Ace:   1,
	domain.Two:   2,
	domain.Three: 3,
	domain.Four:  4,
	domain.Five:  5,
	domain.Six:   6,
	domain.Seven: 7,
	domain.Eight: 8,
	domain.Nine:  9,
	domain.Ten:   10,
	domain.Jack:  11,
	domain.Queen: 12,
	domain.King:  13,
}

// IsOppositeColor reports whether two cards alternate colours.
func IsOppositeColor(a, b domain.Card) bool {
	return a.IsRed() != b.IsRed()
}

// CanMoveToFoundation reports whether a card may go on a foundation pile:
// an ace on an empty pile, otherwise the next rank of the same suit.
func CanMoveToFoundation(c domain.Card, foundation []domain.Card) bool {
	if len(foundation) == 0 {
		return c.Rank == domain.Ace
	}
	top := foundation[len(foundation)-1]
	return c.Suit == top.Suit && rankOrder[c.Rank] == rankOrder[top.Rank]+1
}

// CanMoveToTableau reports whether a card may go on a tableau column: a
// king on an empty column, otherwise one rank lower in the opposite colour.
func CanMoveToTableau(c domain.Card, column []domain.Card) bool {
	if len(column) == 0 {
		return c.Rank == domain.King
	}
	top := column[len(column)-1]
	return IsOppositeColor(c, top) && rankOrder[c.Rank] == rankOrder[top.Rank]-1
}

// Game is a klondike layout. Tableau columns hold FaceDown hidden cards
// below their visible run.
type Game struct {
	Stock       []domain.Card
	Waste       []domain.Card
	Foundations [4][]domain.Card
	Tableau     [numColumns][]domain.Card
	FaceDown    [numColumns]int
}

// NewGame deals the classic layout: columns of one through seven cards,
// the top of each face up, the remaining 24 cards forming the stock.
func NewGame(rng *rand.Rand) *Game {
	deck := domain.Shuffle(rng, domain.NewStandardDeck())
	g := &Game{}

	idx := 0
	for col := 0; col < numColumns; col++ {
		g.Tableau[col] = append([]domain.Card{}, deck[idx:idx+col+1]...)
		g.FaceDown[col] = col
		idx += col + 1
	}
	g.Stock = append([]domain.Card{}, deck[idx:]...)
	return g
}

// Draw flips the top stock card to the waste. An empty stock recycles the
// waste; drawing with both empty is a no-op.
func (g *Game) Draw() {
	if len(g.Stock) == 0 {
		if len(g.Waste) == 0 {
			return
		}
		for i := len(g.Waste) - 1; i >= 0; i-- {
			g.Stock = append(g.Stock, g.Waste[i])
		}
		g.Waste = nil
	}
	last := len(g.Stock) - 1
	g.Waste = append(g.Waste, g.Stock[last])
	g.Stock = g.Stock[:last]
}

// MoveWasteToFoundation plays the top waste card onto the foundation pile.
func (g *Game) MoveWasteToFoundation(pile int) bool {
	if len(g.Waste) == 0 || pile < 0 || pile >= len(g.Foundations) {
		return false
	}
	c := g.Waste[len(g.Waste)-1]
	if !CanMoveToFoundation(c, g.Foundations[pile]) {
		return false
	}
	g.Foundations[pile] = append(g.Foundations[pile], c)
	g.Waste = g.Waste[:len(g.Waste)-1]
	return true
}

// MoveWasteToTableau plays the top waste card onto a column.
func (g *Game) MoveWasteToTableau(col int) bool {
	if len(g.Waste) == 0 || col < 0 || col >= numColumns {
		return false
	}
	c := g.Waste[len(g.Waste)-1]
	if !CanMoveToTableau(c, g.Tableau[col]) {
		return false
	}
	g.Tableau[col] = append(g.Tableau[col], c)
	g.Waste = g.Waste[:len(g.Waste)-1]
	return true
}

// MoveTableauToFoundation plays the top card of a column onto a foundation
// pile, revealing the card beneath it.
func (g *Game) MoveTableauToFoundation(col, pile int) bool {
	if col < 0 || col >= numColumns || pile < 0 || pile >= len(g.Foundations) {
		return false
	}
	column := g.Tableau[col]
	if len(column) == 0 {
		return false
	}
	c := column[len(column)-1]
	if !CanMoveToFoundation(c, g.Foundations[pile]) {
		return false
	}
	g.Foundations[pile] = append(g.Foundations[pile], c)
	g.Tableau[col] = column[:len(column)-1]
	g.reveal(col)
	return true
}

// MoveTableauRun moves the visible run starting at fromIndex onto another
// column.
func (g *Game) MoveTableauRun(fromCol, fromIndex, toCol int) bool {
	if fromCol < 0 || fromCol >= numColumns || toCol < 0 || toCol >= numColumns || fromCol == toCol {
		return false
	}
	column := g.Tableau[fromCol]
	if fromIndex < g.FaceDown[fromCol] || fromIndex >= len(column) {
		return false
	}
	run := column[fromIndex:]
	if !CanMoveToTableau(run[0], g.Tableau[toCol]) {
		return false
	}
	g.Tableau[toCol] = append(g.Tableau[toCol], run...)
	g.Tableau[fromCol] = column[:fromIndex]
	g.reveal(fromCol)
	return true
}

// reveal flips the new top card of a column face up when the visible run
// was exhausted.
func (g *Game) reveal(col int) {
	if g.FaceDown[col] > 0 && g.FaceDown[col] >= len(g.Tableau[col]) {
		g.FaceDown[col] = len(g.Tableau[col]) - 1
	}
}

// Won reports whether all four foundations are complete.
func (g *Game) Won() bool {
	for _, f := range g.Foundations {
		if len(f) != 13 {
			return false
		}
	}
	return true
}
