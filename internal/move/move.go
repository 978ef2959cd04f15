// Package move defines the five kinds of Klondike move and the bitmask
// representation used to enumerate and filter a whole move set at once,
// rather than building a slice of individual Move values on every branch.
package move

import (
	"fmt"

	"github.com/oasis-klondike/klondike-solver/internal/card"
	"github.com/oasis-klondike/klondike-solver/internal/hidden"
)

// Kind identifies which of the five move shapes a Move represents.
type Kind int

const (
	DeckStack Kind = iota
	PileStack
	DeckPile
	StackPile
	Reveal
)

// Move names a card and which of the five move kinds moves it.
type Move struct {
	Kind Kind
	Card card.Card
}

func (m Move) String() string {
	tag := map[Kind]string{DeckStack: "DS", PileStack: "PS", DeckPile: "DP", StackPile: "SP", Reveal: "R"}[m.Kind]
	return fmt.Sprintf("%s %s", tag, m.Card)
}

// NMovesMax bounds how many legal moves a single position can ever have:
// N_PILES*2 + N_SUITS*2 - 1.
const NMovesMax = hidden.NPiles*2 + card.NSuits*2 - 1

// Mask holds one 52-bit card mask per move kind, letting a whole legal-move
// set be built, filtered, and combined with plain bitwise ops instead of
// materializing a slice of Move values until iteration time.
type Mask struct {
	PileStack uint64
	DeckStack uint64
	StackPile uint64
	DeckPile  uint64
	Reveal    uint64
}

// FromMove builds a single-move Mask, used by pruners that want to exclude
// or require one specific move.
func FromMove(m Move) Mask {
	var f Mask
	switch m.Kind {
	case PileStack:
		f.PileStack |= m.Card.Mask()
	case DeckStack:
		f.DeckStack |= m.Card.Mask()
	case StackPile:
		f.StackPile |= m.Card.Mask()
	case DeckPile:
		f.DeckPile |= m.Card.Mask()
	case Reveal:
		f.Reveal |= m.Card.Mask()
	}
	return f
}

func binaryOp(a, b Mask, op func(x, y uint64) uint64) Mask {
	return Mask{
		PileStack: op(a.PileStack, b.PileStack),
		DeckStack: op(a.DeckStack, b.DeckStack),
		StackPile: op(a.StackPile, b.StackPile),
		DeckPile:  op(a.DeckPile, b.DeckPile),
		Reveal:    op(a.Reveal, b.Reveal),
	}
}

// IsEmpty reports whether no bits are set in any field.
func (m Mask) IsEmpty() bool {
	return m.PileStack == 0 && m.DeckStack == 0 && m.StackPile == 0 && m.DeckPile == 0 && m.Reveal == 0
}

// Filter removes every move present in remove from m.
func (m Mask) Filter(remove Mask) Mask {
	return binaryOp(m, remove, func(x, y uint64) uint64 { return x &^ y })
}

// Combine ORs two move masks together.
func (m Mask) Combine(other Mask) Mask {
	return binaryOp(m, other, func(x, y uint64) uint64 { return x | y })
}

// iterMaskOpt walks the set bits of a mask, lowest card first, invoking fn
// for each and stopping early if fn returns false.
func iterMaskOpt(m uint64, fn func(card.Card) bool) bool {
	for m != 0 {
		c, _ := card.FromMask(m)
		if !fn(c) {
			return false
		}
		m = card.ClearLowest(m)
	}
	return true
}

// IterMoves visits every move in m, in the fixed order reveal, pile-to-stack,
// deck-to-pile, deck-to-stack, stack-to-pile (the same order the reference
// search explores moves in, which matters for reproducible traversal order).
// Visiting stops as soon as fn returns false.
func (m Mask) IterMoves(fn func(Move) bool) bool {
	if !iterMaskOpt(m.Reveal, func(c card.Card) bool { return fn(Move{Reveal, c}) }) {
		return false
	}
	if !iterMaskOpt(m.PileStack, func(c card.Card) bool { return fn(Move{PileStack, c}) }) {
		return false
	}
	if !iterMaskOpt(m.DeckPile, func(c card.Card) bool { return fn(Move{DeckPile, c}) }) {
		return false
	}
	if !iterMaskOpt(m.DeckStack, func(c card.Card) bool { return fn(Move{DeckStack, c}) }) {
		return false
	}
	return iterMaskOpt(m.StackPile, func(c card.Card) bool { return fn(Move{StackPile, c}) })
}

// ToSlice materializes every move in m, in IterMoves order.
func (m Mask) ToSlice() []Move {
	out := make([]Move, 0, NMovesMax)
	m.IterMoves(func(mv Move) bool {
		out = append(out, mv)
		return true
	})
	return out
}
