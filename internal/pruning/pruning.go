// Package pruning implements search-space pruners: policies that, given the
// move just played and the state before it, compute a mask of moves to
// exclude from the next ply because they cannot lead anywhere the prior
// move didn't already rule out.
package pruning

import (
	"github.com/oasis-klondike/klondike-solver/internal/card"
	"github.com/oasis-klondike/klondike-solver/internal/move"
	"github.com/oasis-klondike/klondike-solver/internal/solitaire"
)

// Pruner computes, from the move history, a mask of moves that should not
// be explored next.
type Pruner interface {
	// Update returns the pruner state to use after playing m (whose reverse
	// is revMove, if one exists, and whose hidden-layer side effect is
	// extra).
	Update(m move.Move, revMove move.Move, hasRev bool, extra solitaire.ExtraInfo) Pruner
	// PruneMoves returns the moves to exclude from game's next move list.
	PruneMoves(game *solitaire.Solitaire) move.Mask
}

// NoPruner never excludes anything.
type NoPruner struct{}

func (NoPruner) Update(move.Move, move.Move, bool, solitaire.ExtraInfo) Pruner { return NoPruner{} }
func (NoPruner) PruneMoves(*solitaire.Solitaire) move.Mask                     { return move.Mask{} }

// CyclePruner excludes the single move that would exactly undo the move
// just played, preventing trivial back-and-forth cycles.
type CyclePruner struct {
	revMove move.Move
	hasRev  bool
}

func (p CyclePruner) Update(_ move.Move, revMove move.Move, hasRev bool, _ solitaire.ExtraInfo) Pruner {
	return CyclePruner{revMove: revMove, hasRev: hasRev}
}

func (p CyclePruner) PruneMoves(*solitaire.Solitaire) move.Mask {
	if !p.hasRev {
		return move.Mask{}
	}
	return move.FromMove(p.revMove)
}

// RevMove returns the move that would undo the last move played, if any.
func (p CyclePruner) RevMove() (move.Move, bool) { return p.revMove, p.hasRev }

// FullPruner combines cycle pruning with domain-specific rules keyed on
// what the last move did to the hidden layer: a reveal that emptied its
// pile only makes sense if a King fills the slot next, a reveal that
// exposed a card forbids stacking moves that were already available before
// it, and a card drawn from the deck constrains which stacking and reveal
// moves may still come before the next draw.
type FullPruner struct {
	cycle     CyclePruner
	lastMove  move.Move
	lastExtra solitaire.ExtraInfo
	hasLast   bool
	lastDraw  move.Move
	hasDraw   bool
}

func (p FullPruner) Update(m move.Move, revMove move.Move, hasRev bool, extra solitaire.ExtraInfo) Pruner {
	next := FullPruner{
		cycle:     p.cycle.Update(m, revMove, hasRev, extra).(CyclePruner),
		lastMove:  m,
		lastExtra: extra,
		hasLast:   true,
		lastDraw:  p.lastDraw,
		hasDraw:   p.hasDraw,
	}
	switch m.Kind {
	case move.DeckPile:
		next.lastDraw = m
		next.hasDraw = true
	case move.StackPile:
		if !(p.hasDraw && m.Card.GoAfter(p.lastDraw.Card)) {
			next.hasDraw = false
		}
	default:
		next.hasDraw = false
	}
	return next
}

// RevMove returns the move that would undo the last move played, if any,
// delegating to the embedded CyclePruner.
func (p FullPruner) RevMove() (move.Move, bool) { return p.cycle.RevMove() }

func (p FullPruner) PruneMoves(game *solitaire.Solitaire) move.Mask {
	var filter move.Mask

	if p.hasLast && p.lastMove.Kind == move.Reveal {
		switch {
		case p.lastExtra.Emptied:
			// The reveal emptied its pile without exposing anything: the
			// only point of that was to free the slot for a King, so force
			// a King placement next.
			filter.PileStack = ^uint64(0)
			filter.DeckStack = ^uint64(0)
			filter.StackPile = ^card.KingMask
			filter.DeckPile = ^card.KingMask
			filter.Reveal = ^card.KingMask
		case p.lastExtra.HasExposed:
			// The reveal exposed a card: any pile-to-stack of a card other
			// than the exposed one (or its same-colour twin) commutes with
			// the reveal and was already explored in the order that plays
			// it first; same for every deck-to-stack.
			mm := p.lastExtra.Exposed.Mask() | p.lastExtra.Exposed.SwapSuit().Mask()
			filter.PileStack = ^mm
			filter.DeckStack = ^uint64(0)
		}
	}

	if p.hasDraw {
		m := p.lastDraw.Card.Mask()
		other := p.lastDraw.Card.SwapSuit().Mask()
		mm := m | other
		filter.PileStack |= ^other
		first := game.Hidden().FirstLayerMask()
		filter.Reveal |= ^((mm >> card.NSuits) | first)
	}

	return filter.Combine(p.cycle.PruneMoves(game))
}
