// Package engine implements a history-keeping façade over a position:
// a Solitaire plus a Pruner plus a move history, caching the
// current legal-move mask so repeated ListMoves calls don't re-run move
// generation, and validating every DoMove against that cache before it
// touches the underlying state.
package engine

import (
	"log"

	"github.com/oasis-klondike/klondike-solver/internal/move"
	"github.com/oasis-klondike/klondike-solver/internal/pruning"
	"github.com/oasis-klondike/klondike-solver/internal/solitaire"
)

// historyEntry records one applied move, enough to undo it. The pruner's
// prior state is not kept; UndoMove resets the pruner.
type historyEntry struct {
	move move.Move
	undo solitaire.UndoInfo
}

// Engine wraps a Solitaire with pruning and an undo-capable move history.
// UndoMove resets the pruner to its default rather than rewinding pruner
// state move-by-move: callers that rely on pruning guarantees across an
// undo must re-derive them from the new position.
type Engine struct {
	state      *solitaire.Solitaire
	defaultP   pruning.Pruner
	pruner     pruning.Pruner
	history    []historyEntry
	cachedMask move.Mask
}

// New builds an Engine over state using defaultPruner as both the initial
// and the post-undo pruner.
func New(state *solitaire.Solitaire, defaultPruner pruning.Pruner) *Engine {
	e := &Engine{state: state, defaultP: defaultPruner, pruner: defaultPruner}
	e.regenerate()
	return e
}

// State returns the underlying position.
func (e *Engine) State() *solitaire.Solitaire { return e.state }

func (e *Engine) regenerate() {
	e.cachedMask = e.state.GenMoves(true).Filter(e.pruner.PruneMoves(e.state))
}

// ListMoves returns the current legal, pruner-filtered move list.
func (e *Engine) ListMoves() []move.Move { return e.cachedMask.ToSlice() }

// ListMovesDominance is an alias kept for symmetry with the dominance and
// non-dominance move-listing pair used elsewhere; the cached mask is
// already generated with dominance reductions applied.
func (e *Engine) ListMovesDominance() []move.Move { return e.ListMoves() }

// DoMove applies m if it is present in the cached legal-move mask, pushing
// it onto the history and updating the pruner and cache. It reports false,
// without mutating anything, if m is not currently legal.
func (e *Engine) DoMove(m move.Move) bool {
	if !maskContains(e.cachedMask, m) {
		log.Printf("[Engine] rejected illegal move %v", m)
		return false
	}
	rev, hasRev := e.state.ReverseMove(m)
	undo, err := e.state.DoMove(m)
	if err != nil {
		log.Printf("[Engine] DoMove %v unexpectedly failed: %v", m, err)
		return false
	}
	e.history = append(e.history, historyEntry{move: m, undo: undo})
	e.pruner = e.pruner.Update(m, rev, hasRev, undo.Extra())
	e.regenerate()
	return true
}

func maskContains(mask move.Mask, m move.Move) bool {
	found := false
	mask.IterMoves(func(candidate move.Move) bool {
		if candidate == m {
			found = true
			return false
		}
		return true
	})
	return found
}

// UndoMove pops the last move off the history, restores the state, resets
// the pruner to its default, and regenerates the cached mask. It reports
// false if there is no history to undo.
func (e *Engine) UndoMove() bool {
	if len(e.history) == 0 {
		return false
	}
	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	e.state.UndoMove(last.move, last.undo)
	e.pruner = e.defaultP
	e.regenerate()
	return true
}

// HistoryLen reports how many moves have been applied.
func (e *Engine) HistoryLen() int { return len(e.history) }

// Encode returns the underlying position's transposition key.
func (e *Engine) Encode() solitaire.Encode { return e.state.Encode() }

// Decode replaces the engine's position with the one enc describes,
// clearing the history and resetting the pruner since neither applies to
// the new position. It reports false, leaving everything unchanged, if enc
// does not decode to a valid position.
func (e *Engine) Decode(enc solitaire.Encode) bool {
	if !e.state.Decode(enc) {
		return false
	}
	e.history = e.history[:0]
	e.pruner = e.defaultP
	e.regenerate()
	return true
}
