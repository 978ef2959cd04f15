// Package traverse implements the generic transposition-table-driven DFS
// skeleton the rest of the solver layer (internal/solver, internal/graph,
// internal/hop, internal/mcts) specialises via a Callback. The traversal
// itself never decides win/lose/halt: every decision point calls back into
// the Callback, which returns a Control telling the traversal whether to
// keep going, skip the current branch, or unwind entirely.
package traverse

import (
	"github.com/oasis-klondike/klondike-solver/internal/move"
	"github.com/oasis-klondike/klondike-solver/internal/pruning"
	"github.com/oasis-klondike/klondike-solver/internal/solitaire"
)

// Control is returned by every Callback hook to steer the traversal.
type Control int

const (
	// Ok continues the traversal normally.
	Ok Control = iota
	// Skip abandons the current branch without visiting its children.
	Skip
	// Halt unwinds the entire traversal immediately.
	Halt
)

// Callback supplies the decision points of a DFS over Solitaire states. A
// concrete traversal (exact solve, reachability graph, …) implements this
// once and plugs into Traverse.
type Callback interface {
	OnWin(s *solitaire.Solitaire) Control
	OnVisit(s *solitaire.Solitaire, e solitaire.Encode) Control
	OnBacktrack(s *solitaire.Solitaire, e solitaire.Encode) Control
	OnMoveGen(moves move.Mask, e solitaire.Encode) Control
	OnDoMove(s *solitaire.Solitaire, m move.Move, e solitaire.Encode, pruner pruning.Pruner) Control
	OnUndoMove(m move.Move, e solitaire.Encode, childResult Control)
}

// mixAvalanche is the 64-bit finaliser the reference engine uses to key its
// transposition set: xorshift, multiply by a fixed odd constant, xorshift
// again. It exists to spread Encode's low-entropy fields (the deck mask
// dominates the high bits) across the full 64-bit range before hashing,
// the same role a xorshift64* PRNG plays when spreading Zobrist keys.
func mixAvalanche(h uint64) uint64 {
	h ^= h >> 23
	h *= 0x2127599bf4325c37
	h ^= h >> 47
	return h
}

// TranspositionSet is an insert-only set of Solitaire encodings, keyed by
// their avalanche-mixed form. Entries are never evicted: revisiting an
// already-known encoding is always prunable regardless of path, since every
// solution has equal ("won" or "not") value.
type TranspositionSet struct {
	seen map[uint64]struct{}
}

// NewTranspositionSet builds an empty set, optionally pre-sizing it for
// sizeHint expected entries (0 is a fine default).
func NewTranspositionSet(sizeHint int) *TranspositionSet {
	return &TranspositionSet{seen: make(map[uint64]struct{}, sizeHint)}
}

// Insert adds e's mixed key to the set, reporting true if it was not
// already present (i.e. this is the first visit to this encoding).
func (t *TranspositionSet) Insert(e solitaire.Encode) bool {
	key := mixAvalanche(uint64(e))
	if _, ok := t.seen[key]; ok {
		return false
	}
	t.seen[key] = struct{}{}
	return true
}

// Len reports how many distinct encodings have been inserted.
func (t *TranspositionSet) Len() int { return len(t.seen) }

// Traverse runs a depth-first search over state starting from its current
// position, using pruner to narrow each ply's move set and tp to cut
// already-visited encodings. It mutates state via DoMove/UndoMove and
// always leaves it byte-identical to how it found it once Traverse
// returns, regardless of the Control returned.
func Traverse(state *solitaire.Solitaire, pruner pruning.Pruner, tp *TranspositionSet, cb Callback) Control {
	if state.IsWin() {
		return cb.OnWin(state)
	}

	e := state.Encode()

	switch cb.OnVisit(state, e) {
	case Halt:
		return Halt
	case Skip:
		return Ok
	}

	if !tp.Insert(e) {
		return Ok
	}

	moves := state.GenMoves(true).Filter(pruner.PruneMoves(state))

	switch cb.OnMoveGen(moves, e) {
	case Halt:
		return Halt
	case Skip:
		return Ok
	}

	result := Ok
	moves.IterMoves(func(m move.Move) bool {
		switch cb.OnDoMove(state, m, e, pruner) {
		case Halt:
			result = Halt
			return false
		case Skip:
			return true
		}

		// ReverseMove must see the pre-move position: a PileStack of a
		// locked card has no in-game inverse, and only the pre-move
		// LockedMask can tell.
		revMove, hasRev := state.ReverseMove(m)
		undo, err := state.DoMove(m)
		if err != nil {
			// A legal-per-mask move that DoMove rejects indicates a bug in
			// move generation, not a runtime condition callers should
			// handle; GenMoves/PruneMoves are the only producers of m.
			panic("traverse: GenMoves produced an illegal move: " + err.Error())
		}
		childPruner := pruner.Update(m, revMove, hasRev, undo.Extra())

		childResult := Traverse(state, childPruner, tp, cb)

		state.UndoMove(m, undo)
		cb.OnUndoMove(m, e, childResult)

		if childResult == Halt {
			result = Halt
			return false
		}
		return true
	})

	if result == Halt {
		return Halt
	}

	return cb.OnBacktrack(state, e)
}
