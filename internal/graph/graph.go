// Package graph implements the reachability-graph traversal callback: it
// visits the same state space a Solver would, but instead of stopping at
// the first win, it emits every transition edge, letting a caller build
// the full reachability graph for analysis tooling (e.g. counting distinct
// winnable states from a given deal).
package graph

import (
	"github.com/oasis-klondike/klondike-solver/internal/move"
	"github.com/oasis-klondike/klondike-solver/internal/pruning"
	"github.com/oasis-klondike/klondike-solver/internal/solitaire"
	"github.com/oasis-klondike/klondike-solver/internal/tracking"
	"github.com/oasis-klondike/klondike-solver/internal/traverse"
)

// WinSentinel is the synthetic "to" encoding used for an edge into a won
// position: ^Encode(0), a value no real 52-card encoding can ever produce
// since the deck's 29-bit field alone never sets every high bit.
const WinSentinel solitaire.Encode = ^solitaire.Encode(0)

// Edge is one transition in the reachability graph, From -Move-> To.
// IsBackedge is true when To had already been visited by this traversal
// before this edge was taken (i.e. the edge closes a cycle rather than
// discovering a new state).
type Edge struct {
	From       solitaire.Encode
	To         solitaire.Encode
	Move       move.Move
	IsBackedge bool
}

// Builder is a traverse.Callback that appends every transition it observes
// to Edges. Because DFS never interleaves a move with the visit it leads
// to, Builder only needs to remember the most recently played move's
// (from-encode, move) pair to label the very next OnVisit/OnWin call.
type Builder struct {
	Edges []Edge

	seen    map[solitaire.Encode]bool
	term    *tracking.TerminateSignal
	stopped bool

	pendingFrom solitaire.Encode
	pendingMove move.Move
	hasPending  bool
}

// NewBuilder constructs a Builder, optionally cancellable via term (nil
// disables cancellation).
func NewBuilder(term *tracking.TerminateSignal) *Builder {
	return &Builder{seen: make(map[solitaire.Encode]bool), term: term}
}

func (b *Builder) recordTo(to solitaire.Encode) {
	if !b.hasPending {
		return
	}
	backedge := b.seen[to]
	b.Edges = append(b.Edges, Edge{From: b.pendingFrom, To: to, Move: b.pendingMove, IsBackedge: backedge})
	b.hasPending = false
}

func (b *Builder) OnWin(*solitaire.Solitaire) traverse.Control {
	b.recordTo(WinSentinel)
	return traverse.Ok
}

func (b *Builder) OnVisit(_ *solitaire.Solitaire, e solitaire.Encode) traverse.Control {
	if b.term != nil && b.term.IsTerminated() {
		b.stopped = true
		return traverse.Halt
	}
	b.recordTo(e)
	b.seen[e] = true
	return traverse.Ok
}

func (b *Builder) OnBacktrack(*solitaire.Solitaire, solitaire.Encode) traverse.Control {
	return traverse.Ok
}

func (b *Builder) OnMoveGen(move.Mask, solitaire.Encode) traverse.Control { return traverse.Ok }

func (b *Builder) OnDoMove(_ *solitaire.Solitaire, m move.Move, e solitaire.Encode, _ pruning.Pruner) traverse.Control {
	if b.term != nil && b.term.IsTerminated() {
		b.stopped = true
		return traverse.Halt
	}
	b.pendingFrom, b.pendingMove, b.hasPending = e, m, true
	return traverse.Ok
}

func (b *Builder) OnUndoMove(move.Move, solitaire.Encode, traverse.Control) {}

// Stopped reports whether the traversal was cut short by the termination
// signal rather than exhausting the reachable space.
func (b *Builder) Stopped() bool { return b.stopped }
