// Package solver implements the exact Klondike solver: a traverse.Callback
// that halts the DFS the first time it reaches a won position, reconstructs
// the move history that got there, and otherwise reports whether the whole
// reachable space was exhausted without a win.
package solver

import (
	"github.com/oasis-klondike/klondike-solver/internal/move"
	"github.com/oasis-klondike/klondike-solver/internal/pruning"
	"github.com/oasis-klondike/klondike-solver/internal/solitaire"
	"github.com/oasis-klondike/klondike-solver/internal/tracking"
	"github.com/oasis-klondike/klondike-solver/internal/traverse"
)

// SearchResult discriminates the four outcomes a search can reach.
type SearchResult int

const (
	Solved SearchResult = iota
	Unsolvable
	Terminated
	Crashed
)

func (r SearchResult) String() string {
	switch r {
	case Solved:
		return "Solved"
	case Unsolvable:
		return "Unsolvable"
	case Terminated:
		return "Terminated"
	case Crashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// Outcome is the full result of a Solve call: Result, plus the winning
// move history when Result is Solved.
type Outcome struct {
	Result  SearchResult
	History []move.Move
}

type callback struct {
	stats   tracking.SearchStatistics
	term    *tracking.TerminateSignal
	depth   int
	history []move.Move
	won     bool
	stopped bool
}

func (c *callback) OnWin(*solitaire.Solitaire) traverse.Control {
	c.won = true
	return traverse.Halt
}

func (c *callback) OnVisit(_ *solitaire.Solitaire, _ solitaire.Encode) traverse.Control {
	if c.term != nil && c.term.IsTerminated() {
		c.stopped = true
		return traverse.Halt
	}
	c.stats.HitAState(c.depth)
	return traverse.Ok
}

func (c *callback) OnBacktrack(*solitaire.Solitaire, solitaire.Encode) traverse.Control {
	return traverse.Ok
}

func (c *callback) OnMoveGen(moves move.Mask, _ solitaire.Encode) traverse.Control {
	c.stats.HitUniqueState(c.depth, len(moves.ToSlice()))
	return traverse.Ok
}

func (c *callback) OnDoMove(_ *solitaire.Solitaire, m move.Move, _ solitaire.Encode, _ pruning.Pruner) traverse.Control {
	if c.term != nil && c.term.IsTerminated() {
		c.stopped = true
		return traverse.Halt
	}
	c.history = append(c.history, m)
	c.depth++
	return traverse.Ok
}

func (c *callback) OnUndoMove(_ move.Move, _ solitaire.Encode, childResult traverse.Control) {
	c.depth--
	c.stats.FinishMove(c.depth)
	if childResult != traverse.Halt {
		c.history = c.history[:len(c.history)-1]
	}
}

// Solve runs an exact DFS from state's current position, returning the
// first winning line found (moves are explored in move.Mask.IterMoves
// order, which is chosen to tend toward terminal positions first) or
// Unsolvable if the reachable space is exhausted without a win.
//
// A nil stats is treated as tracking.NoopSearchStatistics{}. A nil term
// disables external cancellation. If the traversal panics (most likely a
// stack-exhaustion failure on a pathological position run without a large
// worker stack), Solve recovers and reports Crashed rather than letting
// the panic escape and abort the process.
func Solve(state *solitaire.Solitaire, pruner pruning.Pruner, stats tracking.SearchStatistics, term *tracking.TerminateSignal) (outcome Outcome) {
	if stats == nil {
		stats = tracking.NoopSearchStatistics{}
	}
	cb := &callback{stats: stats, term: term}

	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{Result: Crashed}
		}
	}()

	tp := traverse.NewTranspositionSet(1 << 16)
	traverse.Traverse(state, pruner, tp, cb)

	switch {
	case cb.won:
		history := make([]move.Move, len(cb.history))
		copy(history, cb.history)
		return Outcome{Result: Solved, History: history}
	case cb.stopped:
		return Outcome{Result: Terminated}
	default:
		return Outcome{Result: Unsolvable}
	}
}
