// Package mcts implements the MCTS-style move picker: it lists every
// reversible-frontier state reachable from the current position, evaluates
// each in HOP batches, and repeatedly spends a fixed batch of trials on
// whichever candidate a caller-supplied potential function currently rates
// highest, until one candidate has accumulated enough played trials to
// trust, then reconstructs the move history that reaches it.
package mcts

import (
	"math/rand"

	"github.com/oasis-klondike/klondike-solver/internal/hop"
	"github.com/oasis-klondike/klondike-solver/internal/move"
	"github.com/oasis-klondike/klondike-solver/internal/pruning"
	"github.com/oasis-klondike/klondike-solver/internal/solitaire"
	"github.com/oasis-klondike/klondike-solver/internal/tracking"
	"github.com/oasis-klondike/klondike-solver/internal/traverse"
)

// PotentialFunc scores a candidate state for selection: given its wins,
// how many trials it has played, and the total trials spent across every
// candidate so far, it returns a priority (higher picked first). A caller
// wanting plain UCB1 or epsilon-greedy selection supplies that formula
// here; the picker itself is agnostic to the exploration policy.
type PotentialFunc func(wins, played, total int) float64

// batchSize is how many HOP trials are spent on a candidate each time it is
// picked, mirroring the reference engine's fixed BATCH_SIZE.
const batchSize = 10

type foundState struct {
	encode  solitaire.Encode
	move    move.Move
	hasMove bool
}

// listStates collects every terminal (win or non-reversible-move) state
// reachable from the current position, exactly as internal/hop's
// revStates frontier walk does, but recording just (encode, move) pairs
// instead of running HOP batches immediately — the picker decides which of
// these to spend trials on, adaptively.
type listStates struct {
	states []foundState
}

func (l *listStates) OnWin(s *solitaire.Solitaire) traverse.Control {
	l.states = l.states[:0]
	l.states = append(l.states, foundState{encode: s.Encode()})
	return traverse.Halt
}
func (l *listStates) OnVisit(*solitaire.Solitaire, solitaire.Encode) traverse.Control {
	return traverse.Ok
}
func (l *listStates) OnBacktrack(*solitaire.Solitaire, solitaire.Encode) traverse.Control {
	return traverse.Ok
}
func (l *listStates) OnMoveGen(move.Mask, solitaire.Encode) traverse.Control { return traverse.Ok }

func (l *listStates) OnDoMove(s *solitaire.Solitaire, m move.Move, e solitaire.Encode, pruner pruning.Pruner) traverse.Control {
	if _, ok := pruner.(pruning.FullPruner); !ok {
		return traverse.Ok
	}
	if _, hasRev := s.ReverseMove(m); hasRev {
		return traverse.Ok
	}
	l.states = append(l.states, foundState{encode: e, move: m, hasMove: true})
	return traverse.Skip
}
func (l *listStates) OnUndoMove(move.Move, solitaire.Encode, traverse.Control) {}

// findState reconstructs the move history from game's current position to
// the given target encode, by re-traversing and halting the instant the
// target is reached (or, for a won position, halting immediately since
// target is the win sentinel-less real encode of that win).
type findState struct {
	target  solitaire.Encode
	history []move.Move
}

func (f *findState) OnWin(*solitaire.Solitaire) traverse.Control { return traverse.Halt }
func (f *findState) OnVisit(_ *solitaire.Solitaire, e solitaire.Encode) traverse.Control {
	if e == f.target {
		return traverse.Halt
	}
	return traverse.Ok
}
func (f *findState) OnBacktrack(*solitaire.Solitaire, solitaire.Encode) traverse.Control {
	return traverse.Ok
}
func (f *findState) OnMoveGen(move.Mask, solitaire.Encode) traverse.Control { return traverse.Ok }
func (f *findState) OnDoMove(_ *solitaire.Solitaire, m move.Move, _ solitaire.Encode, _ pruning.Pruner) traverse.Control {
	f.history = append(f.history, m)
	return traverse.Ok
}
func (f *findState) OnUndoMove(_ move.Move, _ solitaire.Encode, childResult traverse.Control) {
	if childResult != traverse.Halt {
		f.history = f.history[:len(f.history)-1]
	}
}

func reconstruct(state *solitaire.Solitaire, target solitaire.Encode, tail move.Move, hasTail bool) []move.Move {
	scratch := *state
	cb := &findState{target: target}
	tp := traverse.NewTranspositionSet(0)
	traverse.Traverse(&scratch, pruning.FullPruner{}, tp, cb)
	if hasTail {
		cb.history = append(cb.history, tail)
	}
	return cb.history
}

// PickMoves runs the MCTS-style selection loop over state's current
// position: it lists the reversible-frontier candidates once, then
// repeatedly hands a fixed-size HOP batch to whichever candidate potFn
// currently scores highest, until that candidate's played-trial count
// exceeds nTimes, at which point it reconstructs and returns the winning
// history. It returns nil if there is nothing to evaluate (an immediate
// win with no frontier) — callers should check IsWin first in that case.
func PickMoves(state *solitaire.Solitaire, rng *rand.Rand, nTimes, limit int, term *tracking.TerminateSignal, potFn PotentialFunc) []move.Move {
	lister := &listStates{}
	tp := traverse.NewTranspositionSet(0)
	traverse.Traverse(state, pruning.FullPruner{}, tp, lister)
	states := lister.states

	if len(states) == 0 {
		return nil
	}
	if len(states) == 1 {
		s := states[0]
		return reconstruct(state, s.encode, s.move, s.hasMove)
	}

	results := make([]hop.Result, len(states))
	total := 0
	for {
		best := 0
		bestScore := potFn(results[0].Wins, results[0].Played, total)
		for i := 1; i < len(states); i++ {
			score := potFn(results[i].Wins, results[i].Played, total)
			if score > bestScore {
				best, bestScore = i, score
			}
		}

		s := states[best]
		scratch := *state
		if !scratch.Decode(s.encode) {
			// The candidate's encode came from our own traversal over a
			// live copy of state, so it always decodes; this branch only
			// guards against a future caller reusing a picker across a
			// position it wasn't built from.
			return nil
		}

		seed := rng.Int63()
		batch := hop.SolveGame(&scratch, s.move, seed, batchSize, limit, term, pruning.FullPruner{})
		results[best].Add(batch)
		total += batchSize

		if results[best].Played > nTimes {
			return reconstruct(state, s.encode, s.move, s.hasMove)
		}
		if term != nil && term.IsTerminated() {
			return reconstruct(state, s.encode, s.move, s.hasMove)
		}
	}
}
