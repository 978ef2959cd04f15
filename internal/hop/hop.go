// Package hop implements Hindsight Optimisation: given a candidate move
// from a position with still-hidden cards, it determinises the hidden
// cards many times (independently, by shuffling a scratch copy of the
// position), solves each determinised instance under a visit budget, and
// reports how many of those "what if the hidden cards had been this way"
// instances were winnable. This gives a move a win-rate estimate without
// having to search the true (still partially hidden) game tree exactly.
package hop

import (
	"math/rand"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/oasis-klondike/klondike-solver/internal/move"
	"github.com/oasis-klondike/klondike-solver/internal/pruning"
	"github.com/oasis-klondike/klondike-solver/internal/solitaire"
	"github.com/oasis-klondike/klondike-solver/internal/solver"
	"github.com/oasis-klondike/klondike-solver/internal/tracking"
	"github.com/oasis-klondike/klondike-solver/internal/traverse"
)

// Result tallies a HOP batch: Wins instances solved, Skipped instances that
// hit the visit limit before resolving either way, Played the total number
// of instances actually attempted (a termination signal can leave Played
// below NTimes; a fully determined position is solved once and reported as
// NTimes instances).
type Result struct {
	Wins    int
	Skipped int
	Played  int
}

// Add accumulates another Result's counters into r, mirroring the
// reference engine's HopResult AddAssign used by the MCTS picker to fold
// successive batches into a running tally for the same candidate state.
func (r *Result) Add(other Result) {
	r.Wins += other.Wins
	r.Skipped += other.Skipped
	r.Played += other.Played
}

type callback struct {
	term    *tracking.TerminateSignal
	limit   int
	nVisit  int
	result  solver.SearchResult
}

func (c *callback) OnWin(*solitaire.Solitaire) traverse.Control {
	c.result = solver.Solved
	return traverse.Halt
}

func (c *callback) OnVisit(s *solitaire.Solitaire, _ solitaire.Encode) traverse.Control {
	if s.IsSureWin() {
		c.result = solver.Solved
		return traverse.Halt
	}
	if c.term != nil && c.term.IsTerminated() {
		c.result = solver.Terminated
		return traverse.Halt
	}
	c.nVisit++
	if c.nVisit > c.limit {
		c.result = solver.Terminated
		return traverse.Halt
	}
	return traverse.Ok
}

func (c *callback) OnBacktrack(*solitaire.Solitaire, solitaire.Encode) traverse.Control {
	return traverse.Ok
}
func (c *callback) OnMoveGen(move.Mask, solitaire.Encode) traverse.Control { return traverse.Ok }
func (c *callback) OnDoMove(*solitaire.Solitaire, move.Move, solitaire.Encode, pruning.Pruner) traverse.Control {
	return traverse.Ok
}
func (c *callback) OnUndoMove(move.Move, solitaire.Encode, traverse.Control) {}

// SolveGame runs one HOP batch for candidate move m from state, reshuffling
// the hidden cards nTimes independently (seed offsets each trial's PRNG so
// trials run concurrently without sharing mutable RNG state) and solving
// each resulting determinised position under a per-trial visit limit.
//
// When state has at most one still-hidden card, the position is already
// fully determined; SolveGame shortcuts to a single exact Solve call on the
// position after m rather than running nTimes identical trials.
func SolveGame(state *solitaire.Solitaire, m move.Move, seed int64, nTimes, limit int, term *tracking.TerminateSignal, pruneInfo pruning.FullPruner) Result {
	if state.Hidden().TotalDownCards() <= 1 {
		scratch := *state
		if _, err := scratch.DoMove(m); err != nil {
			return Result{}
		}
		outcome := solver.Solve(&scratch, pruning.NoPruner{}, nil, term)
		switch outcome.Result {
		case solver.Solved:
			return Result{Wins: nTimes, Played: nTimes}
		case solver.Unsolvable:
			return Result{Played: nTimes}
		default:
			return Result{Skipped: nTimes, Played: nTimes}
		}
	}

	var (
		wins, skips, played int
		mu                  sync.Mutex
	)

	var g errgroup.Group
	for trial := 0; trial < nTimes; trial++ {
		trial := trial
		g.Go(func() error {
			if term != nil && term.IsTerminated() {
				return nil
			}
			rng := rand.New(rand.NewSource(seed + int64(trial)))
			scratch := *state
			scratch.Hidden().Shuffle(rng)

			cb := &callback{term: term, limit: limit, result: solver.Unsolvable}
			tp := traverse.NewTranspositionSet(0)
			rev, hasRev := scratch.ReverseMove(m)
			undo, err := scratch.DoMove(m)
			if err != nil {
				return err
			}
			childPruner := pruneInfo.Update(m, rev, hasRev, undo.Extra())
			traverse.Traverse(&scratch, childPruner, tp, cb)

			mu.Lock()
			played++
			switch cb.result {
			case solver.Solved:
				wins++
			case solver.Terminated:
				skips++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return Result{Wins: wins, Skipped: skips, Played: played}
}

// Candidate pairs a move-history prefix with the HOP batch result for the
// move at its tip.
type Candidate struct {
	History []move.Move
	Result  Result
}

// revStates walks the reversible-frontier of a position: for every move
// whose reverse exists (a PileStack/StackPile pair that could simply be
// played back), it keeps descending, since HOP evaluation of such a move is
// redundant with evaluating its sibling; for every move with no reverse
// (the position-changing moves: Reveal, DeckPile, DeckStack, and any
// PileStack that would reveal), it runs a HOP batch on the spot and does
// not descend further, since going deeper would evaluate a move conditioned
// on one the caller hasn't committed to yet.
type revStates struct {
	history   []move.Move
	seed      int64
	nTimes    int
	limit     int
	term      *tracking.TerminateSignal
	candidate []Candidate
}

func (r *revStates) OnWin(*solitaire.Solitaire) traverse.Control { return traverse.Ok }
func (r *revStates) OnVisit(*solitaire.Solitaire, solitaire.Encode) traverse.Control {
	return traverse.Ok
}
func (r *revStates) OnBacktrack(*solitaire.Solitaire, solitaire.Encode) traverse.Control {
	return traverse.Ok
}
func (r *revStates) OnMoveGen(move.Mask, solitaire.Encode) traverse.Control { return traverse.Ok }

func (r *revStates) OnDoMove(s *solitaire.Solitaire, m move.Move, _ solitaire.Encode, pruner pruning.Pruner) traverse.Control {
	r.history = append(r.history, m)
	full, ok := pruner.(pruning.FullPruner)
	if !ok {
		return traverse.Ok
	}
	if _, hasRev := s.ReverseMove(m); hasRev {
		return traverse.Ok
	}
	hist := make([]move.Move, len(r.history))
	copy(hist, r.history)
	res := SolveGame(s, m, r.seed, r.nTimes, r.limit, r.term, full)
	r.candidate = append(r.candidate, Candidate{History: hist, Result: res})
	// Traverse calls no OnUndoMove for a skipped move, so drop m here.
	r.history = r.history[:len(r.history)-1]
	return traverse.Skip
}

func (r *revStates) OnUndoMove(_ move.Move, _ solitaire.Encode, _ traverse.Control) {
	r.history = r.history[:len(r.history)-1]
}

// ListMoves evaluates every move on the reversible frontier of state's
// current position with a HOP batch, returning one Candidate per evaluated
// move together with the move-history prefix that reaches it.
func ListMoves(state *solitaire.Solitaire, seed int64, nTimes, limit int, term *tracking.TerminateSignal) []Candidate {
	cb := &revStates{seed: seed, nTimes: nTimes, limit: limit, term: term}
	tp := traverse.NewTranspositionSet(0)
	traverse.Traverse(state, pruning.FullPruner{}, tp, cb)
	return cb.candidate
}
