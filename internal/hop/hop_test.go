package hop

import (
	"math/rand"
	"testing"

	"github.com/oasis-klondike/klondike-solver/internal/card"
	"github.com/oasis-klondike/klondike-solver/internal/move"
	"github.com/oasis-klondike/klondike-solver/internal/pruning"
	"github.com/oasis-klondike/klondike-solver/internal/solitaire"
	"github.com/oasis-klondike/klondike-solver/internal/tracking"
)

func shuffledDeal(seed int64) [card.NCards]card.Card {
	var d [card.NCards]card.Card
	for i := range d {
		d[i] = card.FromValue(uint8(i))
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(d), func(i, j int) { d[i], d[j] = d[j], d[i] })
	return d
}

func firstMove(s *solitaire.Solitaire) (move.Move, bool) {
	var mv move.Move
	found := false
	s.GenMoves(false).IterMoves(func(m move.Move) bool {
		mv = m
		found = true
		return false
	})
	return mv, found
}

func mustNew(tb testing.TB, deal [card.NCards]card.Card, step uint8) *solitaire.Solitaire {
	tb.Helper()
	s, err := solitaire.New(deal, step)
	if err != nil {
		tb.Fatalf("solitaire.New: %v", err)
	}
	return s
}

func TestResultAddAccumulates(t *testing.T) {
	r := Result{Wins: 1, Skipped: 2, Played: 3}
	r.Add(Result{Wins: 4, Skipped: 5, Played: 6})
	if r.Wins != 5 || r.Skipped != 7 || r.Played != 9 {
		t.Fatalf("Add did not accumulate correctly: %+v", r)
	}
}

func TestSolveGamePlaysEveryTrial(t *testing.T) {
	s := mustNew(t, shuffledDeal(3), 3)
	m, ok := firstMove(s)
	if !ok {
		t.Fatalf("expected at least one legal move from a fresh deal")
	}
	term := &tracking.TerminateSignal{}
	res := SolveGame(s, m, 100, 8, 2000, term, pruning.FullPruner{})
	if res.Played != 8 {
		t.Fatalf("expected all 8 trials to play, got %d", res.Played)
	}
	if res.Wins+res.Skipped > res.Played {
		t.Fatalf("wins+skipped should not exceed played: %+v", res)
	}
}

func TestListMovesReturnsCandidatesWithHistory(t *testing.T) {
	s := mustNew(t, shuffledDeal(5), 1)
	term := &tracking.TerminateSignal{}
	candidates := ListMoves(s, 7, 4, 500, term)
	for _, c := range candidates {
		if len(c.History) == 0 {
			t.Fatalf("every candidate should carry a non-empty move history prefix")
		}
	}
}
