package mcts

import (
	"math/rand"
	"testing"

	"github.com/oasis-klondike/klondike-solver/internal/card"
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

func uniformPotential(wins, played, total int) float64 {
	return float64(wins+1) / float64(played+1)
}

func mustNew(tb testing.TB, deal [card.NCards]card.Card, step uint8) *solitaire.Solitaire {
	tb.Helper()
	s, err := solitaire.New(deal, step)
	if err != nil {
		tb.Fatalf("solitaire.New: %v", err)
	}
	return s
}

func TestPickMovesReturnsAReplayableHistory(t *testing.T) {
	s := mustNew(t, shuffledDeal(11), 1)
	term := &tracking.TerminateSignal{}
	rng := rand.New(rand.NewSource(1))

	history := PickMoves(s, rng, 5, 300, term, uniformPotential)
	if history == nil {
		t.Skip("no reversible-frontier candidates reachable from this deal")
	}

	replay := *s
	for _, m := range history {
		if _, err := replay.DoMove(m); err != nil {
			t.Fatalf("reconstructed move %v did not apply cleanly: %v", m, err)
		}
	}
}

func TestPickMovesHonorsTerminationSignal(t *testing.T) {
	s := mustNew(t, shuffledDeal(13), 1)
	term := &tracking.TerminateSignal{}
	term.Terminate()
	rng := rand.New(rand.NewSource(2))

	history := PickMoves(s, rng, 1000000, 1, term, uniformPotential)
	if history == nil {
		t.Skip("no reversible-frontier candidates reachable from this deal")
	}
	replay := *s
	for _, m := range history {
		if _, err := replay.DoMove(m); err != nil {
			t.Fatalf("reconstructed move %v did not apply cleanly: %v", m, err)
		}
	}
}
