package standard

import (
	"math/rand"
	"testing"

	"github.com/oasis-klondike/klondike-solver/internal/card"
	"github.com/oasis-klondike/klondike-solver/internal/hidden"
	"github.com/oasis-klondike/klondike-solver/internal/solitaire"
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

func mustNew(tb testing.TB, deal [card.NCards]card.Card, step uint8) *solitaire.Solitaire {
	tb.Helper()
	s, err := solitaire.New(deal, step)
	if err != nil {
		tb.Fatalf("solitaire.New: %v", err)
	}
	return s
}

func TestFromAccountsForEveryCard(t *testing.T) {
	s := mustNew(t, shuffledDeal(9), 3)
	v := From(s)

	total := len(v.Waste) + len(v.Stock) + v.Final.Len()
	for i := 0; i < hidden.NPiles; i++ {
		total += len(v.Hidden[i]) + len(v.Piles[i])
	}
	if total != card.NCards {
		t.Fatalf("expanded view should account for all %d cards, counted %d", card.NCards, total)
	}
}

func TestFromPileShapeMatchesTriangularDeal(t *testing.T) {
	s := mustNew(t, shuffledDeal(1), 3)
	v := From(s)
	for i := 0; i < hidden.NPiles; i++ {
		wantHidden := i
		if len(v.Hidden[i]) != wantHidden {
			t.Fatalf("pile %d: expected %d hidden cards on a fresh deal, got %d", i, wantHidden, len(v.Hidden[i]))
		}
		if len(v.Piles[i]) != 1 {
			t.Fatalf("pile %d: expected exactly 1 visible card on a fresh deal, got %d", i, len(v.Piles[i]))
		}
	}
}

func TestPeekWasteCapsAtAvailableCards(t *testing.T) {
	v := &Standard{Waste: []card.Card{card.FromValue(0), card.FromValue(1)}}
	got := v.PeekWaste(5)
	if len(got) != 2 {
		t.Fatalf("PeekWaste(5) on a 2-card waste should return 2 cards, got %d", len(got))
	}
}
