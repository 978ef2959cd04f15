// Package standard implements the expanded, human-shaped view of a
// Klondike position: explicit per-pile card slices (hidden and visible)
// rather than the compact encode-oriented Solitaire representation,
// grounded in original_source/src/standard.rs's StandardSolitaire. It
// exists so a compact-state solve and a "played out on an explicit board"
// replay can be checked against each other, and so a textual formatter has
// something shaped like an actual board to print.
package standard

import (
	"github.com/oasis-klondike/klondike-solver/internal/card"
	"github.com/oasis-klondike/klondike-solver/internal/hidden"
	"github.com/oasis-klondike/klondike-solver/internal/solitaire"
	"github.com/oasis-klondike/klondike-solver/internal/stack"
)

// Standard is the expanded view of a position: each tableau pile as two
// explicit slices (still-hidden, and visible-and-playable), the four
// foundation counters, and the stock/waste deck, all read directly off a
// live Solitaire.
type Standard struct {
	Final  stack.Stack
	Hidden [hidden.NPiles][]card.Card
	Piles  [hidden.NPiles][]card.Card
	Waste  []card.Card
	Stock  []card.Card
}

// From snapshots game's current position into the expanded view.
func From(game *solitaire.Solitaire) *Standard {
	s := &Standard{Final: game.Stack()}
	h := game.Hidden()
	for i := 0; i < hidden.NPiles; i++ {
		n := int(h.NHidden(i))
		for j := 0; j < n-1; j++ {
			s.Hidden[i] = append(s.Hidden[i], h.Get(i, j))
		}
		s.Piles[i] = append(s.Piles[i], game.Pile(i)...)
	}
	s.Waste = append(s.Waste, game.Deck().Waste()...)
	s.Stock = append(s.Stock, game.Deck().Stock()...)
	return s
}

// PeekWaste returns up to nTop cards off the top of the waste pile, most
// recently drawn last, mirroring StandardSolitaire::peek_waste.
func (s *Standard) PeekWaste(nTop int) []card.Card {
	n := len(s.Waste)
	start := n - nTop
	if start < 0 {
		start = 0
	}
	return s.Waste[start:n]
}
