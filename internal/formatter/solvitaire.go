// Package formatter implements the two textual renderings used as
// external-collaborator output formats: a Solvitaire-compatible JSON
// dump (ported from original_source/lonecli/src/solvitaire.rs, used by
// external tooling that consumes the Solvitaire test-corpus format) and a
// plain-text board print for a REPL front-end.
package formatter

import (
	"strconv"
	"strings"

	"github.com/oasis-klondike/klondike-solver/internal/card"
	"github.com/oasis-klondike/klondike-solver/internal/hidden"
	"github.com/oasis-klondike/klondike-solver/internal/standard"
)

// reversedDeckOrder returns the deck's backing array (waste then stock, in
// physical top-to-bottom draw order) reversed, so the card printed first is
// the one physically at the very bottom of the stock — matching the
// reference formatter's `get_deck().get().iter().rev()`.
func reversedDeckOrder(s *standard.Standard) []card.Card {
	all := make([]card.Card, 0, len(s.Waste)+len(s.Stock))
	all = append(all, s.Waste...)
	all = append(all, s.Stock...)
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all
}

// Solvitaire renders s as the Solvitaire test-corpus JSON shape: a
// "tableau piles" array of arrays (hidden cards lower-cased, visible cards
// upper-cased), a flat "stock" array in reversedDeckOrder, and a
// "foundation" array of per-suit arrays of already-placed ranks.
func Solvitaire(s *standard.Standard) string {
	var b strings.Builder
	b.WriteString("{\"tableau piles\": [\n")
	for i := 0; i < hidden.NPiles; i++ {
		b.WriteByte('[')
		first := true
		for _, c := range s.Hidden[i] {
			if !first {
				b.WriteByte(',')
			}
			first = false
			b.WriteString(strconv.Quote(c.PrintSolitaire(true)))
		}
		for _, c := range s.Piles[i] {
			if !first {
				b.WriteByte(',')
			}
			first = false
			b.WriteString(strconv.Quote(c.PrintSolitaire(false)))
		}
		if i+1 < hidden.NPiles {
			b.WriteString("],\n")
		} else {
			b.WriteString("]\n")
		}
	}

	b.WriteString("],\"stock\": [")
	for i, c := range reversedDeckOrder(s) {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(c.PrintSolitaire(false)))
	}
	b.WriteString("]")

	b.WriteString(",\n\"foundation\": [")
	for suit := uint8(0); suit < card.NSuits; suit++ {
		if suit > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		n := s.Final.Get(suit)
		for rank := uint8(0); rank < n; rank++ {
			if rank > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(card.New(rank, suit).PrintSolitaire(false)))
		}
		b.WriteByte(']')
	}
	b.WriteString("]}")
	return b.String()
}
