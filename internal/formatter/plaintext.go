package formatter

import (
	"fmt"
	"strings"

	"github.com/oasis-klondike/klondike-solver/internal/card"
	"github.com/oasis-klondike/klondike-solver/internal/hidden"
	"github.com/oasis-klondike/klondike-solver/internal/standard"
)

// PlainText renders s as a human-readable board, grounded in
// original_source/lonecli/src/tui.rs's print_game/print_foundation/
// print_piles (stripped of the reference CLI's terminal coloring, which
// has no analogue in this package's dependency set).
func PlainText(s *standard.Standard) string {
	var b strings.Builder

	fmt.Fprint(&b, "waste:")
	for _, c := range s.PeekWaste(3) {
		fmt.Fprintf(&b, " %s", c)
	}
	fmt.Fprintf(&b, "  stock:%d\n", len(s.Stock))

	fmt.Fprint(&b, "foundation:")
	for suit := uint8(0); suit < card.NSuits; suit++ {
		n := s.Final.Get(suit)
		if n == 0 {
			fmt.Fprint(&b, " --")
			continue
		}
		fmt.Fprintf(&b, " %s", card.New(n-1, suit))
	}
	b.WriteByte('\n')

	rows := 0
	for i := 0; i < hidden.NPiles; i++ {
		if n := len(s.Hidden[i]) + len(s.Piles[i]); n > rows {
			rows = n
		}
	}
	for row := 0; row < rows; row++ {
		for i := 0; i < hidden.NPiles; i++ {
			nHidden := len(s.Hidden[i])
			nVisible := len(s.Piles[i])
			switch {
			case row < nHidden:
				fmt.Fprint(&b, "**\t")
			case row < nHidden+nVisible:
				fmt.Fprintf(&b, "%s\t", s.Piles[i][row-nHidden])
			default:
				fmt.Fprint(&b, "  \t")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
