// Package stack implements the four foundation piles as a single packed
// counter, following the reference engine's Stack type: four 4-bit fields,
// one per suit, each holding the next rank stackable on that foundation.
package stack

import (
	"github.com/oasis-klondike/klondike-solver/internal/card"
)

// Stack packs the four foundation counters into 16 bits, 4 bits per suit.
type Stack uint16

// New returns an empty Stack (no cards on any foundation).
func New() Stack { return 0 }

// Get returns the rank currently on top of the given suit's foundation
// (0 meaning the foundation is empty and an Ace is next).
func (s Stack) Get(suit uint8) uint8 {
	return uint8((uint16(s) >> (suit * 4)) & 0xF)
}

// Push advances the given suit's foundation by one rank.
func (s Stack) Push(suit uint8) Stack {
	return s + Stack(1<<(suit*4))
}

// Pop retreats the given suit's foundation by one rank.
func (s Stack) Pop(suit uint8) Stack {
	return s - Stack(1<<(suit*4))
}

// Mask returns, for each suit, the single bit of the next card that suit's
// foundation can accept (not "all cards already placed" — only the next
// stackable card per suit).
func (s Stack) Mask() uint64 {
	var m uint64
	for suit := uint8(0); suit < card.NSuits; suit++ {
		r := s.Get(suit)
		if r < card.NRanks {
			m |= card.New(r, suit).Mask()
		}
	}
	return m
}

// Stackable reports whether c can be placed on its suit's foundation right
// now (its rank equals the current counter for that suit).
func (s Stack) Stackable(c card.Card) bool {
	return c.Rank() == s.Get(c.Suit())
}

func min(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

// DominanceMask returns the set of cards that are "dominance safe" to move
// directly to the foundation: any such card can never usefully be needed on
// a tableau pile later, because both colours' foundations are already ahead
// of where a card of the opposite colour could use it.
//
// red and black are the worst-case minimum progress across the two suits
// of each colour; the one-rank, two-rank lookahead below mirrors
// the reference engine's dominance_mask computation exactly.
func (s Stack) DominanceMask() uint64 {
	red := min(s.Get(0), s.Get(1))
	black := min(s.Get(2), s.Get(3))

	dRed := min(red+1, black) + 2
	dBlack := min(red, black+1) + 2

	return (card.ColorMask[0] & card.FullMask(uint(dRed)*4)) |
		(card.ColorMask[1] & card.FullMask(uint(dBlack)*4))
}

// DominanceStackable reports whether c is dominance-safe per DominanceMask.
func (s Stack) DominanceStackable(c card.Card) bool {
	return s.Stackable(c) && s.DominanceMask()&c.Mask() != 0
}

// IsValid reports whether every suit's counter is within [0, NRanks].
func (s Stack) IsValid() bool {
	for suit := uint8(0); suit < card.NSuits; suit++ {
		if s.Get(suit) > card.NRanks {
			return false
		}
	}
	return true
}

// IsFull reports whether all four foundations hold a King (the win
// condition).
func (s Stack) IsFull() bool {
	return uint16(s) == card.NRanks*0x1111
}

// Len returns the total number of cards currently on the foundations.
func (s Stack) Len() int {
	n := 0
	for suit := uint8(0); suit < card.NSuits; suit++ {
		n += int(s.Get(suit))
	}
	return n
}

// Encode/Decode are trivial since Stack already is its own 16-bit wire form.
func (s Stack) Encode() uint16 { return uint16(s) }
func Decode(v uint16) Stack    { return Stack(v) }
