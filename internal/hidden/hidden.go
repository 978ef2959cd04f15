// Package hidden tracks the face-down cards of a Klondike tableau: a
// triangular 28-slot layout (pile i holds i+1 slots) plus, for each pile, how
// many of its slots are still hidden.
package hidden

import (
	"math/rand"

	"github.com/oasis-klondike/klondike-solver/internal/card"
)

const (
	NPiles       = 7
	NHiddenCards = NPiles * (NPiles + 1) / 2 // 28
)

// pileStart returns the slot offset of pile i's first (deepest) card.
func pileStart(i int) int { return i * (i + 1) / 2 }

// pileEnd returns one past pile i's last slot.
func pileEnd(i int) int { return (i + 2) * (i + 1) / 2 }

// Hidden holds the triangular hidden-card layout and, per pile, how many of
// its slots are still in place (the face-down cards plus the face-up top).
type Hidden struct {
	cards    [NHiddenCards]card.Card
	nHidden  [NPiles]uint8
	pileMap  [card.NCards]uint8 // card value -> pile index
}

// New builds a Hidden layout from the standard Klondike deal: pile i gets
// i+1 cards from deal (dealt in increasing pile order, deepest first), with
// only the last card of each pile left face up.
func New(deal []card.Card) Hidden {
	var h Hidden
	pos := 0
	for i := 0; i < NPiles; i++ {
		h.nHidden[i] = uint8(i + 1)
		for j := 0; j <= i; j++ {
			c := deal[pos]
			pos++
			h.cards[pileStart(i)+j] = c
			h.pileMap[c.Value()] = uint8(i)
		}
	}
	return h
}

// NHidden returns the number of slots of pile i still in place, counting
// the face-up top card as well as the face-down cards beneath it.
func (h *Hidden) NHidden(i int) uint8 { return h.nHidden[i] }

// Get returns the j-th card (0 = deepest) dealt into pile i.
func (h *Hidden) Get(i, j int) card.Card { return h.cards[pileStart(i)+j] }

// Top returns the current face-up card of pile i (the last hidden slot),
// or false if the pile has no cards left at all.
func (h *Hidden) Top(i int) (card.Card, bool) {
	n := h.nHidden[i]
	if n == 0 {
		return 0, false
	}
	return h.Get(i, int(n)-1), true
}

// Pop removes the top slot of pile i by decrementing its count, so the
// card underneath (if any) becomes the new Top.
func (h *Hidden) Pop(i int) {
	h.nHidden[i]--
}

// Push re-hides a card back onto pile i (the inverse of Pop), used by undo.
func (h *Hidden) Push(i int) {
	h.nHidden[i]++
}

// Mask returns the set of cards that are strictly hidden right now (excludes
// each pile's current face-up top card).
func (h *Hidden) Mask() uint64 {
	var m uint64
	for i := 0; i < NPiles; i++ {
		n := int(h.nHidden[i])
		for j := 0; j < n-1; j++ {
			m |= h.Get(i, j).Mask()
		}
	}
	return m
}

// FirstLayerMask returns the bits of the card one layer under each pile's
// current top (the card that would become visible if the top were moved).
// Piles with fewer than two hidden-or-visible slots contribute nothing.
func (h *Hidden) FirstLayerMask() uint64 {
	var m uint64
	for i := 0; i < NPiles; i++ {
		n := int(h.nHidden[i])
		if n >= 2 {
			m |= h.Get(i, n-2).Mask()
		}
	}
	return m
}

// ComputeLockedMask returns the bits of each pile's current face-up top card,
// for piles where that top card still covers at least one hidden card
// (a "locked" card, per the glossary: moving it would reveal something).
func (h *Hidden) ComputeLockedMask() uint64 {
	var m uint64
	for i := 0; i < NPiles; i++ {
		n := int(h.nHidden[i])
		if n > 1 {
			m |= h.Get(i, n-1).Mask()
		}
	}
	return m
}

// AllTurnUp reports whether every pile has at most one card left, i.e. no
// pile still has a hidden card underneath its top.
func (h *Hidden) AllTurnUp() bool {
	for i := 0; i < NPiles; i++ {
		if h.nHidden[i] > 1 {
			return false
		}
	}
	return true
}

// TotalDownCards returns the total number of strictly-hidden cards across
// all piles (each pile's own face-up top is excluded), used by the
// position-wide card-count invariant in solitaire.IsValid.
func (h *Hidden) TotalDownCards() int {
	n := 0
	for i := 0; i < NPiles; i++ {
		if h.nHidden[i] > 0 {
			n += int(h.nHidden[i]) - 1
		}
	}
	return n
}

// PileOf returns which pile a card was originally dealt into.
func (h *Hidden) PileOf(c card.Card) int { return int(h.pileMap[c.Value()]) }

// IsValid reports whether every pile's hidden count is within [0, i+1] and
// the layout doesn't duplicate or omit a card.
func (h *Hidden) IsValid() bool {
	var seen uint64
	for i := 0; i < NPiles; i++ {
		if h.nHidden[i] > uint8(i+1) {
			return false
		}
		for j := 0; j <= i; j++ {
			b := h.Get(i, j).Mask()
			if seen&b != 0 {
				return false
			}
			seen |= b
		}
	}
	return true
}

// Encode folds the seven hidden counters into a single mixed-radix integer:
// pile i's counter ranges over i+2 values (0..i+1), folded from the deepest
// pile down to pile 0 so Decode can peel it back off the same way.
func (h *Hidden) Encode() uint32 {
	var res uint32
	for i := NPiles - 1; i >= 0; i-- {
		res = res*uint32(i+2) + uint32(h.nHidden[i])
	}
	return res
}

// Decode restores the nHidden counters from an Encode value; the card
// layout itself is untouched, matching the reference engine where hidden
// identities are fixed by the deal and only the reveal counters vary.
func (h *Hidden) Decode(v uint32) {
	for i := 0; i < NPiles; i++ {
		h.nHidden[i] = uint8(v % uint32(i+2))
		v /= uint32(i + 2)
	}
}

// pool collects every strictly-hidden card (each pile's exposed top stays
// put, since it is simultaneously the bottom of that pile's visible run).
func (h *Hidden) pool() []card.Card {
	out := make([]card.Card, 0, NHiddenCards)
	for i := 0; i < NPiles; i++ {
		n := int(h.nHidden[i])
		if n >= 2 {
			out = append(out, h.cards[pileStart(i):pileStart(i)+n-1]...)
		}
	}
	return out
}

// scatter writes pool back into the strictly-hidden slots in pile order and
// refreshes pileMap for every card still tracked by the layout.
func (h *Hidden) scatter(pool []card.Card) {
	idx := 0
	for i := 0; i < NPiles; i++ {
		n := int(h.nHidden[i])
		if n >= 2 {
			copy(h.cards[pileStart(i):pileStart(i)+n-1], pool[idx:idx+n-1])
			idx += n - 1
		}
		for j := 0; j < n; j++ {
			h.pileMap[h.Get(i, j).Value()] = uint8(i)
		}
	}
}

// Clear canonicalizes the still-hidden card identities into lexicographic
// order across all piles; since Encode only depends on the counters, this
// never changes the encoded value, only which physical card sits in which
// face-down slot.
func (h *Hidden) Clear() {
	pool := h.pool()
	for a := 0; a < len(pool); a++ {
		for b := a + 1; b < len(pool); b++ {
			if pool[b] < pool[a] {
				pool[a], pool[b] = pool[b], pool[a]
			}
		}
	}
	h.scatter(pool)
}

// Shuffle redistributes the still-hidden cards uniformly across all
// face-down slots (not merely within each pile); like Clear, this never
// changes Encode and never touches an exposed top.
func (h *Hidden) Shuffle(rng *rand.Rand) {
	pool := h.pool()
	rng.Shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })
	h.scatter(pool)
}

// Normalize reduces pile i's hidden count to a coarse signal used when
// comparing two states for practical equivalence: the exact count if more
// than one slot remains (order still matters); for a single remaining card,
// 1 if it ranks below a King and 0 if it is a King; or 0 if the pile is
// empty.
func (h *Hidden) Normalize() [NPiles]uint8 {
	var out [NPiles]uint8
	for i := 0; i < NPiles; i++ {
		n := h.nHidden[i]
		switch {
		case n > 1:
			out[i] = n
		case n == 1:
			if h.Get(i, 0).Rank() < card.KingRank {
				out[i] = 1
			} else {
				out[i] = 0
			}
		default:
			out[i] = 0
		}
	}
	return out
}

// ToPiles returns, for each tableau pile, the slice of cards still hidden
// beneath the current face-up card (used by the StandardSolitaire view).
func (h *Hidden) ToPiles() [NPiles][]card.Card {
	var out [NPiles][]card.Card
	for i := 0; i < NPiles; i++ {
		n := int(h.nHidden[i])
		if n == 0 {
			continue
		}
		out[i] = append(out[i], h.cards[pileStart(i):pileStart(i)+n-1]...)
	}
	return out
}
