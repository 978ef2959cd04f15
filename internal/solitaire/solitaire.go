// Package solitaire implements the Klondike game state machine: the seven
// tableau piles, the four foundations, and the stock/waste deck, along with
// move generation, dominance-forced shortcuts, and reversible do/undo.
package solitaire

import (
	"fmt"

	"github.com/oasis-klondike/klondike-solver/internal/card"
	"github.com/oasis-klondike/klondike-solver/internal/deck"
	"github.com/oasis-klondike/klondike-solver/internal/hidden"
	"github.com/oasis-klondike/klondike-solver/internal/move"
	"github.com/oasis-klondike/klondike-solver/internal/stack"
)

// Encode is the 64-bit key used for hashing and transposition detection:
// the foundation counters (16 bits), the hidden-pile reveal counters (16
// bits), and the deck's mask+offset (29 bits), packed low to high.
type Encode uint64

// Solitaire is a single game position. The tableau piles are stored
// explicitly (bottom card first); the bottom card of a pile that still has
// cards hidden beneath it is the "anchor" shared with the Hidden layout.
type Solitaire struct {
	hidden hidden.Hidden
	piles  [hidden.NPiles][]card.Card
	final  stack.Stack
	deck   deck.Deck
}

// New builds a freshly dealt game: deal must contain all 52 cards, the
// first 28 dealt triangularly into the tableau and the remaining 24 forming
// the stock, exactly as a physical Klondike deal would. A deal that is not
// a full permutation, or a draw step outside [1, 24], is rejected.
func New(dealt [card.NCards]card.Card, drawStep uint8) (*Solitaire, error) {
	if drawStep < 1 || drawStep > deck.NFullDeck {
		return nil, fmt.Errorf("solitaire: draw step %d outside [1, %d]", drawStep, deck.NFullDeck)
	}
	var seen uint64
	for _, c := range dealt {
		if c.Value() >= card.NCards {
			return nil, fmt.Errorf("solitaire: %v is not a card", c)
		}
		if seen&c.Mask() != 0 {
			return nil, fmt.Errorf("solitaire: card %v dealt twice", c)
		}
		seen |= c.Mask()
	}
	s := &Solitaire{}
	s.hidden = hidden.New(dealt[:hidden.NHiddenCards])
	var stockCards [deck.NFullDeck]card.Card
	copy(stockCards[:], dealt[hidden.NHiddenCards:])
	s.deck = deck.New(stockCards, drawStep)
	for i := 0; i < hidden.NPiles; i++ {
		if top, ok := s.hidden.Top(i); ok {
			s.piles[i] = []card.Card{top}
		}
	}
	return s, nil
}

func (s *Solitaire) Stack() stack.Stack  { return s.final }
func (s *Solitaire) Deck() *deck.Deck    { return &s.deck }
func (s *Solitaire) Hidden() *hidden.Hidden { return &s.hidden }

// Pile returns pile i's current visible cards, bottom (closest to hidden)
// first, top (currently exposed) last.
func (s *Solitaire) Pile(i int) []card.Card { return s.piles[i] }

func snapshot(p []card.Card) []card.Card {
	out := make([]card.Card, len(p))
	copy(out, p)
	return out
}

// VisibleMask is the set of cards currently showing in a tableau pile.
func (s *Solitaire) VisibleMask() uint64 {
	var m uint64
	for i := 0; i < hidden.NPiles; i++ {
		for _, c := range s.piles[i] {
			m |= c.Mask()
		}
	}
	return m
}

// LockedMask is the set of cards that are the bottom (anchor) of a tableau
// pile that still has at least one truly hidden card beneath it: moving
// such a card (or the run it anchors) reveals a new hidden card.
func (s *Solitaire) LockedMask() uint64 {
	var m uint64
	for i := 0; i < hidden.NPiles; i++ {
		if s.hidden.NHidden(i) > 1 {
			m |= s.piles[i][0].Mask()
		}
	}
	return m
}

// ExtendedTopMask is the set of visible cards that pin a tableau slot in
// place: locked anchors plus any visible king (an in-play king occupies a
// slot whether or not anything is stacked on it). Its popcount bounds how
// many of the seven slots are spoken for, and it is invariant under the
// cosmetic run relabelings Decode is allowed to produce.
func (s *Solitaire) ExtendedTopMask() uint64 {
	return s.VisibleMask() & (s.LockedMask() | card.KingMask)
}

// FindPileWithTop returns the pile whose current face-up top is c, used by
// internal/convert to translate a PileStack move into a board position.
func (s *Solitaire) FindPileWithTop(c card.Card) (int, bool) { return s.pileWithTop(c) }

// FindFreePile returns the pile c could currently land on via a
// DeckPile/StackPile/Reveal move, used by internal/convert.
func (s *Solitaire) FindFreePile(c card.Card) (int, bool) { return s.findFreePile(c, -1) }

// FindPileWithBottom returns the pile whose locked anchor (bottom of its
// visible run) is c, used by internal/convert to translate a Reveal move.
func (s *Solitaire) FindPileWithBottom(c card.Card) (int, bool) { return s.pileWithBottom(c) }

func (s *Solitaire) pileWithTop(c card.Card) (int, bool) {
	for i := 0; i < hidden.NPiles; i++ {
		if n := len(s.piles[i]); n > 0 && s.piles[i][n-1] == c {
			return i, true
		}
	}
	return 0, false
}

// findFreePile returns the pile c can land on: either a pile whose current
// top satisfies c.GoBefore(top), or (if c is a King) the first empty pile.
// skip, if >= 0, is excluded from consideration (used by Reveal, which must
// move to a pile other than its source).
func (s *Solitaire) findFreePile(c card.Card, skip int) (int, bool) {
	for i := 0; i < hidden.NPiles; i++ {
		if i == skip {
			continue
		}
		if n := len(s.piles[i]); n > 0 {
			if c.GoBefore(s.piles[i][n-1]) {
				return i, true
			}
		} else if c.Rank() == card.KingRank {
			return i, true
		}
	}
	return 0, false
}

// deckMask computes the reachable-deck-card mask and whether the search is
// forced to take a single dominance-safe deck card right now. At draw step
// 1 any reachable dominance-stackable card forces; at larger steps only the
// deck's last card in draw order (PeekLast) can force, and only from a pure
// offset, because taking a deeper card burns the deck position.
func (s *Solitaire) deckMask(domStackable uint64) (uint64, bool) {
	if s.deck.DrawStep() == 1 {
		mask := s.deck.DrawableMask(false)
		if maskDom := mask & domStackable; maskDom != 0 {
			return card.LowestBit(maskDom), true
		}
		return mask, false
	}
	last, ok := s.deck.PeekLast()
	if !ok {
		return 0, false
	}
	filter := domStackable&last.Mask() != 0
	if filter && s.deck.IsPure() {
		return last.Mask(), true
	}
	return s.deck.DrawableMask(filter), false
}

// GenMoves enumerates every legal move from the current position. When
// dominance is true, GenMoves applies the reference engine's dominance
// reductions in order, each one a stronger claim than the last that nothing
// outside the surviving set can ever be worth exploring:
//
//  1. any pile top that is both stackable and dominance-safe forces that
//     single PileStack;
//  2. failing that, three or more stackable pile tops not anchoring a
//     hidden card are redundant with each other, so only the lowest
//     survives;
//  3. a reachable deck card that is stackable and dominance-safe forces a
//     single DeckStack (see deckMask);
//  4. failing those, a same-rank opposite-suit-but-same-colour pair of
//     stackable pile tops forces that pair alone, dropping every other
//     StackPile/DeckStack candidate;
//  5. failing that, a single redundant stackable top still narrows the
//     StackPile candidates to a suit-symmetric subset that cannot
//     temporarily create a new such pair.
//
// StackPile and DeckPile candidates are additionally filtered against
// DominanceMask: a foundation card that is itself dominance-safe is never
// worth pulling back onto the tableau.
func (s *Solitaire) GenMoves(dominance bool) move.Mask {
	var dom uint64
	if dominance {
		dom = s.final.DominanceMask()
	}
	sm := s.final.Mask()

	var pileStackMask uint64
	for i := 0; i < hidden.NPiles; i++ {
		n := len(s.piles[i])
		if n == 0 {
			continue
		}
		top := s.piles[i][n-1]
		if s.final.Stackable(top) {
			pileStackMask |= top.Mask()
		}
	}

	if pileStackDom := pileStackMask & dom; pileStackDom != 0 {
		c, _ := card.FromMask(card.LowestBit(pileStackDom))
		return move.FromMove(move.Move{Kind: move.PileStack, Card: c})
	}

	locked := s.LockedMask()
	redundantStack := pileStackMask &^ locked
	leastStack := card.LowestBit(redundantStack)

	if dominance && card.PopCount(redundantStack) >= 3 {
		c, _ := card.FromMask(leastStack)
		return move.FromMove(move.Move{Kind: move.PileStack, Card: c})
	}

	domSM := dom & sm
	drawMask, forced := s.deckMask(domSM)
	if forced {
		c, _ := card.FromMask(card.LowestBit(drawMask))
		return move.FromMove(move.Move{Kind: move.DeckStack, Card: c})
	}

	var stackPileMask uint64
	for suit := uint8(0); suit < card.NSuits; suit++ {
		r := s.final.Get(suit)
		if r == 0 {
			continue
		}
		c := card.New(r-1, suit)
		if dom&c.Mask() != 0 {
			continue
		}
		if _, ok := s.findFreePile(c, -1); ok {
			stackPileMask |= c.Mask()
		}
	}

	pileStack := pileStackMask
	stackPile := stackPileMask
	deckStack := drawMask & sm

	if dominance && leastStack != 0 {
		vis := s.VisibleMask()
		pairedStack := pileStackMask & (pileStackMask >> 1) & card.AltMask

		switch {
		case pairedStack != 0:
			// Two stackable tops share a rank and colour: playing either
			// one is equally forced, so keep only that pair.
			rm := pairedStack | (pairedStack << 1)
			pileStack = rm
			stackPile = 0
			deckStack = 0

		default:
			least := leastStack | (leastStack >> 1)
			least = (least & card.AltMask) | ((least & card.AltMask) << 1)
			extra := redundantStack | (vis & sm & (least << 4))

			var suitUnstack [card.NSuits]bool
			for i := range suitUnstack {
				suitUnstack[i] = extra&card.SuitMask[i] == 0
			}

			if (suitUnstack[0] || suitUnstack[1]) && (suitUnstack[2] || suitUnstack[3]) {
				// No StackPile move can put a second card of the same rank
				// back onto the tableau without immediately being
				// reducible itself, so exclude whichever suit of each
				// colour would create one.
				potStack := vis &^ locked & sm
				potStack |= potStack >> 1
				stackRank := (least >> 2) & card.RankMask
				tripleStackable := potStack & stackRank
				tripleStackable |= tripleStackable << 1

				var suitFilter uint64
				if suitUnstack[0] {
					suitFilter |= card.SuitMask[1]
				}
				if suitUnstack[1] {
					suitFilter |= card.SuitMask[0]
				}
				if suitUnstack[2] {
					suitFilter |= card.SuitMask[3]
				}
				if suitUnstack[3] {
					suitFilter |= card.SuitMask[2]
				}

				stackPile = stackPileMask & suitFilter & (leastStack - 1) &^ tripleStackable
				pileStack = leastStack
				deckStack = 0
			} else {
				stackPile = 0
				pileStack = leastStack
				deckStack = 0
			}
		}
	}

	var m move.Mask
	m.PileStack = pileStack
	m.StackPile = stackPile
	m.DeckStack = deckStack

	for i := 0; i < hidden.NPiles; i++ {
		n := len(s.piles[i])
		if n == 0 {
			continue
		}
		bottom := s.piles[i][0]
		if s.hidden.NHidden(i) > 1 {
			if _, ok := s.findFreePile(bottom, i); ok {
				m.Reveal |= bottom.Mask()
			}
		}
	}

	mask := drawMask
	for mask != 0 {
		c, _ := card.FromMask(mask)
		mask = card.ClearLowest(mask)
		if domSM&c.Mask() != 0 {
			continue
		}
		if _, ok := s.findFreePile(c, -1); ok {
			m.DeckPile |= c.Mask()
		}
	}

	return m
}

// ExtraInfo describes the side effect a move had on the hidden layer:
// either a new card was exposed, or a pile was emptied outright without
// exposing anything. Pruners key their post-reveal rules on this.
type ExtraInfo struct {
	Exposed    card.Card
	HasExposed bool
	Emptied    bool
}

// UndoInfo carries enough of the prior state to exactly reverse a DoMove
// call, including whatever tableau pile(s) and hidden-reveal state it
// touched.
type UndoInfo struct {
	kind       move.Kind
	prevFinal  stack.Stack
	prevHidden hidden.Hidden
	prevDeck   deck.Deck
	fromPile   int
	toPile     int
	prevFrom   []card.Card
	prevTo     []card.Card
	extra      ExtraInfo
}

// Extra reports what the recorded move revealed, if anything.
func (u UndoInfo) Extra() ExtraInfo { return u.extra }

// DoMove applies m, returning an UndoInfo that UndoMove can later use to
// reverse it, and an error if m is not legal in the current position.
func (s *Solitaire) DoMove(m move.Move) (UndoInfo, error) {
	switch m.Kind {
	case move.DeckStack:
		pos, ok := s.deck.FindCard(m.Card)
		if !ok || !s.final.Stackable(m.Card) {
			return UndoInfo{}, fmt.Errorf("solitaire: DeckStack %v is not legal", m.Card)
		}
		prevDeck := s.deck
		prevFinal := s.final
		s.deck.Draw(uint8(pos))
		s.final = s.final.Push(m.Card.Suit())
		return UndoInfo{kind: m.Kind, prevDeck: prevDeck, prevFinal: prevFinal}, nil

	case move.DeckPile:
		pos, ok := s.deck.FindCard(m.Card)
		if !ok {
			return UndoInfo{}, fmt.Errorf("solitaire: DeckPile %v is not legal", m.Card)
		}
		to, ok := s.findFreePile(m.Card, -1)
		if !ok {
			return UndoInfo{}, fmt.Errorf("solitaire: DeckPile %v has no legal destination", m.Card)
		}
		prevDeck := s.deck
		prevTo := snapshot(s.piles[to])
		s.deck.Draw(uint8(pos))
		s.piles[to] = append(append([]card.Card{}, s.piles[to]...), m.Card)
		return UndoInfo{kind: m.Kind, prevDeck: prevDeck, toPile: to, prevTo: prevTo}, nil

	case move.StackPile:
		if s.final.Get(m.Card.Suit()) != m.Card.Rank()+1 {
			return UndoInfo{}, fmt.Errorf("solitaire: StackPile %v is not legal", m.Card)
		}
		to, ok := s.findFreePile(m.Card, -1)
		if !ok {
			return UndoInfo{}, fmt.Errorf("solitaire: StackPile %v has no legal destination", m.Card)
		}
		prevFinal := s.final
		prevTo := snapshot(s.piles[to])
		s.final = s.final.Pop(m.Card.Suit())
		s.piles[to] = append(append([]card.Card{}, s.piles[to]...), m.Card)
		return UndoInfo{kind: m.Kind, prevFinal: prevFinal, toPile: to, prevTo: prevTo}, nil

	case move.PileStack:
		i, ok := s.pileWithTop(m.Card)
		if !ok || !s.final.Stackable(m.Card) {
			return UndoInfo{}, fmt.Errorf("solitaire: PileStack %v is not legal", m.Card)
		}
		prevFinal := s.final
		prevFrom := snapshot(s.piles[i])
		prevHidden := s.hidden
		var extra ExtraInfo
		s.piles[i] = s.piles[i][:len(s.piles[i])-1]
		s.final = s.final.Push(m.Card.Suit())
		if len(s.piles[i]) == 0 && s.hidden.NHidden(i) > 0 {
			s.hidden.Pop(i)
			if s.hidden.NHidden(i) > 0 {
				newTop, _ := s.hidden.Top(i)
				s.piles[i] = []card.Card{newTop}
				extra = ExtraInfo{Exposed: newTop, HasExposed: true}
			} else {
				extra = ExtraInfo{Emptied: true}
			}
		}
		return UndoInfo{kind: m.Kind, prevFinal: prevFinal, fromPile: i, prevFrom: prevFrom, prevHidden: prevHidden, extra: extra}, nil

	case move.Reveal:
		i, ok := s.pileWithBottom(m.Card)
		if !ok || s.hidden.NHidden(i) <= 1 {
			return UndoInfo{}, fmt.Errorf("solitaire: Reveal %v is not legal", m.Card)
		}
		to, ok := s.findFreePile(m.Card, i)
		if !ok {
			return UndoInfo{}, fmt.Errorf("solitaire: Reveal %v has no legal destination", m.Card)
		}
		prevFrom := snapshot(s.piles[i])
		prevTo := snapshot(s.piles[to])
		prevHidden := s.hidden
		var extra ExtraInfo
		s.piles[to] = append(append([]card.Card{}, s.piles[to]...), s.piles[i]...)
		s.piles[i] = nil
		s.hidden.Pop(i)
		if s.hidden.NHidden(i) > 0 {
			newTop, _ := s.hidden.Top(i)
			s.piles[i] = []card.Card{newTop}
			extra = ExtraInfo{Exposed: newTop, HasExposed: true}
		} else {
			extra = ExtraInfo{Emptied: true}
		}
		return UndoInfo{kind: m.Kind, fromPile: i, toPile: to, prevFrom: prevFrom, prevTo: prevTo, prevHidden: prevHidden, extra: extra}, nil
	}
	return UndoInfo{}, fmt.Errorf("solitaire: unknown move kind %v", m.Kind)
}

func (s *Solitaire) pileWithBottom(c card.Card) (int, bool) {
	for i := 0; i < hidden.NPiles; i++ {
		if len(s.piles[i]) > 0 && s.piles[i][0] == c {
			return i, true
		}
	}
	return 0, false
}

// UndoMove exactly reverses the DoMove call that produced undo.
func (s *Solitaire) UndoMove(m move.Move, undo UndoInfo) {
	switch m.Kind {
	case move.DeckStack:
		s.deck = undo.prevDeck
		s.final = undo.prevFinal
	case move.DeckPile:
		s.deck = undo.prevDeck
		s.piles[undo.toPile] = undo.prevTo
	case move.StackPile:
		s.final = undo.prevFinal
		s.piles[undo.toPile] = undo.prevTo
	case move.PileStack:
		s.final = undo.prevFinal
		s.piles[undo.fromPile] = undo.prevFrom
		s.hidden = undo.prevHidden
	case move.Reveal:
		s.piles[undo.fromPile] = undo.prevFrom
		s.piles[undo.toPile] = undo.prevTo
		s.hidden = undo.prevHidden
	}
}

// ReverseMove returns the move that would undo m if applied immediately
// after it, when such a move exists (used by cycle pruning): PileStack can
// be undone by StackPile unless the moved card is locked (taking it off
// reveals a hidden card);
// StackPile is always undone by PileStack.
func (s *Solitaire) ReverseMove(m move.Move) (move.Move, bool) {
	switch m.Kind {
	case move.PileStack:
		if s.LockedMask()&m.Card.Mask() != 0 {
			return move.Move{}, false
		}
		return move.Move{Kind: move.StackPile, Card: m.Card}, true
	case move.StackPile:
		return move.Move{Kind: move.PileStack, Card: m.Card}, true
	default:
		return move.Move{}, false
	}
}

// IsWin reports whether all four foundations are complete.
func (s *Solitaire) IsWin() bool { return s.final.IsFull() }

// IsSureWin reports a position that is trivially winnable: no hidden cards
// remain, and there is at most one card left to draw (so no further
// shuffling of information can occur).
func (s *Solitaire) IsSureWin() bool {
	return s.deck.Len() <= 1 && s.hidden.AllTurnUp()
}

// Encode packs the foundation, hidden-reveal, and deck state into the
// 64-bit transposition key.
func (s *Solitaire) Encode() Encode {
	return Encode(uint64(s.final.Encode())) |
		Encode(uint64(s.hidden.Encode())<<16) |
		Encode(uint64(s.deck.Encode())<<32)
}

// IsValid checks the structural invariants of a position: the hidden
// layout must not duplicate or omit a card, the foundation counters must
// be within range, the locked mask must agree with the hidden layer, no
// more than N_PILES cards can simultaneously be an "extended top", no
// visible card may appear twice, and the visible, foundation, deck and
// face-down card counts must add up to 52.
func (s *Solitaire) IsValid() bool {
	if !s.hidden.IsValid() || !s.final.IsValid() {
		return false
	}
	if card.PopCount(s.ExtendedTopMask()) > hidden.NPiles {
		return false
	}
	if s.LockedMask() != s.hidden.ComputeLockedMask() {
		return false
	}
	var seen uint64
	for i := 0; i < hidden.NPiles; i++ {
		for _, c := range s.piles[i] {
			b := c.Mask()
			if seen&b != 0 {
				return false
			}
			seen |= b
		}
	}
	total := card.PopCount(s.VisibleMask()) + s.final.Len() + int(s.deck.Len()) + s.hidden.TotalDownCards()
	return total == card.NCards
}

// computeVisiblePiles rebuilds a plausible assignment of tableau pile
// contents from visibleMask and the hidden layout alone: every card that is
// visible-but-not-locked must belong to the alternating-colour, descending
// run anchored at its pile's locked (or, for an empty hidden pile, an
// available King) bottom card. Because two different suits of the same
// colour are interchangeable at this level of information, the specific
// card chosen when a choice exists is arbitrary but always valid; this
// mirrors the reference engine's own compute_visible_piles, which exists
// precisely because the compact Encode does not pin down tableau identity
// any more tightly than this.
func computeVisiblePiles(h *hidden.Hidden, visibleMask uint64) [hidden.NPiles][]card.Card {
	// Every current anchor (each pile's hidden-top card, locked or not) is
	// excluded from the consumable set: an anchor belongs to its own pile
	// unconditionally, so another pile's run reconstruction must never
	// absorb it.
	var anchors uint64
	for i := 0; i < hidden.NPiles; i++ {
		if c, ok := h.Top(i); ok {
			anchors |= c.Mask()
		}
	}
	nonTop := visibleMask &^ anchors
	var out [hidden.NPiles][]card.Card
	kingSuit := uint8(0)
	for i := 0; i < hidden.NPiles; i++ {
		start, ok := h.Top(i)
		if !ok {
			for kingSuit < card.NSuits && nonTop&card.New(card.KingRank, kingSuit).Mask() == 0 {
				kingSuit++
			}
			if kingSuit >= card.NSuits {
				continue
			}
			start = card.New(card.KingRank, kingSuit)
			kingSuit++
		}
		for {
			out[i] = append(out[i], start)
			if start.Rank() == 0 {
				break
			}
			hasBoth := visibleMask&start.SwapSuit().Mask() != 0
			next := start.ReduceRankSwapColor()
			if !hasBoth && nonTop&next.Mask() == 0 {
				start = next.SwapSuit()
			} else {
				start = next
			}
			if nonTop&start.Mask() == 0 {
				break
			}
		}
	}
	return out
}

// Decode rebuilds s from a transposition Encode previously produced by a
// state dealt the same way (same original 52-card deal and draw step): the
// foundations and deck reconstruct exactly, the hidden reveal counters
// reconstruct exactly, but the specific identity of still-hidden cards and
// of tableau runs built above a locked anchor is not pinned down by Encode,
// so Decode reconstructs *some* position equivalent
// to the encoded one rather than necessarily the literal state that
// produced it. Decode reports whether the result is structurally valid; on
// failure s is left unmodified.
func (s *Solitaire) Decode(e Encode) bool {
	scratch := *s
	scratch.final = stack.Decode(uint16(e))
	scratch.hidden.Decode(uint32((uint64(e) >> 16) & 0xFFFF))
	scratch.deck.Decode(uint32(uint64(e) >> 32))

	for i := 0; i < hidden.NPiles; i++ {
		scratch.piles[i] = nil
	}
	allMask := card.FullMask(card.NCards)
	nonVisible := uint64(0)
	for suit := uint8(0); suit < card.NSuits; suit++ {
		for rank := uint8(0); rank < scratch.final.Get(suit); rank++ {
			nonVisible |= card.New(rank, suit).Mask()
		}
	}
	nonVisible |= scratch.hidden.Mask()
	for _, c := range scratch.deck.Waste() {
		nonVisible |= c.Mask()
	}
	for _, c := range scratch.deck.Stock() {
		nonVisible |= c.Mask()
	}
	visibleMask := allMask &^ nonVisible
	scratch.piles = computeVisiblePiles(&scratch.hidden, visibleMask)

	if !scratch.IsValid() {
		return false
	}
	*s = scratch
	return true
}

// EquivalentTo reports whether s and other represent the same game from the
// player's perspective: identical deck state, foundations, exposed tops,
// and a coarse (rather than card-identity) comparison of the hidden piles.
func (s *Solitaire) EquivalentTo(other *Solitaire) bool {
	if s.final != other.final {
		return false
	}
	if !s.deck.EquivalentTo(&other.deck) {
		return false
	}
	if s.ExtendedTopMask() != other.ExtendedTopMask() || s.VisibleMask() != other.VisibleMask() {
		return false
	}
	return s.hidden.Normalize() == other.hidden.Normalize()
}
