package solitaire

import (
	"math/rand"
	"testing"

	"github.com/oasis-klondike/klondike-solver/internal/card"
	"github.com/oasis-klondike/klondike-solver/internal/move"
	"github.com/oasis-klondike/klondike-solver/internal/stack"
)

func orderedDeal() [card.NCards]card.Card {
	var d [card.NCards]card.Card
	for i := range d {
		d[i] = card.FromValue(uint8(i))
	}
	return d
}

func shuffledDeal(seed int64) [card.NCards]card.Card {
	d := orderedDeal()
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(d), func(i, j int) { d[i], d[j] = d[j], d[i] })
	return d
}

func mustNew(tb testing.TB, dealt [card.NCards]card.Card, drawStep uint8) *Solitaire {
	tb.Helper()
	s, err := New(dealt, drawStep)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}
	return s
}

func TestNewRejectsInvalidDeals(t *testing.T) {
	deal := orderedDeal()
	deal[5] = deal[4] // duplicate card
	if _, err := New(deal, 3); err == nil {
		t.Fatalf("a deal with a duplicated card should be rejected")
	}
	if _, err := New(orderedDeal(), 0); err == nil {
		t.Fatalf("draw step 0 should be rejected")
	}
	if _, err := New(orderedDeal(), 25); err == nil {
		t.Fatalf("draw step above the stock size should be rejected")
	}
}

func TestNewDealShape(t *testing.T) {
	s := mustNew(t, orderedDeal(), 3)
	for i := 0; i < 7; i++ {
		if len(s.Pile(i)) != 1 {
			t.Fatalf("pile %d should start with exactly 1 visible card, got %d", i, len(s.Pile(i)))
		}
	}
	if s.IsWin() {
		t.Fatalf("a fresh deal should not be a win")
	}
}

func TestDoUndoPreservesEncode(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		s := mustNew(t, shuffledDeal(seed), 1)
		before := s.Encode()
		m := s.GenMoves(false)
		var first move.Move
		found := false
		m.IterMoves(func(mv move.Move) bool {
			first = mv
			found = true
			return false
		})
		if !found {
			continue
		}
		undo, err := s.DoMove(first)
		if err != nil {
			t.Fatalf("seed %d: legal move %v rejected: %v", seed, first, err)
		}
		if s.Encode() == before {
			t.Fatalf("seed %d: move %v should change the encoded state", seed, first)
		}
		s.UndoMove(first, undo)
		if s.Encode() != before {
			t.Fatalf("seed %d: undo of %v did not restore the original encode", seed, first)
		}
	}
}

func TestDeepUndoRestoresState(t *testing.T) {
	s := mustNew(t, shuffledDeal(7), 3)
	encodes := []Encode{s.Encode()}
	var undos []move.Move
	var infos []UndoInfo
	for i := 0; i < 100; i++ {
		m := s.GenMoves(false)
		var mv move.Move
		found := false
		m.IterMoves(func(x move.Move) bool {
			mv = x
			found = true
			return false
		})
		if !found {
			break
		}
		u, err := s.DoMove(mv)
		if err != nil {
			t.Fatalf("move %d (%v) rejected: %v", i, mv, err)
		}
		undos = append(undos, mv)
		infos = append(infos, u)
		encodes = append(encodes, s.Encode())
	}
	for i := len(undos) - 1; i >= 0; i-- {
		if got := s.Encode(); got != encodes[i+1] {
			t.Fatalf("before undoing move %d the encode should be %#x, got %#x", i, encodes[i+1], got)
		}
		s.UndoMove(undos[i], infos[i])
		if got := s.Encode(); got != encodes[i] {
			t.Fatalf("undoing move %d should restore encode %#x, got %#x", i, encodes[i], got)
		}
	}
}

// TestHiddenShufflePreservesEncodeAndValidity pins the determinisation
// contract HOP relies on: reshuffling the still-hidden cards never changes
// the encode and always leaves the position structurally valid.
func TestHiddenShufflePreservesEncodeAndValidity(t *testing.T) {
	s := mustNew(t, shuffledDeal(21), 3)
	rng := rand.New(rand.NewSource(21))
	for i := 0; i < 5; i++ {
		moves := s.GenMoves(true).ToSlice()
		if len(moves) == 0 {
			break
		}
		if _, err := s.DoMove(moves[0]); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	before := s.Encode()
	s.Hidden().Shuffle(rng)
	if s.Encode() != before {
		t.Fatalf("hidden shuffle must not change the encode")
	}
	if !s.IsValid() {
		t.Fatalf("hidden shuffle must leave the position valid")
	}
}

// TestEncodeDecodeRandomPlayouts drives random dominance-filtered playouts
// and, at every step, decodes the current encode into a freshly dealt state
// of the same deal: the decode must succeed, re-encode to the same value,
// and land on a position equivalent to the live one.
func TestEncodeDecodeRandomPlayouts(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		s := mustNew(t, shuffledDeal(seed), 3)
		rng := rand.New(rand.NewSource(seed))
		for i := 0; i < 30; i++ {
			moves := s.GenMoves(true).ToSlice()
			if len(moves) == 0 {
				break
			}
			if _, err := s.DoMove(moves[rng.Intn(len(moves))]); err != nil {
				t.Fatalf("seed %d step %d: legal move rejected: %v", seed, i, err)
			}

			enc := s.Encode()
			fresh := mustNew(t, shuffledDeal(seed), 3)
			if !fresh.Decode(enc) {
				t.Fatalf("seed %d step %d: decode of a reachable state failed", seed, i)
			}
			if got := fresh.Encode(); got != enc {
				t.Fatalf("seed %d step %d: re-encode %#x != original %#x", seed, i, got, enc)
			}
			if !fresh.IsValid() {
				t.Fatalf("seed %d step %d: decoded state is not valid", seed, i)
			}
			if !fresh.EquivalentTo(s) || !s.EquivalentTo(fresh) {
				t.Fatalf("seed %d step %d: decoded state is not equivalent to the live one", seed, i)
			}
		}
	}
}

func TestIsValidAfterDeal(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		s := mustNew(t, shuffledDeal(seed), 1)
		if !s.IsValid() {
			t.Fatalf("seed %d: freshly dealt game should be valid", seed)
		}
	}
}

func TestIsSureWinWhenAllRevealedAndDeckEmpty(t *testing.T) {
	s := mustNew(t, orderedDeal(), 1)
	if s.IsSureWin() {
		t.Fatalf("a fresh deal is not a sure win")
	}
	for i := 0; i < 7; i++ {
		for s.hidden.NHidden(i) > 1 {
			s.hidden.Pop(i)
		}
	}
	for s.deck.Len() > 0 {
		s.deck.Draw(0)
	}
	if !s.IsSureWin() {
		t.Fatalf("with every pile turned up and the deck empty, IsSureWin should hold")
	}
}

// TestDominanceForcesLowestBlackTwo pins down the forced-move shortcut: with
// both red aces and both black aces already on their foundations, both black
// twos are simultaneously stackable and dominance-safe. Dominance mode must
// collapse the move set down to exactly one PileStack, the lower-valued of
// the two (clubs, whose suit index is lower than spades').
func TestDominanceForcesLowestBlackTwo(t *testing.T) {
	deal := orderedDeal()
	clubsTwo := card.New(1, 2)
	// Pin the black twos onto visible pile tops (slots 0 and 2) and bury
	// the red twos in hidden slots (1 and 3), so no red two sits on a pile
	// top and steals the lowest-bit tie-break.
	place := []struct {
		slot int
		c    card.Card
	}{
		{0, clubsTwo},
		{2, card.New(1, 3)},
		{1, card.New(1, 0)},
		{3, card.New(1, 1)},
	}
	for _, p := range place {
		for i := range deal {
			if deal[i] == p.c {
				deal[p.slot], deal[i] = deal[i], deal[p.slot]
				break
			}
		}
	}

	s := mustNew(t, deal, 1)
	s.final = stack.New().Push(0).Push(1).Push(2).Push(3)

	moves := s.GenMoves(true).ToSlice()
	want := move.Move{Kind: move.PileStack, Card: clubsTwo}
	if len(moves) != 1 || moves[0] != want {
		t.Fatalf("expected exactly one forced move %v, got %v", want, moves)
	}
}

// TestDominanceMovesAreSubsetOfFull checks the subset invariant dominance
// mode must always preserve: every move dominance-mode returns (when it
// doesn't collapse the position to a single forced move) must also be
// reachable with dominance off, since dominance only ever narrows a
// legal-but-provably-inferior set, never introduces a move the unrestricted
// search wouldn't already consider.
func TestDominanceMovesAreSubsetOfFull(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		s := mustNew(t, shuffledDeal(seed), 3)
		for i := 0; i < 30; i++ {
			full := s.GenMoves(false)
			dom := s.GenMoves(true)

			domMoves := dom.ToSlice()
			if len(domMoves) == 1 {
				fullMoves := full.ToSlice()
				found := false
				for _, fm := range fullMoves {
					if fm == domMoves[0] {
						found = true
						break
					}
				}
				if !found {
					t.Fatalf("seed %d step %d: dominance-forced move %v is not itself a legal move", seed, i, domMoves[0])
				}
			} else {
				for _, dm := range domMoves {
					found := false
					full.IterMoves(func(fm move.Move) bool {
						if fm == dm {
							found = true
							return false
						}
						return true
					})
					if !found {
						t.Fatalf("seed %d step %d: dominance move %v not in unrestricted move set", seed, i, dm)
					}
				}
			}

			var mv move.Move
			ok := false
			full.IterMoves(func(x move.Move) bool {
				mv = x
				ok = true
				return false
			})
			if !ok {
				break
			}
			if _, err := s.DoMove(mv); err != nil {
				t.Fatalf("seed %d step %d: legal move %v rejected: %v", seed, i, mv, err)
			}
		}
	}
}
