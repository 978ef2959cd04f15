// Package shuffler implements five named seed -> 52-card permutation
// strategies as an external collaborator interface. Only Default and Legacy
// have a reference implementation in original_source; the other three are
// named, documented stubs, since shuffling algorithms compatible with
// external Solitaire corpora are an external concern the core only
// consumes the output of, never reimplements.
package shuffler

import (
	"errors"
	"math/rand"

	"github.com/oasis-klondike/klondike-solver/internal/card"
)

// Deal is a full 52-card permutation: the first 28 cards are the tableau
// deal (triangular, see internal/hidden), the remaining 24 are the stock.
type Deal = [card.NCards]card.Card

// Strategy maps a seed to a Deal.
type Strategy func(seed uint64) (Deal, error)

// ErrNoReference is returned by the strategies original_source carries no
// implementation for: porting them would mean inventing the shuffling
// algorithm rather than learning it from a reference.
var ErrNoReference = errors.New("shuffler: no reference implementation available")

// Default shuffles a fresh ordered deck with a Fisher-Yates shuffle seeded
// from seed, grounded in original_source/src/shuffler.rs's shuffled_deck.
func Default(seed uint64) (Deal, error) {
	var deal Deal
	for i := 0; i < card.NCards; i++ {
		deal[i] = card.New(uint8(i)/card.NSuits, uint8(i)%card.NSuits)
	}
	rng := rand.New(rand.NewSource(int64(seed)))
	rng.Shuffle(len(deal), func(i, j int) { deal[i], deal[j] = deal[j], deal[i] })
	return deal, nil
}

// Legacy is Default's deal remapped into the older triangular pile order,
// grounded in original_source/src/shuffler.rs's to_legacy/shuffled_deck_legacy.
func Legacy(seed uint64) (Deal, error) {
	deal, err := Default(seed)
	if err != nil {
		return Deal{}, err
	}
	return toLegacy(deal), nil
}

const nPiles = 7

// toLegacy remaps a Default-ordered deal into the pile layout an older
// dealer used: pile i's j-th-from-top card (j<i) comes from the
// triangular-minus-one slot, and the new top of pile i comes from the
// "old hidden" region just past the smaller triangle.
func toLegacy(cards Deal) Deal {
	var out Deal = cards
	const oldHidden = nPiles * (nPiles - 1) / 2
	for i := 0; i < nPiles; i++ {
		for j := 0; j < i; j++ {
			out[i*(i+1)/2+j] = cards[i*(i-1)/2+j]
		}
		out[i*(i+1)/2+i] = cards[oldHidden+i]
	}
	return out
}

// Solvitaire, KlondikeSolver and Greenfelt name three further shuffler
// strategies that original_source carries no body for; each returns
// ErrNoReference rather than guessing at an algorithm never specified.
func Solvitaire(uint64) (Deal, error)      { return Deal{}, ErrNoReference }
func KlondikeSolver(uint64) (Deal, error)  { return Deal{}, ErrNoReference }
func Greenfelt(uint64) (Deal, error)       { return Deal{}, ErrNoReference }
