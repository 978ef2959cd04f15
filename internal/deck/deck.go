// Package deck implements the stock/waste pile under an arbitrary draw
// step: the 24 cards not dealt into the tableau sit in a single backing
// array, split into a "waste" prefix (already drawn, face up) and a "stock"
// suffix (still face down), with the split point sliding as cards are
// drawn, redealt, or taken.
package deck

import (
	"github.com/oasis-klondike/klondike-solver/internal/card"
)

const NFullDeck = card.NCards - 28 // 24: the cards not dealt to the tableau

// Drawable classifies a card's position for UI/search purposes: whether it
// sits exactly at the current draw point, at the next draw point, or
// neither.
type Drawable int

const (
	DrawableNone Drawable = iota
	DrawableCurrent
	DrawableNext
)

// Deck holds the 24 non-tableau cards plus the bookkeeping needed to
// enumerate which of them are reachable under the configured draw step.
type Deck struct {
	cards    [NFullDeck]card.Card
	drawStep uint8
	drawNext uint8 // start position of the still-to-draw suffix
	drawCur  uint8 // length of the already-drawn prefix
	mask     uint32
	cardPos  [card.NCards]uint8 // card value -> index into cards
}

// New builds a Deck from the 24 cards not dealt to the tableau, with the
// waste/stock split starting at drawStep (the first batch already "drawn").
func New(cards [NFullDeck]card.Card, drawStep uint8) Deck {
	if drawStep > NFullDeck {
		drawStep = NFullDeck
	}
	var d Deck
	d.cards = cards
	d.drawStep = drawStep
	d.drawNext = drawStep
	d.drawCur = drawStep
	for i := range d.cardPos {
		d.cardPos[i] = 0xFF
	}
	for i, c := range cards {
		d.cardPos[c.Value()] = uint8(i)
	}
	return d
}

func (d *Deck) DrawStep() uint8 { return d.drawStep }

// Len returns how many cards remain undealt (waste + stock).
func (d *Deck) Len() uint8 { return NFullDeck - d.drawNext + d.drawCur }

// IsEmpty reports whether every card has been taken off the deck.
func (d *Deck) IsEmpty() bool { return d.drawCur == 0 && d.drawNext == NFullDeck }

// Waste returns the already-drawn prefix, in draw order.
func (d *Deck) Waste() []card.Card { return d.cards[:d.drawCur] }

// Stock returns the not-yet-drawn suffix, in draw order.
func (d *Deck) Stock() []card.Card { return d.cards[d.drawNext:] }

// FindCard returns the position of c among the still-undealt cards, if any.
func (d *Deck) FindCard(c card.Card) (int, bool) {
	for i, cc := range d.Waste() {
		if cc == c {
			return i, true
		}
	}
	for i, cc := range d.Stock() {
		if cc == c {
			return int(d.drawCur) + i, true
		}
	}
	return 0, false
}

// PeekLast returns the last card of the deck in draw order: the final card
// of the stock while the stock is non-empty, otherwise the top of the
// waste, if any cards remain.
func (d *Deck) PeekLast() (card.Card, bool) {
	if d.drawNext < NFullDeck {
		return d.cards[NFullDeck-1], true
	}
	if d.drawCur > 0 {
		return d.cards[d.drawCur-1], true
	}
	return 0, false
}

// SetOffset repositions the waste/stock split so that exactly id cards sit
// in the waste prefix, sliding the backing array in place.
func (d *Deck) SetOffset(id uint8) {
	if id < d.drawCur {
		step := d.drawCur - id
		copy(d.cards[d.drawNext-step:d.drawNext], d.cards[d.drawCur-step:d.drawCur])
		d.drawCur -= step
		d.drawNext -= step
	} else {
		step := id - d.drawCur
		copy(d.cards[d.drawCur:d.drawCur+step], d.cards[d.drawNext:d.drawNext+step])
		d.drawCur += step
		d.drawNext += step
	}
}

func (d *Deck) popNext() card.Card {
	c := d.cards[d.drawNext]
	d.mask ^= 1 << d.cardPos[c.Value()]
	d.drawNext++
	return c
}

// Push returns a previously taken card back onto the waste pile (used by
// undo).
func (d *Deck) Push(c card.Card) {
	d.mask ^= 1 << d.cardPos[c.Value()]
	d.cards[d.drawCur] = c
	d.drawCur++
}

// Draw slides the waste/stock split to id and takes the card now exposed.
func (d *Deck) Draw(id uint8) card.Card {
	d.SetOffset(id)
	return d.popNext()
}

// Offset returns the current waste-prefix length.
func (d *Deck) Offset() uint8 { return d.drawCur }

// IsPure reports whether the current split point is one that a full redeal
// would eventually land on again (an even multiple of the draw step, or the
// stock fully exhausted).
func (d *Deck) IsPure() bool {
	return d.drawCur%d.drawStep == 0 || d.drawNext == NFullDeck
}

// NormalizedOffset collapses the offset into a canonical form for hashing:
// when the split is already on a draw-step boundary the exact offset
// doesn't matter for future play, only how many cards remain.
func (d *Deck) NormalizedOffset() uint8 {
	if d.drawCur%d.drawStep == 0 {
		return d.Len()
	}
	return d.drawCur
}

// Encode packs the 24-bit taken-cards mask (one bit per original slot, set
// once that slot's card has been taken off the deck) together with the
// normalized offset into a single 29-bit value.
func (d *Deck) Encode() uint32 {
	return d.mask | (uint32(d.NormalizedOffset()) << NFullDeck)
}

// Decode restores waste/stock contents and split point from an Encode
// value; card identities come from d.cardPos, which must already be set up
// for the deal this Deck represents.
func (d *Deck) Decode(encoded uint32) {
	mask := encoded & ((1 << NFullDeck) - 1)
	offset := uint8(encoded >> NFullDeck)

	var revMap [NFullDeck]card.Card
	taken := [NFullDeck]bool{}
	for v := 0; v < card.NCards; v++ {
		pos := d.cardPos[v]
		if pos < NFullDeck && (encoded>>pos)&1 == 0 {
			revMap[pos] = card.FromValue(uint8(v))
			taken[pos] = true
		}
	}

	pos := 0
	for i, present := range taken {
		if present {
			d.cards[pos] = revMap[i]
			pos++
		}
	}

	d.drawCur = uint8(pos)
	d.drawNext = NFullDeck
	d.SetOffset(offset)
	d.mask = mask
}

// EquivalentTo compares two decks for the draw-sequence equivalence used by
// the search's transposition logic: same cards in the same order, with the
// same "is this position reachable by drawing" classification.
func (d *Deck) EquivalentTo(other *Deck) bool {
	a, b := d.iterAll(), other.iterAll()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Card != b[i].Card {
			return false
		}
		if (a[i].Draw == DrawableNone) != (b[i].Draw == DrawableNone) {
			return false
		}
	}
	return true
}

// PosCard annotates one surviving deck card with its position among the
// survivors and whether a draw can currently land on it.
type PosCard struct {
	Pos  uint8
	Card card.Card
	Draw Drawable
}

// IterAll returns every surviving card in waste-then-stock order, each
// annotated with whether it is reachable directly (Current), after one more
// draw cycle (Next), or not without a redeal (None).
func (d *Deck) IterAll() []PosCard { return d.iterAll() }

func (d *Deck) iterAll() []PosCard {
	out := make([]PosCard, 0, NFullDeck)
	for i, c := range d.Waste() {
		pos := uint8(i)
		var dr Drawable
		switch {
		case pos+1 == d.drawCur || d.drawStep == 1:
			// At draw step 1 every waste card is directly reachable: a
			// redeal walks the whole pile one card at a time.
			dr = DrawableCurrent
		case (pos+1)%d.drawStep == 0:
			dr = DrawableNext
		default:
			dr = DrawableNone
		}
		out = append(out, PosCard{pos, c, dr})
	}
	for i, c := range d.Stock() {
		pos := uint8(i)
		var dr Drawable
		if pos+1 == NFullDeck-d.drawNext || (pos+1)%d.drawStep == 0 {
			dr = DrawableCurrent
		} else if (d.drawCur+pos+1)%d.drawStep == 0 {
			dr = DrawableNext
		} else {
			dr = DrawableNone
		}
		out = append(out, PosCard{d.drawCur + pos, c, dr})
	}
	return out
}

// DrawableMask returns the mask of cards reachable by drawing forward from
// the current position without a redeal: the waste top, every stop point
// in the stock, and the stock's last card. If filter is false it also
// includes the cards reachable only after a redeal.
func (d *Deck) DrawableMask(filter bool) uint64 {
	var m uint64
	d.iterCallback(filter, func(_ uint8, c card.Card) bool {
		m |= c.Mask()
		return false
	})
	return m
}

func (d *Deck) iterCallback(filter bool, push func(pos uint8, c card.Card) bool) bool {
	if !filter {
		i := d.drawStep - 1
		for i+1 < d.drawCur {
			if push(i, d.cards[i]) {
				return true
			}
			i += d.drawStep
		}
	}

	if d.drawCur > 0 && push(d.drawCur-1, d.cards[d.drawCur-1]) {
		return true
	}

	gap := d.drawNext - d.drawCur

	if d.drawNext < NFullDeck && push(NFullDeck-1-gap, d.cards[NFullDeck-1]) {
		return true
	}

	{
		i := d.drawNext + d.drawStep - 1
		for i+1 < NFullDeck {
			if push(i-gap, d.cards[i]) {
				return true
			}
			i += d.drawStep
		}
	}

	if !filter {
		offset := d.drawCur % d.drawStep
		if offset != 0 {
			i := d.drawNext + d.drawStep - 1 - offset
			for i+1 < NFullDeck {
				if push(i-gap, d.cards[i]) {
					return true
				}
				i += d.drawStep
			}
		}
	}
	return false
}
