// Package convert bridges the compact move.Move representation the solver
// operates on to the explicit board positions a human-facing StandardMove
// names, grounded in original_source/src/convert.rs's convert_move. It is
// a read-only translation layer: the actual position mutation is always
// performed by solitaire.Solitaire.DoMove, which already holds the pile
// arrays a StandardMove describes, so ConvertMove is called immediately
// before DoMove to record what the upcoming move will look like on an
// explicit board.
package convert

import (
	"fmt"

	"github.com/oasis-klondike/klondike-solver/internal/card"
	"github.com/oasis-klondike/klondike-solver/internal/move"
	"github.com/oasis-klondike/klondike-solver/internal/solitaire"
)

// Pos names one endpoint of a StandardMove.
type Pos struct {
	Kind  PosKind
	Index int // suit (PosStack) or pile index (PosPile); unused for PosDeck
}

type PosKind int

const (
	PosDeck PosKind = iota
	PosStack
	PosPile
)

func (p Pos) String() string {
	switch p.Kind {
	case PosDeck:
		return "Deck"
	case PosStack:
		return fmt.Sprintf("Stack(%d)", p.Index)
	default:
		return fmt.Sprintf("Pile(%d)", p.Index)
	}
}

// StandardMove names a card's explicit board-level transition: From, To,
// and the card moved.
type StandardMove struct {
	From, To Pos
	Card     card.Card
}

// ConvertMove translates m, as it would apply to game's *current* (not yet
// mutated) position, into the explicit board positions it touches.
func ConvertMove(game *solitaire.Solitaire, m move.Move) (StandardMove, error) {
	switch m.Kind {
	case move.DeckPile:
		to, ok := game.FindFreePile(m.Card)
		if !ok {
			return StandardMove{}, fmt.Errorf("convert: DeckPile %v has no destination pile", m.Card)
		}
		return StandardMove{From: Pos{Kind: PosDeck}, To: Pos{Kind: PosPile, Index: to}, Card: m.Card}, nil

	case move.DeckStack:
		return StandardMove{From: Pos{Kind: PosDeck}, To: Pos{Kind: PosStack, Index: int(m.Card.Suit())}, Card: m.Card}, nil

	case move.StackPile:
		to, ok := game.FindFreePile(m.Card)
		if !ok {
			return StandardMove{}, fmt.Errorf("convert: StackPile %v has no destination pile", m.Card)
		}
		return StandardMove{From: Pos{Kind: PosStack, Index: int(m.Card.Suit())}, To: Pos{Kind: PosPile, Index: to}, Card: m.Card}, nil

	case move.PileStack:
		from, ok := game.FindPileWithTop(m.Card)
		if !ok {
			return StandardMove{}, fmt.Errorf("convert: PileStack %v is not a pile top", m.Card)
		}
		return StandardMove{From: Pos{Kind: PosPile, Index: from}, To: Pos{Kind: PosStack, Index: int(m.Card.Suit())}, Card: m.Card}, nil

	case move.Reveal:
		from, ok := game.FindPileWithBottom(m.Card)
		if !ok {
			return StandardMove{}, fmt.Errorf("convert: Reveal %v is not a locked anchor", m.Card)
		}
		to, ok := game.FindFreePile(m.Card)
		if !ok || to == from {
			return StandardMove{}, fmt.Errorf("convert: Reveal %v has no destination pile", m.Card)
		}
		return StandardMove{From: Pos{Kind: PosPile, Index: from}, To: Pos{Kind: PosPile, Index: to}, Card: m.Card}, nil
	}
	return StandardMove{}, fmt.Errorf("convert: unknown move kind %v", m.Kind)
}

// ConvertMoves translates a whole history, advancing a scratch copy of
// game one move at a time so each translation sees the board state that
// move actually applies to.
func ConvertMoves(game *solitaire.Solitaire, history []move.Move) ([]StandardMove, error) {
	scratch := *game
	out := make([]StandardMove, 0, len(history))
	for _, m := range history {
		sm, err := ConvertMove(&scratch, m)
		if err != nil {
			return nil, err
		}
		out = append(out, sm)
		if _, err := scratch.DoMove(m); err != nil {
			return nil, fmt.Errorf("convert: replaying %v: %w", m, err)
		}
	}
	return out, nil
}
