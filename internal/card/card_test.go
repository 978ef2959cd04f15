package card

import "testing"

func TestNewAndSplit(t *testing.T) {
	c := New(5, 2)
	if c.Rank() != 5 || c.Suit() != 2 {
		t.Fatalf("got rank=%d suit=%d, want 5,2", c.Rank(), c.Suit())
	}
	if c.Value() != 5*NSuits+2 {
		t.Fatalf("unexpected value %d", c.Value())
	}
}

func TestMaskRoundTrip(t *testing.T) {
	for v := uint8(0); v < NCards; v++ {
		c := FromValue(v)
		got, ok := FromMask(c.Mask())
		if !ok || got != c {
			t.Fatalf("FromMask(%v.Mask()) = %v,%v want %v,true", c, got, ok, c)
		}
	}
}

func TestSwapSuit(t *testing.T) {
	h := New(3, 0)
	d := New(3, 1)
	if h.SwapSuit() != d || d.SwapSuit() != h {
		t.Fatalf("SwapSuit should toggle Hearts<->Diamonds")
	}
	c := New(3, 2)
	s := New(3, 3)
	if c.SwapSuit() != s || s.SwapSuit() != c {
		t.Fatalf("SwapSuit should toggle Clubs<->Spades")
	}
}

func TestGoBefore(t *testing.T) {
	redQueen := New(11, 0)
	blackKing := New(12, 2)
	if !redQueen.GoBefore(blackKing) {
		t.Fatalf("red queen should go on black king")
	}
	redKing := New(12, 0)
	if redQueen.GoBefore(redKing) {
		t.Fatalf("red queen should not go on red king")
	}
	empty := Card(NRanks * NSuits)
	king := New(12, 3)
	if !king.GoBefore(empty) {
		t.Fatalf("any king should go on an empty pile")
	}
	nonKing := New(5, 3)
	if nonKing.GoBefore(empty) {
		t.Fatalf("non-king should not go on an empty pile")
	}
}

func TestReduceRankSwapColor(t *testing.T) {
	c := New(7, 0) // red, hearts
	r := c.ReduceRankSwapColor()
	if r.Rank() != 6 {
		t.Fatalf("rank should decrease by 1, got %d", r.Rank())
	}
	if r.IsRed() {
		t.Fatalf("colour should flip to black")
	}
}

func TestPrintSolitaireTenIsTwoDigits(t *testing.T) {
	ten := New(9, 1) // rank index 9 is the ten
	if got := ten.PrintSolitaire(false); got != "10D" {
		t.Fatalf("ten of diamonds should print as 10D, got %q", got)
	}
	if got := ten.PrintSolitaire(true); got != "10d" {
		t.Fatalf("hidden ten of diamonds should print as 10d, got %q", got)
	}
}

func TestPrintSolitaireOnlySuitCaseChanges(t *testing.T) {
	ace := New(0, 0) // ace of hearts
	if got := ace.PrintSolitaire(true); got != "Ah" {
		t.Fatalf("hidden ace of hearts should print as Ah (rank stays uppercase), got %q", got)
	}
	if got := ace.PrintSolitaire(false); got != "AH" {
		t.Fatalf("visible ace of hearts should print as AH, got %q", got)
	}
	king := New(12, 3) // king of spades
	if got := king.PrintSolitaire(true); got != "Ks" {
		t.Fatalf("hidden king of spades should print as Ks, got %q", got)
	}
}

func TestMasksDisjointAndCover(t *testing.T) {
	var all uint64
	for s := 0; s < NSuits; s++ {
		all |= SuitMask[s]
	}
	if all != FullMask(NCards) {
		t.Fatalf("suit masks should cover all 52 cards, got %#x", all)
	}
	if ColorMask[0]&ColorMask[1] != 0 {
		t.Fatalf("colour masks should be disjoint")
	}
	if PopCount(KingMask) != NSuits {
		t.Fatalf("king mask should have exactly %d bits, got %d", NSuits, PopCount(KingMask))
	}
}
