package card

import "math/bits"

// Mask is a 52-bit set of cards, one bit per Card.Value(). These constants
// and helpers are derived from how the reference engine's stack/state/pruning
// code uses them at the call site; the module that is supposed to define them
// only ships their usages, not their bodies, so the exact layouts below are
// reconstructed from those usages rather than ported verbatim.

// SuitMask holds, per suit, a bit at every rank position of that suit:
// SuitMask[0] has a bit every 4 positions (one per rank of suit 0), and
// SuitMask[s] is that pattern shifted up by s.
var SuitMask = [NSuits]uint64{
	0x1_1111_1111_1111,
	0x1_1111_1111_1111 << 1,
	0x1_1111_1111_1111 << 2,
	0x1_1111_1111_1111 << 3,
}

// RankMask is the per-suit bit pattern, equal to SuitMask[0]: one bit every
// 4 positions, used to build whole-rank masks via shifting.
const RankMask = uint64(0x1_1111_1111_1111)

// ColorMask holds the red mask (suits 0,1) at index 0 and the black mask
// (suits 2,3) at index 1.
var ColorMask = [2]uint64{
	SuitMask[0] | SuitMask[1],
	SuitMask[2] | SuitMask[3],
}

// AltMask has one suit per colour set at every rank (suit 0 and suit 2): the
// alternating pattern used when only one suit of each colour matters.
var AltMask = SuitMask[0] | SuitMask[2]

// KingMask is the mask of all four kings (rank KingRank, every suit).
var KingMask = uint64(0xF) << (KingRank * NSuits)

// HalfMask is the red-colour mask, used by SwapPair to exchange the low and
// high 2-bit suit fields within each rank nibble.
const HalfMask = uint64(0x1_1111_1111_1111) | (uint64(0x1_1111_1111_1111) << 1)

// FullMask returns a mask with the low n bits set.
func FullMask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}

// SwapPair exchanges the two 2-bit suit halves of every rank nibble: bits
// {0,1} of each nibble move to {2,3} and vice versa. Used when reasoning
// about a Stack's per-colour progress symmetrically.
func SwapPair(a uint64) uint64 {
	return ((a & HalfMask) << 2) | ((a >> 2) & HalfMask)
}

// PopCount, TrailingZeros and friends re-export math/bits so callers that
// only need mask arithmetic don't have to import it separately.
func PopCount(m uint64) int       { return bits.OnesCount64(m) }
func TrailingZeros(m uint64) int  { return bits.TrailingZeros64(m) }
func LowestBit(m uint64) uint64   { return m & (-m) }
func ClearLowest(m uint64) uint64 { return m & (m - 1) }
