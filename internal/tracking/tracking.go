// Package tracking implements two observation hooks external to a
// traversal: a SearchStatistics sink recording
// how many states/moves a search visits, and a TerminateSignal an outside
// driver can flip to ask a running traversal to unwind.
package tracking

import (
	"fmt"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

// SearchStatistics receives callbacks from a traversal as it runs. depth is
// the ply at which the event occurred; implementations may ignore it.
type SearchStatistics interface {
	HitAState(depth int)
	HitUniqueState(depth int, nMoves int)
	FinishMove(depth int)
}

// NoopSearchStatistics discards every event; it is the default used when a
// caller has no interest in search telemetry.
type NoopSearchStatistics struct{}

func (NoopSearchStatistics) HitAState(int)         {}
func (NoopSearchStatistics) HitUniqueState(int, int) {}
func (NoopSearchStatistics) FinishMove(int)        {}

// AtomicSearchStats is a lock-free SearchStatistics implementation safe to
// share across the independent goroutines the HOP batch driver spawns (see
// internal/hop): each trial owns its own Solitaire and transposition set,
// but all trials may report into one shared counter set.
type AtomicSearchStats struct {
	statesVisited uint64
	uniqueStates  uint64
	movesTried    uint64
	maxDepth      uint64
}

func (s *AtomicSearchStats) HitAState(depth int) {
	atomic.AddUint64(&s.statesVisited, 1)
	s.bumpMaxDepth(depth)
}

func (s *AtomicSearchStats) HitUniqueState(depth int, nMoves int) {
	atomic.AddUint64(&s.uniqueStates, 1)
	s.bumpMaxDepth(depth)
	_ = nMoves
}

func (s *AtomicSearchStats) FinishMove(depth int) {
	atomic.AddUint64(&s.movesTried, 1)
	s.bumpMaxDepth(depth)
}

func (s *AtomicSearchStats) bumpMaxDepth(depth int) {
	if depth < 0 {
		return
	}
	for {
		cur := atomic.LoadUint64(&s.maxDepth)
		if uint64(depth) <= cur || atomic.CompareAndSwapUint64(&s.maxDepth, cur, uint64(depth)) {
			return
		}
	}
}

func (s *AtomicSearchStats) StatesVisited() uint64 { return atomic.LoadUint64(&s.statesVisited) }
func (s *AtomicSearchStats) UniqueStates() uint64  { return atomic.LoadUint64(&s.uniqueStates) }
func (s *AtomicSearchStats) MovesTried() uint64    { return atomic.LoadUint64(&s.movesTried) }
func (s *AtomicSearchStats) MaxDepth() uint64      { return atomic.LoadUint64(&s.maxDepth) }

// String renders the counters with thousands separators using go-humanize,
// already an indirect dependency; here it is put to direct use.
func (s *AtomicSearchStats) String() string {
	return fmt.Sprintf("visited=%s unique=%s moves=%s maxDepth=%d",
		humanize.Comma(int64(s.StatesVisited())),
		humanize.Comma(int64(s.UniqueStates())),
		humanize.Comma(int64(s.MovesTried())),
		s.MaxDepth())
}

// TerminateSignal lets an external driver ask a running traversal to halt.
// Terminate is safe to call from any goroutine; IsTerminated is polled by
// the traversal's OnVisit hook on every state entry.
type TerminateSignal struct {
	flag atomic.Bool
}

func (t *TerminateSignal) Terminate()          { t.flag.Store(true) }
func (t *TerminateSignal) IsTerminated() bool  { return t.flag.Load() }
func (t *TerminateSignal) Reset()              { t.flag.Store(false) }
