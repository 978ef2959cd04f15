package tracking

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// OtelSearchStatistics reports search events as OpenTelemetry instruments:
// a counter per event kind plus a depth histogram, so a traversal's
// behaviour can be scraped by whatever metrics backend the embedding
// application already wires up.
type OtelSearchStatistics struct {
	ctx context.Context

	statesVisited metric.Int64Counter
	uniqueStates  metric.Int64Counter
	movesTried    metric.Int64Counter
	depth         metric.Int64Histogram
}

// NewOtelSearchStatisticsGlobal builds an OtelSearchStatistics against the
// process-global meter provider, for embedders that configure OpenTelemetry
// once at startup.
func NewOtelSearchStatisticsGlobal(ctx context.Context) (*OtelSearchStatistics, error) {
	return NewOtelSearchStatistics(ctx, otel.Meter("klondike-solver"))
}

// NewOtelSearchStatistics builds an OtelSearchStatistics against meter,
// registering its instruments under the "klondike.search" namespace.
func NewOtelSearchStatistics(ctx context.Context, meter metric.Meter) (*OtelSearchStatistics, error) {
	statesVisited, err := meter.Int64Counter("klondike.search.states_visited")
	if err != nil {
		return nil, err
	}
	uniqueStates, err := meter.Int64Counter("klondike.search.unique_states")
	if err != nil {
		return nil, err
	}
	movesTried, err := meter.Int64Counter("klondike.search.moves_tried")
	if err != nil {
		return nil, err
	}
	depth, err := meter.Int64Histogram("klondike.search.depth")
	if err != nil {
		return nil, err
	}
	return &OtelSearchStatistics{
		ctx:           ctx,
		statesVisited: statesVisited,
		uniqueStates:  uniqueStates,
		movesTried:    movesTried,
		depth:         depth,
	}, nil
}

func (s *OtelSearchStatistics) HitAState(depth int) {
	s.statesVisited.Add(s.ctx, 1)
	s.depth.Record(s.ctx, int64(depth))
}

func (s *OtelSearchStatistics) HitUniqueState(depth int, nMoves int) {
	s.uniqueStates.Add(s.ctx, 1)
	s.depth.Record(s.ctx, int64(depth))
	_ = nMoves
}

func (s *OtelSearchStatistics) FinishMove(depth int) {
	s.movesTried.Add(s.ctx, 1)
	s.depth.Record(s.ctx, int64(depth))
}
