package pipeline

import (
	"context"

	"liquidationScope/internal/model"
)

// Source is the read side of the event store.
type Source interface {
	// DistinctTimestamps returns up to limit distinct block timestamps greater
	// than after, ascending, taken from both event tables.
	DistinctTimestamps(ctx context.Context, after int64, limit int) ([]int64, error)
	// SpotEntriesAt returns the oracle submissions stored at exactly ts.
	SpotEntriesAt(ctx context.Context, ts int64) ([]model.SubmittedSpotEntry, error)
	// LiquidationsAt returns the liquidations stored at exactly ts.
	LiquidationsAt(ctx context.Context, ts int64) ([]model.Liquidation, error)
}

// Sink receives valuations in pipeline order.
type Sink interface {
	Write(valuation model.LiquidationValuation) error
}
