package storage

import (
	"context"

	"liquidationScope/internal/model"
)

// EventStore persists decoded chain events.
type EventStore interface {
	InsertSpotEntries(ctx context.Context, entries []model.SubmittedSpotEntry) error
	InsertLiquidations(ctx context.Context, liquidations []model.Liquidation) error
}
