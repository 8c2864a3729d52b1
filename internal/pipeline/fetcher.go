package pipeline

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"liquidationScope/internal/model"
)

// Group holds every event recorded at one block timestamp.
type Group struct {
	Timestamp    int64
	SpotEntries  []model.SubmittedSpotEntry
	Liquidations []model.Liquidation
}

// Fetcher loads the two event sets of a timestamp concurrently.
type Fetcher struct {
	source Source
}

// NewFetcher returns a fetcher reading from source.
func NewFetcher(source Source) *Fetcher {
	return &Fetcher{source: source}
}

// Fetch returns the group at ts. Both lists are ordered by event index so
// that updates are applied deterministically.
func (f *Fetcher) Fetch(ctx context.Context, ts int64) (Group, error) {
	var spots []model.SubmittedSpotEntry
	var liquidations []model.Liquidation

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		spots, err = f.source.SpotEntriesAt(gctx, ts)
		if err != nil {
			return fmt.Errorf("spot entries at %d: %w", ts, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		liquidations, err = f.source.LiquidationsAt(gctx, ts)
		if err != nil {
			return fmt.Errorf("liquidations at %d: %w", ts, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Group{}, err
	}

	for _, s := range spots {
		if s.BlockTimestamp != ts {
			return Group{}, fmt.Errorf("spot entry at %d returned for %d", s.BlockTimestamp, ts)
		}
	}
	for _, l := range liquidations {
		if l.BlockTimestamp != ts {
			return Group{}, fmt.Errorf("liquidation at %d returned for %d", l.BlockTimestamp, ts)
		}
	}

	sort.SliceStable(spots, func(i, j int) bool {
		return spots[i].EventIndex < spots[j].EventIndex
	})
	sort.SliceStable(liquidations, func(i, j int) bool {
		return liquidations[i].EventIndex < liquidations[j].EventIndex
	})

	return Group{Timestamp: ts, SpotEntries: spots, Liquidations: liquidations}, nil
}
