package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"liquidationScope/internal/metrics"
	"liquidationScope/internal/model"
	"liquidationScope/internal/oracle"
	"liquidationScope/internal/valuation"
)

// Config controls a pipeline run.
type Config struct {
	PageSize int
}

// Stats summarizes a run.
type Stats struct {
	Groups       int
	SpotEntries  int
	Liquidations int
	Valued       int
	Dropped      int
}

// Driver walks both event streams in timestamp order and values every
// liquidation from prices known strictly before it.
type Driver struct {
	cfg     Config
	source  Source
	sink    Sink
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewDriver wires a run. m and logger may be nil.
func NewDriver(cfg Config, source Source, sink Sink, m *metrics.Metrics, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		cfg:     cfg,
		source:  source,
		sink:    sink,
		metrics: m,
		logger:  logger,
	}
}

// IsSkippable reports whether err only drops a single liquidation. Any other
// error returned by Run terminates the run.
func IsSkippable(err error) bool {
	return errors.Is(err, oracle.ErrNoPriceEstimate)
}

// Run processes every timestamp group until the cursor is exhausted. The
// worksheet registry lives for exactly one call.
func (d *Driver) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	if d.source == nil {
		return stats, fmt.Errorf("source is nil")
	}
	if d.sink == nil {
		return stats, fmt.Errorf("sink is nil")
	}

	registry := oracle.NewRegistry()
	cursor := NewCursor(d.source, d.cfg.PageSize)
	fetcher := NewFetcher(d.source)

	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		ts, ok, err := cursor.Next(ctx)
		if err != nil {
			return stats, err
		}
		if !ok {
			break
		}

		group, err := fetcher.Fetch(ctx, ts)
		if err != nil {
			return stats, err
		}

		// Liquidations first: same-timestamp submissions must not be visible.
		if err := d.valueGroup(registry, group, &stats); err != nil {
			return stats, err
		}
		if err := d.applyGroup(registry, group, &stats); err != nil {
			return stats, err
		}

		stats.Groups++
		d.metrics.GroupDone()
		d.logger.Debug("group complete",
			zap.Int64("block_timestamp", ts),
			zap.Int("spot_entries", len(group.SpotEntries)),
			zap.Int("liquidations", len(group.Liquidations)),
		)
	}

	d.logger.Info("valuation complete",
		zap.Int("groups", stats.Groups),
		zap.Int("spot_entries", stats.SpotEntries),
		zap.Int("liquidations", stats.Liquidations),
		zap.Int("valued", stats.Valued),
		zap.Int("dropped", stats.Dropped),
	)
	return stats, nil
}

func (d *Driver) valueGroup(registry *oracle.Registry, group Group, stats *Stats) error {
	for _, liq := range group.Liquidations {
		stats.Liquidations++

		collateralPrice, err := registry.MedianPrice(liq.CollateralToken, group.Timestamp)
		if err != nil {
			if d.skip(liq, liq.CollateralToken.String(), err, stats) {
				continue
			}
			return fmt.Errorf("collateral price %s at %d: %w", liq.CollateralToken, group.Timestamp, err)
		}
		debtPrice, err := registry.MedianPrice(liq.DebtToken, group.Timestamp)
		if err != nil {
			if d.skip(liq, liq.DebtToken.String(), err, stats) {
				continue
			}
			return fmt.Errorf("debt price %s at %d: %w", liq.DebtToken, group.Timestamp, err)
		}

		if err := d.emit(liq, collateralPrice, debtPrice); err != nil {
			return err
		}
		stats.Valued++
		d.metrics.Valued()
	}
	return nil
}

func (d *Driver) skip(liq model.Liquidation, symbol string, err error, stats *Stats) bool {
	if !IsSkippable(err) {
		return false
	}
	stats.Dropped++
	d.metrics.Dropped(metrics.ReasonNoPrice)
	d.logger.Warn("liquidation dropped",
		zap.Int64("block_timestamp", liq.BlockTimestamp),
		zap.String("tx_hash", liq.TransactionHash.Hex()),
		zap.String("asset", symbol),
		zap.Error(err),
	)
	return true
}

func (d *Driver) emit(liq model.Liquidation, collateralPrice, debtPrice *big.Int) error {
	valued, err := valuation.Value(liq, collateralPrice, debtPrice)
	if err != nil {
		return fmt.Errorf("value liquidation %s: %w", liq.TransactionHash.Hex(), err)
	}
	if err := d.sink.Write(valued); err != nil {
		return fmt.Errorf("write valuation: %w", err)
	}
	return nil
}

func (d *Driver) applyGroup(registry *oracle.Registry, group Group, stats *Stats) error {
	for _, spot := range group.SpotEntries {
		worksheet, err := registry.Worksheet(spot.TokenSymbol)
		if err != nil {
			return err
		}
		err = worksheet.Update(oracle.SpotPriceEntry{
			Timestamp: spot.SourceTimestamp,
			Source:    spot.Source,
			Price:     spot.Price,
		})
		if err != nil {
			return fmt.Errorf("update %s worksheet at %d: %w", spot.TokenSymbol, group.Timestamp, err)
		}
		stats.SpotEntries++
		d.metrics.SpotApplied(spot.TokenSymbol.String(), worksheet.Len())
	}
	return nil
}
