package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"liquidationScope/internal/model"
	"liquidationScope/internal/storage"
)

const DefaultBatchSize = 1000

// ErrorWriter receives events that could not be decoded.
type ErrorWriter interface {
	Write(value interface{}) error
}

// Stats counts the outcome of an import.
type Stats struct {
	Total        int
	SpotEntries  int
	Liquidations int
	Skipped      int
	Failed       int
}

// Importer reads raw events as JSON lines and stores the decoded rows in
// batches.
type Importer struct {
	decoders  []Decoder
	store     storage.EventStore
	errWriter ErrorWriter
	batchSize int
	logger    *zap.Logger

	spots        []model.SubmittedSpotEntry
	liquidations []model.Liquidation
}

func NewImporter(store storage.EventStore, errWriter ErrorWriter, batchSize int, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Importer{
		decoders:  Decoders(),
		store:     store,
		errWriter: errWriter,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Import consumes r until EOF. Malformed events are reported to the error
// writer and counted; storage failures abort the import.
func (im *Importer) Import(ctx context.Context, r io.Reader) (Stats, error) {
	var stats Stats
	if im.store == nil {
		return stats, fmt.Errorf("event store is nil")
	}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.Total++

		var ev model.RawEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			stats.Failed++
			im.reportError(model.ImportError{Error: err.Error()})
			continue
		}

		decoder := im.decoderFor(ev)
		if decoder == nil {
			stats.Skipped++
			continue
		}

		event, err := decoder.Decode(ev)
		if err != nil {
			if errors.Is(err, ErrNotTracked) {
				stats.Skipped++
				continue
			}
			stats.Failed++
			im.reportError(importErrorFromEvent(ev, err))
			continue
		}

		switch {
		case event.Spot != nil:
			im.spots = append(im.spots, *event.Spot)
			stats.SpotEntries++
		case event.Liquidation != nil:
			im.liquidations = append(im.liquidations, *event.Liquidation)
			stats.Liquidations++
		}

		if err := im.flush(ctx, false); err != nil {
			return stats, err
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scan input: %w", err)
	}
	if err := im.flush(ctx, true); err != nil {
		return stats, err
	}

	im.logger.Info("import complete",
		zap.Int("total", stats.Total),
		zap.Int("spot_entries", stats.SpotEntries),
		zap.Int("liquidations", stats.Liquidations),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}

func (im *Importer) decoderFor(ev model.RawEvent) Decoder {
	for _, d := range im.decoders {
		if d.CanDecode(ev) {
			return d
		}
	}
	return nil
}

// flush writes full batches, or everything buffered when force is set.
func (im *Importer) flush(ctx context.Context, force bool) error {
	if len(im.spots) > 0 && (force || len(im.spots) >= im.batchSize) {
		if err := im.store.InsertSpotEntries(ctx, im.spots); err != nil {
			return fmt.Errorf("insert spot entries: %w", err)
		}
		im.logger.Debug("spot entries written", zap.Int("rows", len(im.spots)))
		im.spots = nil
	}
	if len(im.liquidations) > 0 && (force || len(im.liquidations) >= im.batchSize) {
		if err := im.store.InsertLiquidations(ctx, im.liquidations); err != nil {
			return fmt.Errorf("insert liquidations: %w", err)
		}
		im.logger.Debug("liquidations written", zap.Int("rows", len(im.liquidations)))
		im.liquidations = nil
	}
	return nil
}

func (im *Importer) reportError(rec model.ImportError) {
	if im.errWriter == nil {
		return
	}
	if err := im.errWriter.Write(rec); err != nil {
		im.logger.Warn("write import error failed", zap.Error(err))
	}
}

func importErrorFromEvent(ev model.RawEvent, err error) model.ImportError {
	selector := ""
	if len(ev.Keys) > 0 {
		selector = ev.Keys[0]
	}
	return model.ImportError{
		BlockNumber:     ev.BlockNumber,
		TransactionHash: ev.TransactionHash,
		EventIndex:      ev.EventIndex,
		FromAddress:     ev.FromAddress,
		Selector:        selector,
		Error:           err.Error(),
	}
}
