package oracle

import (
	"fmt"
	"math/big"
	"sort"
)

const (
	// PruneThreshold is the age in seconds after which an entry may be
	// overwritten by a submission from any source.
	PruneThreshold int64 = 9000
	// BackwardTimestampBuffer is the age in seconds beyond which an entry no
	// longer contributes to the median.
	BackwardTimestampBuffer int64 = 7800
	// MaxWorksheetSize bounds the number of entries per asset.
	MaxWorksheetSize = 16
)

// SpotPriceEntry is the latest price seen from one source.
type SpotPriceEntry struct {
	Timestamp int64
	Source    *big.Int
	Price     *big.Int
}

func (e SpotPriceEntry) clone() SpotPriceEntry {
	out := SpotPriceEntry{Timestamp: e.Timestamp}
	if e.Source != nil {
		out.Source = new(big.Int).Set(e.Source)
	}
	if e.Price != nil {
		out.Price = new(big.Int).Set(e.Price)
	}
	return out
}

// Worksheet keeps a bounded set of per-source prices for one asset.
// It is not safe for concurrent use.
type Worksheet struct {
	entries []SpotPriceEntry
}

// NewWorksheet returns an empty worksheet.
func NewWorksheet() *Worksheet {
	return &Worksheet{entries: make([]SpotPriceEntry, 0, MaxWorksheetSize)}
}

// Update records entry. Entries are scanned once in insertion order and the
// first one that has the same source, or is older than PruneThreshold
// relative to entry, is overwritten in place. Otherwise entry is appended.
// ErrWorksheetFull is returned, and the worksheet left unchanged, when the
// append would exceed MaxWorksheetSize.
func (w *Worksheet) Update(entry SpotPriceEntry) error {
	if entry.Source == nil || entry.Price == nil {
		return fmt.Errorf("spot entry requires source and price")
	}
	if entry.Price.Sign() < 0 {
		return fmt.Errorf("negative price %s", entry.Price)
	}

	entry = entry.clone()
	staleBefore := entry.Timestamp - PruneThreshold
	for i := range w.entries {
		current := &w.entries[i]
		if current.Source.Cmp(entry.Source) == 0 {
			current.Price = entry.Price
			current.Timestamp = entry.Timestamp
			return nil
		}
		// First stale match wins, not the oldest one.
		if current.Timestamp <= staleBefore {
			*current = entry
			return nil
		}
	}

	if len(w.entries)+1 > MaxWorksheetSize {
		return fmt.Errorf("%w: %d entries", ErrWorksheetFull, len(w.entries))
	}
	w.entries = append(w.entries, entry)
	return nil
}

// MedianPrice returns the median of the prices that are fresh relative to
// min(current, latest entry timestamp). Even counts yield the integer mean of
// the two middle prices.
func (w *Worksheet) MedianPrice(current int64) (*big.Int, error) {
	if len(w.entries) == 0 {
		return nil, ErrNoPriceEstimate
	}

	latest := w.entries[0].Timestamp
	for _, e := range w.entries[1:] {
		if e.Timestamp > latest {
			latest = e.Timestamp
		}
	}

	conservative := current
	if latest < conservative {
		conservative = latest
	}
	cutoff := conservative - BackwardTimestampBuffer

	prices := make([]*big.Int, 0, len(w.entries))
	for _, e := range w.entries {
		if e.Timestamp > cutoff {
			prices = append(prices, e.Price)
		}
	}
	if len(prices) == 0 {
		return nil, ErrNoPriceEstimate
	}

	sort.Slice(prices, func(i, j int) bool {
		return prices[i].Cmp(prices[j]) < 0
	})

	mid := len(prices) / 2
	if len(prices)%2 == 1 {
		return new(big.Int).Set(prices[mid]), nil
	}
	sum := new(big.Int).Add(prices[mid-1], prices[mid])
	return sum.Quo(sum, big.NewInt(2)), nil
}

// Len returns the number of live entries.
func (w *Worksheet) Len() int {
	return len(w.entries)
}

// Entries returns a copy of the entries in insertion order.
func (w *Worksheet) Entries() []SpotPriceEntry {
	out := make([]SpotPriceEntry, 0, len(w.entries))
	for _, e := range w.entries {
		out = append(out, e.clone())
	}
	return out
}
