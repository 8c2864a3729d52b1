package pipeline

import (
	"context"
	"fmt"
	"math"
)

// DefaultPageSize is the number of timestamps requested per page.
const DefaultPageSize = 1000

// Cursor walks the distinct timestamps of both event streams in ascending
// order. It is forward-only and starts from the beginning on every run.
type Cursor struct {
	source   Source
	pageSize int

	page    []int64
	pos     int
	last    int64
	started bool
	done    bool
}

// NewCursor returns a cursor positioned before the first timestamp. A
// non-positive pageSize selects DefaultPageSize.
func NewCursor(source Source, pageSize int) *Cursor {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Cursor{source: source, pageSize: pageSize, last: math.MinInt64}
}

// Next returns the next timestamp. ok is false once the streams are exhausted.
func (c *Cursor) Next(ctx context.Context) (int64, bool, error) {
	if c.pos >= len(c.page) {
		if c.done {
			return 0, false, nil
		}
		page, err := c.source.DistinctTimestamps(ctx, c.last, c.pageSize)
		if err != nil {
			return 0, false, fmt.Errorf("fetch timestamps after %d: %w", c.last, err)
		}
		if len(page) == 0 {
			c.done = true
			c.page = nil
			return 0, false, nil
		}
		c.page = page
		c.pos = 0
	}

	ts := c.page[c.pos]
	if c.started && ts <= c.last {
		return 0, false, fmt.Errorf("timestamp %d not after %d", ts, c.last)
	}
	c.pos++
	c.last = ts
	c.started = true
	return ts, true, nil
}
