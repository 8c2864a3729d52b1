package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()
	m.GroupDone()
	m.GroupDone()
	m.SpotApplied("ETH", 3)
	m.Valued()
	m.Dropped(ReasonNoPrice)
	m.Dropped(ReasonNoPrice)

	if got := testutil.ToFloat64(m.GroupsProcessed); got != 2 {
		t.Fatalf("groups: %v", got)
	}
	if got := testutil.ToFloat64(m.SpotEntriesApplied.WithLabelValues("ETH")); got != 1 {
		t.Fatalf("spot entries: %v", got)
	}
	if got := testutil.ToFloat64(m.WorksheetEntries.WithLabelValues("ETH")); got != 3 {
		t.Fatalf("worksheet gauge: %v", got)
	}
	if got := testutil.ToFloat64(m.LiquidationsValued); got != 1 {
		t.Fatalf("valued: %v", got)
	}
	if got := testutil.ToFloat64(m.LiquidationsDropped.WithLabelValues(ReasonNoPrice)); got != 2 {
		t.Fatalf("dropped: %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.GroupDone()
	m.SpotApplied("ETH", 1)
	m.Valued()
	m.Dropped(ReasonNoPrice)
	if m.Registry() != nil {
		t.Fatalf("nil metrics must not expose a registry")
	}
}
