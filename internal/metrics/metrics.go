// Package metrics exposes counters for a valuation run.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "valuer"

// Drop reasons.
const (
	ReasonNoPrice = "no_price"
)

// Metrics holds the collectors of one run. A nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	GroupsProcessed     prometheus.Counter
	SpotEntriesApplied  *prometheus.CounterVec
	LiquidationsValued  prometheus.Counter
	LiquidationsDropped *prometheus.CounterVec
	WorksheetEntries    *prometheus.GaugeVec
}

// New registers the run collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		GroupsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "groups_processed_total",
			Help:      "Timestamp groups processed.",
		}),
		SpotEntriesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spot_entries_applied_total",
			Help:      "Oracle submissions applied to worksheets.",
		}, []string{"asset"}),
		LiquidationsValued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "liquidations_valued_total",
			Help:      "Liquidations written to the output.",
		}),
		LiquidationsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "liquidations_dropped_total",
			Help:      "Liquidations skipped, by reason.",
		}, []string{"reason"}),
		WorksheetEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "worksheet_entries",
			Help:      "Live entries per asset worksheet.",
		}, []string{"asset"}),
	}

	reg.MustRegister(
		m.GroupsProcessed,
		m.SpotEntriesApplied,
		m.LiquidationsValued,
		m.LiquidationsDropped,
		m.WorksheetEntries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) GroupDone() {
	if m == nil {
		return
	}
	m.GroupsProcessed.Inc()
}

func (m *Metrics) SpotApplied(asset string, worksheetSize int) {
	if m == nil {
		return
	}
	m.SpotEntriesApplied.WithLabelValues(asset).Inc()
	m.WorksheetEntries.WithLabelValues(asset).Set(float64(worksheetSize))
}

func (m *Metrics) Valued() {
	if m == nil {
		return
	}
	m.LiquidationsValued.Inc()
}

func (m *Metrics) Dropped(reason string) {
	if m == nil {
		return
	}
	m.LiquidationsDropped.WithLabelValues(reason).Inc()
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) {
	if m == nil || addr == "" {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		logger.Info("metrics listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()
}
