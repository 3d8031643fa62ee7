// Package prometheus instruments services with Prometheus metrics.
package prometheus

import (
	"context"
	"time"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crossmcp"

// Metrics holds the collectors shared by the instrumented services.
type Metrics struct {
	SourceFetches       *prometheus.CounterVec
	SourceFetchDuration *prometheus.HistogramVec
	Queries             *prometheus.CounterVec
	QueryDuration       *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SourceFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "source_fetches_total",
				Help:      "Source fetches by document category and outcome.",
			},
			[]string{"category", "status"},
		),
		SourceFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "source_fetch_duration_seconds",
				Help:      "Duration of source fetches in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"category"},
		),
		Queries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Tool operations by operation and outcome.",
			},
			[]string{"operation", "status"},
		),
		QueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Duration of tool operations in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RegisterStoreStats exports the snapshot size and age as gauges read
// from stats at scrape time.
func RegisterStoreStats(reg prometheus.Registerer, stats func() crossmcp.StoreStats) {
	factory := promauto.With(reg)
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "documents",
		Help:      "Documents in the current snapshot.",
	}, func() float64 {
		return float64(stats().Documents)
	})
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_refreshed_timestamp_seconds",
		Help:      "Unix time of the last snapshot refresh, 0 before the first.",
	}, func() float64 {
		at := stats().RefreshedAt
		if at.IsZero() {
			return 0
		}
		return float64(at.UnixNano()) / 1e9
	})
}

// status labels an outcome with the error code, or "ok".
func status(err error) string {
	if err == nil {
		return "ok"
	}
	return crossmcp.ErrorCode(err)
}

var _ crossmcp.SourceFetcher = (*SourceFetcher)(nil)

// SourceFetcher counts and times source fetches.
type SourceFetcher struct {
	next    crossmcp.SourceFetcher
	metrics *Metrics
}

// NewSourceFetcher wraps next with metrics.
func NewSourceFetcher(next crossmcp.SourceFetcher, metrics *Metrics) *SourceFetcher {
	return &SourceFetcher{next: next, metrics: metrics}
}

func (f *SourceFetcher) FetchSource(ctx context.Context, src *crossmcp.Source) (raw *crossmcp.RawContent, err error) {
	defer func(begin time.Time) {
		category := string(crossmcp.DeriveCategory(src))
		f.metrics.SourceFetchDuration.WithLabelValues(category).Observe(time.Since(begin).Seconds())
		f.metrics.SourceFetches.WithLabelValues(category, status(err)).Inc()
	}(time.Now())
	return f.next.FetchSource(ctx, src)
}
