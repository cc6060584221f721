// Package metrics exposes the pipeline's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UploadsTotal counts processed uploads by outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salesboard",
		Name:      "uploads_total",
		Help:      "Number of uploaded files processed, labeled by outcome.",
	}, []string{"outcome"})

	// RowsNormalizedTotal counts rows that survived normalization.
	RowsNormalizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "salesboard",
		Name:      "rows_normalized_total",
		Help:      "Number of rows that survived the period/sales filter.",
	})

	// RowsDroppedTotal counts rows silently dropped by the filter. Drops
	// are policy, not errors, so a counter is the only reporting channel.
	RowsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "salesboard",
		Name:      "rows_dropped_total",
		Help:      "Number of rows dropped for an unparsable period or missing sales value.",
	})

	// CacheHitsTotal counts table cache lookups by result.
	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salesboard",
		Name:      "cache_lookups_total",
		Help:      "Number of normalized-table cache lookups, labeled hit or miss.",
	}, []string{"result"})
)

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
