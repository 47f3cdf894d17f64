// Package metrics declares the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PayloadsFormatted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qr_payloads_formatted_total",
			Help: "Total number of payloads formatted, by payload type",
		},
		[]string{"type"},
	)

	Renders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qr_renders_total",
			Help: "Total number of QR images rendered",
		},
		[]string{"format", "result"},
	)

	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qr_render_duration_seconds",
			Help:    "Duration of QR image rendering in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"format"},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qr_cache_requests_total",
			Help: "Render cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	CardExports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idcard_exports_total",
			Help: "Identity card previews and exports by format and result",
		},
		[]string{"format", "result"},
	)

	RefineRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refine_requests_total",
			Help: "Calls to the text refinement service by result",
		},
		[]string{"result"},
	)
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultHit   = "hit"
	ResultMiss  = "miss"
)
