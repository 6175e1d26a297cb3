package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "govscheme_check_requests_total",
			Help: "Total /check requests by outcome (ok, status, transport, decode)",
		},
		[]string{"outcome"},
	)

	CheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "govscheme_check_duration_seconds",
			Help:    "Round-trip time of /check requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	ShareActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "govscheme_share_total",
			Help: "Share actions by outcome (copied, empty, clipboard_error)",
		},
		[]string{"outcome"},
	)

	FilterRecomputes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "govscheme_filter_recomputes_total",
			Help: "Number of search/filter recomputations over the stored result set",
		},
	)
)
