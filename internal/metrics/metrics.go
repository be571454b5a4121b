package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	GachaDraws = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGachaDraws,
			Help: HelpTextGachaDraws,
		},
		[]string{LabelGachaKey, LabelMode},
	)

	GachaGuarantees = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGachaGuarantees,
			Help: HelpTextGachaGuarantees,
		},
		[]string{LabelGachaKey, LabelKind},
	)

	RewardsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsGranted,
			Help: HelpTextRewardsGranted,
		},
		[]string{LabelType},
	)

	GrantRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGrantRejections,
			Help: HelpTextGrantRejections,
		},
		[]string{LabelReason},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheHits,
			Help: HelpTextCacheHits,
		},
		[]string{LabelCache},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheMisses,
			Help: HelpTextCacheMisses,
		},
		[]string{LabelCache},
	)
)
