package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameGachaDraws      = "gacha_draws_total"
	MetricNameGachaGuarantees = "gacha_guarantees_total"
	MetricNameRewardsGranted  = "rewards_granted_total"
	MetricNameGrantRejections = "grant_rejections_total"
	MetricNameCacheHits       = "cache_hits_total"
	MetricNameCacheMisses     = "cache_misses_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextGachaDraws      = "Total number of individual gacha draws by resolution mode"
	HelpTextGachaGuarantees = "Total number of pity guarantees fired"
	HelpTextRewardsGranted  = "Total number of committed reward grants by reward type"
	HelpTextGrantRejections = "Total number of rejected reward batches by reason"
	HelpTextCacheHits       = "Total number of cache hits"
	HelpTextCacheMisses     = "Total number of cache misses"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelGachaKey = "gacha_key"
	LabelMode     = "mode"
	LabelKind     = "kind"
	LabelReason   = "reason"
	LabelCache    = "cache"
)

// Guarantee kinds
const (
	GuaranteeKindNormal  = "normal"
	GuaranteeKindSpecial = "special"
)

// Rejection reasons
const (
	ReasonCapacityExceeded = "capacity_exceeded"
	ReasonInfeasibleGrant  = "infeasible_grant"
	ReasonConfiguration    = "configuration"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecode = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded    = "Metrics recorded for event"
)
