package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP metrics
// =============================================================================

// HttpRequestsTotal counts all HTTP requests.
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration is the response latency histogram.
// Example: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight is the number of requests currently being processed.
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database metrics (MongoDB)
// =============================================================================

// DbQueryDuration measures the duration of document store operations.
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database operations in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "collection"},
)

// DbErrors counts database errors.
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis metrics
// =============================================================================

// RedisCacheHits counts cache hits.
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses counts cache misses.
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisErrors counts Redis errors.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka metrics
// =============================================================================

// KafkaMessagesProduced counts produced messages.
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaProduceDuration measures the time spent producing a message.
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors counts Kafka errors.
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Business metrics
// =============================================================================

// ProductsCreated counts created products.
var ProductsCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "marketplace_products_created_total",
		Help: "Total number of products created",
	},
)

// ProductsDeleted counts deleted products (with their cascaded reviews).
var ProductsDeleted = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "marketplace_products_deleted_total",
		Help: "Total number of products deleted",
	},
)

// UsersCreated counts created users.
var UsersCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "marketplace_users_created_total",
		Help: "Total number of users created",
	},
)

// ReviewsCreated counts created reviews.
var ReviewsCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "marketplace_reviews_created_total",
		Help: "Total number of reviews created",
	},
)

// ReviewsRating tracks the distribution of review ratings.
var ReviewsRating = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "marketplace_reviews_rating",
		Help:    "Distribution of review ratings",
		Buckets: []float64{0, 1, 2, 3, 4, 5},
	},
)
