// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "videograb"

var (
	// CacheOperationsTotal tracks cache operations.
	// Labels:
	//   - operation: get, put, invalidate
	//   - status: hit, miss, success, error
	//   - cache_type: listing, handle
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status", "cache_type"},
	)

	// DBQueriesTotal tracks database queries.
	// Labels:
	//   - query_type: select, insert
	//   - table: media
	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_queries_total",
			Help:      "Total number of database queries",
		},
		[]string{"query_type", "table"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior on listing fetches.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)

	// HandleCacheSize tracks the number of identifier mappings held in the
	// handle cache. The cache never evicts, so this only grows within one
	// process lifetime.
	HandleCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "handle_cache_size",
			Help:      "Number of identifier mappings in the handle cache",
		},
	)

	// RelayOperationsTotal tracks media relay outcomes.
	// Labels:
	//   - stage: fetch, publish
	//   - status: success, error
	RelayOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_operations_total",
			Help:      "Total number of media relay operations",
		},
		[]string{"stage", "status"},
	)
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet        = "get"
	CacheOpPut        = "put"
	CacheOpInvalidate = "invalidate"
)

// Cache type constants.
const (
	CacheTypeListing = "listing"
	CacheTypeHandle  = "handle"
)

// DB query type constants.
const (
	DBQuerySelect = "select"
	DBQueryInsert = "insert"
)

// Table name constants.
const (
	TableMedia = "media"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)

// Relay stage and status constants.
const (
	RelayStageFetch    = "fetch"
	RelayStagePublish  = "publish"
	RelayStatusSuccess = "success"
	RelayStatusError   = "error"
)
