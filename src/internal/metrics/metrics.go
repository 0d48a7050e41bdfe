// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all validator metrics.
	Namespace = "x509_validator"

	// Label names
	LabelResult     = "result"
	LabelReason     = "reason"
	LabelStrategy   = "strategy"
	LabelOutcome    = "outcome"
	LabelLayer      = "layer"
	LabelMethod     = "method"
	LabelStatusCode = "status_code"

	// Result values
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultHit     = "hit"
	ResultMiss    = "miss"

	// CRL cache layers
	LayerDisk   = "disk"
	LayerMemory = "memory"
)

var (
	// ValidationsTotal counts chain verdicts.
	ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "validations_total",
			Help:      "Total number of chain validations by result",
		},
		[]string{LabelResult},
	)

	// ValidationDuration tracks the wall time of a chain walk, revocation included.
	ValidationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "validation_duration_seconds",
			Help:      "Duration of chain validations in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{LabelResult},
	)

	// StepFailuresTotal counts the step that rejected a chain.
	StepFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "step_failures_total",
			Help:      "Total number of rejected chains by failing step",
		},
		[]string{LabelReason},
	)

	// RevocationChecksTotal counts revocation outcomes per strategy.
	RevocationChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "revocation",
			Name:      "checks_total",
			Help:      "Total number of revocation checks by strategy and outcome",
		},
		[]string{LabelStrategy, LabelOutcome},
	)

	// CRLCacheRequestsTotal counts CRL cache lookups per layer.
	CRLCacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "crl_cache",
			Name:      "requests_total",
			Help:      "Total number of CRL cache lookups by layer and result",
		},
		[]string{LabelLayer, LabelResult},
	)

	// CRLCacheEvictionsTotal counts LRU evictions from the in-memory CRL layer.
	CRLCacheEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "crl_cache",
			Name:      "evictions_total",
			Help:      "Total number of parsed CRLs evicted from memory",
		},
	)

	// HTTPRequestsTotal counts API requests by method and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method and status code",
		},
		[]string{LabelMethod, LabelStatusCode},
	)

	// HTTPRequestDuration tracks API request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{LabelMethod},
	)

	enabled atomic.Bool
)

func init() {
	enabled.Store(true)
}

// RecordValidation records one chain verdict and its duration.
// reason is empty for a valid chain.
func RecordValidation(valid bool, reason string, duration float64) {
	if !enabled.Load() {
		return
	}

	result := ResultValid
	if !valid {
		result = ResultInvalid
		StepFailuresTotal.WithLabelValues(reason).Inc()
	}
	ValidationsTotal.WithLabelValues(result).Inc()
	ValidationDuration.WithLabelValues(result).Observe(duration)
}

// RecordRevocation records the outcome reported by a revocation strategy.
func RecordRevocation(strategy, outcome string) {
	if !enabled.Load() {
		return
	}
	RevocationChecksTotal.WithLabelValues(strategy, outcome).Inc()
}

// RecordCRLCache records a CRL cache lookup.
func RecordCRLCache(layer string, hit bool) {
	if !enabled.Load() {
		return
	}

	result := ResultMiss
	if hit {
		result = ResultHit
	}
	CRLCacheRequestsTotal.WithLabelValues(layer, result).Inc()
}

// RecordCRLEviction records an eviction from the in-memory CRL layer.
func RecordCRLEviction() {
	if !enabled.Load() {
		return
	}
	CRLCacheEvictionsTotal.Inc()
}

// RecordHTTPRequest records an API request.
func RecordHTTPRequest(method, statusCode string, duration float64) {
	if !enabled.Load() {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method).Observe(duration)
}

// Enable turns metrics collection on.
func Enable() { enabled.Store(true) }

// Disable turns metrics collection off.
func Disable() { enabled.Store(false) }

// IsEnabled reports whether metrics collection is on.
func IsEnabled() bool { return enabled.Load() }
