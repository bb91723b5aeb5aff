package api

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/versionforge/pkg/observability"
)

// Metrics exports engine, cache and HTTP events as Prometheus collectors.
// It implements the [observability] hook interfaces; [Metrics.Install]
// registers it with the global hook registry.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrorsTotal     *prometheus.CounterVec

	// Engine metrics
	validationsTotal   *prometheus.CounterVec
	validationIssues   prometheus.Histogram
	validationDuration prometheus.Histogram
	plansTotal         *prometheus.CounterVec
	planDuration       prometheus.Histogram
	verificationsTotal *prometheus.CounterVec
	guidesTotal        *prometheus.CounterVec

	// Cache metrics
	cacheHitsTotal   *prometheus.CounterVec
	cacheMissesTotal *prometheus.CounterVec
	cacheSetBytes    *prometheus.HistogramVec
}

var (
	_ observability.EngineHooks = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
	_ observability.HTTPHooks   = (*Metrics)(nil)
)

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "versionforge_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "versionforge_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		httpErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "versionforge_http_errors_total",
				Help: "HTTP requests that failed, by error code",
			},
			[]string{"method", "route", "code"},
		),

		validationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "versionforge_validations_total",
				Help: "Dependency graph validations, by verdict",
			},
			[]string{"valid"},
		),
		validationIssues: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "versionforge_validation_issues",
				Help:    "Issues found per validation",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
		),
		validationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "versionforge_validation_duration_seconds",
				Help:    "Validation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		plansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "versionforge_upgrade_plans_total",
				Help: "Upgrade plan computations, by result",
			},
			[]string{"result"},
		),
		planDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "versionforge_upgrade_plan_duration_seconds",
				Help:    "Upgrade plan duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		verificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "versionforge_compatibility_checks_total",
				Help: "Compatibility matrix lookups, by answer",
			},
			[]string{"compatible"},
		),
		guidesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "versionforge_migration_guides_total",
				Help: "Generated migration guides",
			},
			[]string{"upgrade_type", "effort"},
		),

		cacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "versionforge_cache_hits_total",
				Help: "Cache hits by key type",
			},
			[]string{"key_type"},
		),
		cacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "versionforge_cache_misses_total",
				Help: "Cache misses by key type",
			},
			[]string{"key_type"},
		),
		cacheSetBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "versionforge_cache_set_bytes",
				Help:    "Size of cache writes in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"key_type"},
		),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpErrorsTotal,
		m.validationsTotal,
		m.validationIssues,
		m.validationDuration,
		m.plansTotal,
		m.planDuration,
		m.verificationsTotal,
		m.guidesTotal,
		m.cacheHitsTotal,
		m.cacheMissesTotal,
		m.cacheSetBytes,
	)
	return m
}

// Install registers m as the engine, cache and HTTP hooks.
func (m *Metrics) Install() {
	observability.SetEngineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// OnValidate implements observability.EngineHooks.
func (m *Metrics) OnValidate(_ context.Context, _ int, issues int, duration time.Duration) {
	m.validationsTotal.WithLabelValues(strconv.FormatBool(issues == 0)).Inc()
	m.validationIssues.Observe(float64(issues))
	m.validationDuration.Observe(duration.Seconds())
}

// OnPlan implements observability.EngineHooks.
func (m *Metrics) OnPlan(_ context.Context, _, _ int, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.plansTotal.WithLabelValues(result).Inc()
	m.planDuration.Observe(duration.Seconds())
}

// OnVerify implements observability.EngineHooks.
func (m *Metrics) OnVerify(_ context.Context, compatible bool) {
	m.verificationsTotal.WithLabelValues(strconv.FormatBool(compatible)).Inc()
}

// OnGuide implements observability.EngineHooks.
func (m *Metrics) OnGuide(_ context.Context, upgradeType, effort string) {
	m.guidesTotal.WithLabelValues(upgradeType, effort).Inc()
}

// OnCacheHit implements observability.CacheHooks.
func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheHitsTotal.WithLabelValues(keyType).Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheMissesTotal.WithLabelValues(keyType).Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheSetBytes.WithLabelValues(keyType).Observe(float64(size))
}

// OnRequest implements observability.HTTPHooks. Requests are counted on
// completion, in OnResponse.
func (m *Metrics) OnRequest(context.Context, string, string) {}

// OnResponse implements observability.HTTPHooks.
func (m *Metrics) OnResponse(_ context.Context, method, route string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// OnError implements observability.HTTPHooks.
func (m *Metrics) OnError(_ context.Context, method, route, code string) {
	m.httpErrorsTotal.WithLabelValues(method, route, code).Inc()
}
