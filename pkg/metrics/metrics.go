package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы обращения к оценщику времени в пути
const (
	EstimatorOutcomeOK          = "ok"
	EstimatorOutcomeUnavailable = "unavailable"
	EstimatorOutcomeTimeout     = "timeout"
	EstimatorOutcomeCacheHit    = "cache_hit"
)

// Metrics набор метрик сервиса
// Использует собственный registry, чтобы несколько экземпляров (тесты) не конфликтовали
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	ConflictFindings  *prometheus.CounterVec
	EstimatorRequests *prometheus.CounterVec
	ReconcileRetries  prometheus.Counter
	ConflictsResolved *prometheus.CounterVec
}

// New создает и регистрирует метрики с константной меткой service
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
		ConflictFindings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "conflict_findings_total",
			Help:        "Conflict findings produced by re-scans, by severity",
			ConstLabels: constLabels,
		}, []string{"severity"}),
		EstimatorRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "travel_estimator_requests_total",
			Help:        "Travel estimator calls by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		ReconcileRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "conflict_reconcile_retries_total",
			Help:        "Reconciliation passes retried after a persistence conflict",
			ConstLabels: constLabels,
		}),
		ConflictsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "conflicts_resolved_total",
			Help:        "Conflict records closed, by resolution",
			ConstLabels: constLabels,
		}, []string{"resolution"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.ConflictFindings,
		m.EstimatorRequests,
		m.ReconcileRetries,
		m.ConflictsResolved,
	)

	return m
}

// Handler возвращает HTTP handler для экспорта метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncFinding увеличивает счетчик обнаруженных конфликтов
func (m *Metrics) IncFinding(severity string) {
	if m == nil {
		return
	}
	m.ConflictFindings.WithLabelValues(severity).Inc()
}

// IncEstimator увеличивает счетчик обращений к оценщику времени в пути
func (m *Metrics) IncEstimator(outcome string) {
	if m == nil {
		return
	}
	m.EstimatorRequests.WithLabelValues(outcome).Inc()
}

// IncReconcileRetry увеличивает счетчик повторов сверки
func (m *Metrics) IncReconcileRetry() {
	if m == nil {
		return
	}
	m.ReconcileRetries.Inc()
}

// IncResolved увеличивает счетчик закрытых конфликтов
func (m *Metrics) IncResolved(resolution string) {
	if m == nil {
		return
	}
	m.ConflictsResolved.WithLabelValues(resolution).Inc()
}
