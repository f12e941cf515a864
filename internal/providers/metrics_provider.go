package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"qrscan/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(namespace string)
	IncCacheMisses(namespace string)
	ObservePersistenceDuration(operation string, duration time.Duration)
	IncScans(outcome string)
	IncGeoLookups(result string)
	IncQrGenerated()
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	persistenceDuration *prometheus.HistogramVec
	scansTotal          *prometheus.CounterVec
	geoLookupsTotal     *prometheus.CounterVec
	qrGenerated         prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(namespace string) {
	m.cacheHits.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) IncCacheMisses(namespace string) {
	m.cacheMisses.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(operation string, duration time.Duration) {
	m.persistenceDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncScans(outcome string) {
	m.scansTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) IncGeoLookups(result string) {
	m.geoLookupsTotal.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) IncQrGenerated() {
	m.qrGenerated.Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "qrscan_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qrscan_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "qrscan_cache_hits_total",
			Help: "Total number of cache hits by key namespace",
		}, []string{"namespace"}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "qrscan_cache_misses_total",
			Help: "Total number of cache misses by key namespace",
		}, []string{"namespace"}),

		persistenceDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qrscan_persistence_duration_seconds",
			Help:    "Duration of scan record storage operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),

		scansTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "qrscan_scans_total",
			Help: "Total number of handled scans by outcome",
		}, []string{"outcome"}),

		geoLookupsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "qrscan_geo_lookups_total",
			Help: "Total number of geolocation lookups by result",
		}, []string{"result"}),

		qrGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "qrscan_qr_generated_total",
			Help: "Total number of generated QR code images",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                     {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncCacheHits(_ string)                                {}
func (n *noopMetrics) IncCacheMisses(_ string)                              {}
func (n *noopMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncScans(_ string)                                    {}
func (n *noopMetrics) IncGeoLookups(_ string)                               {}
func (n *noopMetrics) IncQrGenerated()                                      {}
