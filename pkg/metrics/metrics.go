package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spacia_api_request_duration_seconds",
			Help:    "Duration of calls to the listing service",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	APIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacia_api_errors_total",
			Help: "Failed calls to the listing service",
		},
		[]string{"operation", "kind"},
	)
	ImageUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacia_image_uploads_total",
			Help: "Image upload attempts by outcome",
		},
		[]string{"outcome"},
	)
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacia_property_submissions_total",
			Help: "Property submissions by mode and final state",
		},
		[]string{"mode", "state"},
	)
	SessionStoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spacia_session_store_duration_seconds",
			Help:    "Session store operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	SessionStoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacia_session_store_errors_total",
			Help: "Session store operation failures",
		},
		[]string{"operation"},
	)
)

var registerOnce sync.Once

// Init registers every collector with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(APIRequestDuration)
		prometheus.MustRegister(APIErrorsTotal)
		prometheus.MustRegister(ImageUploadsTotal)
		prometheus.MustRegister(SubmissionsTotal)
		prometheus.MustRegister(SessionStoreDuration)
		prometheus.MustRegister(SessionStoreErrorsTotal)
	})
}
