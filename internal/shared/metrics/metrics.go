package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docstore",
		Name:      "requests_total",
		Help:      "Total handled requests, partitioned by action and status code.",
	}, []string{"action", "code"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "docstore",
		Name:      "request_duration_seconds",
		Help:      "Request latency by action.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"action"})

	uploadedBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "docstore",
		Name:      "uploaded_bytes_total",
		Help:      "Total payload bytes written to the object store.",
	})
)

func init() {
	registry.MustRegister(requestsTotal, requestDuration, uploadedBytes)
}

// ObserveRequest records one handled request.
func ObserveRequest(action string, status int, elapsed time.Duration) {
	requestsTotal.WithLabelValues(action, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// AddUploadedBytes counts bytes persisted by a successful upload.
func AddUploadedBytes(n int) {
	if n < 0 {
		return
	}
	uploadedBytes.Add(float64(n))
}

// Registry exposes the collector registry, mainly for tests.
func Registry() *prometheus.Registry {
	return registry
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
