package httpmetrics

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AlibekovAA/profile-cards/internal/observability/metrics"
)

type Collector struct {
	prefix          string
	requestsTotal   *prometheus.CounterVec
	requestsFlight  prometheus.Gauge
	requestDuration *prometheus.HistogramVec
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades pass through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func New(prefix string) *Collector {
	c := &Collector{prefix: prefix}
	if prefix == "profiles" {
		c.requestsTotal = metrics.ProfilesRequestsTotal
		c.requestsFlight = metrics.ProfilesRequestsInFlight
		c.requestDuration = metrics.ProfilesRequestDurationSeconds
	}
	return c
}

func (c *Collector) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		method := r.Method
		path := NormalizePath(r.URL.Path)

		if c.requestsTotal != nil {
			c.requestsTotal.WithLabelValues(method, path).Inc()
		}
		if c.requestsFlight != nil {
			c.requestsFlight.Inc()
			defer c.requestsFlight.Dec()
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if c.requestDuration != nil {
			statusClass := fmt.Sprintf("%dxx", rec.status/100)
			c.requestDuration.WithLabelValues(method, path, statusClass).Observe(time.Since(start).Seconds())
		}
	})
}
