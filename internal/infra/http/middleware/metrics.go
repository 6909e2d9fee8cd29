package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	candidatesIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidates_ingested_total",
			Help: "Total number of candidate records ingested via webhook",
		},
		[]string{"status"},
	)

	hiresRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hires_recorded_total",
			Help: "Total number of ingested records carrying a hire date",
		},
	)

	changeBroadcasts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "change_broadcasts_total",
			Help: "Total number of change notifications fanned out",
		},
	)

	notifierSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notifier_subscribers",
			Help: "Number of currently connected change-stream subscribers",
		},
	)

	notificationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_errors_total",
			Help: "Total number of notification delivery errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack repassa para o writer original — sem isso o upgrade do
// WebSocket em /ws falha atrás deste middleware.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer não suporta hijack")
	}
	return h.Hijack()
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordIngest(status string) {
	candidatesIngested.WithLabelValues(status).Inc()
}

func RecordHire() {
	hiresRecorded.Inc()
}

func RecordBroadcast() {
	changeBroadcasts.Inc()
}

func SubscriberConnected() {
	notifierSubscribers.Inc()
}

func SubscriberDisconnected() {
	notifierSubscribers.Dec()
}

func RecordNotificationError(service string) {
	notificationErrors.WithLabelValues(service).Inc()
}
