package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// MetricsService owns the Prometheus registry of the portal. A nil receiver is a no-op.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	logins          *prometheus.CounterVec
	registrations   *prometheus.CounterVec
	gradesSaved     prometheus.Counter
	activity        *prometheus.CounterVec
	sessionRestores *prometheus.CounterVec
}

// NewMetricsService registers the HTTP and domain collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_logins_total",
			Help: "Mock logins by role",
		}, []string{"role"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_registration_transitions_total",
			Help: "Registration lifecycle transitions by resulting status",
		}, []string{"status"}),
		gradesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_grades_saved_total",
			Help: "Grades recorded or edited",
		}),
		activity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_activity_entries_total",
			Help: "Activity feed entries by kind",
		}, []string{"kind"}),
		sessionRestores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_session_restores_total",
			Help: "Session restores by resulting state",
		}, []string{"state"}),
	}

	registry.MustRegister(
		m.requestDuration, m.requestTotal, m.logins, m.registrations,
		m.gradesSaved, m.activity, m.sessionRestores,
		collectors.NewGoCollector(),
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Registry exposes the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, code).Inc()
}

// RecordLogin counts a successful login.
func (m *MetricsService) RecordLogin(role models.Role) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(string(role)).Inc()
}

// RecordRegistration counts a registration entering status.
func (m *MetricsService) RecordRegistration(status models.RegistrationStatus) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(string(status)).Inc()
}

// RecordGradeSaved counts a saved grade.
func (m *MetricsService) RecordGradeSaved() {
	if m == nil {
		return
	}
	m.gradesSaved.Inc()
}

// RecordActivity counts an activity feed entry.
func (m *MetricsService) RecordActivity(kind models.ActivityKind) {
	if m == nil {
		return
	}
	m.activity.WithLabelValues(string(kind)).Inc()
}

// RecordSessionRestore counts a restore outcome.
func (m *MetricsService) RecordSessionRestore(state string) {
	if m == nil {
		return
	}
	m.sessionRestores.WithLabelValues(state).Inc()
}
