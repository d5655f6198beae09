package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/admin/courses", http.StatusOK, 15*time.Millisecond)
	m.RecordLogin(models.RoleAdmin)
	m.RecordRegistration(models.RegistrationConfirmed)
	m.RecordGradeSaved()
	m.RecordSessionRestore("authenticated")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/admin/courses", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues("admin")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registrations.WithLabelValues("confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gradesSaved))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "portal_logins_total")
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.RecordLogin(models.RoleStudent)
	m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
