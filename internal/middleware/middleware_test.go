package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/session"
)

const cookieName = "portal_client"

type downBackend struct{}

func (downBackend) Get(context.Context, string, string) (string, bool, error) {
	return "", false, errors.New("storage offline")
}
func (downBackend) Set(context.Context, string, string, string) error { return errors.New("storage offline") }
func (downBackend) Delete(context.Context, string, string) error      { return errors.New("storage offline") }

func newGuardedRouter(backend session.Backend, metrics *service.MetricsService) (*gin.Engine, *session.Manager, *session.CookieSigner) {
	gin.SetMode(gin.TestMode)
	manager := session.NewManager(backend, nil)
	signer := session.NewCookieSigner("test-secret", time.Hour)

	r := gin.New()
	r.Use(Metrics(metrics), Session(manager, signer, metrics, SessionOptions{CookieName: cookieName}, nil))
	r.GET("/admin/dashboard", RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, StoreFrom(c).ClientID())
	})
	return r, manager, signer
}

func TestSessionIssuesCookieAndRedirectsAnonymousClient(t *testing.T) {
	metrics := service.NewMetricsService()
	r, _, signer := newGuardedRouter(session.NewMemoryBackend(), metrics)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	_, err := signer.Parse(cookies[0].Value)
	assert.NoError(t, err)

	restores, err := testutil.GatherAndCount(metrics.Registry(), "portal_session_restores_total")
	require.NoError(t, err)
	assert.Equal(t, 1, restores)
}

func TestSessionReusesSignedClientAndAllowsRole(t *testing.T) {
	r, manager, signer := newGuardedRouter(session.NewMemoryBackend(), nil)

	value, err := signer.Issue("client-1")
	require.NoError(t, err)
	store := manager.Store("client-1")
	store.Restore(context.Background())
	require.NoError(t, store.Login(context.Background(), models.User{ID: "admin_001", Role: models.RoleAdmin}))

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: value})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "client-1", rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestRequireRoleRedirectsOtherRoleHome(t *testing.T) {
	r, manager, signer := newGuardedRouter(session.NewMemoryBackend(), nil)

	value, _ := signer.Issue("client-2")
	store := manager.Store("client-2")
	store.Restore(context.Background())
	require.NoError(t, store.Login(context.Background(), models.User{ID: "student_123", Role: models.RoleStudent}))

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: value})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/student/dashboard", rec.Header().Get("Location"))
}

func TestRequireRoleWaitsWhileSessionLoads(t *testing.T) {
	r, _, _ := newGuardedRouter(downBackend{}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, RetryAfterSeconds, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "SESSION_LOADING")
}

func TestTamperedCookieGetsFreshClient(t *testing.T) {
	r, _, _ := newGuardedRouter(session.NewMemoryBackend(), nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "not-a-token"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestAnonymousClientsLeaveNoCachedStore(t *testing.T) {
	r, manager, _ := newGuardedRouter(session.NewMemoryBackend(), nil)

	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
		require.Equal(t, http.StatusFound, rec.Code)
	}
	assert.Zero(t, manager.Len())
}
