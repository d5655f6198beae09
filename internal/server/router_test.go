package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/repository"
	"github.com/noah-isme/campus-portal-api/internal/session"
	"github.com/noah-isme/campus-portal-api/pkg/config"
)

const testSecret = "test-cookie-secret"

type testPortal struct {
	t       *testing.T
	router  *gin.Engine
	backend *session.MemoryBackend
	catalog *repository.CatalogRepository
	cookie  *http.Cookie
}

func testConfig() *config.Config {
	return &config.Config{
		Env:      config.EnvDevelopment,
		Session:  config.SessionConfig{CookieName: "portal_client", CookieSecret: testSecret, CookieTTL: time.Hour},
		Activity: config.ActivityConfig{Workers: 1, Buffer: 8, Capacity: 20},
		Portal:   config.PortalConfig{DemoPassword: "campus-demo", DefaultSemester: "Spring 2025", TablePageSize: 10},
		Metrics:  config.MetricsConfig{Enabled: true},
	}
}

func newTestPortal(t *testing.T) *testPortal {
	t.Helper()
	gin.SetMode(gin.TestMode)

	snap, err := repository.LoadSnapshot(context.Background(), repository.NewFixtureRepository())
	require.NoError(t, err)
	catalog := repository.NewCatalogRepository(snap)
	backend := session.NewMemoryBackend()

	app, err := NewApp(AppDeps{Config: testConfig(), Catalog: catalog, SessionBackend: backend})
	require.NoError(t, err)
	return &testPortal{t: t, router: app.Router, backend: backend, catalog: catalog}
}

func (p *testPortal) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	p.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(p.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return p.send(req)
}

func (p *testPortal) send(req *http.Request) *httptest.ResponseRecorder {
	if p.cookie != nil {
		req.AddCookie(p.cookie)
	}
	rec := httptest.NewRecorder()
	p.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "portal_client" {
			p.cookie = c
		}
	}
	return rec
}

func (p *testPortal) loginForm(role string) *httptest.ResponseRecorder {
	form := url.Values{"role": {role}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return p.send(req)
}

func (p *testPortal) persisted() (string, bool) {
	p.t.Helper()
	require.NotNil(p.t, p.cookie)
	clientID, err := session.NewCookieSigner(testSecret, time.Hour).Parse(p.cookie.Value)
	require.NoError(p.t, err)
	raw, ok, err := p.backend.Get(context.Background(), clientID, session.StorageKey)
	require.NoError(p.t, err)
	return raw, ok
}

type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

type apiNotification struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type envelope struct {
	Data         json.RawMessage            `json:"data"`
	Meta         map[string]json.RawMessage `json:"meta"`
	Error        *apiError                  `json:"error"`
	Notification *apiNotification           `json:"notification"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestAdminLoginRedirectsToDashboardAndPersistsRole(t *testing.T) {
	p := newTestPortal(t)

	rec := p.loginForm("admin")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))

	raw, ok := p.persisted()
	require.True(t, ok)
	var record struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	assert.Equal(t, "admin", record.Role)

	rec = p.do(http.MethodGet, "/admin/dashboard", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = p.do(http.MethodGet, "/auth/login", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
}

func TestCourseSearchShowsOnlyMatchingRows(t *testing.T) {
	p := newTestPortal(t)
	p.loginForm("admin")

	rec := p.do(http.MethodGet, "/admin/courses?q=CS1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Courses []struct {
			ID string `json:"id"`
		} `json:"courses"`
	}
	env := decode(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Courses, 1)
	assert.Equal(t, "CS101", list.Courses[0].ID)

	var view struct {
		Rows []struct {
			Cells []string `json:"cells"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(env.Meta["table"], &view))
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "CS101", view.Rows[0].Cells[0])
}

func TestRegisteringForFullCourseIsRejected(t *testing.T) {
	p := newTestPortal(t)
	p.loginForm("student")

	rec := p.do(http.MethodPost, "/student/courses/EN110/register", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Notification)
	assert.Equal(t, "error", env.Notification.Type)
	assert.Equal(t, "This course is at full capacity", env.Notification.Message)

	course, ok := p.catalog.FindCourse("EN110")
	require.True(t, ok)
	assert.Equal(t, 15, course.Enrolled)
}

func TestGradeEditFeedsGPA(t *testing.T) {
	p := newTestPortal(t)
	p.loginForm("admin")

	rec := p.do(http.MethodPut, "/admin/results/STU001/CS101", map[string]interface{}{"grade": "C", "points": 2.0})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	alice, _ := p.catalog.FindStudent("STU001")
	assert.Equal(t, 2.74, alice.GPA)

	rec = p.do(http.MethodPut, "/admin/results/STU001/CS101", map[string]interface{}{"grade": "A", "points": 4.0})
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Grade saved successfully", env.Notification.Message)

	// (4.0*3 + 3.3*4) / 7
	alice, _ = p.catalog.FindStudent("STU001")
	assert.Equal(t, 3.6, alice.GPA)
}

func TestLogoutRemovesSessionAndGuardsAdmin(t *testing.T) {
	p := newTestPortal(t)
	p.loginForm("admin")
	_, ok := p.persisted()
	require.True(t, ok)

	rec := p.do(http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	_, ok = p.persisted()
	assert.False(t, ok)

	rec = p.do(http.MethodGet, "/admin/dashboard", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
}

func TestStudentCannotEnterAdminSubtree(t *testing.T) {
	p := newTestPortal(t)
	p.loginForm("student")

	rec := p.do(http.MethodGet, "/admin/courses", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/student/dashboard", rec.Header().Get("Location"))

	rec = p.do(http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/student/dashboard", rec.Header().Get("Location"))
}

func TestAnonymousRootGoesToLogin(t *testing.T) {
	p := newTestPortal(t)

	rec := p.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))

	rec = p.do(http.MethodGet, "/auth/login", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJSONLoginReturnsMockToken(t *testing.T) {
	p := newTestPortal(t)

	rec := p.do(http.MethodPost, "/auth/login", map[string]string{"role": "student"})
	require.Equal(t, http.StatusOK, rec.Code)
	var sess struct {
		Authenticated bool   `json:"authenticated"`
		Role          string `json:"role"`
		Token         string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &sess))
	assert.True(t, sess.Authenticated)
	assert.Equal(t, "student", sess.Role)
	assert.True(t, strings.HasPrefix(sess.Token, "mock_token_student_"))

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	rec = p.send(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "STU2024001")

	rec = p.do(http.MethodPost, "/auth/login", map[string]string{"role": "teacher"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid role specified", decode(t, rec).Error.Message)
}

func TestRegistrationApprovalFlow(t *testing.T) {
	p := newTestPortal(t)
	p.loginForm("admin")

	rec := p.do(http.MethodPost, "/admin/registrations/REG005/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Registration approved for Bob Williams", env.Notification.Message)

	course, _ := p.catalog.FindCourse("CS201")
	assert.Equal(t, 21, course.Enrolled)

	rec = p.do(http.MethodPost, "/admin/registrations/REG005/reject", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = p.do(http.MethodPost, "/admin/registrations/REG005/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Registration cancelled for Bob Williams", decode(t, rec).Notification.Message)
	course, _ = p.catalog.FindCourse("CS201")
	assert.Equal(t, 20, course.Enrolled)

	rec = p.do(http.MethodPost, "/admin/registrations/REG007/approve", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Cannot approve: Course is at full capacity", decode(t, rec).Notification.Message)
}

func TestCSVExportDownloads(t *testing.T) {
	p := newTestPortal(t)
	p.loginForm("admin")

	rec := p.do(http.MethodGet, "/admin/registrations/export?status=pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="registrations.csv"`, rec.Header().Get("Content-Disposition"))
	lines := strings.Split(rec.Body.String(), "\n")
	assert.Equal(t, "Student Name,Student ID,Course ID,Course Title,Status,Registration Date,Semester", lines[0])
	assert.Len(t, lines, 4)

	rec = p.do(http.MethodGet, "/admin/results/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="student-results.csv"`, rec.Header().Get("Content-Disposition"))
}

func TestCourseCreateValidationAndNotification(t *testing.T) {
	p := newTestPortal(t)
	p.loginForm("admin")

	rec := p.do(http.MethodPost, "/admin/courses", map[string]interface{}{"id": "bad", "title": "Go"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Nil(t, env.Notification)
	assert.Equal(t, "Invalid format (e.g., CS101, MATH202)", env.Error.Fields["id"])
	assert.Equal(t, "Title must be at least 3 characters", env.Error.Fields["title"])

	rec = p.do(http.MethodPost, "/admin/courses", map[string]interface{}{
		"id": "CS410", "title": "Distributed Systems", "description": "Consensus, replication and fault tolerance in practice.",
		"instructor": "Dr. Sarah Smith", "credits": 3, "capacity": 25, "department": "Computer Science",
		"prerequisites": []string{"CS201"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/admin/courses/CS410", rec.Header().Get("Location"))
	assert.Equal(t, "Course created successfully!", decode(t, rec).Notification.Message)

	rec = p.do(http.MethodDelete, "/admin/courses/CS410", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env = decode(t, rec)
	assert.Equal(t, "Course Deleted", env.Notification.Title)
	assert.Equal(t, "Distributed Systems has been deleted", env.Notification.Message)
}

func TestStudentProfileAndResults(t *testing.T) {
	p := newTestPortal(t)
	p.loginForm("student")

	rec := p.do(http.MethodPut, "/student/profile", map[string]string{"name": "Alice J.", "email": "alice@university.edu"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Profile updated successfully!", decode(t, rec).Notification.Message)

	raw, ok := p.persisted()
	require.True(t, ok)
	assert.Contains(t, raw, "Alice J.")

	rec = p.do(http.MethodGet, "/student/results", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var results struct {
		GPA float64 `json:"gpa"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &results))
	assert.Equal(t, 3.6, results.GPA)
}

func TestProbesSkipSessionCookie(t *testing.T) {
	p := newTestPortal(t)

	rec := p.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, p.cookie)

	rec = p.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
